package serverpackets

import (
	"github.com/udisondev/ronet/internal/model"
	"github.com/udisondev/ronet/internal/packet"
)

// CharInfoPage [0x099D]: одна страница списка персонажей.
// Пустая страница (length == 4) означает конец списка.
//
// Format:
//
//	[id u16][length u16][CharacterInfo × (length-4)/175]
type CharInfoPage struct {
	Characters []model.CharacterInfo
}

// IsEndMarker reports whether the page carries no characters.
func (p *CharInfoPage) IsEndMarker() bool {
	return len(p.Characters) == 0
}

// ParseCharInfoPage parses a complete HC_ACK_CHARINFO_PER_PAGE frame.
func ParseCharInfoPage(data []byte) (*CharInfoPage, error) {
	r := packet.NewReader(data)
	if _, err := readHeader(r, true); err != nil {
		return nil, packet.Malformed("HC_ACK_CHARINFO_PER_PAGE", err)
	}

	chars, err := parseCharacters(r, "HC_ACK_CHARINFO_PER_PAGE")
	if err != nil {
		return nil, err
	}
	return &CharInfoPage{Characters: chars}, nil
}
