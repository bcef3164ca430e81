package serverpackets

import (
	"fmt"
	"log/slog"

	"github.com/udisondev/ronet/internal/constants"
	"github.com/udisondev/ronet/internal/model"
	"github.com/udisondev/ronet/internal/packet"
)

// AcceptEnter [0x006B]: список персонажей после входа на character server.
//
// Format:
//
//	[id u16][length u16]
//	[max_chars u8][available_slots u8][premium_slots u8]
//	[20 reserved bytes]
//	[CharacterInfo × (length-27)/175]
type AcceptEnter struct {
	MaxSlots       uint8
	AvailableSlots uint8
	PremiumSlots   uint8
	Characters     []model.CharacterInfo
}

// ParseAcceptEnter parses a complete HC_ACCEPT_ENTER frame.
func ParseAcceptEnter(data []byte) (*AcceptEnter, error) {
	r := packet.NewReader(data)
	if _, err := readHeader(r, true); err != nil {
		return nil, packet.Malformed("HC_ACCEPT_ENTER", err)
	}

	var p AcceptEnter
	var err error
	if p.MaxSlots, err = r.ReadByte(); err != nil {
		return nil, packet.Malformed("HC_ACCEPT_ENTER max slots", err)
	}
	if p.AvailableSlots, err = r.ReadByte(); err != nil {
		return nil, packet.Malformed("HC_ACCEPT_ENTER available slots", err)
	}
	if p.PremiumSlots, err = r.ReadByte(); err != nil {
		return nil, packet.Malformed("HC_ACCEPT_ENTER premium slots", err)
	}
	if err := r.Skip(20); err != nil {
		return nil, packet.Malformed("HC_ACCEPT_ENTER reserved", err)
	}

	chars, err := parseCharacters(r, "HC_ACCEPT_ENTER")
	if err != nil {
		return nil, err
	}
	p.Characters = chars
	return &p, nil
}

// parseCharacters reads as many whole 175-byte records as remain.
// A trailing partial record is logged and ignored.
func parseCharacters(r *packet.Reader, name string) ([]model.CharacterInfo, error) {
	count := r.Remaining() / constants.CharacterInfoSize
	if rem := r.Remaining() % constants.CharacterInfoSize; rem != 0 {
		slog.Warn("character data is not a multiple of record size",
			"packet", name,
			"bytes", r.Remaining(),
			"trailing", rem)
	}

	chars := make([]model.CharacterInfo, 0, count)
	for i := range count {
		c, err := model.ParseCharacterInfo(r)
		if err != nil {
			return nil, packet.Malformed(fmt.Sprintf("%s character %d", name, i), err)
		}
		chars = append(chars, c)
	}
	return chars, nil
}
