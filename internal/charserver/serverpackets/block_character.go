package serverpackets

import (
	"log/slog"

	"github.com/udisondev/ronet/internal/constants"
	"github.com/udisondev/ronet/internal/packet"
)

// BlockedCharacter is one entry of HC_BLOCK_CHARACTER.
type BlockedCharacter struct {
	CharID     uint32
	ExpireDate string // 20 bytes, server-formatted date
}

// BlockCharacter [0x020D]: заблокированные персонажи.
//
// Format:
//
//	[id u16][length u16][{char_id u32, expire_date 20} × (length-4)/24]
type BlockCharacter struct {
	Characters []BlockedCharacter
}

// ParseBlockCharacter parses a complete HC_BLOCK_CHARACTER frame.
func ParseBlockCharacter(data []byte) (*BlockCharacter, error) {
	r := packet.NewReader(data)
	if _, err := readHeader(r, true); err != nil {
		return nil, packet.Malformed("HC_BLOCK_CHARACTER", err)
	}

	count := r.Remaining() / constants.BlockedCharacterEntrySize
	if r.Remaining()%constants.BlockedCharacterEntrySize != 0 {
		slog.Warn("blocked character data is not a multiple of entry size", "bytes", r.Remaining())
	}

	p := &BlockCharacter{Characters: make([]BlockedCharacter, 0, count)}
	for range count {
		id, err := r.ReadUint32()
		if err != nil {
			return nil, packet.Malformed("HC_BLOCK_CHARACTER char id", err)
		}
		date, err := r.ReadFixedString(20)
		if err != nil {
			return nil, packet.Malformed("HC_BLOCK_CHARACTER expire date", err)
		}
		p.Characters = append(p.Characters, BlockedCharacter{CharID: id, ExpireDate: date})
	}
	return p, nil
}
