package serverpackets

import (
	"github.com/udisondev/ronet/internal/packet"
)

// CharacterList [0x082D]: количество слотов персонажей.
//
// Format (29 bytes):
//
//	[id u16][length u16]
//	[normal u8][premium u8][billing u8][producible u8][valid u8]
//	[20 unused bytes]
type CharacterList struct {
	NormalSlots     uint8
	PremiumSlots    uint8
	BillingSlots    uint8
	ProducibleSlots uint8
	ValidSlots      uint8
}

// ParseCharacterList parses a complete HC_CHARACTER_LIST frame.
func ParseCharacterList(data []byte) (*CharacterList, error) {
	r := packet.NewReader(data)
	if _, err := readHeader(r, true); err != nil {
		return nil, packet.Malformed("HC_CHARACTER_LIST", err)
	}

	b, err := r.ReadBytes(5)
	if err != nil {
		return nil, packet.Malformed("HC_CHARACTER_LIST slots", err)
	}
	return &CharacterList{
		NormalSlots:     b[0],
		PremiumSlots:    b[1],
		BillingSlots:    b[2],
		ProducibleSlots: b[3],
		ValidSlots:      b[4],
	}, nil
}
