package clientpackets

import (
	"github.com/udisondev/ronet/internal/constants"
	"github.com/udisondev/ronet/internal/packet"
)

// SelectChar [0x0066]: выбор персонажа по номеру слота.
//
// Format (3 bytes): [id u16][slot u8]
type SelectChar struct {
	Slot uint8
}

// Write serializes the packet.
func (p SelectChar) Write() []byte {
	w := packet.NewWriter(constants.CHSelectCharSize)
	w.WriteUint16(constants.CHSelectChar)
	_ = w.WriteByte(p.Slot)
	return w.Bytes()
}
