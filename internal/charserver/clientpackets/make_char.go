package clientpackets

import (
	"github.com/udisondev/ronet/internal/constants"
	"github.com/udisondev/ronet/internal/model"
	"github.com/udisondev/ronet/internal/packet"
)

// MakeChar [0x0A39]: создание персонажа.
//
// Format (36 bytes):
//
//	[id u16][name 24][slot u8][hair_color u16][hair_style u16]
//	[starting_job u16][unknown u16][sex u8]
//
// Name is cut to 23 bytes so the field stays NUL-terminated.
type MakeChar struct {
	Name        string
	Slot        uint8
	HairColor   uint16
	HairStyle   uint16
	StartingJob uint16
	Sex         model.Sex
}

// Write serializes the packet.
func (p MakeChar) Write() []byte {
	w := packet.NewWriter(constants.CHMakeCharSize)
	w.WriteUint16(constants.CHMakeChar)
	w.WriteFixedString(packet.FixedString(p.Name, constants.NameLength), constants.NameLength)
	_ = w.WriteByte(p.Slot)
	w.WriteUint16(p.HairColor)
	w.WriteUint16(p.HairStyle)
	w.WriteUint16(p.StartingJob)
	w.WriteUint16(0)
	_ = w.WriteByte(byte(p.Sex))
	return w.Bytes()
}
