package clientpackets

import (
	"github.com/udisondev/ronet/internal/constants"
	"github.com/udisondev/ronet/internal/packet"
)

// DeleteChar [0x0068]: удаление персонажа с подтверждением e-mail.
//
// Format (56 bytes): [id u16][char_id u32][email 50]
//
// Email is cut to 49 bytes so the field stays NUL-terminated.
type DeleteChar struct {
	CharID uint32
	Email  string
}

// Write serializes the packet.
func (p DeleteChar) Write() []byte {
	w := packet.NewWriter(constants.CHDeleteCharSize)
	w.WriteUint16(constants.CHDeleteChar)
	w.WriteUint32(p.CharID)
	w.WriteFixedString(packet.FixedString(p.Email, constants.EmailLength), constants.EmailLength)
	return w.Bytes()
}
