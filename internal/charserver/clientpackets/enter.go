package clientpackets

import (
	"github.com/udisondev/ronet/internal/constants"
	"github.com/udisondev/ronet/internal/model"
	"github.com/udisondev/ronet/internal/packet"
)

// Enter [0x0065]: вход на character server с токенами login server.
//
// Format (17 bytes):
//
//	[id u16][account_id u32][login_id1 u32][login_id2 u32][reserved u16][sex u8]
type Enter struct {
	AccountID uint32
	LoginID1  uint32
	LoginID2  uint32
	Sex       model.Sex
}

// Write serializes the packet.
func (p Enter) Write() []byte {
	w := packet.NewWriter(constants.CHEnterSize)
	w.WriteUint16(constants.CHEnter)
	w.WriteUint32(p.AccountID)
	w.WriteUint32(p.LoginID1)
	w.WriteUint32(p.LoginID2)
	w.WriteUint16(0)
	_ = w.WriteByte(byte(p.Sex))
	return w.Bytes()
}
