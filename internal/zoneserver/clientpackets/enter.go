package clientpackets

import (
	"github.com/udisondev/ronet/internal/constants"
	"github.com/udisondev/ronet/internal/model"
	"github.com/udisondev/ronet/internal/packet"
)

// Enter2 [0x0436]: аутентификация на zone server.
//
// Format (23 bytes):
//
//	[id u16][account_id u32][char_id u32][auth_code u32][client_time u32][reserved u32][sex u8]
//
// auth_code: login_id1, выданный login server.
type Enter2 struct {
	AccountID  uint32
	CharID     uint32
	AuthCode   uint32
	ClientTime uint32
	Sex        model.Sex
}

// Write serializes the packet.
func (p Enter2) Write() []byte {
	w := packet.NewWriter(constants.CZEnter2Size)
	w.WriteUint16(constants.CZEnter2)
	w.WriteUint32(p.AccountID)
	w.WriteUint32(p.CharID)
	w.WriteUint32(p.AuthCode)
	w.WriteUint32(p.ClientTime)
	w.WriteUint32(0)
	_ = w.WriteByte(byte(p.Sex))
	return w.Bytes()
}

// ActorInit [0x007D]: карта загружена, клиент готов получать объекты.
//
// Format (2 bytes): [id u16]
type ActorInit struct{}

// Write serializes the packet.
func (ActorInit) Write() []byte {
	w := packet.NewWriter(constants.CZNotifyActorInitSize)
	w.WriteUint16(constants.CZNotifyActorInit)
	return w.Bytes()
}
