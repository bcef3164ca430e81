package clientpackets

import (
	"github.com/udisondev/ronet/internal/constants"
	"github.com/udisondev/ronet/internal/packet"
)

// Ping [0x0187]: keepalive.
//
// Format (6 bytes): [id u16][account_id u32]
type Ping struct {
	AccountID uint32
}

// Write serializes the packet.
func (p Ping) Write() []byte {
	w := packet.NewWriter(constants.CHPingSize)
	w.WriteUint16(constants.CHPing)
	w.WriteUint32(p.AccountID)
	return w.Bytes()
}

// CharListReq [0x09A1]: запрос повторной отправки списка персонажей.
//
// Format (2 bytes): [id u16]
type CharListReq struct{}

// Write serializes the packet.
func (CharListReq) Write() []byte {
	w := packet.NewWriter(constants.CHCharListReqSize)
	w.WriteUint16(constants.CHCharListReq)
	return w.Bytes()
}
