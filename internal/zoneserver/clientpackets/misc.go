package clientpackets

import (
	"github.com/udisondev/ronet/internal/constants"
	"github.com/udisondev/ronet/internal/packet"
)

// RequestTime2 [0x0360]: синхронизация времени.
//
// Format (6 bytes): [id u16][client_time u32]
type RequestTime2 struct {
	ClientTime uint32
}

// Write serializes the packet.
func (p RequestTime2) Write() []byte {
	w := packet.NewWriter(constants.CZRequestTime2Size)
	w.WriteUint16(constants.CZRequestTime2)
	w.WriteUint32(p.ClientTime)
	return w.Bytes()
}

// ReqName2 [0x0368]: запрос имени объекта.
//
// Format (6 bytes): [id u16][gid u32]
type ReqName2 struct {
	GID uint32
}

// Write serializes the packet.
func (p ReqName2) Write() []byte {
	w := packet.NewWriter(constants.CZReqName2Size)
	w.WriteUint16(constants.CZReqName2)
	w.WriteUint32(p.GID)
	return w.Bytes()
}

// RequestChat [0x008C]: сообщение в общий чат.
//
// Format (variable): [id u16][len u16][message NUL-terminated]
//
// Сервер ожидает сообщение вида "Name : text".
type RequestChat struct {
	Message string
}

// Write serializes the packet.
func (p RequestChat) Write() []byte {
	length := 4 + len(p.Message) + 1
	w := packet.NewWriter(length)
	w.WriteUint16(constants.CZRequestChat)
	w.WriteUint16(uint16(length))
	w.WriteBytes([]byte(p.Message))
	_ = w.WriteByte(0)
	return w.Bytes()
}
