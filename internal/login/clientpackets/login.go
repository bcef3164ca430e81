package clientpackets

import (
	"github.com/udisondev/ronet/internal/constants"
	"github.com/udisondev/ronet/internal/packet"
)

// Login [0x0064]: CA_LOGIN, логин и пароль открытым текстом.
//
// Format (55 bytes):
//
//	[id u16][version u32][username 24][password 24][client_type u8]
type Login struct {
	Version    uint32
	Username   string
	Password   string
	ClientType uint8
}

// Write serializes the packet. Username and password are cut to 23 bytes.
func (p Login) Write() []byte {
	w := packet.NewWriter(constants.CALoginSize)
	w.WriteUint16(constants.CALogin)
	w.WriteUint32(p.Version)
	w.WriteFixedString(packet.FixedString(p.Username, constants.NameLength), constants.NameLength)
	w.WriteFixedString(packet.FixedString(p.Password, constants.NameLength), constants.NameLength)
	_ = w.WriteByte(p.ClientType)
	return w.Bytes()
}
