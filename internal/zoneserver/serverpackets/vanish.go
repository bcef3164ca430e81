package serverpackets

import (
	"github.com/udisondev/ronet/internal/model"
	"github.com/udisondev/ronet/internal/packet"
)

// Vanish [0x0080]: объект исчез из зоны видимости.
//
// Format (7 bytes): [id u16][gid u32][type u8]
type Vanish struct {
	GID  uint32
	Type model.VanishType
}

// ParseVanish parses a complete ZC_NOTIFY_VANISH frame.
func ParseVanish(data []byte) (*Vanish, error) {
	r := packet.NewReader(data)
	if _, err := readHeader(r, false); err != nil {
		return nil, packet.Malformed("ZC_NOTIFY_VANISH", err)
	}

	gid, err := r.ReadUint32()
	if err != nil {
		return nil, packet.Malformed("ZC_NOTIFY_VANISH gid", err)
	}
	typ, err := r.ReadByte()
	if err != nil {
		return nil, packet.Malformed("ZC_NOTIFY_VANISH type", err)
	}
	return &Vanish{GID: gid, Type: model.VanishType(typ)}, nil
}
