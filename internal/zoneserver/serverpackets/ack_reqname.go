package serverpackets

import (
	"github.com/udisondev/ronet/internal/constants"
	"github.com/udisondev/ronet/internal/packet"
)

// AckReqName [0x0095]: имя объекта по gid.
//
// Format (30 bytes): [id u16][gid u32][name 24]
type AckReqName struct {
	GID  uint32
	Name string
}

// ParseAckReqName parses a complete ZC_ACK_REQNAME frame.
func ParseAckReqName(data []byte) (*AckReqName, error) {
	r := packet.NewReader(data)
	if _, err := readHeader(r, false); err != nil {
		return nil, packet.Malformed("ZC_ACK_REQNAME", err)
	}

	gid, err := r.ReadUint32()
	if err != nil {
		return nil, packet.Malformed("ZC_ACK_REQNAME gid", err)
	}
	name, err := r.ReadFixedString(constants.NameLength)
	if err != nil {
		return nil, packet.Malformed("ZC_ACK_REQNAME name", err)
	}
	return &AckReqName{GID: gid, Name: name}, nil
}
