package serverpackets

import (
	"github.com/udisondev/ronet/internal/model"
	"github.com/udisondev/ronet/internal/packet"
)

// AcceptEnter [0x02EB]: zone server принял CZ_ENTER2.
//
// Format (13 bytes):
//
//	[id u16][start_time u32][posdir 3][x_size u8][y_size u8][font u16]
type AcceptEnter struct {
	StartTime uint32
	Spawn     model.Position
	XSize     uint8
	YSize     uint8
	Font      uint16
}

// ParseAcceptEnter parses a complete ZC_ACCEPT_ENTER2 frame.
func ParseAcceptEnter(data []byte) (*AcceptEnter, error) {
	r := packet.NewReader(data)
	if _, err := readHeader(r, false); err != nil {
		return nil, packet.Malformed("ZC_ACCEPT_ENTER2", err)
	}

	var p AcceptEnter
	var err error
	if p.StartTime, err = r.ReadUint32(); err != nil {
		return nil, packet.Malformed("ZC_ACCEPT_ENTER2 start time", err)
	}
	pos, err := readPosition(r)
	if err != nil {
		return nil, packet.Malformed("ZC_ACCEPT_ENTER2 position", err)
	}
	p.Spawn = model.DecodePosition(pos)
	if p.XSize, err = r.ReadByte(); err != nil {
		return nil, packet.Malformed("ZC_ACCEPT_ENTER2 x size", err)
	}
	if p.YSize, err = r.ReadByte(); err != nil {
		return nil, packet.Malformed("ZC_ACCEPT_ENTER2 y size", err)
	}
	if p.Font, err = r.ReadUint16(); err != nil {
		return nil, packet.Malformed("ZC_ACCEPT_ENTER2 font", err)
	}
	return &p, nil
}
