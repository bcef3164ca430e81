package serverpackets

import (
	"github.com/udisondev/ronet/internal/model"
	"github.com/udisondev/ronet/internal/packet"
)

// PlayerMove [0x0087]: сервер подтвердил перемещение своего персонажа.
//
// Format (12 bytes): [id u16][move_start_time u32][movedata 6]
type PlayerMove struct {
	StartTime uint32
	Move      model.MoveData
}

// ParsePlayerMove parses a complete ZC_NOTIFY_PLAYERMOVE frame.
func ParsePlayerMove(data []byte) (*PlayerMove, error) {
	r := packet.NewReader(data)
	if _, err := readHeader(r, false); err != nil {
		return nil, packet.Malformed("ZC_NOTIFY_PLAYERMOVE", err)
	}

	tick, err := r.ReadUint32()
	if err != nil {
		return nil, packet.Malformed("ZC_NOTIFY_PLAYERMOVE tick", err)
	}
	md, err := readMoveData(r)
	if err != nil {
		return nil, packet.Malformed("ZC_NOTIFY_PLAYERMOVE movedata", err)
	}
	return &PlayerMove{StartTime: tick, Move: model.DecodeMoveData(md)}, nil
}

// MoveStop [0x0088]: объект остановился в клетке x/y.
//
// Format (10 bytes): [id u16][aid u32][x u16][y u16]
type MoveStop struct {
	AID uint32
	X   uint16
	Y   uint16
}

// ParseMoveStop parses a complete ZC_NOTIFY_MOVE_STOP frame.
func ParseMoveStop(data []byte) (*MoveStop, error) {
	r := packet.NewReader(data)
	if _, err := readHeader(r, false); err != nil {
		return nil, packet.Malformed("ZC_NOTIFY_MOVE_STOP", err)
	}

	var p MoveStop
	var err error
	if p.AID, err = r.ReadUint32(); err != nil {
		return nil, packet.Malformed("ZC_NOTIFY_MOVE_STOP aid", err)
	}
	if p.X, err = r.ReadUint16(); err != nil {
		return nil, packet.Malformed("ZC_NOTIFY_MOVE_STOP x", err)
	}
	if p.Y, err = r.ReadUint16(); err != nil {
		return nil, packet.Malformed("ZC_NOTIFY_MOVE_STOP y", err)
	}
	return &p, nil
}
