package zoneserver

import (
	"fmt"
	"log/slog"

	"github.com/udisondev/ronet/internal/model"
	"github.com/udisondev/ronet/internal/zoneserver/clientpackets"
	"github.com/udisondev/ronet/internal/zoneserver/serverpackets"
)

// RequestMove asks the server to walk the character to x/y.
//
// Без соединения запрос молча отбрасывается: до входа в зону перемещение
// бессмысленно.
func (c *Client) RequestMove(x, y uint16, dir model.Direction) error {
	if !c.conn.Connected() {
		slog.Debug("dropping move request, zone not connected", "x", x, "y", y)
		return nil
	}

	dest := model.NewPosition(x, y, dir)
	if err := c.send(clientpackets.RequestMove2{Dest: dest}.Write()); err != nil {
		return fmt.Errorf("sending CZ_REQUEST_MOVE2: %w", err)
	}
	slog.Debug("move requested", "x", x, "y", y, "dir", dir)
	return nil
}

func (c *Client) decodePlayerMove(frame []byte) (Event, error) {
	p, err := serverpackets.ParsePlayerMove(frame)
	if err != nil {
		return nil, err
	}
	c.serverTick = p.StartTime
	slog.Debug("movement confirmed",
		"src", p.Move.Src(),
		"dst", p.Move.Dst(),
		"tick", p.StartTime)
	return MovementConfirmed{
		Src:        p.Move.Src(),
		Dst:        p.Move.Dst(),
		Move:       p.Move,
		ServerTick: p.StartTime,
	}, nil
}

func (c *Client) decodeMoveStop(frame []byte) (Event, error) {
	p, err := serverpackets.ParseMoveStop(frame)
	if err != nil {
		return nil, err
	}
	return MovementStopped{AID: p.AID, X: p.X, Y: p.Y, ServerTick: c.serverTick}, nil
}
