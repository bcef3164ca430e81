// Package session sequences the character server connection into the zone
// server connection for one login.
package session

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/udisondev/ronet/internal/charserver"
	"github.com/udisondev/ronet/internal/model"
	"github.com/udisondev/ronet/internal/zoneserver"
)

// CharClient is the part of charserver.Client the orchestrator drives.
type CharClient interface {
	Update(now time.Time) []charserver.Event
	Disconnect()
}

// ZoneClient is the part of zoneserver.Client the orchestrator drives.
type ZoneClient interface {
	Connect(data zoneserver.SessionData, now time.Time) error
	Update(now time.Time) []zoneserver.Event
}

// Event is a charserver.Event, a zoneserver.Event, ZoneConnected or
// ZoneConnectionFailed.
type Event any

// ZoneConnected: handoff done, CZ_ENTER2 sent.
type ZoneConnected struct {
	Session zoneserver.SessionData
}

// ZoneConnectionFailed: the zone connection could not be opened.
// The handoff is not retried.
type ZoneConnectionFailed struct {
	Reason string
	Err    error
}

// Handler receives every event of a tick, in order, before Tick returns.
type Handler func(Event)

// Orchestrator owns the credentials and both clients of one login.
//
// Не потокобезопасен: Tick, Subscribe и Reset вызываются из одного цикла.
type Orchestrator struct {
	creds model.Credentials
	char  CharClient
	zone  ZoneClient

	handedOff bool
	handlers  []Handler
}

// New creates an orchestrator. char and zone may be nil while absent;
// pass an untyped nil, not a nil *Client.
func New(creds model.Credentials, char CharClient, zone ZoneClient) *Orchestrator {
	return &Orchestrator{creds: creds, char: char, zone: zone}
}

// Subscribe registers h for all future events.
func (o *Orchestrator) Subscribe(h Handler) {
	o.handlers = append(o.handlers, h)
}

// Credentials returns the login tokens carried to both servers.
func (o *Orchestrator) Credentials() model.Credentials {
	return o.creds
}

// HandedOff reports whether the zone handoff already happened.
func (o *Orchestrator) HandedOff() bool {
	return o.handedOff
}

// Reset re-arms the handoff for a new login.
func (o *Orchestrator) Reset(creds model.Credentials) {
	o.creds = creds
	o.handedOff = false
}

// Tick polls the character client, then the zone client, and returns their
// events in that order. Zone server info from the character server triggers
// the handoff; its result follows the info event immediately.
func (o *Orchestrator) Tick(now time.Time) []Event {
	var out []Event

	if o.char != nil {
		for _, ev := range o.char.Update(now) {
			out = append(out, ev)
			if info, ok := ev.(charserver.ZoneServerInfo); ok {
				if res := o.handoff(info, now); res != nil {
					out = append(out, res)
				}
			}
		}
	}

	if o.zone != nil {
		for _, ev := range o.zone.Update(now) {
			out = append(out, ev)
		}
	}

	for _, ev := range out {
		for _, h := range o.handlers {
			h(ev)
		}
	}
	return out
}

func (o *Orchestrator) handoff(info charserver.ZoneServerInfo, now time.Time) Event {
	if o.handedOff {
		slog.Warn("ignoring zone server info after handoff", "char_id", info.CharID, "map", info.MapName)
		return nil
	}
	o.handedOff = true

	// Character server больше не нужен: сессия живёт на одном сервере.
	o.char.Disconnect()

	data := zoneserver.SessionData{
		AccountID:   o.creds.AccountID,
		CharacterID: info.CharID,
		LoginID1:    o.creds.LoginID1,
		MapName:     info.MapName,
		ServerIP:    info.IP,
		ServerPort:  info.Port,
		Sex:         o.creds.Sex,
	}

	if o.zone == nil {
		err := fmt.Errorf("handoff to %s: no zone client", data.Address())
		return ZoneConnectionFailed{Reason: err.Error(), Err: err}
	}
	if err := o.zone.Connect(data, now); err != nil {
		slog.Error("zone handoff failed", "addr", data.Address(), "err", err)
		return ZoneConnectionFailed{Reason: err.Error(), Err: err}
	}

	slog.Info("handed off to zone server", "addr", data.Address(), "map", data.MapName, "char_id", data.CharacterID)
	return ZoneConnected{Session: data}
}
