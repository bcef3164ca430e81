package zoneserver

import (
	"github.com/udisondev/ronet/internal/model"
	"github.com/udisondev/ronet/internal/zoneserver/serverpackets"
)

// Event is a decoded zone server response delivered by Update.
type Event interface {
	zoneEvent()
}

// AuthenticationSucceeded: сервер принял CZ_ENTER2, клиент ждёт загрузки карты.
type AuthenticationSucceeded struct {
	Spawn      model.Position
	ServerTick uint32
	XSize      uint8
	YSize      uint8
	Font       uint16
}

// AuthenticationFailed: сервер отказал во входе. Клиент уже отключён.
type AuthenticationFailed struct {
	Code   uint8
	Reason string
}

// ConnectionError is terminal for the client: it is already disconnected.
type ConnectionError struct {
	Err error
}

// MovementConfirmed carries the server-accepted path of the own character.
type MovementConfirmed struct {
	Src        model.Position
	Dst        model.Position
	Move       model.MoveData
	ServerTick uint32
}

// MovementStopped: объект остановился. ServerTick: последний известный tick сервера.
type MovementStopped struct {
	AID        uint32
	X          uint16
	Y          uint16
	ServerTick uint32
}

type ServerTimeUpdated struct {
	ServerTick uint32
}

type ParameterChanged struct {
	VarID uint16
	Value uint32
}

type EntityVanished struct {
	GID  uint32
	Type model.VanishType
}

type EntitySpawned struct {
	Entity serverpackets.SpawnEntity
}

type EntityNameReceived struct {
	GID  uint32
	Name string
}

type ChatReceived struct {
	GID     uint32
	Message string
}

func (AuthenticationSucceeded) zoneEvent() {}
func (AuthenticationFailed) zoneEvent()    {}
func (ConnectionError) zoneEvent()         {}
func (MovementConfirmed) zoneEvent()       {}
func (MovementStopped) zoneEvent()         {}
func (ServerTimeUpdated) zoneEvent()       {}
func (ParameterChanged) zoneEvent()        {}
func (EntityVanished) zoneEvent()          {}
func (EntitySpawned) zoneEvent()           {}
func (EntityNameReceived) zoneEvent()      {}
func (ChatReceived) zoneEvent()            {}
