package zoneserver

import (
	"net/netip"

	"github.com/udisondev/ronet/internal/model"
)

// State is the zone connection state.
//
// Переходы идут только вперёд; из любого состояния возможен откат в
// Disconnected при ошибке.
type State int32

const (
	StateDisconnected State = iota
	StateConnecting
	StateAuthenticating
	StateWaitingForMapLoad
	StateAuthenticated
)

// String returns state name.
func (s State) String() string {
	switch s {
	case StateDisconnected:
		return "DISCONNECTED"
	case StateConnecting:
		return "CONNECTING"
	case StateAuthenticating:
		return "AUTHENTICATING"
	case StateWaitingForMapLoad:
		return "WAITING_FOR_MAP_LOAD"
	case StateAuthenticated:
		return "AUTHENTICATED"
	default:
		return "UNKNOWN"
	}
}

// SessionData is everything the zone server needs to admit a character.
// It is built once per handoff and not modified afterwards.
type SessionData struct {
	AccountID   uint32
	CharacterID uint32
	LoginID1    uint32
	MapName     string
	ServerIP    netip.Addr
	ServerPort  uint16
	Sex         model.Sex
}

// Address returns "ip:port" of the zone server.
func (d SessionData) Address() string {
	return netip.AddrPortFrom(d.ServerIP, d.ServerPort).String()
}
