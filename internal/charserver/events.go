package charserver

import (
	"net/netip"

	"github.com/udisondev/ronet/internal/charserver/serverpackets"
	"github.com/udisondev/ronet/internal/model"
)

// Event is a decoded character server response delivered by Update.
type Event interface {
	charEvent()
}

// CharacterListReceived carries the full known character list.
type CharacterListReceived struct {
	Characters     []model.CharacterInfo
	MaxSlots       uint8
	AvailableSlots uint8
	PremiumSlots   uint8
}

// ZoneServerInfo is the handoff target for the selected character.
type ZoneServerInfo struct {
	CharID  uint32
	MapName string
	IP      netip.Addr
	Port    uint16
}

// Address returns "ip:port".
func (e ZoneServerInfo) Address() string {
	return netip.AddrPortFrom(e.IP, e.Port).String()
}

type CharacterCreated struct {
	Character model.CharacterInfo
}

type CharacterCreationFailed struct {
	Code   uint8
	Reason string
}

type CharacterDeleted struct {
	CharID uint32
}

type CharacterDeletionFailed struct {
	Code   uint8
	Reason string
}

// SlotInfo reports how many character slots the account has.
type SlotInfo struct {
	Normal     uint8
	Premium    uint8
	Billing    uint8
	Producible uint8
	Valid      uint8
}

type BlockedCharacterList struct {
	Characters []serverpackets.BlockedCharacter
}

type PincodeState struct {
	State       serverpackets.PincodeState
	Description string
	Seed        uint32
}

// ConnectionError is terminal for the client: it is already disconnected.
type ConnectionError struct {
	Err error
}

func (CharacterListReceived) charEvent()   {}
func (ZoneServerInfo) charEvent()          {}
func (CharacterCreated) charEvent()        {}
func (CharacterCreationFailed) charEvent() {}
func (CharacterDeleted) charEvent()        {}
func (CharacterDeletionFailed) charEvent() {}
func (SlotInfo) charEvent()                {}
func (BlockedCharacterList) charEvent()    {}
func (PincodeState) charEvent()            {}
func (ConnectionError) charEvent()         {}
