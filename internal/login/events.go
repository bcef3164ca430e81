package login

import (
	"github.com/udisondev/ronet/internal/login/serverpackets"
	"github.com/udisondev/ronet/internal/model"
)

// Event is a login server response delivered by Update.
type Event interface {
	loginEvent()
}

// LoginAccepted carries the session tokens and the character server list.
type LoginAccepted struct {
	Credentials   model.Credentials
	LastLoginTime string
	Servers       []serverpackets.ServerEntry
}

// LoginRefused: сервер отклонил логин. Клиент уже отключён.
type LoginRefused struct {
	Code      uint8
	Reason    string
	BlockDate string
}

// ConnectionError is terminal for the client: it is already disconnected.
type ConnectionError struct {
	Err error
}

func (LoginAccepted) loginEvent()   {}
func (LoginRefused) loginEvent()    {}
func (ConnectionError) loginEvent() {}
