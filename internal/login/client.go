// Package login implements the login server exchange that precedes the
// character server: CA_LOGIN out, AC_ACCEPT_LOGIN or AC_REFUSE_LOGIN back.
package login

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/udisondev/ronet/internal/constants"
	"github.com/udisondev/ronet/internal/login/clientpackets"
	"github.com/udisondev/ronet/internal/login/serverpackets"
	"github.com/udisondev/ronet/internal/protocol"
	"github.com/udisondev/ronet/internal/transport"
)

// Options tune a Client. Zero values fall back to package defaults.
type Options struct {
	ConnectTimeout  time.Duration
	ResponseTimeout time.Duration
	// ClientVersion is sent in CA_LOGIN; servers may reject unknown versions.
	ClientVersion uint32
	ClientType    uint8
	Transport     transport.Options
}

func (o Options) withDefaults() Options {
	if o.ConnectTimeout <= 0 {
		o.ConnectTimeout = constants.ConnectTimeout
	}
	if o.ResponseTimeout <= 0 {
		o.ResponseTimeout = constants.LoginResponseTimeout
	}
	return o
}

// Client performs one login attempt per Connect.
// It is poll-driven like the other clients and not safe for concurrent use.
type Client struct {
	opts Options

	conn     *transport.Conn
	state    ConnectionState
	username string
	sentAt   time.Time
	accepted *serverpackets.AcceptLogin
}

// New creates a disconnected client.
func New(opts Options) *Client {
	return &Client{opts: opts.withDefaults()}
}

// Connect opens the connection and sends CA_LOGIN.
// now starts the response timeout.
func (c *Client) Connect(address, username, password string, now time.Time) error {
	c.Disconnect()

	conn, err := transport.Dial(address, c.opts.ConnectTimeout, c.opts.Transport)
	if err != nil {
		return fmt.Errorf("connecting to login server: %w", err)
	}
	c.conn = conn
	c.state = StateConnected
	c.username = username
	c.sentAt = now

	p := clientpackets.Login{
		Version:    c.opts.ClientVersion,
		Username:   username,
		Password:   password,
		ClientType: c.opts.ClientType,
	}
	if err := c.conn.Send(p.Write()); err != nil {
		c.Disconnect()
		return fmt.Errorf("sending CA_LOGIN: %w", err)
	}

	slog.Info("login requested", "addr", address, "user", username)
	return nil
}

// State returns the current connection state.
func (c *Client) State() ConnectionState {
	return c.state
}

// Connected reports whether the connection is open.
func (c *Client) Connected() bool {
	return c.conn.Connected()
}

// Accepted returns the last AC_ACCEPT_LOGIN, or nil.
func (c *Client) Accepted() *serverpackets.AcceptLogin {
	return c.accepted
}

// Disconnect closes the connection and forgets the last result.
func (c *Client) Disconnect() {
	c.close()
	c.state = StateDisconnected
	c.accepted = nil
}

// close drops the socket but keeps the state and the result.
func (c *Client) close() {
	c.conn.Disconnect()
	c.conn = nil
}

// Update checks the response timeout, then drains the socket.
// After LoginAccepted or LoginRefused the connection is closed.
func (c *Client) Update(now time.Time) []Event {
	if !c.conn.Connected() {
		return nil
	}

	if c.state == StateConnected && now.Sub(c.sentAt) > c.opts.ResponseTimeout {
		slog.Error("login server did not answer", "timeout", c.opts.ResponseTimeout)
		c.Disconnect()
		return []Event{ConnectionError{Err: fmt.Errorf("waiting for login response: %w", transport.ErrTimeout)}}
	}

	if _, err := c.conn.PollReceive(); err != nil {
		c.Disconnect()
		return []Event{ConnectionError{Err: err}}
	}

	var events []Event
	consumed, err := Catalog.Dispatch(c.conn.Buffer(), func(e protocol.Entry, frame []byte) {
		if !c.conn.Connected() {
			return
		}
		if ev := c.handle(e, frame); ev != nil {
			events = append(events, ev)
		}
	})
	if !c.conn.Connected() {
		return events
	}
	if err != nil {
		c.Disconnect()
		return append(events, ConnectionError{Err: fmt.Errorf("%w: %w", transport.ErrInvalidPacket, err)})
	}
	c.conn.Consume(consumed)
	return events
}

func (c *Client) handle(e protocol.Entry, frame []byte) Event {
	switch e.ID {
	case constants.ACAcceptLogin:
		p, err := serverpackets.ParseAcceptLogin(frame)
		if err != nil {
			slog.Error("bad AC_ACCEPT_LOGIN", "err", err)
			c.Disconnect()
			return ConnectionError{Err: fmt.Errorf("%w: %w", transport.ErrInvalidPacket, err)}
		}
		c.accepted = p
		c.state = StateAuthedLogin
		c.close()
		slog.Info("login accepted",
			"user", c.username,
			"account_id", p.AccountID,
			"servers", len(p.Servers))
		return LoginAccepted{
			Credentials:   p.Credentials(),
			LastLoginTime: p.LastLoginTime,
			Servers:       p.Servers,
		}

	case constants.ACRefuseLogin:
		p, err := serverpackets.ParseRefuseLogin(frame)
		if err != nil {
			c.Disconnect()
			return ConnectionError{Err: fmt.Errorf("%w: %w", transport.ErrInvalidPacket, err)}
		}
		reason := serverpackets.RefuseLoginReason(p.ErrorCode)
		slog.Warn("login refused", "user", c.username, "code", p.ErrorCode, "reason", reason)
		c.Disconnect()
		return LoginRefused{Code: p.ErrorCode, Reason: reason, BlockDate: p.BlockDate}

	default:
		return nil
	}
}
