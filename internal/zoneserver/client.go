package zoneserver

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/udisondev/ronet/internal/constants"
	"github.com/udisondev/ronet/internal/model"
	"github.com/udisondev/ronet/internal/protocol"
	"github.com/udisondev/ronet/internal/transport"
	"github.com/udisondev/ronet/internal/zoneserver/clientpackets"
	"github.com/udisondev/ronet/internal/zoneserver/serverpackets"
)

// ErrInvalidState is returned when an operation is not allowed in the current state.
var ErrInvalidState = errors.New("invalid zone connection state")

// Options tune a Client. Zero values fall back to package defaults.
type Options struct {
	ConnectTimeout time.Duration
	AuthTimeout    time.Duration
	NameCacheTTL   time.Duration
	Transport      transport.Options
}

func (o Options) withDefaults() Options {
	if o.ConnectTimeout <= 0 {
		o.ConnectTimeout = constants.ConnectTimeout
	}
	if o.AuthTimeout <= 0 {
		o.AuthTimeout = constants.AuthTimeout
	}
	if o.NameCacheTTL <= 0 {
		o.NameCacheTTL = constants.NameCacheTTL
	}
	return o
}

// Client talks to the zone server.
//
// Как и клиент character server, Client не запускает горутин и не
// потокобезопасен: владелец вызывает Update раз в тик.
type Client struct {
	opts Options

	conn        *transport.Conn
	state       State
	session     SessionData
	connectedAt time.Time

	spawn      model.Position
	serverTick uint32

	names *nameCache
}

// New creates a disconnected client.
func New(opts Options) *Client {
	opts = opts.withDefaults()
	return &Client{
		opts:  opts,
		names: newNameCache(opts.NameCacheTTL, constants.NameRequestTTL),
	}
}

// Connect opens the connection, sends CZ_ENTER2 and moves to Authenticating.
// now starts the authentication timeout.
func (c *Client) Connect(data SessionData, now time.Time) error {
	c.Disconnect()

	slog.Info("connecting to zone server",
		"addr", data.Address(),
		"map", data.MapName,
		"char_id", data.CharacterID)

	c.state = StateConnecting
	conn, err := transport.Dial(data.Address(), c.opts.ConnectTimeout, c.opts.Transport)
	if err != nil {
		c.state = StateDisconnected
		return fmt.Errorf("connecting to zone server: %w", err)
	}
	c.conn = conn
	c.session = data
	c.connectedAt = now

	enter := clientpackets.Enter2{
		AccountID:  data.AccountID,
		CharID:     data.CharacterID,
		AuthCode:   data.LoginID1,
		ClientTime: uint32(now.Unix()),
		Sex:        data.Sex,
	}
	if err := c.send(enter.Write()); err != nil {
		return fmt.Errorf("sending CZ_ENTER2: %w", err)
	}

	c.state = StateAuthenticating
	slog.Debug("zone state changed", "state", c.state)
	return nil
}

// Connected reports whether the connection is open.
// It says nothing about authentication; see State.
func (c *Client) Connected() bool {
	return c.conn.Connected()
}

// State returns the current connection state.
func (c *Client) State() State {
	return c.state
}

// Session returns the data the current connection was opened with.
func (c *Client) Session() SessionData {
	return c.session
}

// Spawn returns the position from ZC_ACCEPT_ENTER2.
func (c *Client) Spawn() model.Position {
	return c.spawn
}

// ServerTick returns the last server tick seen in any packet.
func (c *Client) ServerTick() uint32 {
	return c.serverTick
}

// EntityName returns a cached entity name.
func (c *Client) EntityName(gid uint32) (string, bool) {
	return c.names.Get(gid)
}

// Disconnect closes the connection and resets all session state.
// It is idempotent.
func (c *Client) Disconnect() {
	if c.conn.Connected() {
		slog.Info("disconnecting from zone server", "addr", c.conn.RemoteAddr(), "state", c.state)
	}
	c.conn.Disconnect()
	c.conn = nil
	c.state = StateDisconnected
	c.session = SessionData{}
	c.connectedAt = time.Time{}
	c.spawn = model.Position{}
	c.serverTick = 0
	c.names.Flush()
}

// NotifyMapLoaded sends CZ_NOTIFY_ACTORINIT once the map scene is ready and
// moves WaitingForMapLoad to Authenticated.
func (c *Client) NotifyMapLoaded() error {
	if c.state != StateWaitingForMapLoad {
		return fmt.Errorf("notify map loaded in %s: %w", c.state, ErrInvalidState)
	}
	if err := c.send(clientpackets.ActorInit{}.Write()); err != nil {
		return fmt.Errorf("sending CZ_NOTIFY_ACTORINIT: %w", err)
	}
	c.state = StateAuthenticated
	slog.Info("zone session ready", "map", c.session.MapName, "spawn", c.spawn)
	return nil
}

// RequestTime sends CZ_REQUEST_TIME2; the server answers with ZC_NOTIFY_TIME.
func (c *Client) RequestTime(clientTime uint32) error {
	return c.send(clientpackets.RequestTime2{ClientTime: clientTime}.Write())
}

// RequestEntityName sends CZ_REQNAME2 unless the name is cached or a request
// for gid is already in flight.
func (c *Client) RequestEntityName(gid uint32) error {
	if !c.names.MarkPending(gid) {
		return nil
	}
	if err := c.send(clientpackets.ReqName2{GID: gid}.Write()); err != nil {
		c.names.Forget(gid)
		return err
	}
	return nil
}

// SendChat sends a public chat line as "name : text".
func (c *Client) SendChat(name, text string) error {
	msg := name + " : " + text
	if 4+len(msg)+1 > constants.MaxFrameLength {
		return fmt.Errorf("chat message of %d bytes: %w", len(msg), transport.ErrInvalidPacket)
	}
	return c.send(clientpackets.RequestChat{Message: msg}.Write())
}

func (c *Client) send(b []byte) error {
	if !c.conn.Connected() {
		return fmt.Errorf("zone server: %w", transport.ErrUnexpectedDisconnect)
	}
	if err := c.conn.Send(b); err != nil {
		c.Disconnect()
		return err
	}
	return nil
}

// Update checks the authentication timeout, then drains the socket and decodes
// every complete packet. An unknown packet id disconnects the client.
func (c *Client) Update(now time.Time) []Event {
	if !c.conn.Connected() {
		return nil
	}

	if c.state == StateAuthenticating && now.Sub(c.connectedAt) > c.opts.AuthTimeout {
		slog.Error("zone authentication timed out", "addr", c.conn.RemoteAddr(), "timeout", c.opts.AuthTimeout)
		c.Disconnect()
		return []Event{ConnectionError{Err: fmt.Errorf("zone authentication: %w", transport.ErrTimeout)}}
	}

	if _, err := c.conn.PollReceive(); err != nil {
		c.Disconnect()
		return []Event{ConnectionError{Err: err}}
	}

	var events []Event
	consumed, err := Catalog.Dispatch(c.conn.Buffer(), func(e protocol.Entry, frame []byte) {
		// ZC_REFUSE_ENTER отключает клиента; остаток буфера уже не нужен.
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
		slog.Error("zone stream corrupted, disconnecting", "err", err)
		c.Disconnect()
		return append(events, ConnectionError{Err: fmt.Errorf("%w: %w", transport.ErrInvalidPacket, err)})
	}
	c.conn.Consume(consumed)
	return events
}

// handle decodes one frame. Decode failures are logged and the frame is dropped.
func (c *Client) handle(e protocol.Entry, frame []byte) Event {
	ev, err := c.decode(e, frame)
	if err != nil {
		slog.Warn("dropping undecodable packet",
			"packet", e.Name,
			"size", len(frame),
			"err", err)
		return nil
	}
	return ev
}

func (c *Client) decode(e protocol.Entry, frame []byte) (Event, error) {
	switch e.ID {
	case constants.ZCAcceptEnter:
		p, err := serverpackets.ParseAcceptEnter(frame)
		if err != nil {
			return nil, err
		}
		if c.state != StateAuthenticating {
			slog.Warn("unexpected ZC_ACCEPT_ENTER2", "state", c.state)
			return nil, nil
		}
		c.spawn = p.Spawn
		c.serverTick = p.StartTime
		c.state = StateWaitingForMapLoad
		slog.Info("zone authentication succeeded",
			"x", p.Spawn.X,
			"y", p.Spawn.Y,
			"dir", p.Spawn.Dir,
			"tick", p.StartTime)
		return AuthenticationSucceeded{
			Spawn:      p.Spawn,
			ServerTick: p.StartTime,
			XSize:      p.XSize,
			YSize:      p.YSize,
			Font:       p.Font,
		}, nil

	case constants.ZCAID:
		p, err := serverpackets.ParseAID(frame)
		if err != nil {
			return nil, err
		}
		slog.Debug("zone server echoed account id", "account_id", p.AccountID)
		return nil, nil

	case constants.ZCRefuseEnter:
		p, err := serverpackets.ParseRefuseEnter(frame)
		if err != nil {
			return nil, err
		}
		reason := serverpackets.RefuseEnterReason(p.ErrorCode)
		slog.Warn("zone authentication refused", "code", p.ErrorCode, "reason", reason)
		c.Disconnect()
		return AuthenticationFailed{Code: p.ErrorCode, Reason: reason}, nil

	case constants.ZCNotifyPlayerMove:
		return c.decodePlayerMove(frame)

	case constants.ZCNotifyMoveStop:
		return c.decodeMoveStop(frame)

	case constants.ZCNotifyTime, constants.ZCNotifyTime2:
		p, err := serverpackets.ParseNotifyTime(frame)
		if err != nil {
			return nil, err
		}
		c.serverTick = p.Tick
		return ServerTimeUpdated{ServerTick: p.Tick}, nil

	case constants.ZCParChange, constants.ZCLongParChange:
		p, err := serverpackets.ParseParChange(frame)
		if err != nil {
			return nil, err
		}
		return ParameterChanged{VarID: p.VarID, Value: p.Value}, nil

	case constants.ZCNotifyVanish:
		p, err := serverpackets.ParseVanish(frame)
		if err != nil {
			return nil, err
		}
		return EntityVanished{GID: p.GID, Type: p.Type}, nil

	case constants.ZCNotifyStandEntry, constants.ZCNotifyNewEntry, constants.ZCNotifyMoveEntry:
		var p *serverpackets.SpawnEntity
		var err error
		switch e.ID {
		case constants.ZCNotifyStandEntry:
			p, err = serverpackets.ParseStandEntry(frame)
		case constants.ZCNotifyNewEntry:
			p, err = serverpackets.ParseNewEntry(frame)
		default:
			p, err = serverpackets.ParseMoveEntry(frame)
		}
		if err != nil {
			return nil, err
		}
		c.names.Set(p.GID, p.Name)
		slog.Debug("entity spawned",
			"kind", p.Kind,
			"type", p.ObjectType,
			"gid", p.GID,
			"name", p.Name,
			"x", p.Position.X,
			"y", p.Position.Y)
		return EntitySpawned{Entity: *p}, nil

	case constants.ZCAckReqName:
		p, err := serverpackets.ParseAckReqName(frame)
		if err != nil {
			return nil, err
		}
		c.names.Set(p.GID, p.Name)
		return EntityNameReceived{GID: p.GID, Name: p.Name}, nil

	case constants.ZCNotifyChat:
		p, err := serverpackets.ParseNotifyChat(frame)
		if err != nil {
			return nil, err
		}
		return ChatReceived{GID: p.GID, Message: p.Message}, nil

	default:
		return nil, fmt.Errorf("no decoder for %s", e.Name)
	}
}
