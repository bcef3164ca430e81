package charserver

import (
	"encoding/binary"
	"fmt"
	"log/slog"
	"slices"
	"time"

	"github.com/udisondev/ronet/internal/charserver/clientpackets"
	"github.com/udisondev/ronet/internal/charserver/serverpackets"
	"github.com/udisondev/ronet/internal/constants"
	"github.com/udisondev/ronet/internal/model"
	"github.com/udisondev/ronet/internal/protocol"
	"github.com/udisondev/ronet/internal/transport"
)

// Options tune a Client. Zero values fall back to package defaults.
type Options struct {
	ConnectTimeout    time.Duration
	KeepaliveInterval time.Duration
	Transport         transport.Options
}

func (o Options) withDefaults() Options {
	if o.ConnectTimeout <= 0 {
		o.ConnectTimeout = constants.ConnectTimeout
	}
	if o.KeepaliveInterval <= 0 {
		o.KeepaliveInterval = constants.KeepaliveInterval
	}
	return o
}

// CreateRequest holds the fields of a new character.
type CreateRequest struct {
	Name        string
	Slot        uint8
	HairColor   uint16
	HairStyle   uint16
	StartingJob uint16
	Sex         model.Sex
}

// Client talks to the character server.
//
// Client has no goroutines: the owner calls Update once per tick.
// It is not safe for concurrent use.
type Client struct {
	opts Options

	conn       *transport.Conn
	creds      model.Credentials
	acked      bool // account id echo received
	lastSend   time.Time
	unstamped  bool // отправка вне Update, время проставит следующий Update
	characters []model.CharacterInfo

	pendingDelete uint32
}

// New creates a disconnected client.
func New(opts Options) *Client {
	return &Client{opts: opts.withDefaults()}
}

// Connect opens the connection and sends CH_ENTER.
// address is "host:port". Any previous connection is dropped first.
func (c *Client) Connect(address string, creds model.Credentials) error {
	c.Disconnect()

	conn, err := transport.Dial(address, c.opts.ConnectTimeout, c.opts.Transport)
	if err != nil {
		return fmt.Errorf("connecting to character server: %w", err)
	}
	c.conn = conn
	c.creds = creds
	c.acked = false

	slog.Info("connected to character server", "addr", address, "account_id", creds.AccountID)

	enter := clientpackets.Enter{
		AccountID: creds.AccountID,
		LoginID1:  creds.LoginID1,
		LoginID2:  creds.LoginID2,
		Sex:       creds.Sex,
	}
	if err := c.send(enter.Write()); err != nil {
		return fmt.Errorf("sending CH_ENTER: %w", err)
	}
	return nil
}

// Connected reports whether the connection is open.
func (c *Client) Connected() bool {
	return c.conn.Connected()
}

// Characters returns the last known character list.
func (c *Client) Characters() []model.CharacterInfo {
	return slices.Clone(c.characters)
}

// Disconnect closes the connection and clears all connection state.
// It is idempotent.
func (c *Client) Disconnect() {
	if c.conn.Connected() {
		slog.Info("disconnecting from character server", "addr", c.conn.RemoteAddr())
	}
	c.conn.Disconnect()
	c.conn = nil
	c.acked = false
	c.characters = nil
	c.pendingDelete = 0
}

// RequestCharacterList asks the server to resend the character list.
func (c *Client) RequestCharacterList() error {
	c.characters = nil
	return c.send(clientpackets.CharListReq{}.Write())
}

// SelectCharacter picks the character in slot; the server answers with zone info.
func (c *Client) SelectCharacter(slot uint8) error {
	slog.Info("selecting character", "slot", slot)
	return c.send(clientpackets.SelectChar{Slot: slot}.Write())
}

// CreateCharacter submits a new character.
func (c *Client) CreateCharacter(req CreateRequest) error {
	p := clientpackets.MakeChar{
		Name:        req.Name,
		Slot:        req.Slot,
		HairColor:   req.HairColor,
		HairStyle:   req.HairStyle,
		StartingJob: req.StartingJob,
		Sex:         req.Sex,
	}
	return c.send(p.Write())
}

// DeleteCharacter requests deletion; email is the account confirmation string.
func (c *Client) DeleteCharacter(charID uint32, email string) error {
	if err := c.send(clientpackets.DeleteChar{CharID: charID, Email: email}.Write()); err != nil {
		return err
	}
	c.pendingDelete = charID
	return nil
}

// SendKeepalive sends CH_PING unconditionally.
func (c *Client) SendKeepalive() error {
	return c.send(clientpackets.Ping{AccountID: c.creds.AccountID}.Write())
}

func (c *Client) send(b []byte) error {
	if !c.conn.Connected() {
		return fmt.Errorf("character server: %w", transport.ErrUnexpectedDisconnect)
	}
	if err := c.conn.Send(b); err != nil {
		c.Disconnect()
		return err
	}
	c.unstamped = true
	return nil
}

// Update sends a keepalive when due, then drains the socket and decodes every
// complete packet. Transport failures disconnect the client and are reported
// as a single ConnectionError.
func (c *Client) Update(now time.Time) []Event {
	if !c.conn.Connected() {
		return nil
	}

	// Keepalive считается по часам вызывающего, а не по time.Now.
	if c.unstamped {
		c.lastSend = now
		c.unstamped = false
	}
	if now.Sub(c.lastSend) >= c.opts.KeepaliveInterval {
		if err := c.SendKeepalive(); err != nil {
			return []Event{ConnectionError{Err: fmt.Errorf("sending keepalive: %w", err)}}
		}
		c.lastSend = now
		c.unstamped = false
	}

	if _, err := c.conn.PollReceive(); err != nil {
		c.Disconnect()
		return []Event{ConnectionError{Err: err}}
	}

	if !c.acked {
		ok, err := c.consumeAccountEcho()
		if err != nil {
			c.Disconnect()
			return []Event{ConnectionError{Err: err}}
		}
		if !ok {
			return nil
		}
	}

	var events []Event
	consumed, _ := Catalog.Dispatch(c.conn.Buffer(), func(e protocol.Entry, frame []byte) {
		if ev := c.handle(e, frame); ev != nil {
			events = append(events, ev)
		}
	})
	c.conn.Consume(consumed)
	return events
}

// consumeAccountEcho checks the raw 4-byte account id the server sends before
// any packet. It returns false while fewer than 4 bytes are buffered.
func (c *Client) consumeAccountEcho() (bool, error) {
	buf := c.conn.Buffer()
	if len(buf) < constants.AccountIDEchoSize {
		return false, nil
	}

	echo := binary.LittleEndian.Uint32(buf)
	if echo != c.creds.AccountID {
		return false, fmt.Errorf("%w: account id echo %d does not match %d",
			transport.ErrInvalidPacket, echo, c.creds.AccountID)
	}

	c.conn.Consume(constants.AccountIDEchoSize)
	c.acked = true
	slog.Debug("character server acknowledged account", "account_id", echo)
	return true, nil
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
	case constants.HCAcceptEnter:
		p, err := serverpackets.ParseAcceptEnter(frame)
		if err != nil {
			return nil, err
		}
		c.characters = p.Characters
		slog.Info("character list received", "count", len(p.Characters))
		return CharacterListReceived{
			Characters:     slices.Clone(c.characters),
			MaxSlots:       p.MaxSlots,
			AvailableSlots: p.AvailableSlots,
			PremiumSlots:   p.PremiumSlots,
		}, nil

	case constants.HCCharInfoPage:
		p, err := serverpackets.ParseCharInfoPage(frame)
		if err != nil {
			return nil, err
		}
		if p.IsEndMarker() {
			slog.Debug("character page end marker")
			return nil, nil
		}
		for _, ch := range p.Characters {
			c.upsertCharacter(ch)
		}
		return CharacterListReceived{Characters: slices.Clone(c.characters)}, nil

	case constants.HCCharList:
		p, err := serverpackets.ParseCharacterList(frame)
		if err != nil {
			return nil, err
		}
		return SlotInfo{
			Normal:     p.NormalSlots,
			Premium:    p.PremiumSlots,
			Billing:    p.BillingSlots,
			Producible: p.ProducibleSlots,
			Valid:      p.ValidSlots,
		}, nil

	case constants.HCNotifyZone:
		p, err := serverpackets.ParseNotifyZoneServer(frame)
		if err != nil {
			return nil, err
		}
		slog.Info("zone server info received",
			"char_id", p.CharID,
			"map", p.MapName,
			"addr", p.Address())
		return ZoneServerInfo{CharID: p.CharID, MapName: p.MapName, IP: p.IP, Port: p.Port}, nil

	case constants.HCAcceptMake:
		p, err := serverpackets.ParseAcceptMakeChar(frame)
		if err != nil {
			return nil, err
		}
		c.upsertCharacter(p.Character)
		return CharacterCreated{Character: p.Character}, nil

	case constants.HCRefuseMake:
		p, err := serverpackets.ParseRefuse(frame)
		if err != nil {
			return nil, err
		}
		return CharacterCreationFailed{Code: p.ErrorCode, Reason: serverpackets.MakeCharRefusalReason(p.ErrorCode)}, nil

	case constants.HCAcceptDelete:
		id := c.pendingDelete
		c.pendingDelete = 0
		c.characters = slices.DeleteFunc(c.characters, func(ch model.CharacterInfo) bool { return ch.CharID == id })
		return CharacterDeleted{CharID: id}, nil

	case constants.HCRefuseDelete:
		p, err := serverpackets.ParseRefuse(frame)
		if err != nil {
			return nil, err
		}
		c.pendingDelete = 0
		return CharacterDeletionFailed{Code: p.ErrorCode, Reason: serverpackets.DeleteCharRefusalReason(p.ErrorCode)}, nil

	case constants.HCBlockChar:
		p, err := serverpackets.ParseBlockCharacter(frame)
		if err != nil {
			return nil, err
		}
		return BlockedCharacterList{Characters: p.Characters}, nil

	case constants.HCSecondPasswd:
		p, err := serverpackets.ParseSecondPasswdLogin(frame)
		if err != nil {
			return nil, err
		}
		return PincodeState{State: p.State, Description: p.State.Description(), Seed: p.Seed}, nil

	case constants.HCPing:
		// Ответ на keepalive, событий нет.
		return nil, nil

	default:
		return nil, fmt.Errorf("no decoder for %s", e.Name)
	}
}

// upsertCharacter replaces the character with the same id or appends it.
func (c *Client) upsertCharacter(ch model.CharacterInfo) {
	for i := range c.characters {
		if c.characters[i].CharID == ch.CharID {
			c.characters[i] = ch
			return
		}
	}
	c.characters = append(c.characters, ch)
}
