package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/udisondev/ronet/internal/charserver"
	"github.com/udisondev/ronet/internal/config"
	"github.com/udisondev/ronet/internal/login"
	"github.com/udisondev/ronet/internal/model"
	"github.com/udisondev/ronet/internal/session"
	"github.com/udisondev/ronet/internal/transport"
	"github.com/udisondev/ronet/internal/zoneserver"
)

var (
	errNoServer    = errors.New("no character server to connect to")
	errNoCharacter = errors.New("no character in the configured slot")
)

type phase int32

const (
	phaseLogin phase = iota
	phaseChar
	phaseZone
	phaseInGame
)

func (p phase) String() string {
	switch p {
	case phaseLogin:
		return "login"
	case phaseChar:
		return "char"
	case phaseZone:
		return "zone"
	case phaseInGame:
		return "in-game"
	default:
		return "unknown"
	}
}

// snapshot is what the status reporter prints.
type snapshot struct {
	Phase     phase
	ZoneState zoneserver.State
	Character string
	Map       string
	Position  model.Position
	Entities  int
}

// statusBoard is written by the tick loop and read by the reporter.
type statusBoard struct {
	mu   sync.Mutex
	snap snapshot
}

func (s *statusBoard) update(fn func(*snapshot)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn(&s.snap)
}

func (s *statusBoard) get() snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snap
}

// bot drives one login through the character server into the zone.
// All methods except status are called from the tick loop.
type bot struct {
	cfg config.Client
	out io.Writer

	login *login.Client
	char  *charserver.Client
	zone  *zoneserver.Client
	orch  *session.Orchestrator

	phase    phase
	selected bool
	entities map[uint32]struct{}
	err      error
	status   statusBoard
}

func newBot(cfg config.Client, out io.Writer) *bot {
	tr := transport.Options{
		MaxBuffer:    cfg.Network.MaxReceiveBuffer,
		WriteTimeout: cfg.Network.WriteTimeout,
		PollWait:     cfg.Network.PollWait,
	}
	return &bot{
		cfg: cfg,
		out: out,
		login: login.New(login.Options{
			ConnectTimeout:  cfg.Network.ConnectTimeout,
			ResponseTimeout: cfg.Login.Timeout,
			ClientVersion:   cfg.Login.ClientVersion,
			ClientType:      cfg.Login.ClientType,
			Transport:       tr,
		}),
		char: charserver.New(charserver.Options{
			ConnectTimeout:    cfg.Network.ConnectTimeout,
			KeepaliveInterval: cfg.CharServer.KeepaliveInterval,
			Transport:         tr,
		}),
		zone: zoneserver.New(zoneserver.Options{
			ConnectTimeout: cfg.Network.ConnectTimeout,
			AuthTimeout:    cfg.Zone.AuthTimeout,
			NameCacheTTL:   cfg.Zone.NameCacheTTL,
			Transport:      tr,
		}),
		entities: make(map[uint32]struct{}),
	}
}

// start sends the login request.
func (b *bot) start(now time.Time) error {
	slog.Info("logging in", "addr", b.cfg.Login.Address, "username", b.cfg.Login.Username)
	if err := b.login.Connect(b.cfg.Login.Address, b.cfg.Login.Username, b.cfg.Login.Password, now); err != nil {
		return fmt.Errorf("login: %w", err)
	}
	return nil
}

// tick polls the active client. A non-nil error ends the session.
func (b *bot) tick(now time.Time) error {
	if b.phase == phaseLogin {
		for _, ev := range b.login.Update(now) {
			b.onLogin(ev, now)
			if b.err != nil {
				break
			}
		}
	} else {
		b.orch.Tick(now)
	}
	return b.err
}

// close drops every connection.
func (b *bot) close() {
	b.login.Disconnect()
	b.char.Disconnect()
	b.zone.Disconnect()
}

func (b *bot) fail(err error) {
	if b.err == nil {
		b.err = err
	}
}

func (b *bot) setPhase(p phase) {
	b.phase = p
	b.status.update(func(s *snapshot) { s.Phase = p })
}

func (b *bot) onLogin(ev login.Event, now time.Time) {
	switch ev := ev.(type) {
	case login.LoginAccepted:
		printServers(b.out, ev.Servers)

		addr := b.cfg.CharServer.Address
		if addr == "" {
			idx := b.cfg.CharServer.ServerIndex
			if idx < 0 || idx >= len(ev.Servers) {
				b.fail(fmt.Errorf("%w: index %d of %d", errNoServer, idx, len(ev.Servers)))
				return
			}
			addr = ev.Servers[idx].Address()
		}

		b.orch = session.New(ev.Credentials, b.char, b.zone)
		b.orch.Subscribe(b.onSession)
		if err := b.char.Connect(addr, ev.Credentials); err != nil {
			b.fail(err)
			return
		}
		b.setPhase(phaseChar)

	case login.LoginRefused:
		b.fail(fmt.Errorf("login refused: %s (code %d)", ev.Reason, ev.Code))

	case login.ConnectionError:
		b.fail(fmt.Errorf("login server: %w", ev.Err))
	}
}

func (b *bot) onSession(ev session.Event) {
	switch ev := ev.(type) {
	case charserver.CharacterListReceived:
		printCharacters(b.out, ev.Characters)
		b.selectCharacter(ev.Characters)

	case charserver.PincodeState:
		slog.Info("pincode state", "state", ev.Description)

	case charserver.ConnectionError:
		if !b.orch.HandedOff() {
			b.fail(fmt.Errorf("character server: %w", ev.Err))
		}

	case session.ZoneConnected:
		b.setPhase(phaseZone)
		b.status.update(func(s *snapshot) {
			s.Map = ev.Session.MapName
			s.ZoneState = b.zone.State()
		})

	case session.ZoneConnectionFailed:
		b.fail(fmt.Errorf("zone handoff: %w", ev.Err))

	case zoneserver.AuthenticationSucceeded:
		if err := b.zone.NotifyMapLoaded(); err != nil {
			b.fail(err)
			return
		}
		b.setPhase(phaseInGame)
		b.status.update(func(s *snapshot) {
			s.Position = ev.Spawn
			s.ZoneState = b.zone.State()
		})
		fmt.Fprintf(b.out, "entered map at (%d, %d)\n", ev.Spawn.X, ev.Spawn.Y)

	case zoneserver.AuthenticationFailed:
		b.fail(fmt.Errorf("zone refused entry: %s (code %d)", ev.Reason, ev.Code))

	case zoneserver.ConnectionError:
		b.fail(fmt.Errorf("zone server: %w", ev.Err))

	case zoneserver.MovementConfirmed:
		b.status.update(func(s *snapshot) { s.Position = ev.Dst })

	case zoneserver.EntitySpawned:
		b.entities[ev.Entity.GID] = struct{}{}
		if ev.Entity.Name == "" {
			if err := b.zone.RequestEntityName(ev.Entity.GID); err != nil {
				slog.Warn("requesting entity name", "gid", ev.Entity.GID, "err", err)
			}
		}
		b.status.update(func(s *snapshot) { s.Entities = len(b.entities) })

	case zoneserver.EntityVanished:
		delete(b.entities, ev.GID)
		b.status.update(func(s *snapshot) { s.Entities = len(b.entities) })

	case zoneserver.ChatReceived:
		fmt.Fprintf(b.out, "[chat] %s\n", ev.Message)

	case zoneserver.EntityNameReceived:
		slog.Debug("entity name", "gid", ev.GID, "name", ev.Name)
	}
}

// selectCharacter picks the configured slot once it shows up in the list.
func (b *bot) selectCharacter(chars []model.CharacterInfo) {
	if b.selected {
		return
	}
	slot := b.cfg.CharServer.Slot
	for _, ch := range chars {
		if ch.CharNum != slot {
			continue
		}
		if err := b.char.SelectCharacter(slot); err != nil {
			b.fail(err)
			return
		}
		b.selected = true
		b.status.update(func(s *snapshot) { s.Character = ch.Name })
		return
	}
	// Список может прийти страницами: ждём следующую.
	if len(chars) > 0 {
		slog.Debug("configured slot not in list yet", "slot", slot, "characters", len(chars))
	}
}

// progress returns a copy of the current status. Safe for concurrent use.
func (b *bot) progress() snapshot {
	return b.status.get()
}
