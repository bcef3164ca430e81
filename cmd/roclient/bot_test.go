package main

import (
	"bytes"
	"net/netip"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/udisondev/ronet/internal/config"
	"github.com/udisondev/ronet/internal/constants"
	"github.com/udisondev/ronet/internal/model"
	"github.com/udisondev/ronet/internal/testutil"
	"github.com/udisondev/ronet/internal/zoneserver"
)

func tickUntil(t *testing.T, b *bot, done func() bool) {
	t.Helper()
	testutil.PollUntil(t, func() bool {
		require.NoError(t, b.tick(time.Now()))
		return done()
	})
}

func tickUntilError(t *testing.T, b *bot) error {
	t.Helper()
	var err error
	testutil.PollUntil(t, func() bool {
		err = b.tick(time.Now())
		return err != nil
	})
	return err
}

func startBot(t *testing.T, cfg config.Client, out *bytes.Buffer) (*bot, *testutil.FakeServer) {
	t.Helper()

	loginSrv := testutil.NewFakeServer(t)
	cfg.Login.Address = loginSrv.Addr
	cfg.Login.Username = "player"
	cfg.Login.Password = "secret"

	b := newBot(cfg, out)
	t.Cleanup(b.close)
	require.NoError(t, b.start(time.Now()))
	return b, loginSrv
}

func TestBotFullSession(t *testing.T) {
	charSrv := testutil.NewFakeServer(t)
	zoneSrv := testutil.NewFakeServer(t)
	charAddr := netip.MustParseAddrPort(charSrv.Addr)
	zoneAddr := netip.MustParseAddrPort(zoneSrv.Addr)

	var out bytes.Buffer
	b, loginSrv := startBot(t, config.DefaultClient(), &out)

	// Login server.
	loginPeer := loginSrv.Accept(t)
	testutil.ReadN(t, loginPeer, constants.CALoginSize)
	testutil.Write(t, loginPeer, testutil.AcceptLoginPacket(charAddr.Addr().As4(), charAddr.Port()))
	tickUntil(t, b, func() bool { return b.phase == phaseChar })

	// Character server: эхо account id, список, выбор слота 0.
	charPeer := charSrv.Accept(t)
	testutil.ReadN(t, charPeer, constants.CHEnterSize)
	data := testutil.U32(constants.TestAccountID)
	data = append(data, testutil.AcceptEnterPacket(testutil.Character(constants.TestCharacterID, 0, "Tester"))...)
	testutil.Write(t, charPeer, data)
	tickUntil(t, b, func() bool { return b.selected })

	sel := testutil.ReadN(t, charPeer, constants.CHSelectCharSize)
	assert.Equal(t, []byte{0x66, 0x00, 0x00}, sel)

	testutil.Write(t, charPeer, testutil.NotifyZoneServerPacket(constants.TestCharacterID, "prontera", zoneAddr.Addr().As4(), zoneAddr.Port()))
	tickUntil(t, b, func() bool { return b.phase == phaseZone })

	// Zone server.
	zonePeer := zoneSrv.Accept(t)
	testutil.ReadN(t, zonePeer, constants.CZEnter2Size)
	pos := model.NewPosition(156, 191, 4).Encode()
	testutil.Write(t, zonePeer, testutil.Frame(constants.ZCAcceptEnter, testutil.U32(1), pos[:], []byte{5, 5}, testutil.U16(0)))
	tickUntil(t, b, func() bool { return b.phase == phaseInGame })

	actorInit := testutil.ReadN(t, zonePeer, constants.CZNotifyActorInitSize)
	assert.Equal(t, []byte{0x7D, 0x00}, actorInit)

	// Безымянный объект: бот запрашивает имя.
	mob := testutil.EntryPacket(constants.ZCNotifyStandEntry, 110000001, model.ObjectMonster, model.NewPosition(158, 191, 0), "")
	testutil.Write(t, zonePeer, mob)
	tickUntil(t, b, func() bool { return b.progress().Entities == 1 })
	reqName := testutil.ReadN(t, zonePeer, constants.CZReqName2Size)
	assert.Equal(t, testutil.Frame(constants.CZReqName2, testutil.U32(110000001)), reqName)

	s := b.progress()
	assert.Equal(t, phaseInGame, s.Phase)
	assert.Equal(t, zoneserver.StateAuthenticated, s.ZoneState)
	assert.Equal(t, "Tester", s.Character)
	assert.Equal(t, "prontera", s.Map)
	assert.Equal(t, model.NewPosition(156, 191, 4), s.Position)

	text := out.String()
	assert.Contains(t, text, "Local")
	assert.Contains(t, text, "Tester")
	assert.Contains(t, text, "entered map at (156, 191)")
}

func TestBotLoginRefused(t *testing.T) {
	var out bytes.Buffer
	b, loginSrv := startBot(t, config.DefaultClient(), &out)

	peer := loginSrv.Accept(t)
	testutil.ReadN(t, peer, constants.CALoginSize)
	testutil.Write(t, peer, testutil.Frame(constants.ACRefuseLogin, []byte{1}, testutil.Str("", 20)))

	err := tickUntilError(t, b)
	assert.ErrorContains(t, err, "login refused: Incorrect password (code 1)")
	assert.Equal(t, phaseLogin, b.phase)
}

func TestBotServerIndexOutOfRange(t *testing.T) {
	cfg := config.DefaultClient()
	cfg.CharServer.ServerIndex = 3

	var out bytes.Buffer
	b, loginSrv := startBot(t, cfg, &out)

	peer := loginSrv.Accept(t)
	testutil.ReadN(t, peer, constants.CALoginSize)
	testutil.Write(t, peer, testutil.AcceptLoginPacket([4]byte{127, 0, 0, 1}, 6121))

	err := tickUntilError(t, b)
	assert.ErrorIs(t, err, errNoServer)
}

func TestBotCharServerUnreachable(t *testing.T) {
	cfg := config.DefaultClient()
	cfg.CharServer.Address = testutil.UnusedAddr(t)
	cfg.Network.ConnectTimeout = time.Second

	var out bytes.Buffer
	b, loginSrv := startBot(t, cfg, &out)

	peer := loginSrv.Accept(t)
	testutil.ReadN(t, peer, constants.CALoginSize)
	testutil.Write(t, peer, testutil.AcceptLoginPacket([4]byte{127, 0, 0, 1}, 6121))

	err := tickUntilError(t, b)
	assert.ErrorContains(t, err, "connecting to character server")
}

func TestBotWaitsForConfiguredSlot(t *testing.T) {
	b := newBot(config.DefaultClient(), &bytes.Buffer{})
	b.cfg.CharServer.Slot = 2

	// Слота нет в списке: выбор не отправляется, ошибки нет.
	b.selectCharacter([]model.CharacterInfo{testutil.Character(1, 0, "First")})
	assert.False(t, b.selected)
	assert.NoError(t, b.err)
}

func TestPrintCharacters(t *testing.T) {
	var out bytes.Buffer
	printCharacters(&out, []model.CharacterInfo{
		testutil.Character(150001, 0, "Tester"),
		testutil.Character(150002, 1, "Alt"),
	})

	text := out.String()
	assert.Contains(t, text, "SLOT")
	assert.Contains(t, text, "Tester")
	assert.Contains(t, text, "Alt")
	assert.Contains(t, text, "new_1-1.gat")
}

func TestPhaseString(t *testing.T) {
	assert.Equal(t, "login", phaseLogin.String())
	assert.Equal(t, "in-game", phaseInGame.String())
	assert.Equal(t, "unknown", phase(42).String())
}
