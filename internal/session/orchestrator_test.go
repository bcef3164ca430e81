package session

import (
	"errors"
	"net/netip"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/udisondev/ronet/internal/charserver"
	"github.com/udisondev/ronet/internal/constants"
	"github.com/udisondev/ronet/internal/model"
	"github.com/udisondev/ronet/internal/testutil"
	"github.com/udisondev/ronet/internal/zoneserver"
)

var testCreds = model.Credentials{
	AccountID: constants.TestAccountID,
	LoginID1:  constants.TestLoginID1,
	LoginID2:  constants.TestLoginID2,
	Sex:       model.SexFemale,
}

type fakeChar struct {
	events       [][]charserver.Event
	disconnected int
}

func (f *fakeChar) Update(time.Time) []charserver.Event {
	if len(f.events) == 0 {
		return nil
	}
	ev := f.events[0]
	f.events = f.events[1:]
	return ev
}

func (f *fakeChar) Disconnect() { f.disconnected++ }

type fakeZone struct {
	err      error
	connects []zoneserver.SessionData
	events   []zoneserver.Event
}

func (f *fakeZone) Connect(data zoneserver.SessionData, _ time.Time) error {
	f.connects = append(f.connects, data)
	return f.err
}

func (f *fakeZone) Update(time.Time) []zoneserver.Event {
	ev := f.events
	f.events = nil
	return ev
}

func zoneInfo(charID uint32) charserver.ZoneServerInfo {
	return charserver.ZoneServerInfo{
		CharID:  charID,
		MapName: "prontera.gat",
		IP:      netip.MustParseAddr("10.0.0.5"),
		Port:    5121,
	}
}

func TestHandoff(t *testing.T) {
	char := &fakeChar{events: [][]charserver.Event{{zoneInfo(150001)}}}
	zone := &fakeZone{}
	o := New(testCreds, char, zone)

	events := o.Tick(time.Now())
	require.Len(t, events, 2)
	assert.IsType(t, charserver.ZoneServerInfo{}, events[0])

	connected, ok := events[1].(ZoneConnected)
	require.True(t, ok)
	want := zoneserver.SessionData{
		AccountID:   constants.TestAccountID,
		CharacterID: 150001,
		LoginID1:    constants.TestLoginID1,
		MapName:     "prontera.gat",
		ServerIP:    netip.MustParseAddr("10.0.0.5"),
		ServerPort:  5121,
		Sex:         model.SexFemale,
	}
	assert.Equal(t, want, connected.Session)
	assert.Equal(t, []zoneserver.SessionData{want}, zone.connects)
	assert.Equal(t, 1, char.disconnected)
	assert.True(t, o.HandedOff())
}

func TestHandoffFailure(t *testing.T) {
	char := &fakeChar{events: [][]charserver.Event{{zoneInfo(150001)}}}
	zone := &fakeZone{err: errors.New("connection refused")}
	o := New(testCreds, char, zone)

	events := o.Tick(time.Now())
	require.Len(t, events, 2)
	failed, ok := events[1].(ZoneConnectionFailed)
	require.True(t, ok)
	assert.Contains(t, failed.Reason, "connection refused")
	assert.ErrorIs(t, failed.Err, zone.err)
	assert.Equal(t, 1, char.disconnected)
}

func TestHandoffIsOneShot(t *testing.T) {
	char := &fakeChar{events: [][]charserver.Event{
		{zoneInfo(150001)},
		{zoneInfo(150002)},
	}}
	zone := &fakeZone{err: errors.New("refused")}
	o := New(testCreds, char, zone)

	o.Tick(time.Now())
	events := o.Tick(time.Now())
	require.Len(t, events, 1, "second zone info is forwarded but not acted on")
	assert.Len(t, zone.connects, 1)

	o.Reset(testCreds)
	char.events = [][]charserver.Event{{zoneInfo(150003)}}
	o.Tick(time.Now())
	require.Len(t, zone.connects, 2)
	assert.Equal(t, uint32(150003), zone.connects[1].CharacterID)
}

func TestHandoffWithoutZoneClient(t *testing.T) {
	char := &fakeChar{events: [][]charserver.Event{{zoneInfo(1)}}}
	o := New(testCreds, char, nil)

	events := o.Tick(time.Now())
	require.Len(t, events, 2)
	assert.IsType(t, ZoneConnectionFailed{}, events[1])
}

func TestTickOrderAndHandlers(t *testing.T) {
	char := &fakeChar{events: [][]charserver.Event{{charserver.SlotInfo{Normal: 9}}}}
	zone := &fakeZone{events: []zoneserver.Event{zoneserver.ServerTimeUpdated{ServerTick: 5}}}
	o := New(testCreds, char, zone)

	var a, b []Event
	o.Subscribe(func(ev Event) { a = append(a, ev) })
	o.Subscribe(func(ev Event) { b = append(b, ev) })

	events := o.Tick(time.Now())
	require.Len(t, events, 2)
	assert.IsType(t, charserver.SlotInfo{}, events[0])
	assert.IsType(t, zoneserver.ServerTimeUpdated{}, events[1])
	assert.Equal(t, events, a)
	assert.Equal(t, events, b)
}

func TestTickWithoutClients(t *testing.T) {
	o := New(testCreds, nil, nil)
	assert.Empty(t, o.Tick(time.Now()))
	assert.Equal(t, testCreds, o.Credentials())
}

// Полный путь по настоящим TCP соединениям: выбор персонажа → zone info →
// CZ_ENTER2 → ZC_ACCEPT_ENTER2.
func TestHandoffOverTCP(t *testing.T) {
	charSrv := testutil.NewFakeServer(t)
	zoneSrv := testutil.NewFakeServer(t)

	char := charserver.New(charserver.Options{})
	require.NoError(t, char.Connect(charSrv.Addr, testCreds))
	t.Cleanup(char.Disconnect)
	zone := zoneserver.New(zoneserver.Options{})
	t.Cleanup(zone.Disconnect)

	o := New(testCreds, char, zone)

	charPeer := charSrv.Accept(t)
	testutil.ReadN(t, charPeer, constants.CHEnterSize)

	zoneAddr := netip.MustParseAddrPort(zoneSrv.Addr)
	data := testutil.U32(constants.TestAccountID)
	data = append(data, testutil.NotifyZoneServerPacket(constants.TestCharacterID, "prontera.gat", zoneAddr.Addr().As4(), zoneAddr.Port())...)
	testutil.Write(t, charPeer, data)

	tick := func() []Event { return o.Tick(time.Now()) }
	events := testutil.Collect(t, tick, testutil.HasType[ZoneConnected, Event])
	assert.True(t, testutil.HasType[charserver.ZoneServerInfo](events))
	assert.False(t, char.Connected())
	assert.Equal(t, zoneserver.StateAuthenticating, zone.State())

	zonePeer := zoneSrv.Accept(t)
	enter := testutil.ReadN(t, zonePeer, constants.CZEnter2Size)
	assert.Equal(t, []byte{0x36, 0x04}, enter[:2])

	pos := model.NewPosition(156, 191, 4).Encode()
	testutil.Write(t, zonePeer, testutil.Frame(constants.ZCAcceptEnter, testutil.U32(1), pos[:], []byte{5, 5}, testutil.U16(0)))

	events = testutil.Collect(t, tick, testutil.HasType[zoneserver.AuthenticationSucceeded, Event])
	ev, _ := testutil.FindType[zoneserver.AuthenticationSucceeded](events)
	assert.Equal(t, model.NewPosition(156, 191, 4), ev.Spawn)
	assert.Equal(t, zoneserver.StateWaitingForMapLoad, zone.State())
}
