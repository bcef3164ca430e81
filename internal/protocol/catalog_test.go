package protocol

import (
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	idPing   = 0x0187
	idNotify = 0x0071
	idList   = 0x006B
)

func testCatalog(policy UnknownPolicy) *Catalog {
	return NewCatalog("test", policy,
		Entry{ID: idPing, Name: "PING", Size: Fixed(6)},
		Entry{ID: idNotify, Name: "NOTIFY", Size: Fixed(28)},
		Entry{ID: idList, Name: "LIST", Size: LengthPrefixed(2)},
	)
}

func fixedPacket(id uint16, size int) []byte {
	b := make([]byte, size)
	binary.LittleEndian.PutUint16(b, id)
	for i := 2; i < size; i++ {
		b[i] = byte(i)
	}
	return b
}

func varPacket(id uint16, length int) []byte {
	b := fixedPacket(id, length)
	binary.LittleEndian.PutUint16(b[2:], uint16(length))
	return b
}

type collected struct {
	ids    []uint16
	frames [][]byte
}

func (c *collected) fn(e Entry, frame []byte) {
	c.ids = append(c.ids, e.ID)
	c.frames = append(c.frames, append([]byte(nil), frame...))
}

func TestDispatchFixedWaitsForLastByte(t *testing.T) {
	cat := testCatalog(Resync)
	for _, e := range cat.Entries() {
		if !e.Size.IsFixed() {
			continue
		}
		t.Run(e.Name, func(t *testing.T) {
			pkt := fixedPacket(e.ID, e.Size.FixedLen())

			var got collected
			n, err := cat.Dispatch(pkt[:len(pkt)-1], got.fn)
			require.NoError(t, err)
			assert.Equal(t, 0, n)
			assert.Empty(t, got.ids)

			n, err = cat.Dispatch(pkt, got.fn)
			require.NoError(t, err)
			assert.Equal(t, len(pkt), n)
			require.Len(t, got.frames, 1)
			assert.Equal(t, pkt, got.frames[0])
		})
	}
}

func TestDispatchVariableWaitsForLength(t *testing.T) {
	cat := testCatalog(Resync)
	pkt := varPacket(idList, 27+175)

	var got collected
	for _, cut := range []int{1, 2, 3, 4, 27, len(pkt) - 1} {
		n, err := cat.Dispatch(pkt[:cut], got.fn)
		require.NoError(t, err)
		assert.Equal(t, 0, n, "cut=%d", cut)
	}
	assert.Empty(t, got.ids)

	n, err := cat.Dispatch(pkt, got.fn)
	require.NoError(t, err)
	assert.Equal(t, len(pkt), n)
	assert.Equal(t, []uint16{idList}, got.ids)
}

func TestDispatchSplitFeedEqualsWholeFeed(t *testing.T) {
	cat := testCatalog(Fatal)
	pkt := fixedPacket(idNotify, 28)

	var whole collected
	_, err := cat.Dispatch(pkt, whole.fn)
	require.NoError(t, err)

	// Имитируем два чтения из сокета: 10 байт, затем остаток.
	var split collected
	buf := append([]byte(nil), pkt[:10]...)
	n, err := cat.Dispatch(buf, split.fn)
	require.NoError(t, err)
	buf = buf[n:]
	buf = append(buf, pkt[10:]...)
	n, err = cat.Dispatch(buf, split.fn)
	require.NoError(t, err)
	assert.Equal(t, len(buf), n)

	assert.Equal(t, whole.frames, split.frames)
}

func TestDispatchPreservesOrder(t *testing.T) {
	cat := testCatalog(Fatal)
	var buf []byte
	buf = append(buf, fixedPacket(idNotify, 28)...)
	buf = append(buf, varPacket(idList, 31)...)
	buf = append(buf, fixedPacket(idPing, 6)...)
	buf = append(buf, fixedPacket(idPing, 6)[:3]...) // trailing partial

	var got collected
	n, err := cat.Dispatch(buf, got.fn)
	require.NoError(t, err)
	assert.Equal(t, []uint16{idNotify, idList, idPing}, got.ids)
	assert.Equal(t, 28+31+6, n)
}

func TestDispatchUnknownResync(t *testing.T) {
	cat := testCatalog(Resync)

	t.Run("plausible length skips whole packet", func(t *testing.T) {
		var buf []byte
		buf = append(buf, varPacket(0x0ABC, 10)...)
		buf = append(buf, fixedPacket(idPing, 6)...)

		var got collected
		n, err := cat.Dispatch(buf, got.fn)
		require.NoError(t, err)
		assert.Equal(t, 16, n)
		assert.Equal(t, []uint16{idPing}, got.ids)
	})

	t.Run("implausible length skips id only", func(t *testing.T) {
		buf := []byte{0xBC, 0x0A, 0x02, 0x00}
		buf = append(buf, fixedPacket(idPing, 6)...)

		var got collected
		n, err := cat.Dispatch(buf, got.fn)
		require.NoError(t, err)
		assert.Equal(t, len(buf), n)
		assert.Equal(t, []uint16{idPing}, got.ids)
	})

	t.Run("length beyond buffer skips id only", func(t *testing.T) {
		buf := []byte{0xBC, 0x0A, 0x00, 0x01, 0, 0}

		var got collected
		n, err := cat.Dispatch(buf, got.fn)
		require.NoError(t, err)
		// id пропущен, следующий 0x0100 тоже неизвестен с длиной 0, хвост из 2 байт ждёт.
		assert.Equal(t, 4, n)
		assert.Empty(t, got.ids)
	})

	t.Run("fewer than four bytes waits", func(t *testing.T) {
		var got collected
		n, err := cat.Dispatch([]byte{0xBC, 0x0A, 0x05}, got.fn)
		require.NoError(t, err)
		assert.Equal(t, 0, n)
	})
}

func TestDispatchUnknownFatal(t *testing.T) {
	cat := testCatalog(Fatal)
	var buf []byte
	buf = append(buf, fixedPacket(idPing, 6)...)
	buf = append(buf, varPacket(0x0ABC, 10)...)
	buf = append(buf, fixedPacket(idPing, 6)...)

	var got collected
	n, err := cat.Dispatch(buf, got.fn)
	require.ErrorIs(t, err, ErrUnknownPacket)
	assert.Equal(t, 6, n)
	assert.Equal(t, []uint16{idPing}, got.ids, "packets after the unknown id must not be dispatched")
}

func TestDispatchBadLengthField(t *testing.T) {
	bad := []byte{0x6B, 0x00, 0x01, 0x00}

	t.Run("fatal", func(t *testing.T) {
		var got collected
		_, err := testCatalog(Fatal).Dispatch(bad, got.fn)
		assert.ErrorIs(t, err, ErrInvalidLength)
	})

	t.Run("resync skips id", func(t *testing.T) {
		buf := append(append([]byte(nil), bad...), fixedPacket(idPing, 6)...)

		var got collected
		n, err := testCatalog(Resync).Dispatch(buf, got.fn)
		require.NoError(t, err)
		assert.Equal(t, []uint16{idPing}, got.ids)
		assert.Equal(t, len(buf), n)
	})
}

func TestNewCatalogDuplicatePanics(t *testing.T) {
	assert.Panics(t, func() {
		NewCatalog("dup", Fatal,
			Entry{ID: 1, Name: "A", Size: Fixed(2)},
			Entry{ID: 1, Name: "B", Size: Fixed(4)},
		)
	})
}

func TestCatalogLookupAndEntries(t *testing.T) {
	cat := testCatalog(Fatal)
	e, ok := cat.Lookup(idNotify)
	require.True(t, ok)
	assert.Equal(t, "NOTIFY", e.Name)
	assert.Equal(t, 28, e.Size.FixedLen())

	_, ok = cat.Lookup(0xFFFF)
	assert.False(t, ok)

	entries := cat.Entries()
	require.Len(t, entries, 3)
	assert.Equal(t, uint16(idList), entries[0].ID)
	assert.Equal(t, uint16(idNotify), entries[1].ID)
	assert.Equal(t, uint16(idPing), entries[2].ID)

	assert.Equal(t, "var@2", entries[0].Size.String())
	assert.Equal(t, "FATAL", cat.Policy().String())
}
