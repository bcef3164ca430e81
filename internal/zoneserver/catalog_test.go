package zoneserver

import (
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/udisondev/ronet/internal/protocol"
)

// frameFor собирает кадр длины n для записи каталога.
func frameFor(e protocol.Entry, n int) []byte {
	b := make([]byte, n)
	binary.LittleEndian.PutUint16(b, e.ID)
	if !e.Size.IsFixed() {
		binary.LittleEndian.PutUint16(b[e.Size.LengthOffset():], uint16(n))
	}
	return b
}

func TestCatalogEntriesWaitForFullFrame(t *testing.T) {
	for _, e := range Catalog.Entries() {
		n := 32
		if e.Size.IsFixed() {
			n = e.Size.FixedLen()
		}
		t.Run(e.Name, func(t *testing.T) {
			buf := frameFor(e, n)
			calls := 0

			consumed, err := Catalog.Dispatch(buf[:n-1], func(protocol.Entry, []byte) { calls++ })
			require.NoError(t, err)
			assert.Zero(t, consumed)
			assert.Zero(t, calls)

			consumed, err = Catalog.Dispatch(buf, func(got protocol.Entry, frame []byte) {
				calls++
				assert.Equal(t, e.ID, got.ID)
				assert.Len(t, frame, n)
			})
			require.NoError(t, err)
			assert.Equal(t, n, consumed)
			assert.Equal(t, 1, calls)
		})
	}
}
