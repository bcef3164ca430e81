package protocol

import (
	"encoding/binary"
	"errors"
	"fmt"
	"log/slog"
	"slices"

	"github.com/udisondev/ronet/internal/constants"
)

var (
	// ErrUnknownPacket is returned by a Fatal catalog when the next id is not registered.
	ErrUnknownPacket = errors.New("protocol: unknown packet id")

	// ErrInvalidLength is returned by a Fatal catalog when a variable packet announces
	// a length shorter than its own header.
	ErrInvalidLength = errors.New("protocol: invalid packet length")
)

// Size describes how the total length of a packet is determined.
// Exactly one of the two forms is set: Fixed(n) or LengthPrefixed(offset).
type Size struct {
	fixed        int
	lengthOffset int
	variable     bool
}

// Fixed returns a Size for packets that always occupy n bytes.
func Fixed(n int) Size {
	return Size{fixed: n}
}

// LengthPrefixed returns a Size for packets whose uint16 total length sits at offset.
func LengthPrefixed(offset int) Size {
	return Size{lengthOffset: offset, variable: true}
}

// IsFixed reports whether the packet has a fixed length.
func (s Size) IsFixed() bool { return !s.variable }

// FixedLen returns the fixed length (0 for variable packets).
func (s Size) FixedLen() int { return s.fixed }

// LengthOffset returns the offset of the length field (0 for fixed packets).
func (s Size) LengthOffset() int { return s.lengthOffset }

func (s Size) String() string {
	if s.variable {
		return fmt.Sprintf("var@%d", s.lengthOffset)
	}
	return fmt.Sprintf("%d", s.fixed)
}

// Entry is one catalog row.
type Entry struct {
	ID   uint16
	Name string
	Size Size
}

// UnknownPolicy decides what happens when the next id is not in the catalog.
type UnknownPolicy int

const (
	// Resync guesses a length from bytes 2-3 and skips the packet, or skips the id alone.
	Resync UnknownPolicy = iota
	// Fatal stops dispatch; the caller is expected to disconnect.
	Fatal
)

func (p UnknownPolicy) String() string {
	switch p {
	case Resync:
		return "RESYNC"
	case Fatal:
		return "FATAL"
	default:
		return "UNKNOWN"
	}
}

// Catalog maps packet ids of one server protocol to their wire layout.
// It is immutable after NewCatalog and safe for concurrent reads.
type Catalog struct {
	name    string
	policy  UnknownPolicy
	entries map[uint16]Entry
}

// NewCatalog builds a catalog. Duplicate ids are a programming error and panic.
func NewCatalog(name string, policy UnknownPolicy, entries ...Entry) *Catalog {
	c := &Catalog{
		name:    name,
		policy:  policy,
		entries: make(map[uint16]Entry, len(entries)),
	}
	for _, e := range entries {
		if _, dup := c.entries[e.ID]; dup {
			panic(fmt.Sprintf("protocol: duplicate packet 0x%04X in %s catalog", e.ID, name))
		}
		if e.Size.IsFixed() && e.Size.fixed < constants.PacketIDSize {
			panic(fmt.Sprintf("protocol: packet 0x%04X in %s catalog is shorter than its id", e.ID, name))
		}
		c.entries[e.ID] = e
	}
	return c
}

// Name returns the protocol name used in logs.
func (c *Catalog) Name() string { return c.name }

// Policy returns the unknown-id policy.
func (c *Catalog) Policy() UnknownPolicy { return c.policy }

// Lookup returns the entry registered for id.
func (c *Catalog) Lookup(id uint16) (Entry, bool) {
	e, ok := c.entries[id]
	return e, ok
}

// Entries returns all entries ordered by id.
func (c *Catalog) Entries() []Entry {
	out := make([]Entry, 0, len(c.entries))
	for _, e := range c.entries {
		out = append(out, e)
	}
	slices.SortFunc(out, func(a, b Entry) int { return int(a.ID) - int(b.ID) })
	return out
}

// Dispatch splits buf into complete packets and calls fn for each one in wire order.
// frame is a subslice of buf and is only valid during the call.
//
// It returns how many bytes from the front of buf were consumed (dispatched or skipped).
// Dispatch stops when fewer than 2 bytes remain or the next packet is incomplete.
// With a Fatal policy an unknown id or a bad length field stops dispatch with an error;
// bytes before the offending packet are still reported as consumed.
func (c *Catalog) Dispatch(buf []byte, fn func(e Entry, frame []byte)) (int, error) {
	pos := 0
	for len(buf)-pos >= constants.PacketIDSize {
		rest := buf[pos:]
		id := binary.LittleEndian.Uint16(rest)

		e, ok := c.entries[id]
		if !ok {
			n, wait, err := c.unknown(id, rest)
			if err != nil {
				return pos, err
			}
			if wait {
				break
			}
			pos += n
			continue
		}

		size, wait, err := c.frameLen(e, rest)
		if errors.Is(err, errSkipID) {
			pos += constants.PacketIDSize
			continue
		}
		if err != nil {
			return pos, err
		}
		if wait {
			break
		}

		fn(e, rest[:size])
		pos += size
	}
	return pos, nil
}

// frameLen returns the total length of the known packet at the front of rest.
// A bad length field under Resync yields errSkipID.
func (c *Catalog) frameLen(e Entry, rest []byte) (size int, wait bool, err error) {
	if e.Size.IsFixed() {
		if len(rest) < e.Size.fixed {
			return 0, true, nil
		}
		return e.Size.fixed, false, nil
	}

	off := e.Size.lengthOffset
	if len(rest) < off+2 {
		return 0, true, nil
	}
	length := int(binary.LittleEndian.Uint16(rest[off:]))
	if length < off+2 || length < constants.MinFrameLength {
		if c.policy == Fatal {
			return 0, false, fmt.Errorf("%s packet %s (0x%04X) length %d: %w", c.name, e.Name, e.ID, length, ErrInvalidLength)
		}
		slog.Error("invalid packet length, skipping id",
			"protocol", c.name,
			"packet", e.Name,
			"length", length)
		// Пропускаем только id и надеемся на ресинхронизацию.
		return 0, false, errSkipID
	}
	if len(rest) < length {
		return 0, true, nil
	}
	return length, false, nil
}

var errSkipID = errors.New("skip id")

// unknown handles an unregistered id according to the catalog policy.
// It returns how many bytes to skip, or wait=true when more data is needed.
func (c *Catalog) unknown(id uint16, rest []byte) (skip int, wait bool, err error) {
	if c.policy == Fatal {
		return 0, false, fmt.Errorf("%s packet 0x%04X: %w", c.name, id, ErrUnknownPacket)
	}

	if len(rest) < constants.MinFrameLength {
		return 0, true, nil
	}

	length := int(binary.LittleEndian.Uint16(rest[constants.LengthFieldOffset:]))
	if length >= constants.MinFrameLength && length <= constants.MaxFrameLength && length <= len(rest) {
		slog.Warn("skipping unknown packet",
			"protocol", c.name,
			"packet", fmt.Sprintf("0x%04X", id),
			"size", length)
		return length, false, nil
	}

	// Длину определить нельзя: пропускаем 2 байта id. Поток может рассинхронизироваться.
	slog.Error("cannot determine size of unknown packet, skipping id",
		"protocol", c.name,
		"packet", fmt.Sprintf("0x%04X", id),
		"guessed_length", length,
		"buffered", len(rest))
	return constants.PacketIDSize, false, nil
}
