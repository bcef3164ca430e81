// Package capture decodes recorded Ragnarok Online traffic offline.
//
// Every TCP flow is split by direction and framed with the catalog of the
// server its port belongs to. Server answers are decoded with the same
// parsers the clients use.
package capture

import (
	"encoding/binary"
	"fmt"
	"log/slog"
	"net/netip"
	"slices"
	"time"

	"github.com/udisondev/ronet/internal/constants"
	"github.com/udisondev/ronet/internal/protocol"
)

// AccountIDEchoName names the raw account id the character server sends first.
const AccountIDEchoName = "ACCOUNT_ID_ECHO"

// Segment is one TCP segment with its payload.
type Segment struct {
	Time    time.Time
	Src     netip.AddrPort
	Dst     netip.AddrPort
	Seq     uint32
	SYN     bool
	FIN     bool // FIN or RST
	Payload []byte
}

// Packet is one framed protocol packet.
type Packet struct {
	Time      time.Time
	Src       netip.AddrPort
	Dst       netip.AddrPort
	Protocol  Protocol
	Direction Direction
	ID        uint16
	Name      string
	Data      []byte // own copy

	// Decoded holds the parsed server answer, nil when no decoder exists.
	Decoded   any
	DecodeErr error
}

// Stat aggregates packets of one id in one direction.
type Stat struct {
	Protocol     Protocol
	Direction    Direction
	ID           uint16
	Name         string
	Count        int
	Bytes        int
	DecodeErrors int
}

// Summary counts what the analyzer has seen so far.
type Summary struct {
	Segments      int // TCP segments of known protocols
	Ignored       int // frames outside known ports or without TCP
	Packets       int
	BrokenStreams int
	Gaps          int
}

type streamKey struct {
	src, dst netip.AddrPort
}

type statKey struct {
	proto Protocol
	dir   Direction
	id    uint16
}

type stream struct {
	proto   Protocol
	dir     Direction
	catalog *protocol.Catalog

	buf      []byte
	next     uint32
	started  bool
	skipEcho bool
	broken   error
}

// Analyzer reassembles flows and emits packets in capture order.
// It is not safe for concurrent use.
type Analyzer struct {
	ports Ports
	emit  func(Packet)

	streams map[streamKey]*stream
	stats   map[statKey]*Stat
	summary Summary
}

// New creates an analyzer. emit is called for every packet; it may be nil.
func New(ports Ports, emit func(Packet)) *Analyzer {
	if emit == nil {
		emit = func(Packet) {}
	}
	return &Analyzer{
		ports:   ports,
		emit:    emit,
		streams: make(map[streamKey]*stream),
		stats:   make(map[statKey]*Stat),
	}
}

// Feed processes one TCP segment.
func (a *Analyzer) Feed(seg Segment) {
	proto, dir := a.ports.Classify(seg.Src.Port(), seg.Dst.Port())
	if proto == ProtocolUnknown {
		a.summary.Ignored++
		return
	}
	a.summary.Segments++

	key := streamKey{src: seg.Src, dst: seg.Dst}
	s, ok := a.streams[key]
	if !ok || seg.SYN {
		s = &stream{
			proto:   proto,
			dir:     dir,
			catalog: catalogFor(proto, dir),
		}
		a.streams[key] = s
	}

	if seg.SYN {
		s.next = seg.Seq + 1
		s.started = true
		// Эхо account id идёт только в начале соединения.
		s.skipEcho = proto == ProtocolChar && dir == ToClient
	}

	if data := a.accept(s, seg); len(data) > 0 {
		s.buf = append(s.buf, data...)
		a.frame(seg, s)
	}

	if seg.FIN {
		if len(s.buf) > 0 && s.broken == nil {
			slog.Debug("stream closed with incomplete packet",
				"protocol", s.proto,
				"direction", s.dir,
				"buffered", len(s.buf))
		}
		delete(a.streams, key)
	}
}

// accept trims retransmitted bytes and resets the stream on a gap.
func (a *Analyzer) accept(s *stream, seg Segment) []byte {
	data := seg.Payload
	if len(data) == 0 {
		return nil
	}
	if !s.started {
		// Захват начался посреди соединения.
		s.started = true
		s.next = seg.Seq
	}

	end := seg.Seq + uint32(len(data))
	diff := int32(seg.Seq - s.next)
	switch {
	case diff < 0:
		overlap := int(-diff)
		if overlap >= len(data) {
			return nil
		}
		data = data[overlap:]
	case diff > 0:
		a.summary.Gaps++
		slog.Warn("missing bytes in stream, dropping buffered data",
			"protocol", s.proto,
			"direction", s.dir,
			"missing", diff,
			"dropped", len(s.buf))
		s.buf = s.buf[:0]
		s.skipEcho = false
	}
	s.next = end
	return data
}

func (a *Analyzer) frame(seg Segment, s *stream) {
	if s.broken != nil {
		s.buf = s.buf[:0]
		return
	}

	if s.skipEcho {
		if len(s.buf) < constants.AccountIDEchoSize {
			return
		}
		echo := s.buf[:constants.AccountIDEchoSize]
		a.record(seg, s, Packet{
			ID:      0,
			Name:    AccountIDEchoName,
			Data:    slices.Clone(echo),
			Decoded: binary.LittleEndian.Uint32(echo),
		})
		s.buf = append(s.buf[:0], s.buf[constants.AccountIDEchoSize:]...)
		s.skipEcho = false
	}

	consumed, err := s.catalog.Dispatch(s.buf, func(e protocol.Entry, frame []byte) {
		p := Packet{
			ID:   e.ID,
			Name: e.Name,
			Data: slices.Clone(frame),
		}
		p.Decoded, p.DecodeErr = decode(s.proto, s.dir, e.ID, p.Data)
		a.record(seg, s, p)
	})
	s.buf = append(s.buf[:0], s.buf[consumed:]...)

	switch {
	case err != nil:
		s.broken = err
	case len(s.buf) > constants.MaxReceiveBuffer:
		s.broken = fmt.Errorf("%d bytes buffered without a complete packet", len(s.buf))
	}
	if s.broken != nil {
		a.summary.BrokenStreams++
		slog.Warn("stream cannot be framed, ignoring the rest",
			"protocol", s.proto,
			"direction", s.dir,
			"src", seg.Src,
			"dst", seg.Dst,
			"err", s.broken)
		s.buf = nil
	}
}

func (a *Analyzer) record(seg Segment, s *stream, p Packet) {
	p.Time = seg.Time
	p.Src = seg.Src
	p.Dst = seg.Dst
	p.Protocol = s.proto
	p.Direction = s.dir

	key := statKey{proto: s.proto, dir: s.dir, id: p.ID}
	st, ok := a.stats[key]
	if !ok {
		st = &Stat{Protocol: s.proto, Direction: s.dir, ID: p.ID, Name: p.Name}
		a.stats[key] = st
	}
	st.Count++
	st.Bytes += len(p.Data)
	if p.DecodeErr != nil {
		st.DecodeErrors++
	}
	a.summary.Packets++

	a.emit(p)
}

// Stats returns per-packet counters ordered by protocol, direction and id.
func (a *Analyzer) Stats() []Stat {
	out := make([]Stat, 0, len(a.stats))
	for _, st := range a.stats {
		out = append(out, *st)
	}
	slices.SortFunc(out, func(x, y Stat) int {
		if x.Protocol != y.Protocol {
			return int(x.Protocol) - int(y.Protocol)
		}
		if x.Direction != y.Direction {
			return int(x.Direction) - int(y.Direction)
		}
		return int(x.ID) - int(y.ID)
	})
	return out
}

// Summary returns the running totals.
func (a *Analyzer) Summary() Summary {
	return a.summary
}

// NoteIgnored counts a captured frame that carried no TCP segment.
func (a *Analyzer) NoteIgnored() {
	a.summary.Ignored++
}
