package capture

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"net/netip"
	"os"

	"github.com/google/gopacket"
	"github.com/google/gopacket/layers"
	"github.com/google/gopacket/pcapgo"
)

// ReadPcap feeds every TCP segment of a pcap stream to the analyzer.
func (a *Analyzer) ReadPcap(r io.Reader) error {
	pr, err := pcapgo.NewReader(r)
	if err != nil {
		return fmt.Errorf("opening pcap: %w", err)
	}

	src := gopacket.NewPacketSource(pr, pr.LinkType())
	src.DecodeOptions.Lazy = true
	for {
		p, err := src.NextPacket()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("reading pcap: %w", err)
		}
		a.HandlePacket(p)
	}
}

// ReadFile is ReadPcap over a file.
func (a *Analyzer) ReadFile(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	if err := a.ReadPcap(bufio.NewReader(f)); err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	return nil
}

// HandlePacket extracts the TCP segment of a decoded frame.
func (a *Analyzer) HandlePacket(p gopacket.Packet) {
	tcp, ok := p.Layer(layers.LayerTypeTCP).(*layers.TCP)
	if !ok {
		a.NoteIgnored()
		return
	}
	nl := p.NetworkLayer()
	if nl == nil {
		a.NoteIgnored()
		return
	}

	flow := nl.NetworkFlow()
	srcIP, ok1 := netip.AddrFromSlice(flow.Src().Raw())
	dstIP, ok2 := netip.AddrFromSlice(flow.Dst().Raw())
	if !ok1 || !ok2 {
		a.NoteIgnored()
		return
	}

	a.Feed(Segment{
		Time:    p.Metadata().Timestamp,
		Src:     netip.AddrPortFrom(srcIP.Unmap(), uint16(tcp.SrcPort)),
		Dst:     netip.AddrPortFrom(dstIP.Unmap(), uint16(tcp.DstPort)),
		Seq:     tcp.Seq,
		SYN:     tcp.SYN,
		FIN:     tcp.FIN || tcp.RST,
		Payload: tcp.Payload,
	})
}
