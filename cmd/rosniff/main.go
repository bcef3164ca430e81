// rosniff decodes Ragnarok Online traffic recorded in a pcap file.
//
// Usage:
//
//	go run ./cmd/rosniff -r session.pcap
//	go run ./cmd/rosniff -r session.pcap -v -zone-port 5122
package main

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"

	"github.com/olekukonko/tablewriter"

	"github.com/udisondev/ronet/internal/capture"
)

func main() {
	file := flag.String("r", "", "pcap file to read")
	verbose := flag.Bool("v", false, "dump decoded packet bodies")
	quiet := flag.Bool("q", false, "print only the summary")
	loginPort := flag.Uint("login-port", uint(capture.DefaultPorts.Login), "login server port")
	charPort := flag.Uint("char-port", uint(capture.DefaultPorts.Char), "character server port")
	zonePort := flag.Uint("zone-port", uint(capture.DefaultPorts.Zone), "zone server port")
	flag.Parse()

	if *file == "" {
		fmt.Fprintln(os.Stderr, "error: -r is required")
		flag.Usage()
		os.Exit(2)
	}

	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelWarn,
	})))

	ports := capture.Ports{
		Login: uint16(*loginPort),
		Char:  uint16(*charPort),
		Zone:  uint16(*zonePort),
	}

	if err := sniff(os.Stdout, *file, ports, *verbose, *quiet); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func sniff(w io.Writer, path string, ports capture.Ports, verbose, quiet bool) error {
	var emit func(capture.Packet)
	if !quiet {
		emit = capture.NewPrinter(w, verbose).Print
	}

	a := capture.New(ports, emit)
	if err := a.ReadFile(path); err != nil {
		return err
	}

	fmt.Fprintln(w)
	printStats(w, a.Stats())

	sum := a.Summary()
	fmt.Fprintf(w, "segments:       %d\n", sum.Segments)
	fmt.Fprintf(w, "ignored:        %d\n", sum.Ignored)
	fmt.Fprintf(w, "packets:        %d\n", sum.Packets)
	fmt.Fprintf(w, "gaps:           %d\n", sum.Gaps)
	fmt.Fprintf(w, "broken streams: %d\n", sum.BrokenStreams)
	return nil
}

func printStats(w io.Writer, stats []capture.Stat) {
	tw := tablewriter.NewWriter(w)
	tw.SetHeader([]string{"Protocol", "Dir", "ID", "Name", "Count", "Bytes", "Decode Errors"})
	tw.SetBorder(true)
	tw.SetAutoWrapText(false)

	for _, st := range stats {
		tw.Append([]string{
			st.Protocol.String(),
			st.Direction.String(),
			fmt.Sprintf("0x%04X", st.ID),
			st.Name,
			strconv.Itoa(st.Count),
			strconv.Itoa(st.Bytes),
			strconv.Itoa(st.DecodeErrors),
		})
	}
	tw.Render()
}
