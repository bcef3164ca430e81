package capture

import (
	"encoding/hex"
	"fmt"
	"io"

	"github.com/davecgh/go-spew/spew"
)

// Printer writes one line per packet. Verbose adds the decoded body,
// or a hex dump when there is no decoder.
type Printer struct {
	w       io.Writer
	verbose bool
	spew    *spew.ConfigState
}

// NewPrinter creates a Printer writing to w.
func NewPrinter(w io.Writer, verbose bool) *Printer {
	return &Printer{
		w:       w,
		verbose: verbose,
		spew: &spew.ConfigState{
			Indent:                  "  ",
			DisablePointerAddresses: true,
			DisableCapacities:       true,
			SortKeys:                true,
		},
	}
}

// Print writes p.
func (pr *Printer) Print(p Packet) {
	fmt.Fprintf(pr.w, "%s %-5s %s %s -> %s 0x%04X %-26s %5d\n",
		p.Time.Format("15:04:05.000000"),
		p.Protocol,
		p.Direction,
		p.Src,
		p.Dst,
		p.ID,
		p.Name,
		len(p.Data))

	if !pr.verbose {
		return
	}
	switch {
	case p.DecodeErr != nil:
		fmt.Fprintf(pr.w, "decode error: %v\n", p.DecodeErr)
		fmt.Fprint(pr.w, hex.Dump(p.Data))
	case p.Decoded != nil:
		pr.spew.Fdump(pr.w, p.Decoded)
	default:
		fmt.Fprint(pr.w, hex.Dump(p.Data))
	}
}
