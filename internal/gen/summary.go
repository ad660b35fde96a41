package gen

import (
	"fmt"
	"io"
	"sort"

	"acpidts/internal/symtab"
)

// SummaryPrinter renders the completion summary: per-category node
// counts and the per-hardware-ID tally.
type SummaryPrinter struct {
	out io.Writer
}

func NewSummaryPrinter(w io.Writer) *SummaryPrinter {
	return &SummaryPrinter{out: w}
}

// Print writes the summary for one run.
func (p *SummaryPrinter) Print(res *Result) {
	m := res.Model

	fmt.Fprintln(p.out, "---- generation summary ----")

	catCounts := make(map[string]int)
	for _, sd := range m.SoC {
		catCounts[sd.Binding.Category.String()]++
	}
	if m.ClockCtrl != nil {
		catCounts[symtab.CatClock.String()]++
	}
	catCounts[symtab.CatReset.String()] += len(m.ResetCtrls)

	names := make([]string, 0, len(catCounts))
	for name := range catCounts {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Fprintf(p.out, "  %-18s %d\n", name, catCounts[name])
	}
	fmt.Fprintf(p.out, "  %-18s %d\n", "regulators", len(m.Regulators))
	fmt.Fprintf(p.out, "  %-18s %d\n", "i2c probe hits", len(m.I2CProbe))

	fmt.Fprintln(p.out, "hardware-id tally:")
	hidCounts := make(map[string]int)
	for _, d := range res.Devices {
		hidCounts[d.HID]++
	}
	hids := make([]string, 0, len(hidCounts))
	for hid := range hidCounts {
		hids = append(hids, hid)
	}
	sort.Strings(hids)
	for _, hid := range hids {
		binding, known := symtab.Lookup(hid)
		compat := binding.Compatible
		if !known {
			compat = symtab.UnknownSentinel
		}
		fmt.Fprintf(p.out, "  %-10s x%-3d %s\n", hid, hidCounts[hid], compat)
	}

	if res.Stats.DroppedPNP > 0 {
		fmt.Fprintf(p.out, "dropped plug-and-play ids: %d\n", res.Stats.DroppedPNP)
	}
	if res.Stats.DroppedNoHID > 0 {
		fmt.Fprintf(p.out, "dropped devices without hardware-id: %d\n", res.Stats.DroppedNoHID)
	}
	if res.Stats.Deduplicated > 0 {
		fmt.Fprintf(p.out, "duplicate devices merged: %d\n", res.Stats.Deduplicated)
	}
	if res.Stats.ExtraWindows > 0 {
		fmt.Fprintf(p.out, "extra memory windows (ignored): %d\n", res.Stats.ExtraWindows)
	}
	fmt.Fprintf(p.out, "generated %d lines\n", res.Lines)
}
