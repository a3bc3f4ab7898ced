package compose

import (
	"strconv"
	"strings"

	"github.com/matzehuels/clevacompass/pkg/compass"
)

// Angles in degrees.
const (
	// AxisAngle separates the inner level axes D1..D11.
	AxisAngle = 360.0 / compass.NumInner
	// SlotAngle is the width of one outer ring slot.
	SlotAngle = 360.0 / compass.NumOuter
)

// lowerHalf is the last slot index drawn in the upper half of the ring.
const lowerHalf = 7

// Wedge is one outer ring strip: entry Entry's share of slot Slot.
type Wedge struct {
	Entry int
	Slot  int
	Start float64
	End   float64
	Shell string // fill style, "<color>shell"
}

// Wedges returns the outer ring geometry in entry order, then slot order.
// Only attributes that are set produce a wedge.
func Wedges(entries []compass.Entry) []Wedge {
	var out []Wedge
	for e := range entries {
		out = append(out, entryWedges(entries, e)...)
	}
	return out
}

func entryWedges(entries []compass.Entry, e int) []Wedge {
	m := float64(len(entries))
	var out []Wedge
	for s, set := range entries[e].Outer.Slots() {
		if !set {
			continue
		}
		start := float64(s)*SlotAngle + float64(e)*SlotAngle/m
		end := float64(s)*SlotAngle + float64(e+1)*SlotAngle/m
		if s > lowerHalf {
			start, end = end, start
		}
		out = append(out, Wedge{
			Entry: e,
			Slot:  s,
			Start: start,
			End:   end,
			Shell: entries[e].Color + "shell",
		})
	}
	return out
}

// OuterRing emits one strip pic per wedge, grouped by entry.
func OuterRing(entries []compass.Entry) string {
	var b strings.Builder
	for e, entry := range entries {
		b.WriteString("% Entry for: " + entry.Label + "\n")
		for _, w := range entryWedges(entries, e) {
			b.WriteString(`\pic at (0,0){strip={\Instrip,`)
			b.WriteString(formatAngle(w.Start))
			b.WriteByte(',')
			b.WriteString(formatAngle(w.End))
			b.WriteString("," + w.Shell + ", black, {}}};\n")
		}
		b.WriteByte('\n')
	}
	return b.String()
}

// formatAngle prints the shortest decimal that round-trips, always with a
// fractional part: 24 -> "24.0".
func formatAngle(v float64) string {
	s := strconv.FormatFloat(v, 'f', -1, 64)
	if !strings.ContainsRune(s, '.') {
		s += ".0"
	}
	return s
}
