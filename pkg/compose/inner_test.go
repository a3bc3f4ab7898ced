package compose

import (
	"fmt"
	"strings"
	"testing"

	"github.com/matzehuels/clevacompass/pkg/compass"
)

func TestPath(t *testing.T) {
	e := compass.Entry{Inner: compass.InnerLevel{
		MultipleModels: compass.Unsupervised,
		Online:         compass.Supervised,
		Uncertainty:    compass.Unsupervised,
	}}
	want := "(D1-2) -- (D2-0) -- (D3-1) -- (D4-0) -- (D5-0) -- (D6-0) -- " +
		"(D7-0) -- (D8-0) -- (D9-0) -- (D10-0) -- (D11-2) -- cycle"
	if got := Path(e); got != want {
		t.Errorf("Path() = %q, want %q", got, want)
	}
}

func TestPathAnchors(t *testing.T) {
	got := Path(compass.Entry{})
	parts := strings.Split(got, " -- ")
	if len(parts) != compass.NumInner+1 {
		t.Fatalf("Path() has %d parts, want %d", len(parts), compass.NumInner+1)
	}
	if parts[len(parts)-1] != "cycle" {
		t.Errorf("Path() does not close: %q", got)
	}
	for i, p := range parts[:compass.NumInner] {
		if !strings.HasPrefix(p, fmt.Sprintf("(D%d-", i+1)) {
			t.Errorf("anchor %d = %q", i, p)
		}
	}
}

func TestInnerRing(t *testing.T) {
	entries := []compass.Entry{{Color: "green"}, {Color: "violet"}}
	got := InnerRing(entries)
	lines := strings.Split(strings.TrimSuffix(got, "\n"), "\n")
	if len(lines) != 2 {
		t.Fatalf("InnerRing() has %d lines, want 2", len(lines))
	}
	wantPrefix := `\draw [color=green!50!black,line width=1.5pt,opacity=0.6, fill=green!50!black!10, fill opacity=0.4] (D1-0)`
	if !strings.HasPrefix(lines[0], wantPrefix) {
		t.Errorf("line 0 = %q, want prefix %q", lines[0], wantPrefix)
	}
	if !strings.HasPrefix(lines[1], `\draw [color=violet,`) || !strings.HasSuffix(lines[1], "-- cycle;") {
		t.Errorf("line 1 = %q", lines[1])
	}
}

func TestMethodCount(t *testing.T) {
	tests := map[int]string{
		0: `\newcommand{\M}{0}`,
		4: `\newcommand{\M}{4}`,
	}
	for n, want := range tests {
		if got := MethodCount(make([]compass.Entry, n)); got != want {
			t.Errorf("MethodCount(%d) = %q, want %q", n, got, want)
		}
	}
}
