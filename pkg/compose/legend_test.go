package compose

import (
	"strings"
	"testing"

	"github.com/matzehuels/clevacompass/pkg/compass"
)

func entriesWithColors(colors ...string) []compass.Entry {
	out := make([]compass.Entry, len(colors))
	for i, c := range colors {
		out[i] = compass.Entry{Color: c, Label: string(rune('a' + i))}
	}
	return out
}

func TestLegend(t *testing.T) {
	tests := []struct {
		name    string
		entries []compass.Entry
		want    string
	}{
		{
			name: "empty",
			want: "",
		},
		{
			name:    "single",
			entries: entriesWithColors("magenta"),
			want:    "\\begin{tabular}{l} \n\\lentry{magenta}{a} \\\\ \n\\end{tabular} \n",
		},
		{
			name:    "one full row",
			entries: entriesWithColors("magenta", "green", "blue"),
			want: "\\begin{tabular}{l l l} \n" +
				"\\lentry{magenta}{a} & \\lentry{green!50!black}{b} & \\lentry{blue!70!black}{c} \\\\ \n" +
				"\\end{tabular} \n",
		},
		{
			name:    "short last row",
			entries: entriesWithColors("magenta", "green", "blue", "violet"),
			want: "\\begin{tabular}{l l l} \n" +
				"\\lentry{magenta}{a} & \\lentry{green!50!black}{b} & \\lentry{blue!70!black}{c} \\\\[0.15cm] \n" +
				"\\lentry{violet}{d} \\\\ \n" +
				"\\end{tabular} \n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Legend(tt.entries); got != tt.want {
				t.Errorf("Legend() =\n%q\nwant\n%q", got, tt.want)
			}
		})
	}
}

func TestLegendRows(t *testing.T) {
	for n := 1; n <= 10; n++ {
		got := Legend(entriesWithColors(strings.Split(strings.Repeat("cyan ", n), " ")[:n]...))
		rows := (n + legendColumns - 1) / legendColumns
		if c := strings.Count(got, `\\[0.15cm]`); c != rows-1 {
			t.Errorf("n=%d: %d row gaps, want %d", n, c, rows-1)
		}
		if c := strings.Count(got, `\lentry`); c != n {
			t.Errorf("n=%d: %d entries, want %d", n, c, n)
		}
		if strings.Contains(got, "& \\end") || strings.Contains(got, "& \\\\") {
			t.Errorf("n=%d: dangling separator in %q", n, got)
		}
	}
}

func TestLegendPalette(t *testing.T) {
	p := compass.DefaultPalette()
	if err := p.Register("teal"); err != nil {
		t.Fatal(err)
	}
	got := Legend(entriesWithColors("teal"), WithPalette(p))
	if !strings.Contains(got, `\lentry{teal}{a}`) {
		t.Errorf("Legend() = %q, want teal entry", got)
	}
}
