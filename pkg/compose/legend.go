package compose

import (
	"strings"

	"github.com/matzehuels/clevacompass/pkg/compass"
)

// legendColumns is the maximum number of entries per legend row.
const legendColumns = 3

// Legend builds the tabular legend. An empty entry list yields "" because an
// empty tabular does not compile.
func Legend(entries []compass.Entry, opts ...Option) string {
	return legend(entries, newConfig(opts))
}

func legend(entries []compass.Entry, c config) string {
	n := len(entries)
	if n == 0 {
		return ""
	}
	cols := min(legendColumns, n)

	var b strings.Builder
	b.WriteString(`\begin{tabular}{` + strings.TrimSpace(strings.Repeat("l ", cols)) + "} \n")
	for i, e := range entries {
		b.WriteString(`\lentry{` + c.palette.TeX(e.Color) + "}{" + e.Label + "}")
		switch {
		case i == n-1:
			b.WriteString(" \\\\ \n")
		case i%legendColumns == legendColumns-1:
			b.WriteString(" \\\\[0.15cm] \n")
		default:
			b.WriteString(" & ")
		}
	}
	b.WriteString("\\end{tabular} \n")
	return b.String()
}
