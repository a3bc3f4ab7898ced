package compose

import (
	"strconv"
	"strings"

	"github.com/matzehuels/clevacompass/pkg/compass"
)

// Path returns the closed polygon through the anchors selected by the
// entry's inner level, e.g. "(D1-0) -- (D2-2) -- ... -- (D11-1) -- cycle".
func Path(e compass.Entry) string {
	var b strings.Builder
	for i, v := range e.Inner.Values() {
		b.WriteString("(D" + strconv.Itoa(i+1) + "-" + strconv.Itoa(int(v)) + ") -- ")
	}
	b.WriteString("cycle")
	return b.String()
}

// InnerRing draws one translucent polygon per entry.
func InnerRing(entries []compass.Entry, opts ...Option) string {
	return innerRing(entries, newConfig(opts))
}

func innerRing(entries []compass.Entry, c config) string {
	var b strings.Builder
	for _, e := range entries {
		color := c.palette.TeX(e.Color)
		b.WriteString(`\draw [color=` + color + ",line width=1.5pt,opacity=0.6, fill=" + color + "!10, fill opacity=0.4] ")
		b.WriteString(Path(e))
		b.WriteString(";\n")
	}
	return b.String()
}

// MethodCount binds the number of entries to \M.
func MethodCount(entries []compass.Entry) string {
	return `\newcommand{\M}{` + strconv.Itoa(len(entries)) + "}"
}
