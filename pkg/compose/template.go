package compose

import _ "embed"

//go:embed template/cleva_template.tex
var defaultTemplate string

// DefaultTemplate returns the bundled CLEVA-Compass template. It defines the
// anchors D1-0..D11-2, the strip pic, \lentry and a shell style for every
// base and extra colour.
func DefaultTemplate() string { return defaultTemplate }
