package compose

import (
	"os"
	"strings"

	"github.com/matzehuels/clevacompass/pkg/compass"
	"github.com/matzehuels/clevacompass/pkg/errors"
)

// Template placeholders.
const (
	LegendPlaceholder      = "%-$LEGEND$"
	OuterPlaceholder       = "%-$OUTER-CIRCLE$"
	InnerPlaceholder       = "%-$INNER-CIRCLE$"
	MethodCountPlaceholder = "%-$NUMBER-OF-METHODS$"
)

// Option configures composition.
type Option func(*config)

type config struct {
	palette *compass.Palette
}

// WithPalette resolves entry colours against p instead of the default
// palette. Use it when extra colours have been registered.
func WithPalette(p *compass.Palette) Option {
	return func(c *config) {
		if p != nil {
			c.palette = p
		}
	}
}

func newConfig(opts []Option) config {
	c := config{palette: compass.DefaultPalette()}
	for _, opt := range opts {
		opt(&c)
	}
	return c
}

// Fill replaces the four placeholders in template with the fragments
// generated from entries.
func Fill(template string, entries []compass.Entry, opts ...Option) string {
	c := newConfig(opts)
	r := strings.NewReplacer(
		LegendPlaceholder, legend(entries, c),
		OuterPlaceholder, OuterRing(entries),
		InnerPlaceholder, innerRing(entries, c),
		MethodCountPlaceholder, MethodCount(entries),
	)
	return r.Replace(template)
}

// FillFile reads the template at path and fills it.
func FillFile(path string, entries []compass.Entry, opts ...Option) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", errors.Wrap(errors.ErrCodeFileNotFound, err, "template %s not found", path)
		}
		return "", errors.Wrap(errors.ErrCodeInvalidPath, err, "read template %s", path)
	}
	return Fill(string(data), entries, opts...), nil
}
