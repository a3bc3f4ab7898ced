package compass

import (
	"slices"

	"github.com/matzehuels/clevacompass/pkg/errors"
)

// Color is a named compass colour.
type Color struct {
	Name string `json:"name"`
	TeX  string `json:"tex"` // xcolor expression used in legend and inner ring
	Hex  string `json:"hex"` // display value for terminals and UIs
}

// DefaultColor is the colour preselected for new entries.
const DefaultColor = "magenta"

// BaseColors is the fixed palette every compass starts with.
var BaseColors = []Color{
	{Name: "magenta", TeX: "magenta", Hex: "#f364b8"},
	{Name: "green", TeX: "green!50!black", Hex: "#62b162"},
	{Name: "blue", TeX: "blue!70!black", Hex: "#3879e6"},
	{Name: "orange", TeX: "orange!90!black", Hex: "#ec953f"},
	{Name: "cyan", TeX: "cyan!90!black", Hex: "#74c9ea"},
	{Name: "brown", TeX: "brown!90!black", Hex: "#d7a269"},
}

// ExtraColors is the secondary pool that can be registered at runtime.
var ExtraColors = []Color{
	{Name: "lime", TeX: "lime", Hex: "#bfff00"},
	{Name: "pink", TeX: "pink", Hex: "#ffc0c1"},
	{Name: "purple", TeX: "purple", Hex: "#be0040"},
	{Name: "teal", TeX: "teal", Hex: "#008080"},
	{Name: "lightgray", TeX: "lightgray", Hex: "#bfbfbf"},
}

// Palette maps colour names to colours. It is seeded with BaseColors and
// grows by registering names from the ExtraColors pool.
type Palette struct {
	active []Color
	pool   []Color
}

// DefaultPalette returns a palette with the base colours active and the full
// extra pool available.
func DefaultPalette() *Palette {
	return &Palette{
		active: slices.Clone(BaseColors),
		pool:   slices.Clone(ExtraColors),
	}
}

// Register moves the named colour from the pool into the active palette.
// Registering an already active colour is a no-op.
func (p *Palette) Register(name string) error {
	if _, ok := p.Lookup(name); ok {
		return nil
	}
	i := slices.IndexFunc(p.pool, func(c Color) bool { return c.Name == name })
	if i < 0 {
		return errors.New(errors.ErrCodeInvalidColor, "color %q is not in the extra color pool", name)
	}
	p.active = append(p.active, p.pool[i])
	p.pool = slices.Delete(p.pool, i, i+1)
	return nil
}

// Lookup returns the active colour with the given name.
func (p *Palette) Lookup(name string) (Color, bool) {
	i := slices.IndexFunc(p.active, func(c Color) bool { return c.Name == name })
	if i < 0 {
		return Color{}, false
	}
	return p.active[i], true
}

// TeX returns the xcolor expression for name. Names outside the palette are
// passed through unchanged so free-form xcolor names keep working.
func (p *Palette) TeX(name string) string {
	if c, ok := p.Lookup(name); ok {
		return c.TeX
	}
	return name
}

// Colors returns the active colours in registration order.
func (p *Palette) Colors() []Color { return slices.Clone(p.active) }

// Names returns the active colour names in registration order.
func (p *Palette) Names() []string {
	names := make([]string, len(p.active))
	for i, c := range p.active {
		names[i] = c.Name
	}
	return names
}

// Pool returns the colours that can still be registered.
func (p *Palette) Pool() []Color { return slices.Clone(p.pool) }
