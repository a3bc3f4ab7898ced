package compose

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/matzehuels/clevacompass/pkg/compass"
	"github.com/matzehuels/clevacompass/pkg/errors"
)

var sampleEntries = []compass.Entry{
	{
		Color: "magenta",
		Label: "EWC",
		Inner: compass.InnerLevel{Online: compass.Supervised, Uncertainty: compass.Unsupervised},
		Outer: compass.OuterLevel{Parameters: true, Forgetting: true, Memory: true},
	},
	{
		Color: "blue",
		Label: "GEM",
		Inner: compass.InnerLevel{EpisodicMemory: compass.Unsupervised},
		Outer: compass.OuterLevel{StoredData: true, Forgetting: true},
	},
}

func TestFill(t *testing.T) {
	tmpl := "pre\n" + MethodCountPlaceholder + "\n" + OuterPlaceholder + "\nmid\n" +
		InnerPlaceholder + "\n" + LegendPlaceholder + "post\n"
	got := Fill(tmpl, sampleEntries)

	want := "pre\n" + MethodCount(sampleEntries) + "\n" + OuterRing(sampleEntries) + "\nmid\n" +
		InnerRing(sampleEntries) + "\n" + Legend(sampleEntries) + "post\n"
	if got != want {
		t.Errorf("Fill() =\n%s\nwant\n%s", got, want)
	}
	for _, p := range []string{LegendPlaceholder, OuterPlaceholder, InnerPlaceholder, MethodCountPlaceholder} {
		if strings.Contains(got, p) {
			t.Errorf("placeholder %s left in output", p)
		}
	}
}

func TestFillMissingPlaceholder(t *testing.T) {
	tmpl := "only " + InnerPlaceholder
	got := Fill(tmpl, sampleEntries)
	if got != "only "+InnerRing(sampleEntries) {
		t.Errorf("Fill() = %q", got)
	}
}

func TestFillPassthrough(t *testing.T) {
	tmpl := "% no placeholders here\n\\begin{tikzpicture}\\end{tikzpicture}\n"
	if got := Fill(tmpl, sampleEntries); got != tmpl {
		t.Errorf("Fill() changed a template without placeholders: %q", got)
	}
}

func TestFillDeterministic(t *testing.T) {
	a := Fill(DefaultTemplate(), sampleEntries)
	b := Fill(DefaultTemplate(), sampleEntries)
	if a != b {
		t.Error("Fill() is not deterministic")
	}
}

func TestFillOrderMatters(t *testing.T) {
	swapped := []compass.Entry{sampleEntries[1], sampleEntries[0]}
	if Fill(DefaultTemplate(), sampleEntries) == Fill(DefaultTemplate(), swapped) {
		t.Error("reordering entries should change the output")
	}
}

func TestDefaultTemplate(t *testing.T) {
	tmpl := DefaultTemplate()
	for _, want := range []string{
		LegendPlaceholder, OuterPlaceholder, InnerPlaceholder, MethodCountPlaceholder,
		`\newcommand{\Instrip}`, `pics/strip`, `\newcommand{\lentry}`, `(D\i-2)`,
	} {
		if !strings.Contains(tmpl, want) {
			t.Errorf("DefaultTemplate() missing %q", want)
		}
	}
	for _, c := range append(compass.BaseColors, compass.ExtraColors...) {
		if !strings.Contains(tmpl, "{"+c.Name+"shell}") {
			t.Errorf("DefaultTemplate() missing shell for %s", c.Name)
		}
	}
}

func TestFillFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "template.tex")
	if err := os.WriteFile(path, []byte(MethodCountPlaceholder), 0o644); err != nil {
		t.Fatal(err)
	}

	got, err := FillFile(path, sampleEntries)
	if err != nil {
		t.Fatalf("FillFile() error: %v", err)
	}
	if got != `\newcommand{\M}{2}` {
		t.Errorf("FillFile() = %q", got)
	}

	_, err = FillFile(filepath.Join(dir, "missing.tex"), sampleEntries)
	if !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("FillFile(missing) error = %v, want FILE_NOT_FOUND", err)
	}
}
