package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/matzehuels/clevacompass/pkg/compass"
	"github.com/matzehuels/clevacompass/pkg/config"
	"github.com/matzehuels/clevacompass/pkg/errors"
	cio "github.com/matzehuels/clevacompass/pkg/io"
	"github.com/matzehuels/clevacompass/pkg/store"
)

// testEnv is a config file and data document in a temporary directory.
type testEnv struct {
	dir    string
	config string
	data   string
}

func newTestEnv(t *testing.T) testEnv {
	t.Helper()
	dir := t.TempDir()
	env := testEnv{
		dir:    dir,
		config: filepath.Join(dir, "config.toml"),
		data:   filepath.Join(dir, "data.json"),
	}
	src := fmt.Sprintf("data = '%s'\noutput = '%s'\n\n[cache]\nbackend = \"none\"\n",
		env.data, filepath.Join(dir, "cleva_filled.tex"))
	if err := os.WriteFile(env.config, []byte(src), 0o644); err != nil {
		t.Fatal(err)
	}
	return env
}

func (env testEnv) run(t *testing.T, args ...string) error {
	t.Helper()
	c := New(io.Discard, LogInfo)
	root := c.RootCommand()
	root.SetArgs(append([]string{"--config", env.config}, args...))
	root.SetOut(io.Discard)
	root.SetErr(io.Discard)
	return root.ExecuteContext(context.Background())
}

func (env testEnv) entries(t *testing.T) []compass.Entry {
	t.Helper()
	entries, err := store.NewFileStore(env.data).Load(context.Background())
	if err != nil {
		t.Fatalf("load entries: %v", err)
	}
	return entries
}

func TestEntryCommands(t *testing.T) {
	env := newTestEnv(t)

	if err := env.run(t, "entry", "add", "--label", "EWC", "--inner", "online=1,uncertainty=2", "--outer", "forgetting,parameters"); err != nil {
		t.Fatalf("entry add: %v", err)
	}
	if err := env.run(t, "entry", "add", "--label", "GEM", "--color", "blue"); err != nil {
		t.Fatalf("entry add: %v", err)
	}

	got := env.entries(t)
	if len(got) != 2 {
		t.Fatalf("entries = %d, want 2", len(got))
	}
	ewc := got[0]
	if ewc.Color != compass.DefaultColor || ewc.Inner.Online != compass.Supervised || ewc.Inner.Uncertainty != compass.Unsupervised {
		t.Errorf("first entry = %+v", ewc)
	}
	if !ewc.Outer.Forgetting || !ewc.Outer.Parameters || ewc.Outer.Count() != 2 {
		t.Errorf("first entry outer level = %+v", ewc.Outer)
	}

	if err := env.run(t, "entry", "update", "--index", "0", "--label", "EWC++"); err != nil {
		t.Fatalf("entry update: %v", err)
	}
	got = env.entries(t)
	if got[0].Label != "EWC++" || got[0].Inner.Online != compass.Supervised || got[0].Outer.Count() != 2 {
		t.Errorf("update should only change the label, got %+v", got[0])
	}

	if err := env.run(t, "entry", "list"); err != nil {
		t.Fatalf("entry list: %v", err)
	}

	out := filepath.Join(env.dir, "export.json")
	if err := env.run(t, "entry", "export", "--index", "1", "--output", out); err != nil {
		t.Fatalf("entry export: %v", err)
	}
	exported, err := cio.ImportJSON(out)
	if err != nil || len(exported) != 1 || exported[0].Label != "GEM" {
		t.Fatalf("exported = %v, %v", exported, err)
	}

	if err := env.run(t, "entry", "delete", "--index", "1"); err != nil {
		t.Fatalf("entry delete: %v", err)
	}
	if got = env.entries(t); len(got) != 1 || got[0].Label != "EWC++" {
		t.Fatalf("after delete = %v", got)
	}

	if err := env.run(t, "entry", "import", out, out); err != nil {
		t.Fatalf("entry import: %v", err)
	}
	if got = env.entries(t); len(got) != 3 || got[2].Label != "GEM" {
		t.Errorf("after import = %v", got)
	}
}

func TestEntryCommandErrors(t *testing.T) {
	env := newTestEnv(t)
	if err := env.run(t, "entry", "add", "--label", "A"); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name string
		args []string
		code errors.Code
	}{
		{"inner out of range", []string{"entry", "add", "--inner", "online=3"}, errors.ErrCodeInvalidInput},
		{"unknown inner", []string{"entry", "add", "--inner", "speed=1"}, errors.ErrCodeInvalidInput},
		{"unknown outer", []string{"entry", "add", "--outer", "latency"}, errors.ErrCodeInvalidInput},
		{"empty color", []string{"entry", "add", "--color", ""}, errors.ErrCodeInvalidInput},
		{"bad index", []string{"entry", "delete", "--index", "5"}, errors.ErrCodeInvalidIndex},
		{"missing import", []string{"entry", "import", "nope.json"}, errors.ErrCodeFileNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := env.run(t, tt.args...); !errors.Is(err, tt.code) {
				t.Errorf("error = %v, want %s", err, tt.code)
			}
		})
	}
	if got := env.entries(t); len(got) != 1 {
		t.Errorf("failed commands must not change the store, got %d entries", len(got))
	}
}

func TestGenerate(t *testing.T) {
	env := newTestEnv(t)
	if err := env.run(t, "entry", "add", "--label", "EWC", "--outer", "memory"); err != nil {
		t.Fatal(err)
	}

	out := filepath.Join(env.dir, "out.tex")
	if err := env.run(t, "generate", "--output", out); err != nil {
		t.Fatalf("generate: %v", err)
	}
	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{`\newcommand{\M}{1}`, "% Entry for: EWC", `\lentry{magenta}{EWC}`} {
		if !strings.Contains(string(data), want) {
			t.Errorf("output missing %q", want)
		}
	}
}

func TestGenerateCustomTemplateAndData(t *testing.T) {
	env := newTestEnv(t)
	tmpl := filepath.Join(env.dir, "t.tex")
	if err := os.WriteFile(tmpl, []byte("%-$NUMBER-OF-METHODS$"), 0o644); err != nil {
		t.Fatal(err)
	}
	data := filepath.Join(env.dir, "other.json")
	if err := cio.ExportJSON(data, []compass.Entry{{Color: "red", Label: "a"}, {Color: "red", Label: "b"}}); err != nil {
		t.Fatal(err)
	}

	out := filepath.Join(env.dir, "out.tex")
	if err := env.run(t, "generate", "--template", tmpl, "--data", data, "--output", out); err != nil {
		t.Fatalf("generate: %v", err)
	}
	got, _ := os.ReadFile(out)
	if string(got) != `\newcommand{\M}{2}` {
		t.Errorf("output = %q", got)
	}
}

func TestGenerateErrors(t *testing.T) {
	env := newTestEnv(t)
	out := filepath.Join(env.dir, "out.tex")

	err := env.run(t, "generate", "--data", filepath.Join(env.dir, "missing.json"), "--output", out)
	if !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("missing data: error = %v", err)
	}
	err = env.run(t, "generate", "--template", filepath.Join(env.dir, "missing.tex"), "--output", out)
	if !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("missing template: error = %v", err)
	}
	if _, err := os.Stat(out); !os.IsNotExist(err) {
		t.Error("failed generate must not write output")
	}
}

func TestRenderUnsupportedAndUnavailable(t *testing.T) {
	env := newTestEnv(t)

	gif := filepath.Join(env.dir, "compass.gif")
	if err := env.run(t, "render", "--output", gif); err != nil {
		t.Errorf("unsupported format should be reported, not fail: %v", err)
	}
	if _, err := os.Stat(gif); !os.IsNotExist(err) {
		t.Error("unsupported format must not write a file")
	}

	t.Setenv("PATH", t.TempDir())
	svg := filepath.Join(env.dir, "compass.svg")
	if err := env.run(t, "render", "--output", svg); err != nil {
		t.Errorf("missing tools should be a warning, got %v", err)
	}
	if _, err := os.Stat(svg); !os.IsNotExist(err) {
		t.Error("missing tools must not write a file")
	}
}

func TestRenderTeX(t *testing.T) {
	env := newTestEnv(t)
	out := filepath.Join(env.dir, "compass.tex")
	if err := env.run(t, "render", "--output", out); err != nil {
		t.Fatalf("render: %v", err)
	}
	data, _ := os.ReadFile(out)
	if !strings.Contains(string(data), `\newcommand{\M}{0}`) {
		t.Error("tex render should write the filled template")
	}
}

func TestColorsAdd(t *testing.T) {
	env := newTestEnv(t)

	if err := env.run(t, "colors", "add", "teal"); err != nil {
		t.Fatalf("colors add: %v", err)
	}
	if err := env.run(t, "colors", "add", "teal"); err != nil {
		t.Fatalf("colors add twice: %v", err)
	}
	cfg, err := config.Load(env.config)
	if err != nil {
		t.Fatal(err)
	}
	if len(cfg.Colors.Extra) != 1 || cfg.Colors.Extra[0] != "teal" {
		t.Errorf("extra colors = %v", cfg.Colors.Extra)
	}
	if cfg.Data != env.data {
		t.Errorf("saving the config must keep other settings, data = %q", cfg.Data)
	}

	if err := env.run(t, "colors", "list"); err != nil {
		t.Errorf("colors list: %v", err)
	}
	if err := env.run(t, "colors", "add", "navy"); !errors.Is(err, errors.ErrCodeInvalidColor) {
		t.Errorf("colors add navy: error = %v, want INVALID_COLOR", err)
	}
}

func TestBadConfig(t *testing.T) {
	env := newTestEnv(t)
	if err := os.WriteFile(env.config, []byte("[store]\nbackend = \"sqlite\"\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := env.run(t, "entry", "list"); !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("error = %v, want INVALID_INPUT", err)
	}
}
