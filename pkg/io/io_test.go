package io

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/matzehuels/clevacompass/pkg/compass"
	"github.com/matzehuels/clevacompass/pkg/errors"
)

var sample = []compass.Entry{
	{
		Color: "magenta",
		Label: "EWC (Kirkpatrick et al., 2017)",
		Inner: compass.InnerLevel{Online: compass.Supervised, Uncertainty: compass.Unsupervised},
		Outer: compass.OuterLevel{Forgetting: true, Parameters: true, DataPerTask: true},
	},
	{
		Color: "green",
		Label: "A & B <lab>",
		Inner: compass.InnerLevel{MultipleModels: compass.Unsupervised},
		Outer: compass.OuterLevel{ComputeTime: true, Memory: true},
	},
}

func TestRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteJSON(&buf, sample); err != nil {
		t.Fatalf("WriteJSON() error: %v", err)
	}
	got, err := ReadJSON(&buf)
	if err != nil {
		t.Fatalf("ReadJSON() error: %v", err)
	}
	if diff := cmp.Diff(sample, got); diff != "" {
		t.Errorf("round trip (-want +got):\n%s", diff)
	}
}

func TestWriteJSONKeyOrder(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteJSON(&buf, sample[:1]); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	last := -1
	for _, name := range compass.OuterAttributes {
		i := strings.Index(out, `"`+name+`"`)
		if i < last {
			t.Errorf("outer key %s out of declaration order", name)
		}
		last = i
	}
}

func TestWriteJSONNoHTMLEscape(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteJSON(&buf, sample); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), `"A & B <lab>"`) {
		t.Errorf("label was escaped:\n%s", buf.String())
	}
}

func TestWriteJSONEmpty(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteJSON(&buf, nil); err != nil {
		t.Fatal(err)
	}
	if got := strings.TrimSpace(buf.String()); got != "{\n  \"entries\": []\n}" {
		t.Errorf("WriteJSON(nil) = %q", got)
	}
}

func entryJSON(t *testing.T, drop string) string {
	t.Helper()
	var buf bytes.Buffer
	if err := WriteJSON(&buf, sample[:1]); err != nil {
		t.Fatal(err)
	}
	var doc map[string][]map[string]any
	if err := json.Unmarshal(buf.Bytes(), &doc); err != nil {
		t.Fatal(err)
	}
	e := doc["entries"][0]
	if parent, key, ok := strings.Cut(drop, "."); ok {
		delete(e[parent].(map[string]any), key)
	} else if drop != "" {
		delete(e, drop)
	}
	out, err := json.Marshal(doc)
	if err != nil {
		t.Fatal(err)
	}
	return string(out)
}

func TestReadJSONMissingKeys(t *testing.T) {
	tests := []string{
		"color",
		"label",
		"inner_level",
		"outer_level",
		"inner_level.multiple_models",
		"inner_level.uncertainty",
		"outer_level.compute_time",
		"outer_level.data_per_task",
	}
	for _, key := range tests {
		t.Run(key, func(t *testing.T) {
			_, err := ReadJSON(strings.NewReader(entryJSON(t, key)))
			if !errors.Is(err, errors.ErrCodeInvalidInput) {
				t.Fatalf("ReadJSON() error = %v, want INVALID_INPUT", err)
			}
			if !strings.Contains(err.Error(), "missing key: "+key) {
				t.Errorf("ReadJSON() error = %q, want key %s named", err, key)
			}
		})
	}

	if _, err := ReadJSON(strings.NewReader(entryJSON(t, ""))); err != nil {
		t.Errorf("complete entry rejected: %v", err)
	}
}

func TestReadJSONInvalid(t *testing.T) {
	tests := []struct {
		name  string
		input string
		code  errors.Code
	}{
		{"malformed", `{"entries": [`, errors.ErrCodeInvalidFormat},
		{"no entries key", `{}`, errors.ErrCodeInvalidInput},
		{"inner out of range", strings.Replace(entryJSON(t, ""), `"online":1`, `"online":3`, 1), errors.ErrCodeInvalidInput},
		{"inner not a number", strings.Replace(entryJSON(t, ""), `"online":1`, `"online":"yes"`, 1), errors.ErrCodeInvalidFormat},
		{"outer not a bool", strings.Replace(entryJSON(t, ""), `"memory":false`, `"memory":1`, 1), errors.ErrCodeInvalidFormat},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ReadJSON(strings.NewReader(tt.input))
			if !errors.Is(err, tt.code) {
				t.Errorf("ReadJSON() error = %v, want %s", err, tt.code)
			}
		})
	}
}

func TestReadJSONEmptyList(t *testing.T) {
	got, err := ReadJSON(strings.NewReader(`{"entries": []}`))
	if err != nil || len(got) != 0 {
		t.Errorf("ReadJSON(empty) = %v, %v", got, err)
	}
}

func TestImportFiles(t *testing.T) {
	dir := t.TempDir()
	a := filepath.Join(dir, "a.json")
	b := filepath.Join(dir, "b.json")
	if err := ExportJSON(a, sample[:1]); err != nil {
		t.Fatal(err)
	}
	if err := ExportJSON(b, sample[1:]); err != nil {
		t.Fatal(err)
	}

	got, err := ImportFiles(b, a)
	if err != nil {
		t.Fatalf("ImportFiles() error: %v", err)
	}
	want := []compass.Entry{sample[1], sample[0]}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("ImportFiles() (-want +got):\n%s", diff)
	}

	_, err = ImportFiles(a, filepath.Join(dir, "missing.json"))
	if !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("ImportFiles(missing) error = %v, want FILE_NOT_FOUND", err)
	}
}

func TestExportJSONBadPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "no", "such", "dir", "out.json")
	if err := ExportJSON(path, sample); !errors.Is(err, errors.ErrCodeInvalidPath) {
		t.Errorf("ExportJSON() error = %v, want INVALID_PATH", err)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Error("no file should be written")
	}
}
