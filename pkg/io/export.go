package io

import (
	"encoding/json"
	"io"
	"os"

	"github.com/matzehuels/clevacompass/pkg/compass"
	"github.com/matzehuels/clevacompass/pkg/errors"
)

type document struct {
	Entries []compass.Entry `json:"entries"`
}

// WriteJSON encodes entries as an indented entry document.
func WriteJSON(w io.Writer, entries []compass.Entry) error {
	if entries == nil {
		entries = []compass.Entry{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(document{Entries: entries}); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "encode entry document")
	}
	return nil
}

// ExportJSON writes entries to the file at path, replacing it.
func ExportJSON(path string, entries []compass.Entry) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInvalidPath, err, "create %s", path)
	}
	if err := WriteJSON(f, entries); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
