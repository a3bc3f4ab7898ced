package io

import (
	"encoding/json"
	"io"
	"os"

	"github.com/matzehuels/clevacompass/pkg/compass"
	"github.com/matzehuels/clevacompass/pkg/errors"
)

type rawDocument struct {
	Entries *[]json.RawMessage `json:"entries"`
}

type rawEntry struct {
	Color *string                    `json:"color"`
	Label *string                    `json:"label"`
	Inner map[string]json.RawMessage `json:"inner_level"`
	Outer map[string]json.RawMessage `json:"outer_level"`
}

// ReadJSON decodes an entry document from r. ReadJSON does not close r.
func ReadJSON(r io.Reader) ([]compass.Entry, error) {
	var doc rawDocument
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode entry document")
	}
	if doc.Entries == nil {
		return nil, errors.New(errors.ErrCodeInvalidInput, "missing key: entries")
	}
	return ReadEntries(*doc.Entries)
}

// ReadEntries decodes already split entry objects.
func ReadEntries(raw []json.RawMessage) ([]compass.Entry, error) {
	entries := make([]compass.Entry, 0, len(raw))
	for i, msg := range raw {
		e, err := decodeEntry(msg)
		if err != nil {
			return nil, errors.Wrap(errors.GetCode(err), err, "entry %d", i)
		}
		entries = append(entries, e)
	}
	return entries, nil
}

func decodeEntry(msg json.RawMessage) (compass.Entry, error) {
	var re rawEntry
	if err := json.Unmarshal(msg, &re); err != nil {
		return compass.Entry{}, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode entry")
	}
	switch {
	case re.Color == nil:
		return compass.Entry{}, missingKey("color")
	case re.Label == nil:
		return compass.Entry{}, missingKey("label")
	case re.Inner == nil:
		return compass.Entry{}, missingKey("inner_level")
	case re.Outer == nil:
		return compass.Entry{}, missingKey("outer_level")
	}

	e := compass.Entry{Color: *re.Color, Label: *re.Label}
	for _, name := range compass.InnerAttributes {
		v, ok := re.Inner[name]
		if !ok {
			return compass.Entry{}, missingKey("inner_level." + name)
		}
		var n int
		if err := json.Unmarshal(v, &n); err != nil {
			return compass.Entry{}, errors.Wrap(errors.ErrCodeInvalidFormat, err, "inner_level.%s", name)
		}
		if err := e.Inner.Set(name, compass.TriState(n)); err != nil {
			return compass.Entry{}, err
		}
	}
	for _, name := range compass.OuterAttributes {
		v, ok := re.Outer[name]
		if !ok {
			return compass.Entry{}, missingKey("outer_level." + name)
		}
		var b bool
		if err := json.Unmarshal(v, &b); err != nil {
			return compass.Entry{}, errors.Wrap(errors.ErrCodeInvalidFormat, err, "outer_level.%s", name)
		}
		if err := e.Outer.Set(name, b); err != nil {
			return compass.Entry{}, err
		}
	}
	if err := e.Validate(); err != nil {
		return compass.Entry{}, err
	}
	return e, nil
}

func missingKey(key string) error {
	return errors.New(errors.ErrCodeInvalidInput, "missing key: %s", key)
}

// ImportJSON reads the entry document at path.
func ImportJSON(path string) ([]compass.Entry, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "open %s", path)
		}
		return nil, errors.Wrap(errors.ErrCodeInvalidPath, err, "open %s", path)
	}
	defer f.Close()

	entries, err := ReadJSON(f)
	if err != nil {
		return nil, errors.Wrap(errors.GetCode(err), err, "%s", path)
	}
	return entries, nil
}

// ImportFiles reads every document in paths and concatenates the entries in
// argument order. The first failing file aborts the import.
func ImportFiles(paths ...string) ([]compass.Entry, error) {
	var all []compass.Entry
	for _, p := range paths {
		entries, err := ImportJSON(p)
		if err != nil {
			return nil, err
		}
		all = append(all, entries...)
	}
	return all, nil
}
