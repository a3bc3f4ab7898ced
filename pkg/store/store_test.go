package store

import (
	"context"
	stderrors "errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/matzehuels/clevacompass/pkg/compass"
	"github.com/matzehuels/clevacompass/pkg/errors"
)

var entries = []compass.Entry{
	{
		Color: "magenta",
		Label: "EWC",
		Inner: compass.InnerLevel{Online: compass.Supervised, Uncertainty: compass.Unsupervised},
		Outer: compass.OuterLevel{Parameters: true, Forgetting: true},
	},
	{
		Color: "teal",
		Label: "GEM",
		Inner: compass.InnerLevel{EpisodicMemory: compass.Unsupervised},
		Outer: compass.OuterLevel{Memory: true},
	},
}

func TestFileStore(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "nested", "entries.json")
	s := NewFileStore(path)
	defer s.Close()

	got, err := s.Load(ctx)
	if err != nil || len(got) != 0 {
		t.Fatalf("Load() on missing file = %v, %v; want empty", got, err)
	}

	if err := s.Save(ctx, entries); err != nil {
		t.Fatalf("Save() error: %v", err)
	}
	got, err = s.Load(ctx)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if diff := cmp.Diff(entries, got); diff != "" {
		t.Errorf("Load() (-want +got):\n%s", diff)
	}

	if err := s.Save(ctx, entries[1:]); err != nil {
		t.Fatal(err)
	}
	got, _ = s.Load(ctx)
	if len(got) != 1 || got[0].Label != "GEM" {
		t.Errorf("Save() should replace the document, got %v", got)
	}

	left, _ := os.ReadDir(filepath.Dir(path))
	if len(left) != 1 {
		t.Errorf("temporary files left behind: %v", left)
	}
}

func TestFileStoreCorrupt(t *testing.T) {
	path := filepath.Join(t.TempDir(), "entries.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := NewFileStore(path).Load(context.Background()); !errors.Is(err, errors.ErrCodeInvalidFormat) {
		t.Errorf("Load() error = %v, want INVALID_FORMAT", err)
	}
}

func TestEntryDocRoundTrip(t *testing.T) {
	for i, e := range entries {
		d := toDoc(i, e)
		if d.Position != i || len(d.Inner) != compass.NumInner || len(d.Outer) != compass.NumOuter {
			t.Fatalf("toDoc() = %+v", d)
		}
		got, err := fromDoc(d)
		if err != nil {
			t.Fatalf("fromDoc() error: %v", err)
		}
		if diff := cmp.Diff(e, got); diff != "" {
			t.Errorf("round trip (-want +got):\n%s", diff)
		}
	}
}

func TestFromDocInvalid(t *testing.T) {
	d := toDoc(3, entries[0])
	d.Inner["online"] = 7
	if _, err := fromDoc(d); !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("fromDoc() error = %v, want INVALID_INPUT", err)
	}
}

func TestFromDocMissingKey(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*entryDoc)
	}{
		{"inner key", func(d *entryDoc) { delete(d.Inner, "online") }},
		{"outer key", func(d *entryDoc) { delete(d.Outer, "forgetting") }},
		{"no inner map", func(d *entryDoc) { d.Inner = nil }},
		{"no outer map", func(d *entryDoc) { d.Outer = nil }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := toDoc(0, entries[0])
			tt.mutate(&d)
			if _, err := fromDoc(d); !errors.Is(err, errors.ErrCodeInvalidInput) {
				t.Errorf("fromDoc() error = %v, want INVALID_INPUT", err)
			}
		})
	}
}

// memCollection is an in-memory entryCollection with injectable failures.
type memCollection struct {
	gen        string
	docs       []entryDoc
	failInsert bool
	failHead   bool
}

var errDown = stderrors.New("connection reset")

func (c *memCollection) head(context.Context) (string, error) { return c.gen, nil }

func (c *memCollection) setHead(_ context.Context, gen string) error {
	if c.failHead {
		return errDown
	}
	c.gen = gen
	return nil
}

func (c *memCollection) find(_ context.Context, gen string) ([]entryDoc, error) {
	var out []entryDoc
	for _, d := range c.docs {
		if d.Generation == gen {
			out = append(out, d)
		}
	}
	return out, nil
}

func (c *memCollection) insert(_ context.Context, docs []entryDoc) error {
	if c.failInsert {
		// Ordered inserts may land a prefix before failing.
		c.docs = append(c.docs, docs[0])
		return errDown
	}
	c.docs = append(c.docs, docs...)
	return nil
}

func (c *memCollection) deleteWhere(match func(entryDoc) bool) {
	kept := c.docs[:0]
	for _, d := range c.docs {
		if !match(d) {
			kept = append(kept, d)
		}
	}
	c.docs = kept
}

func (c *memCollection) deleteGeneration(_ context.Context, gen string) error {
	c.deleteWhere(func(d entryDoc) bool { return d.Generation == gen })
	return nil
}

func (c *memCollection) deleteStale(_ context.Context, keep string) error {
	c.deleteWhere(func(d entryDoc) bool { return d.Generation != keep })
	return nil
}

func TestMongoStoreSave(t *testing.T) {
	ctx := context.Background()
	coll := &memCollection{}
	s := &MongoStore{coll: coll}

	got, err := s.Load(ctx)
	if err != nil || len(got) != 0 {
		t.Fatalf("Load() before Save = %v, %v; want empty", got, err)
	}
	if err := s.Save(ctx, entries); err != nil {
		t.Fatalf("Save() error: %v", err)
	}
	if err := s.Save(ctx, entries[1:]); err != nil {
		t.Fatalf("Save() error: %v", err)
	}
	got, err = s.Load(ctx)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if diff := cmp.Diff(entries[1:], got); diff != "" {
		t.Errorf("Load() (-want +got):\n%s", diff)
	}
	if len(coll.docs) != 1 {
		t.Errorf("stale generations left: %d documents", len(coll.docs))
	}

	if err := s.Save(ctx, nil); err != nil {
		t.Fatalf("Save(nil) error: %v", err)
	}
	if got, _ := s.Load(ctx); len(got) != 0 {
		t.Errorf("Load() after Save(nil) = %v, want empty", got)
	}
}

func TestMongoStoreSaveFailureKeepsEntries(t *testing.T) {
	tests := []struct {
		name string
		fail func(*memCollection)
	}{
		{"insert", func(c *memCollection) { c.failInsert = true }},
		{"head update", func(c *memCollection) { c.failHead = true }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			coll := &memCollection{}
			s := &MongoStore{coll: coll}
			if err := s.Save(ctx, entries); err != nil {
				t.Fatal(err)
			}

			tt.fail(coll)
			if err := s.Save(ctx, entries[1:]); !errors.Is(err, errors.ErrCodeNetwork) {
				t.Fatalf("Save() error = %v, want NETWORK_ERROR", err)
			}

			got, err := s.Load(ctx)
			if err != nil {
				t.Fatalf("Load() error: %v", err)
			}
			if diff := cmp.Diff(entries, got); diff != "" {
				t.Errorf("previous entries lost (-want +got):\n%s", diff)
			}
			if len(coll.docs) != len(entries) {
				t.Errorf("failed generation not discarded: %d documents", len(coll.docs))
			}
		})
	}
}

func TestNewMongoStoreUnreachable(t *testing.T) {
	ctx := context.Background()
	_, err := NewMongoStore(ctx, MongoConfig{URI: "mongodb://127.0.0.1:1/?serverSelectionTimeoutMS=200", Timeout: 500 * time.Millisecond})
	if !errors.Is(err, errors.ErrCodeUnavailable) {
		t.Errorf("NewMongoStore() error = %v, want UNAVAILABLE", err)
	}
}
