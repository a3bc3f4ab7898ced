package store

import (
	"context"
	"os"
	"path/filepath"
	"sync"

	"github.com/matzehuels/clevacompass/pkg/compass"
	"github.com/matzehuels/clevacompass/pkg/errors"
	cio "github.com/matzehuels/clevacompass/pkg/io"
)

// FileStore keeps the entries in a JSON entry document.
type FileStore struct {
	mu   sync.RWMutex
	path string
}

// NewFileStore creates a store backed by the document at path. The file is
// created on the first Save.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Path returns the document path.
func (s *FileStore) Path() string { return s.path }

// Load reads the document. A missing file is an empty list.
func (s *FileStore) Load(ctx context.Context) ([]compass.Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entries, err := cio.ImportJSON(s.path)
	if errors.Is(err, errors.ErrCodeFileNotFound) {
		return nil, nil
	}
	return entries, err
}

// Save replaces the document. It writes a temporary file first so a failed
// write leaves the previous document intact.
func (s *FileStore) Save(ctx context.Context, entries []compass.Entry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidPath, err, "create %s", dir)
	}
	tmp, err := os.CreateTemp(dir, filepath.Base(s.path)+".*.tmp")
	if err != nil {
		return errors.Wrap(errors.ErrCodeInvalidPath, err, "create temp file in %s", dir)
	}
	defer os.Remove(tmp.Name())

	if err := cio.WriteJSON(tmp, entries); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "write %s", tmp.Name())
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidPath, err, "replace %s", s.path)
	}
	return nil
}

// Close is a no-op.
func (s *FileStore) Close() error { return nil }

var _ Store = (*FileStore)(nil)
