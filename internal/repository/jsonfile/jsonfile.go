// Package jsonfile stores each collection as a JSON file in a data directory.
package jsonfile

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/msomdec/lotes-map/internal/domain"
)

var _ domain.RecordStore = (*Store)(nil)

// Store maps collection "name" to the file "<dir>/name.json".
type Store struct {
	dir string
}

// New returns a Store rooted at dir. The directory is created on first save.
func New(dir string) *Store {
	return &Store{dir: dir}
}

// Path returns the file backing the given collection.
func (s *Store) Path(collection string) string {
	return filepath.Join(s.dir, collection+".json")
}

func (s *Store) Load(ctx context.Context, collection string) ([]byte, error) {
	data, err := os.ReadFile(s.Path(collection))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("read %s: %w", collection, err)
	}
	return data, nil
}

// Save writes data to a temp file and renames it over the collection file,
// so readers never observe a partially written document.
func (s *Store) Save(ctx context.Context, collection string, data []byte) error {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("create data dir: %w", err)
	}

	tmp, err := os.CreateTemp(s.dir, collection+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("write %s: %w", collection, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close %s: %w", collection, err)
	}
	if err := os.Chmod(tmpName, 0o644); err != nil {
		return fmt.Errorf("chmod %s: %w", collection, err)
	}
	if err := os.Rename(tmpName, s.Path(collection)); err != nil {
		return fmt.Errorf("replace %s: %w", collection, err)
	}
	return nil
}
