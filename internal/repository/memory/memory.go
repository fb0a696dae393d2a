// Package memory provides an in-memory record store for tests and
// ephemeral runs.
package memory

import (
	"context"
	"sync"

	"github.com/msomdec/lotes-map/internal/domain"
)

// Compile-time check that Store satisfies domain.RecordStore.
var _ domain.RecordStore = (*Store)(nil)

// Store keeps collection documents in a map. It is safe for concurrent use.
type Store struct {
	mu   sync.RWMutex
	docs map[string][]byte
}

// New returns an empty Store.
func New() *Store {
	return &Store{docs: make(map[string][]byte)}
}

func (s *Store) Load(ctx context.Context, collection string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	data, ok := s.docs[collection]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return append([]byte(nil), data...), nil
}

func (s *Store) Save(ctx context.Context, collection string, data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.docs[collection] = append([]byte(nil), data...)
	return nil
}
