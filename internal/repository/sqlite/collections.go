package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/msomdec/lotes-map/internal/domain"
)

var _ domain.RecordStore = (*CollectionStore)(nil)

// CollectionStore implements domain.RecordStore with one BLOB row per collection.
type CollectionStore struct {
	db *sql.DB
}

func (s *CollectionStore) Load(ctx context.Context, collection string) ([]byte, error) {
	var data []byte
	err := s.db.QueryRowContext(ctx,
		"SELECT data FROM collections WHERE name = ?", collection,
	).Scan(&data)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get collection: %w", err)
	}
	return data, nil
}

func (s *CollectionStore) Save(ctx context.Context, collection string, data []byte) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO collections (name, data, updated_at) VALUES (?, ?, ?)
		 ON CONFLICT(name) DO UPDATE SET data = excluded.data, updated_at = excluded.updated_at`,
		collection, data, time.Now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("save collection: %w", err)
	}
	return nil
}
