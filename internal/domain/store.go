package domain

import "context"

// Collection names used by the record stores.
const (
	CollectionPlots = "lotes"
	CollectionUsers = "users"
)

// RecordStore persists whole collections as opaque JSON documents. Every
// Save replaces the previous document for that collection.
type RecordStore interface {
	// Load returns the stored document, or ErrNotFound when the collection
	// has never been saved.
	Load(ctx context.Context, collection string) ([]byte, error)
	Save(ctx context.Context, collection string, data []byte) error
}
