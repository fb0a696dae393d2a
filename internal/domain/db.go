package domain

import "context"

// Database defines lifecycle operations for a database-backed record store.
// Each implementation owns its own migration files and strategy.
type Database interface {
	Migrate(ctx context.Context) error
	Close() error
}
