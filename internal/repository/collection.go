// Package repository adapts a domain.RecordStore into typed collections.
package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/msomdec/lotes-map/internal/domain"
)

// Collection is a typed view over one named document in a RecordStore.
// The whole slice is read and written on every call.
type Collection[T any] struct {
	store    domain.RecordStore
	name     string
	fallback func() []T
}

// NewCollection returns a collection stored under name. fallback supplies
// the value Load returns when nothing usable is stored; a nil fallback
// means an empty slice.
func NewCollection[T any](store domain.RecordStore, name string, fallback func() []T) *Collection[T] {
	if fallback == nil {
		fallback = func() []T { return []T{} }
	}
	return &Collection[T]{store: store, name: name, fallback: fallback}
}

// Name returns the collection name.
func (c *Collection[T]) Name() string {
	return c.name
}

// Load returns the stored records. It never fails: a missing document,
// a read error or malformed JSON all yield the fallback value.
func (c *Collection[T]) Load(ctx context.Context) []T {
	data, err := c.store.Load(ctx, c.name)
	if err != nil {
		if !errors.Is(err, domain.ErrNotFound) {
			slog.Warn("load collection, using default", "collection", c.name, "error", err)
		}
		return c.fallback()
	}

	var items []T
	if err := json.Unmarshal(data, &items); err != nil {
		slog.Warn("decode collection, using default", "collection", c.name, "error", err)
		return c.fallback()
	}
	if items == nil {
		return c.fallback()
	}
	return items
}

// Save overwrites the stored document with items.
func (c *Collection[T]) Save(ctx context.Context, items []T) error {
	if items == nil {
		items = []T{}
	}
	data, err := json.MarshalIndent(items, "", "  ")
	if err != nil {
		return fmt.Errorf("encode collection %s: %w", c.name, err)
	}
	if err := c.store.Save(ctx, c.name, data); err != nil {
		return fmt.Errorf("save collection %s: %w", c.name, err)
	}
	return nil
}
