package service

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/msomdec/lotes-map/internal/domain"
	"github.com/msomdec/lotes-map/internal/repository"
)

// PlotService manages the plot collection. Every mutation loads the whole
// collection, changes it in memory and writes it back.
type PlotService struct {
	plots *repository.Collection[domain.Plot]
	now   func() time.Time

	// mu serializes read-modify-write cycles within this process.
	mu sync.Mutex
}

// NewPlotService creates a PlotService over store. A nil clock uses time.Now.
func NewPlotService(store domain.RecordStore, now func() time.Time) *PlotService {
	if now == nil {
		now = time.Now
	}
	return &PlotService{
		plots: repository.NewCollection[domain.Plot](store, domain.CollectionPlots, nil),
		now:   now,
	}
}

// List returns every plot in insertion order.
func (s *PlotService) List(ctx context.Context) []domain.Plot {
	return s.plots.Load(ctx)
}

// Create normalizes the input, appends a new plot and persists the collection.
func (s *PlotService) Create(ctx context.Context, in domain.NewPlot) (*domain.Plot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	name := strings.TrimSpace(in.Name)
	if name == "" {
		name = domain.DefaultPlotName
	}

	state := domain.NormalizePlotState(in.State)
	if state == "" {
		state = domain.PlotStateAvailable
	}

	coords := in.Coords
	if isEmptyJSON(coords) {
		coords = []byte("[]")
	}

	items := s.plots.Load(ctx)

	plot := domain.Plot{
		ID:     fmt.Sprintf("lot-%d-%d", s.now().UnixMilli(), len(items)+1),
		Name:   name,
		State:  state,
		Coords: coords,
	}
	if h, ok := domain.ParseHeight(in.Height); ok {
		plot.Height = &h
	}

	items = append(items, plot)
	if err := s.plots.Save(ctx, items); err != nil {
		return nil, fmt.Errorf("save plots: %w", err)
	}
	return &plot, nil
}

// Update applies the supplied fields to the first plot with the given id.
// Setting the state to reserved records who reserved it and when: the
// explicit ReservedBy, else the current identity's name. Any other state
// clears the reservation. An unknown id is not an error; the collection is
// saved either way.
func (s *PlotService) Update(ctx context.Context, id string, upd domain.PlotUpdate, current *domain.Identity) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	name := strings.TrimSpace(upd.Name)
	state := domain.NormalizePlotState(upd.State)

	items := s.plots.Load(ctx)
	for i := range items {
		p := &items[i]
		if p.ID != id {
			continue
		}

		if name != "" {
			p.Name = name
		}
		if h, ok := domain.ParseHeight(upd.Height); ok {
			p.Height = &h
		}
		if state != "" {
			p.State = state
			if p.Reserved() {
				p.ReservedBy = reservationOwner(upd.ReservedBy, current)
				at := s.now().UnixMilli()
				p.ReservedAt = &at
			} else {
				p.ReservedBy = nil
				p.ReservedAt = nil
			}
		}
		break
	}

	if err := s.plots.Save(ctx, items); err != nil {
		return fmt.Errorf("save plots: %w", err)
	}
	return nil
}

// DeleteMany removes every plot whose id is in ids and returns the distinct
// requested ids, whether or not they existed.
func (s *PlotService) DeleteMany(ctx context.Context, ids []string) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	requested := make(map[string]struct{}, len(ids))
	deleted := make([]string, 0, len(ids))
	for _, id := range ids {
		if _, dup := requested[id]; dup {
			continue
		}
		requested[id] = struct{}{}
		deleted = append(deleted, id)
	}

	items := s.plots.Load(ctx)
	kept := items[:0]
	for _, p := range items {
		if _, ok := requested[p.ID]; !ok {
			kept = append(kept, p)
		}
	}

	if err := s.plots.Save(ctx, kept); err != nil {
		return nil, fmt.Errorf("save plots: %w", err)
	}
	return deleted, nil
}

// ResetAll discards every plot.
func (s *PlotService) ResetAll(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.plots.Save(ctx, []domain.Plot{}); err != nil {
		return fmt.Errorf("save plots: %w", err)
	}
	return nil
}

func reservationOwner(explicit string, current *domain.Identity) *string {
	if explicit != "" {
		return &explicit
	}
	if current != nil && current.Name != "" {
		name := current.Name
		return &name
	}
	return nil
}

// isEmptyJSON reports whether raw is absent or a falsy JSON value.
func isEmptyJSON(raw []byte) bool {
	switch string(bytes.TrimSpace(raw)) {
	case "", "null", "[]", "{}", `""`, "false", "0":
		return true
	}
	return false
}
