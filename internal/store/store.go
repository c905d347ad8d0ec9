// Package store holds the authoritative scare event collection and
// enforces dedup-key uniqueness across merges.
package store

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/scarevault/scarevault/internal/models"
)

// EventRepository persists the event collection. The store is the sole
// writer; the repository only mirrors what the store accepts.
type EventRepository interface {
	LoadAll(ctx context.Context) ([]models.ScareEvent, error)
	Insert(ctx context.Context, events []models.ScareEvent) error
	DeleteAll(ctx context.Context) (int64, error)
}

type dedupKey struct {
	itemID uuid.UUID
	ticks  int64
}

// MergeResult is the aggregate outcome of one AddMerge batch.
type MergeResult struct {
	Added   int `json:"added"`
	Skipped int `json:"skipped"`
}

// Store is the in-memory event collection, write-through persisted when
// a repository is attached. A single RWMutex serializes mutations
// against reads, so a batch merge is never observed partially applied.
type Store struct {
	mu     sync.RWMutex
	events []models.ScareEvent
	keys   map[dedupKey]struct{}
	repo   EventRepository
}

// New creates an empty store. repo may be nil for a purely in-memory
// store.
func New(repo EventRepository) *Store {
	return &Store{
		keys: make(map[dedupKey]struct{}),
		repo: repo,
	}
}

// Load replaces the in-memory collection with the persisted one.
// Persisted duplicates are dropped first-occurrence-wins, mirroring the
// merge rule.
func (s *Store) Load(ctx context.Context) error {
	if s.repo == nil {
		return nil
	}
	events, err := s.repo.LoadAll(ctx)
	if err != nil {
		return fmt.Errorf("load events: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = s.events[:0]
	s.keys = make(map[dedupKey]struct{}, len(events))
	for _, ev := range events {
		k := dedupKey{ev.ItemID, ev.TimestampTicks}
		if _, dup := s.keys[k]; dup {
			continue
		}
		s.keys[k] = struct{}{}
		s.events = append(s.events, ev)
	}
	return nil
}

// AddMerge appends candidates in input order, skipping any whose
// (itemID, timestampTicks) key already exists — whether from prior state
// or from an earlier candidate in the same batch. Calling it twice with
// the same batch adds everything once and skips everything the second
// time.
func (s *Store) AddMerge(ctx context.Context, candidates []models.ScareEvent) (MergeResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var (
		res      MergeResult
		accepted []models.ScareEvent
	)
	for _, ev := range candidates {
		k := dedupKey{ev.ItemID, ev.TimestampTicks}
		if _, dup := s.keys[k]; dup {
			res.Skipped++
			continue
		}
		s.keys[k] = struct{}{}
		accepted = append(accepted, ev)
		res.Added++
	}

	if s.repo != nil && len(accepted) > 0 {
		if err := s.repo.Insert(ctx, accepted); err != nil {
			for _, ev := range accepted {
				delete(s.keys, dedupKey{ev.ItemID, ev.TimestampTicks})
			}
			return MergeResult{}, fmt.Errorf("persist events: %w", err)
		}
	}

	s.events = append(s.events, accepted...)
	return res, nil
}

// Clear removes every event and reports how many were removed.
func (s *Store) Clear(ctx context.Context) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.repo != nil {
		if _, err := s.repo.DeleteAll(ctx); err != nil {
			return 0, fmt.Errorf("clear events: %w", err)
		}
	}

	removed := len(s.events)
	s.events = nil
	s.keys = make(map[dedupKey]struct{})
	return removed, nil
}

// ByItem returns the events bound to one catalog item, in stored order.
func (s *Store) ByItem(itemID uuid.UUID) []models.ScareEvent {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []models.ScareEvent
	for _, ev := range s.events {
		if ev.ItemID == itemID {
			out = append(out, ev)
		}
	}
	return out
}

// Stats summarizes the collection. Events with no intensity are counted
// in neither the major nor the minor bucket.
func (s *Store) Stats() models.ScareStats {
	s.mu.RLock()
	defer s.mu.RUnlock()

	items := make(map[uuid.UUID]struct{})
	stats := models.ScareStats{TotalRecords: len(s.events)}
	for _, ev := range s.events {
		items[ev.ItemID] = struct{}{}
		switch ev.Intensity {
		case models.IntensityMajor:
			stats.MajorCount++
		case models.IntensityMinor:
			stats.MinorCount++
		}
	}
	stats.DistinctItems = len(items)
	return stats
}
