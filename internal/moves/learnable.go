package moves

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"sync"

	"golang.org/x/sync/singleflight"
)

// LearnableStore holds resolved movepools keyed by species ID.
type LearnableStore interface {
	Get(speciesID int) ([]Entry, bool)
	Set(speciesID int, entries []Entry)
}

// MovepoolFetcher returns the machine names of every move a species can learn.
type MovepoolFetcher interface {
	LearnableMoveNames(ctx context.Context, idOrName string) ([]string, error)
}

// MemoryStore is an unbounded in-process LearnableStore.
type MemoryStore struct {
	mu   sync.RWMutex
	data map[int][]Entry
}

// NewMemoryStore creates an empty store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{data: make(map[int][]Entry)}
}

func (s *MemoryStore) Get(speciesID int) ([]Entry, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	e, ok := s.data[speciesID]
	return e, ok
}

func (s *MemoryStore) Set(speciesID int, entries []Entry) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[speciesID] = entries
}

// Clear empties the store.
func (s *MemoryStore) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data = make(map[int][]Entry)
}

// Learnable resolves a species' movepool against the catalog, memoizing per species.
type Learnable struct {
	catalog *Catalog
	fetcher MovepoolFetcher
	store   LearnableStore
	group   singleflight.Group
}

// NewLearnable creates the service. A nil store means a fresh MemoryStore.
func NewLearnable(catalog *Catalog, fetcher MovepoolFetcher, store LearnableStore) *Learnable {
	if store == nil {
		store = NewMemoryStore()
	}
	return &Learnable{catalog: catalog, fetcher: fetcher, store: store}
}

// Moves returns the catalog entries the species can learn, sorted by ID.
// Moves the catalog does not know are dropped. Concurrent misses for one
// species share a single upstream call.
func (l *Learnable) Moves(ctx context.Context, speciesID int) ([]Entry, error) {
	if cached, ok := l.store.Get(speciesID); ok {
		return cached, nil
	}

	key := strconv.Itoa(speciesID)
	v, err, _ := l.group.Do(key, func() (interface{}, error) {
		if cached, ok := l.store.Get(speciesID); ok {
			return cached, nil
		}
		names, err := l.fetcher.LearnableMoveNames(ctx, key)
		if err != nil {
			return nil, fmt.Errorf("failed to fetch movepool for %d: %w", speciesID, err)
		}
		entries := l.catalog.ByNames(names)
		sort.Slice(entries, func(i, j int) bool { return entries[i].ID < entries[j].ID })
		l.store.Set(speciesID, entries)
		return entries, nil
	})
	if err != nil {
		return nil, err
	}
	return v.([]Entry), nil
}

// Clear drops every memoized movepool when the store supports it.
func (l *Learnable) Clear() {
	if c, ok := l.store.(interface{ Clear() }); ok {
		c.Clear()
	}
}
