package moves

import (
	"context"
	"errors"
	"strings"
	"sync"

	"golang.org/x/sync/singleflight"
)

// Movepools memoizes the learnable move names of each species for the life of
// the process. Keys are species identifiers (machine name or numeric ID); a
// lookup under one form does not fill the other unless both are stored.
type Movepools struct {
	fetcher MovepoolFetcher

	mu    sync.RWMutex
	names map[string][]string
	group singleflight.Group
}

// NewMovepools creates an empty cache in front of fetcher. A nil fetcher makes
// it a plain store: misses in LearnableMoveNames are errors.
func NewMovepools(fetcher MovepoolFetcher) *Movepools {
	return &Movepools{fetcher: fetcher, names: make(map[string][]string)}
}

var _ MovepoolFetcher = (*Movepools)(nil)

func movepoolKey(idOrName string) string {
	return strings.ToLower(strings.TrimSpace(idOrName))
}

// Cached returns the stored names for a species without fetching.
func (m *Movepools) Cached(idOrName string) ([]string, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	names, ok := m.names[movepoolKey(idOrName)]
	return names, ok
}

// Store records names under every given identifier.
func (m *Movepools) Store(names []string, idOrNames ...string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, k := range idOrNames {
		if k = movepoolKey(k); k != "" {
			m.names[k] = names
		}
	}
}

// LearnableMoveNames returns the cached names, fetching them on a miss.
// Concurrent misses for one key share a single fetch. Errors are not cached.
func (m *Movepools) LearnableMoveNames(ctx context.Context, idOrName string) ([]string, error) {
	key := movepoolKey(idOrName)
	if names, ok := m.Cached(key); ok {
		return names, nil
	}
	if m.fetcher == nil {
		return nil, errors.New("movepool not cached and no fetcher configured")
	}

	v, err, _ := m.group.Do(key, func() (interface{}, error) {
		if names, ok := m.Cached(key); ok {
			return names, nil
		}
		names, err := m.fetcher.LearnableMoveNames(ctx, key)
		if err != nil {
			return nil, err
		}
		m.Store(names, key)
		return names, nil
	})
	if err != nil {
		return nil, err
	}
	return v.([]string), nil
}

// Len returns the number of stored keys.
func (m *Movepools) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.names)
}

// Clear drops every stored movepool.
func (m *Movepools) Clear() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.names = make(map[string][]string)
}
