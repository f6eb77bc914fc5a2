// Package pokedex holds the species list behind name search: an in-memory
// catalog indexed by National Dex number, its loaders and Search.
package pokedex

import (
	"sort"
	"strings"
	"sync"

	"github.com/ramonehamilton/pokeparty/internal/pokemon"
)

// Entry is one species in the search list.
type Entry struct {
	ID           int                `json:"id"`
	Name         string             `json:"name"`
	JapaneseName string             `json:"japaneseName"`
	Types        []pokemon.TypeName `json:"types"`
}

type index struct {
	entries []Entry // sorted by ID
	byID    map[int]int
	byName  map[string]int
}

func newIndex(entries []Entry) *index {
	sorted := make([]Entry, len(entries))
	copy(sorted, entries)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].ID < sorted[j].ID })

	idx := &index{
		entries: sorted,
		byID:    make(map[int]int, len(sorted)),
		byName:  make(map[string]int, len(sorted)),
	}
	for i, e := range sorted {
		idx.byID[e.ID] = i
		idx.byName[strings.ToLower(e.Name)] = i
	}
	return idx
}

// Catalog is the species list. It is safe for concurrent use.
type Catalog struct {
	mu  sync.RWMutex
	idx *index
}

// NewCatalog builds a catalog from entries.
func NewCatalog(entries []Entry) *Catalog {
	return &Catalog{idx: newIndex(entries)}
}

func (c *Catalog) current() *index {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.idx
}

// Replace swaps in a new species list.
func (c *Catalog) Replace(entries []Entry) {
	idx := newIndex(entries)
	c.mu.Lock()
	c.idx = idx
	c.mu.Unlock()
}

// ByID returns the species with the given National Dex number.
func (c *Catalog) ByID(id int) (Entry, bool) {
	idx := c.current()
	i, ok := idx.byID[id]
	if !ok {
		return Entry{}, false
	}
	return idx.entries[i], true
}

// ByName returns the species with the given machine name, case-insensitively.
func (c *Catalog) ByName(name string) (Entry, bool) {
	idx := c.current()
	i, ok := idx.byName[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return Entry{}, false
	}
	return idx.entries[i], true
}

// Len returns the number of species.
func (c *Catalog) Len() int {
	return len(c.current().entries)
}

// All returns a copy of every entry, sorted by ID.
func (c *Catalog) All() []Entry {
	idx := c.current()
	out := make([]Entry, len(idx.entries))
	copy(out, idx.entries)
	return out
}
