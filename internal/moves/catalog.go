// Package moves holds the in-memory move catalog, its search, the per-species
// learnable-move cache and the double-battle ally-hit table.
package moves

import (
	"sort"
	"sync"

	"github.com/ramonehamilton/pokeparty/internal/pokemon"
)

// Entry is one row of the move catalog.
type Entry struct {
	ID          int                 `json:"id" db:"id"`
	Name        string              `json:"name" db:"name"`
	DisplayName string              `json:"displayName" db:"display_name"`
	Type        pokemon.TypeName    `json:"type" db:"type"`
	Power       *int                `json:"power" db:"power"`
	DamageClass pokemon.DamageClass `json:"damageClass" db:"damage_class"`
}

// Move converts the entry into the shared move model.
func (e Entry) Move() pokemon.Move {
	t, _ := pokemon.LookupType(e.Type)
	return pokemon.Move{
		ID:          e.ID,
		Name:        e.Name,
		DisplayName: e.DisplayName,
		Type:        t,
		DamageClass: e.DamageClass,
		Power:       e.Power,
	}
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
		idx.byName[e.Name] = i
	}
	return idx
}

// Catalog is the complete move list, indexed by ID and machine name.
// It is safe for concurrent use; Replace swaps the whole index at once.
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

// Replace swaps in a new move list.
func (c *Catalog) Replace(entries []Entry) {
	idx := newIndex(entries)
	c.mu.Lock()
	c.idx = idx
	c.mu.Unlock()
}

// ByID returns the entry with the given ID.
func (c *Catalog) ByID(id int) (Entry, bool) {
	idx := c.current()
	i, ok := idx.byID[id]
	if !ok {
		return Entry{}, false
	}
	return idx.entries[i], true
}

// ByName returns the entry with the given machine name.
func (c *Catalog) ByName(name string) (Entry, bool) {
	idx := c.current()
	i, ok := idx.byName[name]
	if !ok {
		return Entry{}, false
	}
	return idx.entries[i], true
}

// ByNames returns the entries whose machine names appear in names.
// Unknown names are skipped; the result order is not specified.
func (c *Catalog) ByNames(names []string) []Entry {
	idx := c.current()
	seen := make(map[int]bool, len(names))
	out := make([]Entry, 0, len(names))
	for _, n := range names {
		i, ok := idx.byName[n]
		if !ok || seen[i] {
			continue
		}
		seen[i] = true
		out = append(out, idx.entries[i])
	}
	return out
}

// Len returns the number of moves.
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
