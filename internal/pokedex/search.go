package pokedex

import (
	"sort"
	"strings"
)

// DefaultSearchLimit caps Search results when the caller passes no limit.
const DefaultSearchLimit = 8

// Search finds species whose Japanese name contains the query, case-insensitively.
// Names starting with the query rank first; ties are broken by ascending ID.
// An empty query matches nothing.
func (c *Catalog) Search(query string, limit int) []Entry {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return []Entry{}
	}
	if limit <= 0 {
		limit = DefaultSearchLimit
	}

	type match struct {
		entry  Entry
		prefix bool
	}

	var matches []match
	for _, e := range c.current().entries {
		name := strings.ToLower(e.JapaneseName)
		if !strings.Contains(name, q) {
			continue
		}
		matches = append(matches, match{entry: e, prefix: strings.HasPrefix(name, q)})
	}

	sort.SliceStable(matches, func(i, j int) bool {
		if matches[i].prefix != matches[j].prefix {
			return matches[i].prefix
		}
		return matches[i].entry.ID < matches[j].entry.ID
	})

	if len(matches) > limit {
		matches = matches[:limit]
	}
	out := make([]Entry, len(matches))
	for i, m := range matches {
		out[i] = m.entry
	}
	return out
}
