package moves

import (
	"sort"
	"strings"

	"golang.org/x/text/width"
)

// DefaultSearchLimit caps Search results when the caller passes no limit.
const DefaultSearchLimit = 8

// widenDigits replaces ASCII digits with their full-width forms. Other runes are kept.
func widenDigits(s string) string {
	return strings.Map(func(r rune) rune {
		if r < '0' || r > '9' {
			return r
		}
		if w := width.LookupRune(r).Wide(); w != 0 {
			return w
		}
		return r
	}, s)
}

// Search finds moves whose display name contains the query, case-insensitively.
// Queries with ASCII digits also match names spelled with full-width digits.
// Names starting with the query rank first; ties are broken by ascending ID.
func (c *Catalog) Search(query string, limit int) []Entry {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return []Entry{}
	}
	if limit <= 0 {
		limit = DefaultSearchLimit
	}
	wide := widenDigits(q)

	type match struct {
		entry  Entry
		prefix bool
	}

	idx := c.current()
	var matches []match
	for _, e := range idx.entries {
		name := strings.ToLower(e.DisplayName)
		if !strings.Contains(name, q) && !strings.Contains(name, wide) {
			continue
		}
		matches = append(matches, match{
			entry:  e,
			prefix: strings.HasPrefix(name, q) || strings.HasPrefix(name, wide),
		})
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
