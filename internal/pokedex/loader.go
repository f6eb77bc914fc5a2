package pokedex

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/ramonehamilton/pokeparty/internal/pokemon"
)

// ParseJSON reads a species list of the form
// [{"id":25,"name":"pikachu","japaneseName":"ピカチュウ","types":["electric"]}].
func ParseJSON(r io.Reader) ([]Entry, error) {
	var entries []Entry
	if err := json.NewDecoder(r).Decode(&entries); err != nil {
		return nil, fmt.Errorf("failed to decode species list: %w", err)
	}
	for i, e := range entries {
		if err := validate(e); err != nil {
			return nil, fmt.Errorf("species list entry %d: %w", i, err)
		}
		if e.JapaneseName == "" {
			entries[i].JapaneseName = e.Name
		}
	}
	return entries, nil
}

// LoadJSON reads a species list file.
func LoadJSON(path string) ([]Entry, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open species list: %w", err)
	}
	defer func() { _ = f.Close() }()

	return ParseJSON(f)
}

func validate(e Entry) error {
	if e.ID <= 0 || e.Name == "" {
		return fmt.Errorf("missing id or name")
	}
	if len(e.Types) == 0 || len(e.Types) > 2 {
		return fmt.Errorf("species %s: want 1 or 2 types, got %d", e.Name, len(e.Types))
	}
	for _, t := range e.Types {
		if _, err := pokemon.ParseTypeName(string(t)); err != nil {
			return fmt.Errorf("species %s: %w", e.Name, err)
		}
	}
	return nil
}
