package moves

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/ramonehamilton/pokeparty/internal/pokemon"
)

// ParseJSON reads a move list of the form
// [{"id":1,"name":"pound","displayName":"Pound","type":"normal","power":40,"damageClass":"physical"}].
func ParseJSON(r io.Reader) ([]Entry, error) {
	var entries []Entry
	if err := json.NewDecoder(r).Decode(&entries); err != nil {
		return nil, fmt.Errorf("failed to decode move list: %w", err)
	}
	for i, e := range entries {
		if err := validate(e); err != nil {
			return nil, fmt.Errorf("move list entry %d: %w", i, err)
		}
		if e.DisplayName == "" {
			entries[i].DisplayName = e.Name
		}
	}
	return entries, nil
}

// LoadJSON reads a move list file.
func LoadJSON(path string) ([]Entry, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open move list: %w", err)
	}
	defer func() { _ = f.Close() }()

	return ParseJSON(f)
}

func validate(e Entry) error {
	if e.ID <= 0 || e.Name == "" {
		return fmt.Errorf("missing id or name")
	}
	if _, err := pokemon.ParseTypeName(string(e.Type)); err != nil {
		return fmt.Errorf("move %s: %w", e.Name, err)
	}
	if _, err := pokemon.ParseDamageClass(string(e.DamageClass)); err != nil {
		return fmt.Errorf("move %s: %w", e.Name, err)
	}
	return nil
}
