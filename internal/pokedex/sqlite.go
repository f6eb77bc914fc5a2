package pokedex

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"github.com/ramonehamilton/pokeparty/internal/pokemon"
)

type speciesRow struct {
	ID           int    `db:"id"`
	Name         string `db:"name"`
	JapaneseName string `db:"japanese_name"`
	Type         string `db:"type"`
}

// LoadSQLite reads the species list from a PokeAPI sqlite dump, opened read-only.
// Japanese names prefer the kana spelling (ja-Hrkt), then ja, then the machine
// name. Types come from each species' default form, in slot order.
func LoadSQLite(ctx context.Context, path string) ([]Entry, error) {
	db, err := sqlx.Open("sqlite", fmt.Sprintf("file:%s?mode=ro", path))
	if err != nil {
		return nil, fmt.Errorf("failed to open species database: %w", err)
	}
	defer func() { _ = db.Close() }()

	if err := db.PingContext(ctx); err != nil {
		return nil, fmt.Errorf("unable to read from species database: %w", err)
	}

	rows, err := db.QueryxContext(ctx,
		/* sql */ `
		SELECT s.id,
		       s.name,
		       COALESCE(
		         (SELECT sn.name FROM pokemon_v2_pokemonspeciesname sn
		            JOIN pokemon_v2_language l ON l.id = sn.language_id
		           WHERE sn.pokemon_species_id = s.id AND l.name = 'ja-Hrkt' LIMIT 1),
		         (SELECT sn.name FROM pokemon_v2_pokemonspeciesname sn
		            JOIN pokemon_v2_language l ON l.id = sn.language_id
		           WHERE sn.pokemon_species_id = s.id AND l.name = 'ja' LIMIT 1),
		         s.name) AS japanese_name,
		       t.name AS type
		FROM pokemon_v2_pokemonspecies s
		JOIN pokemon_v2_pokemon p ON p.pokemon_species_id = s.id AND p.is_default = 1
		JOIN pokemon_v2_pokemontype pt ON pt.pokemon_id = p.id
		JOIN pokemon_v2_type t ON t.id = pt.type_id
		ORDER BY s.id, pt.slot
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query species: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var entries []Entry
	for rows.Next() {
		var r speciesRow
		if err := rows.StructScan(&r); err != nil {
			return nil, fmt.Errorf("failed to scan species row: %w", err)
		}
		t, err := pokemon.ParseTypeName(r.Type)
		if err != nil {
			continue
		}
		if n := len(entries); n > 0 && entries[n-1].ID == r.ID {
			entries[n-1].Types = append(entries[n-1].Types, t)
			continue
		}
		entries = append(entries, Entry{
			ID:           r.ID,
			Name:         r.Name,
			JapaneseName: r.JapaneseName,
			Types:        []pokemon.TypeName{t},
		})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read species rows: %w", err)
	}
	return entries, nil
}
