package moves

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"github.com/ramonehamilton/pokeparty/internal/pokemon"
)

// LoadSQLite reads the move list from a PokeAPI sqlite dump, opened read-only.
// Display names come from the given ISO 639 language code; moves without a
// localized name keep their machine name. Moves of non-standard types are skipped.
func LoadSQLite(ctx context.Context, path, lang string) ([]Entry, error) {
	db, err := sqlx.Open("sqlite", fmt.Sprintf("file:%s?mode=ro", path))
	if err != nil {
		return nil, fmt.Errorf("failed to open move database: %w", err)
	}
	defer func() { _ = db.Close() }()

	if err := db.PingContext(ctx); err != nil {
		return nil, fmt.Errorf("unable to read from move database: %w", err)
	}

	rows, err := db.QueryxContext(ctx,
		/* sql */ `
		SELECT m.id,
		       m.name,
		       COALESCE(mn.name, m.name) AS display_name,
		       t.name AS type,
		       m.power,
		       dc.name AS damage_class
		FROM pokemon_v2_move m
		JOIN pokemon_v2_type t ON t.id = m.type_id
		JOIN pokemon_v2_movedamageclass dc ON dc.id = m.move_damage_class_id
		LEFT JOIN pokemon_v2_movename mn
		       ON mn.move_id = m.id
		      AND mn.language_id = (SELECT id FROM pokemon_v2_language WHERE iso639 = ? LIMIT 1)
		ORDER BY m.id
	`, lang)
	if err != nil {
		return nil, fmt.Errorf("failed to query moves: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var entries []Entry
	for rows.Next() {
		var e Entry
		if err := rows.StructScan(&e); err != nil {
			return nil, fmt.Errorf("failed to scan move row: %w", err)
		}
		if _, ok := pokemon.LookupType(e.Type); !ok {
			continue
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read move rows: %w", err)
	}
	return entries, nil
}
