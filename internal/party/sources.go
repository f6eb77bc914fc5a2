package party

import (
	"context"
	"fmt"

	"github.com/ramonehamilton/pokeparty/internal/moves"
	"github.com/ramonehamilton/pokeparty/internal/pokemon"
)

// SpeciesSource resolves candidate identifiers. pokeapi.Client implements it.
type SpeciesSource interface {
	Species(ctx context.Context, idOrName string) (pokemon.Species, error)
	// SpeciesWithMoves also returns the learnable move names, from one upstream fetch.
	SpeciesWithMoves(ctx context.Context, idOrName string) (pokemon.Species, []string, error)
}

// MovepoolCache memoizes learnable move names by species identifier.
// moves.Movepools implements it.
type MovepoolCache interface {
	Cached(idOrName string) ([]string, bool)
	Store(names []string, idOrNames ...string)
}

// MoveSource resolves one move by machine name.
type MoveSource interface {
	Move(ctx context.Context, name string) (pokemon.Move, error)
}

// MoveSourceFunc adapts a function to MoveSource.
type MoveSourceFunc func(ctx context.Context, name string) (pokemon.Move, error)

func (f MoveSourceFunc) Move(ctx context.Context, name string) (pokemon.Move, error) {
	return f(ctx, name)
}

// CatalogMoves answers from the in-memory catalog and asks next only on a miss.
type CatalogMoves struct {
	Catalog *moves.Catalog
	Next    MoveSource
}

func (c CatalogMoves) Move(ctx context.Context, name string) (pokemon.Move, error) {
	if c.Catalog != nil {
		if e, ok := c.Catalog.ByName(name); ok {
			return e.Move(), nil
		}
	}
	if c.Next == nil {
		return pokemon.Move{}, fmt.Errorf("%w: %q", ErrUnknownMove, name)
	}
	return c.Next.Move(ctx, name)
}
