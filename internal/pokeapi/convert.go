package pokeapi

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/ramonehamilton/pokeparty/internal/pokemon"
)

var titleCaser = cases.Title(language.English)

// displayName picks the name for lang, falling back to the title-cased machine name.
func displayName(names []LocalizedName, lang, machineName string) string {
	for _, n := range names {
		if n.Language.Name == lang && n.Name != "" {
			return n.Name
		}
	}
	return titleCaser.String(strings.ReplaceAll(machineName, "-", " "))
}

func flavorText(entries []FlavorText, lang string) string {
	// Later entries are from newer games.
	for i := len(entries) - 1; i >= 0; i-- {
		if entries[i].Language.Name == lang {
			return strings.Join(strings.Fields(entries[i].FlavorText), " ")
		}
	}
	return ""
}

// Species fetches a species' attributes without its movepool. The pokemon and
// species resources are requested concurrently.
func (c *Client) Species(ctx context.Context, idOrName string) (pokemon.Species, error) {
	p, species, err := c.fetchSpecies(ctx, idOrName)
	if err != nil {
		return pokemon.Species{}, err
	}
	return c.toSpecies(p, species)
}

// SpeciesWithMoves is Species plus the learnable move names, read from the
// same /pokemon response.
func (c *Client) SpeciesWithMoves(ctx context.Context, idOrName string) (pokemon.Species, []string, error) {
	p, species, err := c.fetchSpecies(ctx, idOrName)
	if err != nil {
		return pokemon.Species{}, nil, err
	}
	s, err := c.toSpecies(p, species)
	if err != nil {
		return pokemon.Species{}, nil, err
	}
	return s, moveNames(p), nil
}

func (c *Client) fetchSpecies(ctx context.Context, idOrName string) (*Pokemon, *PokemonSpecies, error) {
	var (
		p       *Pokemon
		species *PokemonSpecies
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		p, err = c.GetPokemon(gctx, idOrName)
		return err
	})
	g.Go(func() error {
		// Forms such as "giratina-origin" have no species of the same name;
		// that case is resolved from the pokemon's species reference below.
		s, err := c.GetSpecies(gctx, idOrName)
		if err == nil {
			species = s
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}

	if species == nil && p.Species.Name != "" {
		s, err := c.GetSpecies(ctx, p.Species.Name)
		if err != nil {
			c.logger.Debug("species lookup failed, using machine name",
				zap.String("pokemon", p.Name), zap.Error(err))
		} else {
			species = s
		}
	}
	return p, species, nil
}

func (c *Client) toSpecies(p *Pokemon, species *PokemonSpecies) (pokemon.Species, error) {
	if len(p.Types) == 0 || len(p.Types) > 2 {
		return pokemon.Species{}, fmt.Errorf("%w: pokemon %s has %d types", ErrMalformed, p.Name, len(p.Types))
	}

	slots := append([]PokemonType(nil), p.Types...)
	sort.Slice(slots, func(i, j int) bool { return slots[i].Slot < slots[j].Slot })

	types := make([]pokemon.Type, 0, len(slots))
	for _, s := range slots {
		name, err := pokemon.ParseTypeName(s.Type.Name)
		if err != nil {
			return pokemon.Species{}, fmt.Errorf("%w: pokemon %s: %v", ErrMalformed, p.Name, err)
		}
		t, _ := pokemon.LookupType(name)
		types = append(types, t)
	}

	var names []LocalizedName
	if species != nil {
		names = species.Names
	}

	sprite := ""
	if u := p.Sprites.Other.OfficialArtwork.FrontDefault; u != nil {
		sprite = *u
	} else if u := p.Sprites.FrontDefault; u != nil {
		sprite = *u
	}

	return pokemon.Species{
		ID:          p.ID,
		Name:        p.Name,
		DisplayName: displayName(names, c.config.Language, p.Name),
		Types:       types,
		Sprite:      sprite,
	}, nil
}

// LearnableMoveNames returns the machine names of every move the pokemon can learn.
func (c *Client) LearnableMoveNames(ctx context.Context, idOrName string) ([]string, error) {
	p, err := c.GetPokemon(ctx, idOrName)
	if err != nil {
		return nil, err
	}
	return moveNames(p), nil
}

func moveNames(p *Pokemon) []string {
	names := make([]string, 0, len(p.Moves))
	for _, m := range p.Moves {
		names = append(names, m.Move.Name)
	}
	return names
}

// Move fetches one move's details.
func (c *Client) Move(ctx context.Context, name string) (pokemon.Move, error) {
	m, err := c.GetMove(ctx, name)
	if err != nil {
		return pokemon.Move{}, err
	}

	typeName, err := pokemon.ParseTypeName(m.Type.Name)
	if err != nil {
		return pokemon.Move{}, fmt.Errorf("%w: move %s: %v", ErrMalformed, m.Name, err)
	}
	class, err := pokemon.ParseDamageClass(m.DamageClass.Name)
	if err != nil {
		return pokemon.Move{}, fmt.Errorf("%w: move %s: %v", ErrMalformed, m.Name, err)
	}
	t, _ := pokemon.LookupType(typeName)

	return pokemon.Move{
		ID:          m.ID,
		Name:        m.Name,
		DisplayName: displayName(m.Names, c.config.Language, m.Name),
		Type:        t,
		DamageClass: class,
		Power:       m.Power,
		Description: flavorText(m.FlavorTextEntries, c.config.Language),
	}, nil
}
