package party

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/ramonehamilton/pokeparty/internal/llm"
	"github.com/ramonehamilton/pokeparty/internal/pokemon"
)

func mustType(name pokemon.TypeName) pokemon.Type {
	t, ok := pokemon.LookupType(name)
	if !ok {
		panic("unknown type " + name)
	}
	return t
}

func mv(name string, typ pokemon.TypeName, class pokemon.DamageClass) pokemon.Move {
	return pokemon.Move{Name: name, DisplayName: name, Type: mustType(typ), DamageClass: class}
}

func sp(id int, name string, types ...pokemon.TypeName) pokemon.Species {
	s := pokemon.Species{ID: id, Name: name, DisplayName: name}
	for _, t := range types {
		s.Types = append(s.Types, mustType(t))
	}
	return s
}

type fakeSuggester struct {
	mu         sync.Mutex
	suggestion *llm.Suggestion
	err        error
	guide      string
	guideErr   error
	requests   []llm.SuggestRequest
	guideCalls int
}

func (f *fakeSuggester) Name() string { return "fake" }

func (f *fakeSuggester) SuggestPokemon(_ context.Context, req llm.SuggestRequest) (*llm.Suggestion, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.requests = append(f.requests, req)
	if f.err != nil {
		return nil, f.err
	}
	return f.suggestion, nil
}

func (f *fakeSuggester) WriteGuide(context.Context, llm.GuideRequest) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.guideCalls++
	return f.guide, f.guideErr
}

// fakeSpecies serves species by name. Names in fail return an error; delays
// hold a lookup back to shuffle completion order.
type fakeSpecies struct {
	mu        sync.Mutex
	species   map[string]pokemon.Species
	learnable map[string][]string
	fail      map[string]bool
	delays    map[string]time.Duration
	attempted []string

	// speciesCalls and combinedCalls count Species and SpeciesWithMoves.
	speciesCalls  int
	combinedCalls int
}

func newFakeSpecies() *fakeSpecies {
	return &fakeSpecies{
		species:   map[string]pokemon.Species{},
		learnable: map[string][]string{},
		fail:      map[string]bool{},
		delays:    map[string]time.Duration{},
	}
}

func (f *fakeSpecies) add(s pokemon.Species, moves ...string) {
	f.species[s.Name] = s
	f.learnable[s.Name] = moves
}

func (f *fakeSpecies) Species(ctx context.Context, name string) (pokemon.Species, error) {
	f.mu.Lock()
	f.speciesCalls++
	f.mu.Unlock()
	return f.lookup(ctx, name)
}

func (f *fakeSpecies) SpeciesWithMoves(ctx context.Context, name string) (pokemon.Species, []string, error) {
	f.mu.Lock()
	f.combinedCalls++
	f.mu.Unlock()
	s, err := f.lookup(ctx, name)
	if err != nil {
		return pokemon.Species{}, nil, err
	}
	return s, f.learnable[name], nil
}

func (f *fakeSpecies) calls() (species, combined int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.speciesCalls, f.combinedCalls
}

func (f *fakeSpecies) lookup(ctx context.Context, name string) (pokemon.Species, error) {
	f.mu.Lock()
	f.attempted = append(f.attempted, name)
	delay := f.delays[name]
	f.mu.Unlock()

	if delay > 0 {
		select {
		case <-time.After(delay):
		case <-ctx.Done():
			return pokemon.Species{}, ctx.Err()
		}
	}
	if f.fail[name] {
		return pokemon.Species{}, fmt.Errorf("species %q: not found", name)
	}
	s, ok := f.species[name]
	if !ok {
		return pokemon.Species{}, errors.New("unknown species")
	}
	return s, nil
}

func (f *fakeSpecies) attemptedNames() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.attempted...)
}

// moveTable resolves moves from a fixed table.
type moveTable map[string]pokemon.Move

func (t moveTable) Move(_ context.Context, name string) (pokemon.Move, error) {
	m, ok := t[name]
	if !ok {
		return pokemon.Move{}, fmt.Errorf("move %q not found", name)
	}
	return m, nil
}

var testMoves = moveTable{
	"tackle":       mv("tackle", pokemon.Normal, pokemon.Physical),
	"ember":        mv("ember", pokemon.Fire, pokemon.Special),
	"water-gun":    mv("water-gun", pokemon.Water, pokemon.Special),
	"vine-whip":    mv("vine-whip", pokemon.Grass, pokemon.Physical),
	"thunderbolt":  mv("thunderbolt", pokemon.Electric, pokemon.Special),
	"earthquake":   mv("earthquake", pokemon.Ground, pokemon.Physical),
	"growl":        mv("growl", pokemon.Normal, pokemon.Status),
	"will-o-wisp":  mv("will-o-wisp", pokemon.Fire, pokemon.Status),
	"gust":         mv("gust", pokemon.Flying, pokemon.Special),
	"quick-attack": mv("quick-attack", pokemon.Normal, pokemon.Physical),
}
