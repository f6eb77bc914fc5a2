package main

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/ramonehamilton/pokeparty/internal/config"
	"github.com/ramonehamilton/pokeparty/internal/events"
	"github.com/ramonehamilton/pokeparty/internal/llm"
	"github.com/ramonehamilton/pokeparty/internal/metrics"
	"github.com/ramonehamilton/pokeparty/internal/moves"
	"github.com/ramonehamilton/pokeparty/internal/party"
	"github.com/ramonehamilton/pokeparty/internal/pokeapi"
	"github.com/ramonehamilton/pokeparty/internal/pokedex"
)

// app is the wired set of services behind serve and generate.
type app struct {
	pokeapi    *pokeapi.Client
	catalog    *moves.Catalog
	pokedex    *pokedex.Catalog
	movepools  *moves.Movepools
	learnable  *moves.Learnable
	moves      party.MoveSource
	backend    *llm.Backend
	generator  *party.Generator
	metrics    *metrics.GenerationMetrics
	dispatcher *events.EventDispatcher
	watcher    *moves.Watcher
}

// loadCatalog reads the configured move list. No source yields an empty catalog
// and move details then come from PokeAPI.
func loadCatalog(ctx context.Context, cfg config.CatalogConfig, lang string) ([]moves.Entry, error) {
	switch {
	case cfg.Path != "":
		return moves.LoadJSON(cfg.Path)
	case cfg.SQLitePath != "":
		return moves.LoadSQLite(ctx, cfg.SQLitePath, lang)
	default:
		return nil, nil
	}
}

// loadPokedex reads the configured species list. No source yields an empty list.
func loadPokedex(ctx context.Context, cfg config.CatalogConfig) ([]pokedex.Entry, error) {
	switch {
	case cfg.SpeciesPath != "":
		return pokedex.LoadJSON(cfg.SpeciesPath)
	case cfg.SQLitePath != "":
		return pokedex.LoadSQLite(ctx, cfg.SQLitePath)
	default:
		return nil, nil
	}
}

func newApp(ctx context.Context, cfg *config.Config, logger *zap.Logger, verbose bool) (*app, error) {
	a := &app{
		metrics:    metrics.NewGenerationMetrics(),
		dispatcher: events.NewEventDispatcher(logger.Named("events")),
	}
	a.dispatcher.Register(events.NewLoggingObserver(logger.Named("events"), verbose))

	a.pokeapi = pokeapi.NewClient(pokeapi.ClientConfig{
		BaseURL:    cfg.PokeAPI.BaseURL,
		RateLimit:  cfg.PokeAPI.GetRateLimit(),
		Timeout:    cfg.PokeAPI.GetTimeout(),
		MaxRetries: cfg.PokeAPI.MaxRetries,
		Language:   cfg.PokeAPI.Language,
		Logger:     logger.Named("pokeapi"),
	})

	entries, err := loadCatalog(ctx, cfg.Catalog, cfg.PokeAPI.Language)
	if err != nil {
		return nil, err
	}
	a.catalog = moves.NewCatalog(entries)
	if a.catalog.Len() == 0 {
		logger.Info("No move catalog configured; move details come from PokeAPI")
	} else {
		logger.Info("Loaded move catalog", zap.Int("moves", a.catalog.Len()))
	}
	species, err := loadPokedex(ctx, cfg.Catalog)
	if err != nil {
		return nil, err
	}
	a.pokedex = pokedex.NewCatalog(species)
	logger.Debug("Loaded species list", zap.Int("species", a.pokedex.Len()))

	a.movepools = moves.NewMovepools(a.pokeapi)
	a.learnable = moves.NewLearnable(a.catalog, a.movepools, nil)
	a.moves = party.CatalogMoves{Catalog: a.catalog, Next: a.pokeapi}

	// Resolved movepools are catalog entries, so a reload invalidates them.
	// The learnable names behind them stay cached.
	a.dispatcher.Register(&events.FuncObserver{
		Name:  "movepool-invalidator",
		Types: []string{events.CatalogReloaded},
		Fn: func(events.Event) error {
			a.learnable.Clear()
			return nil
		},
	})

	if cfg.Catalog.Watch && cfg.Catalog.Path != "" {
		w, err := moves.NewWatcher(cfg.Catalog.Path, a.catalog, logger.Named("catalog"))
		if err != nil {
			a.Close()
			return nil, err
		}
		w.SetDispatcher(a.dispatcher)
		if err := w.Start(ctx); err != nil {
			a.Close()
			return nil, err
		}
		a.watcher = w
	}

	a.backend, err = llm.New(ctx, cfg.LLM)
	if err != nil {
		a.Close()
		return nil, fmt.Errorf("failed to configure %s provider: %w", cfg.LLM.Provider, err)
	}

	balancer := party.NewBalancer(a.moves, party.BalancerConfig{
		SampleSize:  cfg.Party.SampleSize,
		LoadoutSize: cfg.Party.LoadoutSize,
		Seed:        cfg.Party.Seed,
		Logger:      logger.Named("balancer"),
	})
	a.generator = party.NewGenerator(a.backend.Suggester, a.pokeapi, balancer, party.GeneratorConfig{
		Buffer:        cfg.Party.Buffer,
		MaxCandidates: cfg.Party.MaxCandidates,
		Movepools:     a.movepools,
		Language:      cfg.PokeAPI.Language,
		Logger:        logger.Named("generator"),
		Events:        a.dispatcher,
		Metrics:       a.metrics,
	})
	return a, nil
}

// ollama returns the local provider client, or nil for hosted providers.
func (a *app) ollama() *llm.OllamaClient {
	if o, ok := a.backend.Completer.(*llm.OllamaClient); ok {
		return o
	}
	return nil
}

func (a *app) Close() {
	if a.watcher != nil {
		a.watcher.Stop()
	}
}
