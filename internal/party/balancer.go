package party

import (
	"context"
	"math/rand"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/ramonehamilton/pokeparty/internal/pokemon"
)

// BalancerConfig configures move selection.
type BalancerConfig struct {
	// SampleSize caps how many learnable moves are looked up per species.
	SampleSize int

	// LoadoutSize is the number of moves per member.
	LoadoutSize int

	// Rand drives sampling. When nil, a source seeded with Seed (or the clock) is used.
	Rand *rand.Rand
	Seed int64

	Logger *zap.Logger
}

// DefaultBalancerConfig returns sensible defaults.
func DefaultBalancerConfig() BalancerConfig {
	return BalancerConfig{
		SampleSize:  30,
		LoadoutSize: 4,
	}
}

// Balancer picks a loadout from a species' movepool.
type Balancer struct {
	moves  MoveSource
	config BalancerConfig
	logger *zap.Logger

	mu  sync.Mutex // guards rng
	rng *rand.Rand
}

// NewBalancer creates a balancer resolving move details through moves.
func NewBalancer(moves MoveSource, config BalancerConfig) *Balancer {
	defaults := DefaultBalancerConfig()
	if config.SampleSize <= 0 {
		config.SampleSize = defaults.SampleSize
	}
	if config.LoadoutSize <= 0 {
		config.LoadoutSize = defaults.LoadoutSize
	}
	logger := config.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	rng := config.Rand
	if rng == nil {
		seed := config.Seed
		if seed == 0 {
			seed = time.Now().UnixNano()
		}
		rng = rand.New(rand.NewSource(seed))
	}
	return &Balancer{moves: moves, config: config, logger: logger, rng: rng}
}

// Sample shuffles the distinct names and keeps at most SampleSize of them.
func (b *Balancer) Sample(names []string) []string {
	seen := make(map[string]bool, len(names))
	pool := make([]string, 0, len(names))
	for _, n := range names {
		if n == "" || seen[n] {
			continue
		}
		seen[n] = true
		pool = append(pool, n)
	}

	b.mu.Lock()
	b.rng.Shuffle(len(pool), func(i, j int) { pool[i], pool[j] = pool[j], pool[i] })
	b.mu.Unlock()

	if len(pool) > b.config.SampleSize {
		pool = pool[:b.config.SampleSize]
	}
	return pool
}

// Resolve looks up every name in parallel. Failed lookups are dropped; the
// survivors keep the order of names. Only a done context is an error.
func (b *Balancer) Resolve(ctx context.Context, names []string) ([]pokemon.Move, error) {
	resolved := make([]*pokemon.Move, len(names))

	var g errgroup.Group
	for i, name := range names {
		g.Go(func() error {
			m, err := b.moves.Move(ctx, name)
			if err != nil {
				b.logger.Debug("dropping unresolvable move", zap.String("move", name), zap.Error(err))
				return nil
			}
			resolved[i] = &m
			return nil
		})
	}
	_ = g.Wait()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	out := make([]pokemon.Move, 0, len(names))
	for _, m := range resolved {
		if m != nil {
			out = append(out, *m)
		}
	}
	return out, nil
}

// Balance samples, resolves and selects a loadout for a species with the given types.
func (b *Balancer) Balance(ctx context.Context, learnable []string, types []pokemon.TypeName) ([]pokemon.Move, error) {
	candidates, err := b.Candidates(ctx, learnable)
	if err != nil {
		return nil, err
	}
	return b.Pick(candidates, types), nil
}

// Candidates samples the learnable names and resolves the sample. It needs no
// species types, so callers may run it before the species is known.
func (b *Balancer) Candidates(ctx context.Context, learnable []string) ([]pokemon.Move, error) {
	return b.Resolve(ctx, b.Sample(learnable))
}

// Pick selects the configured loadout size from resolved candidates.
func (b *Balancer) Pick(candidates []pokemon.Move, types []pokemon.TypeName) []pokemon.Move {
	return SelectMoves(candidates, types, b.config.LoadoutSize)
}

// SelectMoves picks up to size moves from candidates, in candidate order:
// the first same-type damaging move, then one move per unseen type, then
// whatever is left.
func SelectMoves(candidates []pokemon.Move, types []pokemon.TypeName, size int) []pokemon.Move {
	result := make([]pokemon.Move, 0, size)
	used := make([]bool, len(candidates))
	usedTypes := make(map[pokemon.TypeName]bool)

	take := func(i int) {
		result = append(result, candidates[i])
		used[i] = true
		usedTypes[candidates[i].Type.Name] = true
	}

	for i, m := range candidates {
		if !m.IsStatus() && hasType(types, m.Type.Name) {
			take(i)
			break
		}
	}

	for i, m := range candidates {
		if len(result) >= size {
			break
		}
		if !used[i] && !usedTypes[m.Type.Name] {
			take(i)
		}
	}

	for i := range candidates {
		if len(result) >= size {
			break
		}
		if !used[i] {
			take(i)
		}
	}

	if len(result) > size {
		result = result[:size]
	}
	return result
}

func hasType(types []pokemon.TypeName, t pokemon.TypeName) bool {
	for _, own := range types {
		if own == t {
			return true
		}
	}
	return false
}
