package party

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/ramonehamilton/pokeparty/internal/events"
	"github.com/ramonehamilton/pokeparty/internal/llm"
	"github.com/ramonehamilton/pokeparty/internal/metrics"
	"github.com/ramonehamilton/pokeparty/internal/moves"
	"github.com/ramonehamilton/pokeparty/internal/pokemon"
)

// RandomTheme names a random-mode party whose provider did not invent a theme.
const RandomTheme = "Random"

// GeneratorConfig configures the orchestrator.
type GeneratorConfig struct {
	// Buffer is how many extra candidates are requested to absorb invalid ones.
	Buffer int

	// MaxCandidates caps the over-request.
	MaxCandidates int

	// Language of the strategy note ("en" or "ja").
	Language string

	// Movepools memoizes learnable move names across generations. Nil means a
	// cache private to this generator.
	Movepools MovepoolCache

	Logger  *zap.Logger
	Events  events.Dispatcher
	Metrics *metrics.GenerationMetrics
}

// DefaultGeneratorConfig returns sensible defaults.
func DefaultGeneratorConfig() GeneratorConfig {
	return GeneratorConfig{
		Buffer:        3,
		MaxCandidates: 10,
		Language:      "en",
	}
}

// Generator turns a Request into a Party.
type Generator struct {
	suggester llm.Suggester
	species   SpeciesSource
	balancer  *Balancer
	config    GeneratorConfig
	logger    *zap.Logger
	now       func() time.Time
}

// NewGenerator wires the orchestrator to its collaborators.
func NewGenerator(suggester llm.Suggester, species SpeciesSource, balancer *Balancer, config GeneratorConfig) *Generator {
	defaults := DefaultGeneratorConfig()
	if config.Buffer < 0 {
		config.Buffer = defaults.Buffer
	}
	if config.MaxCandidates <= 0 {
		config.MaxCandidates = defaults.MaxCandidates
	}
	if config.Language == "" {
		config.Language = defaults.Language
	}
	if config.Movepools == nil {
		config.Movepools = moves.NewMovepools(nil)
	}
	logger := config.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Generator{
		suggester: suggester,
		species:   species,
		balancer:  balancer,
		config:    config,
		logger:    logger,
		now:       time.Now,
	}
}

// OverRequest returns how many candidates are asked for when count members are wanted.
func (g *Generator) OverRequest(count int) int {
	n := count + g.config.Buffer
	if n > g.config.MaxCandidates {
		n = g.config.MaxCandidates
	}
	if n < count {
		n = count
	}
	return n
}

// Generate assembles a party. A *llm.RateLimitError from the suggestion step is
// returned as is; other upstream failures wrap ErrGeneration. A party with fewer
// members than requested is returned with Partial set.
func (g *Generator) Generate(ctx context.Context, req Request) (*Party, error) {
	req, err := req.Normalize()
	if err != nil {
		return nil, err
	}

	start := g.now()
	requestID := uuid.NewString()
	logger := g.logger.With(zap.String("request_id", requestID))
	g.countGeneration()
	g.emit(ctx, events.PartyStarted, events.PartyStartedEvent{
		RequestID:  requestID,
		Mode:       string(req.Mode),
		Theme:      req.Theme,
		Count:      req.Count,
		BattleMode: string(req.BattleMode),
	})

	theme, candidates, err := g.collect(ctx, req)
	if err != nil {
		g.fail(ctx, logger, requestID, err)
		return nil, err
	}
	g.emit(ctx, events.PartyCandidates, events.PartyCandidatesEvent{
		RequestID:  requestID,
		Theme:      theme,
		Candidates: candidates,
	})

	members, err := g.enrichAll(ctx, logger, requestID, candidates, req.Count)
	if err != nil {
		g.fail(ctx, logger, requestID, err)
		return nil, err
	}
	if len(members) == 0 {
		err := fmt.Errorf("%w (tried %d candidates)", ErrNoValidMembers, len(candidates))
		g.fail(ctx, logger, requestID, err)
		return nil, err
	}

	party := &Party{
		ID:         uuid.New(),
		Theme:      theme,
		Members:    members,
		BattleMode: req.BattleMode,
		Requested:  req.Count,
		Partial:    len(members) < req.Count,
		CreatedAt:  start,
	}
	if party.Partial {
		logger.Warn("party is smaller than requested",
			zap.Int("requested", req.Count),
			zap.Int("members", len(members)),
			zap.Int("candidates", len(candidates)))
	}
	if party.BattleMode == Double {
		annotateAllyHits(party.Members)
	}

	g.attachGuide(ctx, logger, party)

	elapsed := g.now().Sub(start)
	if m := g.config.Metrics; m != nil {
		m.EndToEndLatency.Record(elapsed)
		if party.Partial {
			m.Partial.Add(1)
		} else {
			m.Completed.Add(1)
		}
	}
	g.emit(ctx, events.PartyCompleted, events.PartyCompletedEvent{
		RequestID:   requestID,
		PartyID:     party.ID.String(),
		Members:     len(party.Members),
		Requested:   party.Requested,
		Partial:     party.Partial,
		GuideSource: string(party.GuideSource),
		DurationMs:  elapsed.Milliseconds(),
	})
	logger.Info("party generated",
		zap.String("party_id", party.ID.String()),
		zap.String("theme", party.Theme),
		zap.Int("members", len(party.Members)),
		zap.Duration("elapsed", elapsed))
	return party, nil
}

// collect asks the provider for candidates and returns the theme to use.
func (g *Generator) collect(ctx context.Context, req Request) (string, []string, error) {
	want := g.OverRequest(req.Count)
	start := g.now()
	suggestion, err := g.suggester.SuggestPokemon(ctx, llm.SuggestRequest{
		Theme:      req.Theme,
		Count:      want,
		BattleMode: string(req.BattleMode),
		Random:     req.Mode == ModeRandom,
	})
	if m := g.config.Metrics; m != nil {
		m.SuggestLatency.Record(g.now().Sub(start))
	}
	if err != nil {
		if _, ok := llm.AsRateLimit(err); ok {
			return "", nil, err
		}
		return "", nil, fmt.Errorf("%w: suggest candidates: %w", ErrGeneration, err)
	}

	theme := req.Theme
	if req.Mode == ModeRandom {
		theme = truncateRunes(strings.TrimSpace(suggestion.Theme), MaxThemeLength)
		if theme == "" {
			theme = RandomTheme
		}
	}

	candidates := NormalizeCandidates(suggestion.Pokemon)
	if len(candidates) > want {
		candidates = candidates[:want]
	}
	return theme, candidates, nil
}

// NormalizeCandidates lower-cases, trims and hyphenates identifiers, dropping
// empties and duplicates while keeping order.
func NormalizeCandidates(raw []string) []string {
	seen := make(map[string]bool, len(raw))
	out := make([]string, 0, len(raw))
	for _, r := range raw {
		id := strings.Join(strings.Fields(strings.ToLower(r)), "-")
		if id == "" || seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, id)
	}
	return out
}

// enrichAll walks candidates in windows of the still-missing member count. Each
// window runs in parallel and its results are taken in candidate order, so no
// candidate past the one that completes the party is ever attempted.
func (g *Generator) enrichAll(ctx context.Context, logger *zap.Logger, requestID string, candidates []string, count int) ([]Member, error) {
	members := make([]Member, 0, count)
	seenSpecies := make(map[int]bool, count)

	for next := 0; len(members) < count && next < len(candidates); {
		end := next + (count - len(members))
		if end > len(candidates) {
			end = len(candidates)
		}
		window := candidates[next:end]
		results := make([]*Member, len(window))

		var eg errgroup.Group
		for i, name := range window {
			position := next + i
			eg.Go(func() error {
				start := g.now()
				m, err := g.enrich(ctx, name)
				if g.config.Metrics != nil {
					g.config.Metrics.RecordCandidate(g.now().Sub(start), err == nil)
				}
				ev := events.PartyMemberEvent{RequestID: requestID, Candidate: name, Position: position, Accepted: err == nil}
				if err != nil {
					ev.Error = err.Error()
					logger.Debug("dropping candidate", zap.String("candidate", name), zap.Error(err))
				} else {
					results[i] = &m
				}
				g.emit(ctx, events.PartyMember, ev)
				return nil
			})
		}
		_ = eg.Wait()

		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrGeneration, err)
		}

		for _, m := range results {
			if m == nil || seenSpecies[m.Species.ID] {
				continue
			}
			seenSpecies[m.Species.ID] = true
			members = append(members, *m)
		}
		next = end
	}

	if len(members) > count {
		members = members[:count]
	}
	return members, nil
}

// enrich resolves one candidate. A cached movepool lets the species lookup and
// the move lookups run concurrently; otherwise one fetch yields both and the
// movepool is cached under the candidate name and the species' name and ID.
func (g *Generator) enrich(ctx context.Context, name string) (Member, error) {
	if learnable, ok := g.config.Movepools.Cached(name); ok {
		return g.enrichCached(ctx, name, learnable)
	}

	species, learnable, err := g.species.SpeciesWithMoves(ctx, name)
	if err != nil {
		return Member{}, fmt.Errorf("species %s: %w", name, err)
	}
	g.config.Movepools.Store(learnable, name, species.Name, strconv.Itoa(species.ID))

	candidates, err := g.balancer.Candidates(ctx, learnable)
	if err != nil {
		return Member{}, fmt.Errorf("movepool %s: %w", name, err)
	}
	return Member{Species: species, Moves: g.balancer.Pick(candidates, species.TypeNames())}, nil
}

func (g *Generator) enrichCached(ctx context.Context, name string, learnable []string) (Member, error) {
	var (
		species    pokemon.Species
		candidates []pokemon.Move
	)

	eg, ectx := errgroup.WithContext(ctx)
	eg.Go(func() error {
		s, err := g.species.Species(ectx, name)
		if err != nil {
			return fmt.Errorf("species %s: %w", name, err)
		}
		species = s
		return nil
	})
	eg.Go(func() error {
		var err error
		candidates, err = g.balancer.Candidates(ectx, learnable)
		if err != nil {
			return fmt.Errorf("movepool %s: %w", name, err)
		}
		return nil
	})
	if err := eg.Wait(); err != nil {
		return Member{}, err
	}
	return Member{Species: species, Moves: g.balancer.Pick(candidates, species.TypeNames())}, nil
}

// attachGuide sets the strategy note. It never fails: any provider problem, or a
// party short of members, yields the fallback note.
func (g *Generator) attachGuide(ctx context.Context, logger *zap.Logger, p *Party) {
	lang := g.config.Language
	p.Guide, p.GuideSource = FallbackGuide(p.Theme, p.BattleMode, p.Members, lang), GuideFallback

	if !p.Partial {
		start := g.now()
		guide, err := g.suggester.WriteGuide(ctx, guideRequest(p.Theme, p.BattleMode, p.Members, lang))
		if g.config.Metrics != nil {
			g.config.Metrics.GuideLatency.Record(g.now().Sub(start))
		}
		if err != nil {
			logger.Warn("strategy note unavailable, using fallback", zap.Error(err))
		} else if guide = strings.TrimSpace(guide); guide != "" {
			p.Guide, p.GuideSource = guide, GuideFromProvider
		}
	}
	if p.GuideSource == GuideFallback && g.config.Metrics != nil {
		g.config.Metrics.GuideFallbacks.Add(1)
	}

	if p.BattleMode == Double {
		if section := allyHitSection(p.Members, lang); section != "" {
			p.Guide += "\n\n" + section
		}
	}
}

func (g *Generator) fail(ctx context.Context, logger *zap.Logger, requestID string, err error) {
	if rl, ok := llm.AsRateLimit(err); ok {
		if g.config.Metrics != nil {
			g.config.Metrics.RateLimited.Add(1)
		}
		logger.Warn("suggestion provider rate limited",
			zap.String("provider", rl.Provider),
			zap.Duration("retry_after", rl.RetryAfter))
		g.emit(ctx, events.PartyRateLimited, events.PartyRateLimitedEvent{
			RequestID:         requestID,
			Provider:          rl.Provider,
			RetryAfterSeconds: rl.RetryAfterSeconds(),
		})
		return
	}

	if g.config.Metrics != nil {
		g.config.Metrics.Failed.Add(1)
	}
	logger.Error("party generation failed", zap.Error(err))
	g.emit(ctx, events.PartyFailed, events.PartyFailedEvent{
		RequestID: requestID,
		Kind:      string(Kind(err)),
		Error:     err.Error(),
	})
}

func (g *Generator) countGeneration() {
	if g.config.Metrics != nil {
		g.config.Metrics.Generations.Add(1)
	}
}

func (g *Generator) emit(ctx context.Context, eventType string, payload any) {
	if g.config.Events != nil {
		g.config.Events.Dispatch(events.NewTypedEvent(ctx, eventType, payload))
	}
}
