package handlers

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/ramonehamilton/pokeparty/internal/api/response"
	"github.com/ramonehamilton/pokeparty/internal/moves"
	"github.com/ramonehamilton/pokeparty/internal/pokeapi"
	"github.com/ramonehamilton/pokeparty/internal/pokemon"
)

// maxSearchLimit caps ?limit= on move search.
const maxSearchLimit = 50

// MovepoolLookup resolves a species' learnable moves.
type MovepoolLookup interface {
	Moves(ctx context.Context, speciesID int) ([]moves.Entry, error)
}

// SpeciesLookup resolves a species by name or ID.
type SpeciesLookup interface {
	Species(ctx context.Context, idOrName string) (pokemon.Species, error)
}

// MovesHandler serves the move catalog and per-species movepools.
type MovesHandler struct {
	catalog   *moves.Catalog
	learnable MovepoolLookup
	species   SpeciesLookup
	logger    *zap.Logger
}

// NewMovesHandler creates a new MovesHandler. species resolves names to IDs on
// the movepool route and may be nil when only numeric IDs are used.
func NewMovesHandler(catalog *moves.Catalog, learnable MovepoolLookup, species SpeciesLookup, logger *zap.Logger) *MovesHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &MovesHandler{catalog: catalog, learnable: learnable, species: species, logger: logger}
}

// Search finds moves by display name.
// GET /api/v1/moves/search?q=&limit=
func (h *MovesHandler) Search(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	limit := moves.DefaultSearchLimit
	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		l, err := strconv.Atoi(limitStr)
		if err != nil || l < 1 {
			response.BadRequest(w, errors.New("limit must be a positive integer"))
			return
		}
		limit = min(l, maxSearchLimit)
	}

	response.Success(w, h.catalog.Search(query, limit))
}

// GetMove returns one catalog entry.
// GET /api/v1/moves/{moveID}
func (h *MovesHandler) GetMove(w http.ResponseWriter, r *http.Request) {
	raw := chi.URLParam(r, "moveID")

	var (
		entry moves.Entry
		ok    bool
	)
	if id, err := strconv.Atoi(raw); err == nil {
		entry, ok = h.catalog.ByID(id)
	} else {
		entry, ok = h.catalog.ByName(strings.ToLower(raw))
	}
	if !ok {
		response.NotFound(w, errors.New("move not found"))
		return
	}
	response.Success(w, entry)
}

// GetMovepool returns the catalog moves a species can learn, for picking swaps.
// GET /api/v1/pokemon/{speciesID}/moves
func (h *MovesHandler) GetMovepool(w http.ResponseWriter, r *http.Request) {
	raw := chi.URLParam(r, "speciesID")

	id, err := strconv.Atoi(raw)
	if err != nil {
		if h.species == nil {
			response.BadRequest(w, errors.New("species ID must be numeric"))
			return
		}
		s, err := h.species.Species(r.Context(), strings.ToLower(raw))
		if err != nil {
			h.writeLookupError(w, raw, err)
			return
		}
		id = s.ID
	}

	entries, err := h.learnable.Moves(r.Context(), id)
	if err != nil {
		h.writeLookupError(w, raw, err)
		return
	}
	response.Success(w, entries)
}

func (h *MovesHandler) writeLookupError(w http.ResponseWriter, species string, err error) {
	if pokeapi.IsNotFound(err) {
		response.NotFound(w, errors.New("species not found"))
		return
	}
	h.logger.Error("Movepool lookup failed", zap.String("species", species), zap.Error(err))
	response.InternalError(w, err)
}
