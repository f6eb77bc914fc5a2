package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/ramonehamilton/pokeparty/internal/api/response"
	"github.com/ramonehamilton/pokeparty/internal/llm"
	"github.com/ramonehamilton/pokeparty/internal/party"
	"github.com/ramonehamilton/pokeparty/internal/pokeapi"
)

// maxBodyBytes bounds request bodies; a swap carries a whole party.
const maxBodyBytes = 1 << 20

// PartyGenerator is the part of *party.Generator the handler needs.
type PartyGenerator interface {
	Generate(ctx context.Context, req party.Request) (*party.Party, error)
}

// PartyHandler handles party generation and move swaps.
type PartyHandler struct {
	generator PartyGenerator
	moves     party.MoveSource
	logger    *zap.Logger
}

// NewPartyHandler creates a new PartyHandler.
func NewPartyHandler(generator PartyGenerator, moves party.MoveSource, logger *zap.Logger) *PartyHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PartyHandler{generator: generator, moves: moves, logger: logger}
}

// PartyResponse wraps a generated or modified party.
type PartyResponse struct {
	Party *party.Party `json:"party"`
}

// SwapRequest replaces one move of one member.
type SwapRequest struct {
	Party  *party.Party `json:"party"`
	Member int          `json:"member"`
	Slot   int          `json:"slot"`
	Move   string       `json:"move"` // machine name
}

func decodeJSON(w http.ResponseWriter, r *http.Request, v interface{}) error {
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(v); err != nil {
		return fmt.Errorf("%w: invalid request body: %v", party.ErrInvalidInput, err)
	}
	return nil
}

// Generate builds a themed party.
// POST /api/v1/party/generate
func (h *PartyHandler) Generate(w http.ResponseWriter, r *http.Request) {
	var req party.Request
	if err := decodeJSON(w, r, &req); err != nil {
		writePartyError(w, h.logger, err)
		return
	}

	p, err := h.generator.Generate(r.Context(), req)
	if err != nil {
		writePartyError(w, h.logger, err)
		return
	}
	response.JSON(w, http.StatusOK, PartyResponse{Party: p})
}

// Swap replaces a single move slot chosen by the caller.
// POST /api/v1/party/swap
func (h *PartyHandler) Swap(w http.ResponseWriter, r *http.Request) {
	var req SwapRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writePartyError(w, h.logger, err)
		return
	}
	name := strings.ToLower(strings.TrimSpace(req.Move))
	if name == "" {
		writePartyError(w, h.logger, fmt.Errorf("%w: move is required", party.ErrInvalidInput))
		return
	}

	move, err := h.moves.Move(r.Context(), name)
	if err != nil {
		if errors.Is(err, party.ErrUnknownMove) || pokeapi.IsNotFound(err) {
			writePartyError(w, h.logger, fmt.Errorf("%w: %v", party.ErrInvalidInput, err))
			return
		}
		h.logger.Error("Move lookup failed", zap.String("move", name), zap.Error(err))
		response.InternalError(w, err)
		return
	}

	updated, err := party.SwapMove(req.Party, req.Member, req.Slot, move)
	if err != nil {
		writePartyError(w, h.logger, err)
		return
	}
	response.JSON(w, http.StatusOK, PartyResponse{Party: updated})
}

// writePartyError maps the generation error taxonomy onto HTTP.
func writePartyError(w http.ResponseWriter, logger *zap.Logger, err error) {
	switch party.Kind(err) {
	case party.KindInvalidInput:
		response.Coded(w, http.StatusBadRequest, response.CodeInvalidInput, err)
	case party.KindRateLimited:
		rl, _ := llm.AsRateLimit(err)
		response.RateLimited(w, rl.RetryAfterSeconds(), err)
	default:
		logger.Error("Party generation failed", zap.Error(err))
		response.Coded(w, http.StatusInternalServerError, response.CodeGeneration, err)
	}
}
