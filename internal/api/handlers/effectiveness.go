package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/ramonehamilton/pokeparty/internal/api/response"
	"github.com/ramonehamilton/pokeparty/internal/effectiveness"
	"github.com/ramonehamilton/pokeparty/internal/pokemon"
)

// EffectivenessHandler answers type matchup questions. It has no dependencies.
type EffectivenessHandler struct {
	language string
}

// NewEffectivenessHandler creates a handler whose messages default to language.
func NewEffectivenessHandler(language string) *EffectivenessHandler {
	return &EffectivenessHandler{language: language}
}

// MatchupResponse is one attacking type against one defender.
type MatchupResponse struct {
	Attack  pokemon.TypeName     `json:"attack"`
	Defend  []pokemon.TypeName   `json:"defend"`
	Label   string               `json:"label"`
	Outcome effectiveness.Result `json:"result"`
}

// TypeResponse is a type as presented to clients.
type TypeResponse struct {
	pokemon.Type
	Label string `json:"label"`
}

func (h *EffectivenessHandler) lang(r *http.Request) string {
	if l := r.URL.Query().Get("lang"); l == "en" || l == "ja" {
		return l
	}
	return h.language
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func parseDefenders(raw string) (effectiveness.DefenderTypes, error) {
	list := splitList(raw)
	if len(list) == 0 {
		return effectiveness.DefenderTypes{}, errors.New("at least one defending type is required")
	}
	return effectiveness.ParseDefenderTypes(list)
}

// Calculate returns the multiplier and message for one matchup.
// GET /api/v1/effectiveness?attack=fire&defend=grass,steel
func (h *EffectivenessHandler) Calculate(w http.ResponseWriter, r *http.Request) {
	attack, err := pokemon.ParseTypeName(r.URL.Query().Get("attack"))
	if err != nil {
		response.BadRequest(w, err)
		return
	}
	defenders, err := parseDefenders(r.URL.Query().Get("defend"))
	if err != nil {
		response.BadRequest(w, err)
		return
	}

	result := effectiveness.CalculateLocalized(h.lang(r), attack, defenders)
	response.Success(w, MatchupResponse{
		Attack:  attack,
		Defend:  defenders.Types(),
		Label:   effectiveness.FormatMultiplier(result.Multiplier),
		Outcome: result,
	})
}

// Defense groups every attacking type by how it fares against a defender.
// GET /api/v1/effectiveness/defense?types=water,ground
func (h *EffectivenessHandler) Defense(w http.ResponseWriter, r *http.Request) {
	defenders, err := parseDefenders(r.URL.Query().Get("types"))
	if err != nil {
		response.BadRequest(w, err)
		return
	}
	response.Success(w, effectiveness.DefensiveProfile(defenders))
}

// Coverage groups the single types by how one attacking type hits them.
// GET /api/v1/effectiveness/coverage?attack=ground
func (h *EffectivenessHandler) Coverage(w http.ResponseWriter, r *http.Request) {
	attack, err := pokemon.ParseTypeName(r.URL.Query().Get("attack"))
	if err != nil {
		response.BadRequest(w, err)
		return
	}
	response.Success(w, effectiveness.OffensiveCoverage(attack))
}

// Types lists the 18 types in chart order.
// GET /api/v1/types
func (h *EffectivenessHandler) Types(w http.ResponseWriter, r *http.Request) {
	lang := h.lang(r)
	all := pokemon.AllTypes()
	out := make([]TypeResponse, len(all))
	for i, t := range all {
		out[i] = TypeResponse{Type: t, Label: t.Localized(lang)}
	}
	response.Success(w, out)
}
