package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/ramonehamilton/pokeparty/internal/api/response"
	"github.com/ramonehamilton/pokeparty/internal/pokedex"
)

// PokedexHandler serves species name search.
type PokedexHandler struct {
	catalog *pokedex.Catalog
}

// NewPokedexHandler creates a new PokedexHandler.
func NewPokedexHandler(catalog *pokedex.Catalog) *PokedexHandler {
	return &PokedexHandler{catalog: catalog}
}

// SearchResponse wraps species search results with the catalog size.
type SearchResponse struct {
	Results []pokedex.Entry `json:"results"`
	Total   int             `json:"total"`
}

// Search finds species by Japanese name.
// GET /api/v1/pokemon/search?q=&limit=
func (h *PokedexHandler) Search(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	limit := pokedex.DefaultSearchLimit
	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		l, err := strconv.Atoi(limitStr)
		if err != nil || l < 1 {
			response.BadRequest(w, errors.New("limit must be a positive integer"))
			return
		}
		limit = min(l, maxSearchLimit)
	}

	response.Success(w, SearchResponse{
		Results: h.catalog.Search(query, limit),
		Total:   h.catalog.Len(),
	})
}

// GetSpecies returns one species list entry by National Dex number or machine name.
// GET /api/v1/pokemon/{speciesID}
func (h *PokedexHandler) GetSpecies(w http.ResponseWriter, r *http.Request) {
	raw := chi.URLParam(r, "speciesID")

	var (
		entry pokedex.Entry
		ok    bool
	)
	if id, err := strconv.Atoi(raw); err == nil {
		entry, ok = h.catalog.ByID(id)
	} else {
		entry, ok = h.catalog.ByName(raw)
	}
	if !ok {
		response.NotFound(w, errors.New("species not found"))
		return
	}
	response.Success(w, entry)
}
