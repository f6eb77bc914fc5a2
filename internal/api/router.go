package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ramonehamilton/pokeparty/internal/api/handlers"
	"github.com/ramonehamilton/pokeparty/internal/api/response"
)

// setupRoutes configures all API routes.
func (s *Server) setupRoutes() {
	// Health check endpoint (no versioning)
	s.router.Get("/health", s.healthCheck)

	if s.wsHub != nil {
		s.router.Get("/ws", s.wsHub.ServeWs)
	}

	svc := s.services
	s.router.Route("/api/v1", func(r chi.Router) {
		partyHandler := handlers.NewPartyHandler(svc.Generator, svc.Moves, s.logger)
		r.Route("/party", func(r chi.Router) {
			if svc.Generator != nil {
				r.Post("/generate", partyHandler.Generate)
			}
			if svc.Moves != nil {
				r.Post("/swap", partyHandler.Swap)
			}
		})

		movesHandler := handlers.NewMovesHandler(svc.Catalog, svc.Learnable, svc.Species, s.logger)
		r.Route("/moves", func(r chi.Router) {
			r.Get("/search", movesHandler.Search)
			r.Get("/{moveID}", movesHandler.GetMove)
		})
		pokedexHandler := handlers.NewPokedexHandler(svc.Pokedex)
		r.Route("/pokemon", func(r chi.Router) {
			r.Get("/search", pokedexHandler.Search)
			r.Get("/{speciesID}", pokedexHandler.GetSpecies)
			if svc.Learnable != nil {
				r.Get("/{speciesID}/moves", movesHandler.GetMovepool)
			}
		})

		effHandler := handlers.NewEffectivenessHandler(svc.Language)
		r.Get("/types", effHandler.Types)
		r.Route("/effectiveness", func(r chi.Router) {
			r.Get("/", effHandler.Calculate)
			r.Get("/defense", effHandler.Defense)
			r.Get("/coverage", effHandler.Coverage)
		})

		systemHandler := handlers.NewSystemHandler(svc.Provider, svc.Checker, svc.Metrics, svc.Catalog)
		r.Route("/system", func(r chi.Router) {
			r.Get("/status", systemHandler.GetStatus)
			r.Get("/version", systemHandler.GetVersion)
			r.Get("/metrics", systemHandler.GetMetrics)
			r.Post("/metrics/reset", systemHandler.ResetMetrics)
		})
	})
}

// healthCheck returns server health status.
func (s *Server) healthCheck(w http.ResponseWriter, _ *http.Request) {
	status := map[string]interface{}{
		"status":       "healthy",
		"service":      "pokeparty-api",
		"catalogMoves": s.services.Catalog.Len(),
		"species":      s.services.Pokedex.Len(),
	}
	if s.wsHub != nil {
		status["websocketClients"] = s.wsHub.ClientCount()
	}
	response.JSON(w, http.StatusOK, status)
}
