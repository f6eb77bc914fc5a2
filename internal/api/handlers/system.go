package handlers

import (
	"context"
	"net/http"

	"github.com/ramonehamilton/pokeparty/internal/api/response"
	"github.com/ramonehamilton/pokeparty/internal/llm"
	"github.com/ramonehamilton/pokeparty/internal/metrics"
	"github.com/ramonehamilton/pokeparty/internal/version"
)

// AvailabilityChecker is implemented by providers that can report their own health.
type AvailabilityChecker interface {
	CheckAvailability(ctx context.Context) *llm.OllamaStatus
}

// SystemHandler handles system-related API requests.
type SystemHandler struct {
	provider string
	checker  AvailabilityChecker
	metrics  *metrics.GenerationMetrics
	catalog  interface{ Len() int }
}

// NewSystemHandler creates a new SystemHandler. checker may be nil.
func NewSystemHandler(provider string, checker AvailabilityChecker, m *metrics.GenerationMetrics, catalog interface{ Len() int }) *SystemHandler {
	return &SystemHandler{provider: provider, checker: checker, metrics: m, catalog: catalog}
}

// StatusResponse describes the running service.
type StatusResponse struct {
	Version      string            `json:"version"`
	Provider     string            `json:"provider"`
	CatalogMoves int               `json:"catalogMoves"`
	Ollama       *llm.OllamaStatus `json:"ollama,omitempty"`
}

// GetStatus returns the provider and catalog status.
// GET /api/v1/system/status
func (h *SystemHandler) GetStatus(w http.ResponseWriter, r *http.Request) {
	status := StatusResponse{
		Version:  version.GetVersion(),
		Provider: h.provider,
	}
	if h.catalog != nil {
		status.CatalogMoves = h.catalog.Len()
	}
	if h.checker != nil {
		status.Ollama = h.checker.CheckAvailability(r.Context())
	}
	response.Success(w, status)
}

// GetMetrics returns generation counters and latencies.
// GET /api/v1/system/metrics
func (h *SystemHandler) GetMetrics(w http.ResponseWriter, _ *http.Request) {
	if h.metrics == nil {
		response.Success(w, metrics.GenerationStats{})
		return
	}
	response.Success(w, h.metrics.GetStats())
}

// ResetMetrics clears all counters and histograms.
// POST /api/v1/system/metrics/reset
func (h *SystemHandler) ResetMetrics(w http.ResponseWriter, _ *http.Request) {
	if h.metrics != nil {
		h.metrics.Reset()
	}
	response.Success(w, map[string]string{"status": "reset"})
}

// GetVersion returns the application version.
// GET /api/v1/system/version
func (h *SystemHandler) GetVersion(w http.ResponseWriter, _ *http.Request) {
	response.Success(w, map[string]string{
		"version": version.GetVersion(),
		"service": "pokeparty-api",
	})
}
