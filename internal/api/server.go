// Package api serves party generation and the move and type lookups over HTTP.
package api

import (
	"context"
	"errors"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	"github.com/ramonehamilton/pokeparty/internal/api/handlers"
	"github.com/ramonehamilton/pokeparty/internal/api/response"
	"github.com/ramonehamilton/pokeparty/internal/api/websocket"
	"github.com/ramonehamilton/pokeparty/internal/config"
	"github.com/ramonehamilton/pokeparty/internal/metrics"
	"github.com/ramonehamilton/pokeparty/internal/moves"
	"github.com/ramonehamilton/pokeparty/internal/party"
	"github.com/ramonehamilton/pokeparty/internal/pokedex"
)

// Services holds everything the handlers call into.
type Services struct {
	Generator handlers.PartyGenerator
	Moves     party.MoveSource
	Species   handlers.SpeciesLookup
	Catalog   *moves.Catalog
	Pokedex   *pokedex.Catalog
	Learnable handlers.MovepoolLookup
	Metrics   *metrics.GenerationMetrics

	// Provider is the configured suggestion provider's name.
	Provider string
	// Checker reports provider health on /system/status; nil skips the check.
	Checker handlers.AvailabilityChecker
	// Language is the default for effectiveness messages and type labels.
	Language string
}

// Server represents the REST API server.
type Server struct {
	router     *chi.Mux
	httpServer *http.Server
	listener   net.Listener
	config     config.ServerConfig
	services   *Services
	logger     *zap.Logger

	// WebSocket hub for generation progress
	wsHub *websocket.Hub
}

// NewServer creates a new API server.
func NewServer(cfg config.ServerConfig, services *Services, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	if services == nil {
		services = &Services{}
	}
	if services.Catalog == nil {
		services.Catalog = moves.NewCatalog(nil)
	}
	if services.Pokedex == nil {
		services.Pokedex = pokedex.NewCatalog(nil)
	}

	s := &Server{
		router:   chi.NewRouter(),
		config:   cfg,
		services: services,
		logger:   logger.Named("api"),
	}
	if cfg.EnableEvents {
		s.wsHub = websocket.NewHub(logger, cfg.AllowedOrigins)
	}

	s.setupMiddleware()
	s.setupRoutes()

	return s
}

// setupMiddleware configures the middleware stack.
func (s *Server) setupMiddleware() {
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(middleware.Logger)
	s.router.Use(middleware.Recoverer)

	// Generation can take a while; stay just inside the write timeout.
	if timeout := s.config.GetWriteTimeout(); timeout > time.Second {
		s.router.Use(middleware.Timeout(timeout - time.Second))
	}

	s.router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   s.config.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", "X-Request-ID"},
		ExposedHeaders:   []string{"Retry-After", "X-Request-ID"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	s.router.Use(jsonContentTypeMiddleware)
}

// jsonContentTypeMiddleware enforces application/json content-type for requests with bodies.
func jsonContentTypeMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost || r.Method == http.MethodPut || r.Method == http.MethodPatch {
			if r.ContentLength == 0 {
				next.ServeHTTP(w, r)
				return
			}

			contentType := r.Header.Get("Content-Type")
			if contentType != "application/json" && !strings.HasPrefix(contentType, "application/json;") {
				response.Error(w, http.StatusUnsupportedMediaType, errors.New("Content-Type must be application/json"))
				return
			}
		}
		next.ServeHTTP(w, r)
	})
}

// Handler returns the root handler, for tests and embedding.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Start binds the listen address and serves in a goroutine. Bind errors are
// returned; later serve errors are logged.
func (s *Server) Start() error {
	ln, err := net.Listen("tcp", s.config.Address)
	if err != nil {
		return err
	}
	s.listener = ln

	if s.wsHub != nil {
		go s.wsHub.Run()
	}

	s.httpServer = &http.Server{
		Handler:           s.router,
		ReadTimeout:       s.config.GetReadTimeout(),
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      s.config.GetWriteTimeout(),
		IdleTimeout:       120 * time.Second,
	}

	go func() {
		s.logger.Info("API server listening", zap.String("address", ln.Addr().String()))
		if err := s.httpServer.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.Error("API server error", zap.Error(err))
		}
	}()

	return nil
}

// Addr returns the bound address once started, or the configured one.
func (s *Server) Addr() string {
	if s.listener != nil {
		return s.listener.Addr().String()
	}
	return s.config.Address
}

// Shutdown gracefully shuts down the API server and the WebSocket hub.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.wsHub != nil {
		s.wsHub.Stop()
	}
	if s.httpServer == nil {
		return nil
	}

	s.logger.Info("Shutting down API server")
	return s.httpServer.Shutdown(ctx)
}

// WebSocketHub returns the WebSocket hub, or nil when events are disabled.
func (s *Server) WebSocketHub() *websocket.Hub {
	return s.wsHub
}

// NewWebSocketObserver creates an observer that forwards party events to
// WebSocket clients. Returns nil when events are disabled.
func (s *Server) NewWebSocketObserver() *websocket.WebSocketObserver {
	if s.wsHub == nil {
		return nil
	}
	return websocket.NewWebSocketObserver(s.wsHub, "party:", "catalog:")
}
