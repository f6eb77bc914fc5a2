package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/ramonehamilton/pokeparty/internal/config"
	"github.com/ramonehamilton/pokeparty/internal/events"
	"github.com/ramonehamilton/pokeparty/internal/llm"
	"github.com/ramonehamilton/pokeparty/internal/metrics"
	"github.com/ramonehamilton/pokeparty/internal/moves"
	"github.com/ramonehamilton/pokeparty/internal/party"
	"github.com/ramonehamilton/pokeparty/internal/pokedex"
	"github.com/ramonehamilton/pokeparty/internal/pokemon"
)

type generatorFunc func(ctx context.Context, req party.Request) (*party.Party, error)

func (f generatorFunc) Generate(ctx context.Context, req party.Request) (*party.Party, error) {
	return f(ctx, req)
}

func testConfig() config.ServerConfig {
	cfg := config.DefaultConfig().Server
	cfg.Address = "127.0.0.1:0"
	return cfg
}

func testServices() *Services {
	power := 90
	catalog := moves.NewCatalog([]moves.Entry{
		{ID: 85, Name: "thunderbolt", DisplayName: "Thunderbolt", Type: pokemon.Electric, Power: &power, DamageClass: pokemon.Special},
	})
	return &Services{
		Catalog: catalog,
		Moves:   party.CatalogMoves{Catalog: catalog},
		Pokedex: pokedex.NewCatalog([]pokedex.Entry{
			{ID: 25, Name: "pikachu", JapaneseName: "ピカチュウ", Types: []pokemon.TypeName{pokemon.Electric}},
		}),
		Metrics:  metrics.NewGenerationMetrics(),
		Provider: "anthropic",
		Language: "en",
	}
}

func TestNewServer_Defaults(t *testing.T) {
	s := NewServer(testConfig(), nil, nil)

	require.NotNil(t, s)
	assert.NotNil(t, s.WebSocketHub())
	assert.NotNil(t, s.NewWebSocketObserver())
	assert.Equal(t, "127.0.0.1:0", s.Addr())
	assert.NoError(t, s.Shutdown(context.Background()), "shutdown before start is a no-op")
}

func TestNewServer_EventsDisabled(t *testing.T) {
	cfg := testConfig()
	cfg.EnableEvents = false
	s := NewServer(cfg, nil, nil)

	assert.Nil(t, s.WebSocketHub())
	assert.Nil(t, s.NewWebSocketObserver())

	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ws", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHealthCheck(t *testing.T) {
	s := NewServer(testConfig(), testServices(), zaptest.NewLogger(t))

	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "healthy", body["status"])
	assert.Equal(t, float64(1), body["catalogMoves"])
	assert.Equal(t, float64(1), body["species"])
}

func TestJSONContentTypeMiddleware(t *testing.T) {
	svc := testServices()
	svc.Generator = generatorFunc(func(context.Context, party.Request) (*party.Party, error) {
		return &party.Party{ID: uuid.New(), Theme: "x"}, nil
	})
	s := NewServer(testConfig(), svc, zaptest.NewLogger(t))

	req := httptest.NewRequest(http.MethodPost, "/api/v1/party/generate", strings.NewReader(`{"theme":"x","count":1}`))
	req.Header.Set("Content-Type", "text/plain")
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnsupportedMediaType, rec.Code)

	req = httptest.NewRequest(http.MethodPost, "/api/v1/party/generate", strings.NewReader(`{"theme":"x","count":1}`))
	req.Header.Set("Content-Type", "application/json; charset=utf-8")
	rec = httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRoutes(t *testing.T) {
	s := NewServer(testConfig(), testServices(), zaptest.NewLogger(t))

	tests := []struct {
		target string
		want   int
	}{
		{"/api/v1/types", http.StatusOK},
		{"/api/v1/effectiveness?attack=water&defend=fire", http.StatusOK},
		{"/api/v1/effectiveness/defense?types=steel", http.StatusOK},
		{"/api/v1/effectiveness/coverage?attack=fairy", http.StatusOK},
		{"/api/v1/moves/search?q=thunder", http.StatusOK},
		{"/api/v1/moves/85", http.StatusOK},
		{"/api/v1/moves/1", http.StatusNotFound},
		{"/api/v1/pokemon/search?q=" + url.QueryEscape("ピカ"), http.StatusOK},
		{"/api/v1/pokemon/25", http.StatusOK},
		{"/api/v1/pokemon/pikachu", http.StatusOK},
		{"/api/v1/pokemon/26", http.StatusNotFound},
		{"/api/v1/system/status", http.StatusOK},
		{"/api/v1/system/metrics", http.StatusOK},
		{"/api/v1/system/version", http.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.target, func(t *testing.T) {
			rec := httptest.NewRecorder()
			s.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, tt.target, nil))
			assert.Equal(t, tt.want, rec.Code, rec.Body.String())
		})
	}
}

func TestCORS(t *testing.T) {
	s := NewServer(testConfig(), nil, nil)

	req := httptest.NewRequest(http.MethodOptions, "/api/v1/party/generate", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)

	assert.Equal(t, "http://localhost:3000", rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestServer_GenerateStreamsEvents(t *testing.T) {
	dispatcher := events.NewEventDispatcher(zaptest.NewLogger(t))
	svc := testServices()
	svc.Generator = generatorFunc(func(ctx context.Context, req party.Request) (*party.Party, error) {
		dispatcher.Dispatch(events.NewTypedEvent(ctx, events.PartyRateLimited, events.PartyRateLimitedEvent{
			RequestID:         "r1",
			Provider:          "anthropic",
			RetryAfterSeconds: 7,
		}))
		return nil, &llm.RateLimitError{Provider: "anthropic", RetryAfter: 7 * time.Second}
	})

	s := NewServer(testConfig(), svc, zaptest.NewLogger(t))
	dispatcher.Register(s.NewWebSocketObserver())
	require.NoError(t, s.Start())
	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		_ = s.Shutdown(ctx)
	})

	base := "http://" + s.Addr()
	conn, _, err := websocket.DefaultDialer.Dial("ws://"+s.Addr()+"/ws?types=party:", nil)
	require.NoError(t, err)
	defer conn.Close()
	require.Eventually(t, func() bool { return s.WebSocketHub().ClientCount() == 1 }, time.Second, 5*time.Millisecond)

	resp, err := http.Post(base+"/api/v1/party/generate", "application/json", bytes.NewBufferString(`{"theme":"Sparks","count":3}`))
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusTooManyRequests, resp.StatusCode)
	assert.Equal(t, "7", resp.Header.Get("Retry-After"))

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(time.Second)))
	_, data, err := conn.ReadMessage()
	require.NoError(t, err)
	assert.Contains(t, string(data), fmt.Sprintf("%q", events.PartyRateLimited))
}
