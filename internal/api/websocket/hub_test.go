package websocket

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func startHub(t *testing.T, origins ...string) (*Hub, string) {
	t.Helper()
	hub := NewHub(zaptest.NewLogger(t), origins)
	go hub.Run()
	server := httptest.NewServer(http.HandlerFunc(hub.ServeWs))
	t.Cleanup(func() {
		hub.Stop()
		server.Close()
	})
	return hub, "ws" + strings.TrimPrefix(server.URL, "http")
}

func dial(t *testing.T, url string, header http.Header) *websocket.Conn {
	t.Helper()
	conn, _, err := websocket.DefaultDialer.Dial(url, header)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return conn
}

func waitForClients(t *testing.T, hub *Hub, n int) {
	t.Helper()
	require.Eventually(t, func() bool { return hub.ClientCount() == n }, time.Second, 5*time.Millisecond)
}

func readEvent(t *testing.T, conn *websocket.Conn) Event {
	t.Helper()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(time.Second)))
	_, data, err := conn.ReadMessage()
	require.NoError(t, err)
	var e Event
	require.NoError(t, json.Unmarshal(data, &e))
	return e
}

func TestHub_BroadcastWithoutClients(t *testing.T) {
	hub := NewHub(nil, nil)
	go hub.Run()
	defer hub.Stop()

	assert.True(t, hub.BroadcastEvent(Event{Type: "party:started"}))
	assert.Equal(t, 0, hub.ClientCount())
}

func TestHub_StopIsIdempotent(t *testing.T) {
	hub := NewHub(nil, nil)
	go hub.Run()

	hub.Stop()
	hub.Stop()

	require.Eventually(t, hub.IsStopped, time.Second, 5*time.Millisecond)
	assert.False(t, hub.BroadcastEvent(Event{Type: "party:started"}))

	rec := httptest.NewRecorder()
	hub.ServeWs(rec, httptest.NewRequest(http.MethodGet, "/ws", nil))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestHub_DeliversToEveryClient(t *testing.T) {
	hub, url := startHub(t)
	conns := []*websocket.Conn{dial(t, url, nil), dial(t, url, nil), dial(t, url, nil)}
	waitForClients(t, hub, 3)

	hub.BroadcastEvent(Event{Type: "party:member", Data: map[string]any{"candidate": "pikachu"}})

	for _, conn := range conns {
		e := readEvent(t, conn)
		assert.Equal(t, "party:member", e.Type)
		assert.Equal(t, "pikachu", e.Data.(map[string]any)["candidate"])
	}
}

func TestHub_TypeFilters(t *testing.T) {
	hub, url := startHub(t)
	all := dial(t, url, nil)
	completedOnly := dial(t, url+"?types=party:completed,party:failed", nil)
	waitForClients(t, hub, 2)

	hub.BroadcastEvent(Event{Type: "party:member"})
	hub.BroadcastEvent(Event{Type: "party:completed"})

	assert.Equal(t, "party:member", readEvent(t, all).Type)
	assert.Equal(t, "party:completed", readEvent(t, all).Type)
	assert.Equal(t, "party:completed", readEvent(t, completedOnly).Type, "member event is filtered out")
}

func TestHub_ClientDisconnect(t *testing.T) {
	hub, url := startHub(t)
	conn := dial(t, url, nil)
	waitForClients(t, hub, 1)

	conn.Close()
	waitForClients(t, hub, 0)
}

func TestHub_OriginCheck(t *testing.T) {
	_, url := startHub(t, "http://localhost:3000")

	_, _, err := websocket.DefaultDialer.Dial(url, http.Header{"Origin": {"http://evil.example"}})
	assert.Error(t, err)

	dial(t, url, http.Header{"Origin": {"http://localhost:3000"}})
	dial(t, url, nil)
}

func TestOriginChecker(t *testing.T) {
	req := func(origin string) *http.Request {
		r := httptest.NewRequest(http.MethodGet, "http://api.local/ws", nil)
		if origin != "" {
			r.Header.Set("Origin", origin)
		}
		return r
	}

	anyOrigin := originChecker([]string{"*"})
	assert.True(t, anyOrigin(req("http://anything")))

	open := originChecker(nil)
	assert.True(t, open(req("http://anything")))

	strict := originChecker([]string{"http://localhost:3000/"})
	assert.True(t, strict(req("http://localhost:3000")))
	assert.True(t, strict(req("http://api.local")), "same host")
	assert.True(t, strict(req("")), "no origin header")
	assert.False(t, strict(req("http://other:3000")))
}
