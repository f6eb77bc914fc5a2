package websocket

import (
	"strings"

	"github.com/ramonehamilton/pokeparty/internal/events"
)

// WebSocketObserver forwards party and catalog events to WebSocket clients.
type WebSocketObserver struct {
	name     string
	hub      *Hub
	prefixes []string
}

// NewWebSocketObserver creates an observer that forwards events whose type starts
// with one of prefixes. No prefixes forwards everything.
func NewWebSocketObserver(hub *Hub, prefixes ...string) *WebSocketObserver {
	return &WebSocketObserver{
		name:     "WebSocketObserver",
		hub:      hub,
		prefixes: prefixes,
	}
}

// OnEvent broadcasts the event, preferring its typed payload.
func (o *WebSocketObserver) OnEvent(event events.Event) error {
	if o.hub == nil {
		return nil
	}

	wsEvent := Event{Type: event.Type, Data: event.Data}
	if event.TypedData != nil {
		wsEvent.Data = event.TypedData
	}
	o.hub.BroadcastEvent(wsEvent)
	return nil
}

func (o *WebSocketObserver) GetName() string {
	return o.name
}

func (o *WebSocketObserver) ShouldHandle(eventType string) bool {
	if len(o.prefixes) == 0 {
		return true
	}
	for _, p := range o.prefixes {
		if strings.HasPrefix(eventType, p) {
			return true
		}
	}
	return false
}

var _ events.Observer = (*WebSocketObserver)(nil)
