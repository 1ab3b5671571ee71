package websocket

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type nopLogger struct{}

func (nopLogger) Debug(string, string, map[string]interface{}) {}
func (nopLogger) Info(string, string, map[string]interface{})  {}
func (nopLogger) Warn(string, string, map[string]interface{})  {}
func (nopLogger) Error(string, string, map[string]interface{}) {}
func (nopLogger) Sync() error                                  { return nil }

func (h *Hub) connectionCount(ownerID uuid.UUID) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients[ownerID])
}

func TestHubDeliversPerOwner(t *testing.T) {
	hub := NewHub(nil, nopLogger{})
	go hub.Run()

	owner := uuid.New()
	other := uuid.New()

	mine := &Client{Hub: hub, OwnerID: owner, Send: make(chan []byte, 8)}
	theirs := &Client{Hub: hub, OwnerID: other, Send: make(chan []byte, 8)}
	hub.register <- mine
	hub.register <- theirs

	require.Eventually(t, func() bool {
		return hub.connectionCount(owner) == 1 && hub.connectionCount(other) == 1
	}, time.Second, 5*time.Millisecond)

	hub.SendToOwner(owner, []byte("change"))

	assert.Equal(t, []byte("change"), <-mine.Send)
	assert.Empty(t, theirs.Send)
}

func TestHubDropsStalledConnection(t *testing.T) {
	hub := NewHub(nil, nopLogger{})
	go hub.Run()

	owner := uuid.New()

	stalled := &Client{Hub: hub, OwnerID: owner, Send: make(chan []byte, 1)}
	healthy := &Client{Hub: hub, OwnerID: owner, Send: make(chan []byte, 8)}
	hub.register <- stalled
	hub.register <- healthy

	require.Eventually(t, func() bool {
		return hub.connectionCount(owner) == 2
	}, time.Second, 5*time.Millisecond)

	hub.SendToOwner(owner, []byte("first"))
	// the stalled buffer is full now; this delivery drops it
	hub.SendToOwner(owner, []byte("second"))

	assert.Equal(t, []byte("first"), <-healthy.Send)
	assert.Equal(t, []byte("second"), <-healthy.Send)

	require.Eventually(t, func() bool {
		return hub.connectionCount(owner) == 1
	}, time.Second, 5*time.Millisecond)

	// the dropped connection keeps its backlog, then its channel closes
	assert.Equal(t, []byte("first"), <-stalled.Send)
	_, open := <-stalled.Send
	assert.False(t, open)

	// the hub survives the drop and keeps serving the healthy connection
	hub.SendToOwner(owner, []byte("third"))
	assert.Equal(t, []byte("third"), <-healthy.Send)
}
