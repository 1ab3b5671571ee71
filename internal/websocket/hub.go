package websocket

import (
	"context"
	"encoding/json"
	"log"
	"sync"

	"notekeeper-be/internal/pkg/logger"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const clusterChannel = "notes_cluster_events"

// Hub tracks live change-feed connections per owner and fans change
// payloads out to them. Redis carries payloads to other instances so a
// client can be attached anywhere.
type Hub struct {
	// OwnerID -> connections (an owner can listen from several devices)
	clients map[uuid.UUID][]*Client

	register   chan *Client
	unregister chan *Client

	mu sync.RWMutex

	rdb *redis.Client

	// instanceID marks payloads this instance already delivered
	// locally, so the Redis echo is not delivered twice.
	instanceID string

	logger logger.ILogger
}

func NewHub(rdb *redis.Client, log logger.ILogger) *Hub {
	return &Hub{
		register:   make(chan *Client),
		unregister: make(chan *Client),
		clients:    make(map[uuid.UUID][]*Client),
		rdb:        rdb,
		instanceID: uuid.NewString(),
		logger:     log,
	}
}

func (h *Hub) Run() {
	if h.rdb != nil {
		go h.subscribeToRedis()
	}

	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			h.clients[client.OwnerID] = append(h.clients[client.OwnerID], client)
			h.mu.Unlock()
			h.logger.Info("Hub", "Client registered", map[string]interface{}{"owner_id": client.OwnerID})

		case client := <-h.unregister:
			h.mu.Lock()
			if clients, ok := h.clients[client.OwnerID]; ok {
				for i, c := range clients {
					if c == client {
						h.clients[client.OwnerID] = append(clients[:i], clients[i+1:]...)
						close(client.Send)
						break
					}
				}
				if len(h.clients[client.OwnerID]) == 0 {
					delete(h.clients, client.OwnerID)
				}
			}
			h.mu.Unlock()
		}
	}
}

// SendToOwner delivers a change payload to every local connection of
// the owner and forwards it through Redis for other instances.
func (h *Hub) SendToOwner(ownerID uuid.UUID, payload []byte) {
	h.deliverLocal(ownerID, payload)

	if h.rdb != nil {
		wrapped, _ := json.Marshal(clusterEnvelope{
			Origin:        h.instanceID,
			TargetOwnerID: ownerID.String(),
			Message:       payload,
		})
		h.rdb.Publish(context.Background(), clusterChannel, wrapped)
	}
}

func (h *Hub) deliverLocal(ownerID uuid.UUID, payload []byte) {
	// Copy under the lock; the unregister handler mutates the slice.
	h.mu.RLock()
	clients := make([]*Client, len(h.clients[ownerID]))
	copy(clients, h.clients[ownerID])
	h.mu.RUnlock()

	for _, client := range clients {
		select {
		case client.Send <- payload:
		default:
			// Send is closed by the unregister handler only; a repeat
			// unregister of the same client is a no-op there.
			h.logger.Warn("Hub", "Client Send buffer full, dropping connection", map[string]interface{}{"owner_id": ownerID})
			h.unregister <- client
		}
	}
}

type clusterEnvelope struct {
	Origin        string          `json:"origin"`
	TargetOwnerID string          `json:"target_owner_id"`
	Message       json.RawMessage `json:"message"`
}

// subscribeToRedis listens for payloads published by other instances
// and delivers the ones whose owner is connected here.
func (h *Hub) subscribeToRedis() {
	ctx := context.Background()
	pubsub := h.rdb.Subscribe(ctx, clusterChannel)
	defer pubsub.Close()

	for msg := range pubsub.Channel() {
		var envelope clusterEnvelope
		if err := json.Unmarshal([]byte(msg.Payload), &envelope); err != nil {
			log.Printf("Redis msg parse error: %v", err)
			continue
		}

		if envelope.Origin == h.instanceID {
			continue
		}

		ownerID, err := uuid.Parse(envelope.TargetOwnerID)
		if err != nil {
			continue
		}

		h.deliverLocal(ownerID, envelope.Message)
	}
}
