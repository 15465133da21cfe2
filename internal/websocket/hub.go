package websocket

import (
	"context"
	"sync"

	"github.com/pulley-doreurae/careerquest-chat/internal/dtos/chat_dto"
	"github.com/rs/zerolog/log"
)

// InboundFunc handles a frame a connected client sent upward.
type InboundFunc func(c *Client, msg chat_dto.WSIncomingMessage)

// Hub tracks live connections keyed by user. It is a pure relay surface:
// all chat semantics live in the use-case layer.
type Hub struct {
	clients map[string]map[*Client]struct{} // userID -> connections
	mu      sync.RWMutex

	inbound InboundFunc

	ctx    context.Context
	cancel context.CancelFunc
}

func NewHub() *Hub {
	ctx, cancel := context.WithCancel(context.Background())
	return &Hub{
		clients: make(map[string]map[*Client]struct{}),
		ctx:     ctx,
		cancel:  cancel,
	}
}

// SetInbound installs the upward handler. Must be called before the first
// Register.
func (h *Hub) SetInbound(fn InboundFunc) {
	h.inbound = fn
}

func (h *Hub) Register(client *Client) {
	h.mu.Lock()
	if h.clients[client.UserID] == nil {
		h.clients[client.UserID] = make(map[*Client]struct{})
	}
	h.clients[client.UserID][client] = struct{}{}
	connections := len(h.clients[client.UserID])
	h.mu.Unlock()

	go client.writePump()
	go client.readPump(h)

	log.Info().Str("clientID", client.ID).Str("userID", client.UserID).Int("connections", connections).Msg("ws: client registered")
}

func (h *Hub) Unregister(client *Client) {
	h.mu.Lock()
	if conns, ok := h.clients[client.UserID]; ok {
		delete(conns, client)
		if len(conns) == 0 {
			delete(h.clients, client.UserID)
		}
	}
	h.mu.Unlock()

	log.Info().Str("clientID", client.ID).Str("userID", client.UserID).Msg("ws: client unregistered")
}

// BroadcastToUser sends data to every live connection of one user.
func (h *Hub) BroadcastToUser(userID string, data []byte) {
	h.mu.RLock()
	targets := make([]*Client, 0, len(h.clients[userID]))
	for client := range h.clients[userID] {
		targets = append(targets, client)
	}
	h.mu.RUnlock()

	for _, client := range targets {
		select {
		case client.Send <- data:
		default:
			// slow consumer; they will self-correct through the list endpoint
			log.Warn().Str("userID", userID).Str("clientID", client.ID).Msg("ws: slow consumer, dropping message")
		}
	}
}

// IsUserOnline reports whether the user has at least one live connection.
func (h *Hub) IsUserOnline(userID string) bool {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients[userID]) > 0
}

func (h *Hub) Close() {
	log.Info().Msg("ws: shutting down hub")
	h.cancel()

	h.mu.RLock()
	var all []*Client
	for _, conns := range h.clients {
		for client := range conns {
			all = append(all, client)
		}
	}
	h.mu.RUnlock()

	for _, client := range all {
		_ = client.Conn.Close()
	}

	log.Info().Int("clients", len(all)).Msg("ws: hub shutdown completed")
}
