package websocket

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/pulley-doreurae/careerquest-chat/internal/dtos/chat_dto"
	"github.com/pulley-doreurae/careerquest-chat/internal/entity"
	chat_service "github.com/pulley-doreurae/careerquest-chat/internal/use-case/chat-case"
	"github.com/rs/zerolog/log"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// TODO: limit your cors, don't get true so easy in production
	CheckOrigin: func(r *http.Request) bool { return true },
}

type WebSocketHandler struct {
	Hub  *Hub
	Chat chat_service.ChatServiceContract
}

func NewWebSocketHandler(hub *Hub, chat chat_service.ChatServiceContract) *WebSocketHandler {
	h := &WebSocketHandler{
		Hub:  hub,
		Chat: chat,
	}
	hub.SetInbound(h.handleInbound)
	return h
}

// HandleWS upgrades the connection and registers one client per socket.
// Identity comes from the transport boundary; authentication is owned by
// the account subsystem in front of this service.
func (h *WebSocketHandler) HandleWS(w http.ResponseWriter, r *http.Request) {
	userID := r.URL.Query().Get("user_id")
	if userID == "" {
		http.Error(w, "user_id is required", http.StatusBadRequest)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Error().Err(err).Msg("ws: upgrade failed")
		return
	}

	client := &Client{
		ID:     uuid.New().String(),
		UserID: userID,
		Conn:   conn,
		Send:   make(chan []byte, 256),
	}

	h.Hub.Register(client)
}

func (h *WebSocketHandler) handleInbound(c *Client, incoming chat_dto.WSIncomingMessage) {
	msgType := entity.MessageType(incoming.Type)
	if !msgType.Valid() {
		log.Warn().Str("userID", c.UserID).Str("type", incoming.Type).Msg("ws: unknown message type")
		return
	}

	msg := &entity.ChatMessage{
		RoomID: incoming.RoomID,
		UserID: c.UserID,
		Type:   msgType,
		Msg:    incoming.Message,
		Time:   time.Now().UTC(),
	}

	if _, appErr := h.Chat.SendMessage(h.Hub.ctx, msg); appErr != nil {
		log.Error().Err(appErr).Str("userID", c.UserID).Str("roomNumber", incoming.RoomID).Msg("ws: send failed")
	}
}
