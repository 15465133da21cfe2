package routers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/pulley-doreurae/careerquest-chat/internal/middleware"
	chat_service "github.com/pulley-doreurae/careerquest-chat/internal/use-case/chat-case"
	room_service "github.com/pulley-doreurae/careerquest-chat/internal/use-case/room-case"
	"github.com/pulley-doreurae/careerquest-chat/internal/websocket"
	"github.com/pulley-doreurae/careerquest-chat/state"
)

func NewRouter(appState *state.AppState, roomService room_service.RoomServiceContract, chatService chat_service.ChatServiceContract, wsHandler *websocket.WebSocketHandler) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.WithRequestId)
	RoomRouter(r, appState, roomService)
	ChatRouter(r, appState, chatService)
	r.Get("/api/v1/ws", wsHandler.HandleWS)
	return r
}
