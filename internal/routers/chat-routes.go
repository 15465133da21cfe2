package routers

import (
	"github.com/go-chi/chi/v5"
	"github.com/pulley-doreurae/careerquest-chat/internal/handlers"
	chat_handler "github.com/pulley-doreurae/careerquest-chat/internal/handlers/chat-handler"
	chat_service "github.com/pulley-doreurae/careerquest-chat/internal/use-case/chat-case"
	"github.com/pulley-doreurae/careerquest-chat/state"
)

func ChatRouter(r chi.Router, appState *state.AppState, service chat_service.ChatServiceContract) {
	chatHandler := chat_handler.NewChatHandler(appState, service)

	r.Post("/api/v1/chat/messages", handlers.WrapHandler(chatHandler.SendMessage))
	r.Get("/api/v1/chat/{roomNumber}/messages", handlers.WrapHandler(chatHandler.GetMessages))
}
