package routers

import (
	"github.com/go-chi/chi/v5"
	"github.com/pulley-doreurae/careerquest-chat/internal/handlers"
	room_handler "github.com/pulley-doreurae/careerquest-chat/internal/handlers/room-handler"
	room_service "github.com/pulley-doreurae/careerquest-chat/internal/use-case/room-case"
	"github.com/pulley-doreurae/careerquest-chat/state"
)

func RoomRouter(r chi.Router, appState *state.AppState, service room_service.RoomServiceContract) {
	roomHandler := room_handler.NewRoomHandler(appState, service)

	r.Post("/api/v1/rooms", handlers.WrapHandler(roomHandler.CreateRoom))
	r.Get("/api/v1/rooms", handlers.WrapHandler(roomHandler.GetRoomList))
	r.Get("/api/v1/rooms/{roomNumber}", handlers.WrapHandler(roomHandler.GetRoomInfo))
	r.Post("/api/v1/rooms/{roomNumber}/join", handlers.WrapHandler(roomHandler.JoinRoom))
	r.Post("/api/v1/rooms/{roomNumber}/leave", handlers.WrapHandler(roomHandler.LeaveRoom))
}
