package room_service

import (
	"context"

	"github.com/pulley-doreurae/careerquest-chat/internal/dtos/chat_dto"
	app_error "github.com/pulley-doreurae/careerquest-chat/internal/errors"
)

type RoomServiceContract interface {
	// GetRoomInfo resolves one room's summary straight from the directory.
	GetRoomInfo(ctx context.Context, roomNumber string) (*chat_dto.RoomSummary, *app_error.AppError)
	// ListRoomsForUser is the cold path: rebuild the user's whole room list
	// from the durable stores and repopulate the cache.
	ListRoomsForUser(ctx context.Context, userID string) ([]*chat_dto.RoomSummary, *app_error.AppError)
	// GetRoomList is the hot path: serve from cache when initialized,
	// refreshing each entry's last message, otherwise fall back cold.
	GetRoomList(ctx context.Context, userID string) ([]*chat_dto.RoomSummary, *app_error.AppError)
	CreateRoom(ctx context.Context, name, creatorID string) (*chat_dto.RoomSummary, *app_error.AppError)
	JoinRoom(ctx context.Context, roomNumber, userID string) (*chat_dto.RoomSummary, *app_error.AppError)
	LeaveRoom(ctx context.Context, roomNumber, userID string) *app_error.AppError
}
