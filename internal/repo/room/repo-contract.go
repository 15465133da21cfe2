package room_repo

import (
	"context"

	"github.com/pulley-doreurae/careerquest-chat/internal/entity"
	app_error "github.com/pulley-doreurae/careerquest-chat/internal/errors"
)

// RoomDirectoryContract is the relational source of truth for rooms and
// memberships.
type RoomDirectoryContract interface {
	// CreateRoomWithCreator inserts the room and its first membership in one
	// transaction; they commit together or not at all.
	CreateRoomWithCreator(ctx context.Context, room *entity.Room, creatorID string) *app_error.AppError
	FindRoomByNumber(ctx context.Context, roomNumber string) (*entity.Room, *app_error.AppError)
	FindRoomMembers(ctx context.Context, roomNumber string) ([]*entity.RoomMember, *app_error.AppError)
	FindRoomsByUser(ctx context.Context, userID string) ([]*entity.Room, *app_error.AppError)
	AddMember(ctx context.Context, roomNumber, userID string) *app_error.AppError
	// RemoveMember deletes the (user, room) join row and reports how many
	// memberships remain for the room.
	RemoveMember(ctx context.Context, roomNumber, userID string) (remaining int64, appErr *app_error.AppError)
	DeleteRoom(ctx context.Context, roomNumber string) *app_error.AppError
}
