package room_repo

import (
	"context"
	"errors"
	"net/http"

	"github.com/pulley-doreurae/careerquest-chat/internal/entity"
	app_error "github.com/pulley-doreurae/careerquest-chat/internal/errors"
	"github.com/pulley-doreurae/careerquest-chat/state"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

type RoomRepo struct {
	AppState *state.AppState
}

func NewRoomRepo(appState *state.AppState) RoomDirectoryContract {
	return &RoomRepo{
		AppState: appState,
	}
}

func (r *RoomRepo) CreateRoomWithCreator(ctx context.Context, room *entity.Room, creatorID string) *app_error.AppError {
	tx := r.AppState.DB.WithContext(ctx).Begin()
	defer func() {
		if rec := recover(); rec != nil {
			tx.Rollback()
		}
	}()

	if err := tx.Create(room).Error; err != nil {
		tx.Rollback()
		return app_error.NewAppError(http.StatusInternalServerError, "failed to create room", "db-error")
	}

	member := &entity.RoomMember{
		RoomNumber: room.RoomNumber,
		UserID:     creatorID,
	}
	if err := tx.Create(member).Error; err != nil {
		tx.Rollback()
		return app_error.NewAppError(http.StatusInternalServerError, "failed to add creator to room", "db-error")
	}

	if err := tx.Commit().Error; err != nil {
		return app_error.NewAppError(http.StatusInternalServerError, "failed to commit room creation", "db-error")
	}

	return nil
}

func (r *RoomRepo) FindRoomByNumber(ctx context.Context, roomNumber string) (*entity.Room, *app_error.AppError) {
	var room entity.Room
	if err := r.AppState.DB.WithContext(ctx).Where("room_number = ?", roomNumber).First(&room).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, app_error.RoomNotFound()
		}
		log.Error().Err(err).Msgf("failed to fetch room: %v", err)
		return nil, app_error.NewAppError(http.StatusInternalServerError, "failed to fetch room", "db-error")
	}
	return &room, nil
}

func (r *RoomRepo) FindRoomMembers(ctx context.Context, roomNumber string) ([]*entity.RoomMember, *app_error.AppError) {
	var members []*entity.RoomMember
	if err := r.AppState.DB.WithContext(ctx).Where("room_number = ?", roomNumber).Find(&members).Error; err != nil {
		return nil, app_error.NewAppError(http.StatusInternalServerError, "failed to fetch room members", "db-error")
	}

	return members, nil
}

func (r *RoomRepo) FindRoomsByUser(ctx context.Context, userID string) ([]*entity.Room, *app_error.AppError) {
	var rooms []*entity.Room

	query := `
		SELECT r.* FROM rooms r
		WHERE r.room_number IN (
			SELECT rm.room_number FROM room_members rm WHERE rm.user_id = ?
		)
	`
	if err := r.AppState.DB.WithContext(ctx).Raw(query, userID).Scan(&rooms).Error; err != nil {
		return nil, app_error.NewAppError(http.StatusInternalServerError, "failed to fetch rooms for user", "db-error")
	}

	return rooms, nil
}

func (r *RoomRepo) AddMember(ctx context.Context, roomNumber, userID string) *app_error.AppError {
	member := &entity.RoomMember{
		RoomNumber: roomNumber,
		UserID:     userID,
	}
	if err := r.AppState.DB.WithContext(ctx).Create(member).Error; err != nil {
		return app_error.NewAppError(http.StatusInternalServerError, "failed to add member to room", "db-error")
	}

	return nil
}

func (r *RoomRepo) RemoveMember(ctx context.Context, roomNumber, userID string) (int64, *app_error.AppError) {
	if err := r.AppState.DB.WithContext(ctx).
		Where("room_number = ? AND user_id = ?", roomNumber, userID).
		Delete(&entity.RoomMember{}).Error; err != nil {
		return 0, app_error.NewAppError(http.StatusInternalServerError, "failed to remove member from room", "db-error")
	}

	var remaining int64
	if err := r.AppState.DB.WithContext(ctx).
		Model(&entity.RoomMember{}).
		Where("room_number = ?", roomNumber).
		Count(&remaining).Error; err != nil {
		return 0, app_error.NewAppError(http.StatusInternalServerError, "failed to count room members", "db-error")
	}

	return remaining, nil
}

func (r *RoomRepo) DeleteRoom(ctx context.Context, roomNumber string) *app_error.AppError {
	if err := r.AppState.DB.WithContext(ctx).
		Where("room_number = ?", roomNumber).
		Delete(&entity.Room{}).Error; err != nil {
		return app_error.NewAppError(http.StatusInternalServerError, "failed to delete room", "db-error")
	}

	return nil
}
