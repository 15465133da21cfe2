package user_repo

import (
	"context"
	"errors"
	"net/http"

	"github.com/pulley-doreurae/careerquest-chat/internal/entity"
	app_error "github.com/pulley-doreurae/careerquest-chat/internal/errors"
	"github.com/pulley-doreurae/careerquest-chat/state"
	"gorm.io/gorm"
)

type UserRepo struct {
	AppState *state.AppState
}

func NewUserRepo(appState *state.AppState) UserDirectoryContract {
	return &UserRepo{
		AppState: appState,
	}
}

func (r *UserRepo) FindUserByID(ctx context.Context, userID string) (*entity.User, *app_error.AppError) {
	var user entity.User

	if err := r.AppState.DB.WithContext(ctx).Where("id = ?", userID).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, app_error.UserNotFound()
		}
		return nil, app_error.NewAppError(http.StatusInternalServerError, "unexpected error occur when fetch user", "db-error")
	}

	return &user, nil
}
