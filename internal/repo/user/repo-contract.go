package user_repo

import (
	"context"

	"github.com/pulley-doreurae/careerquest-chat/internal/entity"
	app_error "github.com/pulley-doreurae/careerquest-chat/internal/errors"
)

// UserDirectoryContract is the boundary to the account subsystem. The chat
// core only ever resolves users by id.
type UserDirectoryContract interface {
	FindUserByID(ctx context.Context, userID string) (*entity.User, *app_error.AppError)
}
