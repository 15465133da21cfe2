package message_repo

import (
	"context"

	"github.com/pulley-doreurae/careerquest-chat/internal/entity"
	app_error "github.com/pulley-doreurae/careerquest-chat/internal/errors"
)

const PageSize = 20

// MessageLogContract is the append-only document store for chat messages.
// No update or delete is exposed; history outlives the room itself.
type MessageLogContract interface {
	Append(ctx context.Context, msg *entity.ChatMessage) *app_error.AppError
	// Page returns the page-th most recent PageSize messages, oldest first
	// within the page. Page 0 is the most recent page.
	Page(ctx context.Context, roomNumber string, page int) ([]*entity.ChatMessage, *app_error.AppError)
	// Latest returns the single most recent message, or nil for a room with
	// no messages.
	Latest(ctx context.Context, roomNumber string) (*entity.ChatMessage, *app_error.AppError)
}
