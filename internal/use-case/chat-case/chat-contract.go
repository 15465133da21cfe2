package chat_service

import (
	"context"

	"github.com/pulley-doreurae/careerquest-chat/internal/bus"
	"github.com/pulley-doreurae/careerquest-chat/internal/entity"
	app_error "github.com/pulley-doreurae/careerquest-chat/internal/errors"
)

type ChatServiceContract interface {
	// SendMessage durably appends msg, fans its effect out into every
	// participant's cached view, and publishes one event carrying the
	// sender's and each live partner's recomputed room list. The returned
	// event is the published payload.
	SendMessage(ctx context.Context, msg *entity.ChatMessage) (*bus.ChatEvent, *app_error.AppError)
	// MessagePage returns one page of a room's history, oldest first within
	// the page. Page 0 is the most recent page.
	MessagePage(ctx context.Context, roomNumber string, page int) ([]*entity.ChatMessage, *app_error.AppError)
}
