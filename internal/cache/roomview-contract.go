package cache

import (
	"context"

	"github.com/pulley-doreurae/careerquest-chat/internal/dtos/chat_dto"
	"github.com/pulley-doreurae/careerquest-chat/internal/entity"
)

// RoomViewCacheContract holds the per-user room list views and a global
// latest-message slot per room. It is advisory: every value must be
// re-derivable from the room directory and the message log, and callers
// treat failures as a cache miss, never as a request failure.
type RoomViewCacheContract interface {
	// IsInitialized reports whether the user's collection has been built.
	// An initialized collection may still be empty; the flag is what
	// distinguishes "not yet built" from "no rooms".
	IsInitialized(ctx context.Context, userID string) (bool, error)
	MarkInitialized(ctx context.Context, userID string) error

	PutSummary(ctx context.Context, userID string, summary *chat_dto.RoomSummary) error
	GetSummary(ctx context.Context, userID, roomNumber string) (*chat_dto.RoomSummary, error)
	GetAllSummaries(ctx context.Context, userID string) ([]*chat_dto.RoomSummary, error)
	RemoveSummary(ctx context.Context, userID, roomNumber string) error

	// Clear drops the user's whole collection including the init flag.
	Clear(ctx context.Context, userID string) error

	// SetLatest / GetLatest manage the per-room latest-message slot, the
	// cache-side authority for last-message lookups independent of any one
	// user's view.
	SetLatest(ctx context.Context, roomNumber string, msg *entity.ChatMessage) error
	GetLatest(ctx context.Context, roomNumber string) (*entity.ChatMessage, error)
}
