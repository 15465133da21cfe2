package bus

import (
	"context"

	"github.com/pulley-doreurae/careerquest-chat/internal/dtos/chat_dto"
	"github.com/pulley-doreurae/careerquest-chat/internal/entity"
)

// ChatEvent is the one record published per message send. It carries the
// full payload a subscriber needs to update every affected user's view
// without a follow-up query.
type ChatEvent struct {
	SenderID       string                  `json:"senderId"`
	Message        *entity.ChatMessage     `json:"message"`
	SenderRoomList []*chat_dto.RoomSummary `json:"senderRoomList"`
	PartnerLists   []PartnerList           `json:"partnerLists"`
}

type PartnerList struct {
	PartnerID string                  `json:"partnerId"`
	List      []*chat_dto.RoomSummary `json:"list"`
}

// EventBusContract is a single broadcast channel. Publish is
// fire-and-forget; subscribers that fall behind self-correct through the
// room list endpoints.
type EventBusContract interface {
	Publish(ctx context.Context, event *ChatEvent) error
	// Subscribe returns a channel of events, closed when ctx is cancelled.
	Subscribe(ctx context.Context) (<-chan *ChatEvent, error)
}
