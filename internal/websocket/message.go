package websocket

import (
	"github.com/pulley-doreurae/careerquest-chat/internal/dtos/chat_dto"
	"github.com/pulley-doreurae/careerquest-chat/internal/entity"
)

// OutgoingMessage is what one connected user receives when a send touches
// one of their rooms: the message itself plus their fully recomputed room
// list, so the UI needs no follow-up query.
type OutgoingMessage struct {
	Event    string                  `json:"event"`
	Message  *entity.ChatMessage     `json:"message"`
	RoomList []*chat_dto.RoomSummary `json:"roomList"`
}
