package chat_dto

import (
	"github.com/pulley-doreurae/careerquest-chat/internal/entity"
)

// RoomSummary is the cached, denormalized view of one room as seen by one
// user: room metadata, current participants and the most recent message.
// It is a view, never a source of truth; it must always be re-derivable
// from the room directory and the message log.
type RoomSummary struct {
	RoomID       string              `json:"roomId"`
	RoomName     string              `json:"roomName"`
	Participants []string            `json:"participants"`
	LastMessage  *entity.ChatMessage `json:"lastMessage,omitempty"`
}

// Clone returns a copy safe to mutate without touching the original's
// participant slice.
func (s *RoomSummary) Clone() *RoomSummary {
	c := *s
	c.Participants = append([]string(nil), s.Participants...)
	return &c
}
