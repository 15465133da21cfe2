package chat_dto

import (
	"github.com/pulley-doreurae/careerquest-chat/internal/entity"
)

type RoomListResponse struct {
	Rooms []*RoomSummary `json:"rooms"`
}

type MessagePageResponse struct {
	RoomID   string                `json:"roomId"`
	Page     int                   `json:"page"`
	Messages []*entity.ChatMessage `json:"messages"`
}
