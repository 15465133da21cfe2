package chat_dto

import "time"

type CreateRoomRequest struct {
	Name   string `json:"name" validate:"required,min=1,max=100"`
	UserID string `json:"user_id" validate:"required"`
}

type JoinRoomRequest struct {
	UserID string `json:"user_id" validate:"required"`
}

type LeaveRoomRequest struct {
	UserID string `json:"user_id" validate:"required"`
}

type SendMessageRequest struct {
	RoomID  string    `json:"roomId" validate:"required"`
	UserID  string    `json:"userId" validate:"required"`
	Type    string    `json:"type" validate:"required,oneof=ENTER TALK QUIT"`
	Message string    `json:"message"`
	Time    time.Time `json:"time"`
}
