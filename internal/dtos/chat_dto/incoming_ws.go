package chat_dto

type WSIncomingMessage struct {
	Type    string `json:"type"`
	RoomID  string `json:"roomId"`
	Message string `json:"message,omitempty"`
}
