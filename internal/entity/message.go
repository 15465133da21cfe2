package entity

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

type MessageType string

const (
	MessageEnter MessageType = "ENTER"
	MessageTalk  MessageType = "TALK"
	MessageQuit  MessageType = "QUIT"
)

func (t MessageType) Valid() bool {
	switch t {
	case MessageEnter, MessageTalk, MessageQuit:
		return true
	}
	return false
}

// ChatMessage is an append-only log record. It is never updated or deleted.
type ChatMessage struct {
	ID     bson.ObjectID `bson:"_id,omitempty" json:"-"`
	RoomID string        `bson:"roomId" json:"roomId"`
	UserID string        `bson:"userId" json:"userId"`
	Type   MessageType   `bson:"type" json:"type"`
	Msg    string        `bson:"message" json:"message"`
	Time   time.Time     `bson:"time" json:"time"`
}
