package entity

import (
	"time"
)

// Room is a chat room row. RoomNumber is the externally visible identity,
// generated at creation; ID is only the storage key.
type Room struct {
	ID         int64     `gorm:"primaryKey"`
	RoomNumber string    `gorm:"uniqueIndex;not null"`
	Name       string    `gorm:"not null"`
	CreatedAt  time.Time `gorm:"autoCreateTime"`
}

// RoomMember is a (user, room) join row. No ordering guarantee.
type RoomMember struct {
	ID         int64     `gorm:"primaryKey"`
	RoomNumber string    `gorm:"index;not null"`
	UserID     string    `gorm:"index;not null"`
	JoinedAt   time.Time `gorm:"autoCreateTime"`
}
