package entity

import "time"

// User rows are owned by the account subsystem; this core only reads them.
type User struct {
	ID        string    `gorm:"primaryKey"`
	Nickname  string    `gorm:"uniqueIndex"`
	Email     string    `gorm:"uniqueIndex"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
}
