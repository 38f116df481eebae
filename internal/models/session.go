package models

import "time"

// Session — one record per successful login. Append-only: never updated
// or deleted by the application.
type Session struct {
	ID      uint `gorm:"primaryKey"`
	OwnerID uint `gorm:"index;not null"`

	Key       string    `gorm:"size:64;uniqueIndex;not null"`
	LoginTime time.Time `gorm:"not null"`
}
