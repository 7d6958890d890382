package models

import (
	"time"
)

// Location is a store branch. Each location has its own terminal password so
// a POS client can unlock a branch before any cashier logs in.
type Location struct {
	LocationId   uint      `gorm:"primaryKey" json:"location_id"`
	Name         string    `gorm:"size:100;not null" json:"name"`
	PasswordHash string    `json:"-"`
	Status       int       `json:"status"`
	DateCreated  time.Time `gorm:"autoCreateTime" json:"date_created"`
}
