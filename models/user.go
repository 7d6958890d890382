package models

import (
	"time"
)

// User model corresponds to the 'users' table in the database.
// IsRole: 0 = admin, 1 = cashier, 2 = staff, 3 = stock controller.
type User struct {
	Id           uint      `gorm:"primaryKey" json:"id"`
	Username     string    `gorm:"uniqueIndex;size:100" json:"username"`
	Name         string    `gorm:"size:100" json:"name"`
	PasswordHash string    `json:"-"` // never serialized
	IsRole       int       `json:"is_role"`
	Status       int       `json:"status"`
	LocationId   *uint     `json:"location_id"`
	Location     *Location `gorm:"foreignKey:LocationId" json:"location,omitempty"`
	DateCreated  time.Time `gorm:"autoCreateTime" json:"date_created"`
}
