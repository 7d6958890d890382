package models

import (
	"time"
)

// Discount is a flat percentage applied per order line. Percentage is an
// integer between 0 and 100.
type Discount struct {
	DiscountId  uint      `gorm:"primaryKey" json:"discount_id"`
	Name        string    `gorm:"size:100" json:"name"`
	Percentage  int       `json:"percentage"`
	Status      int       `json:"status"`
	DateCreated time.Time `gorm:"autoCreateTime" json:"date_created"`
}
