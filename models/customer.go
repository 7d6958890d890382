package models

import (
	"time"
)

// Customer carries the loyalty state: TransactionCount is bumped once per
// order and Points grow by one point for every 200 in sales.
type Customer struct {
	CustomerId       uint      `gorm:"primaryKey" json:"customer_id"`
	AccountId        int       `json:"account_id"`
	FirstName        string    `gorm:"size:50" json:"first_name"`
	LastName         string    `gorm:"size:50" json:"last_name"`
	ContactNo        string    `gorm:"size:11" json:"contact_no"`
	Email            string    `gorm:"size:50" json:"email"`
	CardNumber       string    `gorm:"size:50" json:"card_number"`
	TransactionCount int       `json:"transaction_count"`
	Points           int       `json:"points"`
	Status           int       `json:"status"`
	DateCreated      time.Time `gorm:"autoCreateTime" json:"date_created"`
}
