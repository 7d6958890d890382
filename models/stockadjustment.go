package models

import (
	"time"
)

// StockAdjustment is the audit row for a manual inventory correction.
// Actions: 0 = add units, 1 = remove units.
type StockAdjustment struct {
	AdjustmentId uint      `gorm:"primaryKey" json:"adjustment_id"`
	ProductId    *uint     `json:"product_id"`
	Product      *Product  `gorm:"foreignKey:ProductId" json:"product,omitempty"`
	Units        int       `json:"units"`
	Reason       string    `gorm:"size:150" json:"reason"`
	UserId       *uint     `json:"user_id"`
	User         *User     `gorm:"foreignKey:UserId" json:"user,omitempty"`
	LocationId   *uint     `json:"location_id"`
	Location     *Location `gorm:"foreignKey:LocationId" json:"location,omitempty"`
	Actions      int       `json:"actions"`
	DateCreated  time.Time `gorm:"autoCreateTime" json:"date_created"`
}
