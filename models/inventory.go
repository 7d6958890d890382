package models

import (
	"time"
)

// Inventory tracks the unit count of one product at one location.
// At most one row exists per (product, location) pair.
type Inventory struct {
	InventoryId   uint      `gorm:"primaryKey" json:"inventory_id"`
	Units         int       `json:"units"`
	Specification string    `gorm:"size:100" json:"specification"`
	ProductId     *uint     `gorm:"index:idx_inventory_product_location,unique" json:"product_id"`
	Product       *Product  `gorm:"foreignKey:ProductId" json:"product,omitempty"`
	LocationId    *uint     `gorm:"index:idx_inventory_product_location,unique" json:"location_id"`
	Location      *Location `gorm:"foreignKey:LocationId" json:"location,omitempty"`
	Status        int       `json:"status"`
	DateCreated   time.Time `gorm:"autoCreateTime" json:"date_created"`
}
