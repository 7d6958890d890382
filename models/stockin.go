package models

import (
	"time"
)

// StockIn is the audit row for goods received from a supplier.
type StockIn struct {
	StockId     uint      `gorm:"primaryKey" json:"stock_id"`
	ReferenceNo int       `json:"reference_no"`
	SupplierId  *uint     `json:"supplier_id"`
	Supplier    *Supplier `gorm:"foreignKey:SupplierId" json:"supplier,omitempty"`
	ProductId   *uint     `json:"product_id"`
	Product     *Product  `gorm:"foreignKey:ProductId" json:"product,omitempty"`
	Units       int       `json:"units"`
	UserId      *uint     `json:"user_id"`
	User        *User     `gorm:"foreignKey:UserId" json:"user,omitempty"`
	LocationId  *uint     `json:"location_id"`
	Location    *Location `gorm:"foreignKey:LocationId" json:"location,omitempty"`
	Status      int       `json:"status"`
	DateCreated time.Time `gorm:"autoCreateTime" json:"date_created"`
}
