package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product model corresponds to the 'products' table in the database.
// Vatable: 1 when the product is subject to VAT, 0 when VAT-exempt.
type Product struct {
	Id             uint            `gorm:"primaryKey" json:"id"`
	Barcode        string          `gorm:"uniqueIndex;size:100" json:"barcode"`
	Name           string          `gorm:"size:100;not null" json:"name"`
	Description    string          `json:"description"`
	SupplierPrice  decimal.Decimal `gorm:"type:decimal(18,2)" json:"supplier_price"`
	RetailPrice    decimal.Decimal `gorm:"type:decimal(18,2)" json:"retail_price"`
	WholesalePrice decimal.Decimal `gorm:"type:decimal(18,2)" json:"wholesale_price"`
	ReorderLevel   int             `json:"reorder_level"`
	Vatable        int             `json:"vatable"`
	Status         int             `json:"status"`
	CategoryId     *uint           `json:"category_id"`
	Category       *Category       `gorm:"foreignKey:CategoryId" json:"category,omitempty"`
	DateCreated    time.Time       `gorm:"autoCreateTime" json:"date_created"`
}
