package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Order status encoding: 0 = settled/paid, 1 = pending (credit sale awaiting
// settlement). PaymentType: 0 = cash, 1 = e-wallet, 2 = bank transfer,
// 3 = credit.
type Order struct {
	OrderId              uint            `gorm:"primaryKey" json:"order_id"`
	InvoiceNo            string          `gorm:"uniqueIndex;size:50" json:"invoice_no"`
	Status               int             `json:"status"`
	TotalAmount          decimal.Decimal `gorm:"type:decimal(18,2)" json:"total_amount"`
	TotalDiscount        decimal.Decimal `gorm:"type:decimal(18,2)" json:"total_discount"`
	TotalVatSale         decimal.Decimal `gorm:"type:decimal(18,2)" json:"total_vat_sale"`
	TotalVatAmount       decimal.Decimal `gorm:"type:decimal(18,2)" json:"total_vat_amount"`
	TotalVatExempt       decimal.Decimal `gorm:"type:decimal(18,2)" json:"total_vat_exempt"`
	TransactionType      int             `json:"transaction_type"`
	PaymentType          int             `json:"payment_type"`
	AccountName          string          `gorm:"size:100" json:"account_name"`
	AccountNumber        string          `gorm:"size:100" json:"account_number"`
	ReferenceNo          string          `gorm:"size:100" json:"reference_no"`
	DigitalPaymentAmount decimal.Decimal `gorm:"type:decimal(18,2)" json:"digital_payment_amount"`
	LocationId           uint            `json:"location_id"`
	Location             *Location       `gorm:"foreignKey:LocationId" json:"location,omitempty"`
	UserId               uint            `json:"user_id"`
	User                 *User           `gorm:"foreignKey:UserId" json:"user,omitempty"`
	CustomerId           *uint           `json:"customer_id"`
	OrderProducts        []OrderProduct  `gorm:"foreignKey:OrderId;constraint:OnDelete:CASCADE" json:"order_products,omitempty"`
	DateCreated          time.Time       `gorm:"autoCreateTime" json:"date_created"`
}

// OrderProduct is one line of an order. SubTotal is the discounted line
// amount: unit price * quantity minus the percentage discount.
type OrderProduct struct {
	OrderId    uint            `gorm:"primaryKey;autoIncrement:false" json:"order_id"`
	ProductId  uint            `gorm:"primaryKey;autoIncrement:false" json:"product_id"`
	Product    *Product        `gorm:"foreignKey:ProductId" json:"product,omitempty"`
	Quantity   int             `json:"quantity"`
	DiscountId *uint           `json:"discount_id"`
	SubTotal   decimal.Decimal `gorm:"type:decimal(18,2)" json:"sub_total"`
}
