package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// CashDrawer is one cashier session at a location. A drawer is open while
// TimeEnd is null; at most one open drawer may exist per (user, location).
// DrawerCash tracks physical cash on hand: cash sales, settled cash credit
// and top-ups add to it, expenses and withdrawals subtract from it.
type CashDrawer struct {
	DrawerId                  uint            `gorm:"primaryKey" json:"drawer_id"`
	Cashier                   string          `gorm:"size:100" json:"cashier"`
	UserId                    uint            `json:"user_id"`
	User                      *User           `gorm:"foreignKey:UserId" json:"user,omitempty"`
	LocationId                uint            `json:"location_id"`
	InitialCash               decimal.Decimal `gorm:"type:decimal(18,2)" json:"initial_cash"`
	TotalSales                decimal.Decimal `gorm:"type:decimal(18,2)" json:"total_sales"`
	Withdrawals               decimal.Decimal `gorm:"type:decimal(18,2)" json:"withdrawals"`
	Expense                   decimal.Decimal `gorm:"type:decimal(18,2)" json:"expense"`
	DrawerCash                decimal.Decimal `gorm:"type:decimal(18,2)" json:"drawer_cash"`
	TotalAmount               decimal.Decimal `gorm:"type:decimal(18,2)" json:"total_amount"`
	TotalDiscount             decimal.Decimal `gorm:"type:decimal(18,2)" json:"total_discount"`
	TotalVatSale              decimal.Decimal `gorm:"type:decimal(18,2)" json:"total_vat_sale"`
	TotalVatAmount            decimal.Decimal `gorm:"type:decimal(18,2)" json:"total_vat_amount"`
	TotalVatExempt            decimal.Decimal `gorm:"type:decimal(18,2)" json:"total_vat_exempt"`
	TotalCashSales            decimal.Decimal `gorm:"type:decimal(18,2)" json:"total_cash_sales"`
	TotalEWalletSales         decimal.Decimal `gorm:"type:decimal(18,2)" json:"total_e_wallet_sales"`
	TotalBankTransactionSales decimal.Decimal `gorm:"type:decimal(18,2)" json:"total_bank_transaction_sales"`
	TotalCreditSales          decimal.Decimal `gorm:"type:decimal(18,2)" json:"total_credit_sales"`
	TotalSettledCredit        decimal.Decimal `gorm:"type:decimal(18,2)" json:"total_settled_credit"`
	TimeStart                 time.Time       `json:"time_start"`
	TimeEnd                   *time.Time      `json:"time_end"`
	Status                    int             `json:"status"`
	DateCreated               time.Time       `gorm:"autoCreateTime" json:"date_created"`
}

// Expense is a cash payout recorded against an open drawer.
type Expense struct {
	ExpenseId   uint            `gorm:"primaryKey" json:"expense_id"`
	DrawerId    uint            `json:"drawer_id"`
	CashDrawer  *CashDrawer     `gorm:"foreignKey:DrawerId;constraint:OnDelete:CASCADE" json:"-"`
	Description string          `gorm:"size:150" json:"description"`
	Amount      decimal.Decimal `gorm:"type:decimal(18,2)" json:"amount"`
	Remarks     string          `gorm:"size:150" json:"remarks"`
	DateCreated time.Time       `gorm:"autoCreateTime" json:"date_created"`
}

// Withdrawal removes cash from an open drawer, e.g. a bank drop.
type Withdrawal struct {
	WithdrawalId uint            `gorm:"primaryKey" json:"withdrawal_id"`
	DrawerId     uint            `json:"drawer_id"`
	CashDrawer   *CashDrawer     `gorm:"foreignKey:DrawerId;constraint:OnDelete:CASCADE" json:"-"`
	Description  string          `gorm:"size:150" json:"description"`
	Amount       decimal.Decimal `gorm:"type:decimal(18,2)" json:"amount"`
	Remarks      string          `gorm:"size:150" json:"remarks"`
	DateCreated  time.Time       `gorm:"autoCreateTime" json:"date_created"`
}

// InitialCash is an additional float added to an open drawer after start.
type InitialCash struct {
	InitialCashId uint            `gorm:"primaryKey" json:"initial_cash_id"`
	DrawerId      uint            `json:"drawer_id"`
	CashDrawer    *CashDrawer     `gorm:"foreignKey:DrawerId;constraint:OnDelete:CASCADE" json:"-"`
	Description   string          `gorm:"size:150" json:"description"`
	Amount        decimal.Decimal `gorm:"type:decimal(18,2)" json:"amount"`
	Remarks       string          `gorm:"size:150" json:"remarks"`
	DateCreated   time.Time       `gorm:"autoCreateTime" json:"date_created"`
}
