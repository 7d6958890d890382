package controller

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/code-with-geo/POSServer/config"
	"github.com/code-with-geo/POSServer/models"
	"github.com/code-with-geo/POSServer/utils"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Payment types routed into drawer sales buckets.
const (
	PaymentCash         = 0
	PaymentEWallet      = 1
	PaymentBankTransfer = 2
	PaymentCredit       = 3
)

// Order status values. Credit sales start pending and are settled later.
const (
	OrderSettled = 0
	OrderPending = 1
)

var pointsPer = decimal.NewFromInt(200)

// apiError carries an HTTP status out of a transaction closure so the
// rollback path can still answer with the right code.
type apiError struct {
	code int
	msg  string
}

func (e *apiError) Error() string { return e.msg }

type ProductOrderDetail struct {
	ProductId  uint  `json:"product_id" binding:"required"`
	Quantity   int   `json:"quantity" binding:"required,gt=0"`
	DiscountId *uint `json:"discount_id"`
}

type OrderInput struct {
	LocationId           uint                 `json:"location_id" binding:"required"`
	UserId               uint                 `json:"user_id" binding:"required"`
	CustomerId           *uint                `json:"customer_id"`
	TransactionType      int                  `json:"transaction_type"`
	PaymentType          int                  `json:"payment_type"`
	TotalVatSale         decimal.Decimal      `json:"total_vat_sale"`
	TotalVatAmount       decimal.Decimal      `json:"total_vat_amount"`
	TotalVatExempt       decimal.Decimal      `json:"total_vat_exempt"`
	AccountName          string               `json:"account_name"`
	AccountNumber        string               `json:"account_number"`
	ReferenceNo          string               `json:"reference_no"`
	DigitalPaymentAmount decimal.Decimal      `json:"digital_payment_amount"`
	Products             []ProductOrderDetail `json:"products"`
}

// CreateOrder runs the whole settlement sequence in one transaction:
// inventory validation, invoice numbering, line subtotals, guarded stock
// decrement, drawer totals and loyalty accrual all commit or roll back as a
// unit. The inventory decrement re-checks the unit count in the UPDATE
// itself, so two concurrent orders cannot overdraw the same stock.
func CreateOrder(c *gin.Context) {
	var input OrderInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if len(input.Products) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Product list cannot be empty."})
		return
	}

	digital := input.PaymentType == PaymentEWallet || input.PaymentType == PaymentBankTransfer

	var order models.Order
	err := config.DB.Transaction(func(tx *gorm.DB) error {
		var location models.Location
		if err := tx.First(&location, input.LocationId).Error; err != nil {
			return &apiError{http.StatusNotFound, "Location not found."}
		}

		productIDs := make([]uint, 0, len(input.Products))
		for _, line := range input.Products {
			productIDs = append(productIDs, line.ProductId)
		}
		var products []models.Product
		if err := tx.Where("id IN ?", productIDs).Find(&products).Error; err != nil {
			return err
		}
		if len(products) != len(input.Products) {
			return &apiError{http.StatusNotFound, "One or more products not found."}
		}
		productsByID := make(map[uint]models.Product, len(products))
		for _, p := range products {
			productsByID[p.Id] = p
		}

		// Read-phase availability check. The write phase re-checks in the
		// UPDATE, but failing here yields a clean error before any mutation.
		for _, line := range input.Products {
			var inventory models.Inventory
			err := tx.Where("product_id = ? AND location_id = ?", line.ProductId, input.LocationId).
				First(&inventory).Error
			if errors.Is(err, gorm.ErrRecordNotFound) || (err == nil && inventory.Units < line.Quantity) {
				available := 0
				if err == nil {
					available = inventory.Units
				}
				return &apiError{http.StatusBadRequest, fmt.Sprintf(
					"Not enough inventory for product ID %d. Available: %d, Requested: %d",
					line.ProductId, available, line.Quantity)}
			}
			if err != nil {
				return err
			}
		}

		invoiceNo, err := nextInvoiceNo(tx)
		if err != nil {
			return err
		}

		status := OrderSettled
		if input.PaymentType == PaymentCredit {
			status = OrderPending
		}

		order = models.Order{
			InvoiceNo:       invoiceNo,
			Status:          status,
			TotalVatSale:    input.TotalVatSale,
			TotalVatAmount:  input.TotalVatAmount,
			TotalVatExempt:  input.TotalVatExempt,
			TransactionType: input.TransactionType,
			PaymentType:     input.PaymentType,
			LocationId:      input.LocationId,
			UserId:          input.UserId,
			CustomerId:      input.CustomerId,
		}
		if digital {
			order.AccountName = input.AccountName
			order.AccountNumber = input.AccountNumber
			order.ReferenceNo = input.ReferenceNo
			order.DigitalPaymentAmount = input.DigitalPaymentAmount
		}
		if err := tx.Create(&order).Error; err != nil {
			return err
		}

		totalAmount := decimal.Zero
		totalDiscount := decimal.Zero

		for _, line := range input.Products {
			product := productsByID[line.ProductId]

			// Missing or inactive discounts silently apply 0%.
			discountPct := 0
			if line.DiscountId != nil {
				var discount models.Discount
				err := tx.Where("discount_id = ? AND status = ?", *line.DiscountId, 1).
					First(&discount).Error
				if err == nil {
					discountPct = discount.Percentage
				} else if !errors.Is(err, gorm.ErrRecordNotFound) {
					return err
				}
			}

			originalPrice := product.RetailPrice.Mul(decimal.NewFromInt(int64(line.Quantity)))
			discountAmount := originalPrice.Mul(decimal.NewFromInt(int64(discountPct))).
				Div(decimal.NewFromInt(100)).Round(2)
			subTotal := originalPrice.Sub(discountAmount)

			totalAmount = totalAmount.Add(subTotal)
			totalDiscount = totalDiscount.Add(discountAmount)

			orderProduct := models.OrderProduct{
				OrderId:    order.OrderId,
				ProductId:  product.Id,
				Quantity:   line.Quantity,
				DiscountId: line.DiscountId,
				SubTotal:   subTotal,
			}
			if err := tx.Create(&orderProduct).Error; err != nil {
				return err
			}

			// Guarded decrement: refuses to take units below zero even if a
			// concurrent order passed the read-phase check.
			result := tx.Model(&models.Inventory{}).
				Where("product_id = ? AND location_id = ? AND units >= ?",
					line.ProductId, input.LocationId, line.Quantity).
				Update("units", gorm.Expr("units - ?", line.Quantity))
			if result.Error != nil {
				return result.Error
			}
			if result.RowsAffected == 0 {
				return &apiError{http.StatusBadRequest, fmt.Sprintf(
					"Not enough inventory for product ID %d.", line.ProductId)}
			}
		}

		order.TotalAmount = totalAmount
		order.TotalDiscount = totalDiscount
		if err := tx.Model(&models.Order{}).Where("order_id = ?", order.OrderId).
			Updates(map[string]interface{}{
				"total_amount":   totalAmount,
				"total_discount": totalDiscount,
			}).Error; err != nil {
			return err
		}

		var drawer models.CashDrawer
		err = tx.Where("location_id = ? AND user_id = ? AND status = ?",
			input.LocationId, input.UserId, 1).First(&drawer).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &apiError{http.StatusBadRequest, "No active cash drawer found."}
		}
		if err != nil {
			return err
		}

		// SQL-side increments so concurrent writers cannot lose updates.
		updates := map[string]interface{}{
			"total_amount":     gorm.Expr("total_amount + ?", totalAmount),
			"total_discount":   gorm.Expr("total_discount + ?", totalDiscount),
			"total_vat_sale":   gorm.Expr("total_vat_sale + ?", input.TotalVatSale),
			"total_vat_amount": gorm.Expr("total_vat_amount + ?", input.TotalVatAmount),
			"total_vat_exempt": gorm.Expr("total_vat_exempt + ?", input.TotalVatExempt),
			"total_sales":      gorm.Expr("total_sales + ?", totalAmount),
		}
		switch input.PaymentType {
		case PaymentCash:
			updates["total_cash_sales"] = gorm.Expr("total_cash_sales + ?", totalAmount)
			updates["drawer_cash"] = gorm.Expr("drawer_cash + ?", totalAmount)
		case PaymentEWallet:
			updates["total_e_wallet_sales"] = gorm.Expr("total_e_wallet_sales + ?", totalAmount)
		case PaymentBankTransfer:
			updates["total_bank_transaction_sales"] = gorm.Expr("total_bank_transaction_sales + ?", totalAmount)
		case PaymentCredit:
			updates["total_credit_sales"] = gorm.Expr("total_credit_sales + ?", totalAmount)
		}
		if err := tx.Model(&models.CashDrawer{}).
			Where("drawer_id = ?", drawer.DrawerId).Updates(updates).Error; err != nil {
			return err
		}

		if input.CustomerId != nil {
			var customer models.Customer
			err := tx.First(&customer, *input.CustomerId).Error
			if err == nil {
				earnedPoints := totalAmount.Div(pointsPer).IntPart()
				if err := tx.Model(&customer).Updates(map[string]interface{}{
					"transaction_count": gorm.Expr("transaction_count + ?", 1),
					"points":            gorm.Expr("points + ?", earnedPoints),
				}).Error; err != nil {
					return err
				}
			} else if !errors.Is(err, gorm.ErrRecordNotFound) {
				return err
			}
		}

		return nil
	})
	if err != nil {
		var ae *apiError
		if errors.As(err, &ae) {
			c.JSON(ae.code, gin.H{"error": ae.msg})
			return
		}
		log.Printf("create order: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "An error occurred while creating the order."})
		return
	}

	utils.Broadcast("orders", "OrderCreated", gin.H{"order_id": order.OrderId, "invoice_no": order.InvoiceNo})

	resp := gin.H{
		"status":           "Order created successfully",
		"invoice_no":       order.InvoiceNo,
		"total_amount":     order.TotalAmount,
		"total_discount":   order.TotalDiscount,
		"total_vat_sale":   input.TotalVatSale,
		"total_vat_amount": input.TotalVatAmount,
		"total_vat_exempt": input.TotalVatExempt,
		"payment_type":     input.PaymentType,
	}
	if digital {
		resp["account_name"] = input.AccountName
		resp["account_number"] = input.AccountNumber
		resp["reference_no"] = input.ReferenceNo
		resp["digital_payment_amount"] = input.DigitalPaymentAmount
	}
	c.JSON(http.StatusOK, resp)
}

// nextInvoiceNo builds INV{n}-{yyyyMMdd} where n is one past the number of
// orders already created today.
func nextInvoiceNo(tx *gorm.DB) (string, error) {
	now := time.Now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	var count int64
	err := tx.Model(&models.Order{}).
		Where("date_created >= ? AND date_created < ?", today, today.AddDate(0, 0, 1)).
		Count(&count).Error
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("INV%d-%s", count+1, today.Format("20060102")), nil
}

type SettleInput struct {
	InvoiceNo            string          `json:"invoice_no" binding:"required"`
	LocationId           uint            `json:"location_id" binding:"required"`
	UserId               uint            `json:"user_id" binding:"required"`
	PaymentType          int             `json:"payment_type"`
	AccountName          string          `json:"account_name"`
	AccountNumber        string          `json:"account_number"`
	ReferenceNo          string          `json:"reference_no"`
	DigitalPaymentAmount decimal.Decimal `json:"digital_payment_amount"`
	TotalSettledCredit   decimal.Decimal `json:"total_settled_credit"`
}

// SettleOrder closes out a pending credit order: the order flips to settled,
// the drawer's settled-credit total grows by the paid amount and, for cash
// settlements, the drawer cash does too. One transaction.
func SettleOrder(c *gin.Context) {
	var input SettleInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var order models.Order
	err := config.DB.Transaction(func(tx *gorm.DB) error {
		err := tx.Where("invoice_no = ?", input.InvoiceNo).First(&order).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &apiError{http.StatusNotFound, "Order not found"}
		}
		if err != nil {
			return err
		}

		order.Status = OrderSettled
		if input.PaymentType == PaymentEWallet || input.PaymentType == PaymentBankTransfer {
			order.AccountName = input.AccountName
			order.AccountNumber = input.AccountNumber
			order.ReferenceNo = input.ReferenceNo
			order.DigitalPaymentAmount = input.DigitalPaymentAmount
		} else {
			order.AccountName = ""
			order.AccountNumber = ""
			order.ReferenceNo = ""
			order.DigitalPaymentAmount = decimal.Zero
		}
		if err := tx.Save(&order).Error; err != nil {
			return err
		}

		var drawer models.CashDrawer
		err = tx.Where("location_id = ? AND user_id = ? AND status = ?",
			input.LocationId, input.UserId, 1).First(&drawer).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &apiError{http.StatusBadRequest, "Cash drawer not found or not active"}
		}
		if err != nil {
			return err
		}

		updates := map[string]interface{}{
			"total_settled_credit": gorm.Expr("total_settled_credit + ?", input.TotalSettledCredit),
		}
		if input.PaymentType == PaymentCash {
			updates["drawer_cash"] = gorm.Expr("drawer_cash + ?", input.TotalSettledCredit)
		}
		return tx.Model(&models.CashDrawer{}).
			Where("drawer_id = ?", drawer.DrawerId).Updates(updates).Error
	})
	if err != nil {
		var ae *apiError
		if errors.As(err, &ae) {
			c.JSON(ae.code, gin.H{"error": ae.msg})
			return
		}
		log.Printf("settle order %s: %v", input.InvoiceNo, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "An error occurred while settling the order."})
		return
	}

	utils.Broadcast("orders", "OrderSettled", gin.H{"invoice_no": order.InvoiceNo})

	c.JSON(http.StatusOK, gin.H{
		"status":               "Order updated successfully",
		"invoice_no":           order.InvoiceNo,
		"total_settled_credit": input.TotalSettledCredit,
	})
}

func GetOrders(c *gin.Context) {
	var orders []models.Order
	err := config.DB.WithContext(c.Request.Context()).
		Preload("OrderProducts").
		Preload("OrderProducts.Product").
		Preload("Location").
		Preload("User").
		Find(&orders).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not fetch orders"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": orders})
}

// CreditOrderRow joins pending credit orders with the owning customer's
// contact details.
type CreditOrderRow struct {
	InvoiceNo   string          `json:"invoice_no"`
	TotalAmount decimal.Decimal `json:"total_amount"`
	DateCreated time.Time       `json:"date_created"`
	FirstName   string          `json:"first_name"`
	LastName    string          `json:"last_name"`
	ContactNo   string          `json:"contact_no"`
	Email       string          `json:"email"`
}

// GetCreditOrders lists unsettled credit sales for a location and cashier.
func GetCreditOrders(c *gin.Context) {
	query := config.DB.Table("orders").
		Select(`orders.invoice_no, orders.total_amount, orders.date_created,
			customers.first_name, customers.last_name, customers.contact_no, customers.email`).
		Joins("JOIN customers ON customers.customer_id = orders.customer_id").
		Where("orders.status = ?", OrderPending)
	if locationID := c.Query("location_id"); locationID != "" {
		query = query.Where("orders.location_id = ?", locationID)
	}
	if userID := c.Query("user_id"); userID != "" {
		query = query.Where("orders.user_id = ?", userID)
	}

	var rows []CreditOrderRow
	if err := query.Scan(&rows).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not fetch credit orders"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": rows})
}

// LocationOrderRow is the per-location settled-orders listing.
type LocationOrderRow struct {
	InvoiceNo       string          `json:"invoice_no"`
	TotalAmount     decimal.Decimal `json:"total_amount"`
	Name            string          `json:"name"`
	TransactionType string          `json:"transaction_type"`
	PaymentType     int             `json:"payment_type"`
	DateCreated     time.Time       `json:"date_created"`
}

// GetOrdersByLocation lists settled orders at a location with the customer
// name and a readable transaction type.
func GetOrdersByLocation(c *gin.Context) {
	var rows []struct {
		InvoiceNo       string
		TotalAmount     decimal.Decimal
		FirstName       string
		LastName        string
		TransactionType int
		PaymentType     int
		DateCreated     time.Time
	}
	err := config.DB.Table("orders").
		Select(`orders.invoice_no, orders.total_amount, orders.transaction_type,
			orders.payment_type, orders.date_created,
			customers.first_name, customers.last_name`).
		Joins("JOIN customers ON customers.customer_id = orders.customer_id").
		Where("orders.location_id = ? AND orders.status = ?", c.Param("locationId"), OrderSettled).
		Scan(&rows).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not fetch orders"})
		return
	}

	out := make([]LocationOrderRow, 0, len(rows))
	for _, row := range rows {
		transactionType := "Wholesale"
		if row.TransactionType == 1 {
			transactionType = "Retail Transaction"
		}
		out = append(out, LocationOrderRow{
			InvoiceNo:       row.InvoiceNo,
			TotalAmount:     row.TotalAmount,
			Name:            row.FirstName + " " + row.LastName,
			TransactionType: transactionType,
			PaymentType:     row.PaymentType,
			DateCreated:     row.DateCreated,
		})
	}
	c.JSON(http.StatusOK, gin.H{"data": out})
}
