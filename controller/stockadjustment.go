package controller

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"

	"github.com/code-with-geo/POSServer/config"
	"github.com/code-with-geo/POSServer/models"
	"github.com/code-with-geo/POSServer/utils"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// Adjustment actions.
const (
	AdjustmentAdd    = 0
	AdjustmentRemove = 1
)

type StockAdjustmentInput struct {
	ProductId  uint   `json:"product_id" binding:"required"`
	Units      int    `json:"units" binding:"required,gt=0"`
	Reason     string `json:"reason" binding:"required"`
	UserId     uint   `json:"user_id" binding:"required"`
	LocationId uint   `json:"location_id" binding:"required"`
	Actions    int    `json:"actions"`
}

// AdjustInventory applies a manual stock correction. Unlike stock-in, an
// adjustment requires the inventory row to already exist, and a removal may
// never take units below zero.
func AdjustInventory(c *gin.Context) {
	var input StockAdjustmentInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if input.Actions != AdjustmentAdd && input.Actions != AdjustmentRemove {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid adjustment action."})
		return
	}

	var adjustment models.StockAdjustment
	err := config.DB.Transaction(func(tx *gorm.DB) error {
		var err error
		adjustment, err = applyAdjustment(tx, input)
		return err
	})
	if err != nil {
		var ae *apiError
		if errors.As(err, &ae) {
			c.JSON(ae.code, gin.H{"error": ae.msg})
			return
		}
		log.Printf("stock adjustment: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "An error occurred while adjusting inventory."})
		return
	}

	utils.Broadcast("stockadjustments", "StockAdjusted", adjustment)

	c.JSON(http.StatusOK, gin.H{"data": adjustment})
}

func applyAdjustment(tx *gorm.DB, input StockAdjustmentInput) (models.StockAdjustment, error) {
	var product models.Product
	err := tx.Where("id = ? AND status = ?", input.ProductId, 1).First(&product).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.StockAdjustment{}, &apiError{http.StatusNotFound, "Product not found or inactive."}
	}
	if err != nil {
		return models.StockAdjustment{}, err
	}

	var inventory models.Inventory
	err = tx.Where("product_id = ? AND location_id = ?", input.ProductId, input.LocationId).
		First(&inventory).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.StockAdjustment{}, &apiError{http.StatusNotFound,
			"No inventory record for this product and location."}
	}
	if err != nil {
		return models.StockAdjustment{}, err
	}

	if input.Actions == AdjustmentAdd {
		if err := tx.Model(&inventory).
			Update("units", gorm.Expr("units + ?", input.Units)).Error; err != nil {
			return models.StockAdjustment{}, err
		}
	} else {
		// Guarded subtract, same shape as the order decrement.
		result := tx.Model(&models.Inventory{}).
			Where("inventory_id = ? AND units >= ?", inventory.InventoryId, input.Units).
			Update("units", gorm.Expr("units - ?", input.Units))
		if result.Error != nil {
			return models.StockAdjustment{}, result.Error
		}
		if result.RowsAffected == 0 {
			return models.StockAdjustment{}, &apiError{http.StatusBadRequest, fmt.Sprintf(
				"Cannot remove %d units. Available: %d.", input.Units, inventory.Units)}
		}
	}

	adjustment := models.StockAdjustment{
		ProductId:  &input.ProductId,
		Units:      input.Units,
		Reason:     input.Reason,
		UserId:     &input.UserId,
		LocationId: &input.LocationId,
		Actions:    input.Actions,
	}
	if err := tx.Create(&adjustment).Error; err != nil {
		return models.StockAdjustment{}, err
	}
	return adjustment, nil
}

// StockAdjustmentRow flattens the adjustment audit listing.
type StockAdjustmentRow struct {
	AdjustmentId uint   `json:"adjustment_id"`
	ProductName  string `json:"product_name"`
	Barcode      string `json:"barcode"`
	Units        int    `json:"units"`
	Reason       string `json:"reason"`
	UserName     string `json:"user_name"`
	LocationName string `json:"location_name"`
	Actions      int    `json:"actions"`
	DateCreated  string `json:"date_created"`
}

func GetStockAdjustments(c *gin.Context) {
	query := config.DB.WithContext(c.Request.Context()).Table("stock_adjustments").
		Select(`stock_adjustments.adjustment_id, stock_adjustments.units,
			stock_adjustments.reason, stock_adjustments.actions,
			stock_adjustments.date_created,
			products.name AS product_name, products.barcode,
			users.name AS user_name,
			locations.name AS location_name`).
		Joins("LEFT JOIN products ON products.id = stock_adjustments.product_id").
		Joins("LEFT JOIN users ON users.id = stock_adjustments.user_id").
		Joins("LEFT JOIN locations ON locations.location_id = stock_adjustments.location_id")
	if locationID := c.Query("location_id"); locationID != "" {
		query = query.Where("stock_adjustments.location_id = ?", locationID)
	}

	var rows []StockAdjustmentRow
	if err := query.Scan(&rows).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not fetch stock adjustments"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": rows})
}

// ImportStockAdjustments ingests an xlsx of corrections. Expected columns,
// starting at row 2: product id, units, reason, user id, location id, action.
func ImportStockAdjustments(c *gin.Context) {
	rows, ok := readImportRows(c)
	if !ok {
		return
	}

	imported := 0
	err := config.DB.Transaction(func(tx *gorm.DB) error {
		for i, row := range rows {
			if i == 0 { // header row
				continue
			}
			input, rowErr := parseAdjustmentRow(row)
			if rowErr != nil {
				return &importError{Row: i + 1, Reason: rowErr.Error()}
			}
			if _, err := applyAdjustment(tx, input); err != nil {
				var ae *apiError
				if errors.As(err, &ae) {
					return &importError{Row: i + 1, Reason: ae.msg}
				}
				return err
			}
			imported++
		}
		return nil
	})
	if err != nil {
		if ie, ok := err.(*importError); ok {
			c.JSON(http.StatusBadRequest, gin.H{"error": ie.Error()})
			return
		}
		log.Printf("import stock adjustments: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "An error occurred while processing the import."})
		return
	}

	utils.Broadcast("stockadjustments", "StockAdjustmentsImported", gin.H{"count": imported})

	c.JSON(http.StatusOK, gin.H{"message": "Excel data imported successfully.", "new_entries": imported})
}

func parseAdjustmentRow(row []string) (StockAdjustmentInput, error) {
	if len(row) < 6 {
		return StockAdjustmentInput{}, errMissingColumns
	}
	productID, err := strconv.ParseUint(row[0], 10, 32)
	if err != nil {
		return StockAdjustmentInput{}, errBadNumber
	}
	units, err := strconv.Atoi(row[1])
	if err != nil || units <= 0 {
		return StockAdjustmentInput{}, errBadNumber
	}
	userID, err := strconv.ParseUint(row[3], 10, 32)
	if err != nil {
		return StockAdjustmentInput{}, errBadNumber
	}
	locationID, err := strconv.ParseUint(row[4], 10, 32)
	if err != nil {
		return StockAdjustmentInput{}, errBadNumber
	}
	action, err := strconv.Atoi(row[5])
	if err != nil || (action != AdjustmentAdd && action != AdjustmentRemove) {
		return StockAdjustmentInput{}, errBadNumber
	}
	return StockAdjustmentInput{
		ProductId:  uint(productID),
		Units:      units,
		Reason:     row[2],
		UserId:     uint(userID),
		LocationId: uint(locationID),
		Actions:    action,
	}, nil
}
