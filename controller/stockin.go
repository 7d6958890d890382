package controller

import (
	"errors"
	"log"
	"math/rand"
	"net/http"
	"strconv"

	"github.com/code-with-geo/POSServer/config"
	"github.com/code-with-geo/POSServer/models"
	"github.com/code-with-geo/POSServer/utils"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type StockInInput struct {
	SupplierId uint `json:"supplier_id" binding:"required"`
	ProductId  uint `json:"product_id" binding:"required"`
	Units      int  `json:"units" binding:"required,gt=0"`
	UserId     uint `json:"user_id" binding:"required"`
	LocationId uint `json:"location_id" binding:"required"`
}

// CreateStockIn receives goods from a supplier: the inventory row for the
// (product, location) pair is created or incremented and an audit row is
// written, both in one transaction.
func CreateStockIn(c *gin.Context) {
	var input StockInInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var stockIn models.StockIn
	err := config.DB.Transaction(func(tx *gorm.DB) error {
		var err error
		stockIn, err = receiveStock(tx, input)
		return err
	})
	if err != nil {
		var ae *apiError
		if errors.As(err, &ae) {
			c.JSON(ae.code, gin.H{"error": ae.msg})
			return
		}
		log.Printf("stock in: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "An error occurred while receiving stock."})
		return
	}

	utils.Broadcast("stockins", "StockInAdded", stockIn)

	c.JSON(http.StatusOK, gin.H{"data": stockIn})
}

// receiveStock applies one stock-in line inside tx.
func receiveStock(tx *gorm.DB, input StockInInput) (models.StockIn, error) {
	var product models.Product
	err := tx.Where("id = ? AND status = ?", input.ProductId, 1).First(&product).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.StockIn{}, &apiError{http.StatusNotFound, "Product not found or inactive."}
	}
	if err != nil {
		return models.StockIn{}, err
	}

	var inventory models.Inventory
	err = tx.Where("product_id = ? AND location_id = ?", input.ProductId, input.LocationId).
		First(&inventory).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		inventory = models.Inventory{
			ProductId:  &input.ProductId,
			LocationId: &input.LocationId,
			Units:      input.Units,
			Status:     1,
		}
		if err := tx.Create(&inventory).Error; err != nil {
			return models.StockIn{}, err
		}
	case err != nil:
		return models.StockIn{}, err
	default:
		if err := tx.Model(&inventory).
			Update("units", gorm.Expr("units + ?", input.Units)).Error; err != nil {
			return models.StockIn{}, err
		}
	}

	stockIn := models.StockIn{
		ReferenceNo: 100000 + rand.Intn(900000),
		SupplierId:  &input.SupplierId,
		ProductId:   &input.ProductId,
		Units:       input.Units,
		UserId:      &input.UserId,
		LocationId:  &input.LocationId,
		Status:      1,
	}
	if err := tx.Create(&stockIn).Error; err != nil {
		return models.StockIn{}, err
	}
	return stockIn, nil
}

// StockInRow flattens the stock-in audit listing.
type StockInRow struct {
	StockId      uint   `json:"stock_id"`
	ReferenceNo  int    `json:"reference_no"`
	SupplierName string `json:"supplier_name"`
	ProductName  string `json:"product_name"`
	Barcode      string `json:"barcode"`
	Units        int    `json:"units"`
	UserName     string `json:"user_name"`
	LocationName string `json:"location_name"`
	DateCreated  string `json:"date_created"`
}

func GetStockIns(c *gin.Context) {
	query := config.DB.WithContext(c.Request.Context()).Table("stock_ins").
		Select(`stock_ins.stock_id, stock_ins.reference_no, stock_ins.units,
			stock_ins.date_created,
			suppliers.name AS supplier_name,
			products.name AS product_name, products.barcode,
			users.name AS user_name,
			locations.name AS location_name`).
		Joins("LEFT JOIN suppliers ON suppliers.supplier_id = stock_ins.supplier_id").
		Joins("LEFT JOIN products ON products.id = stock_ins.product_id").
		Joins("LEFT JOIN users ON users.id = stock_ins.user_id").
		Joins("LEFT JOIN locations ON locations.location_id = stock_ins.location_id")
	if locationID := c.Query("location_id"); locationID != "" {
		query = query.Where("stock_ins.location_id = ?", locationID)
	}

	var rows []StockInRow
	if err := query.Scan(&rows).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not fetch stock-in records"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": rows})
}

// ImportStockIn ingests an xlsx of received goods. Expected columns, starting
// at row 2: user id, supplier id, product id, units, location id. One
// transaction; the first invalid row aborts the whole file.
func ImportStockIn(c *gin.Context) {
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
			input, rowErr := parseStockInRow(row)
			if rowErr != nil {
				return &importError{Row: i + 1, Reason: rowErr.Error()}
			}
			if _, err := receiveStock(tx, input); err != nil {
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
		log.Printf("import stock in: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "An error occurred while processing the import."})
		return
	}

	utils.Broadcast("stockins", "StockInImported", gin.H{"count": imported})

	c.JSON(http.StatusOK, gin.H{"message": "Excel data imported successfully.", "new_entries": imported})
}

func parseStockInRow(row []string) (StockInInput, error) {
	if len(row) < 5 {
		return StockInInput{}, errMissingColumns
	}
	userID, err := strconv.ParseUint(row[0], 10, 32)
	if err != nil {
		return StockInInput{}, errBadNumber
	}
	supplierID, err := strconv.ParseUint(row[1], 10, 32)
	if err != nil {
		return StockInInput{}, errBadNumber
	}
	productID, err := strconv.ParseUint(row[2], 10, 32)
	if err != nil {
		return StockInInput{}, errBadNumber
	}
	units, err := strconv.Atoi(row[3])
	if err != nil || units <= 0 {
		return StockInInput{}, errBadNumber
	}
	locationID, err := strconv.ParseUint(row[4], 10, 32)
	if err != nil {
		return StockInInput{}, errBadNumber
	}
	return StockInInput{
		UserId:     uint(userID),
		SupplierId: uint(supplierID),
		ProductId:  uint(productID),
		Units:      units,
		LocationId: uint(locationID),
	}, nil
}
