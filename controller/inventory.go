package controller

import (
	"net/http"
	"time"

	"github.com/code-with-geo/POSServer/config"
	"github.com/code-with-geo/POSServer/models"
	"github.com/code-with-geo/POSServer/utils"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// InventoryDetail is the flattened row shape for inventory listings; related
// entities are joined explicitly instead of nesting the full records.
type InventoryDetail struct {
	InventoryId   uint            `json:"inventory_id"`
	ProductId     uint            `json:"product_id"`
	ProductName   string          `json:"product_name"`
	Barcode       string          `json:"barcode"`
	Description   string          `json:"description"`
	RetailPrice   decimal.Decimal `json:"retail_price"`
	CategoryName  string          `json:"category_name"`
	Units         int             `json:"units"`
	Specification string          `json:"specification"`
	LocationId    uint            `json:"location_id"`
	LocationName  string          `json:"location_name"`
	Status        int             `json:"status"`
	DateCreated   time.Time       `json:"date_created"`
}

func inventoryDetailQuery() *gorm.DB {
	return config.DB.Table("inventories").
		Select(`inventories.inventory_id, inventories.units, inventories.specification,
			inventories.status, inventories.date_created,
			products.id AS product_id, products.name AS product_name, products.barcode,
			products.description, products.retail_price,
			COALESCE(categories.name, '') AS category_name,
			locations.location_id, locations.name AS location_name`).
		Joins("JOIN products ON products.id = inventories.product_id").
		Joins("LEFT JOIN categories ON categories.category_id = products.category_id").
		Joins("JOIN locations ON locations.location_id = inventories.location_id")
}

// GetInventory lists every inventory row as a flattened detail record,
// optionally filtered by location.
func GetInventory(c *gin.Context) {
	query := inventoryDetailQuery()
	if locationID := c.Query("location_id"); locationID != "" {
		query = query.Where("inventories.location_id = ?", locationID)
	}

	var details []InventoryDetail
	if err := query.Scan(&details).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not fetch inventory"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": details})
}

func GetInventoryByID(c *gin.Context) {
	var inventory models.Inventory
	if err := config.DB.First(&inventory, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Inventory not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": inventory})
}

// CreateInventory registers a product at a location. At most one row may
// exist per (product, location) pair.
func CreateInventory(c *gin.Context) {
	inventory := models.Inventory{Status: 1}
	if err := c.ShouldBindJSON(&inventory); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var count int64
	config.DB.Model(&models.Inventory{}).
		Where("product_id = ? AND location_id = ?", inventory.ProductId, inventory.LocationId).
		Count(&count)
	if count > 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Product already exists in the inventory for the given location."})
		return
	}

	if result := config.DB.Create(&inventory); result.Error != nil {
		c.JSON(http.StatusConflict, gin.H{"error": "Could not create inventory: " + result.Error.Error()})
		return
	}

	utils.Broadcast("inventory", "InventoryAdded", inventory)

	c.JSON(http.StatusCreated, inventory)
}

func UpdateInventory(c *gin.Context) {
	var inventory models.Inventory
	if err := config.DB.First(&inventory, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Inventory not found"})
		return
	}

	var input models.Inventory
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	inventory.Units = input.Units
	inventory.Specification = input.Specification
	inventory.Status = input.Status
	config.DB.Save(&inventory)

	utils.Broadcast("inventory", "InventoryUpdated", inventory)

	c.JSON(http.StatusOK, inventory)
}

func DisableInventory(c *gin.Context) {
	var inventory models.Inventory
	if err := config.DB.First(&inventory, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Inventory not found"})
		return
	}

	inventory.Status = 0
	config.DB.Save(&inventory)

	utils.Broadcast("inventory", "InventoryUpdated", inventory)

	c.Status(http.StatusNoContent)
}

// GetPOSInventory serves the POS terminal view: active stock at one location
// with the product and category detail needed to build a sale.
func GetPOSInventory(c *gin.Context) {
	query := inventoryDetailQuery().
		Where("inventories.status = ? AND products.status = ?", 1, 1)
	if locationID := c.Query("location_id"); locationID != "" {
		query = query.Where("inventories.location_id = ?", locationID)
	}

	var details []InventoryDetail
	if err := query.Scan(&details).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not fetch inventory"})
		return
	}
	if len(details) == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "No inventory found for this location."})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": details})
}
