package controller

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/code-with-geo/POSServer/config"
	"github.com/code-with-geo/POSServer/models"
	"github.com/code-with-geo/POSServer/utils"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"
)

const (
	AllProductsCacheKey = "all_products"
	ProductCacheTTL     = 5 * time.Minute
)

// GetProducts godoc
// @Summary Get all products
// @Description Get a list of all products with their category, with caching.
// @Tags products
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /products [get]
func GetProducts(c *gin.Context) {
	ctx := c.Request.Context()

	// 1. Try to get from cache first
	if config.RedisClient != nil {
		cacheData, err := config.RedisClient.Get(ctx, AllProductsCacheKey).Result()
		if err == nil {
			var products []models.Product
			if json.Unmarshal([]byte(cacheData), &products) == nil {
				c.JSON(http.StatusOK, gin.H{"source": "cache", "data": products})
				return
			}
		}
	}

	// 2. If cache miss, get from DB
	var products []models.Product
	if result := config.DB.WithContext(ctx).Preload("Category").Find(&products); result.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not fetch products"})
		return
	}

	// 3. Set to cache for next time (in background)
	if config.RedisClient != nil {
		productsJSON, err := json.Marshal(products)
		if err == nil {
			go config.RedisClient.Set(context.Background(), AllProductsCacheKey, productsJSON, ProductCacheTTL)
		}
	}

	c.JSON(http.StatusOK, gin.H{"source": "database", "data": products})
}

// GetProductByID godoc
// @Summary Get a single product by its ID
// @Description Get detailed information for a specific product.
// @Tags products
// @Produce json
// @Param id path int true "Product ID"
// @Success 200 {object} map[string]interface{}
// @Router /products/{id} [get]
func GetProductByID(c *gin.Context) {
	ctx := c.Request.Context()
	id := c.Param("id")
	productCacheKey := "product:" + id

	if config.RedisClient != nil {
		cachedProduct, err := config.RedisClient.Get(ctx, productCacheKey).Result()
		if err == nil {
			var product models.Product
			if json.Unmarshal([]byte(cachedProduct), &product) == nil {
				c.JSON(http.StatusOK, gin.H{"source": "cache", "data": product})
				return
			}
		}
	}

	var product models.Product
	if result := config.DB.WithContext(ctx).Preload("Category").First(&product, id); result.Error != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
		return
	}

	if config.RedisClient != nil {
		productJSON, err := json.Marshal(product)
		if err == nil {
			go config.RedisClient.Set(context.Background(), productCacheKey, productJSON, ProductCacheTTL)
		}
	}

	c.JSON(http.StatusOK, gin.H{"source": "database", "data": product})
}

// CreateProduct godoc
// @Summary Create a new product
// @Description Adds a new product to the catalog.
// @Tags products
// @Accept json
// @Produce json
// @Param product body models.Product true "Product object"
// @Success 201 {object} models.Product
// @Router /products [post]
func CreateProduct(c *gin.Context) {
	// Absent status defaults to active; an explicit 0 creates it disabled.
	product := models.Product{Status: 1}
	if err := c.ShouldBindJSON(&product); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if result := config.DB.Create(&product); result.Error != nil {
		c.JSON(http.StatusConflict, gin.H{"error": "Could not create product: " + result.Error.Error()})
		return
	}

	if config.RedisClient != nil {
		go config.RedisClient.Del(context.Background(), AllProductsCacheKey)
	}
	utils.Broadcast("products", "ProductAdded", product)

	c.JSON(http.StatusCreated, product)
}

// UpdateProduct godoc
// @Summary Update an existing product
// @Description Updates a product's details by its ID.
// @Tags products
// @Accept json
// @Produce json
// @Param id path int true "Product ID"
// @Param product body models.Product true "Product object"
// @Success 200 {object} models.Product
// @Router /products/{id} [put]
func UpdateProduct(c *gin.Context) {
	id := c.Param("id")
	var product models.Product

	if result := config.DB.First(&product, id); result.Error != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
		return
	}

	if err := c.ShouldBindJSON(&product); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	config.DB.Save(&product)

	if config.RedisClient != nil {
		productCacheKey := "product:" + id
		go config.RedisClient.Del(context.Background(), AllProductsCacheKey)
		go config.RedisClient.Del(context.Background(), productCacheKey)
	}
	utils.Broadcast("products", "ProductUpdated", product)

	c.JSON(http.StatusOK, product)
}

// DisableProduct soft-disables a product. Products referenced by orders are
// never hard-deleted.
func DisableProduct(c *gin.Context) {
	id := c.Param("id")
	var product models.Product

	if result := config.DB.First(&product, id); result.Error != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
		return
	}

	product.Status = 0
	config.DB.Save(&product)

	if config.RedisClient != nil {
		go config.RedisClient.Del(context.Background(), AllProductsCacheKey)
		go config.RedisClient.Del(context.Background(), "product:"+id)
	}
	utils.Broadcast("products", "ProductUpdated", product)

	c.Status(http.StatusNoContent)
}

// DeleteProduct godoc
// @Summary Delete a product
// @Description Deletes a product by its ID.
// @Tags products
// @Produce json
// @Param id path int true "Product ID"
// @Success 204 "No Content"
// @Router /products/{id} [delete]
func DeleteProduct(c *gin.Context) {
	id := c.Param("id")

	uid, err := strconv.ParseUint(id, 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid product ID"})
		return
	}

	result := config.DB.Delete(&models.Product{}, uid)
	if result.Error != nil {
		log.Printf("delete product %s: %v", id, result.Error)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not delete product"})
		return
	}
	if result.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
		return
	}

	if config.RedisClient != nil {
		go config.RedisClient.Del(context.Background(), AllProductsCacheKey)
		go config.RedisClient.Del(context.Background(), "product:"+id)
	}
	utils.Broadcast("products", "ProductDeleted", uid)

	c.Status(http.StatusNoContent)
}

// ImportProducts ingests an xlsx catalog. Expected columns, starting at row 2:
// barcode, name, description, supplier price, retail price, wholesale price,
// reorder level, vatable, category id, status. The whole import is one
// transaction; the first invalid row aborts it.
func ImportProducts(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No file uploaded."})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Could not open uploaded file."})
		return
	}
	defer file.Close()

	xlsx, err := excelize.OpenReader(file)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "File is not a valid spreadsheet."})
		return
	}
	defer xlsx.Close()

	rows, err := xlsx.GetRows(xlsx.GetSheetName(0))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Could not read spreadsheet rows."})
		return
	}

	imported := 0
	err = config.DB.Transaction(func(tx *gorm.DB) error {
		for i, row := range rows {
			if i == 0 { // header row
				continue
			}
			product, rowErr := parseProductRow(row)
			if rowErr != nil {
				return &importError{Row: i + 1, Reason: rowErr.Error()}
			}
			if createErr := tx.Create(product).Error; createErr != nil {
				return &importError{Row: i + 1, Reason: "could not insert product"}
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
		log.Printf("import products: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "An error occurred while processing the import."})
		return
	}

	if config.RedisClient != nil {
		go config.RedisClient.Del(context.Background(), AllProductsCacheKey)
	}
	utils.Broadcast("products", "ProductsImported", gin.H{"count": imported})

	c.JSON(http.StatusOK, gin.H{"message": "Excel data imported successfully.", "new_entries": imported})
}

func parseProductRow(row []string) (*models.Product, error) {
	if len(row) < 10 {
		return nil, errMissingColumns
	}
	supplierPrice, err := decimal.NewFromString(row[3])
	if err != nil {
		return nil, errBadPrice
	}
	retailPrice, err := decimal.NewFromString(row[4])
	if err != nil {
		return nil, errBadPrice
	}
	wholesalePrice, err := decimal.NewFromString(row[5])
	if err != nil {
		return nil, errBadPrice
	}
	reorderLevel, err := strconv.Atoi(row[6])
	if err != nil {
		return nil, errBadNumber
	}
	vatable, err := strconv.Atoi(row[7])
	if err != nil {
		return nil, errBadNumber
	}
	categoryID, err := strconv.ParseUint(row[8], 10, 32)
	if err != nil {
		return nil, errBadNumber
	}
	status, err := strconv.Atoi(row[9])
	if err != nil {
		return nil, errBadNumber
	}
	cid := uint(categoryID)
	return &models.Product{
		Barcode:        row[0],
		Name:           row[1],
		Description:    row[2],
		SupplierPrice:  supplierPrice,
		RetailPrice:    retailPrice,
		WholesalePrice: wholesalePrice,
		ReorderLevel:   reorderLevel,
		Vatable:        vatable,
		CategoryId:     &cid,
		Status:         status,
	}, nil
}
