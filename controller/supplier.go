package controller

import (
	"net/http"

	"github.com/code-with-geo/POSServer/config"
	"github.com/code-with-geo/POSServer/models"
	"github.com/code-with-geo/POSServer/utils"
	"github.com/gin-gonic/gin"
)

func GetSuppliers(c *gin.Context) {
	var suppliers []models.Supplier
	if err := config.DB.WithContext(c.Request.Context()).Find(&suppliers).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not fetch suppliers"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": suppliers})
}

func GetSupplierByID(c *gin.Context) {
	var supplier models.Supplier
	if err := config.DB.First(&supplier, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Supplier not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": supplier})
}

func CreateSupplier(c *gin.Context) {
	supplier := models.Supplier{Status: 1}
	if err := c.ShouldBindJSON(&supplier); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if result := config.DB.Create(&supplier); result.Error != nil {
		c.JSON(http.StatusConflict, gin.H{"error": "Could not create supplier: " + result.Error.Error()})
		return
	}

	utils.Broadcast("suppliers", "SupplierAdded", supplier)

	c.JSON(http.StatusCreated, supplier)
}

func UpdateSupplier(c *gin.Context) {
	var supplier models.Supplier
	if err := config.DB.First(&supplier, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Supplier not found"})
		return
	}

	var input models.Supplier
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	supplier.Name = input.Name
	supplier.Address = input.Address
	supplier.ContactPerson = input.ContactPerson
	supplier.ContactNo = input.ContactNo
	supplier.Status = input.Status
	config.DB.Save(&supplier)

	utils.Broadcast("suppliers", "SupplierUpdated", supplier)

	c.JSON(http.StatusOK, supplier)
}

func DisableSupplier(c *gin.Context) {
	var supplier models.Supplier
	if err := config.DB.First(&supplier, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Supplier not found"})
		return
	}

	supplier.Status = 0
	config.DB.Save(&supplier)

	utils.Broadcast("suppliers", "SupplierUpdated", supplier)

	c.Status(http.StatusNoContent)
}
