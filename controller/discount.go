package controller

import (
	"net/http"

	"github.com/code-with-geo/POSServer/config"
	"github.com/code-with-geo/POSServer/models"
	"github.com/code-with-geo/POSServer/utils"
	"github.com/gin-gonic/gin"
)

func GetDiscounts(c *gin.Context) {
	var discounts []models.Discount
	if err := config.DB.WithContext(c.Request.Context()).Find(&discounts).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not fetch discounts"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": discounts})
}

func GetDiscountByID(c *gin.Context) {
	var discount models.Discount
	if err := config.DB.First(&discount, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Discount not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": discount})
}

func CreateDiscount(c *gin.Context) {
	// Absent status defaults to active; an explicit 0 creates it disabled.
	discount := models.Discount{Status: 1}
	if err := c.ShouldBindJSON(&discount); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if discount.Percentage < 0 || discount.Percentage > 100 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Percentage must be between 0 and 100."})
		return
	}

	if result := config.DB.Create(&discount); result.Error != nil {
		c.JSON(http.StatusConflict, gin.H{"error": "Could not create discount: " + result.Error.Error()})
		return
	}

	utils.Broadcast("discounts", "DiscountAdded", discount)

	c.JSON(http.StatusCreated, discount)
}

func UpdateDiscount(c *gin.Context) {
	var discount models.Discount
	if err := config.DB.First(&discount, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Discount not found"})
		return
	}

	var input models.Discount
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if input.Percentage < 0 || input.Percentage > 100 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Percentage must be between 0 and 100."})
		return
	}

	discount.Name = input.Name
	discount.Percentage = input.Percentage
	discount.Status = input.Status
	config.DB.Save(&discount)

	utils.Broadcast("discounts", "DiscountUpdated", discount)

	c.JSON(http.StatusOK, discount)
}

func DeleteDiscount(c *gin.Context) {
	result := config.DB.Delete(&models.Discount{}, c.Param("id"))
	if result.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Discount not found"})
		return
	}

	utils.Broadcast("discounts", "DiscountDeleted", c.Param("id"))

	c.Status(http.StatusNoContent)
}
