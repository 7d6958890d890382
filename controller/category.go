package controller

import (
	"net/http"

	"github.com/code-with-geo/POSServer/config"
	"github.com/code-with-geo/POSServer/models"
	"github.com/code-with-geo/POSServer/utils"
	"github.com/gin-gonic/gin"
)

func GetCategories(c *gin.Context) {
	var categories []models.Category
	if err := config.DB.WithContext(c.Request.Context()).Find(&categories).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not fetch categories"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": categories})
}

func GetCategoryByID(c *gin.Context) {
	var category models.Category
	if err := config.DB.First(&category, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Category not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": category})
}

func CreateCategory(c *gin.Context) {
	var category models.Category
	if err := c.ShouldBindJSON(&category); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if result := config.DB.Create(&category); result.Error != nil {
		c.JSON(http.StatusConflict, gin.H{"error": "Could not create category: " + result.Error.Error()})
		return
	}

	utils.Broadcast("categories", "CategoryAdded", category)

	c.JSON(http.StatusCreated, category)
}

func UpdateCategory(c *gin.Context) {
	var category models.Category
	if err := config.DB.First(&category, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Category not found"})
		return
	}

	var input models.Category
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	category.Name = input.Name
	config.DB.Save(&category)

	utils.Broadcast("categories", "CategoryUpdated", category)

	c.JSON(http.StatusOK, category)
}

func DeleteCategory(c *gin.Context) {
	result := config.DB.Delete(&models.Category{}, c.Param("id"))
	if result.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Category not found"})
		return
	}

	utils.Broadcast("categories", "CategoryDeleted", c.Param("id"))

	c.Status(http.StatusNoContent)
}
