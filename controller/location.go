package controller

import (
	"net/http"

	"github.com/code-with-geo/POSServer/config"
	"github.com/code-with-geo/POSServer/models"
	"github.com/code-with-geo/POSServer/utils"
	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
)

type LocationInput struct {
	Name     string `json:"name" binding:"required"`
	Password string `json:"password" binding:"required"`
	Status   int    `json:"status"`
}

func GetLocations(c *gin.Context) {
	var locations []models.Location
	if err := config.DB.WithContext(c.Request.Context()).Find(&locations).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not fetch locations"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": locations})
}

func GetLocationByID(c *gin.Context) {
	var location models.Location
	if err := config.DB.First(&location, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Location not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": location})
}

func CreateLocation(c *gin.Context) {
	input := LocationInput{Status: 1}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to hash password"})
		return
	}

	location := models.Location{
		Name:         input.Name,
		PasswordHash: string(hashedPassword),
		Status:       input.Status,
	}
	if result := config.DB.Create(&location); result.Error != nil {
		c.JSON(http.StatusConflict, gin.H{"error": "Could not create location: " + result.Error.Error()})
		return
	}

	utils.Broadcast("locations", "LocationAdded", location)

	c.JSON(http.StatusCreated, location)
}

func UpdateLocation(c *gin.Context) {
	var location models.Location
	if err := config.DB.First(&location, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Location not found"})
		return
	}

	var input LocationInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to hash password"})
		return
	}

	location.Name = input.Name
	location.PasswordHash = string(hashedPassword)
	config.DB.Save(&location)

	utils.Broadcast("locations", "LocationUpdated", location)

	c.JSON(http.StatusOK, location)
}

func DisableLocation(c *gin.Context) {
	var location models.Location
	if err := config.DB.First(&location, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Location not found"})
		return
	}

	location.Status = 0
	config.DB.Save(&location)

	utils.Broadcast("locations", "LocationUpdated", location)

	c.Status(http.StatusNoContent)
}

type LocationLoginInput struct {
	LocationId uint   `json:"location_id" binding:"required"`
	Password   string `json:"password" binding:"required"`
}

// LocationLogin unlocks a branch terminal before any cashier signs in.
func LocationLogin(c *gin.Context) {
	var input LocationLoginInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var location models.Location
	if err := config.DB.First(&location, input.LocationId).Error; err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials."})
		return
	}
	if err := bcrypt.CompareHashAndPassword([]byte(location.PasswordHash), []byte(input.Password)); err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials."})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"location_id": location.LocationId,
		"name":        location.Name,
		"message":     "Login successfully",
	})
}
