package controller

import (
	"net/http"

	"github.com/code-with-geo/POSServer/config"
	"github.com/code-with-geo/POSServer/models"
	"github.com/code-with-geo/POSServer/utils"
	"github.com/gin-gonic/gin"
)

// GetCustomers lists active customers only; disabled accounts stay queryable
// by id for historical orders.
func GetCustomers(c *gin.Context) {
	var customers []models.Customer
	if err := config.DB.WithContext(c.Request.Context()).Where("status = ?", 1).Find(&customers).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not fetch customers"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": customers})
}

func GetCustomerByID(c *gin.Context) {
	var customer models.Customer
	if err := config.DB.First(&customer, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Customer not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": customer})
}

func CreateCustomer(c *gin.Context) {
	customer := models.Customer{Status: 1}
	if err := c.ShouldBindJSON(&customer); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if result := config.DB.Create(&customer); result.Error != nil {
		c.JSON(http.StatusConflict, gin.H{"error": "Could not create customer: " + result.Error.Error()})
		return
	}

	utils.Broadcast("customers", "CustomerAdded", customer)

	c.JSON(http.StatusCreated, customer)
}

func UpdateCustomer(c *gin.Context) {
	var customer models.Customer
	if err := config.DB.First(&customer, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Customer not found"})
		return
	}

	var input models.Customer
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	// Loyalty counters are only ever touched by order creation.
	customer.FirstName = input.FirstName
	customer.LastName = input.LastName
	customer.ContactNo = input.ContactNo
	customer.Email = input.Email
	customer.CardNumber = input.CardNumber
	config.DB.Save(&customer)

	utils.Broadcast("customers", "CustomerUpdated", customer)

	c.JSON(http.StatusOK, customer)
}

func DisableCustomer(c *gin.Context) {
	var customer models.Customer
	if err := config.DB.First(&customer, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Customer not found"})
		return
	}

	customer.Status = 0
	config.DB.Save(&customer)

	utils.Broadcast("customers", "CustomerUpdated", customer)

	c.Status(http.StatusNoContent)
}
