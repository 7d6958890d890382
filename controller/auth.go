package controller

import (
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/code-with-geo/POSServer/config"
	"github.com/code-with-geo/POSServer/models"
	"github.com/code-with-geo/POSServer/utils"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const tokenExpiry = 30 * time.Minute

func Paging(page, pageSize int) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if page <= 0 {
			page = 1
		}
		if pageSize <= 0 {
			pageSize = 20
		} else if pageSize > 100 {
			pageSize = 100
		}
		offset := (page - 1) * pageSize
		return db.Offset(offset).Limit(pageSize)
	}
}

type RegisterInput struct {
	Username   string `json:"username" binding:"required"`
	Password   string `json:"password" binding:"required"`
	Name       string `json:"name"`
	IsRole     int    `json:"is_role"`
	Status     int    `json:"status"`
	LocationId *uint  `json:"location_id"`
}

func Register(c *gin.Context) {
	// Absent status defaults to active; an explicit 0 registers disabled.
	input := RegisterInput{Status: 1}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var count int64
	config.DB.Model(&models.User{}).Where("username = ?", input.Username).Count(&count)
	if count > 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "User already exists."})
		return
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to hash password"})
		return
	}

	user := models.User{
		Username:     input.Username,
		Name:         input.Name,
		PasswordHash: string(hashedPassword),
		IsRole:       input.IsRole,
		Status:       input.Status,
		LocationId:   input.LocationId,
	}
	if result := config.DB.Create(&user); result.Error != nil {
		c.JSON(http.StatusConflict, gin.H{"error": "Could not create user: " + result.Error.Error()})
		return
	}

	utils.Broadcast("users", "UserAdded", user)

	c.JSON(http.StatusCreated, &user)
}

type LoginInput struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// Login verifies credentials and issues a bearer token with a 30-minute
// expiry. The response carries the user's location so the POS client can
// scope itself without a second round trip.
func Login(c *gin.Context) {
	var input LoginInput
	var user models.User

	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := config.DB.Where("username = ?", input.Username).First(&user).Error; err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials."})
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(input.Password)); err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials."})
		return
	}

	claims := jwt.MapClaims{
		"sub": user.Id,
		"jti": uuid.NewString(),
		"exp": time.Now().Add(tokenExpiry).Unix(),
		"iat": time.Now().Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "JWT is not configured on the server."})
		return
	}

	t, err := token.SignedString([]byte(jwtSecret))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not generate token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"user_id":     user.Id,
		"location_id": user.LocationId,
		"token":       t,
		"message":     "Login successfully",
	})
}

func GetUsers(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	ctx := c.Request.Context()
	users := []models.User{}

	if err := config.DB.WithContext(ctx).Scopes(Paging(page, limit)).Find(&users).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not fetch users"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": users})
}

func GetUserByID(c *gin.Context) {
	var user models.User
	if err := config.DB.WithContext(c.Request.Context()).First(&user, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": user})
}

// GetUsersByLocation lists every user assigned to one location.
func GetUsersByLocation(c *gin.Context) {
	var users []models.User
	if err := config.DB.Where("location_id = ?", c.Param("locationId")).Find(&users).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not fetch users"})
		return
	}
	if len(users) == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "No users found for this location."})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": users})
}

func UpdateUser(c *gin.Context) {
	var user models.User
	id := c.Param("id")

	if err := config.DB.First(&user, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	var input RegisterInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to hash password"})
		return
	}

	user.Username = input.Username
	user.Name = input.Name
	user.PasswordHash = string(hashedPassword)
	user.IsRole = input.IsRole
	user.Status = input.Status
	if input.LocationId != nil {
		user.LocationId = input.LocationId
	}
	config.DB.Save(&user)

	utils.Broadcast("users", "UserUpdated", user)

	c.JSON(http.StatusOK, &user)
}

// DisableUser soft-disables an account. Users are never hard-deleted because
// orders and drawer sessions reference them.
func DisableUser(c *gin.Context) {
	var user models.User
	if err := config.DB.First(&user, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	user.Status = 0
	config.DB.Save(&user)

	utils.Broadcast("users", "UserUpdated", user)

	c.Status(http.StatusNoContent)
}
