package controller

import (
	"errors"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/code-with-geo/POSServer/config"
	"github.com/code-with-geo/POSServer/models"
	"github.com/code-with-geo/POSServer/utils"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type StartDrawerInput struct {
	Cashier     string          `json:"cashier" binding:"required"`
	UserId      uint            `json:"user_id" binding:"required"`
	LocationId  uint            `json:"location_id" binding:"required"`
	InitialCash decimal.Decimal `json:"initial_cash"`
}

// StartCashDrawer opens a cashier session. The open-drawer check and the
// insert run in one transaction, and the partial unique index on
// (user_id, location_id) for open drawers backstops it under concurrency.
func StartCashDrawer(c *gin.Context) {
	var input StartDrawerInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if input.InitialCash.IsNegative() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Initial cash cannot be negative."})
		return
	}

	drawer := models.CashDrawer{
		Cashier:     input.Cashier,
		UserId:      input.UserId,
		LocationId:  input.LocationId,
		InitialCash: input.InitialCash,
		DrawerCash:  input.InitialCash,
		TimeStart:   time.Now(),
		Status:      1,
	}
	err := config.DB.Transaction(func(tx *gorm.DB) error {
		var existing models.CashDrawer
		err := tx.Where("user_id = ? AND location_id = ? AND time_end IS NULL",
			input.UserId, input.LocationId).First(&existing).Error
		if err == nil {
			return &apiError{http.StatusBadRequest, "An active cash drawer already exists for this user and location."}
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		return tx.Create(&drawer).Error
	})
	if err != nil {
		var ae *apiError
		if errors.As(err, &ae) {
			c.JSON(ae.code, gin.H{"error": ae.msg})
			return
		}
		log.Printf("start cash drawer: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "An error occurred while starting the cash drawer."})
		return
	}

	utils.Broadcast("cashdrawers", "CashDrawerStarted", drawer)

	c.JSON(http.StatusOK, gin.H{"data": drawer})
}

// EndCashDrawer stamps the session end and closes the drawer. The closing
// totals stay on the row as the reconciliation record.
func EndCashDrawer(c *gin.Context) {
	var drawer models.CashDrawer
	if err := config.DB.First(&drawer, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Cash drawer not found"})
		return
	}
	if drawer.TimeEnd != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Cash drawer is already closed."})
		return
	}

	now := time.Now()
	drawer.TimeEnd = &now
	drawer.Status = 0
	if err := config.DB.Save(&drawer).Error; err != nil {
		log.Printf("end cash drawer %d: %v", drawer.DrawerId, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "An error occurred while closing the cash drawer."})
		return
	}

	utils.Broadcast("cashdrawers", "CashDrawerClosed", drawer)

	c.JSON(http.StatusOK, gin.H{"data": drawer})
}

type DrawerMovementInput struct {
	DrawerId    uint            `json:"drawer_id" binding:"required"`
	Description string          `json:"description" binding:"required"`
	Amount      decimal.Decimal `json:"amount"`
	Remarks     string          `json:"remarks"`
}

// openDrawer loads the drawer and rejects the movement when the session is
// already closed.
func openDrawer(tx *gorm.DB, drawerID uint) (*models.CashDrawer, error) {
	var drawer models.CashDrawer
	err := tx.First(&drawer, drawerID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, &apiError{http.StatusNotFound, "Cash drawer not found"}
	}
	if err != nil {
		return nil, err
	}
	if drawer.TimeEnd != nil || drawer.Status != 1 {
		return nil, &apiError{http.StatusBadRequest, "Cash drawer is not active."}
	}
	return &drawer, nil
}

// AddExpense records a payout and reduces the drawer cash.
func AddExpense(c *gin.Context) {
	var input DrawerMovementInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if !input.Amount.IsPositive() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Amount must be greater than zero."})
		return
	}

	expense := models.Expense{
		DrawerId:    input.DrawerId,
		Description: input.Description,
		Amount:      input.Amount,
		Remarks:     input.Remarks,
	}
	err := config.DB.Transaction(func(tx *gorm.DB) error {
		drawer, err := openDrawer(tx, input.DrawerId)
		if err != nil {
			return err
		}
		if drawer.DrawerCash.LessThan(input.Amount) {
			return &apiError{http.StatusBadRequest, "Insufficient drawer cash."}
		}
		if err := tx.Create(&expense).Error; err != nil {
			return err
		}
		return tx.Model(drawer).Updates(map[string]interface{}{
			"expense":     gorm.Expr("expense + ?", input.Amount),
			"drawer_cash": gorm.Expr("drawer_cash - ?", input.Amount),
		}).Error
	})
	if err != nil {
		respondDrawerErr(c, "add expense", err)
		return
	}

	utils.Broadcast("cashdrawers", "ExpenseAdded", expense)

	c.JSON(http.StatusOK, gin.H{"data": expense})
}

// AddWithdrawal removes cash from the drawer, e.g. a bank drop. Rejected
// when the drawer does not hold enough cash.
func AddWithdrawal(c *gin.Context) {
	var input DrawerMovementInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if !input.Amount.IsPositive() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Amount must be greater than zero."})
		return
	}

	withdrawal := models.Withdrawal{
		DrawerId:    input.DrawerId,
		Description: input.Description,
		Amount:      input.Amount,
		Remarks:     input.Remarks,
	}
	err := config.DB.Transaction(func(tx *gorm.DB) error {
		drawer, err := openDrawer(tx, input.DrawerId)
		if err != nil {
			return err
		}
		if drawer.DrawerCash.LessThan(input.Amount) {
			return &apiError{http.StatusBadRequest, "Insufficient drawer cash."}
		}
		if err := tx.Create(&withdrawal).Error; err != nil {
			return err
		}
		return tx.Model(drawer).Updates(map[string]interface{}{
			"withdrawals": gorm.Expr("withdrawals + ?", input.Amount),
			"drawer_cash": gorm.Expr("drawer_cash - ?", input.Amount),
		}).Error
	})
	if err != nil {
		respondDrawerErr(c, "add withdrawal", err)
		return
	}

	utils.Broadcast("cashdrawers", "WithdrawalAdded", withdrawal)

	c.JSON(http.StatusOK, gin.H{"data": withdrawal})
}

// AddInitialCash tops up the drawer float after the session has started.
func AddInitialCash(c *gin.Context) {
	var input DrawerMovementInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if !input.Amount.IsPositive() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Amount must be greater than zero."})
		return
	}

	topUp := models.InitialCash{
		DrawerId:    input.DrawerId,
		Description: input.Description,
		Amount:      input.Amount,
		Remarks:     input.Remarks,
	}
	err := config.DB.Transaction(func(tx *gorm.DB) error {
		drawer, err := openDrawer(tx, input.DrawerId)
		if err != nil {
			return err
		}
		if err := tx.Create(&topUp).Error; err != nil {
			return err
		}
		return tx.Model(drawer).Updates(map[string]interface{}{
			"initial_cash": gorm.Expr("initial_cash + ?", input.Amount),
			"drawer_cash":  gorm.Expr("drawer_cash + ?", input.Amount),
		}).Error
	})
	if err != nil {
		respondDrawerErr(c, "add initial cash", err)
		return
	}

	utils.Broadcast("cashdrawers", "InitialCashAdded", topUp)

	c.JSON(http.StatusOK, gin.H{"data": topUp})
}

func respondDrawerErr(c *gin.Context, op string, err error) {
	var ae *apiError
	if errors.As(err, &ae) {
		c.JSON(ae.code, gin.H{"error": ae.msg})
		return
	}
	log.Printf("%s: %v", op, err)
	c.JSON(http.StatusInternalServerError, gin.H{"error": "An error occurred while updating the cash drawer."})
}

// GetOngoingCashDrawer returns the open drawer for a user at a location.
func GetOngoingCashDrawer(c *gin.Context) {
	var drawer models.CashDrawer
	err := config.DB.WithContext(c.Request.Context()).
		Where("user_id = ? AND location_id = ? AND time_end IS NULL",
			c.Param("userId"), c.Param("locationId")).
		First(&drawer).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "No ongoing cash drawer found"})
		return
	}
	if err != nil {
		log.Printf("get ongoing cash drawer: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not fetch cash drawer"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": drawer})
}

func GetCashDrawers(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))

	var drawers []models.CashDrawer
	query := config.DB.WithContext(c.Request.Context()).Scopes(Paging(page, limit))
	if locationID := c.Query("location_id"); locationID != "" {
		query = query.Where("location_id = ?", locationID)
	}
	if err := query.Find(&drawers).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not fetch cash drawers"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": drawers})
}

func GetCashDrawerByID(c *gin.Context) {
	var drawer models.CashDrawer
	if err := config.DB.First(&drawer, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Cash drawer not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": drawer})
}
