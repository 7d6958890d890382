package controller

import (
	"net/http"
	"testing"

	"github.com/code-with-geo/POSServer/models"
	"github.com/shopspring/decimal"
)

func TestStartCashDrawer(t *testing.T) {
	db := setupTestDB(t)
	fx := seedStore(t, db)

	// The fixture already opened a drawer; use a second cashier.
	user := models.User{Username: "cashier2", Name: "Cashier Two", PasswordHash: "x", Status: 1, LocationId: &fx.Location.LocationId}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("seed user: %v", err)
	}

	w := postJSON(t, StartCashDrawer, "/cashdrawers", StartDrawerInput{
		Cashier:     user.Name,
		UserId:      user.Id,
		LocationId:  fx.Location.LocationId,
		InitialCash: decimal.NewFromInt(1000),
	})
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}

	var drawer models.CashDrawer
	if err := db.Where("user_id = ?", user.Id).First(&drawer).Error; err != nil {
		t.Fatalf("load drawer: %v", err)
	}
	mustEqualDecimal(t, drawer.InitialCash, 1000, "initial cash")
	mustEqualDecimal(t, drawer.DrawerCash, 1000, "drawer cash")
	if drawer.TimeEnd != nil {
		t.Fatal("new drawer should be open")
	}
}

func TestStartCashDrawerRejectsSecondOpenSession(t *testing.T) {
	db := setupTestDB(t)
	fx := seedStore(t, db)

	w := postJSON(t, StartCashDrawer, "/cashdrawers", StartDrawerInput{
		Cashier:     fx.User.Name,
		UserId:      fx.User.Id,
		LocationId:  fx.Location.LocationId,
		InitialCash: decimal.NewFromInt(200),
	})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}

	var count int64
	db.Model(&models.CashDrawer{}).Count(&count)
	if count != 1 {
		t.Fatalf("drawer count = %d, want 1", count)
	}
}

func TestStartCashDrawerRejectsNegativeFloat(t *testing.T) {
	db := setupTestDB(t)
	fx := seedStore(t, db)

	w := postJSON(t, StartCashDrawer, "/cashdrawers", StartDrawerInput{
		Cashier:     "Cashier Two",
		UserId:      fx.User.Id + 100,
		LocationId:  fx.Location.LocationId,
		InitialCash: decimal.NewFromInt(-50),
	})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
}

func TestEndCashDrawer(t *testing.T) {
	db := setupTestDB(t)
	fx := seedStore(t, db)

	path := "/cashdrawers/" + uintStr(fx.Drawer.DrawerId) + "/end"
	w := putJSON(t, EndCashDrawer, "/cashdrawers/:id/end", path, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}

	var drawer models.CashDrawer
	if err := db.First(&drawer, fx.Drawer.DrawerId).Error; err != nil {
		t.Fatalf("load drawer: %v", err)
	}
	if drawer.TimeEnd == nil {
		t.Fatal("drawer should be closed")
	}
	if drawer.Status != 0 {
		t.Fatalf("drawer status = %d, want 0", drawer.Status)
	}

	// Closing twice is rejected.
	w = putJSON(t, EndCashDrawer, "/cashdrawers/:id/end", path, nil)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("second close: status = %d, want 400", w.Code)
	}
}

func TestAddExpenseReducesDrawerCash(t *testing.T) {
	db := setupTestDB(t)
	fx := seedStore(t, db)

	w := postJSON(t, AddExpense, "/cashdrawers/expenses", DrawerMovementInput{
		DrawerId:    fx.Drawer.DrawerId,
		Description: "Delivery fee",
		Amount:      decimal.NewFromInt(120),
	})
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}

	var drawer models.CashDrawer
	if err := db.First(&drawer, fx.Drawer.DrawerId).Error; err != nil {
		t.Fatalf("load drawer: %v", err)
	}
	mustEqualDecimal(t, drawer.Expense, 120, "expense total")
	mustEqualDecimal(t, drawer.DrawerCash, 380, "drawer cash")

	var count int64
	db.Model(&models.Expense{}).Count(&count)
	if count != 1 {
		t.Fatalf("expense rows = %d, want 1", count)
	}
}

func TestAddWithdrawalRejectsOverdraw(t *testing.T) {
	db := setupTestDB(t)
	fx := seedStore(t, db)

	w := postJSON(t, AddWithdrawal, "/cashdrawers/withdrawals", DrawerMovementInput{
		DrawerId:    fx.Drawer.DrawerId,
		Description: "Bank drop",
		Amount:      decimal.NewFromInt(600),
	})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}

	var drawer models.CashDrawer
	if err := db.First(&drawer, fx.Drawer.DrawerId).Error; err != nil {
		t.Fatalf("load drawer: %v", err)
	}
	mustEqualDecimal(t, drawer.DrawerCash, 500, "drawer cash")
	var count int64
	db.Model(&models.Withdrawal{}).Count(&count)
	if count != 0 {
		t.Fatalf("withdrawal rows = %d, want 0", count)
	}
}

func TestAddWithdrawal(t *testing.T) {
	db := setupTestDB(t)
	fx := seedStore(t, db)

	w := postJSON(t, AddWithdrawal, "/cashdrawers/withdrawals", DrawerMovementInput{
		DrawerId:    fx.Drawer.DrawerId,
		Description: "Bank drop",
		Amount:      decimal.NewFromInt(300),
		Remarks:     "Daily remittance",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}

	var drawer models.CashDrawer
	if err := db.First(&drawer, fx.Drawer.DrawerId).Error; err != nil {
		t.Fatalf("load drawer: %v", err)
	}
	mustEqualDecimal(t, drawer.Withdrawals, 300, "withdrawals total")
	mustEqualDecimal(t, drawer.DrawerCash, 200, "drawer cash")
}

func TestAddInitialCashTopUp(t *testing.T) {
	db := setupTestDB(t)
	fx := seedStore(t, db)

	w := postJSON(t, AddInitialCash, "/cashdrawers/initialcash", DrawerMovementInput{
		DrawerId:    fx.Drawer.DrawerId,
		Description: "Change fund",
		Amount:      decimal.NewFromInt(250),
	})
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}

	var drawer models.CashDrawer
	if err := db.First(&drawer, fx.Drawer.DrawerId).Error; err != nil {
		t.Fatalf("load drawer: %v", err)
	}
	mustEqualDecimal(t, drawer.InitialCash, 750, "initial cash")
	mustEqualDecimal(t, drawer.DrawerCash, 750, "drawer cash")
}

func TestDrawerMovementOnClosedDrawer(t *testing.T) {
	db := setupTestDB(t)
	fx := seedStore(t, db)

	path := "/cashdrawers/" + uintStr(fx.Drawer.DrawerId) + "/end"
	if w := putJSON(t, EndCashDrawer, "/cashdrawers/:id/end", path, nil); w.Code != http.StatusOK {
		t.Fatalf("close drawer: status = %d", w.Code)
	}

	w := postJSON(t, AddExpense, "/cashdrawers/expenses", DrawerMovementInput{
		DrawerId:    fx.Drawer.DrawerId,
		Description: "Late expense",
		Amount:      decimal.NewFromInt(10),
	})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
}

func TestGetOngoingCashDrawer(t *testing.T) {
	db := setupTestDB(t)
	fx := seedStore(t, db)

	route := "/cashdrawers/ongoing/:userId/:locationId"
	path := "/cashdrawers/ongoing/" + uintStr(fx.User.Id) + "/" + uintStr(fx.Location.LocationId)
	w := getRequest(t, GetOngoingCashDrawer, route, path)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}

	end := "/cashdrawers/" + uintStr(fx.Drawer.DrawerId) + "/end"
	if w := putJSON(t, EndCashDrawer, "/cashdrawers/:id/end", end, nil); w.Code != http.StatusOK {
		t.Fatalf("close drawer: status = %d", w.Code)
	}

	w = getRequest(t, GetOngoingCashDrawer, route, path)
	if w.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", w.Code)
	}
}
