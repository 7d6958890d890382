package controller

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/code-with-geo/POSServer/config"
	"github.com/code-with-geo/POSServer/models"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// setupTestDB points config.DB at a fresh in-memory database named after the
// test, so tests never share state. Redis is left nil; every Redis call site
// is guarded.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	if err := config.Migrate(db); err != nil {
		t.Fatalf("migrate test db: %v", err)
	}

	config.DB = db
	config.RedisClient = nil
	return db
}

func postJSON(t *testing.T, handler gin.HandlerFunc, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	payload, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("marshal request: %v", err)
	}
	router := gin.New()
	router.POST(path, handler)

	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func putJSON(t *testing.T, handler gin.HandlerFunc, route, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	payload, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("marshal request: %v", err)
	}
	router := gin.New()
	router.PUT(route, handler)

	req := httptest.NewRequest(http.MethodPut, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func getRequest(t *testing.T, handler gin.HandlerFunc, route, path string) *httptest.ResponseRecorder {
	t.Helper()

	router := gin.New()
	router.GET(route, handler)

	req := httptest.NewRequest(http.MethodGet, path, nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

// seedStore creates the minimum rows a settlement needs: a location, a
// cashier, an active product priced at 100 with 10 units on hand, a customer
// and an open drawer floated with 500.
type storeFixture struct {
	Location models.Location
	User     models.User
	Product  models.Product
	Customer models.Customer
	Drawer   models.CashDrawer
}

func seedStore(t *testing.T, db *gorm.DB) storeFixture {
	t.Helper()

	location := models.Location{Name: "Main Branch", Status: 1}
	if err := db.Create(&location).Error; err != nil {
		t.Fatalf("seed location: %v", err)
	}
	user := models.User{Username: "cashier1", Name: "Cashier One", PasswordHash: "x", Status: 1, LocationId: &location.LocationId}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("seed user: %v", err)
	}
	product := models.Product{
		Barcode:     "4800000000011",
		Name:        "Canned Tuna",
		RetailPrice: decimal.NewFromInt(100),
		Status:      1,
	}
	if err := db.Create(&product).Error; err != nil {
		t.Fatalf("seed product: %v", err)
	}
	inventory := models.Inventory{ProductId: &product.Id, LocationId: &location.LocationId, Units: 10, Status: 1}
	if err := db.Create(&inventory).Error; err != nil {
		t.Fatalf("seed inventory: %v", err)
	}
	customer := models.Customer{AccountId: 1001, FirstName: "Maria", LastName: "Santos", Status: 1}
	if err := db.Create(&customer).Error; err != nil {
		t.Fatalf("seed customer: %v", err)
	}
	drawer := models.CashDrawer{
		Cashier:     user.Name,
		UserId:      user.Id,
		LocationId:  location.LocationId,
		InitialCash: decimal.NewFromInt(500),
		DrawerCash:  decimal.NewFromInt(500),
		TimeStart:   time.Now(),
		Status:      1,
	}
	if err := db.Create(&drawer).Error; err != nil {
		t.Fatalf("seed drawer: %v", err)
	}
	return storeFixture{Location: location, User: user, Product: product, Customer: customer, Drawer: drawer}
}

func uintStr(v uint) string {
	return fmt.Sprintf("%d", v)
}

func mustEqualDecimal(t *testing.T, got decimal.Decimal, want int64, what string) {
	t.Helper()
	if !got.Equal(decimal.NewFromInt(want)) {
		t.Fatalf("%s = %s, want %d", what, got, want)
	}
}
