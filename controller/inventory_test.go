package controller

import (
	"net/http"
	"strings"
	"testing"

	"github.com/code-with-geo/POSServer/models"
	"github.com/shopspring/decimal"
)

func TestCreateInventoryRejectsDuplicatePair(t *testing.T) {
	db := setupTestDB(t)
	fx := seedStore(t, db)

	w := postJSON(t, CreateInventory, "/inventory", models.Inventory{
		ProductId:  &fx.Product.Id,
		LocationId: &fx.Location.LocationId,
		Units:      5,
	})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}

	var count int64
	db.Model(&models.Inventory{}).Count(&count)
	if count != 1 {
		t.Fatalf("inventory rows = %d, want 1", count)
	}
}

func TestGetInventoryFiltersByLocation(t *testing.T) {
	db := setupTestDB(t)
	fx := seedStore(t, db)

	other := models.Location{Name: "Annex Branch", Status: 1}
	if err := db.Create(&other).Error; err != nil {
		t.Fatalf("seed location: %v", err)
	}
	if err := db.Create(&models.Inventory{
		ProductId: &fx.Product.Id, LocationId: &other.LocationId, Units: 3, Status: 1,
	}).Error; err != nil {
		t.Fatalf("seed inventory: %v", err)
	}

	w := getRequest(t, GetInventory, "/inventory", "/inventory?location_id="+uintStr(other.LocationId))
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}
	if body := w.Body.String(); !strings.Contains(body, "Annex Branch") || strings.Contains(body, "Main Branch") {
		t.Fatalf("unexpected body: %s", body)
	}
}

func TestParseProductRow(t *testing.T) {
	row := []string{"4800000000035", "Soy Sauce", "500ml bottle", "18.50", "25.00", "22.00", "10", "1", "1", "1"}
	product, err := parseProductRow(row)
	if err != nil {
		t.Fatalf("parse valid row: %v", err)
	}
	if product.Barcode != "4800000000035" {
		t.Fatalf("barcode = %q", product.Barcode)
	}
	if !product.RetailPrice.Equal(decimal.RequireFromString("25.00")) {
		t.Fatalf("retail price = %s", product.RetailPrice)
	}
	if product.CategoryId == nil || *product.CategoryId != 1 {
		t.Fatal("category id not parsed")
	}

	if _, err := parseProductRow(row[:5]); err != errMissingColumns {
		t.Fatalf("short row err = %v, want errMissingColumns", err)
	}

	bad := append([]string(nil), row...)
	bad[4] = "not-a-price"
	if _, err := parseProductRow(bad); err != errBadPrice {
		t.Fatalf("bad price err = %v, want errBadPrice", err)
	}
}

func TestParseStockInRow(t *testing.T) {
	input, err := parseStockInRow([]string{"1", "2", "3", "40", "5"})
	if err != nil {
		t.Fatalf("parse valid row: %v", err)
	}
	if input.UserId != 1 || input.SupplierId != 2 || input.ProductId != 3 || input.Units != 40 || input.LocationId != 5 {
		t.Fatalf("parsed input = %+v", input)
	}

	if _, err := parseStockInRow([]string{"1", "2", "3", "0", "5"}); err != errBadNumber {
		t.Fatalf("zero units err = %v, want errBadNumber", err)
	}
}

func TestParseAdjustmentRow(t *testing.T) {
	input, err := parseAdjustmentRow([]string{"3", "7", "Cycle count", "1", "2", "1"})
	if err != nil {
		t.Fatalf("parse valid row: %v", err)
	}
	if input.ProductId != 3 || input.Units != 7 || input.Actions != AdjustmentRemove {
		t.Fatalf("parsed input = %+v", input)
	}

	if _, err := parseAdjustmentRow([]string{"3", "7", "Cycle count", "1", "2", "9"}); err != errBadNumber {
		t.Fatalf("bad action err = %v, want errBadNumber", err)
	}
}
