package controller

import (
	"net/http"
	"testing"

	"github.com/code-with-geo/POSServer/models"
)

func TestCreateDiscountDefaultsToActive(t *testing.T) {
	db := setupTestDB(t)

	w := postJSON(t, CreateDiscount, "/discounts", map[string]interface{}{
		"name":       "PWD",
		"percentage": 20,
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}

	var discount models.Discount
	if err := db.First(&discount).Error; err != nil {
		t.Fatalf("load discount: %v", err)
	}
	if discount.Status != 1 {
		t.Fatalf("stored status = %d, want 1", discount.Status)
	}
}

func TestCreateDiscountInactiveStatusPersists(t *testing.T) {
	db := setupTestDB(t)

	w := postJSON(t, CreateDiscount, "/discounts", map[string]interface{}{
		"name":       "Expired Promo",
		"percentage": 50,
		"status":     0,
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}

	var discount models.Discount
	if err := db.First(&discount).Error; err != nil {
		t.Fatalf("load discount: %v", err)
	}
	if discount.Status != 0 {
		t.Fatalf("stored status = %d, want 0 (inactive)", discount.Status)
	}
}

func TestInactiveStatusSurvivesDirectCreate(t *testing.T) {
	db := setupTestDB(t)

	if err := db.Create(&models.Discount{Name: "Expired Promo", Percentage: 50, Status: 0}).Error; err != nil {
		t.Fatalf("create discount: %v", err)
	}
	var discount models.Discount
	if err := db.First(&discount).Error; err != nil {
		t.Fatalf("load discount: %v", err)
	}
	if discount.Status != 0 {
		t.Fatalf("stored discount status = %d, want 0", discount.Status)
	}

	if err := db.Create(&models.Product{Barcode: "4800000000042", Name: "Delisted Item", Status: 0}).Error; err != nil {
		t.Fatalf("create product: %v", err)
	}
	var product models.Product
	if err := db.First(&product).Error; err != nil {
		t.Fatalf("load product: %v", err)
	}
	if product.Status != 0 {
		t.Fatalf("stored product status = %d, want 0", product.Status)
	}
}
