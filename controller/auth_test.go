package controller

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/code-with-geo/POSServer/models"
	"golang.org/x/crypto/bcrypt"
)

func TestRegisterAndLogin(t *testing.T) {
	db := setupTestDB(t)
	t.Setenv("JWT_SECRET", "test-secret")

	w := postJSON(t, Register, "/users/register", RegisterInput{
		Username: "admin",
		Password: "s3cret!",
		Name:     "Admin User",
		Status:   1,
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("register: status = %d, body = %s", w.Code, w.Body.String())
	}

	var user models.User
	if err := db.Where("username = ?", "admin").First(&user).Error; err != nil {
		t.Fatalf("load user: %v", err)
	}
	if user.PasswordHash == "s3cret!" {
		t.Fatal("password stored in plain text")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("s3cret!")); err != nil {
		t.Fatalf("stored hash does not verify: %v", err)
	}

	w = postJSON(t, Login, "/users/login", LoginInput{Username: "admin", Password: "s3cret!"})
	if w.Code != http.StatusOK {
		t.Fatalf("login: status = %d, body = %s", w.Code, w.Body.String())
	}
	var resp map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode login response: %v", err)
	}
	if token, _ := resp["token"].(string); token == "" {
		t.Fatal("login response missing token")
	}
}

func TestRegisterDisabledUser(t *testing.T) {
	db := setupTestDB(t)

	w := postJSON(t, Register, "/users/register", map[string]interface{}{
		"username": "onleave",
		"password": "s3cret!",
		"status":   0,
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}

	var user models.User
	if err := db.Where("username = ?", "onleave").First(&user).Error; err != nil {
		t.Fatalf("load user: %v", err)
	}
	if user.Status != 0 {
		t.Fatalf("stored status = %d, want 0", user.Status)
	}
}

func TestRegisterDuplicateUsername(t *testing.T) {
	setupTestDB(t)

	input := RegisterInput{Username: "admin", Password: "s3cret!", Status: 1}
	if w := postJSON(t, Register, "/users/register", input); w.Code != http.StatusCreated {
		t.Fatalf("first register: status = %d", w.Code)
	}
	w := postJSON(t, Register, "/users/register", input)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("duplicate register: status = %d, want 400", w.Code)
	}
}

func TestLoginWrongPassword(t *testing.T) {
	setupTestDB(t)
	t.Setenv("JWT_SECRET", "test-secret")

	if w := postJSON(t, Register, "/users/register", RegisterInput{
		Username: "admin", Password: "s3cret!", Status: 1,
	}); w.Code != http.StatusCreated {
		t.Fatalf("register: status = %d", w.Code)
	}

	w := postJSON(t, Login, "/users/login", LoginInput{Username: "admin", Password: "wrong"})
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", w.Code)
	}
}

func TestLoginUnknownUser(t *testing.T) {
	setupTestDB(t)

	w := postJSON(t, Login, "/users/login", LoginInput{Username: "ghost", Password: "whatever"})
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", w.Code)
	}
}
