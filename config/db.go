package config

import (
	"fmt"
	"log"
	"os"

	"github.com/code-with-geo/POSServer/models"
	"github.com/joho/godotenv"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

func Connection() {
	err_env := godotenv.Load()
	if err_env != nil {
		log.Println("Error Loading .env file")
	}
	dbHost := os.Getenv("DB_HOST")
	dbPort := os.Getenv("DB_PORT")
	dbUser := os.Getenv("DB_USER")
	dbPass := os.Getenv("DB_PASSWORD")
	dbName := os.Getenv("DB_NAME")
	dsn := fmt.Sprintf("postgres://%s:%s@%s:%s/%s", dbUser, dbPass, dbHost, dbPort, dbName)
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})

	if err != nil {
		panic(err)
	}
	if err := Migrate(db); err != nil {
		panic(err)
	}
	DB = db
}

// Migrate creates or updates the full schema. The test setup runs it against
// an in-memory sqlite database.
func Migrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		&models.Location{},
		&models.User{},
		&models.Category{},
		&models.Supplier{},
		&models.Product{},
		&models.Inventory{},
		&models.Discount{},
		&models.Customer{},
		&models.Order{},
		&models.OrderProduct{},
		&models.CashDrawer{},
		&models.Expense{},
		&models.Withdrawal{},
		&models.InitialCash{},
		&models.StockIn{},
		&models.StockAdjustment{},
	)
	if err != nil {
		return err
	}

	// Partial unique index backing the one-open-drawer-per-user-and-location
	// rule. Postgres only; sqlite test databases rely on the in-transaction
	// check alone.
	if db.Dialector.Name() == "postgres" {
		return db.Exec(
			`CREATE UNIQUE INDEX IF NOT EXISTS idx_open_drawer
			 ON cash_drawers (user_id, location_id) WHERE time_end IS NULL`,
		).Error
	}
	return nil
}
