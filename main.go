package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/code-with-geo/POSServer/config"
	"github.com/code-with-geo/POSServer/controller"
	"github.com/code-with-geo/POSServer/middleware"
	"github.com/code-with-geo/POSServer/realtime"
	"github.com/gin-gonic/gin"
)

func init() {
	config.Connection()
	config.InitRedis()
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	hub := realtime.NewHub()
	go hub.Run(ctx)

	router := gin.Default()
	router.Use(middleware.CORSMiddleware())

	// Public routes
	router.POST("/users/login", middleware.RateLimiter(), controller.Login)
	router.POST("/users/register", middleware.RateLimiter(), controller.Register)
	router.POST("/locations/login", middleware.RateLimiter(), controller.LocationLogin)

	authorized := router.Group("/")
	authorized.Use(middleware.RequireAuth)
	{
		users := authorized.Group("/users")
		{
			users.GET("/", controller.GetUsers)
			users.GET("/:id", controller.GetUserByID)
			users.GET("/location/:locationId", controller.GetUsersByLocation)
			users.PUT("/:id", controller.UpdateUser)
			users.PUT("/:id/disable", controller.DisableUser)
		}

		products := authorized.Group("/products")
		{
			products.GET("/", controller.GetProducts)
			products.GET("/:id", controller.GetProductByID)
			products.POST("/", controller.CreateProduct)
			products.POST("/import", controller.ImportProducts)
			products.PUT("/:id", controller.UpdateProduct)
			products.PUT("/:id/disable", controller.DisableProduct)
			products.DELETE("/:id", controller.DeleteProduct)
		}

		categories := authorized.Group("/categories")
		{
			categories.GET("/", controller.GetCategories)
			categories.GET("/:id", controller.GetCategoryByID)
			categories.POST("/", controller.CreateCategory)
			categories.PUT("/:id", controller.UpdateCategory)
			categories.DELETE("/:id", controller.DeleteCategory)
		}

		inventory := authorized.Group("/inventory")
		{
			inventory.GET("/", controller.GetInventory)
			inventory.GET("/:id", controller.GetInventoryByID)
			inventory.GET("/pos", controller.GetPOSInventory)
			inventory.POST("/", controller.CreateInventory)
			inventory.PUT("/:id", controller.UpdateInventory)
			inventory.PUT("/:id/disable", controller.DisableInventory)
		}

		locations := authorized.Group("/locations")
		{
			locations.GET("/", controller.GetLocations)
			locations.GET("/:id", controller.GetLocationByID)
			locations.POST("/", controller.CreateLocation)
			locations.PUT("/:id", controller.UpdateLocation)
			locations.PUT("/:id/disable", controller.DisableLocation)
		}

		suppliers := authorized.Group("/suppliers")
		{
			suppliers.GET("/", controller.GetSuppliers)
			suppliers.GET("/:id", controller.GetSupplierByID)
			suppliers.POST("/", controller.CreateSupplier)
			suppliers.PUT("/:id", controller.UpdateSupplier)
			suppliers.PUT("/:id/disable", controller.DisableSupplier)
		}

		discounts := authorized.Group("/discounts")
		{
			discounts.GET("/", controller.GetDiscounts)
			discounts.GET("/:id", controller.GetDiscountByID)
			discounts.POST("/", controller.CreateDiscount)
			discounts.PUT("/:id", controller.UpdateDiscount)
			discounts.DELETE("/:id", controller.DeleteDiscount)
		}

		customers := authorized.Group("/customers")
		{
			customers.GET("/", controller.GetCustomers)
			customers.GET("/:id", controller.GetCustomerByID)
			customers.POST("/", controller.CreateCustomer)
			customers.PUT("/:id", controller.UpdateCustomer)
			customers.PUT("/:id/disable", controller.DisableCustomer)
		}

		orders := authorized.Group("/orders")
		{
			orders.GET("/", controller.GetOrders)
			orders.GET("/credit", controller.GetCreditOrders)
			orders.GET("/location/:locationId", controller.GetOrdersByLocation)
			orders.POST("/", controller.CreateOrder)
			orders.PUT("/settle", controller.SettleOrder)
		}

		cashDrawers := authorized.Group("/cashdrawers")
		{
			cashDrawers.GET("/", controller.GetCashDrawers)
			cashDrawers.GET("/:id", controller.GetCashDrawerByID)
			cashDrawers.GET("/ongoing/:userId/:locationId", controller.GetOngoingCashDrawer)
			cashDrawers.POST("/", controller.StartCashDrawer)
			cashDrawers.PUT("/:id/end", controller.EndCashDrawer)
			cashDrawers.POST("/expenses", controller.AddExpense)
			cashDrawers.POST("/withdrawals", controller.AddWithdrawal)
			cashDrawers.POST("/initialcash", controller.AddInitialCash)
		}

		stockIns := authorized.Group("/stockins")
		{
			stockIns.GET("/", controller.GetStockIns)
			stockIns.POST("/", controller.CreateStockIn)
			stockIns.POST("/import", controller.ImportStockIn)
		}

		stockAdjustments := authorized.Group("/stockadjustments")
		{
			stockAdjustments.GET("/", controller.GetStockAdjustments)
			stockAdjustments.POST("/", controller.AdjustInventory)
			stockAdjustments.POST("/import", controller.ImportStockAdjustments)
		}

		authorized.GET("/ws", hub.Serve)
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	srv := &http.Server{
		Addr:    ":" + port,
		Handler: router,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("listen: %v", err)
		}
	}()

	<-ctx.Done()
	log.Println("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("server shutdown: %v", err)
	}
}
