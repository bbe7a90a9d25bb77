package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"retail-pos-api/internal/handler"
	"retail-pos-api/internal/middleware"
	"retail-pos-api/internal/model"
	"retail-pos-api/internal/repository"
	"retail-pos-api/internal/service"
	"retail-pos-api/internal/ws"
	"retail-pos-api/pkg/cache"
	"retail-pos-api/pkg/database"
	"retail-pos-api/pkg/mailer"
	"retail-pos-api/pkg/metrics"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"
)

func main() {
	// 1. Load Env
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found")
	}

	appName := os.Getenv("APP_NAME")
	if appName == "" {
		appName = "RetailManagement Store"
	}

	// 2. Setup Database
	db := database.ConnectDB()
	db.AutoMigrate(
		&model.User{},
		&model.Product{},
		&model.Customer{},
		&model.Branch{},
		&model.StoreSettings{},
		&model.Sale{},
		&model.SaleItem{},
	)

	// 3. Setup WebSocket Hub
	wsHub := ws.NewHub()
	go wsHub.Run()

	// 4. Optional report cache + metrics
	reportCache := cache.NewReportCache(os.Getenv("REDIS_ADDR"), time.Minute)
	defer reportCache.Close()
	checkoutMetrics := metrics.NewCheckoutMetrics()

	// 5. Dependency Injection (Wiring Layers)
	productRepo := repository.NewProductRepo(db)
	customerRepo := repository.NewCustomerRepo(db)
	saleRepo := repository.NewSaleRepo(db)
	branchRepo := repository.NewBranchRepo(db)
	settingsRepo := repository.NewSettingsRepo(db)
	userRepo := repository.NewUserRepo(db)
	reportRepo := repository.NewReportRepo(db)

	alerter := service.NewStockAlerter(settingsRepo, mailer.NewLogMailer(), wsHub, checkoutMetrics, appName)

	checkoutService := service.NewCheckoutService(productRepo, customerRepo, saleRepo, db, alerter, wsHub, checkoutMetrics)
	catalogService := service.NewCatalogService(productRepo, alerter, wsHub)
	customerService := service.NewCustomerService(customerRepo)
	branchService := service.NewBranchService(branchRepo)
	settingsService := service.NewSettingsService(settingsRepo)
	reportService := service.NewReportService(reportRepo, reportCache)
	authService := service.NewAuthService(userRepo)

	saleHandler := handler.NewSaleHandler(checkoutService)
	productHandler := handler.NewProductHandler(catalogService)
	customerHandler := handler.NewCustomerHandler(customerService)
	branchHandler := handler.NewBranchHandler(branchService)
	settingsHandler := handler.NewSettingsHandler(settingsService)
	reportHandler := handler.NewReportHandler(reportService)
	authHandler := handler.NewAuthHandler(authService)

	// 6. Setup Fiber
	app := fiber.New(fiber.Config{
		AppName: appName,
	})

	app.Use(logger.New())  // Request logging
	app.Use(recover.New()) // Panic recovery
	app.Use(cors.New())    // CORS

	app.Get("/metrics", adaptor.HTTPHandler(metrics.Handler()))

	// 7. Routes
	api := app.Group("/api/v1")

	// Public
	auth := api.Group("/auth")
	auth.Post("/register", authHandler.Register)
	auth.Post("/login", authHandler.Login)

	// All routes below require authentication
	protected := api.Group("", middleware.RequireAuth(userRepo))

	// Catalog
	protected.Get("/products", productHandler.GetProducts)
	protected.Get("/products/:id", productHandler.GetProduct)
	protected.Post("/products", productHandler.CreateProduct)
	protected.Put("/products/:id", productHandler.UpdateProduct)
	protected.Delete("/products/:id", productHandler.DeleteProduct)

	// Customers
	protected.Get("/customers", customerHandler.GetCustomers)
	protected.Get("/customers/:id", customerHandler.GetCustomer)
	protected.Post("/customers", customerHandler.CreateCustomer)
	protected.Put("/customers/:id", customerHandler.UpdateCustomer)
	protected.Delete("/customers/:id", customerHandler.DeleteCustomer)

	// Branches
	protected.Get("/branches", branchHandler.GetBranches)
	protected.Post("/branches", branchHandler.CreateBranch)
	protected.Put("/branches/:id", branchHandler.UpdateBranch)
	protected.Delete("/branches/:id", branchHandler.DeleteBranch)

	// Store settings
	protected.Get("/settings", settingsHandler.GetSettings)
	protected.Put("/settings", settingsHandler.UpdateSettings)

	// Checkout / invoices
	protected.Post("/sales", saleHandler.CreateSale)
	protected.Get("/sales", saleHandler.GetSales)
	protected.Get("/sales/:id", saleHandler.GetSale)

	// Reports
	protected.Get("/reports/stats", reportHandler.GetDashboardStats)
	protected.Get("/reports/sales", reportHandler.GetSalesByPeriod)
	protected.Get("/reports/inventory", reportHandler.GetInventoryByCategory)
	protected.Get("/reports/top-products", reportHandler.GetTopSellingProducts)
	protected.Get("/reports/customer-growth", reportHandler.GetCustomerGrowth)
	protected.Get("/reports/profit-loss", reportHandler.GetProfitLoss)
	protected.Get("/reports/aov", reportHandler.GetAverageOrderValue)
	protected.Get("/reports/sales-distribution", reportHandler.GetSalesAmountDistribution)
	protected.Get("/reports/pareto", reportHandler.GetProductSalesPareto)

	// WebSocket route
	app.Use("/ws", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return c.SendStatus(fiber.StatusUpgradeRequired)
	})
	app.Get("/ws", websocket.New(func(c *websocket.Conn) {
		wsHub.Register <- c
		defer func() { wsHub.Unregister <- c }()

		for {
			// Keep alive loop
			if _, _, err := c.ReadMessage(); err != nil {
				break
			}
		}
	}))

	// 8. Graceful Shutdown
	go func() {
		port := os.Getenv("PORT")
		if port == "" {
			port = "3000"
		}
		if err := app.Listen(":" + port); err != nil {
			log.Panic(err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")
	if err := app.Shutdown(); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	log.Println("Server exited")
}
