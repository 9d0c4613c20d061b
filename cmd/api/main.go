package main

import (
	"os"
	"os/signal"
	"syscall"

	"go-flowcash/internal/handler"
	"go-flowcash/internal/middleware"
	"go-flowcash/internal/model"
	"go-flowcash/internal/repository"
	"go-flowcash/internal/service"
	"go-flowcash/internal/ws"
	"go-flowcash/pkg/database"
	"go-flowcash/pkg/logger"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"
	"gorm.io/gorm"
)

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func main() {
	log := logger.Get()

	// 1. Load Env
	if err := godotenv.Load(); err != nil {
		log.Warn(".env file not found")
	}

	// 2. Setup Databases. Products, orders and users share one file; the
	// cashflow ledger lives in its own file with the aggregate views.
	productsDB := database.Connect(envOr("PRODUCTS_DB_PATH", "products.db"))
	cashflowDB := database.Connect(envOr("CASHFLOW_DB_PATH", "cashflow.db"))

	if err := productsDB.AutoMigrate(&model.Product{}, &model.SaleOrder{}, &model.User{}); err != nil {
		log.WithError(err).Fatal("products migration failed")
	}
	if err := cashflowDB.AutoMigrate(&model.CashflowEntry{}); err != nil {
		log.WithError(err).Fatal("cashflow migration failed")
	}
	if err := database.MigrateCashflowViews(cashflowDB); err != nil {
		log.WithError(err).Fatal("cashflow view migration failed")
	}

	// 3. Seed the operator account
	seedAdmin(productsDB)

	// 4. Setup WebSocket Hub
	wsHub := ws.NewHub()
	go wsHub.Run()

	// 5. Dependency Injection (Wiring Layers)
	productRepo := repository.NewProductRepo(productsDB)
	orderRepo := repository.NewOrderRepo(productsDB)
	userRepo := repository.NewUserRepo(productsDB)
	cashflowRepo := repository.NewCashflowRepo(cashflowDB)

	invService := service.NewInventoryService(productRepo, orderRepo, productsDB, wsHub)
	cashService := service.NewCashflowService(cashflowRepo, wsHub)
	reportService := service.NewReportService(cashflowRepo, productRepo, orderRepo, cashflowDB)
	dashService := service.NewDashboardService(productRepo, orderRepo)
	authService := service.NewAuthService(userRepo)

	invHandler := handler.NewInventoryHandler(invService)
	cashHandler := handler.NewCashflowHandler(cashService)
	reportHandler := handler.NewReportHandler(reportService)
	dashHandler := handler.NewDashboardHandler(dashService)
	authHandler := handler.NewAuthHandler(authService)

	// 6. Setup Fiber
	app := fiber.New(fiber.Config{
		AppName: "FlowCash v1.0",
	})

	app.Use(fiberlogger.New())
	app.Use(recover.New())
	app.Use(cors.New())

	// 7. Routes
	api := app.Group("/api/v1")

	// ============ PUBLIC ROUTES ============
	auth := api.Group("/auth")
	auth.Post("/login", authHandler.Login)

	// ============ PROTECTED ROUTES ============
	protected := api.Group("", middleware.RequireAuth(userRepo))

	// Dashboard
	protected.Get("/dashboard/stats", dashHandler.GetStats)
	protected.Get("/dashboard/sales-movement", dashHandler.GetSalesMovement)

	// Products
	protected.Get("/products", invHandler.GetProducts)
	protected.Get("/products/export/csv", reportHandler.ExportProductsCSV)
	protected.Post("/products", invHandler.CreateProduct)
	protected.Post("/products/reset", invHandler.Reset)
	protected.Post("/products/:id/replenish", invHandler.Replenish)
	protected.Put("/products/:id", invHandler.UpdateProduct)
	protected.Delete("/products/:id", invHandler.DeleteProduct)

	// Sales
	protected.Post("/sales", invHandler.Sell)
	protected.Get("/sales/:id/receipt", reportHandler.Receipt)
	protected.Get("/orders", invHandler.GetOrders)
	protected.Get("/orders/:id", invHandler.GetOrder)

	// Cashflow
	protected.Get("/cashflow", cashHandler.GetEntries)
	protected.Post("/cashflow", cashHandler.Record)
	protected.Post("/cashflow/reset", cashHandler.Reset)
	protected.Put("/cashflow/:id", cashHandler.Update)
	protected.Delete("/cashflow/:id", cashHandler.Delete)

	// Reports and exports
	protected.Get("/reports/aggregates", reportHandler.GetAggregates)
	protected.Post("/reports/rebuild-views", reportHandler.RebuildViews)
	protected.Get("/reports/export/csv", reportHandler.ExportCSV)
	protected.Get("/reports/export/xlsx", reportHandler.ExportXLSX)
	protected.Get("/reports/export/html", reportHandler.FinancialReport)

	// WebSocket Route
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
		port := envOr("PORT", "3000")
		if err := app.Listen(":" + port); err != nil {
			log.WithError(err).Fatal("server stopped")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")
	if err := app.Shutdown(); err != nil {
		log.WithError(err).Fatal("Server forced to shutdown")
	}

	log.Info("Server exited")
}

// seedAdmin creates the single operator account on first run.
func seedAdmin(db *gorm.DB) {
	log := logger.Get()
	userRepo := repository.NewUserRepo(db)

	email := envOr("ADMIN_EMAIL", "admin@example.com")
	if _, err := userRepo.FindByEmail(email); err == nil {
		return
	}

	admin := &model.User{
		Email:    email,
		FullName: envOr("ADMIN_NAME", "Administrator"),
	}
	if err := admin.SetPassword(envOr("ADMIN_PASSWORD", "admin123")); err != nil {
		log.WithError(err).Warn("Failed to hash admin password")
		return
	}

	if err := userRepo.Create(admin); err != nil {
		log.WithError(err).Warn("Failed to create admin user")
		return
	}
	log.WithField("email", email).Info("Admin user created")
}
