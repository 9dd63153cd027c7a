package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go-inventory-reorder/internal/handler"
	"go-inventory-reorder/internal/health"
	"go-inventory-reorder/internal/metrics"
	"go-inventory-reorder/internal/middleware"
	"go-inventory-reorder/internal/model"
	"go-inventory-reorder/internal/repository"
	"go-inventory-reorder/internal/service"
	"go-inventory-reorder/internal/ws"
	"go-inventory-reorder/pkg/config"
	"go-inventory-reorder/pkg/database"
	"go-inventory-reorder/pkg/jwt"
	"go-inventory-reorder/pkg/logger"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/cors"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"
)

func main() {
	// 1. Load Env
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel})

	// 2. Setup Database
	db, err := database.ConnectDB(cfg.DB, log)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	if err := repository.AutoMigrate(db); err != nil {
		log.Fatal().Err(err).Msg("failed to migrate schema")
	}
	sqlDB, err := db.DB()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to get sql.DB")
	}
	defer sqlDB.Close()

	// 3. Dependency Injection (Wiring Layers)
	repos := repository.NewRepositories(db)
	txRunner := repository.NewTxRunner(db)
	tokens := jwt.NewManager(cfg.JWT.Secret, time.Duration(cfg.JWT.Expiration)*time.Minute, cfg.JWT.Issuer)

	wsHub := ws.NewHub()
	go wsHub.Run()

	engine := service.NewReorderEngine(log)
	invService := service.NewInventoryService(repos, txRunner, engine, wsHub, log)
	vendorService := service.NewVendorService(repos.Vendors, wsHub)
	orderService := service.NewOrderRequestService(repos, txRunner, wsHub)
	dashService := service.NewDashboardService(repos.Transactions, repos.OrderRequests)
	authService := service.NewAuthService(repos.Users, tokens)
	userService := service.NewUserService(repos.Users)

	seedAdmin(cfg, userService, log)

	invHandler := handler.NewInventoryHandler(invService)
	vendorHandler := handler.NewVendorHandler(vendorService)
	orderHandler := handler.NewOrderRequestHandler(orderService)
	dashHandler := handler.NewDashboardHandler(dashService)
	authHandler := handler.NewAuthHandler(authService)
	userHandler := handler.NewUserHandler(userService)

	healthCheck, err := health.NewHealthHandler(cfg, sqlDB)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to create health handler")
	}

	// 4. Setup Fiber
	app := fiber.New(fiber.Config{
		AppName: cfg.App.Name,
	})

	app.Use(fiberlogger.New())
	app.Use(recover.New())
	app.Use(cors.New())
	app.Use(metrics.Middleware())

	app.Get("/health", adaptor.HTTPHandlerFunc(healthCheck.HandlerFunc))
	app.Get("/metrics", metrics.Handler())

	// 5. Routes
	api := app.Group("/api/v1")

	// ============ PUBLIC ROUTES ============
	auth := api.Group("/auth")
	auth.Post("/login", authHandler.Login)
	auth.Post("/validate-token", authHandler.ValidateToken)

	// ============ PROTECTED ROUTES ============
	protected := api.Group("", middleware.RequireAuth(tokens, repos.Users))

	protected.Get("/dashboard/stats", dashHandler.GetDashboardStats)
	protected.Get("/dashboard/stock-movement", dashHandler.GetStockMovement)

	protected.Get("/products", invHandler.GetProducts)
	protected.Get("/products/low-stock", invHandler.GetLowStockProducts)
	protected.Get("/products/:id", invHandler.GetProduct)
	protected.Get("/products/:id/transactions", invHandler.GetProductTransactions)
	protected.Post("/products", invHandler.CreateProduct)
	protected.Put("/products/:id", invHandler.UpdateProduct)

	protected.Get("/vendors", vendorHandler.GetVendors)
	protected.Get("/vendors/:id", vendorHandler.GetVendor)
	protected.Post("/vendors", vendorHandler.CreateVendor)
	protected.Put("/vendors/:id", vendorHandler.UpdateVendor)

	protected.Get("/transactions", invHandler.GetTransactions)
	protected.Get("/transactions/:id", invHandler.GetTransaction)
	protected.Post("/transactions", invHandler.CreateTransaction)

	protected.Get("/order-requests", orderHandler.GetOrderRequests)
	protected.Get("/order-requests/:id", orderHandler.GetOrderRequest)
	protected.Post("/order-requests", orderHandler.CreateOrderRequest)
	protected.Put("/order-requests/:id", orderHandler.UpdateOrderRequest)

	// User management is admin only
	users := protected.Group("/users", middleware.RequireRole(model.RoleAdmin))
	users.Get("/", userHandler.GetUsers)
	users.Post("/", userHandler.CreateUser)

	// WebSocket Route
	app.Use("/ws", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return c.SendStatus(fiber.StatusUpgradeRequired)
	})
	app.Get("/ws", websocket.New(wsHub.Serve))

	// 6. Graceful Shutdown
	go func() {
		log.Info().Str("addr", cfg.HTTP.Addr()).Msg("http server listening")
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Fatal().Err(err).Msg("http server stopped")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server")
	if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
		log.Error().Err(err).Msg("server forced to shutdown")
	}
	log.Info().Msg("server exited")
}

// seedAdmin creates the bootstrap admin from ADMIN_USERNAME / ADMIN_PASSWORD
// when that account does not exist yet.
func seedAdmin(cfg *config.Config, users service.UserService, log *logger.Logger) {
	if cfg.Admin.Password == "" {
		log.Warn().Msg("ADMIN_PASSWORD not set, skipping admin bootstrap")
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	created, err := users.EnsureAdmin(ctx, cfg.Admin.Username, cfg.Admin.Password)
	if err != nil {
		log.Error().Err(err).Str("username", cfg.Admin.Username).Msg("failed to bootstrap admin user")
		return
	}
	if created {
		log.Info().Str("username", cfg.Admin.Username).Msg("admin user created")
	}
}
