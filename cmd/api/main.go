package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"go-rental-console/internal/authz"
	"go-rental-console/internal/handler"
	"go-rental-console/internal/middleware"
	"go-rental-console/internal/model"
	"go-rental-console/internal/poller"
	"go-rental-console/internal/repository"
	"go-rental-console/internal/service"
	"go-rental-console/internal/ws"
	"go-rental-console/pkg/database"
	"go-rental-console/pkg/jwt"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"
	"gorm.io/gorm"
)

func main() {
	// 1. Load Env
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found")
	}

	// 2. Setup Database
	db := database.ConnectDB()
	db.AutoMigrate(
		&model.Role{},
		&model.Capability{},
		&model.Operator{},
		&model.OperatorAction{},
		&model.Console{},
		&model.Customer{},
		&model.Rental{},
		&model.ReviewableRequest{},
		&model.CalendarOverride{},
		&model.Settings{},
	)

	// 3. Seed default roles, capabilities, and owner account
	seedRolesCapabilitiesAndOwner(db)

	// 4. Setup WebSocket Hub
	wsHub := ws.NewHub()
	go wsHub.Run()

	// Root context owns every background ticker; cancelled on shutdown.
	rootCtx, rootCancel := context.WithCancel(context.Background())
	defer rootCancel()

	// 5. Dependency Injection (Wiring Layers)
	operatorRepo := repository.NewOperatorRepo(db)
	capabilityRepo := repository.NewCapabilityRepo(db)
	roleRepo := repository.NewRoleRepo(db)
	consoleRepo := repository.NewConsoleRepo(db)
	customerRepo := repository.NewCustomerRepo(db)
	rentalRepo := repository.NewRentalRepo(db)
	requestRepo := repository.NewRequestRepo(db)
	overrideRepo := repository.NewOverrideRepo(db)
	settingsRepo := repository.NewSettingsRepo(db)

	authService := service.NewAuthService(operatorRepo, wsHub)
	operatorService := service.NewOperatorService(operatorRepo, capabilityRepo, roleRepo)
	rentalService := service.NewRentalService(rentalRepo, consoleRepo, db, wsHub)
	reviewService := service.NewReviewService(requestRepo, customerRepo, operatorRepo, rentalService, wsHub)
	overrideService := service.NewOverrideService(overrideRepo)
	customerService := service.NewCustomerService(customerRepo, rentalRepo)
	statsService := service.NewStatsService(rentalRepo, consoleRepo, customerRepo)

	authHandler := handler.NewAuthHandler(authService)
	operatorHandler := handler.NewOperatorHandler(operatorService)
	consoleHandler := handler.NewConsoleHandler(consoleRepo)
	customerHandler := handler.NewCustomerHandler(customerService)
	rentalHandler := handler.NewRentalHandler(rentalService)
	requestHandler := handler.NewRequestHandler(reviewService)
	calendarHandler := handler.NewCalendarHandler(overrideService)
	statsHandler := handler.NewStatsHandler(statsService)
	settingsHandler := handler.NewSettingsHandler(settingsRepo)

	// Dashboard metric broadcast, shared by every session
	metricsTicker := poller.NewMetricsTicker(func(ctx context.Context) (interface{}, error) {
		return statsService.GetDashboardStats()
	}, wsHub, poller.MetricsInterval)
	go metricsTicker.Run(rootCtx)

	// 6. Setup Fiber
	app := fiber.New(fiber.Config{
		AppName: "Rental Console v1.0",
	})

	// Middleware
	app.Use(logger.New())  // Logging request
	app.Use(recover.New()) // Panic recovery
	app.Use(cors.New())    // CORS

	// 7. Routes
	api := app.Group("/api/v1")

	// ============ PUBLIC ROUTES ============
	auth := api.Group("/auth")
	auth.Post("/login", authHandler.Login)
	auth.Post("/reset-password", authHandler.ResetPassword)
	auth.Post("/validate-token", authHandler.ValidateToken)
	auth.Post("/heartbeat", middleware.RequireAuth(operatorRepo), authHandler.Heartbeat)

	// Customer-facing submission endpoints (no console session required)
	api.Post("/requests/rental/submit", requestHandler.SubmitRentalRequest)
	api.Post("/requests/kyc/submit", requestHandler.SubmitKYCRequest)

	// ============ PROTECTED ROUTES ============
	protected := api.Group("", middleware.RequireAuth(operatorRepo))

	// Dashboard (implicitly visible to every authenticated operator)
	protected.Get("/dashboard/stats", statsHandler.GetDashboardStats)

	// Console fleet
	protected.Get("/consoles", middleware.RequireCapability(model.CapabilityConsoles), consoleHandler.GetConsoles)
	protected.Post("/consoles", middleware.RequireCapability(model.CapabilityConsoles), consoleHandler.CreateConsole)
	protected.Put("/consoles/:id", middleware.RequireCapability(model.CapabilityConsoles), consoleHandler.UpdateConsole)

	// Review queues; each category is gated by its owning section
	protected.Get("/requests/:category", middleware.RequireCategoryAccess(), requestHandler.ListRequests)
	protected.Post("/requests/:category/action", middleware.RequireCategoryAccess(), requestHandler.ReviewRequest)

	// Rentals
	protected.Post("/rentals/manual", middleware.RequireCapability(model.CapabilityRentals), rentalHandler.StartManual)
	protected.Post("/rentals/terminate", middleware.RequireCapability(model.CapabilityRentals), rentalHandler.Terminate)
	protected.Get("/history", middleware.RequireCapability(model.CapabilityFinance), rentalHandler.History)

	// Customers
	protected.Get("/customers", middleware.RequireCapability(model.CapabilityUsers), customerHandler.GetCustomers)

	// Operator management
	protected.Get("/operators", middleware.RequireCapability(model.CapabilityUsers), operatorHandler.GetOperators)
	protected.Get("/operators/current", operatorHandler.GetCurrent)
	protected.Put("/operators/profile", operatorHandler.UpdateProfile)
	protected.Get("/operators/reports/daily", middleware.RequireCapability(model.CapabilityUsers), operatorHandler.DailyReport)
	protected.Post("/operators", middleware.RequireCapability(model.CapabilityUsers), operatorHandler.CreateOperator)
	protected.Put("/operators/:id", middleware.RequireCapability(model.CapabilityUsers), operatorHandler.UpdateOperator)
	protected.Delete("/operators/:id", middleware.RequireCapability(model.CapabilityUsers), operatorHandler.DeleteOperator)
	protected.Put("/operators/:id/capabilities", middleware.RequireCapability(model.CapabilityUsers), operatorHandler.UpdateCapabilities)

	// Calendar overrides and settings
	protected.Get("/calendar/overrides", middleware.RequireCapability(model.CapabilitySettings), calendarHandler.GetOverrides)
	protected.Post("/calendar/overrides", middleware.RequireCapability(model.CapabilitySettings), calendarHandler.SaveOverride)
	protected.Get("/calendar/check", calendarHandler.CheckDate)
	protected.Get("/settings", settingsHandler.GetSettings)
	protected.Put("/settings", middleware.RequireCapability(model.CapabilitySettings), settingsHandler.UpdateSettings)

	// Roles and capabilities (for the operator editor)
	protected.Get("/roles", func(c *fiber.Ctx) error {
		roles, err := roleRepo.FindAll()
		if err != nil {
			return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch roles"})
		}
		return c.JSON(roles)
	})
	protected.Get("/capabilities", func(c *fiber.Ctx) error {
		capabilities, err := capabilityRepo.FindAll()
		if err != nil {
			return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch capabilities"})
		}
		return c.JSON(capabilities)
	})

	// WebSocket Route. The token travels as a query parameter because
	// browsers cannot set headers on a websocket upgrade.
	app.Use("/ws", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return c.SendStatus(fiber.StatusUpgradeRequired)
	})
	app.Get("/ws", websocket.New(func(c *websocket.Conn) {
		claims, err := jwt.ValidateToken(c.Query("token"))
		if err != nil {
			c.Close()
			return
		}
		operator, err := operatorRepo.FindByID(claims.OperatorID)
		if err != nil || operator.TokenVersion != claims.TokenVersion {
			c.Close()
			return
		}

		// One poller per session, scoped to the sections this operator may
		// see. Its context dies with the session, so the timer never
		// outlives the connection.
		sessionCtx, sessionCancel := context.WithCancel(rootCtx)
		wsHub.Register <- &ws.Client{Conn: c, OperatorID: operator.ID, Cancel: sessionCancel}
		defer func() { wsHub.Unregister <- c }()

		pending := poller.New(
			requestRepo,
			ws.NewSessionSink(wsHub, c),
			authz.VisibleCategories(operator),
			poller.DefaultInterval,
		)
		go pending.Run(sessionCtx)

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
	rootCancel()
	if err := app.Shutdown(); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	log.Println("Server exited")
}

// seedRolesCapabilitiesAndOwner creates default roles, capabilities, and the
// owner account if they don't exist
func seedRolesCapabilitiesAndOwner(db *gorm.DB) {
	roleRepo := repository.NewRoleRepo(db)
	capabilityRepo := repository.NewCapabilityRepo(db)
	operatorRepo := repository.NewOperatorRepo(db)

	if err := roleRepo.SeedDefaults(); err != nil {
		log.Printf("Warning: Failed to seed roles: %v", err)
	}
	if err := capabilityRepo.SeedDefaults(); err != nil {
		log.Printf("Warning: Failed to seed capabilities: %v", err)
	}

	if _, err := operatorRepo.FindByUsername("admin"); err == nil {
		return
	}

	ownerRole, err := roleRepo.FindByCode(model.RoleOwner)
	if err != nil {
		log.Printf("Warning: owner role missing, skipping admin seed: %v", err)
		return
	}
	allCap, err := capabilityRepo.FindByCode(model.CapabilityAll)
	if err != nil {
		log.Printf("Warning: wildcard capability missing, skipping admin seed: %v", err)
		return
	}

	admin := &model.Operator{
		Username:     "admin",
		FullName:     "Business Owner",
		RoleID:       &ownerRole.ID,
		IsActive:     true,
		Capabilities: []model.Capability{*allCap},
	}
	admin.CreatedBy = "system"
	admin.UpdatedBy = "system"

	if err := admin.SetPassword("admin123"); err != nil {
		log.Printf("Warning: Failed to hash admin password: %v", err)
		return
	}

	if err := operatorRepo.Create(admin); err != nil {
		log.Printf("Warning: Failed to create admin account: %v", err)
	} else {
		log.Println("Owner account created: admin / admin123")
	}
}
