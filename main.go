// main.go
package main

import (
	"log"
	"os"
	"time"

	"leetgrind/database"
	"leetgrind/handlers"
	"leetgrind/middleware"
	"leetgrind/services"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found, using system environment variables")
	}

	// Validate critical environment variables
	validateEnvironment()

	// Initialize database and optional cache
	database.InitDB()
	database.InitRedis()
	defer database.CloseRedis()

	// Wire services and handlers
	handlers.InitHandlers()

	// Start the periodic sync
	services.InitSyncScheduler(handlers.SyncServiceRef())
	services.GetSyncScheduler().Start()
	defer services.GetSyncScheduler().Stop()

	// Create Fiber app
	app := fiber.New(fiber.Config{
		ErrorHandler: customErrorHandler,
		BodyLimit:    1 * 1024 * 1024, // 1MB
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	})

	// Global middleware
	app.Use(recover.New())
	app.Use(logger.New(logger.Config{
		Format: "[${time}] ${status} - ${method} ${path} (${latency})\n",
	}))

	// CORS configuration
	corsOrigins := os.Getenv("CORS_ORIGINS")
	if corsOrigins == "" {
		corsOrigins = "http://localhost:3000"
	}

	app.Use(cors.New(cors.Config{
		AllowOrigins:     corsOrigins,
		AllowMethods:     "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowCredentials: true,
	}))

	// Apply rate limiting to all routes
	app.Use(middleware.RateLimitMiddleware())

	// API Routes
	api := app.Group("/api")

	// Rooms
	api.Post("/rooms", handlers.CreateRoom)
	api.Get("/rooms/:code", handlers.GetRoom)
	api.Post("/rooms/:code/verify", middleware.VerifyRateLimitMiddleware(), handlers.VerifyRoom)
	api.Put("/rooms/:code", middleware.RoomAuthMiddleware, handlers.UpdateRoom)

	// Room members
	api.Get("/rooms/:code/users", handlers.ListRoomMembers)
	api.Post("/rooms/:code/users", middleware.RoomAuthMiddleware, handlers.RegisterRoomMember)
	api.Delete("/rooms/:code/users/:id", middleware.RoomAuthMiddleware, handlers.DeleteRoomMember)
	api.Get("/rooms/:code/leaderboard", handlers.GetRoomLeaderboard)

	// Tracked users
	api.Post("/users", handlers.RegisterUser)
	api.Get("/users/:id/today", handlers.GetTodayStatus)
	api.Post("/users/:id/check", handlers.CheckUserNow)
	api.Get("/users/:id/streaks", handlers.GetUserStreaks)
	api.Get("/users/:id/history", handlers.GetUserHistory)

	// Manual sync trigger (also exposed for cron-style invokers)
	api.Post("/sync", handlers.TriggerSync)

	// Live room feed
	app.Use("/ws", handlers.LiveFeedUpgrade())
	app.Get("/ws/rooms/:code", handlers.LiveFeed())

	// Health check endpoint
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":    "healthy",
			"timestamp": time.Now().Unix(),
			"version":   "1.0.0",
		})
	})

	port := os.Getenv("PORT")
	if port == "" {
		port = "3000"
	}

	log.Printf("🚀 HTTP server starting on port %s", port)
	log.Printf("📊 Environment: %s", getEnv("APP_ENV", "development"))
	log.Printf("🔄 Sync interval: %s minutes", getEnv("SYNC_INTERVAL_MINUTES", "10"))
	log.Printf("🌍 Default timezone: %s", services.DefaultTimezone())

	if err := app.Listen(":" + port); err != nil {
		log.Fatal("Failed to start HTTP server:", err)
	}
}

// validateEnvironment checks for required environment variables
func validateEnvironment() {
	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		log.Fatal("FATAL: JWT_SECRET environment variable must be set. Generate one with: openssl rand -base64 64")
	}
	if len(jwtSecret) < 32 {
		log.Fatal("FATAL: JWT_SECRET must be at least 32 characters long")
	}

	if tz := os.Getenv("DEFAULT_TIMEZONE"); tz != "" {
		if _, err := services.NewTimezoneService(nil).Today(tz); err != nil {
			log.Fatalf("FATAL: DEFAULT_TIMEZONE %q is not a valid IANA zone", tz)
		}
	}
}

func customErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := "Internal Server Error"

	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
		message = e.Message
	}

	// Don't expose internal errors in production
	if os.Getenv("APP_ENV") == "production" && code == 500 {
		message = "An error occurred. Please try again later."
	}

	return c.Status(code).JSON(fiber.Map{
		"success": false,
		"error":   message,
	})
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}
