package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"

	"github.com/axlerator/axlerator-backend/database"
	"github.com/axlerator/axlerator-backend/internal/handlers"
	"github.com/axlerator/axlerator-backend/internal/jobs"
	"github.com/axlerator/axlerator-backend/internal/middleware"
	"github.com/axlerator/axlerator-backend/internal/models"
	"github.com/axlerator/axlerator-backend/internal/routes"
	"github.com/axlerator/axlerator-backend/internal/services"
	"github.com/axlerator/axlerator-backend/internal/storage"
)

const version = "1.0.0"

func main() {
	// Load .env file for local development
	if os.Getenv("INSTANCE_CONNECTION_NAME") == "" {
		if err := godotenv.Load(".env"); err != nil {
			log.Println("⚠️  No .env file found - checking environment variables")
		}
	}

	// Initialize storage: PostgreSQL when reachable, seeded in-memory
	// catalog otherwise.
	var store storage.Store
	storageType := "PostgreSQL Database"

	if os.Getenv("USE_MEMORY_STORE") == "true" {
		log.Println("⚠️  Using in-memory storage (not for production!)")
		store = storage.NewSeededMemoryStore()
		storageType = "In-Memory (Seeded)"
	} else {
		log.Println("📦 Connecting to PostgreSQL database...")
		if err := database.Connect(); err != nil {
			log.Printf("⚠️  Database unavailable (%v) - falling back to seeded in-memory catalog", err)
			store = storage.NewSeededMemoryStore()
			storageType = "In-Memory (Fallback)"
		} else {
			log.Println("🔄 Running database migrations...")
			err := database.DB.AutoMigrate(
				&models.Truck{},
				&models.Inquiry{},
				&models.Valuation{},
				&models.Submission{},
				&models.OTP{},
			)
			if err != nil {
				log.Fatal("Failed to migrate database:", err)
			}
			log.Println("✅ Database migrations completed!")

			store = storage.NewDatabaseStore(database.DB)
			seedCatalogIfEmpty(store)
		}
	}

	// Initialize services
	smsSender := services.NewSMSSender()
	otpService := services.NewOTPService(store, smsSender)

	// Rate limiter gating all API routes, with its background sweep
	limiter := middleware.NewRateLimiterFromEnv()
	limiter.StartSweep()

	// Periodic OTP cleanup
	cleanupJob := jobs.NewCleanupJob(otpService)
	cleanupJob.Start()

	// Create fiber app
	app := fiber.New(fiber.Config{
		AppName: "Axlerator Backend v" + version,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}
			log.Printf("Unhandled error on %s %s: %v", c.Method(), c.Path(), err)
			return c.Status(code).JSON(fiber.Map{
				"error": "Something went wrong",
			})
		},
	})

	// Middleware
	app.Use(logger.New(logger.Config{
		Format: "[${time}] ${status} - ${latency} ${method} ${path}\n",
	}))
	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET, POST, PUT, DELETE, OPTIONS",
	}))

	// Root and health endpoints
	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"service": "Axlerator Backend API",
			"version": version,
			"status":  "healthy",
			"storage": storageType,
		})
	})

	healthHandler := handlers.NewHealthHandler(version, storageType)
	app.Get("/health", healthHandler.Check)

	// API routes
	routes.SetupRoutes(app, store, otpService, limiter)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	// Handle graceful shutdown
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-c
		log.Println("\n🛑 Gracefully shutting down...")
		cleanupJob.Stop()
		limiter.Stop()
		_ = app.Shutdown()
	}()

	log.Println("========================================")
	log.Printf("🚚 Axlerator Backend starting on port %s", port)
	log.Printf("📊 Storage: %s", storageType)
	log.Println("========================================")

	log.Fatal(app.Listen(":" + port))
}

// seedCatalogIfEmpty loads the static catalog into a fresh database so the
// marketplace never renders empty on first boot.
func seedCatalogIfEmpty(store storage.Store) {
	trucks, err := store.SearchTrucks(&models.TruckSearch{})
	if err != nil || len(trucks) > 0 {
		return
	}
	for _, truck := range storage.SeedTrucks() {
		if _, err := store.CreateTruck(truck); err != nil {
			log.Printf("Failed to seed truck %s: %v", truck.TruckID, err)
		}
	}
	log.Println("✅ Seeded truck catalog")
}
