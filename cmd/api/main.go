package main

import (
	"log"

	"github.com/gin-gonic/gin"
	"github.com/stockmate/stockmate-api/internal/application/service"
	"github.com/stockmate/stockmate-api/internal/config"
	domainRepo "github.com/stockmate/stockmate-api/internal/domain/repository"
	"github.com/stockmate/stockmate-api/internal/infrastructure/database"
	"github.com/stockmate/stockmate-api/internal/infrastructure/gateway"
	"github.com/stockmate/stockmate-api/internal/infrastructure/repository"
	"github.com/stockmate/stockmate-api/internal/presentation/http/handler"
	"github.com/stockmate/stockmate-api/internal/presentation/http/routes"
	"github.com/stockmate/stockmate-api/pkg/utils"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Set Gin mode based on environment
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Select the purchase record store
	var recordRepo domainRepo.PurchaseRecordRepository
	switch cfg.Store.Driver {
	case "postgres":
		db, err := database.NewPostgresDB(&cfg.Database)
		if err != nil {
			log.Fatalf("Failed to connect to database: %v", err)
		}
		if err := database.AutoMigrate(db); err != nil {
			log.Fatalf("Failed to run migrations: %v", err)
		}
		recordRepo = repository.NewPurchaseRecordRepository(db)
	default:
		log.Println("Using in-memory purchase record store")
		recordRepo = repository.NewMemoryPurchaseRecordRepository()
	}

	// Initialize JWT manager for session tokens
	jwtManager := utils.NewJWTManager(cfg.JWT.Secret, cfg.JWT.SessionExpiry)

	// Initialize the submission gateway
	submissionGateway := gateway.NewSimulatedGateway(recordRepo, cfg.Gateway.Latency)

	// Initialize services
	formService := service.NewOrderFormService(submissionGateway)
	purchaseLogService := service.NewPurchaseLogService(recordRepo)

	// Initialize handlers
	handlers := &routes.Handlers{
		Form:      handler.NewFormHandler(formService, jwtManager),
		Purchase:  handler.NewPurchaseHandler(purchaseLogService),
		Dashboard: handler.NewDashboardHandler(purchaseLogService),
	}

	// Setup routes
	router := routes.Setup(handlers, &routes.Deps{
		JWTManager: jwtManager,
		Cfg:        cfg,
	})

	port := cfg.App.Port
	if port == "" {
		port = "8080"
	}

	log.Printf("Starting %s server on port %s...", cfg.App.Name, port)
	log.Printf("Environment: %s", cfg.App.Env)

	if err := router.Run(":" + port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
