package main

import (
	"log"
	"os"

	"github.com/docudesk/typecenter-api/internal/application/service"
	"github.com/docudesk/typecenter-api/internal/config"
	"github.com/docudesk/typecenter-api/internal/infrastructure/database"
	"github.com/docudesk/typecenter-api/internal/infrastructure/repository"
	"github.com/docudesk/typecenter-api/internal/presentation/http/handler"
	"github.com/docudesk/typecenter-api/internal/presentation/http/routes"
	"github.com/docudesk/typecenter-api/pkg/email"
	"github.com/gin-gonic/gin"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Set Gin mode based on environment
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Connect to database
	db, err := database.NewPostgresDB(&cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Run auto-migrations
	if err := database.AutoMigrate(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Seed the default service catalog
	if err := database.SeedDefaultData(db); err != nil {
		log.Printf("Warning: Failed to seed default data: %v", err)
	}

	// Initialize repositories
	documentRepo := repository.NewDocumentRepository(db)
	documentItemRepo := repository.NewDocumentItemRepository(db)
	serviceRepo := repository.NewServiceRepository(db)
	customerRepo := repository.NewCustomerRepository(db)
	walletRepo := repository.NewWalletCardRepository(db)
	idempotencyRepo := repository.NewIdempotencyRepository(db)

	// Initialize email service
	emailService := email.NewEmailService(email.EmailConfig{
		SMTPHost:     cfg.Email.SMTPHost,
		SMTPPort:     cfg.Email.SMTPPort,
		SMTPUsername: cfg.Email.SMTPUsername,
		SMTPPassword: cfg.Email.SMTPPassword,
		FromName:     cfg.Email.FromName,
		FromEmail:    cfg.Email.FromEmail,
	})

	// Initialize services
	documentService := service.NewDocumentService(documentRepo, documentItemRepo, serviceRepo, customerRepo, walletRepo, emailService, cfg.Store)
	walletService := service.NewWalletService(walletRepo)
	catalogService := service.NewCatalogService(serviceRepo)
	customerService := service.NewCustomerService(customerRepo)

	// Initialize handlers
	handlers := &routes.Handlers{
		Document: handler.NewDocumentHandler(documentService),
		Wallet:   handler.NewWalletHandler(walletService),
		Catalog:  handler.NewCatalogHandler(catalogService),
		Customer: handler.NewCustomerHandler(customerService),
	}

	// Set up routes
	router := routes.Setup(handlers, &routes.Deps{
		Cfg:             cfg,
		IdempotencyRepo: idempotencyRepo,
	})

	port := cfg.App.Port
	if envPort := os.Getenv("PORT"); envPort != "" {
		port = envPort
	}

	log.Printf("Starting %s on port %s", cfg.App.Name, port)
	if err := router.Run(":" + port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
