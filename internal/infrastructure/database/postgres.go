package database

import (
	"fmt"
	"log"

	"github.com/docudesk/typecenter-api/internal/config"
	"github.com/docudesk/typecenter-api/internal/domain/entity"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewPostgresDB creates a new PostgreSQL database connection
func NewPostgresDB(cfg *config.DatabaseConfig) (*gorm.DB, error) {
	logLevel := logger.Info

	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN:                  cfg.DSN(),
		PreferSimpleProtocol: true, // disables implicit prepared statement usage
	}), &gorm.Config{
		Logger: logger.Default.LogMode(logLevel),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Get underlying SQL DB to set connection pool settings
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	// Set connection pool settings
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(100)

	log.Println("Successfully connected to PostgreSQL database")
	return db, nil
}

// AutoMigrate runs GORM auto-migration for all entities
func AutoMigrate(db *gorm.DB) error {
	log.Println("Running database migrations...")

	err := db.AutoMigrate(
		// Catalog entities
		&entity.Service{},

		// CRM entities
		&entity.Customer{},

		// Document entities
		&entity.Document{},
		&entity.DocumentItem{},

		// Wallet entities
		&entity.WalletCard{},
		&entity.WalletTransaction{},

		// System entities
		&entity.IdempotencyKey{},
	)

	if err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	log.Println("Database migrations completed successfully")
	return nil
}

// SeedDefaultData seeds the catalog with the services a freshly installed
// typing center offers. Existing codes are left untouched so operator edits
// to fees survive restarts.
func SeedDefaultData(db *gorm.DB) error {
	log.Println("Seeding default data...")

	services := []entity.Service{
		{Name: "Emirates ID New Application", Code: "EID-NEW", Category: "Emirates ID", ServiceFee: 3000, GovtFee: 37000},
		{Name: "Emirates ID Renewal", Code: "EID-RNW", Category: "Emirates ID", ServiceFee: 3000, GovtFee: 37000},
		{Name: "Emirates ID Replacement", Code: "EID-RPL", Category: "Emirates ID", ServiceFee: 3000, GovtFee: 30000},
		{Name: "Residence Visa New", Code: "VIS-NEW", Category: "Visa", ServiceFee: 5000, GovtFee: 48000},
		{Name: "Residence Visa Renewal", Code: "VIS-RNW", Category: "Visa", ServiceFee: 5000, GovtFee: 48000},
		{Name: "Visit Visa Application", Code: "VIS-VST", Category: "Visa", ServiceFee: 5000, GovtFee: 30000},
		{Name: "Medical Typing", Code: "MED-TYP", Category: "Medical", ServiceFee: 2000, GovtFee: 32000},
		{Name: "Labour Contract Typing", Code: "LAB-CON", Category: "Labour", ServiceFee: 2500, GovtFee: 0},
		{Name: "Work Permit Application", Code: "LAB-WPA", Category: "Labour", ServiceFee: 4000, GovtFee: 20000},
		{Name: "Trade License Renewal", Code: "LIC-RNW", Category: "Economic Department", ServiceFee: 5000, GovtFee: 0},
		{Name: "Document Translation", Code: "DOC-TRN", Category: "General", ServiceFee: 8000, GovtFee: 0},
		{Name: "Document Attestation", Code: "DOC-ATT", Category: "General", ServiceFee: 3000, GovtFee: 15000},
	}

	for i := range services {
		services[i].IsActive = true
		var existing entity.Service
		if err := db.Where("code = ?", services[i].Code).First(&existing).Error; err != nil {
			if err := db.Create(&services[i]).Error; err != nil {
				log.Printf("Warning: failed to create service %s: %v", services[i].Code, err)
			}
		}
	}

	log.Println("Default data seeding completed")
	return nil
}
