package db

import (
	"yatube/internal/logger"
	"yatube/internal/models"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

// Init connects to PostgreSQL and migrates the schema. Uniqueness, cascade,
// nullify and check constraints live in the schema itself so the database
// backs up every application-level rule.
func Init(dsn string) {
	if dsn == "" {
		// Fallback for local dev if not set
		dsn = "host=localhost user=postgres password=postgres dbname=yatube port=5432 sslmode=disable"
	}

	var err error
	DB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		logger.Sugar.Fatalf("Failed to connect to database: %v", err)
	}

	logger.Sugar.Info("Database connection established")

	Migrate(DB)
}

// Migrate runs auto-migration for every model. Split out of Init so tests can
// point it at their own database.
func Migrate(g *gorm.DB) {
	err := g.AutoMigrate(
		&models.User{},
		&models.Group{},
		&models.Post{},
		&models.Comment{},
		&models.Follow{},
	)
	if err != nil {
		logger.Sugar.Fatalf("Failed to migrate database: %v", err)
	}
	logger.Sugar.Info("Database migration completed")
}
