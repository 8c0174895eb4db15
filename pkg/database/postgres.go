package database

import (
	"log"

	"github.com/YanislavD/EventApp/internal/models"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func NewPostgresDB(dsn string) *gorm.DB {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Warn),
		TranslateError: true,
	})
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}

	if err := Migrate(db); err != nil {
		log.Fatalf("failed to auto-migrate: %v", err)
	}

	// Functional index for case-insensitive category name uniqueness;
	// AutoMigrate cannot express it.
	db.Exec(`
		CREATE UNIQUE INDEX IF NOT EXISTS idx_categories_name_lower
		ON categories (LOWER(name))
	`)

	return db
}

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.Category{},
		&models.Event{},
		&models.Subscription{},
		&models.Ticket{},
	)
}
