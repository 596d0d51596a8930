package db

import (
	"tender/internal/domain" // Importing domain models

	"github.com/sirupsen/logrus"

	"gorm.io/gorm" // GORM ORM library
)

// Migrate performs automatic migration for the database schema
func Migrate(dsn string) {
	gdb, err := Open(dsn) // Open a connection to the database
	if err != nil {
		logrus.Fatalf("failed to connect database: %v", err) // Log fatal error if connection fails
	}
	if err := AutoMigrate(gdb); err != nil {
		logrus.Fatalf("migration failed: %v", err) // Log fatal error if migration fails
	}
	logrus.Info("Migration completed.") // Log successful migration
}

// AutoMigrate will create tables, foreign keys, constraints, columns and
// indexes, including both composite-key join tables.
func AutoMigrate(gdb *gorm.DB) error {
	return gdb.AutoMigrate(&domain.User{}, &domain.Recipe{}, &domain.List{})
}
