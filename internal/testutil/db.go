package testutil

import (
	"fmt"           // DSN building
	"path/filepath" // Temp file paths
	"testing"       // Test helpers

	"tender/internal/db" // Join table and migration setup

	"gorm.io/driver/sqlite" // SQLite driver for tests, no MySQL server needed
	"gorm.io/gorm"          // GORM ORM library
	"gorm.io/gorm/logger"   // Quiet logging in tests
)

// OpenDB returns a migrated sqlite database private to the test. Foreign
// keys are switched on so the cascade behavior under test matches MySQL,
// and TranslateError keeps duplicate-key detection identical to production.
func OpenDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?_foreign_keys=on", filepath.Join(t.TempDir(), "tender_test.db"))
	gdb, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		TranslateError: true,                                   // Match production duplicate-key handling
		Logger:         logger.Default.LogMode(logger.Silent), // Keep test output readable
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	// Register join tables before migrating so they get composite keys
	if err := db.SetupJoinTables(gdb); err != nil {
		t.Fatalf("failed to set up join tables: %v", err)
	}
	if err := db.AutoMigrate(gdb); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}
	return gdb
}
