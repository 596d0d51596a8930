package main

import (
	"context" // Context for the upstream call

	"tender/internal/catalog" // Recipe catalog
	"tender/internal/config"  // Configuration
	"tender/internal/db"      // Database setup
	"tender/internal/ingest"  // Upstream search client

	"github.com/sirupsen/logrus" // Logrus for structured logging
)

// Main entry point for the catalog seed job. Fetches recipes from the
// upstream search API and ingests them, skipping already-known source ids,
// so the job is safe to re-run.
func main() {
	cfg := config.LoadConfig() // Load configuration

	// Setup logger
	logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	// Connect to the database
	gdb, err := db.Open(cfg.DSN())
	if err != nil {
		logrus.Fatalf("failed to connect to DB: %v", err) // Fatal error if DB connection fails
	}

	// Fetch seed recipes from the upstream API
	client := ingest.NewClient(cfg.SpoonacularURL, cfg.SpoonacularKey)
	seeds, err := client.SearchRecipes(context.Background(), cfg.SeedRecipeCount)
	if err != nil {
		logrus.Fatalf("failed to fetch recipes: %v", err)
	}

	// Ingest them, duplicates are skipped
	inserted, err := catalog.NewStore(gdb).Ingest(context.Background(), seeds)
	if err != nil {
		logrus.Fatalf("failed to ingest recipes: %v", err)
	}
	// Log the outcome
	logrus.WithFields(logrus.Fields{
		"fetched":  len(seeds), // Recipes returned upstream
		"inserted": inserted,   // New catalog rows
	}).Info("Catalog seeded")
}
