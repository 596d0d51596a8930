package main

import (
	"context" // context package is needed for Redis operations
	"log"     // log package is needed for logging

	"tender/internal/api"        // Custom package for API handlers
	"tender/internal/catalog"    // Custom package for the recipe catalog
	"tender/internal/config"     // Custom package for configuration
	"tender/internal/db"         // Custom package for database setup
	"tender/internal/identity"   // Custom package for the identity store
	"tender/internal/membership" // Custom package for the membership engine
	"tender/internal/middleware" // Custom package for middleware

	"github.com/gin-gonic/gin"     // Gin web framework
	"github.com/redis/go-redis/v9" // Redis client
	"github.com/sirupsen/logrus"   // Logrus for structured logging
)

// Main function to set up and run the server
func main() {
	cfg := config.LoadConfig() // Load configuration

	// Setup logger
	logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	// Connect to the database and register the join tables
	gdb, err := db.Open(cfg.DSN())
	if err != nil {
		logrus.Fatalf("failed to connect to DB: %v", err) // Fatal error if DB connection fails
	}

	// Setup Redis client
	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr, // Redis server address
		Password: cfg.RedisPass, // Redis password
		DB:       cfg.RedisDB,   // Redis database number
	})

	// Test Redis connection
	if _, err := redisClient.Ping(context.Background()).Result(); err != nil {
		logrus.Fatalf("failed to connect to Redis: %v", err)
	}

	// Wire the service layers
	identitySvc := identity.NewService(gdb)    // Identity store
	catalogStore := catalog.NewStore(gdb)      // Recipe catalog
	engine := membership.NewEngine(gdb)        // Membership engine

	// Set Mode to Release if in production
	if cfg.IsProd {
		gin.SetMode(gin.ReleaseMode)
	}

	// Setup Gin
	r := gin.Default() // Gin router instance

	// Set trusted proxies for Gin
	if err := r.SetTrustedProxies([]string{"127.0.0.1"}); err != nil {
		logrus.Fatalf("failed to set trusted proxies: %v", err)
	}

	// Public routes
	r.POST("/signup", api.SignupHandler(identitySvc, cfg.JWTSecret)) // Registration plus auto-login
	r.POST("/login", api.LoginHandler(identitySvc, cfg.JWTSecret))   // Login endpoint

	// Everything else goes through the one auth guard
	authed := r.Group("/")
	authed.Use(middleware.AuthMiddleware(gdb, redisClient, cfg.JWTSecret))

	authed.GET("/logout", api.LogoutHandler(redisClient))                  // Revoke the session token
	authed.GET("/recipes", api.ListRecipesHandler(catalogStore, redisClient)) // Recipe catalog

	// Favorites routes
	authed.GET("/favorites", api.ListFavoritesHandler(engine, redisClient))          // Current user's favorites
	authed.POST("/favorites/add", api.AddFavoriteHandler(engine, redisClient))       // Favorite a recipe
	authed.POST("/favorites/remove", api.RemoveFavoriteHandler(engine, redisClient)) // Unfavorite a recipe

	// List routes, ownership is enforced inside the membership engine
	authed.GET("/lists", api.ListListsHandler(engine))       // Current user's lists
	authed.POST("/lists/new", api.CreateListHandler(engine)) // Create a list                                   // Create a list
	authed.GET("/lists/:id", api.GetListHandler(engine))           // List detail, owner-only
	authed.GET("/lists/delete/:id", api.DeleteListHandler(engine)) // Delete a list, owner-only
	authed.POST("/lists/add", api.AddRecipeToListHandler(engine))  // Add a membership, owner-only
	authed.GET("/lists/delete_recipe/:listID/:recipeID", api.RemoveRecipeFromListHandler(engine)) // Remove a membership, owner-only

	// Account routes
	authed.GET("/my-account", api.GetAccountHandler())                              // View profile
	authed.POST("/my-account", api.UpdateAccountHandler(identitySvc))               // Edit profile with re-auth
	authed.GET("/my-account/delete", api.DeleteAccountHandler(identitySvc, redisClient)) // Delete own account

	log.Println("Server running on " + cfg.AppPort) // Log server start
	r.Run(":" + cfg.AppPort)                        // Start the server on port cfg.AppPort
}
