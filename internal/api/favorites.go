package api

import (
	"net/http" // HTTP status codes
	"strconv"  // String conversion

	"tender/internal/membership" // Membership engine
	"tender/internal/middleware" // Current user lookup
	"tender/internal/utils"      // Cache utility functions

	"github.com/gin-gonic/gin"     // Gin web framework
	"github.com/redis/go-redis/v9" // Redis client
)

// FavoriteRequest names the recipe being favorited or unfavorited
type FavoriteRequest struct {
	RecipeID uint `json:"recipeId" binding:"required"` // Recipe id must be provided
}

// favoritesCacheKey builds the per-user favorites cache key
func favoritesCacheKey(userID uint) string {
	return "favorites:user:" + strconv.Itoa(int(userID))
}

// ListFavoritesHandler returns the current user's favorite recipes
func ListFavoritesHandler(engine *membership.Engine, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := middleware.CurrentUser(c) // Get current user from context
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		ctx := c.Request.Context()          // Request context for Redis and DB
		cacheKey := favoritesCacheKey(user.ID) // Per-user cache key
		var cached struct {
			Recipes []recipeResponse `json:"recipes"` // Cached favorites
		}
		// Try the cache first
		found, err := utils.GetCache(ctx, rdb, cacheKey, &cached)
		if err == nil && found {
			c.JSON(http.StatusOK, gin.H{"recipes": cached.Recipes, "cached": true})
			return
		}
		// Fetch from the database
		recipes, err := engine.FavoritesOf(ctx, user.ID)
		if err != nil {
			fail(c, err)
			return
		}
		// Map to the response shape
		resp := make([]recipeResponse, len(recipes))
		for i, r := range recipes {
			resp[i] = recipeResponse{ID: r.ID, SourceID: r.SourceID, Title: r.Title, ImageURL: r.ImageURL}
		}
		// Cache the result
		_ = utils.SetCache(ctx, rdb, cacheKey, gin.H{"recipes": resp}, utils.CacheTTL)
		c.JSON(http.StatusOK, gin.H{"recipes": resp, "cached": false}) // Return favorites
	}
}

// AddFavoriteHandler marks a recipe as a favorite of the current user
func AddFavoriteHandler(engine *membership.Engine, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := middleware.CurrentUser(c) // Get current user from context
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		var req FavoriteRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
			return
		}
		// Insert the favorite, duplicates surface as 409
		if err := engine.AddFavorite(c.Request.Context(), user, req.RecipeID); err != nil {
			fail(c, err)
			return
		}
		// Invalidate the favorites cache
		_ = utils.DeleteCache(c.Request.Context(), rdb, favoritesCacheKey(user.ID))
		c.JSON(http.StatusOK, gin.H{"message": "success"}) // Structured acknowledgment
	}
}

// RemoveFavoriteHandler removes a recipe from the current user's favorites
func RemoveFavoriteHandler(engine *membership.Engine, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := middleware.CurrentUser(c) // Get current user from context
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		var req FavoriteRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
			return
		}
		// Delete the favorite, absent pairs surface as 404
		if err := engine.RemoveFavorite(c.Request.Context(), user, req.RecipeID); err != nil {
			fail(c, err)
			return
		}
		// Invalidate the favorites cache
		_ = utils.DeleteCache(c.Request.Context(), rdb, favoritesCacheKey(user.ID))
		c.JSON(http.StatusOK, gin.H{"message": "success"}) // Structured acknowledgment
	}
}
