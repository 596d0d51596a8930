package api

import (
	"net/http" // HTTP status codes

	"tender/internal/catalog" // Recipe catalog
	"tender/internal/utils"   // Cache utility functions

	"github.com/gin-gonic/gin"     // Gin web framework
	"github.com/redis/go-redis/v9" // Redis client
)

// recipesCacheKey caches the full catalog response
const recipesCacheKey = "recipes:all"

// ListRecipesHandler returns the whole recipe catalog. The catalog only
// changes when the seed job runs, so a short cache takes most of the reads.
func ListRecipesHandler(store *catalog.Store, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context() // Request context for Redis and DB
		var cached struct {
			Recipes []recipeResponse `json:"recipes"` // Cached catalog
		}
		// Try the cache first
		found, err := utils.GetCache(ctx, rdb, recipesCacheKey, &cached)
		if err == nil && found {
			c.JSON(http.StatusOK, gin.H{"recipes": cached.Recipes, "cached": true})
			return
		}
		// Fetch from the database
		recipes, err := store.All(ctx)
		if err != nil {
			fail(c, err)
			return
		}
		// Map to the response shape
		resp := make([]recipeResponse, len(recipes))
		for i, r := range recipes {
			resp[i] = recipeResponse{
				ID:       r.ID,       // Recipe ID
				SourceID: r.SourceID, // Upstream id
				Title:    r.Title,    // Recipe title
				ImageURL: r.ImageURL, // Image reference
			}
		}
		// Cache the result
		_ = utils.SetCache(ctx, rdb, recipesCacheKey, gin.H{"recipes": resp}, utils.CacheTTL)
		c.JSON(http.StatusOK, gin.H{"recipes": resp, "cached": false}) // Return the catalog
	}
}

// recipeResponse is the recipe shape returned to clients
type recipeResponse struct {
	ID       uint   `json:"id"`        // Recipe ID
	SourceID int    `json:"source_id"` // Upstream id
	Title    string `json:"title"`     // Recipe title
	ImageURL string `json:"image_url"` // Image reference
}
