package middleware

import (
	"net/http" // HTTP status codes
	"strings"  // String manipulation

	"tender/internal/domain" // Importing domain models
	"tender/internal/utils"  // JWT and cache utility functions

	"github.com/gin-gonic/gin"     // Gin web framework
	"github.com/redis/go-redis/v9" // Redis client
	"gorm.io/gorm"                 // GORM ORM library
)

// Context keys used by the auth middleware
const (
	CurrentUserKey = "currentUser" // Resolved *domain.User
	TokenClaimsKey = "tokenClaims" // Parsed *utils.Claims, used by logout
)

// AuthMiddleware is the single guard in front of every protected route: it
// validates the session token, rejects tokens revoked by logout, resolves
// the current user from the database and stores both in the gin context.
// The user is read once here and never re-resolved mid-request.
func AuthMiddleware(db *gorm.DB, rdb *redis.Client, secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization") // Get Authorization header
		// Check if the Authorization header is present and properly formatted
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			// If not, abort with unauthorized status
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Missing or invalid Authorization header"})
			return
		}
		tokenStr := strings.TrimPrefix(authHeader, "Bearer ") // Extract the token string and parse it
		claims, err := utils.ParseJWT(tokenStr, secret)       // Parse the JWT token
		if err != nil {
			// If parsing fails, abort with unauthorized status
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
			return
		}
		// Logged-out tokens stay revoked until their natural expiry
		denied, err := utils.IsTokenDenied(c.Request.Context(), rdb, claims.ID)
		if err == nil && denied {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Session has been logged out"})
			return
		}
		var user domain.User // Resolve the current user from the database
		if err := db.First(&user, claims.UserID).Error; err != nil {
			// Deleted accounts cannot keep acting on a live token
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Account no longer exists"})
			return
		}
		c.Set(CurrentUserKey, &user)  // Store current user in context
		c.Set(TokenClaimsKey, claims) // Store claims for logout
		c.Next()                      // Proceed to the next handler
	}
}

// CurrentUser returns the authenticated user resolved by AuthMiddleware
func CurrentUser(c *gin.Context) (*domain.User, bool) {
	v, exists := c.Get(CurrentUserKey) // Get current user from context
	if !exists {
		return nil, false // Route was not guarded
	}
	user, ok := v.(*domain.User) // Assert the stored type
	return user, ok
}
