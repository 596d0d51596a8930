package api

import (
	"net/http" // HTTP status codes
	"strings"  // String manipulation
	"time"     // Denylist TTL math

	"tender/internal/identity"   // Identity store
	"tender/internal/middleware" // Current user lookup
	"tender/internal/utils"      // JWT and cache utility functions

	"github.com/gin-gonic/gin"     // Gin web framework
	"github.com/redis/go-redis/v9" // Redis client
)

// UpdateProfileRequest carries the profile-edit form fields. Password is the
// user's current password, required to confirm the change.
type UpdateProfileRequest struct {
	Username string `json:"username"`                    // New username, optional
	Email    string `json:"email"`                       // New email, optional
	Password string `json:"password" binding:"required"` // Current password, re-verified
}

// GetAccountHandler returns the current user's profile
func GetAccountHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := middleware.CurrentUser(c) // Get current user from context
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"user": user}) // Password hash is json:"-"
	}
}

// UpdateAccountHandler changes username and/or email after re-verifying the
// current password
func UpdateAccountHandler(svc *identity.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := middleware.CurrentUser(c) // Get current user from context
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		var req UpdateProfileRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
			return
		}
		// Validate a new username the same way signup does
		if req.Username != "" && !isValidUsername(req.Username) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Username must be letters, digits or underscores"})
			return
		}
		// Apply the change, wrong password surfaces as 401
		updated, err := svc.UpdateProfile(
			c.Request.Context(),
			user.ID,
			strings.ToLower(req.Username), // New username
			strings.ToLower(req.Email),    // New email
			req.Password,                  // Current password
		)
		if err != nil {
			fail(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"user": updated}) // Return the updated profile
	}
}

// DeleteAccountHandler deletes the current user's account. Lists, their
// membership rows and favorites cascade away; the presented token is
// denylisted so it cannot be replayed.
func DeleteAccountHandler(svc *identity.Service, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := middleware.CurrentUser(c) // Get current user from context
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		// Delete the account with its cascades
		if err := svc.Delete(c.Request.Context(), user.ID); err != nil {
			fail(c, err)
			return
		}
		// Revoke the live token so it cannot keep acting for a deleted account
		if v, exists := c.Get(middleware.TokenClaimsKey); exists {
			if claims, ok := v.(*utils.Claims); ok && claims.ExpiresAt != nil {
				if ttl := time.Until(claims.ExpiresAt.Time); ttl > 0 {
					_ = utils.DenyToken(c.Request.Context(), rdb, claims.ID, ttl)
				}
			}
		}
		c.JSON(http.StatusOK, gin.H{"message": "Account deleted"}) // Structured acknowledgment
	}
}
