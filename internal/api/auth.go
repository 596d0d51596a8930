package api

import (
	"net/http" // HTTP status codes
	"regexp"   // Regular expressions
	"strings"  // String manipulation
	"time"     // Denylist TTL math

	"tender/internal/identity"   // Identity store
	"tender/internal/middleware" // Context keys
	"tender/internal/utils"      // JWT and cache utility functions

	"github.com/gin-gonic/gin"     // Gin web framework
	"github.com/redis/go-redis/v9" // Redis client
)

// SignupRequest carries the signup form fields
type SignupRequest struct {
	FirstName string `json:"first_name" binding:"required"` // Given name must be provided
	LastName  string `json:"last_name" binding:"required"`  // Family name must be provided
	Username  string `json:"username" binding:"required"`   // Username must be provided
	Email     string `json:"email" binding:"required"`      // Email must be provided
	Password  string `json:"password" binding:"required"`   // Password must be provided
}

// LoginRequest carries the login form fields
type LoginRequest struct {
	Username string `json:"username" binding:"required"` // Username must be provided
	Password string `json:"password" binding:"required"` // Password must be provided
}

// AuthResponse carries a freshly minted session token
type AuthResponse struct {
	Token string `json:"token"` // JWT token
}

// usernamePattern allows letters, digits and underscores
var usernamePattern = regexp.MustCompile(`^[A-Za-z0-9_]+$`)

// isValidUsername checks the username character set
func isValidUsername(username string) bool {
	return usernamePattern.MatchString(username)
}

// isValidPassword checks if the password length is between 8 and 72 characters
func isValidPassword(password string) bool {
	return len(password) >= 8 && len(password) <= 72 // Bcrypt input limit is 72 bytes
}

// SignupHandler registers a new user and logs them in by returning a token
func SignupHandler(svc *identity.Service, jwtSecret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req SignupRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			// If binding fails, return bad request
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
			return
		}
		// Validate username and password
		if !isValidUsername(req.Username) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Username must be letters, digits or underscores"})
			return
		}
		// Validate password length
		if !isValidPassword(req.Password) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Password must be 8-72 characters"})
			return
		}
		// Validate minimal email shape, real validation is the mail loop's job
		if !strings.Contains(req.Email, "@") {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid email address"})
			return
		}
		// Create the user, lowercase username to keep lookups predictable
		user, err := svc.Register(c.Request.Context(), identity.RegisterParams{
			FirstName: req.FirstName,                 // Given name
			LastName:  req.LastName,                  // Family name
			Username:  strings.ToLower(req.Username), // Username
			Email:     strings.ToLower(req.Email),    // Email address
			Password:  req.Password,                  // Plaintext, hashed by the service
		})
		if err != nil {
			fail(c, err) // Duplicate username/email surfaces as 409
			return
		}
		// Auto-login: signup responds with a session token
		token, err := utils.GenerateJWT(user.ID, jwtSecret)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate token"})
			return
		}
		// Return the token and the new user
		c.JSON(http.StatusCreated, gin.H{"token": token, "user": user})
	}
}

// LoginHandler authenticates a user and returns a session token
func LoginHandler(svc *identity.Service, jwtSecret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req LoginRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			// If binding fails, return bad request
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
			return
		}
		// Verify credentials, failure is uniform for unknown user and bad password
		user, err := svc.Authenticate(c.Request.Context(), strings.ToLower(req.Username), req.Password)
		if err != nil {
			fail(c, err)
			return
		}
		// Generate JWT token
		token, err := utils.GenerateJWT(user.ID, jwtSecret)
		if err != nil {
			// If token generation fails, return internal server error
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate token"})
			return
		}
		// Return the token in the response
		c.JSON(http.StatusOK, AuthResponse{Token: token})
	}
}

// LogoutHandler revokes the presented token by denylisting its id until the
// token would have expired anyway
func LogoutHandler(rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		v, exists := c.Get(middleware.TokenClaimsKey) // Claims stored by the auth middleware
		if !exists {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		claims := v.(*utils.Claims) // Parsed token claims
		ttl := utils.TokenTTL       // Fallback horizon
		if claims.ExpiresAt != nil {
			ttl = time.Until(claims.ExpiresAt.Time) // Only hold the entry as long as the token lives
		}
		if ttl > 0 {
			// Record the revocation
			if err := utils.DenyToken(c.Request.Context(), rdb, claims.ID, ttl); err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to log out"})
				return
			}
		}
		c.JSON(http.StatusOK, gin.H{"message": "Logged out"}) // Session cleared
	}
}
