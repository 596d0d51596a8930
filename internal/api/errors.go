package api

import (
	"errors"   // Error matching
	"net/http" // HTTP status codes

	"tender/internal/domain" // Importing domain models

	"github.com/gin-gonic/gin"   // Gin web framework
	"github.com/sirupsen/logrus" // Logging library
)

// fail maps a domain error onto its HTTP status and writes the error body.
// Unknown errors are logged and surfaced as a generic 500 so no request
// failure takes the process down or leaks internals.
func fail(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrConflict):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()}) // Uniqueness violation
	case errors.Is(err, domain.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"error": "You don't own this list"}) // Ownership failure
	case errors.Is(err, domain.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()}) // Missing list, recipe or association
	case errors.Is(err, domain.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"}) // Uniform auth failure
	default:
		logrus.WithFields(logrus.Fields{
			"path":  c.FullPath(), // Failing route
			"error": err.Error(),  // Underlying error
		}).Error("Request failed") // Log the unexpected error
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal error"})
	}
}
