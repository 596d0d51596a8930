package api

import (
	"net/http" // HTTP status codes
	"strconv"  // String conversion

	"tender/internal/membership" // Membership engine
	"tender/internal/middleware" // Current user lookup

	"github.com/gin-gonic/gin" // Gin web framework
)

// CreateListRequest carries the new-list form fields
type CreateListRequest struct {
	Title       string `json:"title" binding:"required"`       // List title must be provided
	Description string `json:"description" binding:"required"` // Description must be provided
}

// AddToListRequest names the list (by title) and the recipe to add
type AddToListRequest struct {
	ListTitle string `json:"listTitle" binding:"required"` // Target list title
	RecipeID  uint   `json:"recipeId" binding:"required"`  // Recipe id must be provided
}

// parseID parses a numeric path parameter
func parseID(c *gin.Context, name string) (uint, bool) {
	v, err := strconv.ParseUint(c.Param(name), 10, 32) // Parse the path parameter
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid " + name})
		return 0, false
	}
	return uint(v), true
}

// ListListsHandler returns the current user's lists
func ListListsHandler(engine *membership.Engine) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := middleware.CurrentUser(c) // Get current user from context
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		// Fetch the user's lists ordered by id
		lists, err := engine.ListsOwnedBy(c.Request.Context(), user.Username)
		if err != nil {
			fail(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"lists": lists}) // Return the lists
	}
}

// GetListHandler returns one list with its member recipes, owner-only
func GetListHandler(engine *membership.Engine) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := middleware.CurrentUser(c) // Get current user from context
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		listID, ok := parseID(c, "id") // Parse the list id
		if !ok {
			return
		}
		// Fetch the detail, non-owners get 403
		list, err := engine.GetList(c.Request.Context(), user, listID)
		if err != nil {
			fail(c, err)
			return
		}
		// Map member recipes to the response shape
		recipes := make([]recipeResponse, len(list.Recipes))
		for i, r := range list.Recipes {
			recipes[i] = recipeResponse{ID: r.ID, SourceID: r.SourceID, Title: r.Title, ImageURL: r.ImageURL}
		}
		c.JSON(http.StatusOK, gin.H{"list": list, "recipes": recipes}) // Return the detail
	}
}

// CreateListHandler creates a new list owned by the current user
func CreateListHandler(engine *membership.Engine) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := middleware.CurrentUser(c) // Get current user from context
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		var req CreateListRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
			return
		}
		// Create the list, duplicate titles surface as 409
		list, err := engine.CreateList(c.Request.Context(), user, req.Title, req.Description)
		if err != nil {
			fail(c, err)
			return
		}
		c.JSON(http.StatusCreated, gin.H{"list": list}) // Return the new list
	}
}

// DeleteListHandler deletes one of the current user's lists
func DeleteListHandler(engine *membership.Engine) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := middleware.CurrentUser(c) // Get current user from context
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		listID, ok := parseID(c, "id") // Parse the list id
		if !ok {
			return
		}
		// Delete the list, non-owners get 403
		if err := engine.DeleteList(c.Request.Context(), user, listID); err != nil {
			fail(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "success"}) // Structured acknowledgment
	}
}

// AddRecipeToListHandler adds a recipe to one of the current user's lists
func AddRecipeToListHandler(engine *membership.Engine) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := middleware.CurrentUser(c) // Get current user from context
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		var req AddToListRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
			return
		}
		// Insert the membership row, duplicates surface as 409
		if err := engine.AddRecipeToList(c.Request.Context(), user, req.ListTitle, req.RecipeID); err != nil {
			fail(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "success"}) // Structured acknowledgment
	}
}

// RemoveRecipeFromListHandler removes a recipe from one of the current
// user's lists
func RemoveRecipeFromListHandler(engine *membership.Engine) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := middleware.CurrentUser(c) // Get current user from context
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		listID, ok := parseID(c, "listID") // Parse the list id
		if !ok {
			return
		}
		recipeID, ok := parseID(c, "recipeID") // Parse the recipe id
		if !ok {
			return
		}
		// Delete the membership row, absent pairs surface as 404
		if err := engine.RemoveRecipeFromList(c.Request.Context(), user, listID, recipeID); err != nil {
			fail(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "success"}) // Structured acknowledgment
	}
}
