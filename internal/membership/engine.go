package membership

import (
	"context" // Request-scoped cancellation
	"errors"  // Error matching
	"fmt"     // Error wrapping

	"tender/internal/domain" // Importing domain models

	"github.com/sirupsen/logrus" // Logging library
	"gorm.io/gorm"               // GORM ORM library
)

// Engine manages lists and the two association sets: list membership
// (lists_recipes) and favorites (users_favorites_recipes). Every mutation
// runs its ownership check and its write inside one transaction, so a
// concurrent delete of the list or user cannot slip between them.
type Engine struct {
	db *gorm.DB // Relational store
}

// NewEngine creates a membership engine backed by db
func NewEngine(db *gorm.DB) *Engine {
	return &Engine{db: db}
}

// CreateList creates a list owned by actor. The (owner, title) unique index
// reports a duplicate title at commit time.
func (e *Engine) CreateList(ctx context.Context, actor *domain.User, title, description string) (*domain.List, error) {
	list := domain.List{
		Title:       title,          // List title
		Description: description,    // List description
		Username:    actor.Username, // Owned by the actor
	}
	if err := e.db.WithContext(ctx).Create(&list).Error; err != nil {
		// Actor already has a list with this title
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, fmt.Errorf("list title already taken: %w", domain.ErrConflict)
		}
		return nil, err
	}
	// Log list creation
	logrus.WithFields(logrus.Fields{
		"list_id":  list.ID,        // New list ID
		"username": actor.Username, // Owner
	}).Info("List created")
	return &list, nil
}

// DeleteList deletes actor's list. Membership rows cascade with it.
func (e *Engine) DeleteList(ctx context.Context, actor *domain.User, listID uint) error {
	err := e.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var list domain.List // Resolve the list
		if err := tx.First(&list, listID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.ErrNotFound // No such list
			}
			return err
		}
		// Only the owner may delete a list
		if list.Username != actor.Username {
			return domain.ErrForbidden
		}
		return tx.Delete(&list).Error // Join rows cascade
	})
	if err != nil {
		return err
	}
	// Log list deletion
	logrus.WithFields(logrus.Fields{
		"list_id":  listID,         // Deleted list ID
		"username": actor.Username, // Owner
	}).Info("List deleted")
	return nil
}

// AddRecipeToList resolves the list by title among the actor's lists and
// inserts a membership row. Adding a pair that is already present is a
// conflict, enforced by the composite primary key, never a duplicate row.
func (e *Engine) AddRecipeToList(ctx context.Context, actor *domain.User, listTitle string, recipeID uint) error {
	err := e.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var list domain.List // Resolve the actor's list by title
		if err := tx.Where("username = ? AND title = ?", actor.Username, listTitle).First(&list).Error; err != nil {
			if !errors.Is(err, gorm.ErrRecordNotFound) {
				return err
			}
			// Title exists but belongs to someone else: that list is off limits
			var count int64
			if err := tx.Model(&domain.List{}).Where("title = ?", listTitle).Count(&count).Error; err != nil {
				return err
			}
			if count > 0 {
				return domain.ErrForbidden
			}
			return domain.ErrNotFound // No list with this title at all
		}
		// The recipe must exist in the catalog
		var recipe domain.Recipe
		if err := tx.First(&recipe, recipeID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.ErrNotFound
			}
			return err
		}
		// Insert the membership row
		if err := tx.Create(&domain.ListRecipe{ListID: list.ID, RecipeID: recipe.ID}).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return fmt.Errorf("recipe already in list: %w", domain.ErrConflict)
			}
			return err
		}
		return nil
	})
	if err != nil {
		return err
	}
	// Log membership addition
	logrus.WithFields(logrus.Fields{
		"list_title": listTitle,      // Target list
		"recipe_id":  recipeID,       // Added recipe
		"username":   actor.Username, // Owner
	}).Info("Recipe added to list")
	return nil
}

// RemoveRecipeFromList deletes the membership row identified by its
// composite key. An absent row is not found, not a silent no-op.
func (e *Engine) RemoveRecipeFromList(ctx context.Context, actor *domain.User, listID, recipeID uint) error {
	err := e.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var list domain.List // Resolve the list
		if err := tx.First(&list, listID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.ErrNotFound // No such list
			}
			return err
		}
		// Only the owner may edit a list's members
		if list.Username != actor.Username {
			return domain.ErrForbidden
		}
		// Delete by composite key
		res := tx.Where("list_id = ? AND recipe_id = ?", listID, recipeID).Delete(&domain.ListRecipe{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return domain.ErrNotFound // Pair was not a member
		}
		return nil
	})
	if err != nil {
		return err
	}
	// Log membership removal
	logrus.WithFields(logrus.Fields{
		"list_id":   listID,         // Target list
		"recipe_id": recipeID,       // Removed recipe
		"username":  actor.Username, // Owner
	}).Info("Recipe removed from list")
	return nil
}

// AddFavorite marks a recipe as one of actor's favorites. Favoriting a
// recipe twice is a conflict, enforced by the composite primary key.
func (e *Engine) AddFavorite(ctx context.Context, actor *domain.User, recipeID uint) error {
	err := e.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// The recipe must exist in the catalog
		var recipe domain.Recipe
		if err := tx.First(&recipe, recipeID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.ErrNotFound
			}
			return err
		}
		// Insert the favorite row
		if err := tx.Create(&domain.FavoriteRecipe{UserID: actor.ID, RecipeID: recipe.ID}).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return fmt.Errorf("recipe already favorited: %w", domain.ErrConflict)
			}
			return err
		}
		return nil
	})
	if err != nil {
		return err
	}
	// Log favorite addition
	logrus.WithFields(logrus.Fields{
		"user_id":   actor.ID, // Favoriting user
		"recipe_id": recipeID, // Favorited recipe
	}).Info("Favorite added")
	return nil
}

// RemoveFavorite removes a recipe from actor's favorites. Removing a recipe
// that was never favorited is not found.
func (e *Engine) RemoveFavorite(ctx context.Context, actor *domain.User, recipeID uint) error {
	res := e.db.WithContext(ctx).
		Where("user_id = ? AND recipe_id = ?", actor.ID, recipeID).
		Delete(&domain.FavoriteRecipe{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrNotFound // Pair was not a favorite
	}
	// Log favorite removal
	logrus.WithFields(logrus.Fields{
		"user_id":   actor.ID, // User
		"recipe_id": recipeID, // Unfavorited recipe
	}).Info("Favorite removed")
	return nil
}

// ListsOwnedBy returns a user's lists ordered by id
func (e *Engine) ListsOwnedBy(ctx context.Context, username string) ([]domain.List, error) {
	var lists []domain.List // Slice to hold lists
	if err := e.db.WithContext(ctx).Where("username = ?", username).Order("id").Find(&lists).Error; err != nil {
		return nil, err
	}
	return lists, nil
}

// GetList returns one of actor's lists with its member recipes loaded.
// Detail views are owner-only.
func (e *Engine) GetList(ctx context.Context, actor *domain.User, listID uint) (*domain.List, error) {
	var list domain.List // Fetch the list with members
	if err := e.db.WithContext(ctx).Preload("Recipes").First(&list, listID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound // No such list
		}
		return nil, err
	}
	// Only the owner may view the detail
	if list.Username != actor.Username {
		return nil, domain.ErrForbidden
	}
	return &list, nil
}

// RecipesIn returns the member recipes of a list
func (e *Engine) RecipesIn(ctx context.Context, listID uint) ([]domain.Recipe, error) {
	list := domain.List{ID: listID} // Association anchor
	var recipes []domain.Recipe     // Slice to hold recipes
	if err := e.db.WithContext(ctx).Model(&list).Association("Recipes").Find(&recipes); err != nil {
		return nil, err
	}
	return recipes, nil
}

// FavoritesOf returns the recipes a user has favorited
func (e *Engine) FavoritesOf(ctx context.Context, userID uint) ([]domain.Recipe, error) {
	user := domain.User{ID: userID} // Association anchor
	var recipes []domain.Recipe     // Slice to hold recipes
	if err := e.db.WithContext(ctx).Model(&user).Association("Favorites").Find(&recipes); err != nil {
		return nil, err
	}
	return recipes, nil
}
