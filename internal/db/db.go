package db

import (
	"tender/internal/domain" // Importing domain models

	"gorm.io/driver/mysql" // MySQL driver for GORM
	"gorm.io/gorm"         // GORM ORM library
)

// Open connects to MySQL and registers the join tables.
// TranslateError turns driver duplicate-key errors into gorm.ErrDuplicatedKey
// so uniqueness conflicts can be caught at commit time instead of pre-checked.
func Open(dsn string) (*gorm.DB, error) {
	gdb, err := gorm.Open(mysql.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		return nil, err // Return error if connection fails
	}
	// Register join tables on the opened connection
	if err := SetupJoinTables(gdb); err != nil {
		return nil, err
	}
	return gdb, nil
}

// SetupJoinTables registers the explicit composite-key join models so that
// association reads and direct membership-row writes share the same tables.
func SetupJoinTables(gdb *gorm.DB) error {
	// users_favorites_recipes backs User.Favorites
	if err := gdb.SetupJoinTable(&domain.User{}, "Favorites", &domain.FavoriteRecipe{}); err != nil {
		return err
	}
	// lists_recipes backs List.Recipes
	return gdb.SetupJoinTable(&domain.List{}, "Recipes", &domain.ListRecipe{})
}
