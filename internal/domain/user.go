package domain

// User Model
type User struct {
	ID        uint     `gorm:"primaryKey" json:"id"`            // Primary key
	FirstName string   `gorm:"not null" json:"first_name"`      // Given name
	LastName  string   `gorm:"not null" json:"last_name"`       // Family name
	Email     string   `gorm:"unique;not null" json:"email"`    // Unique email address
	Username  string   `gorm:"unique;not null" json:"username"` // Unique username, referenced by lists
	Password  string   `gorm:"not null" json:"-"`               // Bcrypt hash, never plaintext
	Favorites []Recipe `gorm:"many2many:users_favorites_recipes;constraint:OnDelete:CASCADE" json:"-"` // Favorited recipes
}

// FavoriteRecipe is one row of the users_favorites_recipes join table.
// The composite primary key makes the favorite set a set, not a multiset.
type FavoriteRecipe struct {
	UserID   uint `gorm:"primaryKey;autoIncrement:false" json:"user_id"`   // Favoriting user
	RecipeID uint `gorm:"primaryKey;autoIncrement:false" json:"recipe_id"` // Favorited recipe
}

// TableName keeps the table name the schema uses
func (FavoriteRecipe) TableName() string {
	return "users_favorites_recipes"
}
