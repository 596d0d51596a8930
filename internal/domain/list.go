package domain

// List Model
type List struct {
	ID          uint     `gorm:"primaryKey" json:"id"`                                             // Primary key
	Title       string   `gorm:"not null;uniqueIndex:idx_lists_owner_title" json:"title"`          // List title, unique per owner
	Description string   `gorm:"not null" json:"description"`                                      // List description
	Username    string   `gorm:"not null;index;uniqueIndex:idx_lists_owner_title" json:"username"` // Owning user's username
	Owner       User     `gorm:"foreignKey:Username;references:Username;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"` // Owner lookup, cascades with the user
	Recipes     []Recipe `gorm:"many2many:lists_recipes;constraint:OnDelete:CASCADE" json:"-"`                                  // Member recipes
}

// ListRecipe is one row of the lists_recipes join table.
// The composite primary key allows at most one membership per (list, recipe) pair.
type ListRecipe struct {
	ListID   uint `gorm:"primaryKey;autoIncrement:false" json:"list_id"`   // Containing list
	RecipeID uint `gorm:"primaryKey;autoIncrement:false" json:"recipe_id"` // Member recipe
}

// TableName keeps the table name the schema uses
func (ListRecipe) TableName() string {
	return "lists_recipes"
}
