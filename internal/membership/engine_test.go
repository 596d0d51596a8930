package membership

import (
	"context"
	"testing"

	"tender/internal/domain"
	"tender/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// fixture is the shared sample data: two users and one catalog recipe
type fixture struct {
	gdb    *gorm.DB
	engine *Engine
	alice  *domain.User
	bob    *domain.User
	recipe *domain.Recipe
}

// newFixture seeds two users and one recipe
func newFixture(t *testing.T) *fixture {
	t.Helper()
	gdb := testutil.OpenDB(t)
	alice := &domain.User{FirstName: "Test", LastName: "User", Username: "alice", Email: "alice@test.com", Password: "HASHED_PASSWORD"}
	bob := &domain.User{FirstName: "Test", LastName: "User", Username: "bob", Email: "bob@test.com", Password: "HASHED_PASSWORD"}
	recipe := &domain.Recipe{SourceID: 12345, Title: "Test Recipe", ImageURL: "https://example.com/image.jpg"}
	require.NoError(t, gdb.Create(alice).Error)
	require.NoError(t, gdb.Create(bob).Error)
	require.NoError(t, gdb.Create(recipe).Error)
	return &fixture{gdb: gdb, engine: NewEngine(gdb), alice: alice, bob: bob, recipe: recipe}
}

// Lists are created per owner and titles only collide within one owner
func TestCreateList(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	list, err := f.engine.CreateList(ctx, f.alice, "My List", "Recipes saved for later")
	require.NoError(t, err)
	assert.Equal(t, "alice", list.Username)

	// Same owner, same title: conflict
	_, err = f.engine.CreateList(ctx, f.alice, "My List", "again")
	assert.ErrorIs(t, err, domain.ErrConflict)

	// Different owner, same title: fine
	_, err = f.engine.CreateList(ctx, f.bob, "My List", "bob's copy")
	require.NoError(t, err)
}

// Adding then removing the same pair returns the membership set to its prior state
func TestAddRemoveRoundTrip(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	list, err := f.engine.CreateList(ctx, f.alice, "My List", "Recipes saved for later")
	require.NoError(t, err)

	require.NoError(t, f.engine.AddRecipeToList(ctx, f.alice, "My List", f.recipe.ID))

	recipes, err := f.engine.RecipesIn(ctx, list.ID)
	require.NoError(t, err)
	require.Len(t, recipes, 1)
	assert.Equal(t, "Test Recipe", recipes[0].Title)

	require.NoError(t, f.engine.RemoveRecipeFromList(ctx, f.alice, list.ID, f.recipe.ID))

	recipes, err = f.engine.RecipesIn(ctx, list.ID)
	require.NoError(t, err)
	assert.Empty(t, recipes)
}

// Adding an already-present pair conflicts and never duplicates the row
func TestAddRecipeToListDuplicate(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	list, err := f.engine.CreateList(ctx, f.alice, "My List", "Recipes saved for later")
	require.NoError(t, err)

	require.NoError(t, f.engine.AddRecipeToList(ctx, f.alice, "My List", f.recipe.ID))
	assert.ErrorIs(t, f.engine.AddRecipeToList(ctx, f.alice, "My List", f.recipe.ID), domain.ErrConflict)

	var rows int64
	require.NoError(t, f.gdb.Model(&domain.ListRecipe{}).Where("list_id = ?", list.ID).Count(&rows).Error)
	assert.EqualValues(t, 1, rows)
}

// Missing lists and recipes are reported as not found
func TestAddRecipeToListMissingTargets(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	// No list with this title anywhere
	assert.ErrorIs(t, f.engine.AddRecipeToList(ctx, f.alice, "No Such List", f.recipe.ID), domain.ErrNotFound)

	_, err := f.engine.CreateList(ctx, f.alice, "My List", "Recipes saved for later")
	require.NoError(t, err)

	// List exists but the recipe does not
	assert.ErrorIs(t, f.engine.AddRecipeToList(ctx, f.alice, "My List", f.recipe.ID+1000), domain.ErrNotFound)
}

// A non-owner targeting another user's list title is forbidden
func TestAddRecipeToListForbidden(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	list, err := f.engine.CreateList(ctx, f.alice, "Weeknight Dinners", "quick ones")
	require.NoError(t, err)

	assert.ErrorIs(t, f.engine.AddRecipeToList(ctx, f.bob, "Weeknight Dinners", f.recipe.ID), domain.ErrForbidden)

	// Alice's list is unchanged
	recipes, err := f.engine.RecipesIn(ctx, list.ID)
	require.NoError(t, err)
	assert.Empty(t, recipes)
}

// Only the owner can delete a list; the list survives a forbidden attempt
func TestDeleteListOwnership(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	list, err := f.engine.CreateList(ctx, f.alice, "My List", "Recipes saved for later")
	require.NoError(t, err)

	assert.ErrorIs(t, f.engine.DeleteList(ctx, f.bob, list.ID), domain.ErrForbidden)

	var still domain.List
	require.NoError(t, f.gdb.First(&still, list.ID).Error) // Still there

	require.NoError(t, f.engine.DeleteList(ctx, f.alice, list.ID))
	assert.ErrorIs(t, f.engine.DeleteList(ctx, f.alice, list.ID), domain.ErrNotFound)
}

// Deleting a list removes all its membership rows
func TestDeleteListCascadesMemberships(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	list, err := f.engine.CreateList(ctx, f.alice, "My List", "Recipes saved for later")
	require.NoError(t, err)
	require.NoError(t, f.engine.AddRecipeToList(ctx, f.alice, "My List", f.recipe.ID))

	require.NoError(t, f.engine.DeleteList(ctx, f.alice, list.ID))

	var rows int64
	require.NoError(t, f.gdb.Model(&domain.ListRecipe{}).Count(&rows).Error)
	assert.Zero(t, rows)
}

// Removing a recipe that is not a member is not found; non-owners are forbidden
func TestRemoveRecipeFromListBoundaries(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	list, err := f.engine.CreateList(ctx, f.alice, "My List", "Recipes saved for later")
	require.NoError(t, err)

	assert.ErrorIs(t, f.engine.RemoveRecipeFromList(ctx, f.alice, list.ID, f.recipe.ID), domain.ErrNotFound)
	assert.ErrorIs(t, f.engine.RemoveRecipeFromList(ctx, f.alice, list.ID+1000, f.recipe.ID), domain.ErrNotFound)

	require.NoError(t, f.engine.AddRecipeToList(ctx, f.alice, "My List", f.recipe.ID))
	assert.ErrorIs(t, f.engine.RemoveRecipeFromList(ctx, f.bob, list.ID, f.recipe.ID), domain.ErrForbidden)

	// Forbidden attempt changed nothing
	recipes, err := f.engine.RecipesIn(ctx, list.ID)
	require.NoError(t, err)
	assert.Len(t, recipes, 1)
}

// Favoriting twice conflicts, unfavoriting an absent pair is not found
func TestFavorites(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	require.NoError(t, f.engine.AddFavorite(ctx, f.alice, f.recipe.ID))
	assert.ErrorIs(t, f.engine.AddFavorite(ctx, f.alice, f.recipe.ID), domain.ErrConflict)

	var rows int64
	require.NoError(t, f.gdb.Model(&domain.FavoriteRecipe{}).Count(&rows).Error)
	assert.EqualValues(t, 1, rows) // No duplicate row behind the conflict

	favorites, err := f.engine.FavoritesOf(ctx, f.alice.ID)
	require.NoError(t, err)
	require.Len(t, favorites, 1)
	assert.Equal(t, "Test Recipe", favorites[0].Title)

	// Bob's favorites are his own
	favorites, err = f.engine.FavoritesOf(ctx, f.bob.ID)
	require.NoError(t, err)
	assert.Empty(t, favorites)

	require.NoError(t, f.engine.RemoveFavorite(ctx, f.alice, f.recipe.ID))
	assert.ErrorIs(t, f.engine.RemoveFavorite(ctx, f.alice, f.recipe.ID), domain.ErrNotFound)

	// Favoriting a recipe that is not in the catalog is not found
	assert.ErrorIs(t, f.engine.AddFavorite(ctx, f.alice, f.recipe.ID+1000), domain.ErrNotFound)
}

// Lists come back ordered and detail views are owner-only
func TestReads(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	first, err := f.engine.CreateList(ctx, f.alice, "First", "one")
	require.NoError(t, err)
	second, err := f.engine.CreateList(ctx, f.alice, "Second", "two")
	require.NoError(t, err)

	lists, err := f.engine.ListsOwnedBy(ctx, "alice")
	require.NoError(t, err)
	require.Len(t, lists, 2)
	assert.Equal(t, first.ID, lists[0].ID)
	assert.Equal(t, second.ID, lists[1].ID)

	require.NoError(t, f.engine.AddRecipeToList(ctx, f.alice, "First", f.recipe.ID))

	detail, err := f.engine.GetList(ctx, f.alice, first.ID)
	require.NoError(t, err)
	require.Len(t, detail.Recipes, 1)
	assert.Equal(t, "Test Recipe", detail.Recipes[0].Title)

	_, err = f.engine.GetList(ctx, f.bob, first.ID)
	assert.ErrorIs(t, err, domain.ErrForbidden)

	_, err = f.engine.GetList(ctx, f.alice, second.ID+1000)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
