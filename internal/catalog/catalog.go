package catalog

import (
	"context" // Request-scoped cancellation
	"errors"  // Error matching

	"tender/internal/domain" // Importing domain models

	"github.com/sirupsen/logrus" // Logging library
	"gorm.io/gorm"               // GORM ORM library
)

// Store is the read-mostly recipe catalog. Rows come from the ingestion job
// and are immutable afterwards.
type Store struct {
	db *gorm.DB // Relational store
}

// NewStore creates a catalog store backed by db
func NewStore(db *gorm.DB) *Store {
	return &Store{db: db}
}

// SeedRecipe is one validated triple produced by the ingestion collaborator
type SeedRecipe struct {
	SourceID int    // Upstream recipe id
	Title    string // Recipe title
	ImageURL string // Image reference
}

// FindByID fetches a recipe by primary key
func (s *Store) FindByID(ctx context.Context, id uint) (*domain.Recipe, error) {
	var recipe domain.Recipe // Fetch recipe from database
	if err := s.db.WithContext(ctx).First(&recipe, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound // No such recipe
		}
		return nil, err
	}
	return &recipe, nil
}

// All returns the whole catalog ordered by id
func (s *Store) All(ctx context.Context) ([]domain.Recipe, error) {
	var recipes []domain.Recipe // Slice to hold recipes
	if err := s.db.WithContext(ctx).Order("id").Find(&recipes).Error; err != nil {
		return nil, err
	}
	return recipes, nil
}

// FindBySourceID fetches a recipe by its upstream id, used by ingestion to
// avoid duplicate catalog entries
func (s *Store) FindBySourceID(ctx context.Context, sourceID int) (*domain.Recipe, error) {
	var recipe domain.Recipe // Fetch recipe from database
	if err := s.db.WithContext(ctx).Where("source_id = ?", sourceID).First(&recipe).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound // Not ingested yet
		}
		return nil, err
	}
	return &recipe, nil
}

// Ingest inserts seed triples into the catalog, skipping any whose source id
// is already present. The unique index on source_id catches racing inserts,
// so re-running the seed job never duplicates a recipe. Returns how many
// rows were actually inserted.
func (s *Store) Ingest(ctx context.Context, seeds []SeedRecipe) (int, error) {
	inserted := 0 // Count of new rows
	for _, seed := range seeds {
		recipe := domain.Recipe{
			SourceID: seed.SourceID, // Upstream recipe id
			Title:    seed.Title,    // Recipe title
			ImageURL: seed.ImageURL, // Image reference
		}
		if err := s.db.WithContext(ctx).Create(&recipe).Error; err != nil {
			// Already ingested, move on
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				logrus.WithFields(logrus.Fields{"source_id": seed.SourceID}).Debug("Recipe already ingested")
				continue
			}
			return inserted, err
		}
		inserted++ // New catalog entry
	}
	return inserted, nil
}
