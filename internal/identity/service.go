package identity

import (
	"context" // Request-scoped cancellation
	"errors"  // Error matching
	"fmt"     // Error wrapping

	"tender/internal/domain" // Importing domain models

	"github.com/sirupsen/logrus" // Logging library
	"golang.org/x/crypto/bcrypt" // Password hashing
	"gorm.io/gorm"               // GORM ORM library
)

// Seeded list every new account starts with
const (
	DefaultListTitle       = "My List"
	DefaultListDescription = "Recipes saved for later"
)

// dummyHash is compared against when the username does not exist, so the
// unknown-user and wrong-password paths cost roughly the same.
var dummyHash, _ = bcrypt.GenerateFromPassword([]byte("tender-dummy-password"), bcrypt.DefaultCost)

// Service is the identity store: user records and credential verification
type Service struct {
	db *gorm.DB // Relational store
}

// NewService creates an identity service backed by db
func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}

// RegisterParams carries the signup fields
type RegisterParams struct {
	FirstName string // Given name
	LastName  string // Family name
	Username  string // Desired username
	Email     string // Email address
	Password  string // Plaintext password, hashed before storage
}

// Register hashes the password and creates the user together with their
// seeded default list in one transaction. Duplicate username or email is
// detected by the unique indexes at commit time, not pre-checked, so two
// racing signups cannot both succeed.
func (s *Service) Register(ctx context.Context, p RegisterParams) (*domain.User, error) {
	// Hash the password
	hash, err := bcrypt.GenerateFromPassword([]byte(p.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err) // Hashing failure is not a user error
	}
	user := domain.User{
		FirstName: p.FirstName, // Given name
		LastName:  p.LastName,  // Family name
		Username:  p.Username,  // Username
		Email:     p.Email,     // Email address
		Password:  string(hash), // Stored hash
	}
	// Create user and seeded list atomically
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// Insert the user row
		if err := tx.Create(&user).Error; err != nil {
			return err // Rollback, may be a duplicate key
		}
		// Every new account starts with a default list
		seeded := domain.List{
			Title:       DefaultListTitle,       // Seeded list title
			Description: DefaultListDescription, // Seeded list description
			Username:    user.Username,          // Owned by the new user
		}
		return tx.Create(&seeded).Error
	})
	if err != nil {
		// Unique index violation on username or email
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, fmt.Errorf("username or email already taken: %w", domain.ErrConflict)
		}
		return nil, err
	}
	// Log the new account
	logrus.WithFields(logrus.Fields{
		"user_id":  user.ID,       // New user ID
		"username": user.Username, // New username
	}).Info("User registered")
	return &user, nil
}

// Authenticate looks the user up by username and verifies the password.
// Both unknown-user and wrong-password return the same error.
func (s *Service) Authenticate(ctx context.Context, username, password string) (*domain.User, error) {
	var user domain.User // Fetch user from database
	if err := s.db.WithContext(ctx).Where("username = ?", username).First(&user).Error; err != nil {
		// Burn a comparable amount of time before the uniform failure
		_ = bcrypt.CompareHashAndPassword(dummyHash, []byte(password))
		return nil, domain.ErrInvalidCredentials
	}
	// Compare provided password with stored hash
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, domain.ErrInvalidCredentials
	}
	return &user, nil
}

// UpdateProfile changes username and/or email after re-verifying the
// caller's current password. The lists foreign key cascades the username
// change to owned lists.
func (s *Service) UpdateProfile(ctx context.Context, userID uint, newUsername, newEmail, currentPassword string) (*domain.User, error) {
	var user domain.User // Load the current row
	if err := s.db.WithContext(ctx).First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound // Account no longer exists
		}
		return nil, err
	}
	// Re-authentication step: the current password, not a new one
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(currentPassword)); err != nil {
		return nil, domain.ErrInvalidCredentials
	}
	updates := map[string]any{} // Only touch provided fields
	if newUsername != "" {
		updates["username"] = newUsername // New username
	}
	if newEmail != "" {
		updates["email"] = newEmail // New email
	}
	if len(updates) == 0 {
		return &user, nil // Nothing to change
	}
	// Apply the change, relying on the unique indexes for conflicts
	if err := s.db.WithContext(ctx).Model(&user).Updates(updates).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, fmt.Errorf("username or email already taken: %w", domain.ErrConflict)
		}
		return nil, err
	}
	return &user, nil
}

// Delete removes the user. Owned lists, their membership rows and the
// user's favorites all go with it through the cascading foreign keys.
func (s *Service) Delete(ctx context.Context, userID uint) error {
	res := s.db.WithContext(ctx).Delete(&domain.User{}, userID)
	if res.Error != nil {
		return res.Error // Storage error
	}
	if res.RowsAffected == 0 {
		return domain.ErrNotFound // Already gone
	}
	// Log the account deletion
	logrus.WithFields(logrus.Fields{"user_id": userID}).Info("User deleted")
	return nil
}

// FindByID fetches a user row by primary key
func (s *Service) FindByID(ctx context.Context, userID uint) (*domain.User, error) {
	var user domain.User // Fetch user from database
	if err := s.db.WithContext(ctx).First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound // No such user
		}
		return nil, err
	}
	return &user, nil
}
