package domain

import "errors"

// Error taxonomy shared by the identity, catalog and membership layers.
// Handlers map these onto HTTP statuses with errors.Is.
var (
	ErrConflict           = errors.New("conflict")            // Uniqueness violation: username, email, list title or association pair
	ErrForbidden          = errors.New("forbidden")           // Authenticated actor is not the owner
	ErrNotFound           = errors.New("not found")           // Referenced list, recipe or association row does not exist
	ErrInvalidCredentials = errors.New("invalid credentials") // Bad username/password, uniform for both failure modes
)
