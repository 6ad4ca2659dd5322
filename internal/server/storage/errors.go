package storage

import "errors"

// Common storage errors
var (
	// ErrUserNotFound indicates that user was not found in storage
	ErrUserNotFound = errors.New("user not found")

	// ErrUserAlreadyExists indicates that user with this login already exists
	ErrUserAlreadyExists = errors.New("user already exists")

	// ErrCredentialNotFound indicates that credential was not found in storage
	ErrCredentialNotFound = errors.New("credential not found")

	// ErrInvalidSort indicates a sort property that cannot be ordered by
	ErrInvalidSort = errors.New("invalid sort property")
)
