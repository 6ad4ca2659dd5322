package storage

import (
	"context"

	"github.com/iudanet/credadmin/internal/models"
)

// SortOrder is one "property,direction" pair of a listing request.
type SortOrder struct {
	Property string
	Desc     bool
}

// Query описывает страницу выборки. Size == 0 означает без ограничения.
type Query struct {
	Text string // подстрока для поиска, пусто для обычного списка
	Sort []SortOrder
	Page int
	Size int
}

// CredentialStorage defines interface for credential persistence
type CredentialStorage interface {
	// CreateCredential inserts a credential and assigns its ID
	CreateCredential(ctx context.Context, cred *models.Credential) error

	// UpdateCredential replaces all fields of an existing credential
	// Returns ErrCredentialNotFound if credential doesn't exist
	UpdateCredential(ctx context.Context, cred *models.Credential) error

	// GetCredential retrieves credential by ID with the owner login filled in
	// Returns ErrCredentialNotFound if credential doesn't exist
	GetCredential(ctx context.Context, id int64) (*models.Credential, error)

	// ListCredentials returns a page of credentials and the total count.
	// If q.Text is not empty only credentials whose login or owner login
	// contains it are returned.
	ListCredentials(ctx context.Context, q Query) ([]*models.Credential, int, error)

	// DeleteCredential deletes credential by ID
	// Returns ErrCredentialNotFound if credential doesn't exist
	DeleteCredential(ctx context.Context, id int64) error
}
