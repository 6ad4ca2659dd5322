package storage

import (
	"context"
	"slices"
	"time"
)

//go:generate moq -out sessionstorage_mock.go . SessionStorage

// SessionStorage хранит сессию администратора между запусками клиента.
type SessionStorage interface {
	// SaveSession stores the session, replacing the previous one
	SaveSession(ctx context.Context, session *SessionData) error

	// GetSession returns the stored session
	// Returns ErrSessionNotFound if the user is logged out
	GetSession(ctx context.Context) (*SessionData, error)

	// DeleteSession removes the session (logout)
	DeleteSession(ctx context.Context) error

	// IsAuthenticated reports whether a non-expired session exists
	IsAuthenticated(ctx context.Context) (bool, error)
}

// SessionData is the persisted login state.
type SessionData struct {
	ExpiresAt   time.Time `json:"expires_at"`
	Username    string    `json:"username"`
	ServerURL   string    `json:"server_url"`
	AccessToken string    `json:"access_token"`
	Authorities []string  `json:"authorities"`
}

// Expired reports whether the token has expired at now.
// A zero ExpiresAt never expires.
func (s *SessionData) Expired(now time.Time) bool {
	return !s.ExpiresAt.IsZero() && !now.Before(s.ExpiresAt)
}

// HasAuthority reports whether the session was granted authority.
func (s *SessionData) HasAuthority(authority string) bool {
	return slices.Contains(s.Authorities, authority)
}
