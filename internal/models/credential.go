package models

import (
	"fmt"
	"time"

	"github.com/iudanet/credadmin/pkg/api"
)

// Credential представляет учетную запись входа, привязанную к пользователю.
// ID отсутствует у черновика и назначается сервером при первом сохранении.
type Credential struct {
	ID            *int64     `json:"id,omitempty"`
	LastLoginDate *time.Time `json:"lastLoginDate,omitempty"`
	ResetDate     *time.Time `json:"resetDate,omitempty"`
	UserID        *int64     `json:"userId,omitempty"`
	Login         string     `json:"login"`
	PasswordHash  string     `json:"passwordHash,omitempty"`
	ActivationKey string     `json:"activationKey,omitempty"`
	ResetKey      string     `json:"resetKey,omitempty"`
	UserLogin     string     `json:"userLogin,omitempty"`
	Activated     bool       `json:"activated"`
	Primary       bool       `json:"primary"`
}

// NewCredential returns an empty draft ready for the "new" dialog.
func NewCredential() *Credential {
	return &Credential{
		Activated: false,
		Primary:   false,
	}
}

// HasID reports whether the record was already persisted.
func (c *Credential) HasID() bool {
	return c != nil && c.ID != nil
}

// IDValue returns the identifier or 0 for a draft.
func (c *Credential) IDValue() int64 {
	if c == nil || c.ID == nil {
		return 0
	}
	return *c.ID
}

// Clone returns a deep copy so a dialog can own its draft exclusively.
func (c *Credential) Clone() *Credential {
	if c == nil {
		return nil
	}
	cp := *c
	cp.ID = clonePtr(c.ID)
	cp.UserID = clonePtr(c.UserID)
	cp.LastLoginDate = clonePtr(c.LastLoginDate)
	cp.ResetDate = clonePtr(c.ResetDate)
	return &cp
}

// ToWire converts the record to its wire representation.
// Временные поля сериализуются в UTC с наносекундной точностью.
func (c *Credential) ToWire() api.CredentialDTO {
	return api.CredentialDTO{
		ID:            clonePtr(c.ID),
		Login:         c.Login,
		PasswordHash:  c.PasswordHash,
		LastLoginDate: formatTime(c.LastLoginDate),
		ActivationKey: c.ActivationKey,
		ResetKey:      c.ResetKey,
		ResetDate:     formatTime(c.ResetDate),
		UserLogin:     c.UserLogin,
		UserID:        clonePtr(c.UserID),
		Activated:     c.Activated,
		Primary:       c.Primary,
	}
}

// CredentialFromWire converts a wire record into the in-memory shape.
func CredentialFromWire(dto api.CredentialDTO) (*Credential, error) {
	lastLogin, err := parseTime(dto.LastLoginDate)
	if err != nil {
		return nil, fmt.Errorf("invalid lastLoginDate: %w", err)
	}
	resetDate, err := parseTime(dto.ResetDate)
	if err != nil {
		return nil, fmt.Errorf("invalid resetDate: %w", err)
	}

	return &Credential{
		ID:            clonePtr(dto.ID),
		Login:         dto.Login,
		PasswordHash:  dto.PasswordHash,
		LastLoginDate: lastLogin,
		ActivationKey: dto.ActivationKey,
		ResetKey:      dto.ResetKey,
		ResetDate:     resetDate,
		UserLogin:     dto.UserLogin,
		UserID:        clonePtr(dto.UserID),
		Activated:     dto.Activated,
		Primary:       dto.Primary,
	}, nil
}

// CredentialsFromWire converts a list response preserving order.
func CredentialsFromWire(dtos []api.CredentialDTO) ([]*Credential, error) {
	creds := make([]*Credential, 0, len(dtos))
	for i, dto := range dtos {
		cred, err := CredentialFromWire(dto)
		if err != nil {
			return nil, fmt.Errorf("item %d: %w", i, err)
		}
		creds = append(creds, cred)
	}
	return creds, nil
}

func formatTime(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.UTC().Format(time.RFC3339Nano)
	return &s
}

func parseTime(s *string) (*time.Time, error) {
	if s == nil || *s == "" {
		return nil, nil
	}
	t, err := time.Parse(time.RFC3339Nano, *s)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func clonePtr[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

// Int64Ptr is a small helper for building records in code and tests.
func Int64Ptr(v int64) *int64 {
	return &v
}
