package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iudanet/credadmin/pkg/api"
)

func TestNewCredential_Defaults(t *testing.T) {
	c := NewCredential()

	assert.False(t, c.HasID())
	assert.False(t, c.Activated)
	assert.False(t, c.Primary)
	assert.Equal(t, int64(0), c.IDValue())
}

func TestCredential_WireRoundTrip(t *testing.T) {
	lastLogin := time.Date(2024, 3, 15, 10, 30, 45, 123456789, time.UTC)
	resetDate := time.Date(2024, 4, 1, 0, 0, 0, 0, time.FixedZone("UTC+3", 3*3600))

	orig := &Credential{
		ID:            Int64Ptr(42),
		Login:         "john.doe",
		PasswordHash:  "$argon2id$v=19$m=65536,t=1,p=4$abc$def",
		LastLoginDate: &lastLogin,
		ActivationKey: "act-123",
		ResetKey:      "reset-456",
		ResetDate:     &resetDate,
		Activated:     true,
		Primary:       true,
		UserLogin:     "admin",
		UserID:        Int64Ptr(7),
	}

	wire := orig.ToWire()
	require.NotNil(t, wire.LastLoginDate)
	assert.Equal(t, "2024-03-15T10:30:45.123456789Z", *wire.LastLoginDate)
	// Дата сброса нормализуется в UTC
	assert.Equal(t, "2024-03-31T21:00:00Z", *wire.ResetDate)

	// Проходим через JSON, как это делает клиент
	raw, err := json.Marshal(wire)
	require.NoError(t, err)
	var decoded api.CredentialDTO
	require.NoError(t, json.Unmarshal(raw, &decoded))

	back, err := CredentialFromWire(decoded)
	require.NoError(t, err)

	assert.Equal(t, orig.IDValue(), back.IDValue())
	assert.Equal(t, orig.Login, back.Login)
	assert.Equal(t, orig.PasswordHash, back.PasswordHash)
	assert.Equal(t, orig.ActivationKey, back.ActivationKey)
	assert.Equal(t, orig.ResetKey, back.ResetKey)
	assert.Equal(t, orig.Activated, back.Activated)
	assert.Equal(t, orig.Primary, back.Primary)
	assert.Equal(t, orig.UserLogin, back.UserLogin)
	assert.Equal(t, *orig.UserID, *back.UserID)
	assert.True(t, orig.LastLoginDate.Equal(*back.LastLoginDate))
	assert.True(t, orig.ResetDate.Equal(*back.ResetDate))
}

func TestCredentialFromWire_NilDates(t *testing.T) {
	back, err := CredentialFromWire(api.CredentialDTO{Login: "draft"})

	require.NoError(t, err)
	assert.Nil(t, back.ID)
	assert.Nil(t, back.LastLoginDate)
	assert.Nil(t, back.ResetDate)
	assert.Equal(t, "draft", back.Login)
}

func TestCredentialFromWire_InvalidDate(t *testing.T) {
	bad := "15/03/2024"

	_, err := CredentialFromWire(api.CredentialDTO{Login: "x", ResetDate: &bad})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid resetDate")
}

func TestCredentialsFromWire_PreservesOrder(t *testing.T) {
	dtos := []api.CredentialDTO{
		{ID: Int64Ptr(3), Login: "charlie"},
		{ID: Int64Ptr(1), Login: "alice"},
		{ID: Int64Ptr(2), Login: "bob"},
	}

	creds, err := CredentialsFromWire(dtos)

	require.NoError(t, err)
	require.Len(t, creds, 3)
	assert.Equal(t, "charlie", creds[0].Login)
	assert.Equal(t, "alice", creds[1].Login)
	assert.Equal(t, "bob", creds[2].Login)
}

func TestCredential_CloneIsIndependent(t *testing.T) {
	now := time.Now()
	orig := &Credential{ID: Int64Ptr(1), Login: "original", LastLoginDate: &now}

	cp := orig.Clone()
	*cp.ID = 99
	cp.Login = "changed"

	assert.Equal(t, int64(1), orig.IDValue())
	assert.Equal(t, "original", orig.Login)
	assert.NotSame(t, orig.LastLoginDate, cp.LastLoginDate)
	assert.Nil(t, (*Credential)(nil).Clone())
}

func TestUser_HasAuthority(t *testing.T) {
	u := &User{Authorities: []string{RoleUser}}

	assert.True(t, u.HasAuthority(RoleUser))
	assert.False(t, u.HasAuthority(RoleAdmin))
}
