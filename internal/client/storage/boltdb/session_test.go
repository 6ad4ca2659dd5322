package boltdb

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iudanet/credadmin/internal/client/storage"
)

// создаём тестовое BoltDB хранилище
func createTestStorage(t *testing.T) *Storage {
	t.Helper()
	store, err := New(context.Background(), filepath.Join(t.TempDir(), "session_test.db"))
	require.NoError(t, err)
	t.Cleanup(func() {
		require.NoError(t, store.Close())
	})
	return store
}

func TestStorage_SaveGetDeleteSession(t *testing.T) {
	ctx := context.Background()
	store := createTestStorage(t)

	session := &storage.SessionData{
		Username:    "admin",
		ServerURL:   "http://localhost:8080",
		AccessToken: "jwt-token",
		Authorities: []string{"ROLE_USER", "ROLE_ADMIN"},
		ExpiresAt:   time.Now().Add(time.Hour).UTC().Truncate(time.Second),
	}

	// До сохранения сессии нет
	_, err := store.GetSession(ctx)
	assert.ErrorIs(t, err, storage.ErrSessionNotFound)

	require.NoError(t, store.SaveSession(ctx, session))

	got, err := store.GetSession(ctx)
	require.NoError(t, err)
	assert.Equal(t, session.Username, got.Username)
	assert.Equal(t, session.ServerURL, got.ServerURL)
	assert.Equal(t, session.AccessToken, got.AccessToken)
	assert.Equal(t, session.Authorities, got.Authorities)
	assert.True(t, session.ExpiresAt.Equal(got.ExpiresAt))

	ok, err := store.IsAuthenticated(ctx)
	require.NoError(t, err)
	assert.True(t, ok)

	// Истекшая сессия
	session.ExpiresAt = time.Now().Add(-time.Hour)
	require.NoError(t, store.SaveSession(ctx, session))
	ok, err = store.IsAuthenticated(ctx)
	require.NoError(t, err)
	assert.False(t, ok)

	// Logout
	require.NoError(t, store.DeleteSession(ctx))
	_, err = store.GetSession(ctx)
	assert.ErrorIs(t, err, storage.ErrSessionNotFound)

	ok, err = store.IsAuthenticated(ctx)
	require.NoError(t, err)
	assert.False(t, ok)

	// Повторный logout
	assert.ErrorIs(t, store.DeleteSession(ctx), storage.ErrSessionNotFound)
}

func TestStorage_SessionPersistsAcrossReopen(t *testing.T) {
	ctx := context.Background()
	dbPath := filepath.Join(t.TempDir(), "persist.db")

	store, err := New(ctx, dbPath)
	require.NoError(t, err)
	require.NoError(t, store.SaveSession(ctx, &storage.SessionData{Username: "admin", AccessToken: "t"}))
	require.NoError(t, store.Close())

	reopened, err := New(ctx, dbPath)
	require.NoError(t, err)
	defer reopened.Close()

	got, err := reopened.GetSession(ctx)
	require.NoError(t, err)
	assert.Equal(t, "admin", got.Username)

	// без срока действия сессия не истекает
	ok, err := reopened.IsAuthenticated(ctx)
	require.NoError(t, err)
	assert.True(t, ok)
}
