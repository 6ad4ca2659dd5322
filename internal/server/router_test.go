package server

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iudanet/credadmin/internal/crypto"
	"github.com/iudanet/credadmin/internal/models"
	"github.com/iudanet/credadmin/internal/server/jwt"
	"github.com/iudanet/credadmin/internal/server/middleware"
	"github.com/iudanet/credadmin/internal/server/storage/sqlite"
	"github.com/iudanet/credadmin/pkg/api"
)

var lightParams = crypto.Params{Time: 1, Memory: 1024, Threads: 1, KeyLen: 32, SaltLen: 16}

type testServer struct {
	*httptest.Server
	store *sqlite.Storage
}

func setupTestServer(t *testing.T, limiter *middleware.RateLimiter) *testServer {
	t.Helper()
	ctx := context.Background()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	store, err := sqlite.New(ctx, ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	createUser(t, store, "admin", []string{models.RoleUser, models.RoleAdmin})
	createUser(t, store, "auditor", []string{models.RoleAdmin})

	srv := httptest.NewServer(NewRouter(Deps{
		Logger:       logger,
		Credentials:  store,
		Users:        store,
		DB:           store,
		Tokens:       jwt.NewService("router-test-secret-router-test-secret", time.Hour, 24*time.Hour),
		LoginLimiter: limiter,
		Version:      "test",
		CORSOrigins:  []string{"http://admin.example.com"},
	}))
	t.Cleanup(srv.Close)

	return &testServer{Server: srv, store: store}
}

func createUser(t *testing.T, store *sqlite.Storage, login string, authorities []string) {
	t.Helper()
	hash, err := crypto.HashPasswordWithParams("password", lightParams)
	require.NoError(t, err)
	require.NoError(t, store.CreateUser(context.Background(), &models.User{
		Login:        login,
		PasswordHash: hash,
		Authorities:  authorities,
		Activated:    true,
		CreatedAt:    time.Now(),
	}))
}

func (s *testServer) login(t *testing.T, username string) string {
	t.Helper()
	resp := s.do(t, http.MethodPost, "/api/authenticate", "", api.LoginRequest{Username: username, Password: "password"})
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var token api.TokenResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&token))
	require.NotEmpty(t, token.IDToken)
	return token.IDToken
}

func (s *testServer) do(t *testing.T, method, path, token string, body any) *http.Response {
	t.Helper()
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequest(method, s.URL+path, reader)
	require.NoError(t, err)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := s.Client().Do(req)
	require.NoError(t, err)
	return resp
}

func TestRouter_Health(t *testing.T) {
	s := setupTestServer(t, nil)

	resp := s.do(t, http.MethodGet, "/api/health", "", nil)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.NotEmpty(t, resp.Header.Get(middleware.RequestIDHeader))

	var health api.HealthResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&health))
	assert.Equal(t, "test", health.Version)
}

func TestRouter_ProtectedRoutes(t *testing.T) {
	s := setupTestServer(t, nil)
	auditor := s.login(t, "auditor")

	paths := []string{"/api/credentials", "/api/credentials/1", "/api/_search/credentials?query=a", "/api/users"}
	for _, path := range paths {
		t.Run(path, func(t *testing.T) {
			resp := s.do(t, http.MethodGet, path, "", nil)
			resp.Body.Close()
			assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

			// без ROLE_USER доступ запрещен
			resp = s.do(t, http.MethodGet, path, auditor, nil)
			resp.Body.Close()
			assert.Equal(t, http.StatusForbidden, resp.StatusCode)
		})
	}
}

func TestRouter_CredentialLifecycle(t *testing.T) {
	s := setupTestServer(t, nil)
	token := s.login(t, "admin")

	// create
	resp := s.do(t, http.MethodPost, "/api/credentials", token, api.CredentialDTO{
		Login:     "service.account",
		Activated: true,
		UserLogin: "admin",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var created api.CredentialDTO
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&created))
	resp.Body.Close()
	require.NotNil(t, created.ID)
	assert.Equal(t, "admin", created.UserLogin)
	assert.Equal(t, "/api/credentials/1", resp.Header.Get("Location"))
	assert.Equal(t, "credadminApp.credential.created", resp.Header.Get("X-credadminApp-alert"))

	// update
	created.ResetKey = "reset-1"
	resp = s.do(t, http.MethodPut, "/api/credentials", token, created)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	// list
	resp = s.do(t, http.MethodGet, "/api/credentials?page=0&size=10&sort=login,asc", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var list []api.CredentialDTO
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&list))
	resp.Body.Close()
	assert.Equal(t, "1", resp.Header.Get("X-Total-Count"))
	require.Len(t, list, 1)
	assert.Equal(t, "reset-1", list[0].ResetKey)

	// search
	resp = s.do(t, http.MethodGet, "/api/_search/credentials?query=service", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	list = nil
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&list))
	resp.Body.Close()
	assert.Len(t, list, 1)

	// delete
	resp = s.do(t, http.MethodDelete, "/api/credentials/1", token, nil)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp = s.do(t, http.MethodGet, "/api/credentials/1", token, nil)
	resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestRouter_Users(t *testing.T) {
	s := setupTestServer(t, nil)
	token := s.login(t, "admin")

	resp := s.do(t, http.MethodGet, "/api/users", token, nil)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var users []api.UserDTO
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&users))
	require.Len(t, users, 2)
	assert.Equal(t, "admin", users[0].Login)
	assert.Equal(t, "auditor", users[1].Login)
}

func TestRouter_LoginRateLimit(t *testing.T) {
	limiter := middleware.NewRateLimiter(0.001, 1, slog.New(slog.NewTextHandler(io.Discard, nil)))
	defer limiter.Stop()
	s := setupTestServer(t, limiter)

	s.login(t, "admin")

	resp := s.do(t, http.MethodPost, "/api/authenticate", "", api.LoginRequest{Username: "admin", Password: "password"})
	resp.Body.Close()
	assert.Equal(t, http.StatusTooManyRequests, resp.StatusCode)
}

func TestRouter_CORS(t *testing.T) {
	s := setupTestServer(t, nil)

	req, err := http.NewRequest(http.MethodOptions, s.URL+"/api/credentials", nil)
	require.NoError(t, err)
	req.Header.Set("Origin", "http://admin.example.com")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)

	resp, err := s.Client().Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, "http://admin.example.com", resp.Header.Get("Access-Control-Allow-Origin"))
}

func TestRouter_NotFound(t *testing.T) {
	s := setupTestServer(t, nil)

	resp := s.do(t, http.MethodGet, "/api/unknown", "", nil)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}
