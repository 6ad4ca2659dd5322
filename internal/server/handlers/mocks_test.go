package handlers

import (
	"context"
	"io"
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/iudanet/credadmin/internal/models"
	"github.com/iudanet/credadmin/internal/server/storage"
)

func setupTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// mockUserStorage is a mock implementation of UserStorage for testing
type mockUserStorage struct {
	users           map[string]*models.User // login -> User
	listError       error
	getUserError    error
	updateLastLogin func(ctx context.Context, id int64, loginTime time.Time) error
}

func newMockUserStorage(users ...*models.User) *mockUserStorage {
	m := &mockUserStorage{users: make(map[string]*models.User)}
	for _, u := range users {
		m.users[u.Login] = u
	}
	return m
}

func (m *mockUserStorage) CreateUser(ctx context.Context, user *models.User) error {
	if _, exists := m.users[user.Login]; exists {
		return storage.ErrUserAlreadyExists
	}
	user.ID = int64(len(m.users) + 1)
	m.users[user.Login] = user
	return nil
}

func (m *mockUserStorage) GetUserByLogin(ctx context.Context, login string) (*models.User, error) {
	if m.getUserError != nil {
		return nil, m.getUserError
	}
	user, ok := m.users[login]
	if !ok {
		return nil, storage.ErrUserNotFound
	}
	return user, nil
}

func (m *mockUserStorage) GetUserByID(ctx context.Context, id int64) (*models.User, error) {
	if m.getUserError != nil {
		return nil, m.getUserError
	}
	for _, user := range m.users {
		if user.ID == id {
			return user, nil
		}
	}
	return nil, storage.ErrUserNotFound
}

func (m *mockUserStorage) ListUsers(ctx context.Context) ([]*models.User, error) {
	if m.listError != nil {
		return nil, m.listError
	}
	users := make([]*models.User, 0, len(m.users))
	for _, u := range m.users {
		users = append(users, u)
	}
	sort.Slice(users, func(i, j int) bool { return users[i].Login < users[j].Login })
	return users, nil
}

func (m *mockUserStorage) UpdateLastLogin(ctx context.Context, id int64, loginTime time.Time) error {
	if m.updateLastLogin != nil {
		return m.updateLastLogin(ctx, id, loginTime)
	}
	return nil
}

// mockCredentialStorage хранит credentials в памяти и подставляет логин владельца
type mockCredentialStorage struct {
	creds     map[int64]*models.Credential
	users     *mockUserStorage
	listError error
	lastQuery storage.Query
	nextID    int64
}

func newMockCredentialStorage(users *mockUserStorage) *mockCredentialStorage {
	return &mockCredentialStorage{creds: make(map[int64]*models.Credential), users: users}
}

func (m *mockCredentialStorage) CreateCredential(ctx context.Context, cred *models.Credential) error {
	m.nextID++
	cred.ID = models.Int64Ptr(m.nextID)
	m.creds[m.nextID] = cred.Clone()
	return nil
}

func (m *mockCredentialStorage) UpdateCredential(ctx context.Context, cred *models.Credential) error {
	if _, ok := m.creds[cred.IDValue()]; !ok {
		return storage.ErrCredentialNotFound
	}
	m.creds[cred.IDValue()] = cred.Clone()
	return nil
}

func (m *mockCredentialStorage) GetCredential(ctx context.Context, id int64) (*models.Credential, error) {
	c, ok := m.creds[id]
	if !ok {
		return nil, storage.ErrCredentialNotFound
	}
	return m.withOwner(c), nil
}

func (m *mockCredentialStorage) ListCredentials(ctx context.Context, q storage.Query) ([]*models.Credential, int, error) {
	m.lastQuery = q
	if m.listError != nil {
		return nil, 0, m.listError
	}

	ids := make([]int64, 0, len(m.creds))
	for id := range m.creds {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	result := make([]*models.Credential, 0)
	for _, id := range ids {
		c := m.withOwner(m.creds[id])
		if q.Text != "" && !strings.Contains(c.Login, q.Text) && !strings.Contains(c.UserLogin, q.Text) {
			continue
		}
		result = append(result, c)
	}
	return result, len(result), nil
}

func (m *mockCredentialStorage) DeleteCredential(ctx context.Context, id int64) error {
	if _, ok := m.creds[id]; !ok {
		return storage.ErrCredentialNotFound
	}
	delete(m.creds, id)
	return nil
}

func (m *mockCredentialStorage) withOwner(c *models.Credential) *models.Credential {
	cp := c.Clone()
	cp.UserLogin = ""
	if cp.UserID != nil && m.users != nil {
		if u, err := m.users.GetUserByID(context.Background(), *cp.UserID); err == nil {
			cp.UserLogin = u.Login
		}
	}
	return cp
}

// mockTokenIssuer is a mock implementation of TokenIssuer for testing
type mockTokenIssuer struct {
	err        error
	login      string
	auths      []string
	rememberMe bool
}

func (m *mockTokenIssuer) GenerateToken(login string, authorities []string, rememberMe bool) (string, int64, error) {
	if m.err != nil {
		return "", 0, m.err
	}
	m.login, m.auths, m.rememberMe = login, authorities, rememberMe
	return "token-for-" + login, 3600, nil
}

type pingerFunc func(ctx context.Context) error

func (f pingerFunc) Ping(ctx context.Context) error { return f(ctx) }
