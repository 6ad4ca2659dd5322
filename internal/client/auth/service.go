package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/iudanet/credadmin/internal/client/storage"
	"github.com/iudanet/credadmin/internal/validation"
	pkgapi "github.com/iudanet/credadmin/pkg/api"
)

// ErrSessionExpired is returned when the stored token has expired.
var ErrSessionExpired = errors.New("session expired, please login again")

//go:generate moq -out authenticator_mock.go . Authenticator

// Authenticator выполняет вход на сервере; реализуется *api.Client.
type Authenticator interface {
	Login(ctx context.Context, req pkgapi.LoginRequest) (*pkgapi.TokenResponse, error)
}

// Service предоставляет функции авторизации и хранит сессию
type Service struct {
	client   Authenticator
	sessions storage.SessionStorage
	now      func() time.Time
}

// NewService создает новый сервис авторизации
func NewService(client Authenticator, sessions storage.SessionStorage) *Service {
	return &Service{
		client:   client,
		sessions: sessions,
		now:      time.Now,
	}
}

// Login выполняет аутентификацию и сохраняет сессию
func (s *Service) Login(ctx context.Context, serverURL, username, password string, rememberMe bool) (*storage.SessionData, error) {
	if err := validation.ValidateUsername(username); err != nil {
		return nil, fmt.Errorf("invalid username: %w", err)
	}
	if err := validation.ValidatePassword(password); err != nil {
		return nil, fmt.Errorf("invalid password: %w", err)
	}

	resp, err := s.client.Login(ctx, pkgapi.LoginRequest{
		Username:   username,
		Password:   password,
		RememberMe: rememberMe,
	})
	if err != nil {
		return nil, fmt.Errorf("login failed: %w", err)
	}
	if resp.IDToken == "" {
		return nil, fmt.Errorf("login failed: server returned an empty token")
	}

	session := &storage.SessionData{
		Username:    username,
		ServerURL:   serverURL,
		AccessToken: resp.IDToken,
		Authorities: resp.Authorities,
	}
	if resp.ExpiresIn > 0 {
		session.ExpiresAt = s.now().Add(time.Duration(resp.ExpiresIn) * time.Second)
	}

	// Старые серверы не возвращают authorities/expires_in, берем их из claims
	if len(session.Authorities) == 0 || session.ExpiresAt.IsZero() {
		fillFromClaims(session)
	}

	if err := s.sessions.SaveSession(ctx, session); err != nil {
		return nil, fmt.Errorf("failed to save session: %w", err)
	}
	return session, nil
}

// Session returns the stored session or ErrSessionExpired.
func (s *Service) Session(ctx context.Context) (*storage.SessionData, error) {
	session, err := s.sessions.GetSession(ctx)
	if err != nil {
		return nil, err
	}
	if session.Expired(s.now()) {
		return session, ErrSessionExpired
	}
	return session, nil
}

// Logout удаляет локальную сессию. Отсутствие сессии не считается ошибкой.
func (s *Service) Logout(ctx context.Context) error {
	if err := s.sessions.DeleteSession(ctx); err != nil {
		if errors.Is(err, storage.ErrSessionNotFound) {
			slog.Debug("logout without session")
			return nil
		}
		return fmt.Errorf("failed to delete session: %w", err)
	}
	return nil
}

// fillFromClaims читает exp и auth из токена без проверки подписи:
// подпись проверяет сервер, клиенту нужны только значения для отображения.
func fillFromClaims(session *storage.SessionData) {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(session.AccessToken, claims); err != nil {
		slog.Debug("token is not a parsable JWT", slog.Any("error", err))
		return
	}
	if session.ExpiresAt.IsZero() {
		if exp, err := claims.GetExpirationTime(); err == nil && exp != nil {
			session.ExpiresAt = exp.Time
		}
	}
	if len(session.Authorities) == 0 {
		if auth, ok := claims["auth"].(string); ok && auth != "" {
			session.Authorities = strings.Split(auth, ",")
		}
	}
}
