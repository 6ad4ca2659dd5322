package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/iudanet/credadmin/internal/crypto"
	"github.com/iudanet/credadmin/internal/server/storage"
	"github.com/iudanet/credadmin/internal/validation"
	"github.com/iudanet/credadmin/pkg/api"
)

// TokenIssuer выпускает токены доступа; реализуется *jwt.Service
type TokenIssuer interface {
	GenerateToken(login string, authorities []string, rememberMe bool) (string, int64, error)
}

// AuthHandler обрабатывает запросы авторизации
type AuthHandler struct {
	logger *slog.Logger
	users  storage.UserStorage
	tokens TokenIssuer
	now    func() time.Time
}

// NewAuthHandler создает новый handler для авторизации
func NewAuthHandler(logger *slog.Logger, users storage.UserStorage, tokens TokenIssuer) *AuthHandler {
	return &AuthHandler{
		logger: logger,
		users:  users,
		tokens: tokens,
		now:    time.Now,
	}
}

// Login обрабатывает POST /api/authenticate
// Аутентификация пользователя
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	// Парсим request body
	var req api.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.ErrorContext(ctx, "failed to decode login request", slog.Any("error", err))
		sendError(h.logger, w, "invalid request body", http.StatusBadRequest)
		return
	}

	// Валидация username
	if err := validation.ValidateUsername(req.Username); err != nil {
		h.logger.WarnContext(ctx, "invalid username", slog.String("username", req.Username), slog.Any("error", err))
		sendError(h.logger, w, err.Error(), http.StatusBadRequest)
		return
	}
	if req.Password == "" {
		sendError(h.logger, w, "password is required", http.StatusBadRequest)
		return
	}

	// Получаем пользователя из БД
	user, err := h.users.GetUserByLogin(ctx, req.Username)
	if err != nil {
		if errors.Is(err, storage.ErrUserNotFound) {
			h.logger.WarnContext(ctx, "login failed: user not found", slog.String("username", req.Username))
			sendError(h.logger, w, "invalid credentials", http.StatusUnauthorized)
			return
		}
		h.logger.ErrorContext(ctx, "failed to get user", slog.Any("error", err))
		sendError(h.logger, w, "internal server error", http.StatusInternalServerError)
		return
	}

	if err := crypto.VerifyPassword(req.Password, user.PasswordHash); err != nil {
		h.logger.WarnContext(ctx, "login failed: invalid password", slog.String("username", req.Username), slog.Any("error", err))
		sendError(h.logger, w, "invalid credentials", http.StatusUnauthorized)
		return
	}

	if !user.Activated {
		h.logger.WarnContext(ctx, "login failed: user not activated", slog.String("username", req.Username))
		sendError(h.logger, w, "user "+user.Login+" was not activated", http.StatusUnauthorized)
		return
	}

	// Генерируем JWT
	token, expiresIn, err := h.tokens.GenerateToken(user.Login, user.Authorities, req.RememberMe)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to generate access token", slog.Any("error", err))
		sendError(h.logger, w, "internal server error", http.StatusInternalServerError)
		return
	}

	// Обновляем last_login
	if err := h.users.UpdateLastLogin(ctx, user.ID, h.now()); err != nil {
		// Не критичная ошибка, логируем но не прерываем
		h.logger.WarnContext(ctx, "failed to update last login", slog.Any("error", err))
	}

	h.logger.InfoContext(ctx, "user logged in successfully", slog.String("username", user.Login))

	w.Header().Set("Authorization", "Bearer "+token)
	sendJSON(h.logger, w, api.TokenResponse{
		IDToken:     token,
		Authorities: user.Authorities,
		ExpiresIn:   expiresIn,
	}, http.StatusOK)
}
