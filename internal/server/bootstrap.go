package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/iudanet/credadmin/internal/crypto"
	"github.com/iudanet/credadmin/internal/models"
	"github.com/iudanet/credadmin/internal/server/storage"
	"github.com/iudanet/credadmin/internal/validation"
)

// EnsureAdmin создает учетную запись администратора при первом запуске.
// Существующий пользователь с таким логином не изменяется.
func EnsureAdmin(ctx context.Context, logger *slog.Logger, users storage.UserStorage, login, password string) error {
	if _, err := users.GetUserByLogin(ctx, login); err == nil {
		logger.DebugContext(ctx, "Admin account already exists", "login", login)
		return nil
	} else if !errors.Is(err, storage.ErrUserNotFound) {
		return fmt.Errorf("failed to look up admin: %w", err)
	}

	if err := validation.ValidateUsername(login); err != nil {
		return fmt.Errorf("invalid admin login: %w", err)
	}
	if err := validation.ValidatePassword(password); err != nil {
		return fmt.Errorf("invalid admin_password: %w", err)
	}

	hash, err := crypto.HashPassword(password)
	if err != nil {
		return fmt.Errorf("failed to hash admin password: %w", err)
	}

	admin := &models.User{
		Login:        login,
		PasswordHash: hash,
		Authorities:  []string{models.RoleUser, models.RoleAdmin},
		Activated:    true,
	}
	if err := users.CreateUser(ctx, admin); err != nil {
		return fmt.Errorf("failed to create admin: %w", err)
	}

	logger.InfoContext(ctx, "Admin account created", "login", login, "id", admin.ID)
	return nil
}
