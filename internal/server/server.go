package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/iudanet/credadmin/internal/config"
	"github.com/iudanet/credadmin/internal/server/jwt"
	"github.com/iudanet/credadmin/internal/server/middleware"
	"github.com/iudanet/credadmin/internal/server/storage/sqlite"
)

const shutdownTimeout = 10 * time.Second

// Run открывает хранилище, создает администратора и обслуживает API до отмены ctx.
func Run(ctx context.Context, cfg *config.Server, logger *slog.Logger, version string) error {
	store, err := sqlite.New(ctx, cfg.DBPath)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer func() {
		if err := store.Close(); err != nil {
			logger.Error("failed to close database", slog.Any("error", err))
		}
	}()

	if err := EnsureAdmin(ctx, logger, store, cfg.AdminLogin, cfg.AdminPassword); err != nil {
		return err
	}

	limiter := middleware.NewRateLimiter(cfg.LoginRate, cfg.LoginBurst, logger)
	defer limiter.Stop()

	srv := &http.Server{
		Addr: cfg.Addr,
		Handler: NewRouter(Deps{
			Logger:       logger,
			Credentials:  store,
			Users:        store,
			DB:           store,
			Tokens:       jwt.NewService(cfg.JWTSecret, cfg.TokenTTL, cfg.RememberMeTTL),
			LoginLimiter: limiter,
			Version:      version,
			CORSOrigins:  cfg.CORSOrigins,
		}),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("Server listening", "addr", cfg.Addr, "version", version)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("Shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}
	return nil
}
