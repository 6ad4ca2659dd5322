package cli

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/iudanet/credadmin/internal/client/auth"
	"github.com/iudanet/credadmin/internal/client/storage"
)

func newLoginCommand(state *rootState) *cobra.Command {
	var (
		username   string
		rememberMe bool
	)
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Login to the server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return state.app.runLogin(cmd.Context(), username, rememberMe)
		},
	}
	cmd.Flags().StringVarP(&username, "username", "u", "", "username (prompted if empty)")
	cmd.Flags().BoolVar(&rememberMe, "remember-me", false, "request a long-lived token")
	return cmd
}

func newLogoutCommand(state *rootState) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Remove the saved session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return state.app.runLogout(cmd.Context())
		},
	}
}

func newStatusCommand(state *rootState) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show authentication status",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return state.app.runStatus(cmd.Context())
		},
	}
}

func (a *App) runLogin(ctx context.Context, username string, rememberMe bool) error {
	a.io.Println("=== Login ===")
	a.io.Println()

	if username == "" {
		var err error
		username, err = a.io.ReadInput("Username: ")
		if err != nil {
			return fmt.Errorf("failed to read username: %w", err)
		}
	}

	password, err := a.io.ReadPassword("Password: ")
	if err != nil {
		return fmt.Errorf("failed to read password: %w", err)
	}

	a.io.Println("Authenticating...")
	session, err := a.auth.Login(ctx, a.serverURL, username, password, rememberMe)
	if err != nil {
		return err
	}

	a.io.Println()
	a.io.Println("✓ Login successful!")
	a.io.Printf("Username: %s\n", session.Username)
	if !session.ExpiresAt.IsZero() {
		a.io.Printf("Token expires: %s\n", session.ExpiresAt.Format(time.RFC3339))
	}
	return nil
}

func (a *App) runLogout(ctx context.Context) error {
	if err := a.auth.Logout(ctx); err != nil {
		return err
	}
	a.io.Println("✓ Logged out")
	return nil
}

func (a *App) runStatus(ctx context.Context) error {
	a.io.Println("=== Authentication Status ===")
	a.io.Println()

	session, err := a.auth.Session(ctx)
	switch {
	case errors.Is(err, storage.ErrSessionNotFound):
		a.io.Println("Status: Not authenticated")
		a.io.Println()
		a.io.Println("Run 'credadmin login' to authenticate.")
		return nil
	case errors.Is(err, auth.ErrSessionExpired):
		a.io.Println("Status: Session expired")
		a.io.Printf("Username: %s\n", session.Username)
		a.io.Println("⚠️  Token has expired. Please login again.")
		return nil
	case err != nil:
		return fmt.Errorf("failed to check authentication: %w", err)
	}

	a.io.Println("Status: Authenticated")
	a.io.Printf("Username: %s\n", session.Username)
	if session.ServerURL != "" {
		a.io.Printf("Server: %s\n", session.ServerURL)
	}
	a.io.Printf("Authorities: %v\n", session.Authorities)
	if !session.ExpiresAt.IsZero() {
		a.io.Printf("Token expires: %s\n", session.ExpiresAt.Format(time.RFC3339))
		a.io.Printf("Time remaining: %s\n", time.Until(session.ExpiresAt).Round(time.Second))
	}
	return nil
}
