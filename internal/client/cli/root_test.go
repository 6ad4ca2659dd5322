package cli

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iudanet/credadmin/internal/client/api"
	"github.com/iudanet/credadmin/internal/client/auth"
	"github.com/iudanet/credadmin/internal/client/iocli"
	"github.com/iudanet/credadmin/internal/client/storage"
	"github.com/iudanet/credadmin/internal/config"
	"github.com/iudanet/credadmin/internal/models"
	apitypes "github.com/iudanet/credadmin/pkg/api"
)

type closerFunc func() error

func (f closerFunc) Close() error { return f() }

func TestRootCommand_ListThroughFactory(t *testing.T) {
	svc := &api.CredentialServiceMock{
		ListFunc: func(ctx context.Context, opts api.QueryOptions) ([]*models.Credential, error) {
			assert.Equal(t, 50, opts.Size)
			return []*models.Credential{cred(1, "first")}, nil
		},
	}
	out := &bytes.Buffer{}
	closed := false

	var gotCfg *config.Client
	factory := func(ctx context.Context, cfg *config.Client, log *slog.Logger) (*App, io.Closer, error) {
		gotCfg = cfg
		app := NewApp(Options{
			IO:        iocli.NewStdioFrom(strings.NewReader(""), out),
			Service:   svc,
			Auth:      auth.NewService(&auth.AuthenticatorMock{}, activeSession()),
			Logger:    log,
			ServerURL: cfg.ServerURL,
			PageSize:  cfg.PageSize,
		})
		return app, closerFunc(func() error { closed = true; return nil }), nil
	}

	root := NewRootCommand(factory, "test")
	root.SetArgs([]string{"--server", "http://example.test:9000", "list", "--size", "50"})
	root.SetErr(io.Discard)

	err := root.ExecuteContext(context.Background())

	require.NoError(t, err)
	assert.Equal(t, "http://example.test:9000", gotCfg.ServerURL)
	assert.Contains(t, out.String(), "- #1 first")
	assert.True(t, closed)
}

func TestRootCommand_Login(t *testing.T) {
	var saved *storage.SessionData
	sessions := &storage.SessionStorageMock{
		SaveSessionFunc: func(ctx context.Context, session *storage.SessionData) error {
			saved = session
			return nil
		},
	}
	authenticator := &auth.AuthenticatorMock{
		LoginFunc: func(ctx context.Context, req apitypes.LoginRequest) (*apitypes.TokenResponse, error) {
			assert.Equal(t, "admin", req.Username)
			assert.Equal(t, "admin-password", req.Password)
			assert.True(t, req.RememberMe)
			return &apitypes.TokenResponse{IDToken: "jwt", Authorities: []string{models.RoleUser}, ExpiresIn: 60}, nil
		},
	}
	out := &bytes.Buffer{}
	factory := func(ctx context.Context, cfg *config.Client, log *slog.Logger) (*App, io.Closer, error) {
		app := NewApp(Options{
			IO:        iocli.NewStdioFrom(strings.NewReader("admin-password\n"), out),
			Service:   &api.CredentialServiceMock{},
			Auth:      auth.NewService(authenticator, sessions),
			ServerURL: cfg.ServerURL,
		})
		return app, nil, nil
	}

	root := NewRootCommand(factory, "test")
	root.SetArgs([]string{"login", "-u", "admin", "--remember-me"})

	require.NoError(t, root.ExecuteContext(context.Background()))
	require.NotNil(t, saved)
	assert.Equal(t, "jwt", saved.AccessToken)
	assert.Contains(t, out.String(), "✓ Login successful!")
}

func TestRootCommand_StatusWithoutSession(t *testing.T) {
	sessions := &storage.SessionStorageMock{
		GetSessionFunc: func(ctx context.Context) (*storage.SessionData, error) {
			return nil, storage.ErrSessionNotFound
		},
	}
	out := &bytes.Buffer{}
	factory := func(ctx context.Context, cfg *config.Client, log *slog.Logger) (*App, io.Closer, error) {
		return NewApp(Options{
			IO:   iocli.NewStdioFrom(strings.NewReader(""), out),
			Auth: auth.NewService(&auth.AuthenticatorMock{}, sessions),
		}), nil, nil
	}

	root := NewRootCommand(factory, "test")
	root.SetArgs([]string{"status"})

	require.NoError(t, root.ExecuteContext(context.Background()))
	assert.Contains(t, out.String(), "Status: Not authenticated")
}

func TestRootCommand_InvalidID(t *testing.T) {
	factory := func(ctx context.Context, cfg *config.Client, log *slog.Logger) (*App, io.Closer, error) {
		return NewApp(Options{IO: iocli.NewStdioFrom(strings.NewReader(""), io.Discard)}), nil, nil
	}

	root := NewRootCommand(factory, "test")
	root.SetArgs([]string{"edit", "abc"})

	err := root.ExecuteContext(context.Background())

	require.Error(t, err)
	assert.Contains(t, err.Error(), `invalid credential id "abc"`)
}
