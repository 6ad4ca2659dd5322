package cli

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iudanet/credadmin/internal/client/api"
	"github.com/iudanet/credadmin/internal/client/auth"
	"github.com/iudanet/credadmin/internal/client/events"
	"github.com/iudanet/credadmin/internal/client/iocli"
	"github.com/iudanet/credadmin/internal/client/routes"
	"github.com/iudanet/credadmin/internal/client/storage"
	"github.com/iudanet/credadmin/internal/models"
	apitypes "github.com/iudanet/credadmin/pkg/api"
)

func activeSession() *storage.SessionStorageMock {
	return &storage.SessionStorageMock{
		GetSessionFunc: func(ctx context.Context) (*storage.SessionData, error) {
			return &storage.SessionData{
				Username:    "admin",
				AccessToken: "token-123",
				Authorities: []string{models.RoleUser},
				ExpiresAt:   time.Now().Add(time.Hour),
			}, nil
		},
	}
}

// newTestApp создает App поверх моков и буфера вывода
func newTestApp(svc api.CredentialService, sessions storage.SessionStorage, input string) (*App, *bytes.Buffer, *string) {
	out := &bytes.Buffer{}
	token := new(string)
	app := NewApp(Options{
		IO:        iocli.NewStdioFrom(strings.NewReader(input), out),
		Service:   svc,
		Auth:      auth.NewService(&auth.AuthenticatorMock{}, sessions),
		SetToken:  func(t string) { *token = t },
		ServerURL: "http://localhost:8080",
		PageSize:  20,
	})
	return app, out, token
}

func popupOpen(app *App) bool {
	_, ok := app.router.Popup()
	return ok
}

func cred(id int64, login string) *models.Credential {
	return &models.Credential{ID: models.Int64Ptr(id), Login: login}
}

func TestApp_RequireSession(t *testing.T) {
	t.Run("configures token and router", func(t *testing.T) {
		app, _, token := newTestApp(&api.CredentialServiceMock{}, activeSession(), "")

		session, err := app.requireSession(context.Background())

		require.NoError(t, err)
		assert.Equal(t, "admin", session.Username)
		assert.Equal(t, "token-123", *token)
		_, err = app.router.Navigate(routes.ListPath(""))
		assert.NoError(t, err)
	})

	t.Run("missing session", func(t *testing.T) {
		sessions := &storage.SessionStorageMock{
			GetSessionFunc: func(ctx context.Context) (*storage.SessionData, error) {
				return nil, storage.ErrSessionNotFound
			},
		}
		app, _, _ := newTestApp(&api.CredentialServiceMock{}, sessions, "")

		_, err := app.requireSession(context.Background())

		assert.ErrorIs(t, err, ErrNotAuthenticated)
	})

	t.Run("expired session", func(t *testing.T) {
		sessions := &storage.SessionStorageMock{
			GetSessionFunc: func(ctx context.Context) (*storage.SessionData, error) {
				return &storage.SessionData{Username: "admin", ExpiresAt: time.Now().Add(-time.Minute)}, nil
			},
		}
		app, _, _ := newTestApp(&api.CredentialServiceMock{}, sessions, "")

		_, err := app.requireSession(context.Background())

		assert.ErrorIs(t, err, auth.ErrSessionExpired)
	})
}

func TestApp_RunList(t *testing.T) {
	svc := &api.CredentialServiceMock{
		ListFunc: func(ctx context.Context, opts api.QueryOptions) ([]*models.Credential, error) {
			assert.Equal(t, 20, opts.Size)
			assert.Equal(t, []string{"login,asc"}, opts.Sort)
			return []*models.Credential{cred(1, "first"), cred(2, "second")}, nil
		},
	}
	app, out, _ := newTestApp(svc, activeSession(), "")

	err := app.runList(context.Background(), listFlags{sort: []string{"login,asc"}})

	require.NoError(t, err)
	assert.Contains(t, out.String(), "Found 2 credential(s):")
	assert.Contains(t, out.String(), "- #1 first")
	assert.Contains(t, out.String(), "- #2 second")
	assert.Empty(t, svc.SearchCalls())
}

func TestApp_RunList_Search(t *testing.T) {
	svc := &api.CredentialServiceMock{
		SearchFunc: func(ctx context.Context, opts api.QueryOptions) ([]*models.Credential, error) {
			assert.Equal(t, "smith", opts.Query)
			assert.Equal(t, 5, opts.Size)
			return nil, nil
		},
	}
	app, out, _ := newTestApp(svc, activeSession(), "")

	err := app.runList(context.Background(), listFlags{search: "smith", size: 5})

	require.NoError(t, err)
	assert.Contains(t, out.String(), `matching "smith"`)
	assert.Contains(t, out.String(), "No credentials found.")
	assert.Empty(t, svc.ListCalls())
}

func TestApp_RunList_Error(t *testing.T) {
	svc := &api.CredentialServiceMock{
		ListFunc: func(ctx context.Context, opts api.QueryOptions) ([]*models.Credential, error) {
			return nil, api.ErrTransport
		},
	}
	app, out, _ := newTestApp(svc, activeSession(), "")

	err := app.runList(context.Background(), listFlags{})

	require.ErrorIs(t, err, api.ErrTransport)
	assert.Contains(t, out.String(), "server is unreachable")
}

func TestApp_RunView(t *testing.T) {
	lastLogin := time.Date(2024, 3, 15, 10, 30, 0, 0, time.UTC)
	svc := &api.CredentialServiceMock{
		FindFunc: func(ctx context.Context, id int64) (*models.Credential, error) {
			c := cred(id, "j.smith")
			c.LastLoginDate = &lastLogin
			c.Activated = true
			c.UserLogin = "admin"
			return c, nil
		},
	}
	app, out, _ := newTestApp(svc, activeSession(), "")

	err := app.runView(context.Background(), 42)

	require.NoError(t, err)
	assert.Contains(t, out.String(), "=== Credential 42 ===")
	assert.Contains(t, out.String(), "2024-03-15T10:30:00Z")
	assert.Contains(t, out.String(), "Activated:      yes")
	assert.Contains(t, out.String(), "Owner:          admin")
	assert.Contains(t, out.String(), "Reset key:      -")
}

func TestApp_RunView_NotFound(t *testing.T) {
	svc := &api.CredentialServiceMock{
		FindFunc: func(ctx context.Context, id int64) (*models.Credential, error) {
			return nil, &api.Error{StatusCode: 404}
		},
	}
	app, _, _ := newTestApp(svc, activeSession(), "")

	err := app.runView(context.Background(), 7)

	require.ErrorIs(t, err, api.ErrNotFound)
}

func TestApp_RunPopup_New(t *testing.T) {
	svc := &api.CredentialServiceMock{
		ListUsersFunc: func(ctx context.Context) ([]apitypes.UserDTO, error) {
			return []apitypes.UserDTO{{ID: 1, Login: "admin"}}, nil
		},
		CreateFunc: func(ctx context.Context, c *models.Credential) (*models.Credential, error) {
			assert.False(t, c.HasID())
			assert.Equal(t, "new.login", c.Login)
			assert.True(t, c.Activated)
			assert.Equal(t, "admin", c.UserLogin)
			saved := c.Clone()
			saved.ID = models.Int64Ptr(7)
			return saved, nil
		},
	}
	// login, password hash, last login, activation key, reset key, reset date, activated, primary, owner
	input := "new.login\n\n\n\n\n\ny\n\nadmin\n"
	app, out, _ := newTestApp(svc, activeSession(), input)

	var got []string
	app.bus.Subscribe(events.CredentialCollectionChanged, func(ev events.Event) { got = append(got, ev.Content) })

	err := app.runPopup(context.Background(), routes.NewPath())

	require.NoError(t, err)
	assert.Contains(t, out.String(), "=== Create a new Credential ===")
	assert.Contains(t, out.String(), "Available owners: admin")
	assert.Contains(t, out.String(), "✓ Credential 7 saved")
	assert.Equal(t, []string{events.ContentSaved}, got)
	assert.Nil(t, app.coord.Active())
	assert.False(t, popupOpen(app))
}

func TestApp_RunPopup_EditRetry(t *testing.T) {
	attempts := 0
	svc := &api.CredentialServiceMock{
		FindFunc: func(ctx context.Context, id int64) (*models.Credential, error) {
			return cred(id, "old.login"), nil
		},
		ListUsersFunc: func(ctx context.Context) ([]apitypes.UserDTO, error) {
			return nil, api.ErrTransport
		},
		UpdateFunc: func(ctx context.Context, c *models.Credential) (*models.Credential, error) {
			attempts++
			if attempts == 1 {
				return nil, &api.Error{StatusCode: 400, Message: "login is too short"}
			}
			assert.Equal(t, "fixed.login", c.Login)
			return c.Clone(), nil
		},
	}
	input := strings.Join([]string{
		"bad", "", "", "", "", "", "", "", "",
		"y",
		"fixed.login", "", "", "", "", "", "", "", "",
	}, "\n") + "\n"
	app, out, _ := newTestApp(svc, activeSession(), input)

	err := app.runPopup(context.Background(), routes.EditPath(5))

	require.NoError(t, err)
	assert.Equal(t, 2, attempts)
	assert.Contains(t, out.String(), "=== Edit Credential 5 ===")
	assert.Contains(t, out.String(), "Warning: failed to load users")
	assert.Contains(t, out.String(), "Error: login is too short")
	assert.Contains(t, out.String(), "✓ Credential 5 saved")
}

func TestApp_RunPopup_EditGiveUp(t *testing.T) {
	svc := &api.CredentialServiceMock{
		FindFunc: func(ctx context.Context, id int64) (*models.Credential, error) {
			return cred(id, "old.login"), nil
		},
		ListUsersFunc: func(ctx context.Context) ([]apitypes.UserDTO, error) {
			return nil, nil
		},
		UpdateFunc: func(ctx context.Context, c *models.Credential) (*models.Credential, error) {
			return nil, api.ErrTransport
		},
	}
	input := strings.Repeat("\n", 9) + "n\n"
	app, _, _ := newTestApp(svc, activeSession(), input)

	err := app.runPopup(context.Background(), routes.EditPath(5))

	require.ErrorIs(t, err, api.ErrTransport)
	assert.Nil(t, app.coord.Active())
	assert.False(t, popupOpen(app))
}

func TestApp_RunPopup_Delete(t *testing.T) {
	tests := []struct {
		deleteErr error
		name      string
		input     string
		wantOut   string
		wantCalls int
	}{
		{name: "confirmed", input: "y\n", wantOut: "✓ Credential 9 deleted", wantCalls: 1},
		{name: "cancelled", input: "n\n", wantOut: "Cancelled.", wantCalls: 0},
		{name: "failure then cancel", input: "y\nn\n", deleteErr: api.ErrTransport, wantOut: "Cancelled.", wantCalls: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &api.CredentialServiceMock{
				FindFunc: func(ctx context.Context, id int64) (*models.Credential, error) {
					return cred(id, "to.delete"), nil
				},
				DeleteFunc: func(ctx context.Context, id int64) error {
					assert.Equal(t, int64(9), id)
					return tt.deleteErr
				},
			}
			app, out, _ := newTestApp(svc, activeSession(), tt.input)

			err := app.runPopup(context.Background(), routes.DeletePath(9))

			require.NoError(t, err)
			assert.Contains(t, out.String(), "Are you sure you want to delete Credential 9 (to.delete)?")
			assert.Contains(t, out.String(), tt.wantOut)
			assert.Len(t, svc.DeleteCalls(), tt.wantCalls)
			assert.Nil(t, app.coord.Active())
		})
	}
}

func TestApp_RunPopup_NotFound(t *testing.T) {
	svc := &api.CredentialServiceMock{
		FindFunc: func(ctx context.Context, id int64) (*models.Credential, error) {
			return nil, &api.Error{StatusCode: 404}
		},
	}
	app, _, _ := newTestApp(svc, activeSession(), "")

	err := app.runPopup(context.Background(), routes.DeletePath(3))

	require.ErrorIs(t, err, api.ErrNotFound)
	assert.False(t, popupOpen(app))
}

func TestApp_RunPopup_RequiresSession(t *testing.T) {
	sessions := &storage.SessionStorageMock{
		GetSessionFunc: func(ctx context.Context) (*storage.SessionData, error) {
			return nil, storage.ErrSessionNotFound
		},
	}
	svc := &api.CredentialServiceMock{}
	app, _, _ := newTestApp(svc, sessions, "")

	err := app.runPopup(context.Background(), routes.NewPath())

	require.ErrorIs(t, err, ErrNotAuthenticated)
	assert.Empty(t, svc.ListUsersCalls())
}

func TestParseID(t *testing.T) {
	id, err := parseID("12")
	require.NoError(t, err)
	assert.Equal(t, int64(12), id)

	for _, arg := range []string{"", "abc", "0", "-1"} {
		_, err := parseID(arg)
		assert.Error(t, err, arg)
	}
}

func TestApp_PromptTime(t *testing.T) {
	app, out, _ := newTestApp(&api.CredentialServiceMock{}, activeSession(), "yesterday\n2024-01-02T03:04:05Z\n-\n")

	got, err := app.promptTime("Reset date", nil)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC), got.UTC())
	assert.Contains(t, out.String(), "Invalid date")

	cleared, err := app.promptTime("Reset date", got)
	require.NoError(t, err)
	assert.Nil(t, cleared)
}

func TestApp_PromptString_ClearsOnlyOptional(t *testing.T) {
	app, _, _ := newTestApp(&api.CredentialServiceMock{}, activeSession(), "-\n-\n")

	optional, err := app.promptString("Reset key", "abc", true)
	require.NoError(t, err)
	assert.Empty(t, optional)

	required, err := app.promptString("Login", "abc", false)
	require.NoError(t, err)
	assert.Equal(t, "-", required)
}

func TestApp_ReadErrorCancelsDialog(t *testing.T) {
	svc := &api.CredentialServiceMock{
		ListUsersFunc: func(ctx context.Context) ([]apitypes.UserDTO, error) {
			return nil, nil
		},
	}
	app, _, _ := newTestApp(svc, activeSession(), "")

	err := app.runPopup(context.Background(), routes.NewPath())

	require.Error(t, err)
	assert.True(t, errors.Is(err, io.EOF))
	assert.Nil(t, app.coord.Active())
	assert.Empty(t, svc.CreateCalls())
}
