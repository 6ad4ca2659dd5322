package cli

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iudanet/credadmin/internal/client/api"
	"github.com/iudanet/credadmin/internal/models"
)

func TestApp_RunShell_ReloadsAfterDelete(t *testing.T) {
	records := []*models.Credential{cred(1, "first"), cred(2, "second")}
	svc := &api.CredentialServiceMock{
		ListFunc: func(ctx context.Context, opts api.QueryOptions) ([]*models.Credential, error) {
			return records, nil
		},
		FindFunc: func(ctx context.Context, id int64) (*models.Credential, error) {
			return cred(id, "second"), nil
		},
		DeleteFunc: func(ctx context.Context, id int64) error {
			records = records[:1]
			return nil
		},
	}
	app, out, _ := newTestApp(svc, activeSession(), "delete 2\ny\nquit\n")

	err := app.runShell(context.Background(), listFlags{})

	require.NoError(t, err)
	assert.Len(t, svc.ListCalls(), 2, "list must reload after the delete event")
	assert.Contains(t, out.String(), "Found 2 credential(s):")
	assert.Contains(t, out.String(), "Found 1 credential(s):")
	assert.Equal(t, 1, strings.Count(out.String(), "✓ Credential 2 deleted"))
}

func TestApp_RunShell_SearchAndClear(t *testing.T) {
	svc := &api.CredentialServiceMock{
		ListFunc: func(ctx context.Context, opts api.QueryOptions) ([]*models.Credential, error) {
			return nil, nil
		},
		SearchFunc: func(ctx context.Context, opts api.QueryOptions) ([]*models.Credential, error) {
			assert.Equal(t, "john smith", opts.Query)
			return []*models.Credential{cred(3, "j.smith")}, nil
		},
	}
	app, out, _ := newTestApp(svc, activeSession(), "search john smith\nclear\n")

	err := app.runShell(context.Background(), listFlags{})

	require.NoError(t, err, "EOF ends the shell")
	assert.Len(t, svc.SearchCalls(), 1)
	assert.Len(t, svc.ListCalls(), 2)
	assert.Contains(t, out.String(), `matching "john smith"`)
	assert.Contains(t, out.String(), "- #3 j.smith")
}

func TestApp_RunShell_Commands(t *testing.T) {
	svc := &api.CredentialServiceMock{
		ListFunc: func(ctx context.Context, opts api.QueryOptions) ([]*models.Credential, error) {
			return nil, nil
		},
		FindFunc: func(ctx context.Context, id int64) (*models.Credential, error) {
			return nil, &api.Error{StatusCode: 404}
		},
	}
	app, out, _ := newTestApp(svc, activeSession(), "help\nfoo\nview\nview 8\nexit\n")

	err := app.runShell(context.Background(), listFlags{})

	require.NoError(t, err)
	assert.Contains(t, out.String(), "search <query>")
	assert.Contains(t, out.String(), `Unknown command "foo"`)
	assert.Contains(t, out.String(), "Error: expected exactly one credential id")
	assert.Contains(t, out.String(), "Error: credential not found")

	primary, ok := app.router.Primary()
	require.True(t, ok)
	assert.Equal(t, "credential", primary.Route.Name)
}
