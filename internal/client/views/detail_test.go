package views

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iudanet/credadmin/internal/client/api"
	"github.com/iudanet/credadmin/internal/client/events"
	"github.com/iudanet/credadmin/internal/models"
)

func TestDetailView_EventReloadsSameID(t *testing.T) {
	bus := events.NewBus(nil)
	login := "before"
	mock := &api.CredentialServiceMock{
		FindFunc: func(ctx context.Context, id int64) (*models.Credential, error) {
			return cred(id, login), nil
		},
	}

	view := NewDetailView(mock, bus, 42)
	require.NoError(t, view.Mount(context.Background()))
	defer view.Close()

	assert.Equal(t, "before", view.Snapshot().Record.Login)

	login = "after"
	changed(bus, events.ContentSaved)

	calls := mock.FindCalls()
	require.Len(t, calls, 2)
	assert.Equal(t, int64(42), calls[0].Id)
	assert.Equal(t, int64(42), calls[1].Id)
	assert.Equal(t, "after", view.Snapshot().Record.Login)
	assert.Equal(t, int64(42), view.ID())
}

func TestDetailView_NotFoundKeepsStaleRecord(t *testing.T) {
	bus := events.NewBus(nil)
	deleted := false
	mock := &api.CredentialServiceMock{
		FindFunc: func(ctx context.Context, id int64) (*models.Credential, error) {
			if deleted {
				return nil, fmt.Errorf("get credential %d failed: %w", id, &api.Error{StatusCode: 404, Message: "not found"})
			}
			return cred(id, "doomed"), nil
		},
	}

	view := NewDetailView(mock, bus, 7)
	require.NoError(t, view.Mount(context.Background()))
	defer view.Close()

	deleted = true
	changed(bus, events.ContentDeleted)

	snap := view.Snapshot()
	assert.Equal(t, StateErrored, snap.State)
	assert.ErrorIs(t, snap.Err, api.ErrNotFound)
	require.NotNil(t, snap.Record)
	assert.Equal(t, "doomed", snap.Record.Login)
}

func TestDetailView_SnapshotIsCopy(t *testing.T) {
	bus := events.NewBus(nil)
	mock := &api.CredentialServiceMock{
		FindFunc: func(ctx context.Context, id int64) (*models.Credential, error) {
			return cred(id, "original"), nil
		},
	}

	view := NewDetailView(mock, bus, 1)
	require.NoError(t, view.Mount(context.Background()))
	defer view.Close()

	snap := view.Snapshot()
	snap.Record.Login = "mutated"

	assert.Equal(t, "original", view.Snapshot().Record.Login)
}

func TestDetailView_CloseUnsubscribes(t *testing.T) {
	bus := events.NewBus(nil)
	mock := &api.CredentialServiceMock{
		FindFunc: func(ctx context.Context, id int64) (*models.Credential, error) {
			return cred(id, "x"), nil
		},
	}

	view := NewDetailView(mock, bus, 3)
	require.NoError(t, view.Mount(context.Background()))
	view.Close()

	changed(bus, events.ContentSaved)

	assert.Len(t, mock.FindCalls(), 1)
	assert.Equal(t, 0, bus.SubscriberCount(events.CredentialCollectionChanged))
}

func TestDetailView_DiscardsResultAfterClose(t *testing.T) {
	bus := events.NewBus(nil)
	started := make(chan struct{})
	release := make(chan struct{})
	mock := &api.CredentialServiceMock{
		FindFunc: func(ctx context.Context, id int64) (*models.Credential, error) {
			close(started)
			<-release
			return cred(id, "late"), nil
		},
	}

	view := NewDetailView(mock, bus, 9)
	errCh := make(chan error, 1)
	go func() {
		errCh <- view.Mount(context.Background())
	}()

	<-started
	view.Close()
	close(release)

	assert.ErrorIs(t, <-errCh, ErrViewClosed)
	snap := view.Snapshot()
	assert.Nil(t, snap.Record)
	assert.Equal(t, StateLoading, snap.State)
}

func TestDetailView_MountError(t *testing.T) {
	bus := events.NewBus(nil)
	loadErr := errors.New("unreachable")
	mock := &api.CredentialServiceMock{
		FindFunc: func(ctx context.Context, id int64) (*models.Credential, error) {
			return nil, loadErr
		},
	}

	view := NewDetailView(mock, bus, 1)
	err := view.Mount(context.Background())
	defer view.Close()

	assert.ErrorIs(t, err, loadErr)
	assert.Equal(t, StateErrored, view.Snapshot().State)
	assert.Nil(t, view.Snapshot().Record)
}
