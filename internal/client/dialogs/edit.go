package dialogs

import (
	"context"
	"log/slog"
	"sync"

	"github.com/iudanet/credadmin/internal/client/events"
	"github.com/iudanet/credadmin/internal/models"
	apitypes "github.com/iudanet/credadmin/pkg/api"
)

// EditService is the part of the resource client the edit dialog needs.
type EditService interface {
	Create(ctx context.Context, cred *models.Credential) (*models.Credential, error)
	Update(ctx context.Context, cred *models.Credential) (*models.Credential, error)
	ListUsers(ctx context.Context) ([]apitypes.UserDTO, error)
}

// EditDialog редактирует черновик credential и сохраняет его на сервере.
type EditDialog struct {
	svc      EditService
	bus      *events.Bus
	logger   *slog.Logger
	modal    *Modal
	draft    *models.Credential
	err      error
	usersErr error
	users    []apitypes.UserDTO
	mu       sync.Mutex
	saving   bool
	closed   bool
}

// NewEditDialog opens an edit dialog over a copy of draft.
// A nil draft starts a new record.
func NewEditDialog(svc EditService, bus *events.Bus, draft *models.Credential, logger *slog.Logger) *EditDialog {
	if draft == nil {
		draft = models.NewCredential()
	}
	if logger == nil {
		logger = discardLogger()
	}
	d := &EditDialog{
		svc:    svc,
		bus:    bus,
		logger: logger,
		draft:  draft.Clone(),
	}
	d.modal = newModal(KindEdit, nil)
	d.modal.edit = d
	return d
}

// Modal returns the modal that wraps this dialog.
func (d *EditDialog) Modal() *Modal {
	return d.modal
}

// IsNew reports whether saving will create a new record.
func (d *EditDialog) IsNew() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return !d.draft.HasID()
}

// Draft returns a copy of the current draft.
func (d *EditDialog) Draft() *models.Credential {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.draft.Clone()
}

// Modify applies fn to the draft. The draft cannot change while a save is running.
func (d *EditDialog) Modify(fn func(c *models.Credential)) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.closed {
		return ErrDialogClosed
	}
	if d.saving {
		return ErrSaveInProgress
	}
	fn(d.draft)
	return nil
}

// Saving reports whether a save is in flight.
func (d *EditDialog) Saving() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.saving
}

// Err returns the error of the last failed save, or nil.
func (d *EditDialog) Err() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.err
}

// Save dispatches Update if the draft has an ID and Create otherwise.
// On success it publishes one change event and closes the modal with the persisted
// record. On failure the dialog stays open with the draft unchanged.
func (d *EditDialog) Save(ctx context.Context) (*models.Credential, error) {
	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		return nil, ErrDialogClosed
	}
	if d.saving {
		d.mu.Unlock()
		return nil, ErrSaveInProgress
	}
	d.saving = true
	draft := d.draft.Clone()
	d.mu.Unlock()

	var (
		saved *models.Credential
		err   error
	)
	if draft.HasID() {
		saved, err = d.svc.Update(ctx, draft)
	} else {
		saved, err = d.svc.Create(ctx, draft)
	}

	d.mu.Lock()
	d.saving = false
	if err != nil {
		d.err = err
		d.mu.Unlock()
		d.logger.Warn("failed to save credential", slog.String("login", draft.Login), slog.Any("error", err))
		return nil, err
	}
	d.err = nil
	d.closed = true
	d.mu.Unlock()

	d.logger.Info("credential saved", slog.Int64("id", saved.IDValue()))
	d.bus.Publish(events.Event{Name: events.CredentialCollectionChanged, Content: events.ContentSaved})
	d.modal.finish(Result{Kind: KindEdit, Record: saved.Clone(), Confirmed: true})
	return saved, nil
}

// Cancel closes the dialog without saving.
func (d *EditDialog) Cancel() {
	d.mu.Lock()
	d.closed = true
	d.mu.Unlock()
	d.modal.finish(Result{Kind: KindEdit})
}

// LoadUsers fills the owner selector. A failure is recorded but does not close the dialog.
func (d *EditDialog) LoadUsers(ctx context.Context) error {
	users, err := d.svc.ListUsers(ctx)

	d.mu.Lock()
	defer d.mu.Unlock()
	if err != nil {
		d.usersErr = err
		d.logger.Warn("failed to load users", slog.Any("error", err))
		return err
	}
	d.usersErr = nil
	d.users = users
	return nil
}

// Users returns the owners loaded by LoadUsers and the error of the last attempt.
func (d *EditDialog) Users() ([]apitypes.UserDTO, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	users := make([]apitypes.UserDTO, len(d.users))
	copy(users, d.users)
	return users, d.usersErr
}

// SelectUser sets the owner of the draft.
func (d *EditDialog) SelectUser(u apitypes.UserDTO) error {
	return d.Modify(func(c *models.Credential) {
		c.UserID = models.Int64Ptr(u.ID)
		c.UserLogin = u.Login
	})
}

// ClearUser removes the owner from the draft.
func (d *EditDialog) ClearUser() error {
	return d.Modify(func(c *models.Credential) {
		c.UserID = nil
		c.UserLogin = ""
	})
}
