package dialogs

import (
	"context"
	"io"
	"log/slog"
	"sync"

	"github.com/iudanet/credadmin/internal/client/events"
	"github.com/iudanet/credadmin/internal/models"
)

// DeleteService is the part of the resource client the delete dialog needs.
type DeleteService interface {
	Delete(ctx context.Context, id int64) error
}

// DeleteDialog подтверждает удаление одного credential.
type DeleteDialog struct {
	svc      DeleteService
	bus      *events.Bus
	logger   *slog.Logger
	modal    *Modal
	record   *models.Credential
	err      error
	mu       sync.Mutex
	deleting bool
	closed   bool
}

// NewDeleteDialog opens a confirmation for record, which must have an ID.
func NewDeleteDialog(svc DeleteService, bus *events.Bus, record *models.Credential, logger *slog.Logger) *DeleteDialog {
	if logger == nil {
		logger = discardLogger()
	}
	d := &DeleteDialog{
		svc:    svc,
		bus:    bus,
		logger: logger,
		record: record.Clone(),
	}
	d.modal = newModal(KindDelete, nil)
	d.modal.del = d
	return d
}

// Modal returns the modal that wraps this dialog.
func (d *DeleteDialog) Modal() *Modal {
	return d.modal
}

// Record returns a copy of the record to delete.
func (d *DeleteDialog) Record() *models.Credential {
	return d.record.Clone()
}

// Err returns the error of the last failed delete, or nil.
func (d *DeleteDialog) Err() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.err
}

// Confirm deletes the record. On success it publishes one change event and closes
// with a positive result; on failure the dialog stays open and keeps the error.
func (d *DeleteDialog) Confirm(ctx context.Context) error {
	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		return ErrDialogClosed
	}
	if d.deleting {
		d.mu.Unlock()
		return ErrDeleteInProgress
	}
	d.deleting = true
	d.mu.Unlock()

	id := d.record.IDValue()
	err := d.svc.Delete(ctx, id)

	d.mu.Lock()
	d.deleting = false
	if err != nil {
		d.err = err
		d.mu.Unlock()
		d.logger.Warn("failed to delete credential", slog.Int64("id", id), slog.Any("error", err))
		return err
	}
	d.err = nil
	d.closed = true
	d.mu.Unlock()

	d.logger.Info("credential deleted", slog.Int64("id", id))
	d.bus.Publish(events.Event{Name: events.CredentialCollectionChanged, Content: events.ContentDeleted})
	d.modal.finish(Result{Kind: KindDelete, Record: d.record.Clone(), Confirmed: true})
	return nil
}

// Cancel closes the dialog with a negative result.
func (d *DeleteDialog) Cancel() {
	d.mu.Lock()
	d.closed = true
	d.mu.Unlock()
	d.modal.finish(Result{Kind: KindDelete, Record: d.record.Clone()})
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
