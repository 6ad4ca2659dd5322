// Package dialogs реализует модальные диалоги редактирования и удаления
// credentials и координатор, который открывает не более одного модального окна.
package dialogs

import (
	"errors"
	"sync"

	"github.com/iudanet/credadmin/internal/models"
)

var (
	// ErrSaveInProgress is returned by Save while a previous save is still running.
	ErrSaveInProgress = errors.New("save already in progress")

	// ErrDeleteInProgress is returned by Confirm while a delete is still running.
	ErrDeleteInProgress = errors.New("delete already in progress")

	// ErrDialogClosed is returned when an action is attempted on a closed dialog.
	ErrDialogClosed = errors.New("dialog is closed")

	// ErrInvalidID is returned when a route id parameter is not a valid identifier.
	ErrInvalidID = errors.New("invalid credential id")
)

// Kind is the closed set of modal dialogs.
type Kind int

const (
	KindEdit Kind = iota + 1
	KindDelete
)

func (k Kind) String() string {
	switch k {
	case KindEdit:
		return "edit"
	case KindDelete:
		return "delete"
	default:
		return "unknown"
	}
}

// Result is what a modal returns to its opener when it closes.
// Confirmed is false when the dialog was dismissed.
type Result struct {
	Record    *models.Credential
	Kind      Kind
	Confirmed bool
}

// Modal is an open dialog tracked by the Coordinator.
// Exactly one of Edit and Delete is non-nil, depending on Kind.
type Modal struct {
	edit    *EditDialog
	del     *DeleteDialog
	done    chan struct{}
	onClose func(*Modal)
	result  Result
	once    sync.Once
	kind    Kind
}

func newModal(kind Kind, onClose func(*Modal)) *Modal {
	return &Modal{
		kind:    kind,
		done:    make(chan struct{}),
		onClose: onClose,
	}
}

// Kind returns the dialog kind.
func (m *Modal) Kind() Kind {
	return m.kind
}

// Edit returns the edit dialog, or nil for a delete modal.
func (m *Modal) Edit() *EditDialog {
	return m.edit
}

// Delete returns the delete dialog, or nil for an edit modal.
func (m *Modal) Delete() *DeleteDialog {
	return m.del
}

// Done is closed once the modal has closed.
func (m *Modal) Done() <-chan struct{} {
	return m.done
}

// Result returns the close result; ok is false while the modal is still open.
func (m *Modal) Result() (Result, bool) {
	select {
	case <-m.done:
		return m.result, true
	default:
		return Result{}, false
	}
}

// finish закрывает модальное окно; повторные вызовы игнорируются.
func (m *Modal) finish(res Result) {
	m.once.Do(func() {
		m.result = res
		close(m.done)
		if m.onClose != nil {
			m.onClose(m)
		}
	})
}
