package views

import (
	"context"
	"log/slog"

	"github.com/iudanet/credadmin/internal/client/events"
	"github.com/iudanet/credadmin/internal/models"
)

// DetailSnapshot is a consistent copy of the detail view state.
type DetailSnapshot struct {
	Err    error
	Record *models.Credential
	ID     int64
	State  State
}

// DetailView показывает один credential, ID фиксируется при создании.
type DetailView struct {
	loader   RecordLoader
	bus      *events.Bus
	onUpdate func(DetailSnapshot)
	err      error
	record   *models.Credential
	lifecycle
	id    int64
	state State
}

// DetailOption configures a DetailView.
type DetailOption func(*DetailView)

// WithDetailLogger sets the logger.
func WithDetailLogger(logger *slog.Logger) DetailOption {
	return func(v *DetailView) {
		v.logger = logger
	}
}

// WithDetailUpdates registers a callback invoked after every state change.
func WithDetailUpdates(fn func(DetailSnapshot)) DetailOption {
	return func(v *DetailView) {
		v.onUpdate = fn
	}
}

// NewDetailView создает detail view для credential с указанным ID.
func NewDetailView(loader RecordLoader, bus *events.Bus, id int64, opts ...DetailOption) *DetailView {
	v := &DetailView{
		loader: loader,
		bus:    bus,
		id:     id,
		state:  StateIdle,
	}
	v.logger = discardLogger()
	for _, opt := range opts {
		opt(v)
	}
	return v
}

// Mount subscribes to change events and loads the record.
func (v *DetailView) Mount(ctx context.Context) error {
	if err := v.mount(ctx, v.bus, v.onChange); err != nil {
		return err
	}
	return v.Reload(v.viewContext(ctx))
}

// Close unsubscribes from the bus and discards in-flight results.
func (v *DetailView) Close() {
	v.close()
}

// ID returns the id the view is bound to.
func (v *DetailView) ID() int64 {
	return v.id
}

// Reload fetches the record again. A failed load keeps the previous record.
func (v *DetailView) Reload(ctx context.Context) error {
	v.mu.Lock()
	if v.closed {
		v.mu.Unlock()
		return ErrViewClosed
	}
	gen := v.begin()
	v.state = StateLoading
	snap := v.snapshotLocked()
	v.mu.Unlock()
	v.notify(snap)

	record, err := v.loader.Find(ctx, v.id)

	v.mu.Lock()
	if !v.current(gen) {
		closed := v.closed
		v.mu.Unlock()
		v.logger.Debug("discarding stale detail result", slog.Int64("id", v.id), slog.Uint64("generation", gen))
		if closed {
			return ErrViewClosed
		}
		return nil
	}
	if err != nil {
		v.state = StateErrored
		v.err = err
	} else {
		v.state = StateLoaded
		v.err = nil
		v.record = record
	}
	snap = v.snapshotLocked()
	v.mu.Unlock()
	v.notify(snap)

	if err != nil {
		v.logger.Warn("failed to load credential", slog.Int64("id", v.id), slog.Any("error", err))
	}
	return err
}

// Snapshot returns the current state. Record is a copy.
func (v *DetailView) Snapshot() DetailSnapshot {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.snapshotLocked()
}

func (v *DetailView) snapshotLocked() DetailSnapshot {
	snap := DetailSnapshot{
		ID:    v.id,
		State: v.state,
		Err:   v.err,
	}
	if v.record != nil {
		snap.Record = v.record.Clone()
	}
	return snap
}

func (v *DetailView) onChange(ev events.Event) {
	v.logger.Debug("collection changed, reloading detail", slog.Int64("id", v.id), slog.String("content", ev.Content))
	_ = v.Reload(v.viewContext(context.Background()))
}

func (v *DetailView) notify(snap DetailSnapshot) {
	if v.onUpdate != nil {
		v.onUpdate(snap)
	}
}
