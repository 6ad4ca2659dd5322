package views

import (
	"context"
	"log/slog"

	"github.com/iudanet/credadmin/internal/client/api"
	"github.com/iudanet/credadmin/internal/client/events"
	"github.com/iudanet/credadmin/internal/models"
)

// ListSnapshot is a consistent copy of the list view state.
type ListSnapshot struct {
	Err     error
	Query   string
	Records []*models.Credential
	State   State
}

// SearchMode reports whether the snapshot was produced by a text search.
func (s ListSnapshot) SearchMode() bool {
	return s.Query != ""
}

// ListView отображает коллекцию credentials и поддерживает режим поиска.
type ListView struct {
	loader   ListLoader
	bus      *events.Bus
	onUpdate func(ListSnapshot)
	err      error
	query    string
	records  []*models.Credential
	base     api.QueryOptions
	lifecycle
	state State
}

// ListOption configures a ListView.
type ListOption func(*ListView)

// WithQueryOptions sets pagination and sort options passed to every load.
func WithQueryOptions(opts api.QueryOptions) ListOption {
	return func(v *ListView) {
		v.base = opts.WithQuery("")
	}
}

// WithInitialSearch starts the view in search mode (the list route's search parameter).
func WithInitialSearch(query string) ListOption {
	return func(v *ListView) {
		v.query = query
	}
}

// WithListLogger sets the logger.
func WithListLogger(logger *slog.Logger) ListOption {
	return func(v *ListView) {
		v.logger = logger
	}
}

// WithListUpdates registers a callback invoked after every state change.
func WithListUpdates(fn func(ListSnapshot)) ListOption {
	return func(v *ListView) {
		v.onUpdate = fn
	}
}

// NewListView создает list view; загрузка начинается в Mount.
func NewListView(loader ListLoader, bus *events.Bus, opts ...ListOption) *ListView {
	v := &ListView{
		loader: loader,
		bus:    bus,
		state:  StateIdle,
	}
	v.logger = discardLogger()
	for _, opt := range opts {
		opt(v)
	}
	return v
}

// Mount subscribes to change events and performs the initial load.
// The subscription stays active even if the initial load fails; call Close to release it.
func (v *ListView) Mount(ctx context.Context) error {
	if err := v.mount(ctx, v.bus, v.onChange); err != nil {
		return err
	}
	return v.Reload(v.viewContext(ctx))
}

// Close unsubscribes from the bus and discards in-flight results.
func (v *ListView) Close() {
	v.close()
}

// Search switches to search mode. An empty query is the same as Clear.
func (v *ListView) Search(ctx context.Context, query string) error {
	if query == "" {
		return v.Clear(ctx)
	}
	v.mu.Lock()
	v.query = query
	v.mu.Unlock()
	return v.Reload(ctx)
}

// Clear leaves search mode and reloads the unfiltered list.
func (v *ListView) Clear(ctx context.Context) error {
	v.mu.Lock()
	v.query = ""
	v.mu.Unlock()
	return v.Reload(ctx)
}

// Reload loads the collection using the current mode.
func (v *ListView) Reload(ctx context.Context) error {
	v.mu.Lock()
	if v.closed {
		v.mu.Unlock()
		return ErrViewClosed
	}
	gen := v.begin()
	query := v.query
	v.state = StateLoading
	snap := v.snapshotLocked()
	v.mu.Unlock()
	v.notify(snap)

	var (
		records []*models.Credential
		err     error
	)
	if query != "" {
		records, err = v.loader.Search(ctx, v.base.WithQuery(query))
	} else {
		records, err = v.loader.List(ctx, v.base)
	}

	v.mu.Lock()
	if !v.current(gen) {
		closed := v.closed
		v.mu.Unlock()
		v.logger.Debug("discarding stale list result", slog.Uint64("generation", gen))
		if closed {
			return ErrViewClosed
		}
		return nil
	}
	if err != nil {
		// Оставляем предыдущие данные на экране вместе с ошибкой
		v.state = StateErrored
		v.err = err
	} else {
		v.state = StateLoaded
		v.err = nil
		v.records = records
	}
	snap = v.snapshotLocked()
	v.mu.Unlock()
	v.notify(snap)

	if err != nil {
		v.logger.Warn("failed to load credentials", slog.String("query", query), slog.Any("error", err))
	}
	return err
}

// Snapshot returns the current state.
func (v *ListView) Snapshot() ListSnapshot {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.snapshotLocked()
}

func (v *ListView) snapshotLocked() ListSnapshot {
	records := make([]*models.Credential, len(v.records))
	copy(records, v.records)
	return ListSnapshot{
		State:   v.state,
		Records: records,
		Err:     v.err,
		Query:   v.query,
	}
}

func (v *ListView) onChange(ev events.Event) {
	v.logger.Debug("collection changed, reloading list", slog.String("content", ev.Content))
	_ = v.Reload(v.viewContext(context.Background()))
}

func (v *ListView) notify(snap ListSnapshot) {
	if v.onUpdate != nil {
		v.onUpdate(snap)
	}
}
