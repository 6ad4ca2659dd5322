// Package views содержит list и detail представления credentials.
//
// Представление монтируется (Mount), подписывается на шину событий и
// перезагружает данные при каждом CredentialCollectionChanged. Close
// отписывает представление и отменяет незавершенные запросы; результаты,
// пришедшие после Close или после более нового запроса, отбрасываются.
package views

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"

	"github.com/iudanet/credadmin/internal/client/api"
	"github.com/iudanet/credadmin/internal/client/events"
	"github.com/iudanet/credadmin/internal/models"
)

var (
	// ErrViewClosed is returned when a load is requested after Close.
	ErrViewClosed = errors.New("view is closed")

	// ErrAlreadyMounted is returned by a second Mount.
	ErrAlreadyMounted = errors.New("view is already mounted")
)

// State is the load state of a view.
type State int

const (
	StateIdle State = iota
	StateLoading
	StateLoaded
	StateErrored
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateLoading:
		return "loading"
	case StateLoaded:
		return "loaded"
	case StateErrored:
		return "errored"
	default:
		return "unknown"
	}
}

// ListLoader loads collections of credentials.
type ListLoader interface {
	List(ctx context.Context, opts api.QueryOptions) ([]*models.Credential, error)
	Search(ctx context.Context, opts api.QueryOptions) ([]*models.Credential, error)
}

// RecordLoader loads a single credential.
type RecordLoader interface {
	Find(ctx context.Context, id int64) (*models.Credential, error)
}

// lifecycle держит общее для представлений состояние монтирования:
// контекст, подписку на шину и номер поколения запросов.
type lifecycle struct {
	ctx        context.Context
	cancel     context.CancelFunc
	sub        *events.Subscription
	logger     *slog.Logger
	generation uint64
	mu         sync.Mutex
	mounted    bool
	closed     bool
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// mount creates the view context and subscribes handler to change events.
func (l *lifecycle) mount(ctx context.Context, bus *events.Bus, handler events.Handler) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.closed {
		return ErrViewClosed
	}
	if l.mounted {
		return ErrAlreadyMounted
	}

	l.ctx, l.cancel = context.WithCancel(ctx)
	l.sub = bus.Subscribe(events.CredentialCollectionChanged, handler)
	l.mounted = true
	return nil
}

// close releases the subscription and cancels in-flight loads. Idempotent.
func (l *lifecycle) close() {
	l.mu.Lock()
	if l.closed {
		l.mu.Unlock()
		return
	}
	l.closed = true
	sub := l.sub
	cancel := l.cancel
	l.sub = nil
	l.mu.Unlock()

	sub.Unsubscribe()
	if cancel != nil {
		cancel()
	}
}

// viewContext returns the mount context, or ctx if the view was never mounted.
func (l *lifecycle) viewContext(fallback context.Context) context.Context {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.ctx != nil {
		return l.ctx
	}
	return fallback
}

// begin starts a new load and returns its generation.
// Must be called with l.mu held.
func (l *lifecycle) begin() uint64 {
	l.generation++
	return l.generation
}

// current reports whether a load of generation gen may still be applied.
// Must be called with l.mu held.
func (l *lifecycle) current(gen uint64) bool {
	if l.closed || gen != l.generation {
		return false
	}
	return l.ctx == nil || l.ctx.Err() == nil
}
