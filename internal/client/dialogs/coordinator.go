package dialogs

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"sync"

	"github.com/iudanet/credadmin/internal/client/api"
	"github.com/iudanet/credadmin/internal/client/events"
	"github.com/iudanet/credadmin/internal/models"
)

//go:generate moq -out navigator_mock.go . Navigator

// Navigator returns the application to the base (non-modal) view.
type Navigator interface {
	ClearPopup()
}

// Coordinator открывает диалоги по параметрам popup-маршрутов и следит,
// чтобы одновременно было открыто не больше одного модального окна.
type Coordinator struct {
	svc    api.CredentialService
	bus    *events.Bus
	nav    Navigator
	logger *slog.Logger
	active *Modal
	mu     sync.Mutex
}

// NewCoordinator creates a coordinator. nav may be nil when there is no router.
func NewCoordinator(svc api.CredentialService, bus *events.Bus, nav Navigator, logger *slog.Logger) *Coordinator {
	if logger == nil {
		logger = discardLogger()
	}
	return &Coordinator{
		svc:    svc,
		bus:    bus,
		nav:    nav,
		logger: logger,
	}
}

// Active returns the currently open modal, or nil.
func (c *Coordinator) Active() *Modal {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.active
}

// OpenEdit opens the edit dialog. A non-empty idParam loads that record first;
// an empty one starts a new draft. If a modal is already open it is returned unchanged.
func (c *Coordinator) OpenEdit(ctx context.Context, idParam string) (*Modal, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.active != nil {
		return c.active, nil
	}

	draft := models.NewCredential()
	if strings.TrimSpace(idParam) != "" {
		record, err := c.fetch(ctx, idParam)
		if err != nil {
			c.abort(err)
			return nil, err
		}
		draft = record
	}

	dialog := NewEditDialog(c.svc, c.bus, draft, c.logger)
	c.track(dialog.Modal())
	return c.active, nil
}

// OpenDelete opens the delete confirmation for the record with idParam.
// If a modal is already open it is returned unchanged.
func (c *Coordinator) OpenDelete(ctx context.Context, idParam string) (*Modal, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.active != nil {
		return c.active, nil
	}

	record, err := c.fetch(ctx, idParam)
	if err != nil {
		c.abort(err)
		return nil, err
	}

	dialog := NewDeleteDialog(c.svc, c.bus, record, c.logger)
	c.track(dialog.Modal())
	return c.active, nil
}

func (c *Coordinator) fetch(ctx context.Context, idParam string) (*models.Credential, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(idParam), 10, 64)
	if err != nil || id <= 0 {
		return nil, fmt.Errorf("%w: %q", ErrInvalidID, idParam)
	}
	record, err := c.svc.Find(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load credential %d: %w", id, err)
	}
	return record, nil
}

// track запоминает модальное окно; c.mu должен быть захвачен.
func (c *Coordinator) track(m *Modal) {
	m.onClose = c.release
	c.active = m
	c.logger.Debug("modal opened", slog.String("kind", m.Kind().String()))
}

// release вызывается при закрытии модального окна с любым результатом.
func (c *Coordinator) release(m *Modal) {
	c.mu.Lock()
	if c.active == m {
		c.active = nil
	}
	c.mu.Unlock()

	res, _ := m.Result()
	c.logger.Debug("modal closed", slog.String("kind", m.Kind().String()), slog.Bool("confirmed", res.Confirmed))
	if c.nav != nil {
		c.nav.ClearPopup()
	}
}

// abort leaves the popup route when nothing could be opened.
func (c *Coordinator) abort(err error) {
	c.logger.Warn("failed to open dialog", slog.Any("error", err))
	if c.nav != nil {
		c.nav.ClearPopup()
	}
}
