// Package cli содержит команды credadmin поверх представлений, диалогов и роутера.
package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/iudanet/credadmin/internal/client/api"
	"github.com/iudanet/credadmin/internal/client/auth"
	"github.com/iudanet/credadmin/internal/client/dialogs"
	"github.com/iudanet/credadmin/internal/client/events"
	"github.com/iudanet/credadmin/internal/client/iocli"
	"github.com/iudanet/credadmin/internal/client/routes"
	"github.com/iudanet/credadmin/internal/client/storage"
)

// ErrNotAuthenticated is returned by commands that need a session.
var ErrNotAuthenticated = errors.New("not authenticated. Please run 'credadmin login' first")

// Options are the dependencies of App.
type Options struct {
	IO        iocli.IO
	Service   api.CredentialService
	Auth      *auth.Service
	Bus       *events.Bus
	Logger    *slog.Logger
	SetToken  func(token string)
	ServerURL string
	PageSize  int
}

// App связывает компоненты клиента: шину событий, роутер и координатор диалогов.
type App struct {
	io        iocli.IO
	svc       api.CredentialService
	auth      *auth.Service
	bus       *events.Bus
	router    *routes.Router
	coord     *dialogs.Coordinator
	logger    *slog.Logger
	setToken  func(token string)
	serverURL string
	pageSize  int
}

// NewApp creates the application. Bus defaults to a fresh bus.
func NewApp(opts Options) *App {
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	bus := opts.Bus
	if bus == nil {
		bus = events.NewBus(logger)
	}
	setToken := opts.SetToken
	if setToken == nil {
		setToken = func(string) {}
	}

	router := routes.NewRouter(logger)
	return &App{
		io:        opts.IO,
		svc:       opts.Service,
		auth:      opts.Auth,
		bus:       bus,
		router:    router,
		coord:     dialogs.NewCoordinator(opts.Service, bus, router, logger),
		logger:    logger,
		setToken:  setToken,
		serverURL: opts.ServerURL,
		pageSize:  opts.PageSize,
	}
}

// requireSession loads the session, configures the API token and the router.
func (a *App) requireSession(ctx context.Context) (*storage.SessionData, error) {
	session, err := a.auth.Session(ctx)
	if err != nil {
		if errors.Is(err, storage.ErrSessionNotFound) {
			return nil, ErrNotAuthenticated
		}
		return nil, err
	}
	a.setToken(session.AccessToken)
	a.router.SetSession(session)
	return session, nil
}

// openPopup navigates to a popup route and runs the dialog it opens.
func (a *App) openPopup(ctx context.Context, path string) error {
	match, err := a.router.Navigate(path)
	if err != nil {
		return err
	}

	var modal *dialogs.Modal
	switch match.Route.Name {
	case routes.NameNew:
		modal, err = a.coord.OpenEdit(ctx, "")
	case routes.NameEdit:
		modal, err = a.coord.OpenEdit(ctx, match.Param("id"))
	case routes.NameDelete:
		modal, err = a.coord.OpenDelete(ctx, match.Param("id"))
	default:
		return fmt.Errorf("%s is not a popup route", path)
	}
	if err != nil {
		return err
	}

	switch modal.Kind() {
	case dialogs.KindEdit:
		return a.runEditDialog(ctx, modal.Edit())
	case dialogs.KindDelete:
		return a.runDeleteDialog(ctx, modal.Delete())
	default:
		return fmt.Errorf("unsupported dialog kind %s", modal.Kind())
	}
}

func parseID(arg string) (int64, error) {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid credential id %q", arg)
	}
	return id, nil
}
