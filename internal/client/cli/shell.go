package cli

import (
	"context"
	"errors"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/iudanet/credadmin/internal/client/api"
	"github.com/iudanet/credadmin/internal/client/routes"
	"github.com/iudanet/credadmin/internal/client/views"
)

func newShellCommand(state *rootState) *cobra.Command {
	var flags listFlags
	cmd := &cobra.Command{
		Use:   "shell",
		Short: "Interactive session; the list refreshes after every change",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return state.app.runShell(cmd.Context(), flags)
		},
	}
	cmd.Flags().IntVar(&flags.size, "size", 0, "page size (default from config)")
	cmd.Flags().StringSliceVar(&flags.sort, "sort", nil, "sort order, e.g. login,asc")
	return cmd
}

// runShell держит list view смонтированным: после сохранения или удаления
// в диалоге шина событий перезагружает список и он перерисовывается.
func (a *App) runShell(ctx context.Context, flags listFlags) error {
	if _, err := a.requireSession(ctx); err != nil {
		return err
	}
	if _, err := a.router.Navigate(routes.ListPath("")); err != nil {
		return err
	}

	view := views.NewListView(a.svc, a.bus,
		views.WithQueryOptions(a.baseOptions(flags)),
		views.WithListLogger(a.logger),
		views.WithListUpdates(func(snap views.ListSnapshot) {
			if snap.State == views.StateLoaded || snap.State == views.StateErrored {
				if err := a.renderList(snap); err != nil {
					a.logger.Error("render failed", "error", err)
				}
			}
		}),
	)
	defer view.Close()

	// ошибка уже показана в списке
	_ = view.Mount(ctx)
	a.io.Println("Type 'help' for commands.")

	for {
		line, err := a.io.ReadInput("credadmin> ")
		if err != nil {
			if errors.Is(err, io.EOF) {
				a.io.Println()
				return nil
			}
			return err
		}

		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}
		quit, err := a.shellCommand(ctx, view, fields[0], fields[1:])
		if err != nil {
			a.io.Printf("Error: %s\n", api.Describe(err))
		}
		if quit {
			return nil
		}
	}
}

func (a *App) shellCommand(ctx context.Context, view *views.ListView, name string, args []string) (bool, error) {
	switch name {
	case "quit", "exit":
		return true, nil
	case "help":
		a.printShellHelp()
	case "list", "reload":
		_ = view.Reload(ctx)
	case "search":
		_ = view.Search(ctx, strings.Join(args, " "))
	case "clear":
		_ = view.Clear(ctx)
	case "view":
		id, err := shellID(args)
		if err != nil {
			return false, err
		}
		err = a.runView(ctx, id)
		// возвращаемся на список
		_, _ = a.router.Navigate(routes.ListPath(view.Snapshot().Query))
		return false, err
	case "new":
		return false, a.openPopup(ctx, routes.NewPath())
	case "edit":
		id, err := shellID(args)
		if err != nil {
			return false, err
		}
		return false, a.openPopup(ctx, routes.EditPath(id))
	case "delete":
		id, err := shellID(args)
		if err != nil {
			return false, err
		}
		return false, a.openPopup(ctx, routes.DeletePath(id))
	default:
		a.io.Printf("Unknown command %q. Type 'help' for commands.\n", name)
	}
	return false, nil
}

func shellID(args []string) (int64, error) {
	if len(args) != 1 {
		return 0, errors.New("expected exactly one credential id")
	}
	return parseID(args[0])
}
