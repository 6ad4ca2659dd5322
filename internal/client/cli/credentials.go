package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/iudanet/credadmin/internal/client/api"
	"github.com/iudanet/credadmin/internal/client/routes"
	"github.com/iudanet/credadmin/internal/client/views"
)

// listFlags параметры команды list
type listFlags struct {
	search string
	sort   []string
	page   int
	size   int
}

func newListCommand(state *rootState) *cobra.Command {
	var flags listFlags
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List or search credentials",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return state.app.runList(cmd.Context(), flags)
		},
	}
	cmd.Flags().StringVarP(&flags.search, "search", "s", "", "free-text search query")
	cmd.Flags().IntVar(&flags.page, "page", 0, "page number (0-based)")
	cmd.Flags().IntVar(&flags.size, "size", 0, "page size (default from config)")
	cmd.Flags().StringSliceVar(&flags.sort, "sort", nil, "sort order, e.g. login,asc (repeatable)")
	return cmd
}

func newViewCommand(state *rootState) *cobra.Command {
	return &cobra.Command{
		Use:   "view <id>",
		Short: "Show credential details",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			return state.app.runView(cmd.Context(), id)
		},
	}
}

func newNewCommand(state *rootState) *cobra.Command {
	return &cobra.Command{
		Use:   "new",
		Short: "Create a credential",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return state.app.runPopup(cmd.Context(), routes.NewPath())
		},
	}
}

func newEditCommand(state *rootState) *cobra.Command {
	return &cobra.Command{
		Use:   "edit <id>",
		Short: "Edit a credential",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			return state.app.runPopup(cmd.Context(), routes.EditPath(id))
		},
	}
}

func newDeleteCommand(state *rootState) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a credential",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			return state.app.runPopup(cmd.Context(), routes.DeletePath(id))
		},
	}
}

func (a *App) baseOptions(flags listFlags) api.QueryOptions {
	size := flags.size
	if size == 0 {
		size = a.pageSize
	}
	return api.QueryOptions{Page: flags.page, Size: size, Sort: flags.sort}
}

func (a *App) runList(ctx context.Context, flags listFlags) error {
	if _, err := a.requireSession(ctx); err != nil {
		return err
	}
	if _, err := a.router.Navigate(routes.ListPath(flags.search)); err != nil {
		return err
	}

	view := views.NewListView(a.svc, a.bus,
		views.WithQueryOptions(a.baseOptions(flags)),
		views.WithInitialSearch(flags.search),
		views.WithListLogger(a.logger),
	)
	defer view.Close()

	loadErr := view.Mount(ctx)
	if err := a.renderList(view.Snapshot()); err != nil {
		return err
	}
	return loadErr
}

func (a *App) runView(ctx context.Context, id int64) error {
	if _, err := a.requireSession(ctx); err != nil {
		return err
	}
	if _, err := a.router.Navigate(routes.DetailPath(id)); err != nil {
		return err
	}

	view := views.NewDetailView(a.svc, a.bus, id, views.WithDetailLogger(a.logger))
	defer view.Close()

	if err := view.Mount(ctx); err != nil {
		return err
	}
	return a.renderCredential(view.Snapshot().Record)
}

// runPopup открывает диалог как отдельную команду
func (a *App) runPopup(ctx context.Context, path string) error {
	if _, err := a.requireSession(ctx); err != nil {
		return err
	}
	return a.openPopup(ctx, path)
}
