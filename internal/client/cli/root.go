package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/iudanet/credadmin/internal/client/api"
	"github.com/iudanet/credadmin/internal/config"
	"github.com/iudanet/credadmin/internal/logger"
)

// Factory builds the App for a loaded configuration. The closer is called after the command.
type Factory func(ctx context.Context, cfg *config.Client, log *slog.Logger) (*App, io.Closer, error)

// rootState хранит App, созданный в PersistentPreRunE
type rootState struct {
	app     *App
	closer  io.Closer
	logFile io.Closer
}

// NewRootCommand builds the credadmin command tree.
func NewRootCommand(factory Factory, version string) *cobra.Command {
	state := &rootState{}
	v := config.NewViper()

	var (
		configFile string
		verbose    bool
	)

	root := &cobra.Command{
		Use:           "credadmin",
		Short:         "Credential administration client",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadClient(v, configFile)
			if err != nil {
				return err
			}
			if verbose {
				cfg.Log.Level = "debug"
			}

			log, logFile, err := logger.New(cfg.Log, cmd.ErrOrStderr())
			if err != nil {
				return fmt.Errorf("failed to init logger: %w", err)
			}
			state.logFile = logFile

			app, closer, err := factory(cmd.Context(), cfg, log)
			if err != nil {
				return err
			}
			state.app = app
			state.closer = closer
			return nil
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			return state.close()
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&configFile, "config", "", "config file (yaml, json or toml)")
	flags.String("server", "http://localhost:8080", "server URL")
	flags.String("db", "credadmin-client.db", "path to the local session database")
	flags.BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	_ = v.BindPFlag("server_url", flags.Lookup("server"))
	_ = v.BindPFlag("db", flags.Lookup("db"))

	root.AddCommand(
		newLoginCommand(state),
		newLogoutCommand(state),
		newStatusCommand(state),
		newListCommand(state),
		newViewCommand(state),
		newNewCommand(state),
		newEditCommand(state),
		newDeleteCommand(state),
		newShellCommand(state),
	)
	return root
}

func (s *rootState) close() error {
	var err error
	if s.closer != nil {
		err = s.closer.Close()
		s.closer = nil
	}
	if s.logFile != nil {
		_ = s.logFile.Close()
		s.logFile = nil
	}
	return err
}

// Execute runs the command tree and returns the process exit code.
func Execute(ctx context.Context, root *cobra.Command) int {
	err := root.ExecuteContext(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", api.Describe(err))
		return 1
	}
	return 0
}
