package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/iudanet/credadmin/internal/config"
	"github.com/iudanet/credadmin/internal/logger"
	"github.com/iudanet/credadmin/internal/server"
)

var (
	// Version information set via ldflags during build
	Version   = "dev"
	BuildDate = "unknown"
	GitCommit = "unknown"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCommand().ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	v := config.NewViper()
	var configFile string

	root := &cobra.Command{
		Use:          "credadmin-server",
		Short:        "REST backend for credadmin",
		Version:      fmt.Sprintf("%s (built %s, commit %s)", Version, BuildDate, GitCommit),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadServer(v, configFile)
			if err != nil {
				return err
			}

			log, logFile, err := logger.New(cfg.Log, cmd.ErrOrStderr())
			if err != nil {
				return fmt.Errorf("failed to init logger: %w", err)
			}
			defer func() { _ = logFile.Close() }()

			return server.Run(cmd.Context(), cfg, log, Version)
		},
	}

	flags := root.Flags()
	flags.StringVar(&configFile, "config", "", "config file (yaml, json or toml)")
	flags.String("addr", ":8080", "listen address")
	flags.String("db", "credadmin.db", "path to SQLite database")
	_ = v.BindPFlag("addr", flags.Lookup("addr"))
	_ = v.BindPFlag("db", flags.Lookup("db"))

	return root
}
