package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/iudanet/credadmin/internal/client/api"
	"github.com/iudanet/credadmin/internal/client/auth"
	"github.com/iudanet/credadmin/internal/client/cli"
	"github.com/iudanet/credadmin/internal/client/events"
	"github.com/iudanet/credadmin/internal/client/iocli"
	"github.com/iudanet/credadmin/internal/client/storage/boltdb"
	"github.com/iudanet/credadmin/internal/config"
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

	root := cli.NewRootCommand(newApp, fmt.Sprintf("%s (built %s, commit %s)", Version, BuildDate, GitCommit))
	code := cli.Execute(ctx, root)
	stop()
	os.Exit(code)
}

// newApp собирает зависимости клиента для загруженной конфигурации
func newApp(ctx context.Context, cfg *config.Client, log *slog.Logger) (*cli.App, io.Closer, error) {
	// Открываем BoltDB storage
	boltStorage, err := boltdb.New(ctx, cfg.DBPath)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Создаем API клиент
	apiClient := api.NewClient(cfg.ServerURL)

	app := cli.NewApp(cli.Options{
		IO:        iocli.NewStdio(),
		Service:   apiClient,
		Auth:      auth.NewService(apiClient, boltStorage),
		Bus:       events.NewBus(log),
		Logger:    log,
		SetToken:  apiClient.SetToken,
		ServerURL: cfg.ServerURL,
		PageSize:  cfg.PageSize,
	})
	return app, boltStorage, nil
}
