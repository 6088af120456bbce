package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/honeycarbs/hh-vacancies/internal/app"
	"github.com/honeycarbs/hh-vacancies/internal/cli"
	"github.com/honeycarbs/hh-vacancies/internal/config"
	"github.com/honeycarbs/hh-vacancies/pkg/logging"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger := logging.NewConsole(cfg.LogLevel)
	defer func() { _ = logger.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	res, cleanup, err := app.InitializeResources(ctx, cfg, logger)
	if err != nil {
		logger.Error("failed to initialize resources", "err", err)
		os.Exit(1)
	}
	defer cleanup()

	opts := []cli.Option{cli.WithLogger(logger)}
	if res.Exporter != nil {
		opts = append(opts, cli.WithExporter(res.Exporter))
	}

	if err := cli.New(res.Service, os.Stdin, os.Stdout, opts...).Run(ctx); err != nil {
		logger.Error("console session ended with error", "err", err)
		cleanup()
		os.Exit(1)
	}
}
