package main

import (
	"context"
	"log"
	"os"
	"syscall"
	"time"

	"github.com/honeycarbs/hh-vacancies/internal/app"
	"github.com/honeycarbs/hh-vacancies/internal/config"
	"github.com/honeycarbs/hh-vacancies/internal/mcp"
	"github.com/honeycarbs/hh-vacancies/pkg/logging"
	"github.com/honeycarbs/hh-vacancies/pkg/shutdown"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger := logging.New(cfg.LogLevel)
	defer func() { _ = logger.Sync() }()

	ctx := context.Background()

	res, cleanup, err := app.InitializeResources(ctx, cfg, logger)
	if err != nil {
		logger.Error("failed to initialize resources", "err", err)
		os.Exit(1)
	}
	defer cleanup()

	if err := res.Service.Probe(ctx); err != nil {
		logger.Warn("hh.ru is not reachable yet; searches will fail until it is", "err", err)
	}

	mcpRes := mcp.Resources{Service: res.Service}
	if res.Exporter != nil {
		mcpRes.Exporter = res.Exporter
	}
	srv := mcp.NewServer(logger, cfg, mcpRes)

	go shutdown.Graceful(
		[]os.Signal{os.Interrupt, syscall.SIGTERM, syscall.SIGQUIT, syscall.SIGHUP},
		srv,
		10*time.Second,
		logger,
	)

	logger.Info("MCP server initialized and starting", "addr", srv.Addr())

	if err := srv.Run(); err != nil {
		logger.Error("MCP server exited with error", "err", err)
	} else {
		logger.Info("MCP server stopped")
	}
}
