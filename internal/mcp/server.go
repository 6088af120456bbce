package mcp

import (
	"context"
	"errors"
	"net/http"
	"sync/atomic"
	"time"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/honeycarbs/hh-vacancies/internal/config"
	"github.com/honeycarbs/hh-vacancies/pkg/logging"
)

// Server wraps an MCP SDK server with an HTTP listener
type Server struct {
	logger *logging.Logger

	srv     *http.Server
	started atomic.Bool
}

// NewServer constructs a new MCP HTTP server with the vacancy tools registered
func NewServer(log *logging.Logger, cfg config.Config, res Resources) *Server {
	impl := &sdkmcp.Implementation{
		Name:    "hh-vacancies",
		Version: "0.1.0",
	}

	mcpServer := sdkmcp.NewServer(impl, nil)
	NewToolRegistry(log).RegisterAll(mcpServer, res)

	return &Server{
		logger: log,
		srv: &http.Server{
			Addr:              cfg.Addr(),
			Handler:           newHandler(mcpServer),
			ReadHeaderTimeout: 5 * time.Second,
		},
	}
}

func newHandler(mcpServer *sdkmcp.Server) http.Handler {
	handler := sdkmcp.NewStreamableHTTPHandler(func(req *http.Request) *sdkmcp.Server {
		return mcpServer
	}, nil)

	mux := http.NewServeMux()
	mux.Handle("/mcp/stream", handler)
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	return mux
}

// Addr is the configured listen address
func (s *Server) Addr() string {
	return s.srv.Addr
}

// Run starts the HTTP server and blocks until shutdown
func (s *Server) Run() error {
	if !s.started.CompareAndSwap(false, true) {
		return nil
	}

	s.logger.Info("MCP HTTP server listening", "addr", s.srv.Addr)

	if err := s.srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("shutdown requested for MCP HTTP server")
	if err := s.srv.Shutdown(ctx); err != nil {
		s.logger.Warn("MCP HTTP server shutdown with error", "err", err)
		return err
	}

	s.logger.Info("MCP HTTP server shutdown complete")
	return nil
}
