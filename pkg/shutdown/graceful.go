package shutdown

import (
	"context"
	"os"
	"os/signal"
	"time"

	"github.com/honeycarbs/hh-vacancies/pkg/logging"
)

// Stoppable is anything that can drain and stop within a deadline
type Stoppable interface {
	Shutdown(ctx context.Context) error
}

// StopFunc adapts a plain function to Stoppable
type StopFunc func(ctx context.Context) error

func (f StopFunc) Shutdown(ctx context.Context) error {
	return f(ctx)
}

// Graceful blocks until one of signals arrives, then stops s within timeout
func Graceful(signals []os.Signal, s Stoppable, timeout time.Duration, log *logging.Logger) {
	sigCtx, stop := signal.NotifyContext(context.Background(), signals...)
	defer stop()

	<-sigCtx.Done()
	log.Info("shutdown signal received")

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err := s.Shutdown(ctx); err != nil {
		log.Warn("graceful shutdown completed with error", "err", err)
	} else {
		log.Info("graceful shutdown completed successfully")
	}
}
