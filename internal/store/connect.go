package store

import (
	"context"
	"fmt"
	"time"

	"github.com/jishinalert/dashboard/internal/logger"
)

// WaitReady polls Ping at a fixed interval until the store answers,
// giving up after the configured number of attempts. This is the only
// automatic retry in the system; every later fetch failure surfaces
// directly to its widget.
func WaitReady(ctx context.Context, s Store, attempts int, interval time.Duration) error {
	log := logger.FromContext(ctx).WithPrefix("store")

	var lastErr error
	for i := 1; i <= attempts; i++ {
		log.Debug("checking store connection, attempt %d/%d", i, attempts)
		if err := s.Ping(ctx); err == nil {
			log.Info("store connection ready after %d attempt(s)", i)
			return nil
		} else {
			lastErr = err
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(interval):
		}
	}
	return fmt.Errorf("store not ready after %d attempts: %w", attempts, lastErr)
}
