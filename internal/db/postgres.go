package db

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"spec-tracker/internal/config/configs"
	"spec-tracker/internal/core/port"
)

// NewPostgresPool creates a pgxpool.Pool and verifies connectivity by
// pinging with a 5 second timeout. The initial connection is the only
// retried operation in the system: it is attempted cfg.ConnectAttempts
// times with cfg.ConnectRetryDelay seconds between attempts, and
// exhaustion surfaces port.ErrConnectivity. The caller must close the
// returned pool.
func NewPostgresPool(ctx context.Context, cfg configs.Postgres) (*pgxpool.Pool, error) {
	poolConf, err := pgxpool.ParseConfig(cfg.Addr.String())
	if err != nil {
		return nil, err
	}

	attempts := cfg.ConnectAttempts
	if attempts < 1 {
		attempts = 1
	}
	delay := time.Duration(cfg.ConnectRetryDelay) * time.Second

	var lastErr error
	for i := 0; i < attempts; i++ {
		if i > 0 {
			select {
			case <-time.After(delay):
			case <-ctx.Done():
				return nil, fmt.Errorf("%w: %v", port.ErrConnectivity, ctx.Err())
			}
		}

		pool, err := pgxpool.NewWithConfig(ctx, poolConf)
		if err != nil {
			lastErr = err
			continue
		}

		ctxPing, cancel := context.WithTimeout(ctx, 5*time.Second)
		err = pool.Ping(ctxPing)
		cancel()
		if err != nil {
			pool.Close()
			lastErr = err
			continue
		}
		return pool, nil
	}
	return nil, fmt.Errorf("%w: after %d attempts: %v", port.ErrConnectivity, attempts, lastErr)
}
