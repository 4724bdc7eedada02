package database

import (
	"context"
	"fmt"
	"time"

	"inventory-dashboard/internal/config"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

// NewPool connects to the store and verifies the connection before
// returning. The pool is shared by all repositories.
func NewPool(ctx context.Context, cfg config.StoreConfig, logger zerolog.Logger) (*pgxpool.Pool, error) {
	poolConfig, err := poolConfig(cfg)
	if err != nil {
		return nil, err
	}

	logger.Info().
		Str("store", cfg.Redacted()).
		Int32("max_connections", poolConfig.MaxConns).
		Int32("min_connections", poolConfig.MinConns).
		Dur("health_check_period", poolConfig.HealthCheckPeriod).
		Msg("connecting to store")

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create store pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("store at %s is unreachable: %w", cfg.Redacted(), err)
	}

	logger.Info().Msg("store pool ready")

	return pool, nil
}

// poolConfig translates StoreConfig into pgxpool settings. Durations of
// zero keep the pgxpool defaults.
func poolConfig(cfg config.StoreConfig) (*pgxpool.Config, error) {
	pc, err := pgxpool.ParseConfig(cfg.ConnectionString())
	if err != nil {
		return nil, fmt.Errorf("failed to parse store config: %w", err)
	}

	pc.MaxConns = int32(cfg.MaxConnections)
	pc.MinConns = int32(cfg.MinConnections)

	if cfg.MaxConnLifetime > 0 {
		pc.MaxConnLifetime = seconds(cfg.MaxConnLifetime)
	}
	if cfg.MaxConnIdleTime > 0 {
		pc.MaxConnIdleTime = seconds(cfg.MaxConnIdleTime)
	}
	if cfg.HealthCheck > 0 {
		pc.HealthCheckPeriod = seconds(cfg.HealthCheck)
	}

	return pc, nil
}

func seconds(n int) time.Duration {
	return time.Duration(n) * time.Second
}
