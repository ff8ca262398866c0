package postgres

import (
	"context"
	"fmt"

	"donation-ledger/config"
	"donation-ledger/pkg/logger"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

// poolConfig turns the database section into a pgx pool config. Sessions
// are tagged with the service name in pg_stat_activity.
func poolConfig(cfg config.DatabaseConfig) (*pgxpool.Config, error) {
	poolCfg, err := pgxpool.ParseConfig(cfg.DSN())
	if err != nil {
		return nil, fmt.Errorf("invalid ledger database settings: %w", err)
	}

	poolCfg.ConnConfig.RuntimeParams["application_name"] = logger.ServiceName
	if cfg.MaxConns > 0 {
		poolCfg.MaxConns = cfg.MaxConns
	}
	if cfg.MinConns > 0 {
		poolCfg.MinConns = cfg.MinConns
	}
	if cfg.ConnMaxLifetime > 0 {
		poolCfg.MaxConnLifetime = cfg.ConnMaxLifetime
	}
	return poolCfg, nil
}

// NewPool opens the pool backing the account store and the instruction log.
func NewPool(ctx context.Context, cfg config.DatabaseConfig, log zerolog.Logger) (*pgxpool.Pool, error) {
	poolCfg, err := poolConfig(cfg)
	if err != nil {
		return nil, err
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("open ledger database pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ledger database %s:%d unreachable: %w", cfg.Host, cfg.Port, err)
	}

	log.Info().
		Str("db_host", cfg.Host).
		Int("db_port", cfg.Port).
		Str("db_name", cfg.DBName).
		Int32("pool_max_conns", poolCfg.MaxConns).
		Msg("Ledger database pool ready")

	return pool, nil
}
