package redis

import (
	"context"
	"fmt"

	"donation-ledger/config"
	"donation-ledger/pkg/logger"

	goredis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

// clientOptions maps the redis section onto go-redis options. The client
// name shows up in CLIENT LIST so nonce and rate-limit traffic can be told
// apart from other tenants of a shared instance.
func clientOptions(cfg config.RedisConfig) *goredis.Options {
	return &goredis.Options{
		Addr:       cfg.Addr(),
		Password:   cfg.Password,
		DB:         cfg.DB,
		ClientName: logger.ServiceName,
	}
}

// NewClient connects the store that holds signer nonces and rate-limit
// windows. The server refuses to start without it.
func NewClient(ctx context.Context, cfg config.RedisConfig, log zerolog.Logger) (*goredis.Client, error) {
	client := goredis.NewClient(clientOptions(cfg))

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("redis nonce store at %s unreachable: %w", cfg.Addr(), err)
	}

	log.Info().
		Str("redis_addr", cfg.Addr()).
		Int("redis_db", cfg.DB).
		Msg("Nonce and rate-limit store ready")

	return client, nil
}
