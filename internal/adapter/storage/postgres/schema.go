package postgres

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
)

// Records keep their binary layout in data; owner, user_key and bank are
// copies for indexing and are never read back.
const schema = `
CREATE TABLE IF NOT EXISTS stores (
	address    BYTEA PRIMARY KEY,
	owner      BYTEA NOT NULL UNIQUE,
	bank       BYTEA NOT NULL,
	data       BYTEA NOT NULL,
	created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);
CREATE INDEX IF NOT EXISTS idx_stores_bank ON stores (bank);

CREATE TABLE IF NOT EXISTS user_ledgers (
	address    BYTEA PRIMARY KEY,
	user_key   BYTEA NOT NULL UNIQUE,
	bank       BYTEA NOT NULL,
	data       BYTEA NOT NULL,
	created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE TABLE IF NOT EXISTS balances (
	address  BYTEA PRIMARY KEY,
	lamports BIGINT NOT NULL CHECK (lamports >= 0)
);

CREATE TABLE IF NOT EXISTS instruction_logs (
	id         UUID PRIMARY KEY,
	kind       TEXT NOT NULL,
	signer     BYTEA,
	target     TEXT NOT NULL DEFAULT '',
	amount     BIGINT,
	status     TEXT NOT NULL,
	error_code TEXT NOT NULL DEFAULT '',
	request_id TEXT NOT NULL DEFAULT '',
	ip_address TEXT NOT NULL DEFAULT '',
	created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);
CREATE INDEX IF NOT EXISTS idx_instruction_logs_signer ON instruction_logs (signer, created_at DESC);
`

// Migrate creates the tables if they do not exist.
func Migrate(ctx context.Context, pool Pool, log zerolog.Logger) error {
	if _, err := pool.Exec(ctx, schema); err != nil {
		return fmt.Errorf("apply schema: %w", err)
	}
	log.Info().Msg("PostgreSQL schema applied")
	return nil
}
