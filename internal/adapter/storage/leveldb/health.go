package leveldb

import (
	"context"
	"fmt"

	goleveldb "github.com/syndtr/goleveldb/leveldb"
)

// HealthCheck implements ports.HealthChecker for LevelDB.
type HealthCheck struct {
	db *goleveldb.DB
}

func NewHealthCheck(db *goleveldb.DB) *HealthCheck {
	return &HealthCheck{db: db}
}

// Ping reads a stats property, which fails once the database is closed.
func (h *HealthCheck) Ping(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if _, err := h.db.GetProperty("leveldb.stats"); err != nil {
		return fmt.Errorf("leveldb stats: %w", err)
	}
	return nil
}

func (h *HealthCheck) Name() string {
	return "leveldb"
}
