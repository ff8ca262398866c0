package leveldb

import (
	"fmt"
	"path/filepath"
	"strings"

	"donation-ledger/config"

	"github.com/rs/zerolog"
	goleveldb "github.com/syndtr/goleveldb/leveldb"
	"github.com/syndtr/goleveldb/leveldb/storage"
)

// Open opens the LevelDB database at cfg.Path, or an in-memory database
// when the path is empty.
func Open(cfg config.LevelDBConfig, log zerolog.Logger) (*goleveldb.DB, error) {
	path := strings.TrimSpace(cfg.Path)
	if path == "" {
		db, err := goleveldb.Open(storage.NewMemStorage(), nil)
		if err != nil {
			return nil, fmt.Errorf("open in-memory leveldb: %w", err)
		}
		log.Warn().Msg("LevelDB running in memory, state is lost on exit")
		return db, nil
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolve leveldb path: %w", err)
	}
	db, err := goleveldb.OpenFile(abs, nil)
	if err != nil {
		return nil, fmt.Errorf("open leveldb: %w", err)
	}

	log.Info().Str("path", abs).Msg("LevelDB opened")
	return db, nil
}
