package leveldb

import (
	"context"
	"math"
	"sync"
	"testing"

	"donation-ledger/config"
	"donation-ledger/internal/core/domain"
	"donation-ledger/internal/core/ports"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *AccountStore {
	t.Helper()
	db, err := Open(config.LevelDBConfig{}, zerolog.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewAccountStore(db)
}

func addr(b byte) domain.Pubkey {
	var p domain.Pubkey
	p[0] = b
	p[31] = b
	return p
}

func fund(t *testing.T, s *AccountStore, to domain.Pubkey, lamports uint64) {
	t.Helper()
	ctx := context.Background()
	tx, err := s.Begin(ctx)
	require.NoError(t, err)
	_, err = tx.Credit(ctx, to, lamports)
	require.NoError(t, err)
	require.NoError(t, tx.Commit(ctx))
}

func TestAccountStore_CreateAndGetStore(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	rec := &domain.Store{Owner: addr(1), Bank: addr(2), Users: []domain.Pubkey{}, Bump: 255}

	tx, err := s.Begin(ctx)
	require.NoError(t, err)
	require.NoError(t, tx.CreateStore(ctx, addr(9), rec))

	// invisible until commit
	got, err := s.GetStore(ctx, addr(9))
	require.NoError(t, err)
	assert.Nil(t, got)

	// visible inside the transaction
	got, err = tx.GetStoreForUpdate(ctx, addr(9))
	require.NoError(t, err)
	require.NotNil(t, got)

	require.NoError(t, tx.Commit(ctx))
	require.NoError(t, tx.Rollback(ctx))

	got, err = s.GetStore(ctx, addr(9))
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, rec.Owner, got.Owner)
	assert.Equal(t, rec.Bank, got.Bank)
	assert.Empty(t, got.Users)
	assert.Equal(t, uint8(255), got.Bump)
}

func TestAccountStore_CreateTwiceFails(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	tx, err := s.Begin(ctx)
	require.NoError(t, err)
	require.NoError(t, tx.CreateUserLedger(ctx, addr(5), &domain.UserLedger{User: addr(1)}))
	require.NoError(t, tx.Commit(ctx))

	tx, err = s.Begin(ctx)
	require.NoError(t, err)
	defer tx.Rollback(ctx) //nolint:errcheck
	err = tx.CreateUserLedger(ctx, addr(5), &domain.UserLedger{User: addr(2)})
	assert.ErrorIs(t, err, ports.ErrAccountExists)
}

func TestAccountStore_UpdateMissingFails(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	tx, err := s.Begin(ctx)
	require.NoError(t, err)
	defer tx.Rollback(ctx) //nolint:errcheck

	assert.Error(t, tx.UpdateStore(ctx, addr(1), &domain.Store{}))
	assert.Error(t, tx.UpdateUserLedger(ctx, addr(1), &domain.UserLedger{}))
}

func TestAccountStore_RollbackDiscardsWrites(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	fund(t, s, addr(1), 100)

	tx, err := s.Begin(ctx)
	require.NoError(t, err)
	require.NoError(t, tx.Transfer(ctx, addr(1), addr(2), 60))
	require.NoError(t, tx.CreateStore(ctx, addr(3), &domain.Store{}))
	require.NoError(t, tx.Rollback(ctx))

	bal, err := s.GetBalance(ctx, addr(1))
	require.NoError(t, err)
	assert.Equal(t, uint64(100), bal)

	got, err := s.GetStore(ctx, addr(3))
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestAccountStore_Transfer(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	fund(t, s, addr(1), 1_000)

	tx, err := s.Begin(ctx)
	require.NoError(t, err)
	assert.ErrorIs(t, tx.Transfer(ctx, addr(1), addr(2), 1_001), ports.ErrInsufficientBalance)
	require.NoError(t, tx.Transfer(ctx, addr(1), addr(2), 400))
	require.NoError(t, tx.Transfer(ctx, addr(1), addr(1), 600))
	require.NoError(t, tx.Commit(ctx))

	from, err := s.GetBalance(ctx, addr(1))
	require.NoError(t, err)
	to, err := s.GetBalance(ctx, addr(2))
	require.NoError(t, err)
	assert.Equal(t, uint64(600), from)
	assert.Equal(t, uint64(400), to)
}

func TestAccountStore_CreditOverflow(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	fund(t, s, addr(1), math.MaxUint64)

	tx, err := s.Begin(ctx)
	require.NoError(t, err)
	defer tx.Rollback(ctx) //nolint:errcheck
	_, err = tx.Credit(ctx, addr(1), 1)
	assert.ErrorIs(t, err, ports.ErrBalanceOverflow)
}

func TestAccountStore_BeginCancelled(t *testing.T) {
	s := newTestStore(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := s.Begin(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestAccountStore_ConcurrentTransfersSerialize(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	fund(t, s, addr(1), 100)

	var wg sync.WaitGroup
	var mu sync.Mutex
	applied := 0
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			tx, err := s.Begin(ctx)
			if err != nil {
				return
			}
			defer tx.Rollback(ctx) //nolint:errcheck
			if err := tx.Transfer(ctx, addr(1), addr(2), 10); err != nil {
				return
			}
			if tx.Commit(ctx) == nil {
				mu.Lock()
				applied++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 10, applied)
	bal, err := s.GetBalance(ctx, addr(2))
	require.NoError(t, err)
	assert.Equal(t, uint64(100), bal)
}

func TestHealthCheck(t *testing.T) {
	db, err := Open(config.LevelDBConfig{}, zerolog.Nop())
	require.NoError(t, err)

	h := NewHealthCheck(db)
	assert.Equal(t, "leveldb", h.Name())
	assert.NoError(t, h.Ping(context.Background()))

	require.NoError(t, db.Close())
	assert.Error(t, h.Ping(context.Background()))
}

func TestOpen_OnDisk(t *testing.T) {
	dir := t.TempDir()
	db, err := Open(config.LevelDBConfig{Path: dir}, zerolog.Nop())
	require.NoError(t, err)
	s := NewAccountStore(db)
	fund(t, s, addr(7), 42)
	require.NoError(t, db.Close())

	db, err = Open(config.LevelDBConfig{Path: dir}, zerolog.Nop())
	require.NoError(t, err)
	defer db.Close()
	bal, err := NewAccountStore(db).GetBalance(context.Background(), addr(7))
	require.NoError(t, err)
	assert.Equal(t, uint64(42), bal)
}
