package postgres

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"math"

	"donation-ledger/internal/core/domain"
	"donation-ledger/internal/core/ports"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// numericOutOfRange is the SQLSTATE raised when BIGINT arithmetic overflows.
const numericOutOfRange = "22003"

// AccountStore implements ports.AccountStore on PostgreSQL. Row locks taken
// with FOR UPDATE serialize instructions that touch the same account.
type AccountStore struct {
	pool Pool
}

// NewAccountStore creates a new AccountStore.
func NewAccountStore(pool Pool) *AccountStore {
	return &AccountStore{pool: pool}
}

// Begin starts a new database transaction.
func (s *AccountStore) Begin(ctx context.Context) (ports.AccountTx, error) {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}
	return &accountTx{tx: tx}, nil
}

// GetStore fetches a Store by address (without locking).
func (s *AccountStore) GetStore(ctx context.Context, addr domain.Pubkey) (*domain.Store, error) {
	return scanStore(s.pool.QueryRow(ctx, `SELECT data FROM stores WHERE address = $1`, addr[:]))
}

// GetUserLedger fetches a UserLedger by address (without locking).
func (s *AccountStore) GetUserLedger(ctx context.Context, addr domain.Pubkey) (*domain.UserLedger, error) {
	return scanUserLedger(s.pool.QueryRow(ctx, `SELECT data FROM user_ledgers WHERE address = $1`, addr[:]))
}

// GetBalance returns the committed balance; a missing row is zero.
func (s *AccountStore) GetBalance(ctx context.Context, addr domain.Pubkey) (uint64, error) {
	var lamports int64
	err := s.pool.QueryRow(ctx, `SELECT lamports FROM balances WHERE address = $1`, addr[:]).Scan(&lamports)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, nil
		}
		return 0, fmt.Errorf("get balance: %w", err)
	}
	return uint64(lamports), nil
}

type accountTx struct {
	tx pgx.Tx
}

// GetStoreForUpdate fetches a Store with pessimistic locking.
func (t *accountTx) GetStoreForUpdate(ctx context.Context, addr domain.Pubkey) (*domain.Store, error) {
	return scanStore(t.tx.QueryRow(ctx, `SELECT data FROM stores WHERE address = $1 FOR UPDATE`, addr[:]))
}

func (t *accountTx) CreateStore(ctx context.Context, addr domain.Pubkey, store *domain.Store) error {
	data, err := store.MarshalBinary()
	if err != nil {
		return fmt.Errorf("encode store: %w", err)
	}
	query := `INSERT INTO stores (address, owner, bank, data) VALUES ($1, $2, $3, $4)
		ON CONFLICT (address) DO NOTHING`

	tag, err := t.tx.Exec(ctx, query, addr[:], store.Owner[:], store.Bank[:], data)
	if err != nil {
		return fmt.Errorf("insert store: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ports.ErrAccountExists
	}
	return nil
}

func (t *accountTx) UpdateStore(ctx context.Context, addr domain.Pubkey, store *domain.Store) error {
	data, err := store.MarshalBinary()
	if err != nil {
		return fmt.Errorf("encode store: %w", err)
	}
	tag, err := t.tx.Exec(ctx, `UPDATE stores SET data = $1, updated_at = NOW() WHERE address = $2`, data, addr[:])
	if err != nil {
		return fmt.Errorf("update store: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("store not found: %s", addr)
	}
	return nil
}

// GetUserLedgerForUpdate fetches a UserLedger with pessimistic locking.
func (t *accountTx) GetUserLedgerForUpdate(ctx context.Context, addr domain.Pubkey) (*domain.UserLedger, error) {
	return scanUserLedger(t.tx.QueryRow(ctx, `SELECT data FROM user_ledgers WHERE address = $1 FOR UPDATE`, addr[:]))
}

func (t *accountTx) CreateUserLedger(ctx context.Context, addr domain.Pubkey, ledger *domain.UserLedger) error {
	data, err := ledger.MarshalBinary()
	if err != nil {
		return fmt.Errorf("encode user ledger: %w", err)
	}
	query := `INSERT INTO user_ledgers (address, user_key, bank, data) VALUES ($1, $2, $3, $4)
		ON CONFLICT (address) DO NOTHING`

	tag, err := t.tx.Exec(ctx, query, addr[:], ledger.User[:], ledger.Bank[:], data)
	if err != nil {
		return fmt.Errorf("insert user ledger: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ports.ErrAccountExists
	}
	return nil
}

func (t *accountTx) UpdateUserLedger(ctx context.Context, addr domain.Pubkey, ledger *domain.UserLedger) error {
	data, err := ledger.MarshalBinary()
	if err != nil {
		return fmt.Errorf("encode user ledger: %w", err)
	}
	tag, err := t.tx.Exec(ctx, `UPDATE user_ledgers SET data = $1, updated_at = NOW() WHERE address = $2`, data, addr[:])
	if err != nil {
		return fmt.Errorf("update user ledger: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("user ledger not found: %s", addr)
	}
	return nil
}

// Transfer locks both balance rows in address order, so two opposite
// transfers cannot deadlock, then debits and upserts the credit.
func (t *accountTx) Transfer(ctx context.Context, from, to domain.Pubkey, lamports uint64) error {
	if lamports > math.MaxInt64 {
		return ports.ErrInsufficientBalance
	}

	rows, err := t.tx.Query(ctx,
		`SELECT address, lamports FROM balances WHERE address = ANY($1) ORDER BY address FOR UPDATE`,
		[][]byte{from[:], to[:]},
	)
	if err != nil {
		return fmt.Errorf("lock balances: %w", err)
	}
	var fromBal int64
	for rows.Next() {
		var address []byte
		var bal int64
		if err := rows.Scan(&address, &bal); err != nil {
			rows.Close()
			return fmt.Errorf("scan balance row: %w", err)
		}
		if bytes.Equal(address, from[:]) {
			fromBal = bal
		}
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return fmt.Errorf("iterate balance rows: %w", err)
	}

	if uint64(fromBal) < lamports {
		return ports.ErrInsufficientBalance
	}
	if from == to || lamports == 0 {
		return nil
	}

	if _, err := t.tx.Exec(ctx,
		`UPDATE balances SET lamports = lamports - $1 WHERE address = $2`,
		int64(lamports), from[:],
	); err != nil {
		return fmt.Errorf("debit balance: %w", err)
	}
	if _, err := t.credit(ctx, to, int64(lamports)); err != nil {
		return err
	}
	return nil
}

func (t *accountTx) Credit(ctx context.Context, addr domain.Pubkey, lamports uint64) (uint64, error) {
	if lamports > math.MaxInt64 {
		return 0, ports.ErrBalanceOverflow
	}
	bal, err := t.credit(ctx, addr, int64(lamports))
	if err != nil {
		return 0, err
	}
	return uint64(bal), nil
}

func (t *accountTx) credit(ctx context.Context, addr domain.Pubkey, lamports int64) (int64, error) {
	query := `INSERT INTO balances (address, lamports) VALUES ($1, $2)
		ON CONFLICT (address) DO UPDATE SET lamports = balances.lamports + EXCLUDED.lamports
		RETURNING lamports`

	var bal int64
	if err := t.tx.QueryRow(ctx, query, addr[:], lamports).Scan(&bal); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == numericOutOfRange {
			return 0, ports.ErrBalanceOverflow
		}
		return 0, fmt.Errorf("credit balance: %w", err)
	}
	return bal, nil
}

func (t *accountTx) Commit(ctx context.Context) error {
	if err := t.tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}
	return nil
}

func (t *accountTx) Rollback(ctx context.Context) error {
	err := t.tx.Rollback(ctx)
	if err != nil && !errors.Is(err, pgx.ErrTxClosed) {
		return fmt.Errorf("rollback tx: %w", err)
	}
	return nil
}

func scanStore(row pgx.Row) (*domain.Store, error) {
	var data []byte
	if err := row.Scan(&data); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get store: %w", err)
	}
	s := &domain.Store{}
	if err := s.UnmarshalBinary(data); err != nil {
		return nil, err
	}
	return s, nil
}

func scanUserLedger(row pgx.Row) (*domain.UserLedger, error) {
	var data []byte
	if err := row.Scan(&data); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get user ledger: %w", err)
	}
	l := &domain.UserLedger{}
	if err := l.UnmarshalBinary(data); err != nil {
		return nil, err
	}
	return l, nil
}
