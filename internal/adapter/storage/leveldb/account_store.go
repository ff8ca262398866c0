package leveldb

import (
	"context"
	"encoding/binary"
	"errors"
	"fmt"
	"math"

	"donation-ledger/internal/core/domain"
	"donation-ledger/internal/core/ports"

	goleveldb "github.com/syndtr/goleveldb/leveldb"
	"github.com/syndtr/goleveldb/leveldb/opt"
)

const (
	storeKeyPrefix   = "store/"
	ledgerKeyPrefix  = "ledger/"
	balanceKeyPrefix = "balance/"
)

func recordKey(prefix string, addr domain.Pubkey) []byte {
	key := make([]byte, 0, len(prefix)+domain.PubkeySize)
	key = append(key, prefix...)
	return append(key, addr[:]...)
}

// getter is satisfied by both *goleveldb.DB and *goleveldb.Transaction.
type getter interface {
	Get(key []byte, ro *opt.ReadOptions) ([]byte, error)
}

// AccountStore implements ports.AccountStore on LevelDB. Records are stored
// in their binary layout. OpenTransaction holds the database write lock, so
// instructions apply one at a time.
type AccountStore struct {
	db *goleveldb.DB
}

func NewAccountStore(db *goleveldb.DB) *AccountStore {
	return &AccountStore{db: db}
}

func (s *AccountStore) Begin(ctx context.Context) (ports.AccountTx, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	tx, err := s.db.OpenTransaction()
	if err != nil {
		return nil, fmt.Errorf("open leveldb transaction: %w", err)
	}
	return &accountTx{tx: tx}, nil
}

func (s *AccountStore) GetStore(ctx context.Context, addr domain.Pubkey) (*domain.Store, error) {
	return loadStore(s.db, addr)
}

func (s *AccountStore) GetUserLedger(ctx context.Context, addr domain.Pubkey) (*domain.UserLedger, error) {
	return loadUserLedger(s.db, addr)
}

func (s *AccountStore) GetBalance(ctx context.Context, addr domain.Pubkey) (uint64, error) {
	return loadBalance(s.db, addr)
}

type accountTx struct {
	tx *goleveldb.Transaction
}

func (t *accountTx) GetStoreForUpdate(ctx context.Context, addr domain.Pubkey) (*domain.Store, error) {
	return loadStore(t.tx, addr)
}

func (t *accountTx) CreateStore(ctx context.Context, addr domain.Pubkey, store *domain.Store) error {
	key := recordKey(storeKeyPrefix, addr)
	if err := t.ensureVacant(key); err != nil {
		return err
	}
	return t.putRecord(key, store)
}

func (t *accountTx) UpdateStore(ctx context.Context, addr domain.Pubkey, store *domain.Store) error {
	key := recordKey(storeKeyPrefix, addr)
	if err := t.ensureExists(key); err != nil {
		return fmt.Errorf("update store %s: %w", addr, err)
	}
	return t.putRecord(key, store)
}

func (t *accountTx) GetUserLedgerForUpdate(ctx context.Context, addr domain.Pubkey) (*domain.UserLedger, error) {
	return loadUserLedger(t.tx, addr)
}

func (t *accountTx) CreateUserLedger(ctx context.Context, addr domain.Pubkey, ledger *domain.UserLedger) error {
	key := recordKey(ledgerKeyPrefix, addr)
	if err := t.ensureVacant(key); err != nil {
		return err
	}
	return t.putRecord(key, ledger)
}

func (t *accountTx) UpdateUserLedger(ctx context.Context, addr domain.Pubkey, ledger *domain.UserLedger) error {
	key := recordKey(ledgerKeyPrefix, addr)
	if err := t.ensureExists(key); err != nil {
		return fmt.Errorf("update user ledger %s: %w", addr, err)
	}
	return t.putRecord(key, ledger)
}

func (t *accountTx) Transfer(ctx context.Context, from, to domain.Pubkey, lamports uint64) error {
	fromBal, err := loadBalance(t.tx, from)
	if err != nil {
		return err
	}
	if fromBal < lamports {
		return ports.ErrInsufficientBalance
	}
	if from == to || lamports == 0 {
		return nil
	}
	toBal, err := loadBalance(t.tx, to)
	if err != nil {
		return err
	}
	if toBal > math.MaxUint64-lamports {
		return ports.ErrBalanceOverflow
	}

	batch := new(goleveldb.Batch)
	batch.Put(recordKey(balanceKeyPrefix, from), encodeBalance(fromBal-lamports))
	batch.Put(recordKey(balanceKeyPrefix, to), encodeBalance(toBal+lamports))
	if err := t.tx.Write(batch, nil); err != nil {
		return fmt.Errorf("write transfer: %w", err)
	}
	return nil
}

func (t *accountTx) Credit(ctx context.Context, addr domain.Pubkey, lamports uint64) (uint64, error) {
	bal, err := loadBalance(t.tx, addr)
	if err != nil {
		return 0, err
	}
	if bal > math.MaxUint64-lamports {
		return 0, ports.ErrBalanceOverflow
	}
	bal += lamports
	if err := t.tx.Put(recordKey(balanceKeyPrefix, addr), encodeBalance(bal), nil); err != nil {
		return 0, fmt.Errorf("write balance: %w", err)
	}
	return bal, nil
}

func (t *accountTx) Commit(ctx context.Context) error {
	if err := t.tx.Commit(); err != nil {
		return fmt.Errorf("commit leveldb transaction: %w", err)
	}
	return nil
}

func (t *accountTx) Rollback(ctx context.Context) error {
	t.tx.Discard()
	return nil
}

func (t *accountTx) ensureVacant(key []byte) error {
	ok, err := t.tx.Has(key, nil)
	if err != nil {
		return fmt.Errorf("check record: %w", err)
	}
	if ok {
		return ports.ErrAccountExists
	}
	return nil
}

func (t *accountTx) ensureExists(key []byte) error {
	ok, err := t.tx.Has(key, nil)
	if err != nil {
		return fmt.Errorf("check record: %w", err)
	}
	if !ok {
		return goleveldb.ErrNotFound
	}
	return nil
}

func (t *accountTx) putRecord(key []byte, rec interface{ MarshalBinary() ([]byte, error) }) error {
	raw, err := rec.MarshalBinary()
	if err != nil {
		return fmt.Errorf("encode record: %w", err)
	}
	if err := t.tx.Put(key, raw, nil); err != nil {
		return fmt.Errorf("write record: %w", err)
	}
	return nil
}

func loadStore(g getter, addr domain.Pubkey) (*domain.Store, error) {
	raw, err := g.Get(recordKey(storeKeyPrefix, addr), nil)
	if err != nil {
		if errors.Is(err, goleveldb.ErrNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("get store: %w", err)
	}
	s := &domain.Store{}
	if err := s.UnmarshalBinary(raw); err != nil {
		return nil, err
	}
	return s, nil
}

func loadUserLedger(g getter, addr domain.Pubkey) (*domain.UserLedger, error) {
	raw, err := g.Get(recordKey(ledgerKeyPrefix, addr), nil)
	if err != nil {
		if errors.Is(err, goleveldb.ErrNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("get user ledger: %w", err)
	}
	l := &domain.UserLedger{}
	if err := l.UnmarshalBinary(raw); err != nil {
		return nil, err
	}
	return l, nil
}

// loadBalance treats a missing entry as zero.
func loadBalance(g getter, addr domain.Pubkey) (uint64, error) {
	raw, err := g.Get(recordKey(balanceKeyPrefix, addr), nil)
	if err != nil {
		if errors.Is(err, goleveldb.ErrNotFound) {
			return 0, nil
		}
		return 0, fmt.Errorf("get balance: %w", err)
	}
	if len(raw) != 8 {
		return 0, fmt.Errorf("corrupt balance for %s: %d bytes", addr, len(raw))
	}
	return binary.LittleEndian.Uint64(raw), nil
}

func encodeBalance(v uint64) []byte {
	return binary.LittleEndian.AppendUint64(make([]byte, 0, 8), v)
}
