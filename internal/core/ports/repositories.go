package ports

import (
	"context"
	"errors"

	"donation-ledger/internal/core/domain"
)

var (
	// ErrAccountExists is returned when allocating a record at an occupied address.
	ErrAccountExists = errors.New("account already exists")
	// ErrInsufficientBalance is returned by Transfer when the source cannot cover the amount.
	ErrInsufficientBalance = errors.New("insufficient balance")
	// ErrBalanceOverflow is returned when a credit would exceed the lamport range.
	ErrBalanceOverflow = errors.New("balance overflow")
)

// AccountStore is the execution substrate: keyed records plus lamport
// balances. Reads outside a transaction see committed state only; lookups of
// absent records return nil with no error.
type AccountStore interface {
	Begin(ctx context.Context) (AccountTx, error)
	GetStore(ctx context.Context, addr domain.Pubkey) (*domain.Store, error)
	GetUserLedger(ctx context.Context, addr domain.Pubkey) (*domain.UserLedger, error)
	GetBalance(ctx context.Context, addr domain.Pubkey) (uint64, error)
}

// AccountTx is one atomic instruction. Writes to any account touched through
// ForUpdate or Transfer are serialized against concurrent transactions, and
// nothing is visible to others until Commit. Rollback after Commit is a no-op.
type AccountTx interface {
	GetStoreForUpdate(ctx context.Context, addr domain.Pubkey) (*domain.Store, error)
	CreateStore(ctx context.Context, addr domain.Pubkey, store *domain.Store) error
	UpdateStore(ctx context.Context, addr domain.Pubkey, store *domain.Store) error

	GetUserLedgerForUpdate(ctx context.Context, addr domain.Pubkey) (*domain.UserLedger, error)
	CreateUserLedger(ctx context.Context, addr domain.Pubkey, ledger *domain.UserLedger) error
	UpdateUserLedger(ctx context.Context, addr domain.Pubkey, ledger *domain.UserLedger) error

	// Transfer moves lamports between two addresses, creating the
	// destination balance if needed.
	Transfer(ctx context.Context, from, to domain.Pubkey, lamports uint64) error
	// Credit mints lamports into addr and returns the new balance.
	Credit(ctx context.Context, addr domain.Pubkey, lamports uint64) (uint64, error)

	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}

// InstructionLogRepository persists submitted-instruction outcomes.
type InstructionLogRepository interface {
	Create(ctx context.Context, log *domain.InstructionLog) error
	List(ctx context.Context, params InstructionLogListParams) ([]domain.InstructionLog, int64, error)
}

// InstructionLogListParams holds filter + pagination for listing instruction logs.
type InstructionLogListParams struct {
	Signer   *domain.Pubkey
	Kind     *domain.InstructionKind
	Status   *domain.InstructionStatus
	Page     int
	PageSize int
}
