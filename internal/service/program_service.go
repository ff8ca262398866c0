package service

import (
	"context"
	"errors"
	"fmt"

	"donation-ledger/internal/core/domain"
	"donation-ledger/internal/core/pda"
	"donation-ledger/internal/core/ports"
	"donation-ledger/pkg/apperror"

	"github.com/rs/zerolog"
)

// Roles named in address errors.
const (
	roleStore     = "store"
	roleUserStore = "user_store"
)

// ProgramSettings sizes the records a payer allocates.
type ProgramSettings struct {
	Rent           domain.RentSchedule
	StoreSpace     int
	UserStoreSpace int
}

// ProgramServiceImpl implements ports.ProgramService. Every handler checks
// all preconditions before its first write and runs inside one AccountTx,
// so a failed instruction leaves no state behind.
type ProgramServiceImpl struct {
	accounts ports.AccountStore
	deriver  *pda.Deriver
	settings ProgramSettings
	log      zerolog.Logger
}

// NewProgramService creates a new ProgramServiceImpl.
func NewProgramService(
	accounts ports.AccountStore,
	deriver *pda.Deriver,
	settings ProgramSettings,
	log zerolog.Logger,
) *ProgramServiceImpl {
	return &ProgramServiceImpl{
		accounts: accounts,
		deriver:  deriver,
		settings: settings,
		log:      log,
	}
}

// Initialize creates the owner's Store at derive("store", owner).
func (s *ProgramServiceImpl) Initialize(ctx context.Context, req ports.InitializeRequest) (*domain.Store, error) {
	expected, bump, err := s.deriver.Store(req.Owner)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("derive store: %w", err))
	}
	if expected != req.Store {
		return nil, apperror.ErrAddressMismatch(roleStore)
	}

	dbTx, err := s.accounts.Begin(ctx)
	if err != nil {
		return nil, apperror.ErrDatabaseError(err)
	}
	defer dbTx.Rollback(ctx) //nolint:errcheck

	existing, err := dbTx.GetStoreForUpdate(ctx, req.Store)
	if err != nil {
		return nil, apperror.ErrDatabaseError(fmt.Errorf("lock store: %w", err))
	}
	if existing != nil {
		return nil, apperror.ErrAlreadyInitialized(roleStore)
	}

	// Creation deposit
	deposit := s.settings.Rent.MinimumBalance(s.settings.StoreSpace)
	if err := dbTx.Transfer(ctx, req.Owner, req.Store, deposit); err != nil {
		return nil, transferError(err)
	}

	store := &domain.Store{
		Owner: req.Owner,
		Bank:  req.Bank,
		Users: []domain.Pubkey{},
		Bump:  bump,
	}
	if err := dbTx.CreateStore(ctx, req.Store, store); err != nil {
		if errors.Is(err, ports.ErrAccountExists) {
			return nil, apperror.ErrAlreadyInitialized(roleStore)
		}
		return nil, apperror.ErrDatabaseError(fmt.Errorf("create store: %w", err))
	}

	if err := dbTx.Commit(ctx); err != nil {
		return nil, apperror.ErrDatabaseError(err)
	}

	s.log.Info().
		Str("store", req.Store.String()).
		Str("owner", req.Owner.String()).
		Str("bank", req.Bank.String()).
		Uint64("deposit", deposit).
		Msg("store initialized")

	return store, nil
}

// InitializeUser creates the user's UserLedger bound to the Store's bank.
func (s *ProgramServiceImpl) InitializeUser(ctx context.Context, req ports.InitializeUserRequest) (*domain.UserLedger, error) {
	expected, bump, err := s.deriver.UserStore(req.User)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("derive user store: %w", err))
	}
	if expected != req.Ledger {
		return nil, apperror.ErrAddressMismatch(roleUserStore)
	}

	dbTx, err := s.accounts.Begin(ctx)
	if err != nil {
		return nil, apperror.ErrDatabaseError(err)
	}
	defer dbTx.Rollback(ctx) //nolint:errcheck

	store, err := s.loadGenuineStore(ctx, dbTx, req.Store)
	if err != nil {
		return nil, err
	}
	if req.Bank != store.Bank {
		return nil, apperror.ErrBankMismatch()
	}

	existing, err := dbTx.GetUserLedgerForUpdate(ctx, req.Ledger)
	if err != nil {
		return nil, apperror.ErrDatabaseError(fmt.Errorf("lock user ledger: %w", err))
	}
	if existing != nil {
		return nil, apperror.ErrAlreadyInitialized(roleUserStore)
	}

	// Creation deposit
	deposit := s.settings.Rent.MinimumBalance(s.settings.UserStoreSpace)
	if err := dbTx.Transfer(ctx, req.User, req.Ledger, deposit); err != nil {
		return nil, transferError(err)
	}

	ledger := &domain.UserLedger{
		User:      req.User,
		Bank:      store.Bank,
		Donations: []uint64{},
		Bump:      bump,
	}
	if err := dbTx.CreateUserLedger(ctx, req.Ledger, ledger); err != nil {
		if errors.Is(err, ports.ErrAccountExists) {
			return nil, apperror.ErrAlreadyInitialized(roleUserStore)
		}
		return nil, apperror.ErrDatabaseError(fmt.Errorf("create user ledger: %w", err))
	}

	if err := dbTx.Commit(ctx); err != nil {
		return nil, apperror.ErrDatabaseError(err)
	}

	s.log.Info().
		Str("user_store", req.Ledger.String()).
		Str("user", req.User.String()).
		Str("store", req.Store.String()).
		Uint64("deposit", deposit).
		Msg("user ledger initialized")

	return ledger, nil
}

// MakeDonations moves the amount from the donor to the bank and records it
// on both the Store and the donor's UserLedger.
func (s *ProgramServiceImpl) MakeDonations(ctx context.Context, req ports.MakeDonationsRequest) (*ports.DonationReceipt, error) {
	if req.Amount == 0 {
		return nil, apperror.ErrInvalidAmount()
	}

	dbTx, err := s.accounts.Begin(ctx)
	if err != nil {
		return nil, apperror.ErrDatabaseError(err)
	}
	defer dbTx.Rollback(ctx) //nolint:errcheck

	store, err := s.loadGenuineStore(ctx, dbTx, req.Store)
	if err != nil {
		return nil, err
	}
	if req.Bank != store.Bank {
		return nil, apperror.ErrBankMismatch()
	}

	ledger, err := dbTx.GetUserLedgerForUpdate(ctx, req.Ledger)
	if err != nil {
		return nil, apperror.ErrDatabaseError(fmt.Errorf("lock user ledger: %w", err))
	}
	if ledger == nil {
		return nil, apperror.ErrNotInitialized(roleUserStore)
	}
	if ledger.User != req.Donor || !s.deriver.Verify(domain.SeedUserStore, ledger.User, ledger.Bump, req.Ledger) {
		return nil, apperror.ErrAddressMismatch(roleUserStore)
	}
	if ledger.Bank != store.Bank {
		return nil, apperror.ErrBankMismatch()
	}

	if err := dbTx.Transfer(ctx, req.Donor, req.Bank, req.Amount); err != nil {
		return nil, transferError(err)
	}

	store.RecordDonor(req.Donor)
	ledger.RecordDonation(req.Amount)

	if err := dbTx.UpdateStore(ctx, req.Store, store); err != nil {
		return nil, apperror.ErrDatabaseError(fmt.Errorf("update store: %w", err))
	}
	if err := dbTx.UpdateUserLedger(ctx, req.Ledger, ledger); err != nil {
		return nil, apperror.ErrDatabaseError(fmt.Errorf("update user ledger: %w", err))
	}

	if err := dbTx.Commit(ctx); err != nil {
		return nil, apperror.ErrDatabaseError(err)
	}

	s.log.Info().
		Str("store", req.Store.String()).
		Str("donor", req.Donor.String()).
		Uint64("amount", req.Amount).
		Int("donations", len(ledger.Donations)).
		Msg("donation recorded")

	return &ports.DonationReceipt{Store: store, Ledger: ledger}, nil
}

// WithdrawDonations releases funds from the bank to the Store owner. Only
// the bank itself may sign, and only the owner may receive.
func (s *ProgramServiceImpl) WithdrawDonations(ctx context.Context, req ports.WithdrawDonationsRequest) (*ports.WithdrawalReceipt, error) {
	if req.Amount == 0 {
		return nil, apperror.ErrInvalidAmount()
	}

	dbTx, err := s.accounts.Begin(ctx)
	if err != nil {
		return nil, apperror.ErrDatabaseError(err)
	}
	defer dbTx.Rollback(ctx) //nolint:errcheck

	store, err := s.loadGenuineStore(ctx, dbTx, req.Store)
	if err != nil {
		return nil, err
	}
	if req.Bank != store.Bank {
		return nil, apperror.ErrUnauthorizedSigner()
	}
	if req.Destination != store.Owner {
		return nil, apperror.ErrDestinationMismatch()
	}

	if err := dbTx.Transfer(ctx, req.Bank, req.Destination, req.Amount); err != nil {
		return nil, transferError(err)
	}

	if err := dbTx.Commit(ctx); err != nil {
		return nil, apperror.ErrDatabaseError(err)
	}

	s.log.Info().
		Str("store", req.Store.String()).
		Str("bank", req.Bank.String()).
		Str("destination", req.Destination.String()).
		Uint64("amount", req.Amount).
		Msg("donations withdrawn")

	return &ports.WithdrawalReceipt{
		Store:       req.Store,
		Bank:        req.Bank,
		Destination: req.Destination,
		Amount:      req.Amount,
	}, nil
}

// loadGenuineStore locks the Store at addr and checks that addr is the
// address derived from the record's own owner and bump.
func (s *ProgramServiceImpl) loadGenuineStore(ctx context.Context, dbTx ports.AccountTx, addr domain.Pubkey) (*domain.Store, error) {
	store, err := dbTx.GetStoreForUpdate(ctx, addr)
	if err != nil {
		return nil, apperror.ErrDatabaseError(fmt.Errorf("lock store: %w", err))
	}
	if store == nil {
		return nil, apperror.ErrNotInitialized(roleStore)
	}
	if !s.deriver.Verify(domain.SeedStore, store.Owner, store.Bump, addr) {
		return nil, apperror.ErrAddressMismatch(roleStore)
	}
	return store, nil
}

func transferError(err error) error {
	switch {
	case errors.Is(err, ports.ErrInsufficientBalance):
		return apperror.ErrInsufficientFunds()
	case errors.Is(err, ports.ErrBalanceOverflow):
		return apperror.InternalError(fmt.Errorf("transfer: %w", err))
	default:
		return apperror.ErrDatabaseError(fmt.Errorf("transfer: %w", err))
	}
}
