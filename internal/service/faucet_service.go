package service

import (
	"context"
	"errors"
	"fmt"

	"donation-ledger/config"
	"donation-ledger/internal/core/domain"
	"donation-ledger/internal/core/ports"
	"donation-ledger/pkg/apperror"

	"github.com/rs/zerolog"
)

// FaucetServiceImpl implements ports.FaucetService.
type FaucetServiceImpl struct {
	accounts ports.AccountStore
	cfg      config.FaucetConfig
	log      zerolog.Logger
}

// NewFaucetService creates a new FaucetServiceImpl.
func NewFaucetService(accounts ports.AccountStore, cfg config.FaucetConfig, log zerolog.Logger) *FaucetServiceImpl {
	return &FaucetServiceImpl{accounts: accounts, cfg: cfg, log: log}
}

// Airdrop credits lamports to an address and returns its new balance.
func (s *FaucetServiceImpl) Airdrop(ctx context.Context, to domain.Pubkey, lamports uint64) (uint64, error) {
	if !s.cfg.Enabled {
		return 0, apperror.ErrFaucetDisabled()
	}
	if lamports == 0 {
		return 0, apperror.ErrInvalidAmount()
	}
	if s.cfg.MaxAmount > 0 && lamports > s.cfg.MaxAmount {
		return 0, apperror.Validation(fmt.Sprintf("airdrop amount exceeds maximum of %d lamports", s.cfg.MaxAmount))
	}

	dbTx, err := s.accounts.Begin(ctx)
	if err != nil {
		return 0, apperror.ErrDatabaseError(err)
	}
	defer dbTx.Rollback(ctx) //nolint:errcheck

	balance, err := dbTx.Credit(ctx, to, lamports)
	if err != nil {
		if errors.Is(err, ports.ErrBalanceOverflow) {
			return 0, apperror.Validation("airdrop would overflow the balance")
		}
		return 0, apperror.ErrDatabaseError(fmt.Errorf("credit balance: %w", err))
	}

	if err := dbTx.Commit(ctx); err != nil {
		return 0, apperror.ErrDatabaseError(err)
	}

	s.log.Info().
		Str("address", to.String()).
		Uint64("amount", lamports).
		Uint64("balance", balance).
		Msg("airdrop credited")

	return balance, nil
}
