package service

import (
	"context"
	"fmt"

	"donation-ledger/internal/core/domain"
	"donation-ledger/internal/core/pda"
	"donation-ledger/internal/core/ports"
	"donation-ledger/pkg/apperror"
)

// reportingService implements ports.ReportingService.
type reportingService struct {
	accounts ports.AccountStore
	logRepo  ports.InstructionLogRepository
	deriver  *pda.Deriver
}

// NewReportingService creates a new reporting service.
// logRepo may be nil when the backend keeps no instruction log.
func NewReportingService(
	accounts ports.AccountStore,
	logRepo ports.InstructionLogRepository,
	deriver *pda.Deriver,
) ports.ReportingService {
	return &reportingService{
		accounts: accounts,
		logRepo:  logRepo,
		deriver:  deriver,
	}
}

// GetStore returns the Store record at addr.
func (s *reportingService) GetStore(ctx context.Context, addr domain.Pubkey) (*domain.Store, error) {
	store, err := s.accounts.GetStore(ctx, addr)
	if err != nil {
		return nil, apperror.InternalError(err)
	}
	if store == nil {
		return nil, apperror.ErrNotInitialized(roleStore)
	}
	return store, nil
}

// GetUserLedger returns the UserLedger record at addr.
func (s *reportingService) GetUserLedger(ctx context.Context, addr domain.Pubkey) (*domain.UserLedger, error) {
	ledger, err := s.accounts.GetUserLedger(ctx, addr)
	if err != nil {
		return nil, apperror.InternalError(err)
	}
	if ledger == nil {
		return nil, apperror.ErrNotInitialized(roleUserStore)
	}
	return ledger, nil
}

// GetBalance returns the lamports held at addr. Unknown addresses hold zero.
func (s *reportingService) GetBalance(ctx context.Context, addr domain.Pubkey) (uint64, error) {
	bal, err := s.accounts.GetBalance(ctx, addr)
	if err != nil {
		return 0, apperror.InternalError(err)
	}
	return bal, nil
}

// ListDonors groups the Store's donors in order of first appearance, each
// with the full history of the ledger derived for them.
func (s *reportingService) ListDonors(ctx context.Context, storeAddr domain.Pubkey) ([]ports.DonorSummary, error) {
	store, err := s.GetStore(ctx, storeAddr)
	if err != nil {
		return nil, err
	}

	donors := store.Donors()
	out := make([]ports.DonorSummary, 0, len(donors))
	for _, donor := range donors {
		addr, _, err := s.deriver.UserStore(donor)
		if err != nil {
			return nil, apperror.InternalError(fmt.Errorf("derive user store: %w", err))
		}
		ledger, err := s.accounts.GetUserLedger(ctx, addr)
		if err != nil {
			return nil, apperror.InternalError(err)
		}

		summary := ports.DonorSummary{Donor: donor, Ledger: addr, Donations: []uint64{}}
		if ledger != nil {
			summary.Donations = ledger.Donations
			summary.Total = ledger.Total()
		}
		out = append(out, summary)
	}
	return out, nil
}

// ListInstructions returns a page of recorded instruction outcomes.
func (s *reportingService) ListInstructions(ctx context.Context, params ports.InstructionLogListParams) ([]domain.InstructionLog, int64, error) {
	if s.logRepo == nil {
		return nil, 0, apperror.ErrUnavailable("instruction log")
	}
	logs, total, err := s.logRepo.List(ctx, params)
	if err != nil {
		return nil, 0, apperror.InternalError(err)
	}
	return logs, total, nil
}
