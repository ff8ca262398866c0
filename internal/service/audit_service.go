package service

import (
	"context"
	"sync"

	"donation-ledger/internal/core/domain"
	"donation-ledger/internal/core/ports"

	"github.com/rs/zerolog"
)

type auditService struct {
	repo ports.InstructionLogRepository
	log  zerolog.Logger

	mu       sync.Mutex
	draining bool
	pending  sync.WaitGroup
}

// NewAuditService creates a new audit service.
// If repo is nil, instruction outcomes are only written to the logger.
func NewAuditService(repo ports.InstructionLogRepository, log zerolog.Logger) ports.AuditService {
	return &auditService{repo: repo, log: log}
}

// Log records an instruction outcome asynchronously (fire-and-forget).
func (s *auditService) Log(ctx context.Context, entry *domain.InstructionLog) {
	s.mu.Lock()
	if s.draining {
		s.mu.Unlock()
		s.emit(entry)
		s.log.Warn().Str("instruction", string(entry.Kind)).Msg("instruction log not persisted, audit is draining")
		return
	}
	s.pending.Add(1)
	s.mu.Unlock()

	go func() {
		defer s.pending.Done()
		s.emit(entry)

		if s.repo != nil {
			if err := s.repo.Create(context.Background(), entry); err != nil {
				s.log.Warn().Err(err).Str("instruction", string(entry.Kind)).Msg("failed to persist instruction log")
			}
		}
	}()
}

// Drain stops accepting writes and waits for the in-flight ones. It must run
// before the instruction log repository's pool is closed.
func (s *auditService) Drain(ctx context.Context) error {
	s.mu.Lock()
	s.draining = true
	s.mu.Unlock()

	done := make(chan struct{})
	go func() {
		s.pending.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (s *auditService) emit(entry *domain.InstructionLog) {
	ev := s.log.Info().
		Str("instruction", string(entry.Kind)).
		Str("status", string(entry.Status)).
		Str("target", entry.Target).
		Str("request_id", entry.RequestID).
		Str("ip", entry.IPAddress)
	if entry.Signer != nil {
		ev = ev.Str("signer", entry.Signer.String())
	}
	if entry.ErrorCode != "" {
		ev = ev.Str("error_code", entry.ErrorCode)
	}
	ev.Msg("instruction")
}
