package postgres

import (
	"context"
	"fmt"
	"strings"

	"donation-ledger/internal/core/domain"
	"donation-ledger/internal/core/ports"
)

// InstructionLogRepo implements ports.InstructionLogRepository.
type InstructionLogRepo struct {
	pool Pool
}

// NewInstructionLogRepo creates a new InstructionLogRepo.
func NewInstructionLogRepo(pool Pool) *InstructionLogRepo {
	return &InstructionLogRepo{pool: pool}
}

// Create inserts one instruction outcome.
func (r *InstructionLogRepo) Create(ctx context.Context, log *domain.InstructionLog) error {
	query := `INSERT INTO instruction_logs (id, kind, signer, target, amount, status, error_code, request_id, ip_address, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`

	var signer []byte
	if log.Signer != nil {
		signer = log.Signer.Bytes()
	}
	var amount *int64
	if log.Amount != nil {
		v := int64(*log.Amount)
		amount = &v
	}

	_, err := r.pool.Exec(ctx, query,
		log.ID, string(log.Kind), signer, log.Target, amount,
		string(log.Status), log.ErrorCode, log.RequestID, log.IPAddress, log.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert instruction log: %w", err)
	}
	return nil
}

// List returns a page of instruction logs, newest first, with the total count.
func (r *InstructionLogRepo) List(ctx context.Context, params ports.InstructionLogListParams) ([]domain.InstructionLog, int64, error) {
	var conditions []string
	var args []any
	argIdx := 1

	if params.Signer != nil {
		conditions = append(conditions, fmt.Sprintf("signer = $%d", argIdx))
		args = append(args, params.Signer.Bytes())
		argIdx++
	}
	if params.Kind != nil {
		conditions = append(conditions, fmt.Sprintf("kind = $%d", argIdx))
		args = append(args, string(*params.Kind))
		argIdx++
	}
	if params.Status != nil {
		conditions = append(conditions, fmt.Sprintf("status = $%d", argIdx))
		args = append(args, string(*params.Status))
		argIdx++
	}

	where := ""
	if len(conditions) > 0 {
		where = "WHERE " + strings.Join(conditions, " AND ")
	}

	// Count total
	var total int64
	if err := r.pool.QueryRow(ctx, fmt.Sprintf("SELECT COUNT(*) FROM instruction_logs %s", where), args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count instruction logs: %w", err)
	}

	// Fetch page
	offset := (params.Page - 1) * params.PageSize
	dataQuery := fmt.Sprintf(`SELECT id, kind, signer, target, amount, status, error_code, request_id, ip_address, created_at
		FROM instruction_logs %s ORDER BY created_at DESC LIMIT $%d OFFSET $%d`, where, argIdx, argIdx+1)
	args = append(args, params.PageSize, offset)

	rows, err := r.pool.Query(ctx, dataQuery, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list instruction logs: %w", err)
	}
	defer rows.Close()

	var logs []domain.InstructionLog
	for rows.Next() {
		var (
			l            domain.InstructionLog
			kind, status string
			signer       []byte
			amount       *int64
		)
		err := rows.Scan(&l.ID, &kind, &signer, &l.Target, &amount, &status,
			&l.ErrorCode, &l.RequestID, &l.IPAddress, &l.CreatedAt)
		if err != nil {
			return nil, 0, fmt.Errorf("scan instruction log row: %w", err)
		}
		l.Kind = domain.InstructionKind(kind)
		l.Status = domain.InstructionStatus(status)
		if signer != nil {
			p, err := domain.PubkeyFromBytes(signer)
			if err != nil {
				return nil, 0, fmt.Errorf("scan instruction log signer: %w", err)
			}
			l.Signer = &p
		}
		if amount != nil {
			v := uint64(*amount)
			l.Amount = &v
		}
		logs = append(logs, l)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate instruction log rows: %w", err)
	}
	return logs, total, nil
}
