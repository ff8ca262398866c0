package postgres

import (
	"context"
	"testing"
	"time"

	"donation-ledger/internal/core/domain"
	"donation-ledger/internal/core/ports"

	"github.com/google/uuid"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func logColumns() []string {
	return []string{"id", "kind", "signer", "target", "amount", "status", "error_code", "request_id", "ip_address", "created_at"}
}

func TestInstructionLogRepo_Create(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	signer := pk(4)
	amount := uint64(1_000_000)
	entry := &domain.InstructionLog{
		ID:        uuid.New(),
		Kind:      domain.InstructionMakeDonations,
		Signer:    &signer,
		Target:    pk(5).String(),
		Amount:    &amount,
		Status:    domain.InstructionStatusApplied,
		RequestID: "req-1",
		IPAddress: "127.0.0.1",
		CreatedAt: time.Now().UTC(),
	}

	mock.ExpectExec("INSERT INTO instruction_logs").
		WithArgs(entry.ID, "MAKE_DONATIONS", signer.Bytes(), entry.Target, pgxmock.AnyArg(),
			"APPLIED", "", "req-1", "127.0.0.1", entry.CreatedAt).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	require.NoError(t, NewInstructionLogRepo(mock).Create(context.Background(), entry))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestInstructionLogRepo_List(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	signer := pk(4)
	kind := domain.InstructionWithdrawDonations
	now := time.Now().UTC()
	id := uuid.New()
	amount := int64(1_000_000)

	mock.ExpectQuery("SELECT COUNT").
		WithArgs(signer.Bytes(), "WITHDRAW_DONATIONS").
		WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(int64(3)))
	mock.ExpectQuery("SELECT id, kind, signer").
		WithArgs(signer.Bytes(), "WITHDRAW_DONATIONS", 2, 2).
		WillReturnRows(pgxmock.NewRows(logColumns()).
			AddRow(id, "WITHDRAW_DONATIONS", signer.Bytes(), pk(5).String(), &amount,
				"REJECTED", "LED_004", "req-9", "10.0.0.1", now))

	logs, total, err := NewInstructionLogRepo(mock).List(context.Background(), ports.InstructionLogListParams{
		Signer:   &signer,
		Kind:     &kind,
		Page:     2,
		PageSize: 2,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	require.Len(t, logs, 1)
	assert.Equal(t, id, logs[0].ID)
	assert.Equal(t, domain.InstructionStatusRejected, logs[0].Status)
	require.NotNil(t, logs[0].Signer)
	assert.Equal(t, signer, *logs[0].Signer)
	require.NotNil(t, logs[0].Amount)
	assert.Equal(t, uint64(1_000_000), *logs[0].Amount)
	assert.Equal(t, "LED_004", logs[0].ErrorCode)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestInstructionLogRepo_List_NoFilters(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectQuery("SELECT COUNT").
		WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(int64(0)))
	mock.ExpectQuery("SELECT id, kind, signer").
		WithArgs(20, 0).
		WillReturnRows(pgxmock.NewRows(logColumns()))

	logs, total, err := NewInstructionLogRepo(mock).List(context.Background(), ports.InstructionLogListParams{
		Page:     1,
		PageSize: 20,
	})
	require.NoError(t, err)
	assert.Zero(t, total)
	assert.Empty(t, logs)
	assert.NoError(t, mock.ExpectationsWereMet())
}
