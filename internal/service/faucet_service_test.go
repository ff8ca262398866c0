package service

import (
	"context"
	"errors"
	"math"
	"testing"

	"donation-ledger/config"
	"donation-ledger/internal/core/ports"
	"donation-ledger/internal/core/ports/mocks"
	"donation-ledger/pkg/apperror"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

var openFaucet = config.FaucetConfig{Enabled: true, MaxAmount: 5_000_000_000}

func TestFaucetService_Airdrop(t *testing.T) {
	f := newProgramFixture(t)
	svc := NewFaucetService(f.accounts, openFaucet, newTestLogger())
	to := newKey(t)

	bal, err := svc.Airdrop(context.Background(), to, 1_000)
	require.NoError(t, err)
	assert.Equal(t, uint64(1_000), bal)

	bal, err = svc.Airdrop(context.Background(), to, 500)
	require.NoError(t, err)
	assert.Equal(t, uint64(1_500), bal)
	assert.Equal(t, uint64(1_500), f.balance(t, to))
}

func TestFaucetService_Rejections(t *testing.T) {
	f := newProgramFixture(t)
	to := newKey(t)

	tests := []struct {
		name     string
		cfg      config.FaucetConfig
		amount   uint64
		wantCode string
	}{
		{"disabled", config.FaucetConfig{Enabled: false, MaxAmount: 10}, 1, "AUTH_005"},
		{"zero amount", openFaucet, 0, "LED_008"},
		{"above maximum", openFaucet, openFaucet.MaxAmount + 1, "VAL_001"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewFaucetService(f.accounts, tt.cfg, newTestLogger())
			_, err := svc.Airdrop(context.Background(), to, tt.amount)
			require.Error(t, err)
			assert.Equal(t, tt.wantCode, apperror.Code(err))
		})
	}
	assert.Zero(t, f.balance(t, to))
}

func TestFaucetService_NoMaximum(t *testing.T) {
	f := newProgramFixture(t)
	svc := NewFaucetService(f.accounts, config.FaucetConfig{Enabled: true}, newTestLogger())
	to := newKey(t)

	_, err := svc.Airdrop(context.Background(), to, math.MaxUint64)
	require.NoError(t, err)

	_, err = svc.Airdrop(context.Background(), to, 1)
	require.Error(t, err)
	assert.Equal(t, "VAL_001", apperror.Code(err))
	assert.Equal(t, uint64(math.MaxUint64), f.balance(t, to))
}

func TestFaucetService_CommitFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockAccounts := mocks.NewMockAccountStore(ctrl)
	mockTx := mocks.NewMockAccountTx(ctrl)
	svc := NewFaucetService(mockAccounts, openFaucet, newTestLogger())

	mockAccounts.EXPECT().Begin(gomock.Any()).Return(mockTx, nil)
	mockTx.EXPECT().Credit(gomock.Any(), gomock.Any(), uint64(10)).Return(uint64(10), nil)
	mockTx.EXPECT().Commit(gomock.Any()).Return(errors.New("connection lost"))
	mockTx.EXPECT().Rollback(gomock.Any()).Return(nil)

	_, err := svc.Airdrop(context.Background(), newKey(t), 10)
	require.Error(t, err)
	assert.Equal(t, "SYS_001", apperror.Code(err))
}

var _ ports.FaucetService = (*FaucetServiceImpl)(nil)
