package dto

import (
	"testing"

	"donation-ledger/internal/core/domain"

	"github.com/gin-gonic/gin/binding"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const validKey = "11111111111111111111111111111111"

func TestPubkeyValidator(t *testing.T) {
	tests := []struct {
		name    string
		req     InitializeRequest
		wantErr bool
	}{
		{"valid", InitializeRequest{Store: validKey, Bank: validKey}, false},
		{"missing bank", InitializeRequest{Store: validKey}, true},
		{"not base58", InitializeRequest{Store: validKey, Bank: "0OIl"}, true},
		{"wrong length", InitializeRequest{Store: validKey, Bank: "3yZe7d"}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := binding.Validator.ValidateStruct(&tt.req)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestMakeDonationsRequest_ZeroAmountPassesBinding(t *testing.T) {
	req := MakeDonationsRequest{Store: validKey, Bank: validKey, UserStore: validKey}
	assert.NoError(t, binding.Validator.ValidateStruct(&req))
}

func TestParsePubkeys(t *testing.T) {
	keys, err := ParsePubkeys(validKey, validKey)
	require.NoError(t, err)
	assert.Len(t, keys, 2)
	assert.True(t, keys[0].IsZero())

	_, err = ParsePubkeys(validKey, "bad!")
	assert.Error(t, err)
}

func TestToStoreResponse(t *testing.T) {
	var owner, bank, user domain.Pubkey
	owner[0], bank[0], user[0] = 1, 2, 3
	addr := domain.Pubkey{9}

	resp := ToStoreResponse(addr, &domain.Store{Owner: owner, Bank: bank, Users: []domain.Pubkey{user}, Bump: 254})
	assert.Equal(t, addr.String(), resp.Address)
	assert.Equal(t, []string{user.String()}, resp.Users)
	assert.Equal(t, uint8(254), resp.Bump)

	empty := ToStoreResponse(addr, &domain.Store{})
	assert.NotNil(t, empty.Users)
}

func TestToUserLedgerResponse(t *testing.T) {
	resp := ToUserLedgerResponse(domain.Pubkey{1}, &domain.UserLedger{Donations: []uint64{1_000_000, 5_000}})
	assert.Equal(t, uint64(1_005_000), resp.Total)

	empty := ToUserLedgerResponse(domain.Pubkey{1}, &domain.UserLedger{})
	assert.Equal(t, []uint64{}, empty.Donations)
	assert.Zero(t, empty.Total)
}
