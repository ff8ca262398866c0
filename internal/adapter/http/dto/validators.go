package dto

import (
	"donation-ledger/internal/core/domain"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

func init() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = v.RegisterValidation("pubkey", validatePubkey)
	}
}

// validatePubkey accepts a base58 string decoding to exactly 32 bytes.
func validatePubkey(fl validator.FieldLevel) bool {
	raw := fl.Field().String()
	if raw == "" {
		return true // optional field; use "required" tag to enforce presence
	}
	_, err := domain.ParsePubkey(raw)
	return err == nil
}

// ParsePubkeys decodes already-validated base58 fields in order.
func ParsePubkeys(raw ...string) ([]domain.Pubkey, error) {
	out := make([]domain.Pubkey, len(raw))
	for i, s := range raw {
		p, err := domain.ParsePubkey(s)
		if err != nil {
			return nil, err
		}
		out[i] = p
	}
	return out, nil
}

// ToStoreResponse converts a Store record at addr to its JSON view.
func ToStoreResponse(addr domain.Pubkey, s *domain.Store) StoreResponse {
	users := make([]string, len(s.Users))
	for i, u := range s.Users {
		users[i] = u.String()
	}
	return StoreResponse{
		Address: addr.String(),
		Owner:   s.Owner.String(),
		Bank:    s.Bank.String(),
		Users:   users,
		Bump:    s.Bump,
	}
}

// ToUserLedgerResponse converts a UserLedger record at addr to its JSON view.
func ToUserLedgerResponse(addr domain.Pubkey, l *domain.UserLedger) UserLedgerResponse {
	donations := l.Donations
	if donations == nil {
		donations = []uint64{}
	}
	return UserLedgerResponse{
		Address:   addr.String(),
		User:      l.User.String(),
		Bank:      l.Bank.String(),
		Donations: donations,
		Total:     l.Total(),
		Bump:      l.Bump,
	}
}
