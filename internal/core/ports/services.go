package ports

import (
	"context"
	"time"

	"donation-ledger/internal/core/domain"
)

// SignatureService verifies ed25519 request signatures.
type SignatureService interface {
	Verify(signer domain.Pubkey, message []byte, signature []byte) bool
	BuildCanonicalString(method, path string, timestamp int64, nonce string, body string) string
}

// TokenService issues and validates operator JWTs.
type TokenService interface {
	Generate(subject string) (string, time.Time, error)
	Validate(tokenString string) (*TokenClaims, error)
}

// TokenClaims holds the parsed JWT claims.
type TokenClaims struct {
	Subject string
	Role    string
}

// NonceStore manages nonce uniqueness for replay attack prevention.
type NonceStore interface {
	// CheckAndSet atomically checks if nonce exists, sets it if not.
	// Returns true if nonce is new (valid), false if already used.
	CheckAndSet(ctx context.Context, signer string, nonce string, ttl time.Duration) (bool, error)
}

// --- Service Ports (Business Logic) ---

// ProgramService is the instruction surface of the donation program. Every
// call is one atomic instruction: it either applies in full or returns a
// typed failure and leaves no state behind.
type ProgramService interface {
	Initialize(ctx context.Context, req InitializeRequest) (*domain.Store, error)
	InitializeUser(ctx context.Context, req InitializeUserRequest) (*domain.UserLedger, error)
	MakeDonations(ctx context.Context, req MakeDonationsRequest) (*DonationReceipt, error)
	WithdrawDonations(ctx context.Context, req WithdrawDonationsRequest) (*WithdrawalReceipt, error)
}

// InitializeRequest creates the caller's Store. Owner is the authenticated
// signer and pays the creation deposit.
type InitializeRequest struct {
	Owner domain.Pubkey
	Bank  domain.Pubkey
	Store domain.Pubkey
}

// InitializeUserRequest registers the caller's UserLedger against a Store.
type InitializeUserRequest struct {
	User   domain.Pubkey
	Ledger domain.Pubkey
	Bank   domain.Pubkey
	Store  domain.Pubkey
}

// MakeDonationsRequest moves Amount from the signing donor to the bank.
type MakeDonationsRequest struct {
	Donor  domain.Pubkey
	Bank   domain.Pubkey
	Store  domain.Pubkey
	Ledger domain.Pubkey
	Amount uint64
}

// WithdrawDonationsRequest moves Amount from the signing bank to Destination.
type WithdrawDonationsRequest struct {
	Bank        domain.Pubkey
	Destination domain.Pubkey
	Store       domain.Pubkey
	Amount      uint64
}

// DonationReceipt is the post-state of an accepted donation.
type DonationReceipt struct {
	Store  *domain.Store
	Ledger *domain.UserLedger
}

// WithdrawalReceipt describes an accepted withdrawal.
type WithdrawalReceipt struct {
	Store       domain.Pubkey
	Bank        domain.Pubkey
	Destination domain.Pubkey
	Amount      uint64
}

// ReportingService serves read-only views for the driver.
type ReportingService interface {
	GetStore(ctx context.Context, addr domain.Pubkey) (*domain.Store, error)
	GetUserLedger(ctx context.Context, addr domain.Pubkey) (*domain.UserLedger, error)
	GetBalance(ctx context.Context, addr domain.Pubkey) (uint64, error)
	ListDonors(ctx context.Context, storeAddr domain.Pubkey) ([]DonorSummary, error)
	ListInstructions(ctx context.Context, params InstructionLogListParams) ([]domain.InstructionLog, int64, error)
}

// DonorSummary groups one donor's history under a Store.
type DonorSummary struct {
	Donor     domain.Pubkey
	Ledger    domain.Pubkey
	Donations []uint64
	Total     uint64
}

// FaucetService credits development balances.
type FaucetService interface {
	Airdrop(ctx context.Context, to domain.Pubkey, lamports uint64) (uint64, error)
}

// AuditService records instruction outcomes.
type AuditService interface {
	Log(ctx context.Context, entry *domain.InstructionLog)
	// Drain blocks until pending writes land or ctx expires. Entries logged
	// after Drain starts are not persisted.
	Drain(ctx context.Context) error
}
