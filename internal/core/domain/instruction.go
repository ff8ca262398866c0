package domain

import (
	"time"

	"github.com/google/uuid"
)

// InstructionKind names a state-changing operation accepted by the ledger.
type InstructionKind string

const (
	InstructionInitialize        InstructionKind = "INITIALIZE"
	InstructionInitializeUser    InstructionKind = "INITIALIZE_USER"
	InstructionMakeDonations     InstructionKind = "MAKE_DONATIONS"
	InstructionWithdrawDonations InstructionKind = "WITHDRAW_DONATIONS"
	InstructionAirdrop           InstructionKind = "AIRDROP"
)

// InstructionStatus is the outcome of a submitted instruction.
type InstructionStatus string

const (
	InstructionStatusApplied  InstructionStatus = "APPLIED"
	InstructionStatusRejected InstructionStatus = "REJECTED"
)

// InstructionLog records one submitted instruction and its outcome.
// Rejected instructions leave no trace in ledger state, only here.
type InstructionLog struct {
	ID        uuid.UUID         `json:"id"`
	Kind      InstructionKind   `json:"kind"`
	Signer    *Pubkey           `json:"signer,omitempty"`
	Target    string            `json:"target,omitempty"`
	Amount    *uint64           `json:"amount,omitempty"`
	Status    InstructionStatus `json:"status"`
	ErrorCode string            `json:"error_code,omitempty"`
	RequestID string            `json:"request_id,omitempty"`
	IPAddress string            `json:"ip_address"`
	CreatedAt time.Time         `json:"created_at"`
}
