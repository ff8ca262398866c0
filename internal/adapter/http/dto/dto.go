package dto

// InitializeRequest is the request body for creating the signer's Store.
type InitializeRequest struct {
	Store string `json:"store" binding:"required,pubkey"`
	Bank  string `json:"bank" binding:"required,pubkey"`
}

// InitializeUserRequest is the request body for registering the signer's ledger.
type InitializeUserRequest struct {
	Store     string `json:"store" binding:"required,pubkey"`
	Bank      string `json:"bank" binding:"required,pubkey"`
	UserStore string `json:"user_store" binding:"required,pubkey"`
}

// MakeDonationsRequest is the request body for a donation. A zero amount is
// rejected by the program, not by binding.
type MakeDonationsRequest struct {
	Store     string `json:"store" binding:"required,pubkey"`
	Bank      string `json:"bank" binding:"required,pubkey"`
	UserStore string `json:"user_store" binding:"required,pubkey"`
	Amount    uint64 `json:"amount"`
}

// WithdrawDonationsRequest is the request body for a withdrawal signed by the bank.
type WithdrawDonationsRequest struct {
	Store       string `json:"store" binding:"required,pubkey"`
	Destination string `json:"destination" binding:"required,pubkey"`
	Amount      uint64 `json:"amount"`
}

// AirdropRequest is the request body for the operator faucet.
type AirdropRequest struct {
	Address string `json:"address" binding:"required,pubkey"`
	Amount  uint64 `json:"amount"`
}

// StoreResponse is the JSON view of a Store record.
type StoreResponse struct {
	Address string   `json:"address"`
	Owner   string   `json:"owner"`
	Bank    string   `json:"bank"`
	Users   []string `json:"users"`
	Bump    uint8    `json:"bump"`
}

// UserLedgerResponse is the JSON view of a UserLedger record.
type UserLedgerResponse struct {
	Address   string   `json:"address"`
	User      string   `json:"user"`
	Bank      string   `json:"bank"`
	Donations []uint64 `json:"donations"`
	Total     uint64   `json:"total"`
	Bump      uint8    `json:"bump"`
}

// DonationResponse is the post-state returned by makeDonations.
type DonationResponse struct {
	Store  StoreResponse      `json:"store"`
	Ledger UserLedgerResponse `json:"ledger"`
}

// WithdrawalResponse is returned by withdrawDonations.
type WithdrawalResponse struct {
	Store       string `json:"store"`
	Bank        string `json:"bank"`
	Destination string `json:"destination"`
	Amount      uint64 `json:"amount"`
}

// BalanceResponse is the response for a balance query.
type BalanceResponse struct {
	Address  string `json:"address"`
	Lamports uint64 `json:"lamports"`
}

// DonorResponse aggregates one donor's history under a Store.
type DonorResponse struct {
	Donor     string   `json:"donor"`
	UserStore string   `json:"user_store"`
	Donations []uint64 `json:"donations"`
	Count     int      `json:"count"`
	Total     uint64   `json:"total"`
}

// DonorListResponse wraps the donors of a Store.
type DonorListResponse struct {
	Store  string          `json:"store"`
	Donors []DonorResponse `json:"donors"`
}

// AddressResponse is the result of a derivation.
type AddressResponse struct {
	Tag      string `json:"tag"`
	Identity string `json:"identity"`
	Address  string `json:"address"`
	Bump     uint8  `json:"bump"`
}

// AirdropResponse is the result of a faucet credit.
type AirdropResponse struct {
	Address string `json:"address"`
	Amount  uint64 `json:"amount"`
	Balance uint64 `json:"balance"`
}

// InstructionLogResponse is the JSON view of a recorded instruction.
type InstructionLogResponse struct {
	ID        string  `json:"id"`
	Kind      string  `json:"kind"`
	Signer    *string `json:"signer,omitempty"`
	Target    string  `json:"target,omitempty"`
	Amount    *uint64 `json:"amount,omitempty"`
	Status    string  `json:"status"`
	ErrorCode string  `json:"error_code,omitempty"`
	RequestID string  `json:"request_id,omitempty"`
	IPAddress string  `json:"ip_address"`
	CreatedAt string  `json:"created_at"`
}

// InstructionLogListResponse wraps a paginated instruction log.
type InstructionLogListResponse struct {
	Items      []InstructionLogResponse `json:"items"`
	Total      int64                    `json:"total"`
	Page       int                      `json:"page"`
	PageSize   int                      `json:"page_size"`
	TotalPages int                      `json:"total_pages"`
}
