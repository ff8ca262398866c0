package handler

import (
	"donation-ledger/internal/adapter/http/dto"
	"donation-ledger/internal/adapter/http/middleware"
	"donation-ledger/internal/core/ports"
	"donation-ledger/pkg/apperror"
	"donation-ledger/pkg/response"

	"github.com/gin-gonic/gin"
)

// InstructionHandler handles the signed program instructions. The verified
// signer set by SignerAuth is the only identity an instruction acts for.
type InstructionHandler struct {
	programSvc ports.ProgramService
}

// NewInstructionHandler creates a new InstructionHandler.
func NewInstructionHandler(programSvc ports.ProgramService) *InstructionHandler {
	return &InstructionHandler{programSvc: programSvc}
}

// Initialize handles POST /api/v1/instructions/initialize.
func (h *InstructionHandler) Initialize(c *gin.Context) {
	owner, ok := middleware.Signer(c)
	if !ok {
		response.Error(c, apperror.ErrMissingSigner())
		return
	}

	var req dto.InitializeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}
	c.Set(middleware.CtxTarget, req.Store)

	keys, err := dto.ParsePubkeys(req.Store, req.Bank)
	if err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}

	store, err := h.programSvc.Initialize(c.Request.Context(), ports.InitializeRequest{
		Owner: owner,
		Store: keys[0],
		Bank:  keys[1],
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, dto.ToStoreResponse(keys[0], store))
}

// InitializeUser handles POST /api/v1/instructions/initialize-user.
func (h *InstructionHandler) InitializeUser(c *gin.Context) {
	user, ok := middleware.Signer(c)
	if !ok {
		response.Error(c, apperror.ErrMissingSigner())
		return
	}

	var req dto.InitializeUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}
	c.Set(middleware.CtxTarget, req.UserStore)

	keys, err := dto.ParsePubkeys(req.Store, req.Bank, req.UserStore)
	if err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}

	ledger, err := h.programSvc.InitializeUser(c.Request.Context(), ports.InitializeUserRequest{
		User:   user,
		Store:  keys[0],
		Bank:   keys[1],
		Ledger: keys[2],
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, dto.ToUserLedgerResponse(keys[2], ledger))
}

// MakeDonations handles POST /api/v1/instructions/make-donations.
func (h *InstructionHandler) MakeDonations(c *gin.Context) {
	donor, ok := middleware.Signer(c)
	if !ok {
		response.Error(c, apperror.ErrMissingSigner())
		return
	}

	var req dto.MakeDonationsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}
	c.Set(middleware.CtxTarget, req.Store)
	c.Set(middleware.CtxAmount, req.Amount)

	keys, err := dto.ParsePubkeys(req.Store, req.Bank, req.UserStore)
	if err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}

	receipt, err := h.programSvc.MakeDonations(c.Request.Context(), ports.MakeDonationsRequest{
		Donor:  donor,
		Store:  keys[0],
		Bank:   keys[1],
		Ledger: keys[2],
		Amount: req.Amount,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, dto.DonationResponse{
		Store:  dto.ToStoreResponse(keys[0], receipt.Store),
		Ledger: dto.ToUserLedgerResponse(keys[2], receipt.Ledger),
	})
}

// WithdrawDonations handles POST /api/v1/instructions/withdraw-donations.
// The signer must be the Store's bank.
func (h *InstructionHandler) WithdrawDonations(c *gin.Context) {
	bank, ok := middleware.Signer(c)
	if !ok {
		response.Error(c, apperror.ErrMissingSigner())
		return
	}

	var req dto.WithdrawDonationsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}
	c.Set(middleware.CtxTarget, req.Store)
	c.Set(middleware.CtxAmount, req.Amount)

	keys, err := dto.ParsePubkeys(req.Store, req.Destination)
	if err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}

	receipt, err := h.programSvc.WithdrawDonations(c.Request.Context(), ports.WithdrawDonationsRequest{
		Bank:        bank,
		Store:       keys[0],
		Destination: keys[1],
		Amount:      req.Amount,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, dto.WithdrawalResponse{
		Store:       receipt.Store.String(),
		Bank:        receipt.Bank.String(),
		Destination: receipt.Destination.String(),
		Amount:      receipt.Amount,
	})
}
