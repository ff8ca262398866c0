package handler

import (
	"donation-ledger/internal/adapter/http/dto"
	"donation-ledger/internal/adapter/http/middleware"
	"donation-ledger/internal/core/ports"
	"donation-ledger/pkg/apperror"
	"donation-ledger/pkg/response"

	"github.com/gin-gonic/gin"
)

// FaucetHandler credits development balances for operators.
type FaucetHandler struct {
	faucetSvc ports.FaucetService
}

// NewFaucetHandler creates a new FaucetHandler.
func NewFaucetHandler(faucetSvc ports.FaucetService) *FaucetHandler {
	return &FaucetHandler{faucetSvc: faucetSvc}
}

// Airdrop handles POST /api/v1/faucet.
func (h *FaucetHandler) Airdrop(c *gin.Context) {
	var req dto.AirdropRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}
	c.Set(middleware.CtxTarget, req.Address)
	c.Set(middleware.CtxAmount, req.Amount)

	keys, err := dto.ParsePubkeys(req.Address)
	if err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}

	balance, err := h.faucetSvc.Airdrop(c.Request.Context(), keys[0], req.Amount)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, dto.AirdropResponse{
		Address: keys[0].String(),
		Amount:  req.Amount,
		Balance: balance,
	})
}
