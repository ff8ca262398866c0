package handler

import (
	"fmt"
	"math"
	"strconv"
	"time"

	"donation-ledger/internal/adapter/http/dto"
	"donation-ledger/internal/core/domain"
	"donation-ledger/internal/core/pda"
	"donation-ledger/internal/core/ports"
	"donation-ledger/pkg/apperror"
	"donation-ledger/pkg/response"

	"github.com/gin-gonic/gin"
)

// QueryHandler serves read-only views of ledger state.
type QueryHandler struct {
	reportingSvc ports.ReportingService
	deriver      *pda.Deriver
}

// NewQueryHandler creates a new QueryHandler.
func NewQueryHandler(reportingSvc ports.ReportingService, deriver *pda.Deriver) *QueryHandler {
	return &QueryHandler{reportingSvc: reportingSvc, deriver: deriver}
}

func pathPubkey(c *gin.Context, name string) (domain.Pubkey, bool) {
	p, err := domain.ParsePubkey(c.Param(name))
	if err != nil {
		response.Error(c, apperror.Validation(fmt.Sprintf("%s: %v", name, err)))
		return domain.Pubkey{}, false
	}
	return p, true
}

// GetStore handles GET /api/v1/stores/:address.
func (h *QueryHandler) GetStore(c *gin.Context) {
	addr, ok := pathPubkey(c, "address")
	if !ok {
		return
	}

	store, err := h.reportingSvc.GetStore(c.Request.Context(), addr)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, dto.ToStoreResponse(addr, store))
}

// ListDonors handles GET /api/v1/stores/:address/donors.
func (h *QueryHandler) ListDonors(c *gin.Context) {
	addr, ok := pathPubkey(c, "address")
	if !ok {
		return
	}

	donors, err := h.reportingSvc.ListDonors(c.Request.Context(), addr)
	if err != nil {
		response.Error(c, err)
		return
	}

	items := make([]dto.DonorResponse, 0, len(donors))
	for _, d := range donors {
		items = append(items, dto.DonorResponse{
			Donor:     d.Donor.String(),
			UserStore: d.Ledger.String(),
			Donations: d.Donations,
			Count:     len(d.Donations),
			Total:     d.Total,
		})
	}

	response.OK(c, dto.DonorListResponse{Store: addr.String(), Donors: items})
}

// GetUserLedger handles GET /api/v1/ledgers/:address.
func (h *QueryHandler) GetUserLedger(c *gin.Context) {
	addr, ok := pathPubkey(c, "address")
	if !ok {
		return
	}

	ledger, err := h.reportingSvc.GetUserLedger(c.Request.Context(), addr)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, dto.ToUserLedgerResponse(addr, ledger))
}

// GetBalance handles GET /api/v1/balances/:address.
func (h *QueryHandler) GetBalance(c *gin.Context) {
	addr, ok := pathPubkey(c, "address")
	if !ok {
		return
	}

	lamports, err := h.reportingSvc.GetBalance(c.Request.Context(), addr)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, dto.BalanceResponse{Address: addr.String(), Lamports: lamports})
}

// DeriveStore handles GET /api/v1/addresses/store/:owner.
func (h *QueryHandler) DeriveStore(c *gin.Context) {
	h.derive(c, domain.SeedStore, "owner")
}

// DeriveUserStore handles GET /api/v1/addresses/user-store/:user.
func (h *QueryHandler) DeriveUserStore(c *gin.Context) {
	h.derive(c, domain.SeedUserStore, "user")
}

func (h *QueryHandler) derive(c *gin.Context, tag, param string) {
	identity, ok := pathPubkey(c, param)
	if !ok {
		return
	}

	addr, bump, err := h.deriver.Find(tag, identity)
	if err != nil {
		response.Error(c, apperror.InternalError(err))
		return
	}

	response.OK(c, dto.AddressResponse{
		Tag:      tag,
		Identity: identity.String(),
		Address:  addr.String(),
		Bump:     bump,
	})
}

// ListInstructions handles GET /api/v1/instructions.
func (h *QueryHandler) ListInstructions(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}

	params := ports.InstructionLogListParams{
		Page:     page,
		PageSize: pageSize,
	}

	if s := c.Query("signer"); s != "" {
		signer, err := domain.ParsePubkey(s)
		if err != nil {
			response.Error(c, apperror.Validation(fmt.Sprintf("signer: %v", err)))
			return
		}
		params.Signer = &signer
	}
	if k := c.Query("kind"); k != "" {
		kind := domain.InstructionKind(k)
		params.Kind = &kind
	}
	if s := c.Query("status"); s != "" {
		status := domain.InstructionStatus(s)
		params.Status = &status
	}

	logs, total, err := h.reportingSvc.ListInstructions(c.Request.Context(), params)
	if err != nil {
		response.Error(c, err)
		return
	}

	items := make([]dto.InstructionLogResponse, 0, len(logs))
	for i := range logs {
		items = append(items, toInstructionLogResponse(&logs[i]))
	}

	totalPages := int(math.Ceil(float64(total) / float64(pageSize)))

	response.OK(c, dto.InstructionLogListResponse{
		Items:      items,
		Total:      total,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: totalPages,
	})
}

func toInstructionLogResponse(l *domain.InstructionLog) dto.InstructionLogResponse {
	resp := dto.InstructionLogResponse{
		ID:        l.ID.String(),
		Kind:      string(l.Kind),
		Target:    l.Target,
		Amount:    l.Amount,
		Status:    string(l.Status),
		ErrorCode: l.ErrorCode,
		RequestID: l.RequestID,
		IPAddress: l.IPAddress,
		CreatedAt: l.CreatedAt.UTC().Format(time.RFC3339),
	}
	if l.Signer != nil {
		s := l.Signer.String()
		resp.Signer = &s
	}
	return resp
}
