package middleware

import (
	"net/http"
	"time"

	"donation-ledger/internal/core/domain"
	"donation-ledger/internal/core/ports"
	"donation-ledger/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// Context keys handlers set so the audit entry names what was touched.
const (
	CtxTarget = "instruction_target"
	CtxAmount = "instruction_amount"
)

// AuditLog creates an audit middleware that records the outcome of every
// instruction request, applied or rejected.
func AuditLog(auditSvc ports.AuditService) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if c.Request.Method != http.MethodPost {
			return
		}
		kind := mapPathToKind(c.FullPath())
		if kind == "" {
			return
		}

		entry := &domain.InstructionLog{
			ID:        uuid.New(),
			Kind:      kind,
			Target:    c.GetString(CtxTarget),
			Status:    domain.InstructionStatusApplied,
			RequestID: c.GetString(response.RequestIDKey),
			IPAddress: c.ClientIP(),
			CreatedAt: time.Now().UTC(),
		}
		if signer, ok := Signer(c); ok {
			entry.Signer = &signer
		}
		if v, ok := c.Get(CtxAmount); ok {
			if amount, ok := v.(uint64); ok {
				entry.Amount = &amount
			}
		}
		if status := c.Writer.Status(); status < 200 || status >= 300 {
			entry.Status = domain.InstructionStatusRejected
			entry.ErrorCode = c.GetString(response.ErrorCodeKey)
		}

		auditSvc.Log(c.Request.Context(), entry)
	}
}

func mapPathToKind(route string) domain.InstructionKind {
	switch route {
	case "/api/v1/instructions/initialize":
		return domain.InstructionInitialize
	case "/api/v1/instructions/initialize-user":
		return domain.InstructionInitializeUser
	case "/api/v1/instructions/make-donations":
		return domain.InstructionMakeDonations
	case "/api/v1/instructions/withdraw-donations":
		return domain.InstructionWithdrawDonations
	case "/api/v1/faucet":
		return domain.InstructionAirdrop
	}
	return ""
}
