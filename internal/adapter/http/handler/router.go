package handler

import (
	"donation-ledger/config"
	"donation-ledger/internal/adapter/http/middleware"
	"donation-ledger/internal/core/pda"
	"donation-ledger/internal/core/ports"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// RouterDeps holds all dependencies needed to set up routes.
type RouterDeps struct {
	ProgramSvc     ports.ProgramService
	ReportingSvc   ports.ReportingService
	FaucetSvc      ports.FaucetService
	Deriver        *pda.Deriver
	SigSvc         ports.SignatureService
	NonceStore     ports.NonceStore
	TokenSvc       ports.TokenService        // nil = operator routes disabled
	RateLimitStore middleware.RateLimitStore // nil = rate limiting disabled
	AuditSvc       ports.AuditService        // nil = audit logging disabled
	HealthCheckers []ports.HealthChecker
	Auth           config.AuthConfig
	Logger         zerolog.Logger
}

// SetupRouter initialises the Gin engine with all routes and middleware.
func SetupRouter(deps RouterDeps) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()

	// Global middleware
	r.Use(middleware.Recovery(deps.Logger))
	r.Use(middleware.RequestID())
	r.Use(middleware.RequestLogger(deps.Logger))
	r.Use(middleware.MaxBodySize(1 << 20)) // 1 MB request body limit

	// Instruction outcomes (after response)
	if deps.AuditSvc != nil {
		r.Use(middleware.AuditLog(deps.AuditSvc))
	}

	r.GET("/health", HealthCheck(deps.HealthCheckers...))

	swagger := r.Group("/swagger")
	{
		swagger.GET("", SwaggerUI)
		swagger.GET("/spec", SwaggerSpec)
	}

	rules := middleware.DefaultRateLimitRules()

	// Helper: return rate limiter middleware if store is available, else noop.
	rl := func(group string) gin.HandlerFunc {
		if deps.RateLimitStore == nil {
			return func(c *gin.Context) { c.Next() }
		}
		rule, ok := rules[group]
		if !ok {
			return func(c *gin.Context) { c.Next() }
		}
		return middleware.RateLimiter(deps.RateLimitStore, group, rule, deps.Logger)
	}

	v1 := r.Group("/api/v1")

	// --- Signed instructions ---
	signerAuth := middleware.SignerAuth(deps.SigSvc, deps.NonceStore, deps.Auth, deps.Logger)
	instructionHandler := NewInstructionHandler(deps.ProgramSvc)
	instructions := v1.Group("/instructions", rl("instructions"), signerAuth)
	{
		instructions.POST("/initialize", instructionHandler.Initialize)
		instructions.POST("/initialize-user", instructionHandler.InitializeUser)
		instructions.POST("/make-donations", instructionHandler.MakeDonations)
		instructions.POST("/withdraw-donations", instructionHandler.WithdrawDonations)
	}

	// --- Public read-only queries ---
	queryHandler := NewQueryHandler(deps.ReportingSvc, deps.Deriver)
	queries := v1.Group("", rl("queries"))
	{
		queries.GET("/stores/:address", queryHandler.GetStore)
		queries.GET("/stores/:address/donors", queryHandler.ListDonors)
		queries.GET("/ledgers/:address", queryHandler.GetUserLedger)
		queries.GET("/balances/:address", queryHandler.GetBalance)
		queries.GET("/addresses/store/:owner", queryHandler.DeriveStore)
		queries.GET("/addresses/user-store/:user", queryHandler.DeriveUserStore)
	}

	// --- Operator routes (JWT-authenticated) ---
	if deps.TokenSvc != nil {
		operatorAuth := middleware.OperatorAuth(deps.TokenSvc, deps.Logger)
		v1.GET("/instructions", operatorAuth, rl("operator"), queryHandler.ListInstructions)
		if deps.FaucetSvc != nil {
			faucetHandler := NewFaucetHandler(deps.FaucetSvc)
			v1.POST("/faucet", operatorAuth, rl("faucet"), faucetHandler.Airdrop)
		}
	}

	return r
}
