package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"donation-ledger/config"
	httpHandler "donation-ledger/internal/adapter/http/handler"
	leveldbStorage "donation-ledger/internal/adapter/storage/leveldb"
	pgStorage "donation-ledger/internal/adapter/storage/postgres"
	redisStorage "donation-ledger/internal/adapter/storage/redis"
	"donation-ledger/internal/core/domain"
	"donation-ledger/internal/core/pda"
	"donation-ledger/internal/core/ports"
	"donation-ledger/internal/service"
	"donation-ledger/pkg/logger"

	"github.com/rs/zerolog"
)

// backend is the execution substrate selected by storage.backend.
type backend struct {
	accounts ports.AccountStore
	logRepo  ports.InstructionLogRepository // nil on leveldb
	health   ports.HealthChecker
	close    func()
}

func openBackend(ctx context.Context, cfg *config.Config, log zerolog.Logger) (*backend, error) {
	switch cfg.Storage.Backend {
	case config.BackendPostgres:
		pool, err := pgStorage.NewPool(ctx, cfg.Database, log)
		if err != nil {
			return nil, fmt.Errorf("connect postgres: %w", err)
		}
		if cfg.Database.Migrate {
			if err := pgStorage.Migrate(ctx, pool, log); err != nil {
				pool.Close()
				return nil, fmt.Errorf("migrate postgres: %w", err)
			}
		}
		return &backend{
			accounts: pgStorage.NewAccountStore(pool),
			logRepo:  pgStorage.NewInstructionLogRepo(pool),
			health:   pgStorage.NewHealthCheck(pool),
			close:    pool.Close,
		}, nil
	case config.BackendLevelDB:
		db, err := leveldbStorage.Open(cfg.LevelDB, log)
		if err != nil {
			return nil, err
		}
		return &backend{
			accounts: leveldbStorage.NewAccountStore(db),
			health:   leveldbStorage.NewHealthCheck(db),
			close: func() {
				if err := db.Close(); err != nil {
					log.Error().Err(err).Msg("Failed to close LevelDB")
				}
			},
		}, nil
	default:
		return nil, fmt.Errorf("unsupported storage backend %q", cfg.Storage.Backend)
	}
}

func main() {
	// Load configuration
	cfg, err := config.Load("")
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	log := logger.New(cfg.Log.Level, cfg.Log.Pretty)

	log.Info().
		Str("mode", cfg.Server.Mode).
		Str("backend", cfg.Storage.Backend).
		Int("port", cfg.Server.Port).
		Msg("Starting Donation Ledger")

	ctx := context.Background()

	programID, err := domain.ParsePubkey(cfg.Program.ID)
	if err != nil {
		log.Fatal().Err(err).Msg("Invalid program id")
	}
	deriver := pda.NewDeriver(programID)

	// Execution substrate
	store, err := openBackend(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to open storage backend")
	}
	defer store.close()

	// Redis backs replay protection and rate limiting
	rdb, err := redisStorage.NewClient(ctx, cfg.Redis, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to Redis")
	}
	defer rdb.Close()

	nonceStore := redisStorage.NewNonceStore(rdb)
	rateLimitStore := redisStorage.NewRateLimitStore(rdb)

	// Core services
	sigSvc := service.NewEd25519SignatureService()
	var tokenSvc ports.TokenService
	if cfg.Operator.JWTSecret != "" {
		tokenSvc = service.NewJWTTokenService(cfg.Operator.JWTSecret, cfg.Operator.JWTExpiry, cfg.Operator.JWTIssuer)
	} else {
		log.Warn().Msg("operator.jwt_secret not set, operator routes disabled")
	}

	// Business services
	programSvc := service.NewProgramService(store.accounts, deriver, service.ProgramSettings{
		Rent: domain.RentSchedule{
			LamportsPerByteYear: cfg.Program.LamportsPerByteYear,
			ExemptionThreshold:  cfg.Program.ExemptionThreshold,
		},
		StoreSpace:     cfg.Program.StoreSpace,
		UserStoreSpace: cfg.Program.UserStoreSpace,
	}, logger.Component(log, "program"))
	reportingSvc := service.NewReportingService(store.accounts, store.logRepo, deriver)
	faucetSvc := service.NewFaucetService(store.accounts, cfg.Faucet, logger.Component(log, "faucet"))
	auditSvc := service.NewAuditService(store.logRepo, logger.Component(log, "audit"))

	router := httpHandler.SetupRouter(httpHandler.RouterDeps{
		ProgramSvc:     programSvc,
		ReportingSvc:   reportingSvc,
		FaucetSvc:      faucetSvc,
		Deriver:        deriver,
		SigSvc:         sigSvc,
		NonceStore:     nonceStore,
		TokenSvc:       tokenSvc,
		RateLimitStore: rateLimitStore,
		AuditSvc:       auditSvc,
		HealthCheckers: []ports.HealthChecker{store.health, redisStorage.NewHealthCheck(rdb)},
		Auth:           cfg.Auth,
		Logger:         log,
	})

	// HTTP Server with graceful shutdown
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info().Str("addr", addr).Msg("HTTP server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("HTTP server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}
	// Pending instruction log inserts need the pool closed by store.close.
	if err := auditSvc.Drain(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Instruction log writes abandoned")
	}

	log.Info().Msg("Server exited")
}
