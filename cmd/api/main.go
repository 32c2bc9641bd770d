package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"recoverable-ledger/config"
	httpHandler "recoverable-ledger/internal/adapter/http/handler"
	pgStorage "recoverable-ledger/internal/adapter/storage/postgres"
	redisStorage "recoverable-ledger/internal/adapter/storage/redis"
	"recoverable-ledger/internal/core/ledger"
	"recoverable-ledger/internal/core/ports"
	"recoverable-ledger/internal/service"
	"recoverable-ledger/pkg/logger"
)

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
		Int("port", cfg.Server.Port).
		Dur("settlement_window", cfg.Ledger.SettlementWindow).
		Msg("Starting Recoverable Ledger")

	ctx := context.Background()

	// Initialize PostgreSQL pool
	pool, err := pgStorage.NewPool(ctx, cfg.Database, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to PostgreSQL")
	}
	defer pool.Close()
	log.Info().Msg("PostgreSQL connected")

	// Initialize Redis client
	rdb, err := redisStorage.NewClient(ctx, cfg.Redis, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to Redis")
	}
	defer rdb.Close()
	log.Info().Msg("Redis connected")

	// Initialize repositories
	operatorRepo := pgStorage.NewOperatorRepo(pool)
	eventRepo := pgStorage.NewEventRepo(pool)

	// Initialize Redis stores
	idempotencyCache := redisStorage.NewIdempotencyCache(rdb)
	nonceStore := redisStorage.NewNonceStore(rdb)

	// Initialize core services
	encSvc, err := service.NewAESEncryptionService(cfg.AES.Key)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize encryption service")
	}
	sigSvc := service.NewHMACSignatureService()
	hashSvc := service.NewArgon2HashService()
	tokenSvc := service.NewJWTTokenService(cfg.JWT.Secret, cfg.JWT.Expiry, cfg.JWT.Issuer)

	// Event sink: journal everything, notify the monitor on custody events.
	var notifier ports.CaseNotifier
	if cfg.Ledger.MonitorURL != "" {
		notifier = service.NewWebhookNotifier(
			cfg.Ledger.MonitorURL,
			cfg.Ledger.AuthoritySecretKey,
			sigSvc,
			&http.Client{Timeout: 10 * time.Second},
			log,
		)
	}
	sink := service.NewEventFanout(eventRepo, notifier, log)

	// The ledger core holds all balances in memory; the settlement window
	// and cleanup bound come from config.
	core := ledger.New(ledger.Config{
		SettlementWindow: cfg.Ledger.SettlementWindow,
		CleanupMaxSteps:  cfg.Ledger.CleanupMaxSteps,
	}, ledger.SystemClock(), sink)

	// Initialize business services
	authSvc := service.NewAuthService(operatorRepo, hashSvc, encSvc, tokenSvc)
	ledgerSvc := service.NewLedgerService(core, eventRepo, idempotencyCache, log)
	assetSvc := service.NewAssetService(core, log)

	// Initialize rate limit store
	rateLimitStore := redisStorage.NewRateLimitStore(rdb)

	// Initialize health checkers
	pgHealth := pgStorage.NewHealthCheck(pool)
	redisHealth := redisStorage.NewHealthCheck(rdb)

	// Setup Gin router with all routes
	router := httpHandler.SetupRouter(httpHandler.RouterDeps{
		AuthSvc:        authSvc,
		LedgerSvc:      ledgerSvc,
		AssetSvc:       assetSvc,
		SigSvc:         sigSvc,
		NonceStore:     nonceStore,
		TokenSvc:       tokenSvc,
		RateLimitStore: rateLimitStore,
		HealthCheckers: []ports.HealthChecker{pgHealth, redisHealth},
		Authority:      cfg.Ledger,
		Logger:         log,
	})

	// HTTP Server with graceful shutdown
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:    addr,
		Handler: router,
	}

	// Start server in goroutine
	go func() {
		log.Info().Str("addr", addr).Msg("HTTP server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("HTTP server failed")
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server exited")
}
