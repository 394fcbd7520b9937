package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"strategy-vault/config"
	httpHandler "strategy-vault/internal/adapter/http/handler"
	"strategy-vault/internal/adapter/http/middleware"
	memStorage "strategy-vault/internal/adapter/storage/memory"
	pgStorage "strategy-vault/internal/adapter/storage/postgres"
	redisStorage "strategy-vault/internal/adapter/storage/redis"
	"strategy-vault/internal/core/ports"
	"strategy-vault/internal/service"
	"strategy-vault/pkg/logger"
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
		Str("network", cfg.Payment.Network).
		Msg("Starting Strategy Vault")

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

	// Initialize storage adapters
	catalog := memStorage.NewDefaultCatalog()
	purchaseRepo := pgStorage.NewPurchaseRepo(pool)
	walletRepo := memStorage.NewWalletRepo()
	replayLedger := redisStorage.NewReplayLedger(rdb)

	// Initialize core services
	hashSvc := service.NewArgon2HashService()
	tokenSvc := service.NewJWTTokenService(cfg.Auth.JWTSecret, cfg.Auth.JWTExpiry, cfg.Auth.JWTIssuer)

	// Initialize business services
	reqBuilder := service.NewRequirementBuilder(cfg.Payment)
	settlement := service.NewStructuralSettlement(log)
	verifier := service.NewX402Verifier(cfg.Payment, replayLedger, settlement, log)
	walletSvc := service.NewWalletService(walletRepo, cfg.Wallet.Network, log)
	authSvc := service.NewAuthService(cfg.Auth, hashSvc, tokenSvc)
	reportingSvc := service.NewReportingService(purchaseRepo)

	// Initialize rate limit store
	rateLimitStore := redisStorage.NewRateLimitStore(rdb)

	// Initialize health checkers
	pgHealth := pgStorage.NewHealthCheck(pool)
	redisHealth := redisStorage.NewHealthCheck(rdb)

	// Load OpenAPI spec for Swagger UI
	if specBytes, err := os.ReadFile("docs/api/openapi.yaml"); err == nil {
		httpHandler.SetSwaggerSpec(specBytes)
		log.Info().Msg("OpenAPI spec loaded for Swagger UI at /swagger")
	} else {
		log.Warn().Err(err).Msg("OpenAPI spec not found, Swagger UI will be unavailable")
	}

	// Setup Gin router with all routes
	router := httpHandler.SetupRouter(httpHandler.RouterDeps{
		Catalog:    catalog,
		Verifier:   verifier,
		ReqBuilder: reqBuilder,
		PaywallCfg: middleware.PaywallConfig{
			Prices:          cfg.Payment.Prices,
			ProtectedPrefix: cfg.Payment.ProtectedPrefix,
		},
		PurchaseRepo:   purchaseRepo,
		WalletSvc:      walletSvc,
		AuthSvc:        authSvc,
		TokenSvc:       tokenSvc,
		ReportingSvc:   reportingSvc,
		RateLimitStore: rateLimitStore,
		HealthCheckers: []ports.HealthChecker{pgHealth, redisHealth},
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
