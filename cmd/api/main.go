package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"wallet-checkout/config"
	"wallet-checkout/internal/adapter/gateway"
	httpHandler "wallet-checkout/internal/adapter/http/handler"
	pgStorage "wallet-checkout/internal/adapter/storage/postgres"
	redisStorage "wallet-checkout/internal/adapter/storage/redis"
	"wallet-checkout/internal/core/ports"
	"wallet-checkout/internal/service"
	"wallet-checkout/pkg/logger"
)

func main() {
	configPath := flag.String("config", "", "path to config file (default ./config.yaml or ./config/config.yaml)")
	flag.Parse()

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}
	if err := cfg.ValidateServer(); err != nil {
		fmt.Fprintf(os.Stderr, "invalid config: %v\n", err)
		os.Exit(1)
	}

	log := logger.New("wallet-checkout-api", cfg.Log.Level, cfg.Log.Pretty)

	log.Info().
		Str("mode", cfg.Server.Mode).
		Int("port", cfg.Server.Port).
		Str("merchant_identifier", cfg.Wallet.MerchantIdentifier).
		Msg("starting wallet checkout backend")

	ctx := context.Background()

	keys, err := service.DeriveKeys(cfg.Security.MasterKey)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to derive keys")
	}

	// Initialize PostgreSQL pool
	pool, err := pgStorage.NewPool(ctx, cfg.Database, log)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to PostgreSQL")
	}
	defer pool.Close()
	if err := pgStorage.EnsureSchema(ctx, pool); err != nil {
		log.Fatal().Err(err).Msg("failed to apply schema")
	}
	log.Info().Msg("PostgreSQL connected")

	// Initialize Redis client
	rdb, err := redisStorage.NewClient(ctx, cfg.Redis, log)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to Redis")
	}
	defer rdb.Close()
	log.Info().Msg("Redis connected")

	// Stores
	auditRepo := pgStorage.NewAuditRepository(pool)
	authCache := redisStorage.NewAuthorizationCache(rdb)
	claimStore := redisStorage.NewTokenClaimStore(rdb)
	rateLimitStore := redisStorage.NewRateLimitStore(rdb)

	// Core services
	encSvc, err := service.NewAESEncryptionService(keys.Encryption)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize encryption service")
	}
	sigSvc := service.NewHMACSignatureService(keys.Signing)
	tokenSvc := service.NewJWTTokenService(keys.Session, cfg.Security.TokenExpiry, cfg.Security.TokenIssuer)
	auditSvc := service.NewAuditService(auditRepo, logger.Component(log, "audit"))

	// Outbound adapters
	merchantCert, err := gateway.LoadMerchantCertificate(cfg.Wallet.CertFile, cfg.Wallet.KeyFile)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load merchant identity certificate")
	}
	sessionGateway := gateway.NewMerchantSessionGateway(merchantCert, nil, cfg.Wallet.ValidationTimeout, log)
	processor := gateway.NewProcessorClient(cfg.Processor.BaseURL, cfg.Processor.SecretKey, cfg.Processor.Timeout, log)

	notifier := service.NewNotificationService(
		cfg.Notify.URL,
		sigSvc,
		&http.Client{Timeout: cfg.Notify.Timeout},
		cfg.Notify.RetryIntervals,
		logger.Component(log, "notifier"),
	)

	// Business services
	validationSvc := service.NewMerchantValidationService(sessionGateway, tokenSvc, service.MerchantValidationConfig{
		MerchantIdentifier: cfg.Wallet.MerchantIdentifier,
		DisplayName:        cfg.Wallet.DisplayName,
		InitiativeContext:  cfg.Wallet.InitiativeContext,
		AllowedHosts:       cfg.Wallet.AllowedValidationHosts,
	}, logger.Component(log, "merchant_validation"))

	authorizationSvc := service.NewAuthorizationService(
		processor,
		authCache,
		claimStore,
		encSvc,
		notifier,
		service.AuthorizationConfig{
			ProcessingChannelID: cfg.Processor.ProcessingChannelID,
			ResultTTL:           cfg.Processor.ResultTTL,
			ClaimTTL:            cfg.Processor.ClaimTTL,
		},
		logger.Component(log, "authorization"),
	)

	// Load OpenAPI spec for Swagger UI
	if specBytes, err := os.ReadFile("docs/api/openapi.yaml"); err == nil {
		httpHandler.SetSwaggerSpec(specBytes)
		log.Info().Msg("OpenAPI spec loaded for Swagger UI at /swagger")
	} else {
		log.Warn().Err(err).Msg("OpenAPI spec not found, Swagger UI will be unavailable")
	}

	router := httpHandler.SetupRouter(httpHandler.RouterDeps{
		ValidationSvc:         validationSvc,
		AuthorizationSvc:      authorizationSvc,
		TokenSvc:              tokenSvc,
		AuditRepo:             auditRepo,
		AuditSvc:              auditSvc,
		RateLimitStore:        rateLimitStore,
		HealthCheckers:        []ports.HealthChecker{pgStorage.NewHealthCheck(pool), redisStorage.NewHealthCheck(rdb)},
		AllowedOrigins:        cfg.Wallet.AllowedOrigins,
		DomainAssociationFile: cfg.Wallet.DomainAssociationFile,
		Mode:                  cfg.Server.Mode,
		Logger:                log,
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
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("HTTP server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server forced to shutdown")
	}

	log.Info().Msg("server exited")
}
