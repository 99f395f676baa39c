package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"simple-gifting/internal/application"
	"simple-gifting/internal/application/webhook_handlers"
	"simple-gifting/internal/config"
	apiinfra "simple-gifting/internal/infrastructure/api"
	"simple-gifting/internal/infrastructure/cache"
	"simple-gifting/internal/infrastructure/metrics"
	"simple-gifting/internal/infrastructure/pubsub"
	"simple-gifting/internal/infrastructure/repository"
	shopifyinfra "simple-gifting/internal/infrastructure/shopify"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

func main() {
	// Initialize logger
	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()
	if err := godotenv.Load(); err != nil {
		logger.Warn().Msg("⚠️  Warning: .env file not found")
	}

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal().Err(err).Msg("Invalid configuration")
	}
	if level, err := zerolog.ParseLevel(cfg.LogLevel); err == nil && level != zerolog.NoLevel {
		logger = logger.Level(level)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Connect to MongoDB
	mongoClient, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoDB.URI))
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to connect to MongoDB")
	}
	defer mongoClient.Disconnect(context.Background())

	db := mongoClient.Database(cfg.MongoDB.Database)
	if err := repository.EnsureIndexes(ctx, db); err != nil {
		logger.Fatal().Err(err).Msg("Failed to create MongoDB indexes")
	}

	// Connect to Redis
	redisClient := cache.NewRedisClient(cfg.Redis.URL)
	defer redisClient.Close()

	// Initialize repositories
	repo := repository.NewMongoRepository(db)
	configRepo := repository.NewShopConfigurationRepository(db)
	operationRepo := repository.NewThemeOperationRepository(db)

	// Initialize infrastructure
	recorder := metrics.NewPrometheusRecorder()
	activity := pubsub.NewActivityPubSub(logger)
	tokens := shopifyinfra.NewTokenManager(repo, cfg.Shopify.AdminAccessToken, logger)
	shopifyClient := shopifyinfra.NewClient(shopifyinfra.Config{
		APIKey:     cfg.Shopify.APIKey,
		APISecret:  cfg.Shopify.APISecret,
		APIVersion: cfg.Shopify.APIVersion,
		MaxRetries: cfg.Shopify.MaxRetries,
		HTTPClient: &http.Client{Timeout: 30 * time.Second},
	}, tokens, logger)
	verifier := shopifyinfra.NewRequestVerifier(cfg.Shopify.APIKey, cfg.Shopify.APISecret)
	oauthClient := shopifyinfra.NewOAuthClient(shopifyinfra.Config{
		APIKey:     cfg.Shopify.APIKey,
		APISecret:  cfg.Shopify.APISecret,
		MaxRetries: cfg.Shopify.MaxRetries,
		HTTPClient: &http.Client{Timeout: 30 * time.Second},
	}, cfg.AppURL+"/auth/callback", cfg.Shopify.Scopes)

	// Initialize application services
	configService := application.NewShopConfigurationService(
		configRepo,
		cache.NewShopConfigurationCache(redisClient, cfg.Redis.ConfigCacheTTL),
		logger,
	)
	compatibilityService := application.NewThemeCompatibilityService(shopifyClient, recorder, logger)
	injectionService := application.NewThemeInjectionService(shopifyClient, operationRepo, recorder, logger)
	injectionService.SetActivityPublisher(activity)
	productService := application.NewGiftingProductService(shopifyClient, configService, logger)
	setupService := application.NewSetupService(shopifyClient, configService, compatibilityService, logger)
	installService := application.NewInstallService(
		oauthClient,
		cache.NewOAuthStateStore(redisClient, cfg.Redis.OAuthStateTTL),
		repo,
		configService,
		cfg.Shopify.APIKey,
		cfg.Shopify.Scopes,
		logger,
	)

	// Initialize webhook service and register handlers
	webhookService := application.NewWebhookService(
		repo,
		cache.NewWebhookDeduplicator(redisClient, cfg.Redis.WebhookDedupTTL),
		recorder,
		logger,
	)
	webhookService.SetActivityPublisher(activity)
	webhookService.RegisterHandler(webhook_handlers.NewProductHandler(logger, productService))
	webhookService.RegisterHandler(webhook_handlers.NewComplianceHandler(logger, configService))
	webhookService.RegisterHandler(webhook_handlers.NewAppUninstalledHandler(logger, repo, configService))

	handler := apiinfra.NewHandler(apiinfra.Dependencies{
		Compatibility:   compatibilityService,
		Injection:       injectionService,
		Configs:         configService,
		Products:        productService,
		Setup:           setupService,
		Webhooks:        webhookService,
		Install:         installService,
		Activity:        activity,
		WebhookVerifier: verifier,
		ProxyVerifier:   verifier,
		OAuthVerifier:   verifier,
		SessionTokens:   verifier,
		AllowedOrigins:  append(cfg.AllowedOrigins, cfg.AppURL),
		HealthChecks: map[string]apiinfra.HealthCheck{
			"mongodb": func(ctx context.Context) error {
				return mongoClient.Ping(ctx, readpref.Primary())
			},
			"redis": func(ctx context.Context) error {
				return redisClient.Ping(ctx).Err()
			},
		},
		Metrics: recorder.Handler(),
	}, logger)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           apiinfra.NewRouter(handler),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info().Str("port", cfg.Port).Str("appUrl", cfg.AppURL).Msg("Starting API server")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	<-ctx.Done()
	logger.Info().Msg("Shutting down API server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("Graceful shutdown failed")
	}
}
