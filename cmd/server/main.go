package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog/log"

	httpAdapter "github.com/iho/gowallet/internal/adapter/http"
	"github.com/iho/gowallet/internal/adapter/http/handler"
	"github.com/iho/gowallet/internal/adapter/provider/karma"
	"github.com/iho/gowallet/internal/adapter/provider/paystack"
	postgresRepo "github.com/iho/gowallet/internal/adapter/repository/postgres"
	redisRepo "github.com/iho/gowallet/internal/adapter/repository/redis"
	"github.com/iho/gowallet/internal/infrastructure/auth"
	"github.com/iho/gowallet/internal/infrastructure/config"
	"github.com/iho/gowallet/internal/infrastructure/logger"
	"github.com/iho/gowallet/internal/infrastructure/notify"
	"github.com/iho/gowallet/internal/infrastructure/postgres"
	"github.com/iho/gowallet/internal/infrastructure/redis"
	"github.com/iho/gowallet/internal/usecase"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	// Setup logger
	appLogger := logger.New(logger.Config{
		Level:  cfg.LogLevel,
		Format: cfg.LogFormat,
	})
	log.Logger = appLogger

	ctx := context.Background()

	// Connect to PostgreSQL
	pool, err := postgres.NewPool(ctx, cfg.DatabaseURL, cfg.DatabaseMaxConns, cfg.DatabaseMinConns)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to postgres")
	}
	defer pool.Close()
	log.Info().Msg("connected to postgres")

	// Run migrations
	if err := postgres.RunMigrations(cfg.DatabaseURL, "migrations"); err != nil {
		log.Fatal().Err(err).Msg("failed to run migrations")
	}

	// Connect to Redis
	redisClient, err := redis.NewClient(ctx, cfg.RedisURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to redis")
	}
	defer redisClient.Close()
	log.Info().Msg("connected to redis")

	// Initialize repositories
	txManager := postgresRepo.NewTxManager(pool)
	accountRepo := postgresRepo.NewAccountRepository(pool)
	txnRepo := postgresRepo.NewTransactionRepository(pool)
	userRepo := postgresRepo.NewUserRepository(pool)
	idempotencyStore := redisRepo.NewIdempotencyStore(redisClient)
	cache := redisRepo.NewCache(redisClient)
	idGen := postgresRepo.NewULIDGenerator()
	retrier := postgresRepo.NewRetrier()

	// Initialize providers
	paystackClient := paystack.NewClientWithBaseURL(cfg.PaystackSecretKey, cfg.PaystackBaseURL)
	karmaChecker := karma.NewChecker(cfg.KarmaURL, cfg.KarmaSecretKey)
	mailer := notify.NewMailer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPass, cfg.MailFrom)

	jwtManager := auth.NewJWTManager(cfg.JWTSecret, cfg.JWTExpiration)

	// Initialize use cases
	accountUC := usecase.NewAccountUseCase(accountRepo, cache, idGen)
	userUC := usecase.NewUserUseCase(userRepo, accountUC, karmaChecker, mailer, cache, idGen)
	transferUC := usecase.NewTransferUseCase(txManager, accountRepo, txnRepo, idGen, retrier)
	txnUC := usecase.NewTransactionUseCase(txnRepo, accountRepo)
	settlementUC := usecase.NewSettlementUseCase(txManager, accountRepo, txnRepo, userRepo, retrier)
	paymentUC := usecase.NewPaymentUseCase(txManager, accountRepo, txnRepo, userRepo, paystackClient, settlementUC, idGen)

	// Initialize handlers
	userHandler := handler.NewUserHandler(userUC, jwtManager)
	accountHandler := handler.NewAccountHandler(accountUC)
	transactionHandler := handler.NewTransactionHandler(txnUC)
	transferHandler := handler.NewTransferHandler(transferUC)
	paymentHandler := handler.NewPaymentHandler(paymentUC, settlementUC, cfg.PaystackSecretKey, appLogger)
	healthHandler := handler.NewHealthHandler(pool, redisClient)

	// Create router
	router := httpAdapter.NewRouter(httpAdapter.RouterConfig{
		UserHandler:        userHandler,
		AccountHandler:     accountHandler,
		TransactionHandler: transactionHandler,
		TransferHandler:    transferHandler,
		PaymentHandler:     paymentHandler,
		HealthHandler:      healthHandler,
		JWTManager:         jwtManager,
		IdempotencyStore:   idempotencyStore,
		Logger:             appLogger,
		AuthEnabled:        cfg.AuthEnabled,
	})

	// Create server
	server := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.HTTPPort),
		Handler:      router,
		ReadTimeout:  cfg.HTTPReadTimeout,
		WriteTimeout: cfg.HTTPWriteTimeout,
		IdleTimeout:  cfg.HTTPIdleTimeout,
	}

	// Start server in goroutine
	go func() {
		log.Info().Str("port", cfg.HTTPPort).Msg("starting server")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server...")

	// Graceful shutdown
	ctx, cancel := context.WithTimeout(context.Background(), cfg.HTTPShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("server forced to shutdown")
	}

	log.Info().Msg("server stopped")
}
