package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/iho/gowallet/internal/adapter/http/handler"
	"github.com/iho/gowallet/internal/adapter/http/middleware"
	"github.com/iho/gowallet/internal/infrastructure/auth"
	"github.com/iho/gowallet/internal/usecase"
)

// RouterConfig holds dependencies for the router.
type RouterConfig struct {
	UserHandler        *handler.UserHandler
	AccountHandler     *handler.AccountHandler
	TransactionHandler *handler.TransactionHandler
	TransferHandler    *handler.TransferHandler
	PaymentHandler     *handler.PaymentHandler
	HealthHandler      *handler.HealthHandler
	JWTManager         *auth.JWTManager
	IdempotencyStore   usecase.IdempotencyStore
	Logger             zerolog.Logger
	AuthEnabled        bool
}

// NewRouter creates a new HTTP router.
func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.NewLoggingMiddleware(cfg.Logger).Wrap)
	r.Use(middleware.Recovery)
	r.Use(middleware.Metrics)

	// Health and metrics endpoints
	r.Get("/health", cfg.HealthHandler.Liveness)
	r.Get("/ready", cfg.HealthHandler.Readiness)
	r.Handle("/metrics", promhttp.Handler())

	// Provider webhook sits outside auth; it is authenticated by signature.
	r.Post("/webhook/paystack", cfg.PaymentHandler.Webhook)

	loginLimiter := middleware.NewRateLimiter(5, 10)

	// API v1
	r.Route("/api/v1", func(r chi.Router) {
		if cfg.IdempotencyStore != nil {
			idempotencyMiddleware := middleware.NewIdempotencyMiddleware(cfg.IdempotencyStore)
			r.Use(idempotencyMiddleware.Wrap)
		}

		// Public onboarding routes
		r.Group(func(r chi.Router) {
			r.Use(loginLimiter.Limit)
			r.Post("/users/register", cfg.UserHandler.Register)
			r.Post("/users/verify-otp", cfg.UserHandler.VerifyOTP)
			r.Post("/users/login", cfg.UserHandler.Login)
		})

		// Authenticated routes
		r.Group(func(r chi.Router) {
			if cfg.AuthEnabled {
				r.Use(middleware.AuthMiddleware(cfg.JWTManager))
			}

			// Users
			r.Get("/users/{id}", cfg.UserHandler.Get)
			r.With(middleware.RequireAdmin).Get("/users", cfg.UserHandler.List)

			// Accounts
			r.Route("/accounts", func(r chi.Router) {
				r.With(middleware.RequireAdmin).Post("/", cfg.AccountHandler.Create)
				r.With(middleware.RequireAdmin).Get("/", cfg.AccountHandler.List)
				r.Get("/me", cfg.AccountHandler.Mine)
				r.Get("/{id}", cfg.AccountHandler.Get)
				r.Get("/{id}/balance", cfg.AccountHandler.GetBalance)
				r.Get("/{id}/transactions", cfg.TransactionHandler.ListByAccount)
				r.Delete("/{id}", cfg.AccountHandler.Delete)
			})

			// Transactions
			r.Route("/transactions", func(r chi.Router) {
				r.Get("/", cfg.TransactionHandler.List)
				r.With(middleware.RequireAdmin).Get("/consistency", cfg.TransactionHandler.Consistency)
				r.Get("/{id}", cfg.TransactionHandler.Get)
				r.Delete("/{id}", cfg.TransactionHandler.Delete)
			})

			// Transfers
			r.Post("/transfers", cfg.TransferHandler.Create)

			// Payments
			r.Route("/payments", func(r chi.Router) {
				r.Post("/deposit", cfg.PaymentHandler.InitiateDeposit)
				r.Get("/deposit/verify", cfg.PaymentHandler.VerifyDeposit)
				r.Post("/withdraw", cfg.PaymentHandler.InitiateWithdrawal)
				r.Get("/withdraw/verify", cfg.PaymentHandler.VerifyWithdrawal)
			})
		})
	})

	return r
}
