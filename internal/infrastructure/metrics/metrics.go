package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics
type Metrics struct {
	// Transfer metrics
	TransfersCreated prometheus.Counter
	TransferDuration prometheus.Histogram
	TransferAmount   prometheus.Histogram
	TransferErrors   *prometheus.CounterVec

	// Settlement metrics
	SettlementsApplied    *prometheus.CounterVec
	SettlementsDuplicate  prometheus.Counter
	SettlementsUnmatched  prometheus.Counter
	WebhookEventsReceived *prometheus.CounterVec

	// Payment metrics
	DepositsInitiated    prometheus.Counter
	WithdrawalsInitiated prometheus.Counter

	// Account metrics
	AccountsCreated   prometheus.Counter
	AccountOperations *prometheus.CounterVec

	// User metrics
	UsersRegistered   prometheus.Counter
	BlacklistRejected prometheus.Counter

	// API metrics
	HTTPRequests *prometheus.CounterVec
	HTTPDuration *prometheus.HistogramVec

	// Database metrics
	DBQueries     *prometheus.CounterVec
	DBDuration    *prometheus.HistogramVec
	DBConnections prometheus.Gauge
	DBErrors      *prometheus.CounterVec

	// Authentication metrics
	AuthAttempts *prometheus.CounterVec
	AuthFailures *prometheus.CounterVec
}

// New creates and registers all Prometheus metrics
func New() *Metrics {
	return &Metrics{
		// Transfer metrics
		TransfersCreated: promauto.NewCounter(prometheus.CounterOpts{
			Name: "gowallet_transfers_created_total",
			Help: "Total number of internal transfers completed",
		}),
		TransferDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "gowallet_transfer_duration_seconds",
			Help:    "Duration of transfer operations",
			Buckets: prometheus.DefBuckets,
		}),
		TransferAmount: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "gowallet_transfer_amount",
			Help:    "Transfer amounts",
			Buckets: []float64{1, 10, 100, 1000, 10000, 100000, 1000000},
		}),
		TransferErrors: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "gowallet_transfer_errors_total",
				Help: "Total number of transfer errors by type",
			},
			[]string{"error_type"},
		),

		// Settlement metrics
		SettlementsApplied: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "gowallet_settlements_applied_total",
				Help: "Total settlements applied by event",
			},
			[]string{"event"},
		),
		SettlementsDuplicate: promauto.NewCounter(prometheus.CounterOpts{
			Name: "gowallet_settlements_duplicate_total",
			Help: "Total settlement signals with no pending transaction to match",
		}),
		SettlementsUnmatched: promauto.NewCounter(prometheus.CounterOpts{
			Name: "gowallet_settlements_unmatched_total",
			Help: "Total settlement signals for unknown users or accounts",
		}),
		WebhookEventsReceived: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "gowallet_webhook_events_total",
				Help: "Total provider webhook events by type",
			},
			[]string{"event"},
		),

		// Payment metrics
		DepositsInitiated: promauto.NewCounter(prometheus.CounterOpts{
			Name: "gowallet_deposits_initiated_total",
			Help: "Total deposits initiated against the provider",
		}),
		WithdrawalsInitiated: promauto.NewCounter(prometheus.CounterOpts{
			Name: "gowallet_withdrawals_initiated_total",
			Help: "Total withdrawals initiated against the provider",
		}),

		// Account metrics
		AccountsCreated: promauto.NewCounter(prometheus.CounterOpts{
			Name: "gowallet_accounts_created_total",
			Help: "Total number of accounts created",
		}),
		AccountOperations: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "gowallet_account_operations_total",
				Help: "Total account operations by type",
			},
			[]string{"operation"},
		),

		// User metrics
		UsersRegistered: promauto.NewCounter(prometheus.CounterOpts{
			Name: "gowallet_users_registered_total",
			Help: "Total users registered",
		}),
		BlacklistRejected: promauto.NewCounter(prometheus.CounterOpts{
			Name: "gowallet_blacklist_rejected_total",
			Help: "Total registrations rejected by the karma blacklist",
		}),

		// API metrics
		HTTPRequests: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "gowallet_http_requests_total",
				Help: "Total HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		HTTPDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "gowallet_http_duration_seconds",
				Help:    "HTTP request duration",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "path"},
		),

		// Database metrics
		DBQueries: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "gowallet_db_queries_total",
				Help: "Total database queries",
			},
			[]string{"operation", "table"},
		),
		DBDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "gowallet_db_query_duration_seconds",
				Help:    "Database query duration",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"operation", "table"},
		),
		DBConnections: promauto.NewGauge(prometheus.GaugeOpts{
			Name: "gowallet_db_connections",
			Help: "Current number of database connections",
		}),
		DBErrors: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "gowallet_db_errors_total",
				Help: "Total database errors",
			},
			[]string{"operation"},
		),

		// Authentication metrics
		AuthAttempts: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "gowallet_auth_attempts_total",
				Help: "Total authentication attempts",
			},
			[]string{"status"},
		),
		AuthFailures: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "gowallet_auth_failures_total",
				Help: "Total authentication failures",
			},
			[]string{"reason"},
		),
	}
}
