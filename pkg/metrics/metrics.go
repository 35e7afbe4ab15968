package metrics

import (
	"database/sql"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds Prometheus metrics for the service
type Metrics struct {
	RequestCounter  *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec

	SchedulerTicks    prometheus.Counter
	RemindersSent     prometheus.Counter
	RemindersResent   prometheus.Counter
	ReminderSendFails prometheus.Counter
	Acknowledgments   *prometheus.CounterVec
	PendingEntries    prometheus.Gauge
	ActiveSessions    prometheus.Gauge

	DBConnPoolStats *prometheus.GaugeVec
}

// NewMetrics creates a new metrics instance
func NewMetrics(serviceName string) *Metrics {
	return &Metrics{
		RequestCounter: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "medtrack",
				Subsystem: serviceName,
				Name:      "requests_total",
				Help:      "Total number of HTTP requests",
			},
			[]string{"method", "status"},
		),
		RequestDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: "medtrack",
				Subsystem: serviceName,
				Name:      "request_duration_seconds",
				Help:      "HTTP request duration in seconds",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"method"},
		),
		SchedulerTicks: promauto.NewCounter(
			prometheus.CounterOpts{
				Namespace: "medtrack",
				Subsystem: serviceName,
				Name:      "scheduler_ticks_total",
				Help:      "Total number of scheduler evaluation passes",
			},
		),
		RemindersSent: promauto.NewCounter(
			prometheus.CounterOpts{
				Namespace: "medtrack",
				Subsystem: serviceName,
				Name:      "reminders_sent_total",
				Help:      "Total number of reminder notifications sent",
			},
		),
		RemindersResent: promauto.NewCounter(
			prometheus.CounterOpts{
				Namespace: "medtrack",
				Subsystem: serviceName,
				Name:      "reminders_resent_total",
				Help:      "Total number of reminder re-notifications",
			},
		),
		ReminderSendFails: promauto.NewCounter(
			prometheus.CounterOpts{
				Namespace: "medtrack",
				Subsystem: serviceName,
				Name:      "reminder_send_failures_total",
				Help:      "Total number of failed notifier calls",
			},
		),
		Acknowledgments: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "medtrack",
				Subsystem: serviceName,
				Name:      "acknowledgments_total",
				Help:      "Total number of reminder acknowledgments",
			},
			[]string{"status"}, // taken or skipped
		),
		PendingEntries: promauto.NewGauge(
			prometheus.GaugeOpts{
				Namespace: "medtrack",
				Subsystem: serviceName,
				Name:      "pending_acknowledgments",
				Help:      "Number of sent reminders awaiting acknowledgment",
			},
		),
		ActiveSessions: promauto.NewGauge(
			prometheus.GaugeOpts{
				Namespace: "medtrack",
				Subsystem: serviceName,
				Name:      "active_sessions",
				Help:      "Number of live conversational sessions",
			},
		),
		DBConnPoolStats: promauto.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: "medtrack",
				Subsystem: serviceName,
				Name:      "db_connection_pool",
				Help:      "Database connection pool statistics",
			},
			[]string{"stat"}, // stat can be: open, in_use, idle
		),
	}
}

// CollectDBStats samples connection pool statistics into the pool gauges.
func (m *Metrics) CollectDBStats(db *sql.DB) {
	stats := db.Stats()
	m.DBConnPoolStats.WithLabelValues("open").Set(float64(stats.OpenConnections))
	m.DBConnPoolStats.WithLabelValues("in_use").Set(float64(stats.InUse))
	m.DBConnPoolStats.WithLabelValues("idle").Set(float64(stats.Idle))
}

// ObserveRequest records a completed HTTP request.
func (m *Metrics) ObserveRequest(method, status string, duration time.Duration) {
	m.RequestCounter.WithLabelValues(method, status).Inc()
	m.RequestDuration.WithLabelValues(method).Observe(duration.Seconds())
}
