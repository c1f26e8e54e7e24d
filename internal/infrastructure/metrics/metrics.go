package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"sikopifasta-backend/internal/domain/apperr"
)

var (
	RequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "sikopifasta_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "route", "status"},
	)

	RequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "sikopifasta_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)

	// outcome is "ok" or the error kind that aborted the transition.
	LoanTransitions = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "sikopifasta_loan_transitions_total",
			Help: "Loan lifecycle operations by target status and outcome",
		},
		[]string{"operation", "outcome"},
	)

	AssetMutations = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "sikopifasta_asset_mutations_total",
			Help: "Asset repository writes by operation and outcome",
		},
		[]string{"operation", "outcome"},
	)

	IdempotentReplays = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "sikopifasta_idempotent_replays_total",
			Help: "Responses served from the idempotency cache",
		},
	)
)

func init() {
	prometheus.MustRegister(
		RequestsTotal,
		RequestDuration,
		LoanTransitions,
		AssetMutations,
		IdempotentReplays,
	)
}

func Handler() http.Handler { return promhttp.Handler() }

func RecordRequest(method, route, status string, duration time.Duration) {
	RequestsTotal.WithLabelValues(method, route, status).Inc()
	RequestDuration.WithLabelValues(method, route).Observe(duration.Seconds())
}

func RecordTransition(operation string, err error) {
	LoanTransitions.WithLabelValues(operation, Outcome(err)).Inc()
}

func RecordAssetMutation(operation string, err error) {
	AssetMutations.WithLabelValues(operation, Outcome(err)).Inc()
}

// Outcome labels err by its kind. Errors without a kind are reported as "error".
func Outcome(err error) string {
	if err == nil {
		return "ok"
	}
	if k := apperr.KindOf(err); k != nil {
		return k.Error()
	}
	return "error"
}
