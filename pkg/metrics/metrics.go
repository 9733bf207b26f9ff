package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Custom histogram buckets optimized for API response times ranging
	// from milliseconds to 30+ seconds
	CustomAPIBuckets = []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2, 3, 5, 8, 13, 21, 34, 55}

	// Portal API client metrics
	PortalRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "portal_client_operation_duration_seconds",
			Help:    "Portal API client operation duration in seconds",
			Buckets: CustomAPIBuckets,
		},
		[]string{"operation", "status"},
	)

	PortalRequestTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "portal_client_operation_total",
			Help: "Total number of portal API client operations",
		},
		[]string{"operation", "status"},
	)

	// Session store metrics
	SessionOperationTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "session_operation_total",
			Help: "Total number of session store operations",
		},
		[]string{"operation", "status"},
	)

	RoleDataLoadDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "session_role_data_load_duration_seconds",
			Help:    "Role-scoped bulk load duration in seconds",
			Buckets: CustomAPIBuckets,
		},
		[]string{"role", "status"},
	)
)

// MeasureDuration returns the elapsed time since start in seconds
func MeasureDuration(start time.Time) float64 {
	return time.Since(start).Seconds()
}
