package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

// Search branch labels.
const (
	BranchRoomCode   = "room_code"
	BranchCommonArea = "common_area"
)

// Search engine Prometheus metrics.
var (
	SearchQueriesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "search_queries_total",
			Help:      "Search queries by expansion branch",
		},
		[]string{"branch"},
	)

	SearchSubcollectionScansTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "search_subcollection_scans_total",
			Help:      "Per-building subcollection scans issued by search",
		},
		[]string{"collection"},
	)

	SearchDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: Namespace,
			Name:      "search_duration_seconds",
			Help:      "Search duration in seconds",
			Buckets:   []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"status"},
	)
)

var registerSearch sync.Once

// RegisterSearchMetrics registers the search metrics. Safe to call more than once.
func RegisterSearchMetrics() {
	registerSearch.Do(func() {
		prometheus.MustRegister(SearchQueriesTotal, SearchSubcollectionScansTotal, SearchDuration)
	})
}
