package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	// IngestRecordsTotal counts watch-record appends by outcome
	// (appended, error).
	IngestRecordsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "watchrec",
			Name:      "ingest_records_total",
			Help:      "Watch records processed during ingestion, by outcome",
		},
		[]string{"outcome"},
	)

	// IngestMoviesTotal counts movie-level ingestion outcomes
	// (created, already_exists, error).
	IngestMoviesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "watchrec",
			Name:      "ingest_movies_total",
			Help:      "Movies processed during ingestion, by outcome",
		},
		[]string{"outcome"},
	)

	// RecommendationsTotal counts recommendation queries by outcome
	// (ok, customer_not_found, no_history, error).
	RecommendationsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "watchrec",
			Name:      "recommendations_total",
			Help:      "Recommendation queries served, by outcome",
		},
		[]string{"outcome"},
	)
)

// RegisterEngineMetrics registers the ingestion and query counters.
// Called explicitly from the composition root (no init()) so that tests
// importing this package do not double-register.
func RegisterEngineMetrics() {
	prometheus.MustRegister(IngestRecordsTotal)
	prometheus.MustRegister(IngestMoviesTotal)
	prometheus.MustRegister(RecommendationsTotal)
}

// CountIngest folds one ingestion report's counters into the metrics.
func CountIngest(created, alreadyExists bool, appended, errors int) {
	switch {
	case alreadyExists:
		IngestMoviesTotal.WithLabelValues("already_exists").Inc()
	case created:
		IngestMoviesTotal.WithLabelValues("created").Inc()
	default:
		IngestMoviesTotal.WithLabelValues("error").Inc()
	}
	IngestRecordsTotal.WithLabelValues("appended").Add(float64(appended))
	IngestRecordsTotal.WithLabelValues("error").Add(float64(errors))
}
