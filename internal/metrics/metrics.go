// ClosetMate - Wardrobe Management and Outfit Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/closetmate

package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Prometheus metrics for the recommendation core:
// - Dataset reads (DuckDB)
// - Recommendation requests, latency, skipped candidates
// - Item vector cache efficiency
// - Bundle loads and training runs

// Recommendation outcome label values.
const (
	OutcomeSuccess            = "success"
	OutcomeDataUnavailable    = "data_unavailable"
	OutcomeRequiredUnresolved = "required_unresolved"
	OutcomeError              = "error"
)

var (
	// Dataset Metrics
	DBQueryDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "closetmate_duckdb_query_duration_seconds",
			Help:    "Duration of DuckDB dataset queries in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"operation", "dataset"},
	)

	DBQueryErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "closetmate_duckdb_query_errors_total",
			Help: "Total number of DuckDB dataset query errors",
		},
		[]string{"operation", "dataset", "error_type"},
	)

	// Recommendation Metrics
	RecommendRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "closetmate_recommend_requests_total",
			Help: "Total number of outfit recommendation requests by outcome",
		},
		[]string{"outcome"},
	)

	RecommendDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "closetmate_recommend_duration_seconds",
			Help:    "Duration of outfit recommendation requests in seconds",
			Buckets: []float64{0.0005, 0.001, 0.0025, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		},
	)

	RecommendCandidatesSkipped = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "closetmate_recommend_candidates_skipped_total",
			Help: "Total number of candidates excluded because they could not be vectorized",
		},
		[]string{"category"},
	)

	RecommendUnresolved = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "closetmate_recommend_unresolved_total",
			Help: "Total number of slots left empty after scoring",
		},
		[]string{"category"},
	)

	VectorCacheLookups = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "closetmate_recommend_vector_cache_total",
			Help: "Item vector cache lookups by result (hit, miss)",
		},
		[]string{"result"},
	)

	// Bundle Metrics
	BundleLoads = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "closetmate_bundle_loads_total",
			Help: "Total number of bundle load attempts by status",
		},
		[]string{"status"},
	)

	BundleLoadDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "closetmate_bundle_load_duration_seconds",
			Help:    "Duration of bundle loads in seconds",
			Buckets: prometheus.DefBuckets,
		},
	)

	BundleVersion = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "closetmate_bundle_version",
			Help: "Version of the currently loaded bundle",
		},
	)

	// Training Metrics
	TrainingDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "closetmate_training_duration_seconds",
			Help:    "Duration of training pipeline runs in seconds",
			Buckets: []float64{0.1, 0.5, 1, 5, 10, 30, 60, 300, 900},
		},
	)

	TrainingRuns = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "closetmate_training_runs_total",
			Help: "Total number of training pipeline runs by status",
		},
		[]string{"status"},
	)

	TrainingCorpusRows = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "closetmate_training_corpus_rows",
			Help: "Rows in the last trained corpus by variant (read, filtered, merged)",
		},
		[]string{"variant"},
	)

	TrainingVocabularySize = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "closetmate_training_vocabulary_size",
			Help: "Vocabulary size of the last trained embedding tables",
		},
		[]string{"table"},
	)

	// System Metrics
	AppInfo = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "closetmate_app_info",
			Help: "Application version and build information",
		},
		[]string{"version", "go_version"},
	)
)

// RecordDBQuery records a dataset query metric
func RecordDBQuery(operation, dataset string, duration time.Duration, err error) {
	DBQueryDuration.WithLabelValues(operation, dataset).Observe(duration.Seconds())
	if err != nil {
		errorType := err.Error()
		// Truncate long error messages
		if len(errorType) > 50 {
			errorType = errorType[:50]
		}
		DBQueryErrors.WithLabelValues(operation, dataset, errorType).Inc()
	}
}

// RecordRecommendation records the outcome and latency of one request
func RecordRecommendation(outcome string, duration time.Duration) {
	RecommendRequests.WithLabelValues(outcome).Inc()
	RecommendDuration.Observe(duration.Seconds())
}

// RecordCandidateSkipped records a candidate excluded from scoring
func RecordCandidateSkipped(category string) {
	RecommendCandidatesSkipped.WithLabelValues(category).Inc()
}

// RecordUnresolved records a slot left empty after scoring
func RecordUnresolved(category string) {
	RecommendUnresolved.WithLabelValues(category).Inc()
}

// RecordVectorCache records an item vector cache lookup
func RecordVectorCache(hit bool) {
	if hit {
		VectorCacheLookups.WithLabelValues("hit").Inc()
	} else {
		VectorCacheLookups.WithLabelValues("miss").Inc()
	}
}

// RecordBundleLoad records a bundle load attempt
func RecordBundleLoad(version int, duration time.Duration, err error) {
	BundleLoadDuration.Observe(duration.Seconds())
	if err != nil {
		BundleLoads.WithLabelValues("failure").Inc()
		return
	}
	BundleLoads.WithLabelValues("success").Inc()
	BundleVersion.Set(float64(version))
}

// RecordTraining records a training pipeline run
func RecordTraining(duration time.Duration, err error) {
	TrainingDuration.Observe(duration.Seconds())
	if err != nil {
		TrainingRuns.WithLabelValues("failure").Inc()
		return
	}
	TrainingRuns.WithLabelValues("success").Inc()
}

// SetCorpusRows updates the corpus size gauge for a variant
func SetCorpusRows(variant string, rows int) {
	TrainingCorpusRows.WithLabelValues(variant).Set(float64(rows))
}

// SetVocabularySize updates the vocabulary size gauge for a table
func SetVocabularySize(table string, size int) {
	TrainingVocabularySize.WithLabelValues(table).Set(float64(size))
}
