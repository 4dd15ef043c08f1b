// ClosetMate - Wardrobe Management and Outfit Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/closetmate

/*
Package metrics provides Prometheus metrics for the recommendation core.

All collectors are registered with the default registry through promauto, so
any process that serves promhttp.Handler exposes them without further wiring.

# Available Metrics

Dataset Metrics:
  - closetmate_duckdb_query_duration_seconds: CSV read time (histogram)
    Labels: operation, dataset
  - closetmate_duckdb_query_errors_total: Failed reads (counter)
    Labels: operation, dataset, error_type

Recommendation Metrics:
  - closetmate_recommend_requests_total: Requests by outcome (counter)
    Labels: outcome (success, data_unavailable, required_unresolved, error)
  - closetmate_recommend_duration_seconds: Request latency (histogram)
  - closetmate_recommend_candidates_skipped_total: Skipped candidates (counter)
    Labels: category
  - closetmate_recommend_unresolved_total: Empty slots after scoring (counter)
    Labels: category
  - closetmate_recommend_vector_cache_total: Item vector cache lookups (counter)
    Labels: result (hit, miss)

Bundle Metrics:
  - closetmate_bundle_loads_total: Load attempts (counter)
    Labels: status (success, failure)
  - closetmate_bundle_load_duration_seconds: Load time (histogram)
  - closetmate_bundle_version: Loaded bundle version (gauge)

Training Metrics:
  - closetmate_training_duration_seconds: Pipeline run time (histogram)
  - closetmate_training_runs_total: Runs by status (counter)
  - closetmate_training_corpus_rows: Corpus rows by variant (gauge)
    Labels: variant (read, filtered, merged)
  - closetmate_training_vocabulary_size: Vocabulary size (gauge)
    Labels: table (sentence, color_fabric)

# Usage

	start := time.Now()
	result, err := engine.Recommend(ctx, req)
	metrics.RecordRecommendation(metrics.OutcomeSuccess, time.Since(start))

# Thread Safety

Prometheus collectors are safe for concurrent use.
*/
package metrics
