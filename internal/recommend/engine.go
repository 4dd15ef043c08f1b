// ClosetMate - Wardrobe Management and Outfit Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/closetmate

package recommend

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/closetmate/internal/cache"
	"github.com/tomtom215/closetmate/internal/logging"
	"github.com/tomtom215/closetmate/internal/metrics"
	"github.com/tomtom215/closetmate/internal/recommend/corpus"
)

// Engine completes outfits against a trained bundle.
// It is safe for concurrent use; the bundle is read-only and the vector memo is locked.
type Engine struct {
	config   *Config
	logger   zerolog.Logger
	provider BundleProvider

	// vectors memoizes item vectors per bundle. Nil when disabled.
	vectors *cache.LRU[vectorKey, []float64]

	requestCount atomic.Int64
	errorCount   atomic.Int64
}

// vectorKey scopes a memoized vector to the bundle that produced it.
type vectorKey struct {
	bundleID   string
	descriptor string
}

// Stats is a snapshot of engine counters.
type Stats struct {
	Requests    int64 `json:"requests"`
	Errors      int64 `json:"errors"`
	CacheHits   int64 `json:"cache_hits"`
	CacheMisses int64 `json:"cache_misses"`
	CacheSize   int   `json:"cache_size"`
}

// NewEngine creates an engine that reads bundles from provider.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewEngine(cfg *Config, provider BundleProvider, logger zerolog.Logger) (*Engine, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	if provider == nil {
		return nil, fmt.Errorf("bundle provider is required")
	}

	e := &Engine{
		config:   cfg.Clone(),
		logger:   logger.With().Str("component", "recommend").Logger(),
		provider: provider,
	}
	if cfg.VectorCacheSize > 0 {
		e.vectors = cache.NewLRU[vectorKey, []float64](cfg.VectorCacheSize)
	}
	return e, nil
}

// Config returns a copy of the engine configuration.
func (e *Engine) Config() *Config {
	return e.config.Clone()
}

// Stats returns engine counters.
func (e *Engine) Stats() Stats {
	s := Stats{
		Requests: e.requestCount.Load(),
		Errors:   e.errorCount.Load(),
	}
	if e.vectors != nil {
		s.CacheHits, s.CacheMisses, s.CacheSize = e.vectors.Stats()
	}
	return s
}

// Recommend fills every open slot with the best-scoring candidate.
//
// Selected items pass through unchanged. Top, bottom, and shoes must resolve
// or the call fails with a RequiredCategoryUnresolvedError. A missing bundle,
// or an empty corpus when nothing is selected, fails with a DataUnavailableError.
//
//nolint:gocritic // hugeParam: req passed by value for immutability
func (e *Engine) Recommend(ctx context.Context, req Request) (*Result, error) {
	start := time.Now()
	e.requestCount.Add(1)

	if req.RequestID == "" {
		req.RequestID = logging.RequestIDFromContext(ctx)
	}
	if req.RequestID == "" {
		req.RequestID = logging.GenerateRequestID()
	}
	logger := e.logger.With().Str("request_id", req.RequestID).Logger()

	result, err := e.recommend(ctx, req, logger)
	metrics.RecordRecommendation(outcome(err), time.Since(start))
	if err != nil {
		e.errorCount.Add(1)
		logger.Warn().Err(err).Msg("recommendation failed")
		return nil, err
	}

	logger.Debug().
		Str("bundle_id", result.BundleID).
		Int("skipped", len(result.Skipped)).
		Dur("latency", time.Since(start)).
		Msg("recommendation complete")
	return result, nil
}

//nolint:gocritic // hugeParam: req passed by value for immutability
func (e *Engine) recommend(ctx context.Context, req Request, logger zerolog.Logger) (*Result, error) {
	bundle, err := e.bundle(ctx)
	if err != nil {
		return nil, err
	}

	result := &Result{RequestID: req.RequestID, BundleID: bundle.ID}

	target, err := e.targetVector(bundle, req, result)
	if err != nil {
		return nil, err
	}

	offered := [NumCategories]int{}
	skipped := [NumCategories]int{}
	for _, c := range Categories {
		if result.Picks[c].Source == PickSelected {
			continue
		}
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		pool := req.Available[c]
		pick, skips := e.scoreCategory(bundle, c, pool, target)
		result.Picks[c] = pick
		offered[c] = len(pool)
		skipped[c] = len(skips)

		for _, skip := range skips {
			metrics.RecordCandidateSkipped(c.String())
			logger.Warn().
				Err(skip).
				Str("category", c.String()).
				Int("item_id", skip.ItemID).
				Str("descriptor", skip.Descriptor).
				Msg("candidate skipped")
		}
		result.Skipped = append(result.Skipped, skips...)

		if !pick.Resolved() {
			metrics.RecordUnresolved(c.String())
		}
	}

	for _, c := range Categories {
		if c.Required() && !result.Picks[c].Resolved() {
			return nil, &RequiredCategoryUnresolvedError{
				Category: c,
				Offered:  offered[c],
				Skipped:  skipped[c],
			}
		}
	}

	return result, nil
}

// bundle fetches the bundle and normalizes provider failures to DataUnavailable.
func (e *Engine) bundle(ctx context.Context) (*Bundle, error) {
	b, err := e.provider.Bundle(ctx)
	if err != nil {
		if errors.Is(err, ErrDataUnavailable) {
			return nil, err
		}
		return nil, NewDataUnavailableError("load bundle", err)
	}
	if b == nil {
		return nil, NewDataUnavailableError("no bundle loaded", nil)
	}
	return b, nil
}

// targetVector records selected picks and returns the outfit target vector:
// the mean of the selected item vectors, or the corpus mean when none has a descriptor.
//
//nolint:gocritic // hugeParam: req passed by value for immutability
func (e *Engine) targetVector(b *Bundle, req Request, result *Result) ([]float64, error) {
	selected := make([][]float64, 0, NumCategories)
	for _, c := range Categories {
		item := req.Selected[c]
		if item == nil {
			continue
		}
		result.Picks[c] = Pick{ItemID: item.ID, Source: PickSelected}
		if strings.TrimSpace(item.Descriptor) == "" {
			continue
		}
		selected = append(selected, e.itemVector(b, item.Descriptor))
	}

	if len(selected) > 0 {
		return corpus.Mean(selected), nil
	}

	mean, ok := b.Merged.Mean()
	if !ok {
		return nil, NewDataUnavailableError("no item selected and corpus is empty", nil)
	}
	return mean, nil
}

// scoreCategory picks the candidate with the highest combined score.
// Ties keep the earlier candidate.
func (e *Engine) scoreCategory(b *Bundle, c Category, pool []Item, target []float64) (Pick, []CandidateSkip) {
	if len(pool) == 0 {
		return Pick{}, nil
	}

	sub := b.Merged.FilterByMarker(c.Marker())
	dim := b.Params.VectorDim()

	var skips []CandidateSkip
	pick := Pick{}
	best := math.Inf(-1)
	for _, item := range pool {
		if strings.TrimSpace(item.Descriptor) == "" {
			skips = append(skips, CandidateSkip{Category: c, ItemID: item.ID, Descriptor: item.Descriptor, Reason: "empty descriptor"})
			continue
		}
		vec := e.itemVector(b, item.Descriptor)
		if reason := unusable(vec, dim); reason != "" {
			skips = append(skips, CandidateSkip{Category: c, ItemID: item.ID, Descriptor: item.Descriptor, Reason: reason})
			continue
		}

		score := e.config.CorpusWeight*sub.AverageSimilarity(vec) +
			e.config.TargetWeight*corpus.CosineSimilarity(vec, target)
		pick.Candidates++
		if score > best {
			best = score
			pick.ItemID = item.ID
			pick.Score = score
			pick.Source = PickScored
		}
	}

	return pick, skips
}

// itemVector returns the memoized item vector for descriptor.
func (e *Engine) itemVector(b *Bundle, descriptor string) []float64 {
	if e.vectors == nil {
		return b.Composer().ItemVector(descriptor)
	}
	vec, hit := e.vectors.GetOrAdd(vectorKey{bundleID: b.ID, descriptor: descriptor}, func() []float64 {
		return b.Composer().ItemVector(descriptor)
	})
	metrics.RecordVectorCache(hit)
	return vec
}

// unusable explains why a vector cannot be scored, or returns "".
func unusable(vec []float64, dim int) string {
	if len(vec) != dim {
		return fmt.Sprintf("vector length %d, want %d", len(vec), dim)
	}
	for _, v := range vec {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return "vector has non-finite component"
		}
	}
	return ""
}

// outcome maps an error to a metrics outcome label.
func outcome(err error) string {
	switch {
	case err == nil:
		return metrics.OutcomeSuccess
	case errors.Is(err, ErrDataUnavailable):
		return metrics.OutcomeDataUnavailable
	case errors.Is(err, ErrRequiredCategoryUnresolved):
		return metrics.OutcomeRequiredUnresolved
	default:
		return metrics.OutcomeError
	}
}

// NearestOutfit is the result of an introspection query against the corpus.
type NearestOutfit struct {
	// Found is false when the corpus is empty.
	Found bool `json:"found"`

	// Accepted reports whether the similarity clears the acceptance threshold.
	Accepted bool `json:"accepted"`

	Threshold float64      `json:"threshold"`
	Match     corpus.Match `json:"match"`
}

// NearestOutfit finds the historical outfit closest to the mean vector of descriptors.
// It is meant for debugging a bundle and is not used by Recommend.
func (e *Engine) NearestOutfit(ctx context.Context, descriptors []string) (*NearestOutfit, error) {
	b, err := e.bundle(ctx)
	if err != nil {
		return nil, err
	}

	vectors := make([][]float64, 0, len(descriptors))
	for _, d := range descriptors {
		if strings.TrimSpace(d) == "" {
			continue
		}
		vectors = append(vectors, e.itemVector(b, d))
	}
	if len(vectors) == 0 {
		return nil, fmt.Errorf("at least one non-empty descriptor is required")
	}

	out := &NearestOutfit{Threshold: e.config.AcceptanceThreshold}
	match, ok := b.Merged.Nearest(corpus.Mean(vectors))
	if !ok {
		return out, nil
	}
	out.Found = true
	out.Match = match
	out.Accepted = match.Accepted(e.config.AcceptanceThreshold)
	return out, nil
}
