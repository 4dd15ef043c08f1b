// ClosetMate - Wardrobe Management and Outfit Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/closetmate

package storage

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/closetmate/internal/metrics"
	"github.com/tomtom215/closetmate/internal/recommend"
)

// Loader loads one bundle version on first use and serves it for the
// lifetime of the handle. It implements recommend.BundleProvider.
type Loader struct {
	store   *Store
	version int
	logger  zerolog.Logger

	// mu serializes loads so concurrent first calls build one bundle.
	mu     sync.Mutex
	bundle atomic.Pointer[recommend.Bundle]
}

// NewLoader creates a loader for version; 0 selects the latest at load time.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewLoader(store *Store, version int, logger zerolog.Logger) *Loader {
	return &Loader{
		store:   store,
		version: version,
		logger:  logger.With().Str("component", "storage").Logger(),
	}
}

// IsLoaded reports whether a bundle has been loaded.
func (l *Loader) IsLoaded() bool {
	return l.bundle.Load() != nil
}

// Bundle returns the loaded bundle, loading it on the first call.
// A failed load is not cached; the next call tries again.
func (l *Loader) Bundle(ctx context.Context) (*recommend.Bundle, error) {
	if b := l.bundle.Load(); b != nil {
		return b, nil
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if b := l.bundle.Load(); b != nil {
		return b, nil
	}

	start := time.Now()
	b, err := l.store.Load(ctx, l.version)
	duration := time.Since(start)
	if err != nil {
		metrics.RecordBundleLoad(l.version, duration, err)
		l.logger.Error().Err(err).
			Str("dir", l.store.Dir()).
			Int("version", l.version).
			Msg("bundle load failed")
		return nil, err
	}
	metrics.RecordBundleLoad(b.Version, duration, nil)

	l.bundle.Store(b)
	l.logger.Info().
		Str("bundle_id", b.ID).
		Int("version", b.Version).
		Int("corpus_rows", b.Merged.Len()).
		Int("sentence_vocabulary", b.Sentence.Len()).
		Dur("duration", duration).
		Msg("bundle loaded")
	return b, nil
}

var _ recommend.BundleProvider = (*Loader)(nil)
