// ClosetMate - Wardrobe Management and Outfit Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/closetmate

package recommend

import (
	"context"
	"fmt"
	"time"

	"github.com/tomtom215/closetmate/internal/recommend/corpus"
	"github.com/tomtom215/closetmate/internal/recommend/embedding"
)

// Bundle is a trained model: hyperparameters, both embedding tables, and the
// two corpus variants. It is never mutated after construction.
type Bundle struct {
	// ID uniquely identifies the training run.
	ID string

	// Version is the on-disk version number. Zero for unsaved bundles.
	Version int

	// TrainedAt is when the training run finished.
	TrainedAt time.Time

	Params      Hyperparameters
	Sentence    *embedding.Table
	ColorFabric *embedding.Table

	// Merged is the corpus queried at inference time. Every record has a vector.
	Merged *corpus.Index

	// Filtered is the category-complete subset of the source sentences.
	Filtered *corpus.Index

	composer *Composer
}

// NewBundle validates the parts and assembles a bundle.
func NewBundle(id string, params Hyperparameters, sentence, colorFabric *embedding.Table, merged, filtered *corpus.Index) (*Bundle, error) {
	if err := params.Validate(); err != nil {
		return nil, fmt.Errorf("invalid hyperparameters: %w", err)
	}
	if sentence == nil || colorFabric == nil {
		return nil, fmt.Errorf("both embedding tables are required")
	}
	if sentence.Dim() != params.SentenceDim {
		return nil, fmt.Errorf("sentence table dim %d does not match sentence_dim %d", sentence.Dim(), params.SentenceDim)
	}
	if colorFabric.Dim() != params.ColorFabricDim {
		return nil, fmt.Errorf("color/fabric table dim %d does not match color_fabric_dim %d", colorFabric.Dim(), params.ColorFabricDim)
	}
	if merged == nil {
		merged = corpus.NewIndex(nil)
	}
	if filtered == nil {
		filtered = corpus.NewIndex(nil)
	}
	want := params.VectorDim()
	for _, rec := range merged.Records() {
		if len(rec.Vector) != want {
			return nil, fmt.Errorf("outfit %d has vector length %d, want %d", rec.OutfitID, len(rec.Vector), want)
		}
	}

	return &Bundle{
		ID:          id,
		Params:      params,
		Sentence:    sentence,
		ColorFabric: colorFabric,
		Merged:      merged,
		Filtered:    filtered,
		composer:    NewComposer(sentence, colorFabric, params.ColorWeight, params.FabricWeight),
	}, nil
}

// Composer returns the item vector composer bound to this bundle's tables and weights.
func (b *Bundle) Composer() *Composer {
	return b.composer
}

// BundleProvider supplies the bundle used for scoring.
// storage.Loader is the production implementation.
type BundleProvider interface {
	Bundle(ctx context.Context) (*Bundle, error)
}

// StaticProvider serves a bundle that is already in memory.
type StaticProvider struct {
	B *Bundle
}

// Bundle implements BundleProvider.
func (p StaticProvider) Bundle(_ context.Context) (*Bundle, error) {
	if p.B == nil {
		return nil, NewDataUnavailableError("no bundle configured", nil)
	}
	return p.B, nil
}
