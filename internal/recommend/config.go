// ClosetMate - Wardrobe Management and Outfit Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/closetmate

package recommend

import (
	"fmt"
	"math"

	"github.com/tomtom215/closetmate/internal/validation"
)

// Default scoring constants. They are heuristics carried over from the
// first deployment and are tunable through Config.
const (
	DefaultCorpusWeight        = 0.7
	DefaultTargetWeight        = 0.3
	DefaultAcceptanceThreshold = 0.3
	DefaultVectorCacheSize     = 4096
)

// weightTolerance bounds the rounding error allowed when weights are summed.
const weightTolerance = 1e-6

// Config contains scoring parameters for the engine.
type Config struct {
	// CorpusWeight scales the mean similarity between a candidate and the
	// category sub-corpus.
	// Default: 0.7
	CorpusWeight float64 `json:"corpus_weight" validate:"gte=0,lte=1"`

	// TargetWeight scales the similarity between a candidate and the target vector.
	// CorpusWeight + TargetWeight must equal 1.
	// Default: 0.3
	TargetWeight float64 `json:"target_weight" validate:"gte=0,lte=1"`

	// AcceptanceThreshold is the minimum similarity for NearestOutfit to
	// report a usable match. It does not affect Recommend.
	// Default: 0.3
	AcceptanceThreshold float64 `json:"acceptance_threshold" validate:"gte=-1,lte=1"`

	// VectorCacheSize bounds the item vector memo. Zero disables it.
	// Default: 4096
	VectorCacheSize int `json:"vector_cache_size" validate:"gte=0"`
}

// DefaultConfig returns the default scoring configuration.
func DefaultConfig() *Config {
	return &Config{
		CorpusWeight:        DefaultCorpusWeight,
		TargetWeight:        DefaultTargetWeight,
		AcceptanceThreshold: DefaultAcceptanceThreshold,
		VectorCacheSize:     DefaultVectorCacheSize,
	}
}

// Validate checks the tagged value ranges and that the blend weights sum to one.
func (c *Config) Validate() error {
	if err := validation.Validate(c); err != nil {
		return err
	}
	if math.Abs(c.CorpusWeight+c.TargetWeight-1) > weightTolerance {
		return fmt.Errorf("corpus_weight + target_weight must equal 1, got %f", c.CorpusWeight+c.TargetWeight)
	}
	return nil
}

// Clone returns a copy of the config.
func (c *Config) Clone() *Config {
	clone := *c
	return &clone
}

// Hyperparameters describe how a bundle was trained and how item vectors are composed.
// They are persisted as params.json next to the embedding tables.
type Hyperparameters struct {
	// SentenceDim is the sentence embedding length.
	SentenceDim int `json:"sentence_dim" validate:"required,min=1"`

	// ColorFabricDim is the color/fabric embedding length.
	ColorFabricDim int `json:"color_fabric_dim" validate:"required,min=1"`

	// ColorWeight scales the color segment of an item vector.
	ColorWeight float64 `json:"color_weight" validate:"gte=0"`

	// FabricWeight scales the fabric segment of an item vector.
	FabricWeight float64 `json:"fabric_weight" validate:"gte=0"`

	// SentenceWindow is the context window used for the sentence table.
	SentenceWindow int `json:"sentence_window,omitempty"`

	// ColorFabricWindow is the context window used for the color/fabric table.
	ColorFabricWindow int `json:"color_fabric_window,omitempty"`

	// MinCount is the vocabulary frequency cutoff used for both tables.
	MinCount int `json:"min_count,omitempty"`

	// Seed is the random seed both tables were trained with.
	Seed int64 `json:"seed"`

	// Trainer names the embedding trainer implementation.
	Trainer string `json:"trainer,omitempty"`
}

// DefaultHyperparameters returns the parameters of the reference training run.
func DefaultHyperparameters() Hyperparameters {
	return Hyperparameters{
		SentenceDim:       100,
		ColorFabricDim:    20,
		ColorWeight:       0.8,
		FabricWeight:      0.2,
		SentenceWindow:    5,
		ColorFabricWindow: 2,
		MinCount:          1,
		Seed:              42,
	}
}

// VectorDim returns the item vector length: sentence_dim + 2*color_fabric_dim.
func (h Hyperparameters) VectorDim() int {
	return h.SentenceDim + 2*h.ColorFabricDim
}

// Validate checks the tagged fields every bundle needs.
func (h Hyperparameters) Validate() error {
	return validation.Validate(h)
}
