// ClosetMate - Wardrobe Management and Outfit Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/closetmate

package embedding

import (
	"context"

	"github.com/tomtom215/closetmate/internal/validation"
)

// TrainParams are the hyperparameters every trainer must honor.
type TrainParams struct {
	// Dim is the vector length.
	Dim int `json:"dim" validate:"required,min=1,max=1024"`

	// Window is the maximum distance between a center token and its context.
	Window int `json:"window" validate:"required,min=1,max=50"`

	// MinCount drops tokens seen fewer times than this.
	MinCount int `json:"min_count" validate:"min=1"`

	// Seed makes training reproducible.
	Seed int64 `json:"seed"`
}

// Validate checks the tagged parameter ranges.
func (p TrainParams) Validate() error {
	return validation.Validate(p)
}

// Trainer fits a word-vector table over tokenized sentences.
// Implementations must be deterministic for a fixed corpus and seed.
type Trainer interface {
	// Name returns a short identifier recorded in bundle metadata.
	Name() string

	// Fit trains a table over corpus.
	Fit(ctx context.Context, corpus [][]string, params TrainParams) (*Table, error)
}
