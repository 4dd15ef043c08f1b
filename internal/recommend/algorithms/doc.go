// ClosetMate - Wardrobe Management and Outfit Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/closetmate

// Package algorithms implements the embedding trainers used by the training pipeline.
//
// # Trainers
//
//   - SkipGram: skip-gram with negative sampling over tokenized sentences
//
// Every trainer implements embedding.Trainer:
//
//	type Trainer interface {
//	    Name() string
//	    Fit(ctx context.Context, corpus [][]string, params TrainParams) (*Table, error)
//	}
//
// SkipGram is one implementation. Any word2vec library that accepts a seed
// can be wrapped behind embedding.Trainer and passed to training.NewPipeline
// in its place; bundles record the trainer name in their hyperparameters.
//
// # Determinism
//
// Trainers draw all randomness from a math/rand source seeded with
// TrainParams.Seed and iterate the vocabulary in a fixed order, so the same
// corpus and seed produce identical tables on every platform.
//
// # Usage
//
//	trainer, err := algorithms.NewSkipGram(algorithms.DefaultSkipGramConfig())
//	table, err := trainer.Fit(ctx, sentences, embedding.TrainParams{
//	    Dim: 100, Window: 5, MinCount: 1, Seed: 42,
//	})
package algorithms
