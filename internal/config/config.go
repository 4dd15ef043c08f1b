// ClosetMate - Wardrobe Management and Outfit Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/closetmate

package config

import (
	"github.com/tomtom215/closetmate/internal/logging"
	"github.com/tomtom215/closetmate/internal/recommend"
	"github.com/tomtom215/closetmate/internal/recommend/algorithms"
	"github.com/tomtom215/closetmate/internal/recommend/training"
)

// Config holds all application configuration loaded from defaults, an optional
// YAML file, and environment variables.
//
// Configuration Loading Order (Koanf v2):
//  1. Defaults: Built-in values matching the reference training run
//  2. Config File: Optional YAML config file (config.yaml)
//  3. Environment Variables: Override any setting
//
// Configuration Categories:
//   - Logging: Log level and output format
//   - Model: Where trained bundles live and which version to serve
//   - Training: Dataset paths and embedding hyperparameters
//   - Recommend: Scoring blend and acceptance threshold
//
// Example:
//
//	cfg, err := config.LoadWithKoanf()
//	if err != nil {
//	    return err
//	}
//	logging.Init(cfg.LoggingConfig())
//	engine, err := recommend.NewEngine(cfg.EngineConfig(), loader, logger)
//
// Thread Safety:
// Config is immutable after LoadWithKoanf() and safe for concurrent read access.
type Config struct {
	Logging   LoggingConfig   `koanf:"logging"`
	Model     ModelConfig     `koanf:"model"`
	Training  TrainingConfig  `koanf:"training"`
	Recommend RecommendConfig `koanf:"recommend"`
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	// Level is the minimum log level: trace, debug, info, warn, error.
	// Default: info
	Level string `koanf:"level" validate:"loglevel"`

	// Format is the output format: json or console.
	// Default: json
	Format string `koanf:"format" validate:"oneof=json console"`

	// Caller includes caller file and line number in logs.
	// Default: false
	Caller bool `koanf:"caller"`
}

// ModelConfig locates trained bundles.
type ModelConfig struct {
	// Dir is the bundle store root. Each version lives in Dir/v<N>.
	// Default: ./models
	Dir string `koanf:"dir" validate:"required"`

	// Version pins the bundle served by recommend and inspect. 0 serves the latest.
	// Default: 0
	Version int `koanf:"version" validate:"gte=0"`

	// Keep is how many versions prune retains. 0 disables pruning.
	// Default: 5
	Keep int `koanf:"keep" validate:"gte=0"`
}

// TrainingConfig holds the dataset locations and the embedding hyperparameters.
type TrainingConfig struct {
	// SentencesPath is the CSV of outfit sentences (outfit_id, sentence_text).
	SentencesPath string `koanf:"sentences_path"`

	// AttributesPath is the CSV of per-outfit color and fabric (outfit_id, predicted_color, predicted_fabric).
	AttributesPath string `koanf:"attributes_path"`

	// SentenceDim is the sentence embedding length.
	// Default: 100
	SentenceDim int `koanf:"sentence_dim" validate:"min=1,max=1024"`

	// ColorFabricDim is the color/fabric embedding length.
	// Default: 20
	ColorFabricDim int `koanf:"color_fabric_dim" validate:"min=1,max=1024"`

	// ColorWeight scales the color segment of an item vector.
	// Default: 0.8
	ColorWeight float64 `koanf:"color_weight" validate:"gte=0"`

	// FabricWeight scales the fabric segment of an item vector.
	// Default: 0.2
	FabricWeight float64 `koanf:"fabric_weight" validate:"gte=0"`

	// SentenceWindow is the skip-gram window for the sentence table.
	// Default: 5
	SentenceWindow int `koanf:"sentence_window" validate:"min=1,max=50"`

	// ColorFabricWindow is the skip-gram window for the color/fabric table.
	// Default: 2
	ColorFabricWindow int `koanf:"color_fabric_window" validate:"min=1,max=50"`

	// MinCount drops tokens seen fewer times than this.
	// Default: 1
	MinCount int `koanf:"min_count" validate:"min=1"`

	// Seed makes training reproducible.
	// Default: 42
	Seed int64 `koanf:"seed"`

	// Epochs is the number of skip-gram passes over each corpus.
	// Default: 5
	Epochs int `koanf:"epochs" validate:"min=1"`

	// NegativeSamples is how many noise tokens are drawn per positive pair.
	// Default: 5
	NegativeSamples int `koanf:"negative_samples" validate:"min=1"`

	// LearningRate is the initial SGD step size.
	// Default: 0.025
	LearningRate float64 `koanf:"learning_rate" validate:"gt=0"`

	// MinLearningRate is the floor the step size decays to.
	// Default: 0.0001
	MinLearningRate float64 `koanf:"min_learning_rate" validate:"gte=0"`
}

// RecommendConfig holds scoring parameters for the engine.
type RecommendConfig struct {
	// CorpusWeight scales the sub-corpus similarity term.
	// Default: 0.7
	CorpusWeight float64 `koanf:"corpus_weight" validate:"gte=0,lte=1"`

	// TargetWeight scales the target similarity term.
	// Default: 0.3
	TargetWeight float64 `koanf:"target_weight" validate:"gte=0,lte=1"`

	// AcceptanceThreshold is the minimum similarity for a nearest-outfit match.
	// Default: 0.3
	AcceptanceThreshold float64 `koanf:"acceptance_threshold" validate:"gte=-1,lte=1"`

	// VectorCacheSize bounds the item vector memo. 0 disables it.
	// Default: 4096
	VectorCacheSize int `koanf:"vector_cache_size" validate:"gte=0"`
}

// LoggingConfig converts the logging section for logging.Init.
func (c *Config) LoggingConfig() logging.Config {
	cfg := logging.DefaultConfig()
	cfg.Level = c.Logging.Level
	cfg.Format = c.Logging.Format
	cfg.Caller = c.Logging.Caller
	return cfg
}

// EngineConfig converts the recommend section for recommend.NewEngine.
func (c *Config) EngineConfig() *recommend.Config {
	return &recommend.Config{
		CorpusWeight:        c.Recommend.CorpusWeight,
		TargetWeight:        c.Recommend.TargetWeight,
		AcceptanceThreshold: c.Recommend.AcceptanceThreshold,
		VectorCacheSize:     c.Recommend.VectorCacheSize,
	}
}

// Hyperparameters converts the training section into bundle hyperparameters.
func (c *Config) Hyperparameters() recommend.Hyperparameters {
	return recommend.Hyperparameters{
		SentenceDim:       c.Training.SentenceDim,
		ColorFabricDim:    c.Training.ColorFabricDim,
		ColorWeight:       c.Training.ColorWeight,
		FabricWeight:      c.Training.FabricWeight,
		SentenceWindow:    c.Training.SentenceWindow,
		ColorFabricWindow: c.Training.ColorFabricWindow,
		MinCount:          c.Training.MinCount,
		Seed:              c.Training.Seed,
	}
}

// SkipGramConfig converts the optimizer settings for algorithms.NewSkipGram.
func (c *Config) SkipGramConfig() algorithms.SkipGramConfig {
	return algorithms.SkipGramConfig{
		Epochs:          c.Training.Epochs,
		NegativeSamples: c.Training.NegativeSamples,
		LearningRate:    c.Training.LearningRate,
		MinLearningRate: c.Training.MinLearningRate,
	}
}

// Sources returns the dataset paths for the training pipeline.
func (c *Config) Sources() training.Sources {
	return training.Sources{
		SentencesPath:  c.Training.SentencesPath,
		AttributesPath: c.Training.AttributesPath,
	}
}
