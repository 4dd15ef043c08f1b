// ClosetMate - Wardrobe Management and Outfit Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/closetmate

package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"

	"github.com/tomtom215/closetmate/internal/recommend"
	"github.com/tomtom215/closetmate/internal/recommend/algorithms"
)

// DefaultConfigPaths lists the paths where config files are searched in order of priority.
// The first file found will be used.
var DefaultConfigPaths = []string{
	"config.yaml",
	"config.yml",
	"/etc/closetmate/config.yaml",
	"/etc/closetmate/config.yml",
}

// ConfigPathEnvVar is the environment variable that can override the config file path.
const ConfigPathEnvVar = "CONFIG_PATH"

// defaultConfig returns a Config struct with all default values.
// These defaults are applied first, then overridden by config file and env vars.
func defaultConfig() *Config {
	params := recommend.DefaultHyperparameters()
	engine := recommend.DefaultConfig()
	sgns := algorithms.DefaultSkipGramConfig()

	return &Config{
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
			Caller: false,
		},
		Model: ModelConfig{
			Dir:     "./models",
			Version: 0, // latest
			Keep:    5,
		},
		Training: TrainingConfig{
			SentencesPath:     "",
			AttributesPath:    "",
			SentenceDim:       params.SentenceDim,
			ColorFabricDim:    params.ColorFabricDim,
			ColorWeight:       params.ColorWeight,
			FabricWeight:      params.FabricWeight,
			SentenceWindow:    params.SentenceWindow,
			ColorFabricWindow: params.ColorFabricWindow,
			MinCount:          params.MinCount,
			Seed:              params.Seed,
			Epochs:            sgns.Epochs,
			NegativeSamples:   sgns.NegativeSamples,
			LearningRate:      sgns.LearningRate,
			MinLearningRate:   sgns.MinLearningRate,
		},
		Recommend: RecommendConfig{
			CorpusWeight:        engine.CorpusWeight,
			TargetWeight:        engine.TargetWeight,
			AcceptanceThreshold: engine.AcceptanceThreshold,
			VectorCacheSize:     engine.VectorCacheSize,
		},
	}
}

// LoadWithKoanf loads configuration using Koanf v2 with layered sources:
//  1. Defaults: Built-in defaults
//  2. Config File: Optional YAML config file (if exists)
//  3. Environment Variables: Override any setting
func LoadWithKoanf() (*Config, error) {
	k := koanf.New(".")

	// Layer 1: Load defaults from struct
	if err := k.Load(structs.Provider(defaultConfig(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	// Layer 2: Load config file (optional)
	configPath := findConfigFile()
	if configPath != "" {
		if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
	}

	// Layer 3: Load environment variables (highest priority)
	// MODEL_DIR -> model.dir
	// TRAIN_SENTENCE_DIM -> training.sentence_dim
	if err := k.Load(env.Provider("", ".", envTransformFunc), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// findConfigFile searches for a config file in the default paths.
// Returns the path to the first file found, or empty string if none found.
func findConfigFile() string {
	// Check environment variable first
	if envPath := os.Getenv(ConfigPathEnvVar); envPath != "" {
		if _, err := os.Stat(envPath); err == nil {
			return envPath
		}
	}

	for _, path := range DefaultConfigPaths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}

	return ""
}

// envMappings maps environment variable names (lower-cased) to koanf paths.
var envMappings = map[string]string{
	// Logging
	"log_level":  "logging.level",
	"log_format": "logging.format",
	"log_caller": "logging.caller",

	// Bundle store
	"model_dir":     "model.dir",
	"model_version": "model.version",
	"model_keep":    "model.keep",

	// Training datasets
	"train_sentences_path":  "training.sentences_path",
	"train_attributes_path": "training.attributes_path",

	// Embedding hyperparameters
	"train_sentence_dim":        "training.sentence_dim",
	"train_color_fabric_dim":    "training.color_fabric_dim",
	"train_color_weight":        "training.color_weight",
	"train_fabric_weight":       "training.fabric_weight",
	"train_sentence_window":     "training.sentence_window",
	"train_color_fabric_window": "training.color_fabric_window",
	"train_min_count":           "training.min_count",
	"train_seed":                "training.seed",
	"train_epochs":              "training.epochs",
	"train_negative_samples":    "training.negative_samples",
	"train_learning_rate":       "training.learning_rate",
	"train_min_learning_rate":   "training.min_learning_rate",

	// Scoring
	"recommend_corpus_weight":        "recommend.corpus_weight",
	"recommend_target_weight":        "recommend.target_weight",
	"recommend_acceptance_threshold": "recommend.acceptance_threshold",
	"recommend_vector_cache_size":    "recommend.vector_cache_size",
}

// envTransformFunc transforms environment variable names to koanf config paths.
//
// Examples:
//   - LOG_LEVEL -> logging.level
//   - MODEL_DIR -> model.dir
//   - TRAIN_SENTENCE_DIM -> training.sentence_dim
//   - RECOMMEND_CORPUS_WEIGHT -> recommend.corpus_weight
func envTransformFunc(key string) string {
	if mapped, ok := envMappings[strings.ToLower(key)]; ok {
		return mapped
	}

	// For unmapped keys, return empty string to skip them
	// This prevents random environment variables from polluting config
	return ""
}
