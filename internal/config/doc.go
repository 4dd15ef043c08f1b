// ClosetMate - Wardrobe Management and Outfit Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/closetmate

/*
Package config provides centralized configuration management for ClosetMate.

Configuration is layered with Koanf v2: built-in defaults, then an optional
YAML file, then environment variables. The result is validated with struct
tags (internal/validation) and with the cross-field rules of the packages it
configures.

# Configuration Sources

  - Defaults: the reference training run (100/20 dims, 0.8/0.2 color/fabric
    weights, 0.7/0.3 scoring blend, 0.3 acceptance threshold)
  - YAML file: $CONFIG_PATH, then config.yaml, config.yml,
    /etc/closetmate/config.yaml, /etc/closetmate/config.yml
  - Environment variables (highest priority)

# Environment Variables

Logging:
  - LOG_LEVEL: trace, debug, info, warn, error (default: info)
  - LOG_FORMAT: json, console (default: json)
  - LOG_CALLER: include caller file:line (default: false)

Bundle store:
  - MODEL_DIR: bundle root directory (default: ./models)
  - MODEL_VERSION: version to serve, 0 for latest (default: 0)
  - MODEL_KEEP: versions retained by prune (default: 5)

Training:
  - TRAIN_SENTENCES_PATH, TRAIN_ATTRIBUTES_PATH: dataset CSV files
  - TRAIN_SENTENCE_DIM (100), TRAIN_COLOR_FABRIC_DIM (20)
  - TRAIN_COLOR_WEIGHT (0.8), TRAIN_FABRIC_WEIGHT (0.2)
  - TRAIN_SENTENCE_WINDOW (5), TRAIN_COLOR_FABRIC_WINDOW (2)
  - TRAIN_MIN_COUNT (1), TRAIN_SEED (42)
  - TRAIN_EPOCHS (5), TRAIN_NEGATIVE_SAMPLES (5)
  - TRAIN_LEARNING_RATE (0.025), TRAIN_MIN_LEARNING_RATE (0.0001)

Scoring:
  - RECOMMEND_CORPUS_WEIGHT (0.7), RECOMMEND_TARGET_WEIGHT (0.3)
  - RECOMMEND_ACCEPTANCE_THRESHOLD (0.3)
  - RECOMMEND_VECTOR_CACHE_SIZE (4096)

Unmapped environment variables are ignored.

# Example YAML

	model:
	  dir: /var/lib/closetmate/models
	training:
	  sentences_path: data/w2v_sentences.csv
	  attributes_path: data/color_fabric.csv
	  epochs: 10
	recommend:
	  corpus_weight: 0.6
	  target_weight: 0.4

# Usage

	cfg, err := config.LoadWithKoanf()
	if err != nil {
	    return err
	}
	logging.Init(cfg.LoggingConfig())
	trainer, err := algorithms.NewSkipGram(cfg.SkipGramConfig())
*/
package config
