// ClosetMate - Wardrobe Management and Outfit Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/closetmate

// Package main is the closetmate command line tool.
//
// It trains outfit embedding bundles from the historical outfit datasets,
// serves recommendations against a stored bundle, and inspects the bundle store.
//
// # Commands
//
//	closetmate train      Train a bundle from the sentence and attribute CSVs
//	closetmate recommend  Complete an outfit described by a JSON request
//	closetmate inspect    Show a bundle manifest or the nearest historical outfit
//	closetmate list       List stored bundle versions
//	closetmate prune      Delete all but the newest bundle versions
//
// # Configuration
//
// Configuration is loaded via Koanf v2 with layered sources (highest priority wins):
//   - Command flags (--model-dir, --sentences, ...)
//   - Environment variables (LOG_LEVEL, MODEL_DIR, TRAIN_*, RECOMMEND_*)
//   - Config file (--config, $CONFIG_PATH, or config.yaml)
//   - Built-in defaults
//
// # Example Usage
//
// Train a bundle:
//
//	closetmate --model-dir ./models train \
//	    --sentences data/w2v_sentences.csv \
//	    --attributes data/color_fabric.csv
//
// Complete an outfit:
//
//	closetmate recommend --request request.json
//
// where request.json looks like:
//
//	{
//	  "selected": {"top": {"id": 12, "descriptor": "상의_화이트_코튼_..."}},
//	  "available": {
//	    "bottom": [{"id": 31, "descriptor": "하의_블랙_데님_..."}],
//	    "shoes": [{"id": 40, "descriptor": "신발_화이트_가죽_..."}]
//	  }
//	}
//
// # Signal Handling
//
// SIGINT and SIGTERM cancel the command context. Training stops between
// epochs and no partial bundle is published.
package main
