// ClosetMate - Wardrobe Management and Outfit Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/closetmate

// Package storage persists trained bundles and loads them back for serving.
//
// # Storage Format
//
// Each bundle version lives in its own directory:
//
//	/data/models/
//	  v1/
//	  v2/                      <- latest
//	    manifest.json          bundle ID, version, counts, per-file checksums
//	    params.json            hyperparameters
//	    sentence.gob.gz        sentence embedding table
//	    color_fabric.gob.gz    color/fabric embedding table
//	    corpus_merged.gob.gz   merged corpus with vectors
//	    corpus_filtered.gob.gz category-complete corpus
//
// Tables and corpora are gob-encoded and gzip-compressed. The manifest records
// the SHA-256 of every file; Load verifies them all before building the bundle.
//
// A version directory is written under a temporary name and renamed into
// place, so readers never see a half-written bundle.
//
// # Loading
//
// Loader is the caller-owned handle the recommend Engine reads from:
//
//	store, err := storage.NewStore(cfg.Model.Dir)
//	loader := storage.NewLoader(store, cfg.Model.Version, logger)
//	engine, err := recommend.NewEngine(recCfg, loader, logger)
//
// The first Bundle call loads from disk. A failed load leaves the loader
// empty so the next call retries.
package storage
