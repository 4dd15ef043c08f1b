// ClosetMate - Wardrobe Management and Outfit Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/closetmate

// Package recommend completes outfits from a user's closet using learned
// embeddings of item descriptors and a corpus of historical outfits.
//
// # Architecture
//
// A descriptor such as "상의_white_cotton_반소매 티셔츠_남성_여름_casual" is
// turned into an item vector:
//
//	concat(mean(sentence tokens), color*color_weight, fabric*fabric_weight)
//
// The sentence and color/fabric tables come from a Bundle produced by the
// training package. The Engine averages the vectors of already-selected items
// into a target vector, then for every open slot scores each candidate as
//
//	corpus_weight*mean_cos(candidate, category sub-corpus) + target_weight*cos(candidate, target)
//
// and keeps the highest score, preferring the earlier candidate on ties.
//
// # Fallbacks
//
//   - Unknown tokens, colors, and fabrics contribute zero vectors.
//   - Candidates without a usable vector are skipped and reported in Result.Skipped.
//   - A category sub-corpus that matches nothing falls back to the whole corpus.
//
// # Failures
//
//   - DataUnavailableError: no bundle, or nothing selected and an empty corpus.
//   - RequiredCategoryUnresolvedError: top, bottom, or shoes has no pick.
//
// # Usage
//
//	loader := storage.NewLoader(store, 0, logger)
//	engine, err := recommend.NewEngine(recommend.DefaultConfig(), loader, logger)
//
//	res, err := engine.Recommend(ctx, recommend.BuildRequest(closet, map[recommend.Category]int{
//	    recommend.CategoryTop: 12,
//	}))
//
// # Thread Safety
//
// The engine is safe for concurrent use. Bundles are immutable after load.
package recommend
