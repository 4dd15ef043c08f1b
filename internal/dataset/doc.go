// ClosetMate - Wardrobe Management and Outfit Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/closetmate

// Package dataset reads the tabular training sources through an in-memory
// DuckDB connection.
//
// Two CSV files feed training:
//
//	outfit sentences:  outfit_id, sentence_text
//	outfit attributes: outfit_id, predicted_color, predicted_fabric
//
// Column names are matched case-insensitively and a few historical aliases
// are accepted (coord_id for the identifier, w2v_sentence for the sentence).
// Rows without a numeric identifier are dropped; missing text becomes "".
package dataset
