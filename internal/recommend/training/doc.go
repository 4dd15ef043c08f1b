// ClosetMate - Wardrobe Management and Outfit Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/closetmate

// Package training builds a recommendation bundle from the outfit datasets.
//
// A run:
//
//  1. checks that both source files exist before reading anything
//  2. keeps the outfit sentences that mention top, bottom, and shoes (filtered corpus)
//  3. inner-joins them with the color/fabric table on outfit ID (merged corpus)
//  4. trains the sentence table over the merged sentences
//  5. trains the color/fabric table over every lower-cased color and fabric value
//  6. vectorizes every merged outfit
//  7. saves the bundle as the next store version
//
// Nothing is written unless every step succeeds.
package training
