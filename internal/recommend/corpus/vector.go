// ClosetMate - Wardrobe Management and Outfit Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/closetmate

package corpus

import "math"

// CosineSimilarity returns dot(a,b) / (|a| * |b|).
// Mismatched lengths, empty vectors, and zero vectors yield 0.
func CosineSimilarity(a, b []float64) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}

	var dot, normA, normB float64
	for i := range a {
		dot += a[i] * b[i]
		normA += a[i] * a[i]
		normB += b[i] * b[i]
	}

	if normA == 0 || normB == 0 {
		return 0
	}

	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}

// Mean returns the component-wise mean of vectors, or nil when vectors is empty.
// All vectors must share the length of the first one; shorter ones contribute zeros.
func Mean(vectors [][]float64) []float64 {
	if len(vectors) == 0 {
		return nil
	}
	out := make([]float64, len(vectors[0]))
	for _, vec := range vectors {
		for i := 0; i < len(out) && i < len(vec); i++ {
			out[i] += vec[i]
		}
	}
	inv := 1.0 / float64(len(vectors))
	for i := range out {
		out[i] *= inv
	}
	return out
}
