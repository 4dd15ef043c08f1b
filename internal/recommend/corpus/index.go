// ClosetMate - Wardrobe Management and Outfit Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/closetmate

// Package corpus stores historical outfits with their precomputed vectors
// and answers similarity queries against them.
//
// An Index is read-only after construction and safe for concurrent use.
package corpus

import (
	"strings"
)

// Record is one historical outfit.
type Record struct {
	// OutfitID is the coordination identifier from the source dataset.
	OutfitID int `json:"outfit_id"`

	// Sentence is the space-joined category and descriptor tokens of the outfit.
	Sentence string `json:"sentence"`

	// Color is the predicted dominant color. Empty in the filtered corpus.
	Color string `json:"color,omitempty"`

	// Fabric is the predicted dominant fabric. Empty in the filtered corpus.
	Fabric string `json:"fabric,omitempty"`

	// Vector is the precomputed item vector. Nil in the filtered corpus.
	Vector []float64 `json:"vector,omitempty"`
}

// Tokens splits the sentence on whitespace.
func (r *Record) Tokens() []string {
	return strings.Fields(r.Sentence)
}

// HasAllMarkers reports whether some token of the sentence starts with each marker.
func (r *Record) HasAllMarkers(markers []string) bool {
	tokens := r.Tokens()
	for _, marker := range markers {
		found := false
		for _, token := range tokens {
			if strings.HasPrefix(token, marker) {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

// Match is the result of a nearest-neighbor query.
type Match struct {
	Record     Record  `json:"record"`
	Similarity float64 `json:"similarity"`
}

// Accepted reports whether the match clears the acceptance threshold.
func (m Match) Accepted(threshold float64) bool {
	return m.Similarity >= threshold
}

// Index is an immutable list of records.
type Index struct {
	records []Record
}

// NewIndex creates an index over a copy of records.
func NewIndex(records []Record) *Index {
	return &Index{records: append([]Record(nil), records...)}
}

// Len returns the number of records.
func (x *Index) Len() int {
	if x == nil {
		return 0
	}
	return len(x.records)
}

// Records returns a copy of the records in insertion order.
func (x *Index) Records() []Record {
	if x == nil {
		return nil
	}
	return append([]Record(nil), x.records...)
}

// Vectors returns the record vectors in insertion order. The slices are shared.
func (x *Index) Vectors() [][]float64 {
	if x == nil {
		return nil
	}
	out := make([][]float64, len(x.records))
	for i := range x.records {
		out[i] = x.records[i].Vector
	}
	return out
}

// Nearest returns the record with the highest cosine similarity to target.
// The first record wins ties. ok is false when the index is empty.
func (x *Index) Nearest(target []float64) (Match, bool) {
	if x.Len() == 0 {
		return Match{}, false
	}
	best := 0
	bestSim := CosineSimilarity(target, x.records[0].Vector)
	for i := 1; i < len(x.records); i++ {
		sim := CosineSimilarity(target, x.records[i].Vector)
		if sim > bestSim {
			best, bestSim = i, sim
		}
	}
	return Match{Record: x.records[best], Similarity: bestSim}, true
}

// FilterByMarker returns the records whose sentence contains marker.
// When nothing matches, or marker is empty, the full index is returned so
// callers never get an empty working set from a non-empty corpus.
func (x *Index) FilterByMarker(marker string) *Index {
	if marker == "" || x.Len() == 0 {
		return x
	}
	filtered := make([]Record, 0, len(x.records))
	for i := range x.records {
		if strings.Contains(x.records[i].Sentence, marker) {
			filtered = append(filtered, x.records[i])
		}
	}
	if len(filtered) == 0 {
		return x
	}
	return &Index{records: filtered}
}

// Mean returns the mean record vector. ok is false when the index is empty.
func (x *Index) Mean() ([]float64, bool) {
	if x.Len() == 0 {
		return nil, false
	}
	return Mean(x.Vectors()), true
}

// AverageSimilarity returns the mean cosine similarity between v and every record.
// An empty index yields 0.
func (x *Index) AverageSimilarity(v []float64) float64 {
	if x.Len() == 0 {
		return 0
	}
	var sum float64
	for i := range x.records {
		sum += CosineSimilarity(v, x.records[i].Vector)
	}
	return sum / float64(len(x.records))
}
