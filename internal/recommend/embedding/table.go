// ClosetMate - Wardrobe Management and Outfit Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/closetmate

// Package embedding holds trained word-vector tables and the lookup rules
// used to turn descriptor tokens into vectors.
//
// Lookups never fail. A token missing from the vocabulary yields a zero
// vector of the table's dimension, so unseen colors, fabrics, or descriptor
// words degrade the score instead of aborting a recommendation.
package embedding

import (
	"fmt"
	"sort"
	"strings"
)

// Table maps tokens to fixed-length vectors. It is immutable once built.
type Table struct {
	dim     int
	vectors map[string][]float64
}

// NewTable creates a table from trained vectors.
// Every vector must have length dim.
func NewTable(dim int, vectors map[string][]float64) (*Table, error) {
	if dim < 1 {
		return nil, fmt.Errorf("embedding dimension must be positive, got %d", dim)
	}
	copied := make(map[string][]float64, len(vectors))
	for token, vec := range vectors {
		if len(vec) != dim {
			return nil, fmt.Errorf("token %q has %d components, want %d", token, len(vec), dim)
		}
		copied[token] = append([]float64(nil), vec...)
	}
	return &Table{dim: dim, vectors: copied}, nil
}

// Dim returns the vector length.
func (t *Table) Dim() int {
	return t.dim
}

// Len returns the vocabulary size.
func (t *Table) Len() int {
	return len(t.vectors)
}

// Contains reports whether token is in the vocabulary.
func (t *Table) Contains(token string) bool {
	_, ok := t.vectors[token]
	return ok
}

// Vocabulary returns every token in sorted order.
func (t *Table) Vocabulary() []string {
	tokens := make([]string, 0, len(t.vectors))
	for token := range t.vectors {
		tokens = append(tokens, token)
	}
	sort.Strings(tokens)
	return tokens
}

// Lookup returns a copy of the vector for token and whether it was found.
// A miss returns a zero vector of length Dim.
func (t *Table) Lookup(token string) ([]float64, bool) {
	out := make([]float64, t.dim)
	vec, ok := t.vectors[token]
	if ok {
		copy(out, vec)
	}
	return out, ok
}

// LookupFold lower-cases token before looking it up.
// Color and fabric tables are trained on lower-cased values.
func (t *Table) LookupFold(token string) ([]float64, bool) {
	return t.Lookup(strings.ToLower(token))
}

// SentenceVector averages the vectors of the in-vocabulary tokens.
// It returns a zero vector when no token is known, along with the count of known tokens.
func (t *Table) SentenceVector(tokens []string) ([]float64, int) {
	sum := make([]float64, t.dim)
	found := 0
	for _, token := range tokens {
		vec, ok := t.vectors[token]
		if !ok {
			continue
		}
		for i, v := range vec {
			sum[i] += v
		}
		found++
	}
	if found == 0 {
		return sum, 0
	}
	inv := 1.0 / float64(found)
	for i := range sum {
		sum[i] *= inv
	}
	return sum, found
}

// Export returns a copy of the vocabulary and vectors for persistence.
func (t *Table) Export() map[string][]float64 {
	out := make(map[string][]float64, len(t.vectors))
	for token, vec := range t.vectors {
		out[token] = append([]float64(nil), vec...)
	}
	return out
}
