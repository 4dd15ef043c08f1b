// ClosetMate - Wardrobe Management and Outfit Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/closetmate

package recommend

import (
	"strings"

	"github.com/tomtom215/closetmate/internal/recommend/embedding"
)

// Composer builds item vectors from descriptor text and two embedding tables.
// It holds no mutable state and is safe for concurrent use.
type Composer struct {
	sentence     *embedding.Table
	colorFabric  *embedding.Table
	colorWeight  float64
	fabricWeight float64
}

// NewComposer creates a composer.
func NewComposer(sentence, colorFabric *embedding.Table, colorWeight, fabricWeight float64) *Composer {
	return &Composer{
		sentence:     sentence,
		colorFabric:  colorFabric,
		colorWeight:  colorWeight,
		fabricWeight: fabricWeight,
	}
}

// Dim returns the item vector length.
func (c *Composer) Dim() int {
	return c.sentence.Dim() + 2*c.colorFabric.Dim()
}

// Composition is an item vector plus a record of which lookups fell back to zero.
type Composition struct {
	Vector      []float64
	Tokens      int
	KnownTokens int
	ColorKnown  bool
	FabricKnown bool
}

// FullyUnknown reports whether every segment of the vector is a zero fallback.
func (c Composition) FullyUnknown() bool {
	return c.KnownTokens == 0 && !c.ColorKnown && !c.FabricKnown
}

// ItemVector returns concat(sentence mean, color*color_weight, fabric*fabric_weight)
// for a descriptor.
func (c *Composer) ItemVector(descriptor string) []float64 {
	return c.Compose(descriptor).Vector
}

// Compose builds the item vector for a descriptor and reports fallbacks.
func (c *Composer) Compose(descriptor string) Composition {
	fields := ParseDescriptor(descriptor)
	return c.compose(Tokenize(descriptor), fields.Color, fields.Fabric)
}

// OutfitVector builds the vector for a corpus row. The sentence is split on
// whitespace only, matching how the sentence table was trained.
func (c *Composer) OutfitVector(sentence, color, fabric string) []float64 {
	return c.compose(strings.Fields(sentence), color, fabric).Vector
}

func (c *Composer) compose(tokens []string, color, fabric string) Composition {
	sentenceVec, known := c.sentence.SentenceVector(tokens)
	colorVec, colorKnown := c.colorFabric.LookupFold(color)
	fabricVec, fabricKnown := c.colorFabric.LookupFold(fabric)

	out := make([]float64, 0, c.Dim())
	out = append(out, sentenceVec...)
	for _, v := range colorVec {
		out = append(out, v*c.colorWeight)
	}
	for _, v := range fabricVec {
		out = append(out, v*c.fabricWeight)
	}

	return Composition{
		Vector:      out,
		Tokens:      len(tokens),
		KnownTokens: known,
		ColorKnown:  colorKnown,
		FabricKnown: fabricKnown,
	}
}
