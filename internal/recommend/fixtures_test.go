// ClosetMate - Wardrobe Management and Outfit Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/closetmate

package recommend

import (
	"context"
	"sync/atomic"
	"testing"

	"github.com/rs/zerolog"

	"github.com/tomtom215/closetmate/internal/recommend/corpus"
	"github.com/tomtom215/closetmate/internal/recommend/embedding"
)

// Test descriptors. White items align with every corpus outfit; black ones do not.
const (
	topWhite     = "상의_white_cotton_반소매 티셔츠_남성_여름_casual"
	bottomWhite  = "하의_white_cotton_면바지_남성_여름_casual"
	bottomBlack  = "하의_black_denim_청바지_남성_여름_street"
	shoesWhite   = "신발_white_cotton_스니커즈_남성_여름_casual"
	shoesBlack   = "신발_black_leather_로퍼_남성_여름_minimal"
	outerWhite   = "아우터_white_cotton_셔츠 자켓_남성_봄_casual"
	unknownThing = "가방_purple_silk_토트_여성_가을_minimal"
)

func testParams() Hyperparameters {
	return Hyperparameters{SentenceDim: 2, ColorFabricDim: 1, ColorWeight: 0.8, FabricWeight: 0.2, Seed: 42}
}

func testTables(t *testing.T) (*embedding.Table, *embedding.Table) {
	t.Helper()
	sentence, err := embedding.NewTable(2, map[string][]float64{
		"상의":    {1, 0},
		"하의":    {1, 0},
		"신발":    {1, 0},
		"아우터":   {1, 0},
		"white": {1, 0},
		"black": {0, 1},
	})
	if err != nil {
		t.Fatalf("sentence table: %v", err)
	}
	colorFabric, err := embedding.NewTable(1, map[string][]float64{
		"white":   {1},
		"black":   {-1},
		"cotton":  {1},
		"denim":   {-1},
		"leather": {-1},
	})
	if err != nil {
		t.Fatalf("color/fabric table: %v", err)
	}
	return sentence, colorFabric
}

// newTestBundle builds a bundle whose corpus is all-white outfits.
func newTestBundle(t *testing.T, sentences ...string) *Bundle {
	t.Helper()
	sentence, colorFabric := testTables(t)
	params := testParams()
	composer := NewComposer(sentence, colorFabric, params.ColorWeight, params.FabricWeight)

	if sentences == nil {
		sentences = []string{
			"상의 white 하의 white 신발 white",
			"상의 white 하의 white 신발 white 아우터 white",
		}
	}
	records := make([]corpus.Record, 0, len(sentences))
	for i, s := range sentences {
		records = append(records, corpus.Record{
			OutfitID: i + 1,
			Sentence: s,
			Color:    "white",
			Fabric:   "cotton",
			Vector:   composer.OutfitVector(s, "white", "cotton"),
		})
	}

	b, err := NewBundle("bundle-test", params, sentence, colorFabric, corpus.NewIndex(records), corpus.NewIndex(records))
	if err != nil {
		t.Fatalf("NewBundle() error = %v", err)
	}
	return b
}

// countingProvider serves a fixed bundle or error and counts calls.
type countingProvider struct {
	bundle *Bundle
	err    error
	calls  atomic.Int32
}

func (p *countingProvider) Bundle(_ context.Context) (*Bundle, error) {
	p.calls.Add(1)
	if p.err != nil {
		return nil, p.err
	}
	return p.bundle, nil
}

func newTestEngine(t *testing.T, provider BundleProvider) *Engine {
	t.Helper()
	e, err := NewEngine(DefaultConfig(), provider, zerolog.Nop())
	if err != nil {
		t.Fatalf("NewEngine() error = %v", err)
	}
	return e
}
