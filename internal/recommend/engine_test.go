// ClosetMate - Wardrobe Management and Outfit Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/closetmate

package recommend

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/rs/zerolog"

	"github.com/tomtom215/closetmate/internal/logging"
)

func mustItemID(t *testing.T, res *Result, c Category) int {
	t.Helper()
	id, ok := res.ItemID(c)
	if !ok {
		t.Fatalf("expected %s to be resolved", c)
	}
	return id
}

func TestNewEngine(t *testing.T) {
	provider := StaticProvider{}

	if _, err := NewEngine(nil, provider, zerolog.Nop()); err != nil {
		t.Errorf("nil config should use defaults, got %v", err)
	}

	bad := DefaultConfig()
	bad.CorpusWeight = 2
	if _, err := NewEngine(bad, provider, zerolog.Nop()); err == nil {
		t.Error("expected error for invalid config")
	}

	if _, err := NewEngine(DefaultConfig(), nil, zerolog.Nop()); err == nil {
		t.Error("expected error for nil provider")
	}
}

func TestEngine_Recommend_SelectedTopFillsRest(t *testing.T) {
	e := newTestEngine(t, StaticProvider{B: newTestBundle(t)})

	var req Request
	req.Selected[CategoryTop] = &Item{ID: 1, Descriptor: topWhite}
	req.Available[CategoryBottom] = []Item{{ID: 2, Descriptor: bottomWhite}}
	req.Available[CategoryShoes] = []Item{{ID: 3, Descriptor: shoesWhite}}
	req.Available[CategoryOuter] = []Item{}

	res, err := e.Recommend(context.Background(), req)
	if err != nil {
		t.Fatalf("Recommend() error = %v", err)
	}

	if got := mustItemID(t, res, CategoryTop); got != 1 {
		t.Errorf("top = %d, want 1", got)
	}
	if got := mustItemID(t, res, CategoryBottom); got != 2 {
		t.Errorf("bottom = %d, want 2", got)
	}
	if got := mustItemID(t, res, CategoryShoes); got != 3 {
		t.Errorf("shoes = %d, want 3", got)
	}
	if _, ok := res.ItemID(CategoryOuter); ok {
		t.Error("expected outer to be empty")
	}
	if res.Picks[CategoryTop].Source != PickSelected {
		t.Errorf("top source = %v, want selected", res.Picks[CategoryTop].Source)
	}
	if res.BundleID != "bundle-test" {
		t.Errorf("BundleID = %q", res.BundleID)
	}
}

func TestEngine_Recommend_PicksBestScore(t *testing.T) {
	e := newTestEngine(t, StaticProvider{B: newTestBundle(t)})

	var req Request
	req.Available[CategoryTop] = []Item{{ID: 1, Descriptor: topWhite}}
	// The weaker candidate comes first so order alone cannot explain the pick.
	req.Available[CategoryBottom] = []Item{{ID: 20, Descriptor: bottomBlack}, {ID: 21, Descriptor: bottomWhite}}
	req.Available[CategoryShoes] = []Item{{ID: 30, Descriptor: shoesBlack}, {ID: 31, Descriptor: shoesWhite}}
	req.Available[CategoryOuter] = []Item{{ID: 40, Descriptor: outerWhite}}

	res, err := e.Recommend(context.Background(), req)
	if err != nil {
		t.Fatalf("Recommend() error = %v", err)
	}

	if got := mustItemID(t, res, CategoryBottom); got != 21 {
		t.Errorf("bottom = %d, want 21", got)
	}
	if got := mustItemID(t, res, CategoryShoes); got != 31 {
		t.Errorf("shoes = %d, want 31", got)
	}
	if got := mustItemID(t, res, CategoryOuter); got != 40 {
		t.Errorf("outer = %d, want 40", got)
	}
	if res.Picks[CategoryBottom].Candidates != 2 {
		t.Errorf("bottom candidates = %d, want 2", res.Picks[CategoryBottom].Candidates)
	}
	// White candidates match the corpus and the corpus-mean target exactly.
	if score := res.Picks[CategoryBottom].Score; score < 0.999 || score > 1.001 {
		t.Errorf("bottom score = %v, want 1", score)
	}
}

func TestEngine_Recommend_TieKeepsFirst(t *testing.T) {
	e := newTestEngine(t, StaticProvider{B: newTestBundle(t)})

	var req Request
	req.Available[CategoryTop] = []Item{{ID: 5, Descriptor: topWhite}, {ID: 4, Descriptor: topWhite}}
	req.Available[CategoryBottom] = []Item{{ID: 7, Descriptor: bottomBlack}, {ID: 6, Descriptor: bottomBlack}}
	req.Available[CategoryShoes] = []Item{{ID: 9, Descriptor: shoesWhite}, {ID: 8, Descriptor: shoesWhite}}

	res, err := e.Recommend(context.Background(), req)
	if err != nil {
		t.Fatalf("Recommend() error = %v", err)
	}

	for c, want := range map[Category]int{CategoryTop: 5, CategoryBottom: 7, CategoryShoes: 9} {
		if got := mustItemID(t, res, c); got != want {
			t.Errorf("%s = %d, want %d (first in input order)", c, got, want)
		}
	}
}

func TestEngine_Recommend_SelectedPassthrough(t *testing.T) {
	e := newTestEngine(t, StaticProvider{B: newTestBundle(t)})

	var req Request
	req.Selected[CategoryTop] = &Item{ID: 1, Descriptor: topWhite}
	req.Selected[CategoryBottom] = &Item{ID: 99, Descriptor: bottomBlack}
	req.Selected[CategoryShoes] = &Item{ID: 77, Descriptor: ""}
	// Pools for selected slots are ignored.
	req.Available[CategoryBottom] = []Item{{ID: 2, Descriptor: bottomWhite}}
	req.Available[CategoryShoes] = []Item{{ID: 3, Descriptor: shoesWhite}}

	res, err := e.Recommend(context.Background(), req)
	if err != nil {
		t.Fatalf("Recommend() error = %v", err)
	}

	if got := mustItemID(t, res, CategoryBottom); got != 99 {
		t.Errorf("bottom = %d, want 99", got)
	}
	if got := mustItemID(t, res, CategoryShoes); got != 77 {
		t.Errorf("shoes = %d, want 77", got)
	}
}

func TestEngine_Recommend_RequiredCategoryUnresolved(t *testing.T) {
	e := newTestEngine(t, StaticProvider{B: newTestBundle(t)})

	tests := []struct {
		name     string
		build    func() Request
		category Category
		offered  int
		skipped  int
	}{
		{
			name: "empty top pool and no selection",
			build: func() Request {
				var req Request
				req.Available[CategoryTop] = []Item{}
				req.Available[CategoryBottom] = []Item{{ID: 2, Descriptor: bottomWhite}}
				req.Available[CategoryShoes] = []Item{{ID: 3, Descriptor: shoesWhite}}
				req.Available[CategoryOuter] = []Item{{ID: 4, Descriptor: outerWhite}}
				return req
			},
			category: CategoryTop,
		},
		{
			name: "every shoes candidate skipped",
			build: func() Request {
				var req Request
				req.Selected[CategoryTop] = &Item{ID: 1, Descriptor: topWhite}
				req.Available[CategoryBottom] = []Item{{ID: 2, Descriptor: bottomWhite}}
				req.Available[CategoryShoes] = []Item{{ID: 3, Descriptor: "   "}}
				return req
			},
			category: CategoryShoes,
			offered:  1,
			skipped:  1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := e.Recommend(context.Background(), tt.build())
			if res != nil {
				t.Error("expected nil result on failure")
			}
			if !errors.Is(err, ErrRequiredCategoryUnresolved) {
				t.Fatalf("expected ErrRequiredCategoryUnresolved, got %v", err)
			}
			var rerr *RequiredCategoryUnresolvedError
			if !errors.As(err, &rerr) {
				t.Fatalf("expected *RequiredCategoryUnresolvedError, got %T", err)
			}
			if rerr.Category != tt.category {
				t.Errorf("Category = %s, want %s", rerr.Category, tt.category)
			}
			if rerr.Offered != tt.offered || rerr.Skipped != tt.skipped {
				t.Errorf("Offered/Skipped = %d/%d, want %d/%d", rerr.Offered, rerr.Skipped, tt.offered, tt.skipped)
			}
		})
	}
}

func TestEngine_Recommend_OuterOptional(t *testing.T) {
	e := newTestEngine(t, StaticProvider{B: newTestBundle(t)})

	var req Request
	req.Available[CategoryTop] = []Item{{ID: 1, Descriptor: topWhite}}
	req.Available[CategoryBottom] = []Item{{ID: 2, Descriptor: bottomWhite}}
	req.Available[CategoryShoes] = []Item{{ID: 3, Descriptor: shoesWhite}}

	res, err := e.Recommend(context.Background(), req)
	if err != nil {
		t.Fatalf("Recommend() error = %v", err)
	}
	if res.Outfit()["outer"] != nil {
		t.Error("expected outer to be null")
	}
}

func TestEngine_Recommend_SkipsUnusableCandidates(t *testing.T) {
	e := newTestEngine(t, StaticProvider{B: newTestBundle(t)})

	var req Request
	req.Selected[CategoryTop] = &Item{ID: 1, Descriptor: topWhite}
	req.Available[CategoryBottom] = []Item{{ID: 20, Descriptor: ""}, {ID: 21, Descriptor: bottomBlack}}
	req.Available[CategoryShoes] = []Item{{ID: 3, Descriptor: shoesWhite}}

	res, err := e.Recommend(context.Background(), req)
	if err != nil {
		t.Fatalf("Recommend() error = %v", err)
	}

	if got := mustItemID(t, res, CategoryBottom); got != 21 {
		t.Errorf("bottom = %d, want 21", got)
	}
	if len(res.Skipped) != 1 {
		t.Fatalf("Skipped = %d entries, want 1", len(res.Skipped))
	}
	skip := res.Skipped[0]
	if skip.ItemID != 20 || skip.Category != CategoryBottom {
		t.Errorf("unexpected skip %+v", skip)
	}
	if !errors.Is(skip, ErrCandidateVectorization) {
		t.Error("skip should match ErrCandidateVectorization")
	}
}

func TestEngine_Recommend_UnknownTokensStillScore(t *testing.T) {
	e := newTestEngine(t, StaticProvider{B: newTestBundle(t)})

	var req Request
	req.Available[CategoryTop] = []Item{{ID: 1, Descriptor: unknownThing}}
	req.Available[CategoryBottom] = []Item{{ID: 2, Descriptor: bottomWhite}}
	req.Available[CategoryShoes] = []Item{{ID: 3, Descriptor: shoesWhite}}

	res, err := e.Recommend(context.Background(), req)
	if err != nil {
		t.Fatalf("Recommend() error = %v", err)
	}
	if got := mustItemID(t, res, CategoryTop); got != 1 {
		t.Errorf("top = %d, want 1", got)
	}
	if len(res.Skipped) != 0 {
		t.Errorf("unknown tokens must not be skipped, got %+v", res.Skipped)
	}
}

func TestEngine_Recommend_DataUnavailable(t *testing.T) {
	tests := []struct {
		name     string
		provider BundleProvider
	}{
		{"provider error", &countingProvider{err: errors.New("disk gone")}},
		{"no bundle configured", StaticProvider{}},
		{"empty corpus and nothing selected", StaticProvider{B: newTestBundle(t, []string{}...)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := newTestEngine(t, tt.provider)

			var req Request
			req.Available[CategoryTop] = []Item{{ID: 1, Descriptor: topWhite}}
			req.Available[CategoryBottom] = []Item{{ID: 2, Descriptor: bottomWhite}}
			req.Available[CategoryShoes] = []Item{{ID: 3, Descriptor: shoesWhite}}

			_, err := e.Recommend(context.Background(), req)
			if !errors.Is(err, ErrDataUnavailable) {
				t.Errorf("expected ErrDataUnavailable, got %v", err)
			}
		})
	}
}

func TestEngine_Recommend_EmptyCorpusWithSelection(t *testing.T) {
	e := newTestEngine(t, StaticProvider{B: newTestBundle(t, []string{}...)})

	var req Request
	req.Selected[CategoryTop] = &Item{ID: 1, Descriptor: topWhite}
	req.Available[CategoryBottom] = []Item{{ID: 20, Descriptor: bottomBlack}, {ID: 21, Descriptor: bottomWhite}}
	req.Available[CategoryShoes] = []Item{{ID: 3, Descriptor: shoesWhite}}

	res, err := e.Recommend(context.Background(), req)
	if err != nil {
		t.Fatalf("Recommend() error = %v", err)
	}
	// With no corpus only the target term counts.
	if got := mustItemID(t, res, CategoryBottom); got != 21 {
		t.Errorf("bottom = %d, want 21", got)
	}
}

func TestEngine_Recommend_Deterministic(t *testing.T) {
	e := newTestEngine(t, StaticProvider{B: newTestBundle(t)})

	var req Request
	req.Available[CategoryTop] = []Item{{ID: 1, Descriptor: topWhite}, {ID: 11, Descriptor: unknownThing}}
	req.Available[CategoryBottom] = []Item{{ID: 20, Descriptor: bottomBlack}, {ID: 21, Descriptor: bottomWhite}}
	req.Available[CategoryShoes] = []Item{{ID: 30, Descriptor: shoesBlack}, {ID: 31, Descriptor: shoesWhite}}
	req.Available[CategoryOuter] = []Item{{ID: 40, Descriptor: outerWhite}}

	first, err := e.Recommend(context.Background(), req)
	if err != nil {
		t.Fatalf("Recommend() error = %v", err)
	}

	var wg sync.WaitGroup
	errs := make(chan string, 20)
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			res, err := e.Recommend(context.Background(), req)
			if err != nil {
				errs <- err.Error()
				return
			}
			for _, c := range Categories {
				if res.Picks[c].ItemID != first.Picks[c].ItemID || res.Picks[c].Score != first.Picks[c].Score {
					errs <- c.String() + " differs between calls"
				}
			}
		}()
	}
	wg.Wait()
	close(errs)

	for msg := range errs {
		t.Error(msg)
	}
}

func TestEngine_Recommend_RequestID(t *testing.T) {
	e := newTestEngine(t, StaticProvider{B: newTestBundle(t)})

	var req Request
	req.Available[CategoryTop] = []Item{{ID: 1, Descriptor: topWhite}}
	req.Available[CategoryBottom] = []Item{{ID: 2, Descriptor: bottomWhite}}
	req.Available[CategoryShoes] = []Item{{ID: 3, Descriptor: shoesWhite}}

	ctx := logging.ContextWithRequestID(context.Background(), "req-from-ctx")
	res, err := e.Recommend(ctx, req)
	if err != nil {
		t.Fatalf("Recommend() error = %v", err)
	}
	if res.RequestID != "req-from-ctx" {
		t.Errorf("RequestID = %q, want req-from-ctx", res.RequestID)
	}

	res, err = e.Recommend(context.Background(), req)
	if err != nil {
		t.Fatalf("Recommend() error = %v", err)
	}
	if res.RequestID == "" {
		t.Error("expected generated request id")
	}
}

func TestEngine_Recommend_Cancelled(t *testing.T) {
	e := newTestEngine(t, StaticProvider{B: newTestBundle(t)})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var req Request
	req.Available[CategoryTop] = []Item{{ID: 1, Descriptor: topWhite}}

	if _, err := e.Recommend(ctx, req); !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}

func TestEngine_VectorCache(t *testing.T) {
	e := newTestEngine(t, StaticProvider{B: newTestBundle(t)})

	var req Request
	req.Available[CategoryTop] = []Item{{ID: 1, Descriptor: topWhite}}
	req.Available[CategoryBottom] = []Item{{ID: 2, Descriptor: bottomWhite}}
	req.Available[CategoryShoes] = []Item{{ID: 3, Descriptor: shoesWhite}}

	for i := 0; i < 2; i++ {
		if _, err := e.Recommend(context.Background(), req); err != nil {
			t.Fatalf("Recommend() error = %v", err)
		}
	}

	stats := e.Stats()
	if stats.Requests != 2 {
		t.Errorf("Requests = %d, want 2", stats.Requests)
	}
	if stats.CacheHits < 3 {
		t.Errorf("CacheHits = %d, want >= 3", stats.CacheHits)
	}
	if stats.CacheSize != 3 {
		t.Errorf("CacheSize = %d, want 3", stats.CacheSize)
	}
}

func TestEngine_VectorCacheDisabled(t *testing.T) {
	cfg := DefaultConfig()
	cfg.VectorCacheSize = 0
	e, err := NewEngine(cfg, StaticProvider{B: newTestBundle(t)}, zerolog.Nop())
	if err != nil {
		t.Fatalf("NewEngine() error = %v", err)
	}

	var req Request
	req.Available[CategoryTop] = []Item{{ID: 1, Descriptor: topWhite}}
	req.Available[CategoryBottom] = []Item{{ID: 2, Descriptor: bottomWhite}}
	req.Available[CategoryShoes] = []Item{{ID: 3, Descriptor: shoesWhite}}

	if _, err := e.Recommend(context.Background(), req); err != nil {
		t.Fatalf("Recommend() error = %v", err)
	}
	if s := e.Stats(); s.CacheHits != 0 || s.CacheSize != 0 {
		t.Errorf("expected no cache activity, got %+v", s)
	}
}

func TestEngine_NearestOutfit(t *testing.T) {
	e := newTestEngine(t, StaticProvider{B: newTestBundle(t)})

	got, err := e.NearestOutfit(context.Background(), []string{topWhite, bottomWhite})
	if err != nil {
		t.Fatalf("NearestOutfit() error = %v", err)
	}
	if !got.Found || !got.Accepted {
		t.Errorf("expected accepted match, got %+v", got)
	}
	if got.Match.Record.OutfitID != 1 {
		t.Errorf("OutfitID = %d, want 1 (first on tie)", got.Match.Record.OutfitID)
	}
	if got.Threshold != DefaultAcceptanceThreshold {
		t.Errorf("Threshold = %v", got.Threshold)
	}

	got, err = e.NearestOutfit(context.Background(), []string{unknownThing})
	if err != nil {
		t.Fatalf("NearestOutfit() error = %v", err)
	}
	if got.Accepted {
		t.Errorf("zero vector should not clear the threshold, got %+v", got)
	}

	if _, err := e.NearestOutfit(context.Background(), []string{"", " "}); err == nil {
		t.Error("expected error without descriptors")
	}
}

func TestEngine_NearestOutfitEmptyCorpus(t *testing.T) {
	e := newTestEngine(t, StaticProvider{B: newTestBundle(t, []string{}...)})

	got, err := e.NearestOutfit(context.Background(), []string{topWhite})
	if err != nil {
		t.Fatalf("NearestOutfit() error = %v", err)
	}
	if got.Found {
		t.Error("expected no match on empty corpus")
	}
}

func TestErrors(t *testing.T) {
	cause := errors.New("params.json missing")
	err := NewDataUnavailableError("load bundle", cause)

	if !errors.Is(err, ErrDataUnavailable) {
		t.Error("expected Is(ErrDataUnavailable)")
	}
	if !errors.Is(err, cause) {
		t.Error("expected cause to unwrap")
	}
	if err.Error() != "recommendation data unavailable: load bundle: params.json missing" {
		t.Errorf("Error() = %q", err.Error())
	}

	rerr := &RequiredCategoryUnresolvedError{Category: CategoryShoes, Offered: 2, Skipped: 1}
	if rerr.Error() != "required category unresolved: shoes (offered=2, skipped=1)" {
		t.Errorf("Error() = %q", rerr.Error())
	}
}
