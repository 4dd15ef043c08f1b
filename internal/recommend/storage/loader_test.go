// ClosetMate - Wardrobe Management and Outfit Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/closetmate

package storage

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/rs/zerolog"

	"github.com/tomtom215/closetmate/internal/recommend"
)

func TestLoader_LazyLoad(t *testing.T) {
	store, err := NewStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewStore() error = %v", err)
	}
	if _, err := store.Save(context.Background(), testBundle(t, "lazy")); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	loader := NewLoader(store, 0, zerolog.Nop())
	if loader.IsLoaded() {
		t.Fatal("loader must not load before first use")
	}

	var wg sync.WaitGroup
	bundles := make([]*recommend.Bundle, 10)
	for i := range bundles {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			b, err := loader.Bundle(context.Background())
			if err != nil {
				t.Errorf("Bundle() error = %v", err)
				return
			}
			bundles[i] = b
		}(i)
	}
	wg.Wait()

	if !loader.IsLoaded() {
		t.Error("expected loader to be loaded")
	}
	for i, b := range bundles {
		if b != bundles[0] {
			t.Errorf("call %d returned a different bundle instance", i)
		}
	}
}

func TestLoader_RetryAfterFailure(t *testing.T) {
	store, err := NewStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewStore() error = %v", err)
	}
	loader := NewLoader(store, 0, zerolog.Nop())

	if _, err := loader.Bundle(context.Background()); !errors.Is(err, recommend.ErrDataUnavailable) {
		t.Fatalf("expected ErrDataUnavailable, got %v", err)
	}
	if loader.IsLoaded() {
		t.Fatal("failed load must leave the loader unset")
	}

	if _, err := store.Save(context.Background(), testBundle(t, "late")); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	b, err := loader.Bundle(context.Background())
	if err != nil {
		t.Fatalf("Bundle() after save error = %v", err)
	}
	if b.ID != "late" {
		t.Errorf("ID = %s, want late", b.ID)
	}
}

func TestLoader_PinnedVersion(t *testing.T) {
	store, err := NewStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewStore() error = %v", err)
	}
	for _, id := range []string{"first", "second"} {
		if _, err := store.Save(context.Background(), testBundle(t, id)); err != nil {
			t.Fatalf("Save() error = %v", err)
		}
	}

	b, err := NewLoader(store, 1, zerolog.Nop()).Bundle(context.Background())
	if err != nil {
		t.Fatalf("Bundle() error = %v", err)
	}
	if b.ID != "first" {
		t.Errorf("ID = %s, want first", b.ID)
	}
}

func TestLoader_ServesEngine(t *testing.T) {
	store, err := NewStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewStore() error = %v", err)
	}
	if _, err := store.Save(context.Background(), testBundle(t, "serve")); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	engine, err := recommend.NewEngine(nil, NewLoader(store, 0, zerolog.Nop()), zerolog.Nop())
	if err != nil {
		t.Fatalf("NewEngine() error = %v", err)
	}

	var req recommend.Request
	req.Available[recommend.CategoryTop] = []recommend.Item{{ID: 1, Descriptor: "상의_white_cotton_티셔츠_남성_여름_casual"}}
	req.Available[recommend.CategoryBottom] = []recommend.Item{{ID: 2, Descriptor: "하의_white_cotton_면바지_남성_여름_casual"}}
	req.Available[recommend.CategoryShoes] = []recommend.Item{{ID: 3, Descriptor: "신발_white_cotton_스니커즈_남성_여름_casual"}}

	res, err := engine.Recommend(context.Background(), req)
	if err != nil {
		t.Fatalf("Recommend() error = %v", err)
	}
	if res.BundleID != "serve" {
		t.Errorf("BundleID = %s, want serve", res.BundleID)
	}
}
