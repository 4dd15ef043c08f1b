// ClosetMate - Wardrobe Management and Outfit Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/closetmate

package recommend

import (
	"context"
	"testing"
)

func testCloset() []ClosetItem {
	return []ClosetItem{
		{ID: 1, Category: CategoryTop, Descriptor: topWhite},
		{ID: 2, Category: CategoryTop, Descriptor: ""},
		{ID: 3, Category: CategoryBottom, Descriptor: bottomBlack},
		{ID: 4, Category: CategoryBottom, Descriptor: bottomWhite},
		{ID: 5, Category: CategoryShoes, Descriptor: shoesWhite},
		{ID: 6, Category: CategoryOuter, Descriptor: outerWhite},
	}
}

func TestBuildRequest_NoSelection(t *testing.T) {
	req := BuildRequest(testCloset(), nil)

	for _, c := range Categories {
		if req.Selected[c] != nil {
			t.Errorf("%s: unexpected selection", c)
		}
	}
	if len(req.Available[CategoryTop]) != 1 || req.Available[CategoryTop][0].ID != 1 {
		t.Errorf("top pool = %+v, want only item 1", req.Available[CategoryTop])
	}
	if len(req.Available[CategoryBottom]) != 2 {
		t.Errorf("bottom pool size = %d, want 2", len(req.Available[CategoryBottom]))
	}
	if req.Available[CategoryBottom][0].ID != 3 {
		t.Error("closet order must be preserved")
	}
}

func TestBuildRequest_WithSelection(t *testing.T) {
	tests := []struct {
		name         string
		existing     map[Category]int
		wantSelected map[Category]int
		wantClosed   []Category
	}{
		{
			name:         "valid top selection",
			existing:     map[Category]int{CategoryTop: 1},
			wantSelected: map[Category]int{CategoryTop: 1},
			wantClosed:   []Category{CategoryTop},
		},
		{
			name:       "selection without descriptor is dropped",
			existing:   map[Category]int{CategoryTop: 2},
			wantClosed: []Category{CategoryTop},
		},
		{
			name:       "selection in wrong category is dropped",
			existing:   map[Category]int{CategoryShoes: 4},
			wantClosed: []Category{CategoryShoes},
		},
		{
			name:     "zero id is ignored",
			existing: map[Category]int{CategoryBottom: 0},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := BuildRequest(testCloset(), tt.existing)

			for _, c := range Categories {
				want, ok := tt.wantSelected[c]
				got := req.Selected[c]
				switch {
				case ok && got == nil:
					t.Errorf("%s: expected selection %d", c, want)
				case ok && got.ID != want:
					t.Errorf("%s: selected %d, want %d", c, got.ID, want)
				case !ok && got != nil:
					t.Errorf("%s: unexpected selection %d", c, got.ID)
				}
			}
			for _, c := range tt.wantClosed {
				if len(req.Available[c]) != 0 {
					t.Errorf("%s: expected no candidates, got %d", c, len(req.Available[c]))
				}
			}
		})
	}
}

func TestBuildRequest_EndToEnd(t *testing.T) {
	e := newTestEngine(t, StaticProvider{B: newTestBundle(t)})

	req := BuildRequest(testCloset(), map[Category]int{CategoryTop: 1})
	res, err := e.Recommend(context.Background(), req)
	if err != nil {
		t.Fatalf("Recommend() error = %v", err)
	}

	want := map[Category]int{CategoryTop: 1, CategoryBottom: 4, CategoryShoes: 5, CategoryOuter: 6}
	for c, id := range want {
		if got := mustItemID(t, res, c); got != id {
			t.Errorf("%s = %d, want %d", c, got, id)
		}
	}
}
