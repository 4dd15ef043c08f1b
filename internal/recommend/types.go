// ClosetMate - Wardrobe Management and Outfit Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/closetmate

package recommend

import (
	"fmt"
	"sort"
	"strings"

	"github.com/goccy/go-json"
)

// Category identifies one outfit slot.
type Category int

const (
	// CategoryTop is the upper-body garment slot.
	CategoryTop Category = iota
	// CategoryBottom is the lower-body garment slot.
	CategoryBottom
	// CategoryShoes is the footwear slot.
	CategoryShoes
	// CategoryOuter is the optional outerwear slot.
	CategoryOuter
)

// NumCategories is the number of outfit slots.
const NumCategories = 4

// Categories lists every slot in result order.
var Categories = [NumCategories]Category{CategoryTop, CategoryBottom, CategoryShoes, CategoryOuter}

// categoryNames holds the canonical English name per slot.
var categoryNames = [NumCategories]string{"top", "bottom", "shoes", "outer"}

// categoryMarkers holds the Korean marker used in outfit corpus sentences.
var categoryMarkers = [NumCategories]string{"상의", "하의", "신발", "아우터"}

// categoryAliases maps every accepted spelling to its slot.
var categoryAliases = map[string]Category{
	"top":    CategoryTop,
	"상의":     CategoryTop,
	"bottom": CategoryBottom,
	"하의":     CategoryBottom,
	"shoes":  CategoryShoes,
	"신발":     CategoryShoes,
	"outer":  CategoryOuter,
	"아우터":    CategoryOuter,
}

// ParseCategory normalizes an English or Korean category name.
func ParseCategory(s string) (Category, error) {
	if c, ok := categoryAliases[strings.ToLower(strings.TrimSpace(s))]; ok {
		return c, nil
	}
	return 0, fmt.Errorf("unknown category %q", s)
}

// Valid reports whether c is one of the four slots.
func (c Category) Valid() bool {
	return c >= CategoryTop && c <= CategoryOuter
}

// String returns the canonical English name.
func (c Category) String() string {
	if !c.Valid() {
		return "unknown"
	}
	return categoryNames[c]
}

// Marker returns the substring that identifies this slot inside a corpus sentence.
func (c Category) Marker() string {
	if !c.Valid() {
		return ""
	}
	return categoryMarkers[c]
}

// Required reports whether an outfit must fill this slot.
// Only outerwear may be left empty.
func (c Category) Required() bool {
	return c.Valid() && c != CategoryOuter
}

// RequiredMarkers returns the markers every filtered corpus sentence must contain.
func RequiredMarkers() []string {
	markers := make([]string, 0, NumCategories)
	for _, c := range Categories {
		if c.Required() {
			markers = append(markers, c.Marker())
		}
	}
	return markers
}

// MarshalText implements encoding.TextMarshaler.
func (c Category) MarshalText() ([]byte, error) {
	if !c.Valid() {
		return nil, fmt.Errorf("invalid category %d", int(c))
	}
	return []byte(c.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler and accepts any alias.
func (c *Category) UnmarshalText(text []byte) error {
	parsed, err := ParseCategory(string(text))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

// Item is one wardrobe piece offered to the recommender.
type Item struct {
	// ID is the closet item identifier.
	ID int `json:"id"`

	// Descriptor is the canonical category_color_fabric_detail_gender_season_style string.
	Descriptor string `json:"descriptor"`
}

// Request asks the engine to complete an outfit.
// A non-nil Selected entry fixes that slot; otherwise the slot is filled from Available.
type Request struct {
	// RequestID correlates log lines. Generated when empty.
	RequestID string

	// Selected holds already-chosen items per slot.
	Selected [NumCategories]*Item

	// Available holds candidate pools per slot. Order matters for tie-breaking.
	Available [NumCategories][]Item
}

// OutfitRequest is the string-keyed form of Request used at the JSON boundary.
// Keys may use any accepted category alias.
type OutfitRequest struct {
	RequestID string            `json:"request_id,omitempty"`
	Selected  map[string]*Item  `json:"selected"`
	Available map[string][]Item `json:"available"`
}

// ToRequest normalizes category aliases into a Request.
// Naming one category under two aliases (for example "top" and "상의") is an
// error, since map order would otherwise decide the candidate order.
func (r *OutfitRequest) ToRequest() (Request, error) {
	req := Request{RequestID: r.RequestID}

	selected, err := resolveAliases(r.Selected)
	if err != nil {
		return Request{}, fmt.Errorf("selected: %w", err)
	}
	for c, name := range selected {
		if name == "" {
			continue
		}
		if item := r.Selected[name]; item != nil {
			picked := *item
			req.Selected[c] = &picked
		}
	}

	available, err := resolveAliases(r.Available)
	if err != nil {
		return Request{}, fmt.Errorf("available: %w", err)
	}
	for c, name := range available {
		if name == "" {
			continue
		}
		req.Available[c] = append([]Item(nil), r.Available[name]...)
	}
	return req, nil
}

// resolveAliases maps each category to the one key that names it.
// Keys are visited in sorted order so the reported error is stable.
func resolveAliases[V any](m map[string]V) ([NumCategories]string, error) {
	var names [NumCategories]string
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, name := range keys {
		c, err := ParseCategory(name)
		if err != nil {
			return names, err
		}
		if names[c] != "" {
			return names, fmt.Errorf("category %s named twice (%q and %q)", c, names[c], name)
		}
		names[c] = name
	}
	return names, nil
}

// PickSource records how a slot was filled.
type PickSource int

const (
	// PickNone means the slot has no item.
	PickNone PickSource = iota
	// PickSelected means the caller fixed the slot.
	PickSelected
	// PickScored means the engine chose the best-scoring candidate.
	PickScored
)

// String returns a human-readable name for the pick source.
func (s PickSource) String() string {
	switch s {
	case PickSelected:
		return "selected"
	case PickScored:
		return "scored"
	default:
		return "none"
	}
}

// Pick is the outcome for one slot.
type Pick struct {
	// ItemID is the chosen item. Meaningless when Source is PickNone.
	ItemID int

	// Source records how the slot was filled.
	Source PickSource

	// Score is the combined score of the winning candidate (scored picks only).
	Score float64

	// Candidates is the number of candidates that produced a usable vector.
	Candidates int
}

// Resolved reports whether the slot holds an item.
func (p Pick) Resolved() bool {
	return p.Source != PickNone
}

// Result is a completed outfit.
type Result struct {
	RequestID string
	BundleID  string
	Picks     [NumCategories]Pick
	Skipped   []CandidateSkip
}

// ItemID returns the item chosen for c, if any.
func (r *Result) ItemID(c Category) (int, bool) {
	if !c.Valid() || !r.Picks[c].Resolved() {
		return 0, false
	}
	return r.Picks[c].ItemID, true
}

// Outfit returns the slot to item mapping with nil for empty slots.
func (r *Result) Outfit() map[string]*int {
	out := make(map[string]*int, NumCategories)
	for _, c := range Categories {
		if id, ok := r.ItemID(c); ok {
			out[c.String()] = &id
		} else {
			out[c.String()] = nil
		}
	}
	return out
}

// resultJSON is the wire shape of Result.
type resultJSON struct {
	RequestID string             `json:"request_id"`
	BundleID  string             `json:"bundle_id"`
	Outfit    map[string]*int    `json:"recommended_outfit"`
	Scores    map[string]float64 `json:"scores,omitempty"`
	Skipped   []CandidateSkip    `json:"skipped,omitempty"`
}

// MarshalJSON renders the result with category names as keys.
func (r *Result) MarshalJSON() ([]byte, error) {
	scores := make(map[string]float64)
	for _, c := range Categories {
		if r.Picks[c].Source == PickScored {
			scores[c.String()] = r.Picks[c].Score
		}
	}
	return json.Marshal(resultJSON{
		RequestID: r.RequestID,
		BundleID:  r.BundleID,
		Outfit:    r.Outfit(),
		Scores:    scores,
		Skipped:   r.Skipped,
	})
}
