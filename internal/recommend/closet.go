// ClosetMate - Wardrobe Management and Outfit Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/closetmate

package recommend

import "strings"

// ClosetItem is a wardrobe piece as stored by the closet service.
type ClosetItem struct {
	ID         int      `json:"id"`
	Category   Category `json:"category"`
	Descriptor string   `json:"descriptor"`
}

// BuildRequest turns a user's closet and their already-chosen items into a Request.
//
// An entry in existing becomes a selection only when that item is in the closet
// under the same category and has a descriptor. Every category named in existing
// is closed to candidates even if the selection was dropped. Candidates without
// a descriptor are left out of the pools.
func BuildRequest(items []ClosetItem, existing map[Category]int) Request {
	var byCategory [NumCategories][]ClosetItem
	for _, item := range items {
		if item.Category.Valid() {
			byCategory[item.Category] = append(byCategory[item.Category], item)
		}
	}

	var req Request
	for c, id := range existing {
		if !c.Valid() || id == 0 {
			continue
		}
		for _, item := range byCategory[c] {
			if item.ID == id && hasDescriptor(item.Descriptor) {
				req.Selected[c] = &Item{ID: item.ID, Descriptor: item.Descriptor}
				break
			}
		}
	}

	for _, c := range Categories {
		if id, ok := existing[c]; ok && id != 0 {
			continue
		}
		for _, item := range byCategory[c] {
			if hasDescriptor(item.Descriptor) {
				req.Available[c] = append(req.Available[c], Item{ID: item.ID, Descriptor: item.Descriptor})
			}
		}
	}

	return req
}

func hasDescriptor(d string) bool {
	return strings.TrimSpace(d) != ""
}
