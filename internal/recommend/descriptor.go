// ClosetMate - Wardrobe Management and Outfit Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/closetmate

package recommend

import "strings"

// DescriptorFieldCount is the number of underscore-separated fields in a canonical descriptor.
const DescriptorFieldCount = 7

const descriptorSeparator = "_"

// Fields is a parsed item descriptor.
type Fields struct {
	Category string `json:"category"`
	Color    string `json:"color"`
	Fabric   string `json:"fabric"`
	Detail   string `json:"detail"`
	Gender   string `json:"gender"`
	Season   string `json:"season"`
	Style    string `json:"style"`
}

// ParseDescriptor splits a descriptor on underscores.
// Missing trailing fields are left empty and extra fields are ignored. It never fails.
func ParseDescriptor(descriptor string) Fields {
	parts := strings.Split(descriptor, descriptorSeparator)
	field := func(i int) string {
		if i < len(parts) {
			return parts[i]
		}
		return ""
	}
	return Fields{
		Category: field(0),
		Color:    field(1),
		Fabric:   field(2),
		Detail:   field(3),
		Gender:   field(4),
		Season:   field(5),
		Style:    field(6),
	}
}

// String joins the fields back into canonical descriptor form.
func (f Fields) String() string {
	return strings.Join([]string{
		f.Category, f.Color, f.Fabric, f.Detail, f.Gender, f.Season, f.Style,
	}, descriptorSeparator)
}

// Tokenize turns a descriptor into sentence-embedding tokens.
// Underscores become spaces and the result is split on whitespace.
func Tokenize(descriptor string) []string {
	tokens := strings.Fields(strings.ReplaceAll(descriptor, descriptorSeparator, " "))
	if tokens == nil {
		return []string{}
	}
	return tokens
}
