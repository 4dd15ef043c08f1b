// ClosetMate - Wardrobe Management and Outfit Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/closetmate

package dataset

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func writeCSV(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func newTestReader(t *testing.T) *CSVReader {
	t.Helper()
	r, err := NewCSVReader()
	if err != nil {
		t.Fatalf("NewCSVReader() error = %v", err)
	}
	t.Cleanup(func() { _ = r.Close() })
	return r
}

func TestCSVReader_ReadSentences(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    []SentenceRow
	}{
		{
			name:    "canonical header",
			content: "outfit_id,sentence_text\n1,상의 white 하의 black 신발 white\n2,상의 red 하의 blue\n",
			want: []SentenceRow{
				{OutfitID: 1, Sentence: "상의 white 하의 black 신발 white"},
				{OutfitID: 2, Sentence: "상의 red 하의 blue"},
			},
		},
		{
			name:    "legacy header with extra columns",
			content: "coord_id,style,w2v_sentence\n10,casual,상의 knit\n11,street,\n",
			want: []SentenceRow{
				{OutfitID: 10, Sentence: "상의 knit"},
				{OutfitID: 11, Sentence: ""},
			},
		},
		{
			name:    "rows without numeric id are dropped",
			content: "outfit_id,sentence_text\nabc,상의 white\n,하의 black\n3,신발 white\n",
			want:    []SentenceRow{{OutfitID: 3, Sentence: "신발 white"}},
		},
	}

	r := newTestReader(t)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeCSV(t, "sentences.csv", tt.content)
			got, err := r.ReadSentences(context.Background(), path)
			if err != nil {
				t.Fatalf("ReadSentences() error = %v", err)
			}
			if len(got) != len(tt.want) {
				t.Fatalf("ReadSentences() = %+v, want %+v", got, tt.want)
			}
			for i := range tt.want {
				if got[i] != tt.want[i] {
					t.Errorf("row %d = %+v, want %+v", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestCSVReader_ReadAttributes(t *testing.T) {
	r := newTestReader(t)
	path := writeCSV(t, "attributes.csv",
		"outfit_id,predicted_color,predicted_fabric,predicted_category\n1,White,Cotton,top\n2,black,,bottom\n")

	got, err := r.ReadAttributes(context.Background(), path)
	if err != nil {
		t.Fatalf("ReadAttributes() error = %v", err)
	}

	want := []AttributeRow{
		{OutfitID: 1, Color: "White", Fabric: "Cotton"},
		{OutfitID: 2, Color: "black", Fabric: ""},
	}
	if len(got) != len(want) {
		t.Fatalf("ReadAttributes() = %+v, want %+v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("row %d = %+v, want %+v", i, got[i], want[i])
		}
	}
}

func TestCSVReader_Errors(t *testing.T) {
	r := newTestReader(t)
	ctx := context.Background()

	if _, err := r.ReadSentences(ctx, filepath.Join(t.TempDir(), "missing.csv")); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("expected os.ErrNotExist, got %v", err)
	}

	path := writeCSV(t, "wrong.csv", "outfit_id,caption\n1,hello\n")
	if _, err := r.ReadSentences(ctx, path); !errors.Is(err, ErrColumnMissing) {
		t.Errorf("expected ErrColumnMissing, got %v", err)
	}
	if _, err := r.ReadAttributes(ctx, path); !errors.Is(err, ErrColumnMissing) {
		t.Errorf("expected ErrColumnMissing, got %v", err)
	}
}

func TestCSVReader_QuotedPath(t *testing.T) {
	r := newTestReader(t)
	dir := filepath.Join(t.TempDir(), "it's here")
	if err := os.MkdirAll(dir, 0o750); err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(dir, "sentences.csv")
	if err := os.WriteFile(path, []byte("outfit_id,sentence_text\n1,상의 white\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	got, err := r.ReadSentences(context.Background(), path)
	if err != nil {
		t.Fatalf("ReadSentences() error = %v", err)
	}
	if len(got) != 1 || got[0].OutfitID != 1 {
		t.Errorf("ReadSentences() = %+v", got)
	}
}
