// ClosetMate - Wardrobe Management and Outfit Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/closetmate

package storage

import (
	"encoding/gob"
	"time"

	"github.com/tomtom215/closetmate/internal/recommend/corpus"
)

// Artifact file names inside a version directory.
const (
	ManifestFile       = "manifest.json"
	ParamsFile         = "params.json"
	SentenceFile       = "sentence.gob.gz"
	ColorFabricFile    = "color_fabric.gob.gz"
	MergedCorpusFile   = "corpus_merged.gob.gz"
	FilteredCorpusFile = "corpus_filtered.gob.gz"
)

// artifactFiles lists every file a bundle needs besides the manifest.
var artifactFiles = []string{
	ParamsFile,
	SentenceFile,
	ColorFabricFile,
	MergedCorpusFile,
	FilteredCorpusFile,
}

// Manifest describes one stored bundle version.
type Manifest struct {
	// ID is the bundle identifier assigned at training time.
	ID string `json:"id"`

	// Version is the version directory number.
	Version int `json:"version"`

	// TrainedAt is when the training run finished.
	TrainedAt time.Time `json:"trained_at"`

	// SavedAt is when the bundle was written.
	SavedAt time.Time `json:"saved_at"`

	// Trainer names the embedding trainer.
	Trainer string `json:"trainer,omitempty"`

	SentenceVocabulary    int `json:"sentence_vocabulary"`
	ColorFabricVocabulary int `json:"color_fabric_vocabulary"`
	MergedRows            int `json:"merged_rows"`
	FilteredRows          int `json:"filtered_rows"`

	// Files maps artifact file name to its checksum and size.
	Files map[string]FileInfo `json:"files"`
}

// FileInfo is the integrity record of one artifact file.
type FileInfo struct {
	// Checksum is the hex SHA-256 of the file contents.
	Checksum string `json:"checksum"`

	// SizeBytes is the on-disk size.
	SizeBytes int64 `json:"size_bytes"`
}

// tableState is the serializable form of an embedding table.
type tableState struct {
	Dim     int
	Vectors map[string][]float64
}

// corpusState is the serializable form of a corpus index.
type corpusState struct {
	Records []corpus.Record
}

// Register gob types for serialization.
//
//nolint:gochecknoinits // gob.Register must be called in init for type registration
func init() {
	gob.Register(tableState{})
	gob.Register(corpusState{})
}
