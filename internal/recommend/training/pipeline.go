// ClosetMate - Wardrobe Management and Outfit Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/closetmate

package training

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/tomtom215/closetmate/internal/dataset"
	"github.com/tomtom215/closetmate/internal/metrics"
	"github.com/tomtom215/closetmate/internal/recommend"
	"github.com/tomtom215/closetmate/internal/recommend/corpus"
	"github.com/tomtom215/closetmate/internal/recommend/embedding"
	"github.com/tomtom215/closetmate/internal/recommend/storage"
	"github.com/tomtom215/closetmate/internal/validation"
)

var (
	// ErrSourceMissing is returned when a source dataset file does not exist.
	ErrSourceMissing = errors.New("source dataset missing")

	// ErrEmptyCorpus is returned when no outfit survives filtering and merging.
	ErrEmptyCorpus = errors.New("no outfits left to train on")
)

// Sources are the paths of the two training datasets.
type Sources struct {
	SentencesPath  string `json:"sentences_path" validate:"required"`
	AttributesPath string `json:"attributes_path" validate:"required"`
}

// DatasetReader reads the training datasets.
// dataset.CSVReader is the production implementation.
type DatasetReader interface {
	ReadSentences(ctx context.Context, path string) ([]dataset.SentenceRow, error)
	ReadAttributes(ctx context.Context, path string) ([]dataset.AttributeRow, error)
}

// Report summarizes a training run.
type Report struct {
	BundleID string `json:"bundle_id"`
	Version  int    `json:"version,omitempty"`
	Path     string `json:"path,omitempty"`
	Trainer  string `json:"trainer"`

	SentenceRows  int `json:"sentence_rows"`
	AttributeRows int `json:"attribute_rows"`
	FilteredRows  int `json:"filtered_rows"`
	MergedRows    int `json:"merged_rows"`

	SentenceVocabulary    int `json:"sentence_vocabulary"`
	ColorFabricVocabulary int `json:"color_fabric_vocabulary"`

	DurationMS int64 `json:"duration_ms"`
}

// Pipeline trains bundles.
type Pipeline struct {
	reader  DatasetReader
	trainer embedding.Trainer
	store   *storage.Store
	params  recommend.Hyperparameters
	logger  zerolog.Logger
}

// NewPipeline creates a pipeline. store may be nil when only Build is used.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewPipeline(reader DatasetReader, trainer embedding.Trainer, store *storage.Store, params recommend.Hyperparameters, logger zerolog.Logger) (*Pipeline, error) {
	if reader == nil {
		return nil, fmt.Errorf("dataset reader is required")
	}
	if trainer == nil {
		return nil, fmt.Errorf("embedding trainer is required")
	}
	if err := params.Validate(); err != nil {
		return nil, fmt.Errorf("invalid hyperparameters: %w", err)
	}
	for _, tp := range []embedding.TrainParams{sentenceParams(params), colorFabricParams(params)} {
		if err := tp.Validate(); err != nil {
			return nil, fmt.Errorf("invalid hyperparameters: %w", err)
		}
	}

	params.Trainer = trainer.Name()
	return &Pipeline{
		reader:  reader,
		trainer: trainer,
		store:   store,
		params:  params,
		logger:  logger.With().Str("component", "training").Logger(),
	}, nil
}

// Run builds a bundle and saves it as the next store version.
func (p *Pipeline) Run(ctx context.Context, src Sources) (*Report, error) {
	start := time.Now()
	if p.store == nil {
		err := fmt.Errorf("bundle store is required to save")
		metrics.RecordTraining(time.Since(start), err)
		return nil, err
	}

	bundle, report, err := p.build(ctx, src)
	if err == nil {
		var manifest *storage.Manifest
		manifest, err = p.store.Save(ctx, bundle)
		if err == nil {
			report.Version = manifest.Version
			report.Path = p.store.Path(manifest.Version)
		}
	}

	duration := time.Since(start)
	metrics.RecordTraining(duration, err)
	if err != nil {
		p.logger.Error().Err(err).Msg("training failed")
		return nil, err
	}

	report.DurationMS = duration.Milliseconds()
	p.logger.Info().
		Str("bundle_id", report.BundleID).
		Int("version", report.Version).
		Str("path", report.Path).
		Dur("duration", duration).
		Msg("training complete")
	return report, nil
}

// Build trains a bundle in memory without saving it.
func (p *Pipeline) Build(ctx context.Context, src Sources) (*recommend.Bundle, *Report, error) {
	return p.build(ctx, src)
}

func (p *Pipeline) build(ctx context.Context, src Sources) (*recommend.Bundle, *Report, error) {
	start := time.Now()
	if err := checkSources(src); err != nil {
		return nil, nil, err
	}

	report := &Report{BundleID: uuid.New().String(), Trainer: p.trainer.Name()}
	logger := p.logger.With().Str("bundle_id", report.BundleID).Logger()

	sentences, err := p.reader.ReadSentences(ctx, src.SentencesPath)
	if err != nil {
		return nil, nil, fmt.Errorf("read sentences: %w", err)
	}
	attributes, err := p.reader.ReadAttributes(ctx, src.AttributesPath)
	if err != nil {
		return nil, nil, fmt.Errorf("read attributes: %w", err)
	}
	report.SentenceRows = len(sentences)
	report.AttributeRows = len(attributes)

	filtered := FilterComplete(sentences)
	merged := Merge(filtered, attributes)
	report.FilteredRows = len(filtered)
	report.MergedRows = len(merged)
	metrics.SetCorpusRows("read", len(sentences))
	metrics.SetCorpusRows("filtered", len(filtered))
	metrics.SetCorpusRows("merged", len(merged))

	logger.Info().
		Int("sentences", len(sentences)).
		Int("attributes", len(attributes)).
		Int("filtered", len(filtered)).
		Int("merged", len(merged)).
		Msg("datasets prepared")

	if len(merged) == 0 {
		return nil, nil, ErrEmptyCorpus
	}

	sentenceCorpus := make([][]string, 0, len(merged))
	for i := range merged {
		sentenceCorpus = append(sentenceCorpus, merged[i].Tokens())
	}
	sentenceTable, err := p.trainer.Fit(ctx, sentenceCorpus, sentenceParams(p.params))
	if err != nil {
		return nil, nil, fmt.Errorf("train sentence table: %w", err)
	}
	metrics.SetVocabularySize("sentence", sentenceTable.Len())

	colorFabricTable, err := p.trainer.Fit(ctx, ColorFabricCorpus(attributes), colorFabricParams(p.params))
	if err != nil {
		return nil, nil, fmt.Errorf("train color/fabric table: %w", err)
	}
	metrics.SetVocabularySize("color_fabric", colorFabricTable.Len())
	report.SentenceVocabulary = sentenceTable.Len()
	report.ColorFabricVocabulary = colorFabricTable.Len()

	logger.Info().
		Int("sentence_vocabulary", sentenceTable.Len()).
		Int("color_fabric_vocabulary", colorFabricTable.Len()).
		Msg("embedding tables trained")

	composer := recommend.NewComposer(sentenceTable, colorFabricTable, p.params.ColorWeight, p.params.FabricWeight)
	for i := range merged {
		merged[i].Vector = composer.OutfitVector(merged[i].Sentence, merged[i].Color, merged[i].Fabric)
	}

	bundle, err := recommend.NewBundle(report.BundleID, p.params, sentenceTable, colorFabricTable,
		corpus.NewIndex(merged), corpus.NewIndex(filtered))
	if err != nil {
		return nil, nil, fmt.Errorf("assemble bundle: %w", err)
	}
	bundle.TrainedAt = time.Now().UTC()
	report.DurationMS = time.Since(start).Milliseconds()

	return bundle, report, nil
}

// checkSources fails fast when a source path is unset or its file is missing.
func checkSources(src Sources) error {
	if err := validation.Validate(src); err != nil {
		return fmt.Errorf("%w: %w", ErrSourceMissing, err)
	}
	for _, path := range []string{src.SentencesPath, src.AttributesPath} {
		info, err := os.Stat(path)
		if err != nil {
			return fmt.Errorf("%w: %s: %w", ErrSourceMissing, path, err)
		}
		if info.IsDir() {
			return fmt.Errorf("%w: %s is a directory", ErrSourceMissing, path)
		}
	}
	return nil
}

func sentenceParams(h recommend.Hyperparameters) embedding.TrainParams {
	return embedding.TrainParams{Dim: h.SentenceDim, Window: h.SentenceWindow, MinCount: h.MinCount, Seed: h.Seed}
}

func colorFabricParams(h recommend.Hyperparameters) embedding.TrainParams {
	return embedding.TrainParams{Dim: h.ColorFabricDim, Window: h.ColorFabricWindow, MinCount: h.MinCount, Seed: h.Seed}
}

// FilterComplete keeps the sentences that contain a token starting with
// each required category marker.
func FilterComplete(rows []dataset.SentenceRow) []corpus.Record {
	markers := recommend.RequiredMarkers()
	out := make([]corpus.Record, 0, len(rows))
	for _, row := range rows {
		rec := corpus.Record{OutfitID: row.OutfitID, Sentence: row.Sentence}
		if rec.HasAllMarkers(markers) {
			out = append(out, rec)
		}
	}
	return out
}

// Merge inner-joins filtered outfits with their color/fabric attributes.
// Output follows the filtered order; an outfit with several attribute rows
// yields one record per row, in attribute order.
func Merge(filtered []corpus.Record, attributes []dataset.AttributeRow) []corpus.Record {
	byID := make(map[int][]dataset.AttributeRow, len(attributes))
	for _, a := range attributes {
		byID[a.OutfitID] = append(byID[a.OutfitID], a)
	}

	out := make([]corpus.Record, 0, len(filtered))
	for _, rec := range filtered {
		for _, a := range byID[rec.OutfitID] {
			m := rec
			m.Color = a.Color
			m.Fabric = a.Fabric
			out = append(out, m)
		}
	}
	return out
}

// ColorFabricCorpus turns every color and fabric value into a one-token
// lower-cased sentence. Empty values are left out.
func ColorFabricCorpus(attributes []dataset.AttributeRow) [][]string {
	out := make([][]string, 0, 2*len(attributes))
	for _, a := range attributes {
		for _, v := range []string{a.Color, a.Fabric} {
			token := strings.ToLower(strings.TrimSpace(v))
			if token == "" {
				continue
			}
			out = append(out, []string{token})
		}
	}
	return out
}
