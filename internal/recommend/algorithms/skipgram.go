// ClosetMate - Wardrobe Management and Outfit Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/closetmate

package algorithms

import (
	"context"
	"fmt"
	"math"
	"math/rand"
	"sort"

	"github.com/tomtom215/closetmate/internal/recommend/embedding"
)

// SkipGramConfig contains the optimizer settings of the skip-gram trainer.
// Table shape (dim, window, min count, seed) comes from embedding.TrainParams.
type SkipGramConfig struct {
	// Epochs is the number of passes over the corpus.
	// Default: 5.
	Epochs int

	// NegativeSamples is how many noise tokens are drawn per positive pair.
	// Default: 5.
	NegativeSamples int

	// LearningRate is the initial SGD step size. It decays linearly to MinLearningRate.
	// Default: 0.025.
	LearningRate float64

	// MinLearningRate is the floor of the decayed step size.
	// Default: 0.0001.
	MinLearningRate float64
}

// DefaultSkipGramConfig returns the default skip-gram configuration.
func DefaultSkipGramConfig() SkipGramConfig {
	return SkipGramConfig{
		Epochs:          5,
		NegativeSamples: 5,
		LearningRate:    0.025,
		MinLearningRate: 0.0001,
	}
}

// Validate checks the optimizer settings.
func (c SkipGramConfig) Validate() error {
	if c.Epochs < 1 {
		return fmt.Errorf("epochs must be positive, got %d", c.Epochs)
	}
	if c.NegativeSamples < 1 {
		return fmt.Errorf("negative_samples must be positive, got %d", c.NegativeSamples)
	}
	if c.LearningRate <= 0 {
		return fmt.Errorf("learning_rate must be positive, got %f", c.LearningRate)
	}
	if c.MinLearningRate < 0 || c.MinLearningRate > c.LearningRate {
		return fmt.Errorf("min_learning_rate must be in [0, learning_rate], got %f", c.MinLearningRate)
	}
	return nil
}

// SkipGram learns word vectors with skip-gram and negative sampling.
// Reference: "Distributed Representations of Words and Phrases and their
// Compositionality" (Mikolov et al., 2013)
//
// Each token is trained to predict the tokens within a randomly shrunk window
// around it. Noise tokens are drawn from the unigram distribution raised to
// the 3/4 power. Training is single-threaded and driven by one seeded RNG, so
// a fixed corpus and seed always produce the same table.
//
// Tokens that never appear with a neighbor (single-token sentences) keep their
// seeded random initialization.
type SkipGram struct {
	config SkipGramConfig
}

// NewSkipGram creates a skip-gram trainer.
func NewSkipGram(cfg SkipGramConfig) (*SkipGram, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid skip-gram config: %w", err)
	}
	return &SkipGram{config: cfg}, nil
}

// Name implements embedding.Trainer.
func (s *SkipGram) Name() string {
	return "skipgram-ns"
}

// noiseTablePower flattens the unigram distribution for negative sampling.
const noiseTablePower = 0.75

// maxLogit bounds the dot product fed to the sigmoid.
const maxLogit = 6.0

// vocabulary maps tokens to dense indices ordered by frequency then token.
type vocabulary struct {
	tokens []string
	index  map[string]int
	counts []int
}

func buildVocabulary(corpus [][]string, minCount int) *vocabulary {
	freq := make(map[string]int)
	for _, sentence := range corpus {
		for _, token := range sentence {
			freq[token]++
		}
	}

	tokens := make([]string, 0, len(freq))
	for token, n := range freq {
		if n >= minCount {
			tokens = append(tokens, token)
		}
	}
	sort.Slice(tokens, func(i, j int) bool {
		if freq[tokens[i]] != freq[tokens[j]] {
			return freq[tokens[i]] > freq[tokens[j]]
		}
		return tokens[i] < tokens[j]
	})

	v := &vocabulary{
		tokens: tokens,
		index:  make(map[string]int, len(tokens)),
		counts: make([]int, len(tokens)),
	}
	for i, token := range tokens {
		v.index[token] = i
		v.counts[i] = freq[token]
	}
	return v
}

// Fit implements embedding.Trainer.
func (s *SkipGram) Fit(ctx context.Context, corpus [][]string, params embedding.TrainParams) (*embedding.Table, error) {
	if err := params.Validate(); err != nil {
		return nil, fmt.Errorf("invalid train params: %w", err)
	}
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}

	vocab := buildVocabulary(corpus, params.MinCount)
	if len(vocab.tokens) == 0 {
		return nil, fmt.Errorf("empty vocabulary: no token reaches min_count %d", params.MinCount)
	}

	// Encode sentences once, dropping out-of-vocabulary tokens.
	encoded := make([][]int, 0, len(corpus))
	totalTokens := 0
	for _, sentence := range corpus {
		ids := make([]int, 0, len(sentence))
		for _, token := range sentence {
			if id, ok := vocab.index[token]; ok {
				ids = append(ids, id)
			}
		}
		if len(ids) > 0 {
			encoded = append(encoded, ids)
			totalTokens += len(ids)
		}
	}

	dim := params.Dim
	numTokens := len(vocab.tokens)

	//nolint:gosec // G404: math/rand is acceptable for ML initialization (not security)
	rng := rand.New(rand.NewSource(params.Seed))

	input := make([][]float64, numTokens)
	output := make([][]float64, numTokens)
	for i := 0; i < numTokens; i++ {
		input[i] = make([]float64, dim)
		output[i] = make([]float64, dim)
		for d := 0; d < dim; d++ {
			input[i][d] = (rng.Float64() - 0.5) / float64(dim)
		}
	}

	noise := buildNoiseTable(vocab.counts)
	grad := make([]float64, dim)

	totalSteps := float64(s.config.Epochs * totalTokens)
	step := 0
	for epoch := 0; epoch < s.config.Epochs; epoch++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		for _, ids := range encoded {
			for pos, center := range ids {
				lr := s.learningRate(float64(step), totalSteps)
				step++

				shrink := rng.Intn(params.Window)
				lo := max(0, pos-params.Window+shrink)
				hi := min(len(ids)-1, pos+params.Window-shrink)
				for ctxPos := lo; ctxPos <= hi; ctxPos++ {
					if ctxPos == pos {
						continue
					}
					s.trainPair(input[ids[ctxPos]], output, center, noise, rng, lr, grad)
				}
			}
		}
	}

	vectors := make(map[string][]float64, numTokens)
	for i, token := range vocab.tokens {
		vectors[token] = input[i]
	}
	return embedding.NewTable(dim, vectors)
}

// learningRate decays linearly with progress.
func (s *SkipGram) learningRate(step, total float64) float64 {
	if total <= 0 {
		return s.config.LearningRate
	}
	lr := s.config.LearningRate * (1 - step/total)
	if lr < s.config.MinLearningRate {
		return s.config.MinLearningRate
	}
	return lr
}

// trainPair nudges in toward output[target] and away from sampled noise tokens.
func (s *SkipGram) trainPair(in []float64, output [][]float64, target int, noise []float64, rng *rand.Rand, lr float64, grad []float64) {
	for d := range grad {
		grad[d] = 0
	}

	for n := 0; n <= s.config.NegativeSamples; n++ {
		label := 0.0
		sample := target
		if n == 0 {
			label = 1
		} else {
			sample = sampleNoise(noise, rng)
			if sample == target {
				continue
			}
		}

		out := output[sample]
		var dot float64
		for d := range in {
			dot += in[d] * out[d]
		}
		g := (label - sigmoid(dot)) * lr

		for d := range in {
			grad[d] += g * out[d]
			out[d] += g * in[d]
		}
	}

	for d := range in {
		in[d] += grad[d]
	}
}

// buildNoiseTable returns the cumulative unigram^0.75 distribution.
func buildNoiseTable(counts []int) []float64 {
	cumulative := make([]float64, len(counts))
	var total float64
	for i, c := range counts {
		total += math.Pow(float64(c), noiseTablePower)
		cumulative[i] = total
	}
	for i := range cumulative {
		cumulative[i] /= total
	}
	return cumulative
}

func sampleNoise(cumulative []float64, rng *rand.Rand) int {
	i := sort.SearchFloat64s(cumulative, rng.Float64())
	if i >= len(cumulative) {
		return len(cumulative) - 1
	}
	return i
}

func sigmoid(x float64) float64 {
	if x > maxLogit {
		x = maxLogit
	} else if x < -maxLogit {
		x = -maxLogit
	}
	return 1 / (1 + math.Exp(-x))
}

var _ embedding.Trainer = (*SkipGram)(nil)
