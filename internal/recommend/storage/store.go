// ClosetMate - Wardrobe Management and Outfit Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/closetmate

package storage

import (
	"bytes"
	"compress/gzip"
	"context"
	"crypto/sha256"
	"encoding/gob"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/goccy/go-json"

	"github.com/tomtom215/closetmate/internal/recommend"
	"github.com/tomtom215/closetmate/internal/recommend/corpus"
	"github.com/tomtom215/closetmate/internal/recommend/embedding"
)

// ErrNoBundle is returned when the store holds no bundle versions.
var ErrNoBundle = errors.New("no bundle stored")

// Store manages bundle versions under a base directory.
type Store struct {
	baseDir string
	mu      sync.RWMutex

	// latest is the highest version on disk, 0 when empty.
	latest int
}

// NewStore creates a bundle store at the given directory.
func NewStore(baseDir string) (*Store, error) {
	if err := os.MkdirAll(baseDir, 0o750); err != nil { //nolint:gosec // 0750 is acceptable for model storage
		return nil, fmt.Errorf("create storage directory: %w", err)
	}

	s := &Store{baseDir: baseDir}

	versions, err := s.scanVersions()
	if err != nil {
		return nil, fmt.Errorf("scan existing bundles: %w", err)
	}
	if len(versions) > 0 {
		s.latest = versions[len(versions)-1]
	}

	return s, nil
}

// Dir returns the base directory.
func (s *Store) Dir() string {
	return s.baseDir
}

// Path returns the directory of a bundle version.
func (s *Store) Path(version int) string {
	return filepath.Join(s.baseDir, fmt.Sprintf("v%d", version))
}

// LatestVersion returns the highest stored version.
func (s *Store) LatestVersion() (int, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.latest, s.latest > 0
}

// scanVersions returns the stored versions in ascending order.
func (s *Store) scanVersions() ([]int, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		return nil, err
	}

	var versions []int
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		if v, ok := parseVersionDir(entry.Name()); ok {
			versions = append(versions, v)
		}
	}
	sort.Ints(versions)
	return versions, nil
}

// parseVersionDir extracts the version from a directory name like "v3".
func parseVersionDir(name string) (int, bool) {
	if !strings.HasPrefix(name, "v") {
		return 0, false
	}
	v, err := strconv.Atoi(name[1:])
	if err != nil || v < 1 {
		return 0, false
	}
	return v, true
}

// Save writes b as the next version and returns its manifest.
// The bundle's ID, TrainedAt, and Params are recorded; its Version field is ignored.
func (s *Store) Save(ctx context.Context, b *recommend.Bundle) (*Manifest, error) {
	if b == nil {
		return nil, fmt.Errorf("bundle is nil")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	version := s.latest + 1
	finalDir := s.Path(version)
	if _, err := os.Stat(finalDir); err == nil {
		return nil, fmt.Errorf("bundle version %d already exists", version)
	}

	tmpDir, err := os.MkdirTemp(s.baseDir, ".tmp-bundle-")
	if err != nil {
		return nil, fmt.Errorf("create temp directory: %w", err)
	}
	committed := false
	defer func() {
		if !committed {
			_ = os.RemoveAll(tmpDir) //nolint:errcheck // best-effort cleanup on error path
		}
	}()

	trainedAt := b.TrainedAt
	if trainedAt.IsZero() {
		trainedAt = time.Now().UTC()
	}
	manifest := &Manifest{
		ID:                    b.ID,
		Version:               version,
		TrainedAt:             trainedAt,
		Trainer:               b.Params.Trainer,
		SentenceVocabulary:    b.Sentence.Len(),
		ColorFabricVocabulary: b.ColorFabric.Len(),
		MergedRows:            b.Merged.Len(),
		FilteredRows:          b.Filtered.Len(),
		Files:                 make(map[string]FileInfo, len(artifactFiles)),
	}

	params, err := json.MarshalIndent(b.Params, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode params: %w", err)
	}

	writes := []struct {
		name string
		data func() ([]byte, error)
	}{
		{ParamsFile, func() ([]byte, error) { return params, nil }},
		{SentenceFile, func() ([]byte, error) { return encodeGob(exportTable(b.Sentence)) }},
		{ColorFabricFile, func() ([]byte, error) { return encodeGob(exportTable(b.ColorFabric)) }},
		{MergedCorpusFile, func() ([]byte, error) { return encodeGob(corpusState{Records: b.Merged.Records()}) }},
		{FilteredCorpusFile, func() ([]byte, error) { return encodeGob(corpusState{Records: b.Filtered.Records()}) }},
	}
	for _, w := range writes {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		data, err := w.data()
		if err != nil {
			return nil, fmt.Errorf("encode %s: %w", w.name, err)
		}
		info, err := writeFile(filepath.Join(tmpDir, w.name), data)
		if err != nil {
			return nil, err
		}
		manifest.Files[w.name] = info
	}

	manifest.SavedAt = time.Now().UTC()
	mdata, err := json.MarshalIndent(manifest, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode manifest: %w", err)
	}
	if _, err := writeFile(filepath.Join(tmpDir, ManifestFile), mdata); err != nil {
		return nil, err
	}

	if err := os.Rename(tmpDir, finalDir); err != nil {
		return nil, fmt.Errorf("publish bundle version %d: %w", version, err)
	}
	committed = true
	s.latest = version

	return manifest, nil
}

// Load reads a bundle version. Version 0 loads the latest.
// Any missing or corrupt file fails the whole load with a DataUnavailableError.
func (s *Store) Load(ctx context.Context, version int) (*recommend.Bundle, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if version == 0 {
		if s.latest == 0 {
			return nil, recommend.NewDataUnavailableError("load bundle", fmt.Errorf("%w in %s", ErrNoBundle, s.baseDir))
		}
		version = s.latest
	}

	b, err := s.load(ctx, version)
	if err != nil {
		return nil, recommend.NewDataUnavailableError(fmt.Sprintf("load bundle v%d", version), err)
	}
	return b, nil
}

func (s *Store) load(ctx context.Context, version int) (*recommend.Bundle, error) {
	dir := s.Path(version)
	manifest, err := readManifest(dir)
	if err != nil {
		return nil, err
	}

	data := make(map[string][]byte, len(artifactFiles))
	for _, name := range artifactFiles {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		info, ok := manifest.Files[name]
		if !ok {
			return nil, fmt.Errorf("manifest has no entry for %s", name)
		}
		raw, err := readFile(filepath.Join(dir, name), info)
		if err != nil {
			return nil, err
		}
		data[name] = raw
	}

	var params recommend.Hyperparameters
	if err := json.Unmarshal(data[ParamsFile], &params); err != nil {
		return nil, fmt.Errorf("decode %s: %w", ParamsFile, err)
	}

	sentence, err := decodeTable(data[SentenceFile])
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", SentenceFile, err)
	}
	colorFabric, err := decodeTable(data[ColorFabricFile])
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", ColorFabricFile, err)
	}
	merged, err := decodeCorpus(data[MergedCorpusFile])
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", MergedCorpusFile, err)
	}
	filtered, err := decodeCorpus(data[FilteredCorpusFile])
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", FilteredCorpusFile, err)
	}

	b, err := recommend.NewBundle(manifest.ID, params, sentence, colorFabric, merged, filtered)
	if err != nil {
		return nil, err
	}
	b.Version = manifest.Version
	b.TrainedAt = manifest.TrainedAt
	return b, nil
}

// Manifest reads the manifest of a bundle version. Version 0 reads the latest.
func (s *Store) Manifest(version int) (*Manifest, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if version == 0 {
		if s.latest == 0 {
			return nil, ErrNoBundle
		}
		version = s.latest
	}
	return readManifest(s.Path(version))
}

// List returns the manifests of all readable versions, oldest first.
// Versions with a missing or unreadable manifest are left out.
func (s *Store) List(ctx context.Context) ([]Manifest, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	versions, err := s.scanVersions()
	if err != nil {
		return nil, fmt.Errorf("read directory: %w", err)
	}

	manifests := make([]Manifest, 0, len(versions))
	for _, v := range versions {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		m, err := readManifest(s.Path(v))
		if err != nil {
			continue
		}
		manifests = append(manifests, *m)
	}
	return manifests, nil
}

// Prune removes old versions, keeping the latest keep versions.
// It returns how many versions were removed.
func (s *Store) Prune(ctx context.Context, keep int) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if keep < 1 {
		keep = 1
	}

	versions, err := s.scanVersions()
	if err != nil {
		return 0, fmt.Errorf("read directory: %w", err)
	}
	if len(versions) <= keep {
		return 0, nil
	}

	removed := 0
	for _, v := range versions[:len(versions)-keep] {
		if err := ctx.Err(); err != nil {
			return removed, err
		}
		if err := os.RemoveAll(s.Path(v)); err != nil {
			return removed, fmt.Errorf("remove bundle version %d: %w", v, err)
		}
		removed++
	}
	return removed, nil
}

func exportTable(t *embedding.Table) tableState {
	return tableState{Dim: t.Dim(), Vectors: t.Export()}
}

func decodeTable(data []byte) (*embedding.Table, error) {
	var st tableState
	if err := decodeGob(data, &st); err != nil {
		return nil, err
	}
	return embedding.NewTable(st.Dim, st.Vectors)
}

func decodeCorpus(data []byte) (*corpus.Index, error) {
	var st corpusState
	if err := decodeGob(data, &st); err != nil {
		return nil, err
	}
	return corpus.NewIndex(st.Records), nil
}

// encodeGob serializes v and gzip-compresses the result.
func encodeGob(v interface{}) ([]byte, error) {
	var compressed bytes.Buffer
	gzw := gzip.NewWriter(&compressed)
	if err := gob.NewEncoder(gzw).Encode(v); err != nil {
		return nil, fmt.Errorf("encode: %w", err)
	}
	if err := gzw.Close(); err != nil {
		return nil, fmt.Errorf("finalize compression: %w", err)
	}
	return compressed.Bytes(), nil
}

func decodeGob(data []byte, target interface{}) error {
	gzr, err := gzip.NewReader(bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("decompress: %w", err)
	}
	defer func() { _ = gzr.Close() }() //nolint:errcheck // error on gzip close after read is not actionable

	if err := gob.NewDecoder(gzr).Decode(target); err != nil {
		return fmt.Errorf("decode: %w", err)
	}
	return nil
}

func checksum(data []byte) string {
	hash := sha256.Sum256(data)
	return hex.EncodeToString(hash[:])
}

func writeFile(path string, data []byte) (FileInfo, error) {
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return FileInfo{}, fmt.Errorf("write %s: %w", filepath.Base(path), err)
	}
	return FileInfo{Checksum: checksum(data), SizeBytes: int64(len(data))}, nil
}

// readFile reads an artifact file and verifies it against the manifest.
func readFile(path string, info FileInfo) ([]byte, error) {
	f, err := os.Open(path) //nolint:gosec // path is built from the store directory and fixed file names
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", filepath.Base(path), err)
	}
	defer func() { _ = f.Close() }() //nolint:errcheck // error on close after read is not actionable

	data, err := io.ReadAll(f)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", filepath.Base(path), err)
	}
	if sum := checksum(data); sum != info.Checksum {
		return nil, fmt.Errorf("checksum mismatch for %s: expected %s, got %s", filepath.Base(path), info.Checksum, sum)
	}
	return data, nil
}

func readManifest(dir string) (*Manifest, error) {
	data, err := os.ReadFile(filepath.Join(dir, ManifestFile)) //nolint:gosec // dir is built from the store directory
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", ManifestFile, err)
	}
	var m Manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("decode %s: %w", ManifestFile, err)
	}
	return &m, nil
}
