// ClosetMate - Wardrobe Management and Outfit Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/closetmate

package dataset

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	// DuckDB driver - reads CSV sources with read_csv_auto
	_ "github.com/duckdb/duckdb-go/v2"

	"github.com/tomtom215/closetmate/internal/metrics"
)

// Dataset labels used in metrics.
const (
	DatasetSentences  = "sentences"
	DatasetAttributes = "attributes"
)

// ErrColumnMissing is returned when a required column cannot be found.
var ErrColumnMissing = errors.New("required column missing")

// Accepted header names per logical column, in preference order.
var (
	idColumns       = []string{"outfit_id", "coord_id", "id"}
	sentenceColumns = []string{"sentence_text", "w2v_sentence", "sentence"}
	colorColumns    = []string{"predicted_color", "color"}
	fabricColumns   = []string{"predicted_fabric", "fabric"}
)

// SentenceRow is one historical outfit sentence.
type SentenceRow struct {
	OutfitID int
	Sentence string
}

// AttributeRow is the predicted dominant color and fabric of an outfit.
type AttributeRow struct {
	OutfitID int
	Color    string
	Fabric   string
}

// CSVReader reads training sources with DuckDB.
type CSVReader struct {
	db *sql.DB
}

// NewCSVReader opens an in-memory DuckDB connection.
func NewCSVReader() (*CSVReader, error) {
	db, err := sql.Open("duckdb", "")
	if err != nil {
		return nil, fmt.Errorf("open duckdb: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		db.Close() //nolint:errcheck // best-effort cleanup on error path
		return nil, fmt.Errorf("ping duckdb: %w", err)
	}

	return &CSVReader{db: db}, nil
}

// Close closes the database connection.
func (r *CSVReader) Close() error {
	return r.db.Close()
}

// ReadSentences reads the outfit sentence table in file order.
func (r *CSVReader) ReadSentences(ctx context.Context, path string) ([]SentenceRow, error) {
	start := time.Now()
	rows, err := r.readSentences(ctx, path)
	metrics.RecordDBQuery("read_csv", DatasetSentences, time.Since(start), err)
	return rows, err
}

func (r *CSVReader) readSentences(ctx context.Context, path string) ([]SentenceRow, error) {
	cols, err := r.resolveColumns(ctx, path, idColumns, sentenceColumns)
	if err != nil {
		return nil, err
	}

	query := fmt.Sprintf(`
		SELECT
			CAST(TRY_CAST(%[1]s AS BIGINT) AS BIGINT) AS outfit_id,
			COALESCE(%[2]s, '') AS sentence
		FROM %[3]s
		WHERE TRY_CAST(%[1]s AS BIGINT) IS NOT NULL
	`, quoteIdent(cols[0]), quoteIdent(cols[1]), csvSource(path))

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query sentences: %w", err)
	}
	defer rows.Close()

	var out []SentenceRow
	for rows.Next() {
		var id int64
		var row SentenceRow
		if err := rows.Scan(&id, &row.Sentence); err != nil {
			return nil, fmt.Errorf("scan sentence: %w", err)
		}
		row.OutfitID = int(id)
		out = append(out, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate sentences: %w", err)
	}
	return out, nil
}

// ReadAttributes reads the outfit color/fabric table in file order.
func (r *CSVReader) ReadAttributes(ctx context.Context, path string) ([]AttributeRow, error) {
	start := time.Now()
	rows, err := r.readAttributes(ctx, path)
	metrics.RecordDBQuery("read_csv", DatasetAttributes, time.Since(start), err)
	return rows, err
}

func (r *CSVReader) readAttributes(ctx context.Context, path string) ([]AttributeRow, error) {
	cols, err := r.resolveColumns(ctx, path, idColumns, colorColumns, fabricColumns)
	if err != nil {
		return nil, err
	}

	query := fmt.Sprintf(`
		SELECT
			CAST(TRY_CAST(%[1]s AS BIGINT) AS BIGINT) AS outfit_id,
			COALESCE(%[2]s, '') AS color,
			COALESCE(%[3]s, '') AS fabric
		FROM %[4]s
		WHERE TRY_CAST(%[1]s AS BIGINT) IS NOT NULL
	`, quoteIdent(cols[0]), quoteIdent(cols[1]), quoteIdent(cols[2]), csvSource(path))

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query attributes: %w", err)
	}
	defer rows.Close()

	var out []AttributeRow
	for rows.Next() {
		var id int64
		var row AttributeRow
		if err := rows.Scan(&id, &row.Color, &row.Fabric); err != nil {
			return nil, fmt.Errorf("scan attributes: %w", err)
		}
		row.OutfitID = int(id)
		out = append(out, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate attributes: %w", err)
	}
	return out, nil
}

// resolveColumns maps each group of accepted names to the actual header name.
func (r *CSVReader) resolveColumns(ctx context.Context, path string, groups ...[]string) ([]string, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("stat %s: %w", path, err)
	}

	rows, err := r.db.QueryContext(ctx, "SELECT * FROM "+csvSource(path)+" LIMIT 0")
	if err != nil {
		return nil, fmt.Errorf("read header of %s: %w", path, err)
	}
	defer rows.Close()

	header, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("read header of %s: %w", path, err)
	}

	byName := make(map[string]string, len(header))
	for _, h := range header {
		key := strings.ToLower(strings.TrimSpace(h))
		if _, ok := byName[key]; !ok {
			byName[key] = h
		}
	}

	resolved := make([]string, 0, len(groups))
	for _, names := range groups {
		found := ""
		for _, name := range names {
			if h, ok := byName[name]; ok {
				found = h
				break
			}
		}
		if found == "" {
			return nil, fmt.Errorf("%w: %s in %s", ErrColumnMissing, strings.Join(names, "|"), path)
		}
		resolved = append(resolved, found)
	}
	return resolved, nil
}

// csvSource renders a read_csv_auto call with every column read as text.
func csvSource(path string) string {
	return fmt.Sprintf("read_csv_auto('%s', header = true, all_varchar = true)", strings.ReplaceAll(path, "'", "''"))
}

func quoteIdent(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}
