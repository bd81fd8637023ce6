package ingest

import (
	"context"
	"database/sql"
	"fmt"
	"net/url"
	"path/filepath"
	"strings"

	"github.com/agentic-research/navtree/api"
	"github.com/ohler55/ojg/oj"
	_ "modernc.org/sqlite"
)

// SQLiteTable reads records from the results(id, record) table of a SQLite
// database, one JSON document per row.
type SQLiteTable struct {
	Path    string
	Extract *Extractor
}

// NewSQLiteTable returns a provider over the database at path.
func NewSQLiteTable(path string, x *Extractor) *SQLiteTable {
	if x == nil {
		x = DefaultExtractor()
	}
	return &SQLiteTable{Path: path, Extract: x}
}

// Records implements Provider. Rows come back in id order.
func (s *SQLiteTable) Records(ctx context.Context) ([]api.Record, error) {
	var records []api.Record
	err := StreamSQLite(ctx, s.Path, func(id string, record any) error {
		records = append(records, s.Extract.Extract(id, record))
		return nil
	})
	if err != nil {
		return nil, err
	}
	if records == nil {
		records = []api.Record{}
	}
	return records, nil
}

// StreamSQLite iterates over all records in a SQLite database, calling fn for each one.
// Only one parsed record is alive at a time, keeping memory usage constant.
func StreamSQLite(ctx context.Context, dbPath string, fn func(recordID string, record any) error) error {
	return StreamSQLiteRaw(ctx, dbPath, func(id, raw string) error {
		parsed, err := oj.ParseString(raw)
		if err != nil {
			return fmt.Errorf("parse record %s json: %w", id, err)
		}
		return fn(id, parsed)
	})
}

// StreamSQLiteRaw iterates over all records yielding raw (id, json) strings
// without parsing.
func StreamSQLiteRaw(ctx context.Context, dbPath string, fn func(id, raw string) error) error {
	dsn, err := sqliteDSN(dbPath)
	if err != nil {
		return err
	}
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return fmt.Errorf("open sqlite %s: %w", dbPath, err)
	}
	defer func() { _ = db.Close() }() // safe to ignore

	rows, err := db.QueryContext(ctx, "SELECT id, record FROM results ORDER BY id")
	if err != nil {
		return fmt.Errorf("query results: %w", err)
	}
	defer func() { _ = rows.Close() }() // safe to ignore

	for rows.Next() {
		var id, raw string
		if err := rows.Scan(&id, &raw); err != nil {
			return fmt.Errorf("scan row: %w", err)
		}
		if err := fn(id, raw); err != nil {
			return err
		}
	}
	return rows.Err()
}

// sqliteDSN builds a read-only URI filename for dbPath. The path is made
// absolute and percent-encoded so "?", "#" and "%" stay part of the name.
func sqliteDSN(dbPath string) (string, error) {
	abs, err := filepath.Abs(dbPath)
	if err != nil {
		return "", fmt.Errorf("resolve sqlite path %s: %w", dbPath, err)
	}
	p := filepath.ToSlash(abs)
	if !strings.HasPrefix(p, "/") {
		p = "/" + p // drive-letter paths
	}
	u := url.URL{Scheme: "file", Path: p, RawQuery: "mode=ro"}
	return u.String(), nil
}
