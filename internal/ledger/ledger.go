// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package ledger records batch conversions in a SQLite database so later
// runs can skip notebooks whose source has not changed.
package ledger

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/zeppelin2jupyter/pkg/types"
)

// Ledger is a SQLite-backed conversion ledger. It implements convert.Tracker.
type Ledger struct {
	db *sql.DB
}

// Open opens or creates the ledger database at path, creating parent
// directories and the schema as needed.
func Open(path string) (*Ledger, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("creating ledger directory: %w", err)
	}

	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("opening ledger: %w", err)
	}

	l := &Ledger{db: db}
	if err := l.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating ledger schema: %w", err)
	}
	return l, nil
}

// Close releases the database connection.
func (l *Ledger) Close() error {
	return l.db.Close()
}

func (l *Ledger) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS conversions (
			src TEXT PRIMARY KEY,
			digest TEXT NOT NULL,
			dst TEXT NOT NULL,
			cells INTEGER NOT NULL,
			dropped INTEGER NOT NULL,
			converted_at TEXT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_conversions_dst ON conversions(dst)`,
	}
	for _, stmt := range statements {
		if _, err := l.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// Unchanged reports whether src was last converted from content with the
// given digest into dst and dst still exists.
func (l *Ledger) Unchanged(ctx context.Context, src, digest, dst string) (bool, error) {
	var storedDigest, storedDst string
	err := l.db.QueryRowContext(ctx,
		`SELECT digest, dst FROM conversions WHERE src = ?`, src,
	).Scan(&storedDigest, &storedDst)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("looking up %s: %w", src, err)
	}

	if storedDigest != digest || storedDst != dst {
		return false, nil
	}
	if _, err := os.Stat(dst); err != nil {
		return false, nil
	}
	return true, nil
}

// Record upserts the entry for rec.Src.
func (l *Ledger) Record(ctx context.Context, rec types.ConversionRecord) error {
	convertedAt := rec.ConvertedAt
	if convertedAt.IsZero() {
		convertedAt = time.Now()
	}
	_, err := l.db.ExecContext(ctx,
		`INSERT INTO conversions (src, digest, dst, cells, dropped, converted_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(src) DO UPDATE SET
			digest = excluded.digest,
			dst = excluded.dst,
			cells = excluded.cells,
			dropped = excluded.dropped,
			converted_at = excluded.converted_at`,
		rec.Src, rec.Digest, rec.Dst, rec.Cells, rec.Dropped,
		convertedAt.UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("recording %s: %w", rec.Src, err)
	}
	return nil
}

// Entries returns every recorded conversion ordered by source path.
func (l *Ledger) Entries(ctx context.Context) ([]types.ConversionRecord, error) {
	rows, err := l.db.QueryContext(ctx,
		`SELECT src, digest, dst, cells, dropped, converted_at FROM conversions ORDER BY src`)
	if err != nil {
		return nil, fmt.Errorf("listing conversions: %w", err)
	}
	defer rows.Close()

	var records []types.ConversionRecord
	for rows.Next() {
		var rec types.ConversionRecord
		var convertedAt string
		if err := rows.Scan(&rec.Src, &rec.Digest, &rec.Dst, &rec.Cells, &rec.Dropped, &convertedAt); err != nil {
			return nil, fmt.Errorf("scanning conversion: %w", err)
		}
		t, err := time.Parse(time.RFC3339Nano, convertedAt)
		if err != nil {
			return nil, fmt.Errorf("parsing converted_at for %s: %w", rec.Src, err)
		}
		rec.ConvertedAt = t
		records = append(records, rec)
	}
	return records, rows.Err()
}
