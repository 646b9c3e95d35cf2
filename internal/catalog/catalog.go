// Package catalog indexes parsed .xy scans into a local SQLite
// database so measurement campaigns can be browsed without re-parsing
// every export.
package catalog

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/banshee-data/spectra.report/internal/spectrum"
	"github.com/banshee-data/spectra.report/internal/xy"
)

type DB struct {
	*sql.DB
}

// NewDB opens (creating if necessary) the scan catalog at path.
func NewDB(path string) (*DB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}

	_, err = db.Exec(`
		CREATE TABLE IF NOT EXISTS scans (
			scan_id           TEXT PRIMARY KEY,
			path              TEXT,
			group_name        TEXT,
			trial_name        TEXT,
			analyzer_lens     TEXT,
			scan_variable     TEXT,
			dims              TEXT,
			shape             TEXT,
			samples           BIGINT,
			recorded_at       TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		);
	`)
	if err != nil {
		return nil, err
	}

	return &DB{db}, nil
}

// Scan is one catalogued reconstruction.
type Scan struct {
	ScanID       string
	Path         string
	GroupName    string
	TrialName    string
	AnalyzerLens string
	ScanVariable string
	Dims         string
	Shape        string
	Samples      int64
}

// RecordScan stores one reconstructed dataset under a fresh scan id and
// returns the id.
func (db *DB) RecordScan(path, group, trial string, ds *spectrum.Dataset) (string, error) {
	arr := ds.Spectrum

	shape := make([]string, len(arr.Shape))
	for i, s := range arr.Shape {
		shape[i] = fmt.Sprintf("%d", s)
	}

	id := uuid.NewString()
	_, err := db.Exec(`
		INSERT INTO scans (scan_id, path, group_name, trial_name, analyzer_lens, scan_variable, dims, shape, samples)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		id,
		path,
		group,
		trial,
		ds.Attrs[xy.MarkerAnalyzerLens],
		ds.Attrs[xy.MarkerScanVariable],
		strings.Join(arr.Dims, ","),
		strings.Join(shape, "x"),
		int64(len(arr.Data)),
	)
	if err != nil {
		return "", fmt.Errorf("catalog: failed to record scan: %w", err)
	}
	return id, nil
}

// ListScans returns the most recent scans, newest first.
func (db *DB) ListScans(limit int) ([]Scan, error) {
	if limit <= 0 {
		limit = 100
	}
	rows, err := db.Query(`
		SELECT scan_id, path, group_name, trial_name, analyzer_lens, scan_variable, dims, shape, samples
		FROM scans ORDER BY recorded_at DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("catalog: failed to list scans: %w", err)
	}
	defer rows.Close()

	var scans []Scan
	for rows.Next() {
		var s Scan
		if err := rows.Scan(&s.ScanID, &s.Path, &s.GroupName, &s.TrialName,
			&s.AnalyzerLens, &s.ScanVariable, &s.Dims, &s.Shape, &s.Samples); err != nil {
			return nil, fmt.Errorf("catalog: failed to scan row: %w", err)
		}
		scans = append(scans, s)
	}
	return scans, rows.Err()
}
