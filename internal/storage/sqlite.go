package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"asmlens/internal/report"

	_ "github.com/mattn/go-sqlite3"
)

type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore creates or opens a SQLite database.
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}

	if err := db.Ping(); err != nil {
		return nil, err
	}

	s := &SQLiteStore{db: db}
	if err := s.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to init schema: %w", err)
	}

	return s, nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) initSchema() error {
	queries := []string{
		`CREATE TABLE IF NOT EXISTS assemblies (
			name TEXT PRIMARY KEY,
			full_name TEXT,
			version TEXT,
			culture TEXT,
			public_key_token TEXT,
			runtime TEXT,
			architecture TEXT,
			kind TEXT,
			location TEXT,
			analyzed_at TEXT
		);`,
		`CREATE TABLE IF NOT EXISTS types (
			assembly TEXT,
			seq INTEGER,
			full_name TEXT,
			category TEXT,
			record JSON,
			PRIMARY KEY (assembly, full_name)
		);`,
		`CREATE TABLE IF NOT EXISTS external_calls (
			assembly TEXT,
			seq INTEGER,
			info JSON
		);`,
		`CREATE TABLE IF NOT EXISTS external_targets (
			assembly TEXT,
			seq INTEGER,
			target TEXT,
			PRIMARY KEY (assembly, target)
		);`,
		`CREATE INDEX IF NOT EXISTS idx_types_category ON types(assembly, category);`,
	}

	for _, q := range queries {
		if _, err := s.db.Exec(q); err != nil {
			return err
		}
	}
	return nil
}

// SaveReport persists a whole analysis run, replacing any previous run
// for the same assembly. Row sequence numbers preserve the report's
// deterministic ordering across a save/load cycle.
func (s *SQLiteStore) SaveReport(ctx context.Context, r *report.AssemblyReport) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for _, q := range []string{
		"DELETE FROM types WHERE assembly = ?",
		"DELETE FROM external_calls WHERE assembly = ?",
		"DELETE FROM external_targets WHERE assembly = ?",
	} {
		if _, err := tx.ExecContext(ctx, q, r.Name); err != nil {
			return err
		}
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO assemblies (name, full_name, version, culture, public_key_token, runtime, architecture, kind, location, analyzed_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(name) DO UPDATE SET
			full_name=excluded.full_name,
			version=excluded.version,
			culture=excluded.culture,
			public_key_token=excluded.public_key_token,
			runtime=excluded.runtime,
			architecture=excluded.architecture,
			kind=excluded.kind,
			location=excluded.location,
			analyzed_at=excluded.analyzed_at
	`, r.Name, r.FullName, r.Version, r.Culture, r.PublicKeyToken, r.Runtime, r.Architecture, r.Kind, r.Location,
		time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		return err
	}

	typeStmt, err := tx.PrepareContext(ctx, `
		INSERT INTO types (assembly, seq, full_name, category, record) VALUES (?, ?, ?, ?, ?)
	`)
	if err != nil {
		return err
	}
	defer typeStmt.Close()

	for i, t := range r.Types {
		record, err := json.Marshal(t)
		if err != nil {
			return fmt.Errorf("failed to serialize type %s: %w", t.FullName, err)
		}
		if _, err := typeStmt.Exec(r.Name, i, t.FullName, string(t.Category), record); err != nil {
			return err
		}
	}

	callStmt, err := tx.PrepareContext(ctx, `
		INSERT INTO external_calls (assembly, seq, info) VALUES (?, ?, ?)
	`)
	if err != nil {
		return err
	}
	defer callStmt.Close()

	for i, c := range r.ExternalCalls {
		info, err := json.Marshal(c)
		if err != nil {
			return fmt.Errorf("failed to serialize external call: %w", err)
		}
		if _, err := callStmt.Exec(r.Name, i, info); err != nil {
			return err
		}
	}

	targetStmt, err := tx.PrepareContext(ctx, `
		INSERT INTO external_targets (assembly, seq, target) VALUES (?, ?, ?)
	`)
	if err != nil {
		return err
	}
	defer targetStmt.Close()

	for i, target := range r.ExternalTargets {
		if _, err := targetStmt.Exec(r.Name, i, target); err != nil {
			return err
		}
	}

	return tx.Commit()
}

// LoadReport reconstructs a persisted analysis run by assembly name.
func (s *SQLiteStore) LoadReport(ctx context.Context, name string) (*report.AssemblyReport, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT name, full_name, version, culture, public_key_token, runtime, architecture, kind, location
		FROM assemblies WHERE name = ?
	`, name)

	r := &report.AssemblyReport{}
	if err := row.Scan(&r.Name, &r.FullName, &r.Version, &r.Culture, &r.PublicKeyToken, &r.Runtime, &r.Architecture, &r.Kind, &r.Location); err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("no stored analysis for assembly %s", name)
		}
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, "SELECT record FROM types WHERE assembly = ? ORDER BY seq", name)
	if err != nil {
		return nil, fmt.Errorf("failed to query types: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var record []byte
		if err := rows.Scan(&record); err != nil {
			return nil, fmt.Errorf("failed to scan type row: %w", err)
		}
		var t report.TypeRecord
		if err := json.Unmarshal(record, &t); err != nil {
			return nil, fmt.Errorf("failed to decode type record: %w", err)
		}
		r.Types = append(r.Types, &t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	callRows, err := s.db.QueryContext(ctx, "SELECT info FROM external_calls WHERE assembly = ? ORDER BY seq", name)
	if err != nil {
		return nil, fmt.Errorf("failed to query external calls: %w", err)
	}
	defer callRows.Close()

	for callRows.Next() {
		var info []byte
		if err := callRows.Scan(&info); err != nil {
			return nil, fmt.Errorf("failed to scan external call row: %w", err)
		}
		var c report.ExternalCallInfo
		if err := json.Unmarshal(info, &c); err != nil {
			return nil, fmt.Errorf("failed to decode external call: %w", err)
		}
		r.ExternalCalls = append(r.ExternalCalls, c)
	}
	if err := callRows.Err(); err != nil {
		return nil, err
	}

	targetRows, err := s.db.QueryContext(ctx, "SELECT target FROM external_targets WHERE assembly = ? ORDER BY seq", name)
	if err != nil {
		return nil, fmt.Errorf("failed to query external targets: %w", err)
	}
	defer targetRows.Close()

	for targetRows.Next() {
		var target string
		if err := targetRows.Scan(&target); err != nil {
			return nil, fmt.Errorf("failed to scan target row: %w", err)
		}
		r.ExternalTargets = append(r.ExternalTargets, target)
	}
	return r, targetRows.Err()
}

// ListAssemblies returns the names of all stored analysis runs.
func (s *SQLiteStore) ListAssemblies(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT name FROM assemblies ORDER BY name")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		names = append(names, name)
	}
	return names, rows.Err()
}
