package sqlite

import (
	"context"
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"postsmith/internal/domain"
	"postsmith/internal/ports"

	_ "modernc.org/sqlite"
)

const (
	schemaVersion = "1"

	// DefaultRetention is the number of runs kept per output directory
	DefaultRetention = 500
)

// History implements ports.BuildHistory using SQLite
type History struct {
	db         *sql.DB
	outputPath string
	dbPath     string
	retention  int
}

// Ensure History implements BuildHistory
var _ ports.BuildHistory = (*History)(nil)

// Open opens (creating if needed) the ledger for an output directory
func Open(outputPath string) (*History, error) {
	return OpenAt(databasePath(outputPath), outputPath)
}

// OpenAt opens the ledger stored at dbPath
func OpenAt(dbPath, outputPath string) (*History, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("failed to create history directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath+"?_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	_, err = db.Exec(`
		PRAGMA synchronous = NORMAL;
		PRAGMA busy_timeout = 5000;

		CREATE TABLE IF NOT EXISTS runs (
			id TEXT PRIMARY KEY,
			started_at INTEGER NOT NULL,
			output_path TEXT NOT NULL,
			duration_ms INTEGER NOT NULL,
			created INTEGER NOT NULL,
			modified INTEGER NOT NULL,
			deleted INTEGER NOT NULL,
			saved TEXT NOT NULL,
			reseeded TEXT NOT NULL,
			forced INTEGER NOT NULL
		);
		CREATE TABLE IF NOT EXISTS meta (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_runs_started ON runs(started_at);
	`)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to setup database: %w", err)
	}

	h := &History{
		db:         db,
		outputPath: outputPath,
		dbPath:     dbPath,
		retention:  DefaultRetention,
	}
	if err := h.updateMeta(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to update metadata: %w", err)
	}
	return h, nil
}

// Path returns the database file location
func (h *History) Path() string {
	return h.dbPath
}

// Close closes the database connection
func (h *History) Close() error {
	if h.db != nil {
		return h.db.Close()
	}
	return nil
}

// Record stores a run, assigning an ID when it has none, and trims the
// ledger to its retention
func (h *History) Record(ctx context.Context, run *domain.BuildRun) error {
	if run.ID == "" {
		run.ID = uuid.NewString()
	}
	if run.OutputPath == "" {
		run.OutputPath = h.outputPath
	}

	tx, err := h.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	s := run.Stats
	_, err = tx.ExecContext(ctx, `
		INSERT INTO runs (id, started_at, output_path, duration_ms, created, modified, deleted, saved, reseeded, forced)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, run.ID, run.StartedAt.UnixMilli(), run.OutputPath, s.Duration.Milliseconds(),
		s.Created, s.Modified, s.Deleted, strings.Join(s.Saved, ","), strings.Join(s.Reseeded, ","), boolInt(s.Forced))
	if err != nil {
		return fmt.Errorf("failed to insert run: %w", err)
	}

	_, err = tx.ExecContext(ctx, `
		DELETE FROM runs WHERE id NOT IN (
			SELECT id FROM runs ORDER BY started_at DESC, rowid DESC LIMIT ?
		)
	`, h.retention)
	if err != nil {
		return fmt.Errorf("failed to trim history: %w", err)
	}

	return tx.Commit()
}

// Recent returns up to limit runs, newest first
func (h *History) Recent(ctx context.Context, limit int) ([]domain.BuildRun, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := h.db.QueryContext(ctx, `
		SELECT id, started_at, output_path, duration_ms, created, modified, deleted, saved, reseeded, forced
		FROM runs ORDER BY started_at DESC, rowid DESC LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query runs: %w", err)
	}
	defer rows.Close()

	var runs []domain.BuildRun
	for rows.Next() {
		var (
			run             domain.BuildRun
			startedAt, ms   int64
			saved, reseeded string
			forced          int
		)
		err := rows.Scan(&run.ID, &startedAt, &run.OutputPath, &ms,
			&run.Stats.Created, &run.Stats.Modified, &run.Stats.Deleted, &saved, &reseeded, &forced)
		if err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		run.StartedAt = time.UnixMilli(startedAt)
		run.Stats.Duration = time.Duration(ms) * time.Millisecond
		run.Stats.Saved = splitList(saved)
		run.Stats.Reseeded = splitList(reseeded)
		run.Stats.Forced = forced != 0
		runs = append(runs, run)
	}
	return runs, rows.Err()
}

// databasePath returns the path for the SQLite database
func databasePath(outputPath string) string {
	// XDG data directory
	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, _ := os.UserHomeDir()
		dataHome = filepath.Join(home, ".local", "share")
	}

	return filepath.Join(dataHome, "postsmith", hashOutputPath(outputPath)+".db")
}

// hashOutputPath returns a short hash of the output path
func hashOutputPath(outputPath string) string {
	h := sha256.Sum256([]byte(outputPath))
	return hex.EncodeToString(h[:8]) // First 8 bytes = 16 hex chars
}

func (h *History) updateMeta() error {
	meta := map[string]string{
		"schema_version":   schemaVersion,
		"output_path_hash": hashOutputPath(h.outputPath),
	}
	for key, value := range meta {
		_, err := h.db.Exec(`INSERT OR REPLACE INTO meta (key, value) VALUES (?, ?)`, key, value)
		if err != nil {
			return err
		}
	}
	return nil
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

func splitList(s string) []string {
	if s == "" {
		return nil
	}
	return strings.Split(s, ",")
}
