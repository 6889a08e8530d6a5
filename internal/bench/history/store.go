// Package history persists benchmark results in a local SQLite database so
// runs can be compared across machines, versions and settings.
package history

import (
	"context"
	"database/sql"
	"encoding/json"
	"os"
	"path/filepath"
	"runtime"
	"sync"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"

	pberror "github.com/msto63/pibench/foundation/core/error"
	"github.com/msto63/pibench/internal/bench"
)

// Run is one recorded benchmark result
type Run struct {
	ID            string                 `json:"id"`
	StartedAt     time.Time              `json:"started_at"`
	Digits        int                    `json:"digits"`
	RepsPerThread int                    `json:"reps_per_thread"`
	Workers       int                    `json:"workers"`
	Mode          string                 `json:"mode"`
	TotalTasks    int                    `json:"total_tasks"`
	TotalTimeMs   float64                `json:"total_time_ms"`
	CalcsPerSec   float64                `json:"calcs_per_sec"`
	Host          string                 `json:"host"`
	GoVersion     string                 `json:"go_version"`
	Metadata      map[string]interface{} `json:"metadata,omitempty"`
}

// FromResult converts a harness result into a history row, stamped with
// the current host and runtime
func FromResult(r bench.Result) *Run {
	host, _ := os.Hostname()
	return &Run{
		ID:            r.RunID,
		StartedAt:     r.StartedAt,
		Digits:        r.Digits,
		RepsPerThread: r.RepsPerThread,
		Workers:       r.Workers,
		Mode:          string(r.Mode),
		TotalTasks:    r.TotalTasks,
		TotalTimeMs:   r.TotalTimeMs,
		CalcsPerSec:   r.CalcsPerSec,
		Host:          host,
		GoVersion:     runtime.Version(),
		Metadata: map[string]interface{}{
			"num_cpu":    runtime.NumCPU(),
			"gomaxprocs": runtime.GOMAXPROCS(0),
			"goos":       runtime.GOOS,
			"goarch":     runtime.GOARCH,
		},
	}
}

// Filter defines criteria for listing runs
type Filter struct {
	Digits  int
	Workers int
	Mode    string
	Since   time.Time
	Limit   int
}

// Summary aggregates the runs matching a filter
type Summary struct {
	Runs          int
	BestPerSec    float64
	MeanPerSec    float64
	FastestTimeMs float64
	SlowestTimeMs float64
}

// Store defines the interface for run persistence
type Store interface {
	Record(ctx context.Context, run *Run) error
	List(ctx context.Context, filter Filter) ([]*Run, error)
	Summarize(ctx context.Context, filter Filter) (Summary, error)
	Prune(ctx context.Context, olderThan time.Duration) (int64, error)
	Close() error
}

// SQLiteStore implements Store using SQLite
type SQLiteStore struct {
	db *sql.DB
	mu sync.RWMutex
}

// Config holds configuration for the SQLite store
type Config struct {
	Path string
}

// Open creates or opens a SQLite history database
func Open(cfg Config) (*SQLiteStore, error) {
	dir := filepath.Dir(cfg.Path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, storageError("failed to create directory", err).WithDetail("path", dir)
	}

	db, err := sql.Open("sqlite3", cfg.Path+"?_journal_mode=WAL&_synchronous=NORMAL")
	if err != nil {
		return nil, storageError("failed to open database", err).WithDetail("path", cfg.Path)
	}

	store := &SQLiteStore{db: db}
	if err := store.initSchema(); err != nil {
		db.Close()
		return nil, storageError("failed to initialize schema", err).WithDetail("path", cfg.Path)
	}
	return store, nil
}

func (s *SQLiteStore) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS runs (
		id TEXT PRIMARY KEY,
		started_at DATETIME NOT NULL,
		digits INTEGER NOT NULL,
		reps_per_thread INTEGER NOT NULL,
		workers INTEGER NOT NULL,
		mode TEXT NOT NULL,
		total_tasks INTEGER NOT NULL,
		total_time_ms REAL NOT NULL,
		calcs_per_sec REAL NOT NULL,
		host TEXT,
		go_version TEXT,
		metadata TEXT
	);

	CREATE INDEX IF NOT EXISTS idx_runs_started_at ON runs(started_at DESC);
	CREATE INDEX IF NOT EXISTS idx_runs_digits_workers ON runs(digits, workers);
	`
	_, err := s.db.Exec(schema)
	return err
}

// Record stores a run. A missing id or start time is filled in.
func (s *SQLiteStore) Record(ctx context.Context, run *Run) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if run.ID == "" {
		run.ID = uuid.NewString()
	}
	if run.StartedAt.IsZero() {
		run.StartedAt = time.Now()
	}

	var metadataJSON []byte
	if run.Metadata != nil {
		var err error
		if metadataJSON, err = json.Marshal(run.Metadata); err != nil {
			return storageError("failed to encode metadata", err).WithDetail("run_id", run.ID)
		}
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO runs (id, started_at, digits, reps_per_thread, workers, mode,
			total_tasks, total_time_ms, calcs_per_sec, host, go_version, metadata)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, run.ID, run.StartedAt.UTC(), run.Digits, run.RepsPerThread, run.Workers, run.Mode,
		run.TotalTasks, run.TotalTimeMs, run.CalcsPerSec, run.Host, run.GoVersion, metadataJSON)
	if err != nil {
		return storageError("failed to insert run", err).WithDetail("run_id", run.ID)
	}
	return nil
}

// List returns runs matching filter, newest first
func (s *SQLiteStore) List(ctx context.Context, filter Filter) ([]*Run, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	where, args := filter.where()
	query := `SELECT id, started_at, digits, reps_per_thread, workers, mode, total_tasks,
		total_time_ms, calcs_per_sec, host, go_version, metadata FROM runs` + where +
		" ORDER BY started_at DESC"
	if filter.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, filter.Limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, storageError("failed to query runs", err)
	}
	defer rows.Close()

	var runs []*Run
	for rows.Next() {
		var run Run
		var host, goVersion, metadataJSON sql.NullString

		if err := rows.Scan(&run.ID, &run.StartedAt, &run.Digits, &run.RepsPerThread, &run.Workers,
			&run.Mode, &run.TotalTasks, &run.TotalTimeMs, &run.CalcsPerSec,
			&host, &goVersion, &metadataJSON); err != nil {
			return nil, storageError("failed to scan run", err)
		}

		run.Host = host.String
		run.GoVersion = goVersion.String
		if metadataJSON.Valid && metadataJSON.String != "" {
			if err := json.Unmarshal([]byte(metadataJSON.String), &run.Metadata); err != nil {
				return nil, storageError("failed to decode metadata", err).WithDetail("run_id", run.ID)
			}
		}
		runs = append(runs, &run)
	}
	if err := rows.Err(); err != nil {
		return nil, storageError("failed to read runs", err)
	}
	return runs, nil
}

// Summarize aggregates throughput over the runs matching filter
func (s *SQLiteStore) Summarize(ctx context.Context, filter Filter) (Summary, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	where, args := filter.where()
	row := s.db.QueryRowContext(ctx, `
		SELECT COUNT(*), COALESCE(MAX(calcs_per_sec), 0), COALESCE(AVG(calcs_per_sec), 0),
			COALESCE(MIN(total_time_ms), 0), COALESCE(MAX(total_time_ms), 0)
		FROM runs`+where, args...)

	var sum Summary
	if err := row.Scan(&sum.Runs, &sum.BestPerSec, &sum.MeanPerSec, &sum.FastestTimeMs, &sum.SlowestTimeMs); err != nil {
		return Summary{}, storageError("failed to summarize runs", err)
	}
	return sum, nil
}

// Prune deletes runs older than the given age
func (s *SQLiteStore) Prune(ctx context.Context, olderThan time.Duration) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cutoff := time.Now().Add(-olderThan).UTC()
	result, err := s.db.ExecContext(ctx, `DELETE FROM runs WHERE started_at < ?`, cutoff)
	if err != nil {
		return 0, storageError("failed to prune runs", err)
	}
	deleted, err := result.RowsAffected()
	if err != nil {
		return 0, storageError("failed to count pruned runs", err)
	}
	return deleted, nil
}

// Close closes the database
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (f Filter) where() (string, []interface{}) {
	clause := " WHERE 1=1"
	var args []interface{}

	if f.Digits > 0 {
		clause += " AND digits = ?"
		args = append(args, f.Digits)
	}
	if f.Workers > 0 {
		clause += " AND workers = ?"
		args = append(args, f.Workers)
	}
	if f.Mode != "" {
		clause += " AND mode = ?"
		args = append(args, f.Mode)
	}
	if !f.Since.IsZero() {
		clause += " AND started_at >= ?"
		args = append(args, f.Since.UTC())
	}
	return clause, args
}

func storageError(message string, err error) *pberror.Error {
	return pberror.Wrap(err, message).
		WithCode(pberror.CodeStorageError).
		WithOperation("history")
}
