package history

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"burrow/internal/engine/analysis"

	_ "modernc.org/sqlite"
)

const driverName = "sqlite"

// Snapshot is one persisted analysis run.
type Snapshot struct {
	RunID           string
	Root            string
	Timestamp       time.Time
	FileCount       int
	ModuleCount     int
	EdgeCount       int
	DeadCount       int
	DiagnosticCount int
	MaxDepth        int
	TopScore        int
}

type Store struct {
	path string
	db   *sql.DB
	mu   sync.Mutex
}

func Open(path string) (*Store, error) {
	cleanPath := strings.TrimSpace(path)
	if cleanPath == "" {
		return nil, fmt.Errorf("history path must not be empty")
	}
	if info, err := os.Stat(cleanPath); err == nil && info.IsDir() {
		return nil, fmt.Errorf("history path %q is a directory, expected file", cleanPath)
	}

	dir := filepath.Dir(cleanPath)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create history directory %q: %w", dir, err)
		}
	}

	// busy_timeout + WAL reduce lock conflicts during watch-mode churn.
	dsn := fmt.Sprintf("file:%s?_pragma=busy_timeout(2000)&_pragma=journal_mode(WAL)&_pragma=foreign_keys(ON)", cleanPath)
	db, err := sql.Open(driverName, dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite history %q: %w", cleanPath, err)
	}
	db.SetMaxOpenConns(1)
	db.SetConnMaxLifetime(0)
	db.SetConnMaxIdleTime(0)

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping sqlite history %q: %w", cleanPath, err)
	}
	if err := EnsureSchema(db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("initialize sqlite schema %q: %w", cleanPath, err)
	}

	return &Store{path: cleanPath, db: db}, nil
}

func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// SaveResult persists one analysis run: a summary row plus one row per
// module.
func (s *Store) SaveResult(result *analysis.Result) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if result == nil || result.RunID == "" {
		return fmt.Errorf("result with run id required")
	}

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin save: %w", err)
	}

	now := time.Now().UTC().Format(time.RFC3339Nano)
	_, err = tx.Exec(`
INSERT INTO runs (
  run_id, root, schema_version, ts_utc, file_count, module_count,
  edge_count, dead_count, diagnostic_count, max_depth, top_score
) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
`,
		result.RunID,
		result.Root,
		SchemaVersion,
		now,
		result.FileCount,
		len(result.Records),
		result.EdgeCount(),
		result.DeadCount(),
		len(result.Diagnostics),
		result.MaxDepth(),
		result.TopScore(),
	)
	if err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("insert run: %w", err)
	}

	stmt, err := tx.Prepare(`
INSERT INTO run_modules (run_id, module, path, depth, import_count, score)
VALUES (?, ?, ?, ?, ?, ?)
`)
	if err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("prepare module insert: %w", err)
	}
	defer stmt.Close()

	for _, rec := range result.Records {
		if _, err := stmt.Exec(result.RunID, rec.Module, rec.Path, rec.Depth, rec.ImportCount, rec.Score); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("insert module %s: %w", rec.Module, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit save: %w", err)
	}
	return nil
}

// RecentSnapshots returns up to limit run summaries for a root, newest
// first.
func (s *Store) RecentSnapshots(root string, limit int) ([]Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if limit <= 0 {
		limit = 10
	}

	rows, err := s.db.Query(`
SELECT run_id, root, ts_utc, file_count, module_count, edge_count,
       dead_count, diagnostic_count, max_depth, top_score
FROM runs
WHERE root = ?
ORDER BY ts_utc DESC
LIMIT ?
`, root, limit)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer rows.Close()

	var out []Snapshot
	for rows.Next() {
		var snap Snapshot
		var ts string
		if err := rows.Scan(
			&snap.RunID, &snap.Root, &ts, &snap.FileCount, &snap.ModuleCount,
			&snap.EdgeCount, &snap.DeadCount, &snap.DiagnosticCount,
			&snap.MaxDepth, &snap.TopScore,
		); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		if parsed, err := time.Parse(time.RFC3339Nano, ts); err == nil {
			snap.Timestamp = parsed
		}
		out = append(out, snap)
	}
	return out, rows.Err()
}

// ModuleScores returns module -> score for one run.
func (s *Store) ModuleScores(runID string) (map[string]int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rows, err := s.db.Query(`SELECT module, score FROM run_modules WHERE run_id = ?`, runID)
	if err != nil {
		return nil, fmt.Errorf("query run modules: %w", err)
	}
	defer rows.Close()

	out := make(map[string]int)
	for rows.Next() {
		var module string
		var score int
		if err := rows.Scan(&module, &score); err != nil {
			return nil, fmt.Errorf("scan module row: %w", err)
		}
		out[module] = score
	}
	return out, rows.Err()
}
