package database

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/zvalenta/forumscan/internal/model"
)

// dbFileName is the run history database file name inside the data dir.
const dbFileName = "forumscan.db"

// RunDB provides SQLite-based storage for crawl run history.
// It manages connection pooling and provides methods for recording and
// querying past runs.
type RunDB struct {
	// db is the underlying SQL database connection.
	db *sql.DB

	// dbPath is the path to the SQLite database file.
	dbPath string
}

// Options configures RunDB behavior.
type Options struct {
	// CreateIfNotExists creates the database file if it doesn't exist.
	CreateIfNotExists bool

	// EnableWAL enables Write-Ahead Logging for better concurrent performance.
	// This is recommended for most use cases.
	EnableWAL bool
}

// DefaultOptions returns the default database options.
func DefaultOptions() Options {
	return Options{
		CreateIfNotExists: true,
		EnableWAL:         true,
	}
}

// Open opens or creates a RunDB at the specified directory.
// If CreateIfNotExists is true, the directory and database file are created.
// If CreateIfNotExists is false and the database doesn't exist, an error is returned.
func Open(dbDir string, opts Options) (*RunDB, error) {
	dbPath := filepath.Join(dbDir, dbFileName)

	if !opts.CreateIfNotExists {
		if _, err := os.Stat(dbPath); os.IsNotExist(err) {
			return nil, fmt.Errorf("database not found at %s (use CreateIfNotExists option to create)", dbPath)
		} else if err != nil {
			return nil, fmt.Errorf("failed to check database path: %w", err)
		}
	} else {
		if err := os.MkdirAll(dbDir, 0750); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	// modernc.org/sqlite uses its own connection string format:
	// mode=rw prevents creating new files, mode=rwc allows creation.
	var dsn string
	if opts.CreateIfNotExists {
		dsn = dbPath + "?mode=rwc"
	} else {
		dsn = dbPath + "?mode=rw"
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// SQLite only supports one writer; a single connection also keeps
	// run and page inserts on the same transaction boundary.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(time.Hour)

	rdb := &RunDB{
		db:     db,
		dbPath: dbPath,
	}

	if opts.EnableWAL {
		if _, err := db.ExecContext(context.Background(), "PRAGMA journal_mode=WAL"); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("failed to enable WAL mode: %w", err)
		}
	}

	if err := rdb.createTables(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create tables: %w", err)
	}

	return rdb, nil
}

// Close closes the database connection.
func (rdb *RunDB) Close() error {
	return rdb.db.Close()
}

// Path returns the database file path.
func (rdb *RunDB) Path() string {
	return rdb.dbPath
}

// createTables creates the database schema if it doesn't exist.
func (rdb *RunDB) createTables() error {
	schema := `
	-- Runs store one row per crawl invocation
	CREATE TABLE IF NOT EXISTS runs (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		mode TEXT NOT NULL,
		started_at DATETIME NOT NULL,
		finished_at DATETIME NOT NULL,
		pages INTEGER NOT NULL,
		succeeded INTEGER NOT NULL,
		skipped INTEGER NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_runs_mode ON runs(mode);
	CREATE INDEX IF NOT EXISTS idx_runs_started ON runs(started_at);

	-- Pages store one row per fetched page of a run
	CREATE TABLE IF NOT EXISTS pages (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		run_id INTEGER NOT NULL REFERENCES runs(id),
		identifier TEXT NOT NULL,
		page_or_offset TEXT NOT NULL,
		url TEXT NOT NULL,
		status TEXT NOT NULL,
		http_status INTEGER,
		content_length INTEGER,
		records INTEGER,
		file TEXT,
		fetched_at DATETIME
	);

	CREATE INDEX IF NOT EXISTS idx_pages_run ON pages(run_id);
	CREATE INDEX IF NOT EXISTS idx_pages_identifier ON pages(identifier);
	`

	_, err := rdb.db.ExecContext(context.Background(), schema)
	return err
}

// SaveRun stores a finished run summary with all its page rows in one
// transaction. Returns the new run's id.
func (rdb *RunDB) SaveRun(ctx context.Context, summary *model.RunSummary) (int64, error) {
	tx, err := rdb.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // no-op after commit

	result, err := tx.ExecContext(ctx,
		`INSERT INTO runs (mode, started_at, finished_at, pages, succeeded, skipped)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		summary.Mode,
		summary.StartedAt.UTC().Format(sqliteTimeFormat),
		summary.FinishedAt.UTC().Format(sqliteTimeFormat),
		len(summary.Pages),
		summary.Succeeded,
		summary.Skipped,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to insert run: %w", err)
	}
	runID, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to read run id: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO pages (run_id, identifier, page_or_offset, url, status, http_status, content_length, records, file, fetched_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return 0, fmt.Errorf("failed to prepare page insert: %w", err)
	}
	defer stmt.Close() //nolint:errcheck // read-only cleanup

	for _, p := range summary.Pages {
		if _, err := stmt.ExecContext(ctx,
			runID,
			p.Target.Identifier,
			p.Target.StartOffset,
			p.Target.URL,
			p.Fetch.Status.String(),
			p.Fetch.HTTPStatus,
			p.Fetch.ContentLength,
			p.Records,
			p.FileName,
			p.Fetch.FetchedAt.UTC().Format(sqliteTimeFormat),
		); err != nil {
			return 0, fmt.Errorf("failed to insert page row: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit run: %w", err)
	}
	return runID, nil
}

// RunRecord is one stored run row.
type RunRecord struct {
	ID         int64
	Mode       string
	StartedAt  time.Time
	FinishedAt time.Time
	Pages      int
	Succeeded  int
	Skipped    int
}

// PageRecord is one stored page row of a run.
type PageRecord struct {
	ID            int64
	RunID         int64
	Identifier    string
	PageOrOffset  string
	URL           string
	Status        string
	HTTPStatus    int
	ContentLength int
	Records       int
	File          string
	FetchedAt     time.Time
}

// LastRun returns the most recently started run, or nil when the
// database holds no runs yet.
func (rdb *RunDB) LastRun(ctx context.Context) (*RunRecord, error) {
	row := rdb.db.QueryRowContext(ctx,
		`SELECT id, mode, started_at, finished_at, pages, succeeded, skipped
		 FROM runs ORDER BY started_at DESC, id DESC LIMIT 1`)

	var rec RunRecord
	var started, finished string
	err := row.Scan(&rec.ID, &rec.Mode, &started, &finished, &rec.Pages, &rec.Succeeded, &rec.Skipped)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get last run: %w", err)
	}

	rec.StartedAt = parseTimestamp(started)
	rec.FinishedAt = parseTimestamp(finished)
	return &rec, nil
}

// RunPages returns the page rows of one run, in insertion order.
func (rdb *RunDB) RunPages(ctx context.Context, runID int64) ([]PageRecord, error) {
	rows, err := rdb.db.QueryContext(ctx,
		`SELECT id, run_id, identifier, page_or_offset, url, status, http_status, content_length, records, file, fetched_at
		 FROM pages WHERE run_id = ? ORDER BY id`, runID)
	if err != nil {
		return nil, fmt.Errorf("failed to query run pages: %w", err)
	}
	defer rows.Close() //nolint:errcheck // read-only cleanup

	var records []PageRecord
	for rows.Next() {
		var rec PageRecord
		var fetched string
		if err := rows.Scan(
			&rec.ID, &rec.RunID, &rec.Identifier, &rec.PageOrOffset, &rec.URL,
			&rec.Status, &rec.HTTPStatus, &rec.ContentLength, &rec.Records,
			&rec.File, &fetched,
		); err != nil {
			return nil, fmt.Errorf("failed to scan page row: %w", err)
		}
		rec.FetchedAt = parseTimestamp(fetched)
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate page rows: %w", err)
	}
	return records, nil
}

// sqliteTimeFormat is the canonical datetime format we store.
const sqliteTimeFormat = "2006-01-02 15:04:05"

// timestampFormats contains the timestamp formats that SQLite may return.
// The order matters: more specific formats should come first.
var timestampFormats = []string{
	"2006-01-02 15:04:05",     // SQLite default datetime format
	"2006-01-02T15:04:05Z",    // ISO 8601 with Z suffix
	"2006-01-02T15:04:05",     // ISO 8601 without timezone
	time.RFC3339,              // Full RFC3339 format
	time.RFC3339Nano,          // RFC3339 with nanoseconds
	"2006-01-02 15:04:05.999", // SQLite with milliseconds
}

// parseTimestamp attempts to parse a timestamp string using multiple formats.
// SQLite may return timestamps in different formats depending on configuration.
// If parsing fails with all formats, returns zero time.
func parseTimestamp(s string) time.Time {
	for _, format := range timestampFormats {
		if t, err := time.Parse(format, s); err == nil {
			return t
		}
	}
	return time.Time{}
}
