package database

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/nao1215/sysreport/internal/model"
)

// FileName is the database file created inside the history directory.
const FileName = "sysreport.db"

// timeLayout is fixed width so collected_at sorts lexically.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

// ErrNotFound is returned when a requested snapshot does not exist.
var ErrNotFound = errors.New("snapshot not found")

// HistoryDB stores collected snapshots.
type HistoryDB struct {
	db     *sql.DB
	dbPath string
}

// Options configures HistoryDB behavior.
type Options struct {
	// CreateIfNotExists creates the directory and database file if missing.
	CreateIfNotExists bool

	// EnableWAL enables Write-Ahead Logging.
	EnableWAL bool
}

// DefaultOptions returns the default database options.
func DefaultOptions() Options {
	return Options{
		CreateIfNotExists: true,
		EnableWAL:         true,
	}
}

// Open opens or creates the history database in dbDir.
// With CreateIfNotExists false, a missing database is an error.
func Open(dbDir string, opts Options) (*HistoryDB, error) {
	dbPath := filepath.Join(dbDir, FileName)

	if !opts.CreateIfNotExists {
		if _, err := os.Stat(dbPath); os.IsNotExist(err) {
			return nil, fmt.Errorf("database not found at %s: %w", dbPath, ErrNotFound)
		} else if err != nil {
			return nil, fmt.Errorf("failed to check database path: %w", err)
		}
	} else if err := os.MkdirAll(dbDir, 0750); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	dsn := dbPath + "?mode=rw"
	if opts.CreateIfNotExists {
		dsn = dbPath + "?mode=rwc"
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// SQLite only supports one writer.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(time.Hour)

	hdb := &HistoryDB{db: db, dbPath: dbPath}

	if opts.EnableWAL {
		if _, err := db.ExecContext(context.Background(), "PRAGMA journal_mode=WAL"); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("failed to enable WAL mode: %w", err)
		}
	}

	if err := hdb.createTables(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create tables: %w", err)
	}

	return hdb, nil
}

// Path returns the database file path.
func (h *HistoryDB) Path() string {
	return h.dbPath
}

// Close closes the database connection.
func (h *HistoryDB) Close() error {
	return h.db.Close()
}

func (h *HistoryDB) createTables() error {
	schema := `
	CREATE TABLE IF NOT EXISTS snapshots (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		hostname TEXT NOT NULL,
		collected_at DATETIME NOT NULL,
		kernel_release TEXT,
		memory_percent INTEGER,
		disk_capacity TEXT,
		error_count INTEGER DEFAULT 0,
		snapshot_json TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_snapshots_host ON snapshots(hostname);
	CREATE INDEX IF NOT EXISTS idx_snapshots_collected ON snapshots(collected_at);
	`

	_, err := h.db.ExecContext(context.Background(), schema)
	return err
}

// Summary is one row of the history listing.
type Summary struct {
	ID            int64
	Hostname      string
	CollectedAt   time.Time
	KernelRelease string
	MemoryPercent uint64
	DiskCapacity  string
	ErrorCount    int
}

// SaveSnapshot stores s and sets s.ID to the new row id.
func (h *HistoryDB) SaveSnapshot(ctx context.Context, s *model.Snapshot) error {
	data, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("failed to serialize snapshot: %w", err)
	}

	var memPercent sql.NullInt64
	if s.Memory.Present {
		memPercent = sql.NullInt64{Int64: int64(s.Memory.Percent()), Valid: true} //nolint:gosec // Percent is small
	}

	query := `
	INSERT INTO snapshots (hostname, collected_at, kernel_release, memory_percent, disk_capacity, error_count, snapshot_json)
	VALUES (?, ?, ?, ?, ?, ?, ?)
	`

	result, err := h.db.ExecContext(ctx, query,
		s.Hostname,
		s.CollectedAt.UTC().Format(timeLayout),
		s.Kernel.Release,
		memPercent,
		s.Disk.Capacity,
		len(s.Errors),
		string(data),
	)
	if err != nil {
		return fmt.Errorf("failed to save snapshot: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to read snapshot id: %w", err)
	}
	s.ID = id
	return nil
}

// ListSnapshots returns the newest summaries first. A limit of zero or less
// returns every row.
func (h *HistoryDB) ListSnapshots(ctx context.Context, limit int) ([]Summary, error) {
	query := `
	SELECT id, hostname, collected_at, kernel_release, memory_percent, disk_capacity, error_count
	FROM snapshots
	ORDER BY collected_at DESC, id DESC
	`
	args := make([]interface{}, 0, 1)
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := h.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list snapshots: %w", err)
	}
	defer rows.Close()

	var results []Summary
	for rows.Next() {
		var (
			sum        Summary
			collected  string
			release    sql.NullString
			memPercent sql.NullInt64
			capacity   sql.NullString
		)
		if err := rows.Scan(&sum.ID, &sum.Hostname, &collected, &release, &memPercent, &capacity, &sum.ErrorCount); err != nil {
			return nil, fmt.Errorf("failed to scan snapshot: %w", err)
		}
		sum.CollectedAt = parseTimestamp(collected)
		sum.KernelRelease = release.String
		if memPercent.Valid {
			sum.MemoryPercent = uint64(memPercent.Int64) //nolint:gosec // Stored from a uint64
		}
		sum.DiskCapacity = capacity.String
		results = append(results, sum)
	}

	return results, rows.Err()
}

// GetSnapshotByID loads one snapshot. It returns ErrNotFound for unknown ids.
func (h *HistoryDB) GetSnapshotByID(ctx context.Context, id int64) (*model.Snapshot, error) {
	return h.getSnapshot(ctx, `SELECT id, snapshot_json FROM snapshots WHERE id = ?`, id)
}

// LatestSnapshot loads the most recent snapshot for hostname.
// It returns ErrNotFound when the host has no history.
func (h *HistoryDB) LatestSnapshot(ctx context.Context, hostname string) (*model.Snapshot, error) {
	return h.getSnapshot(ctx, `
	SELECT id, snapshot_json FROM snapshots
	WHERE hostname = ?
	ORDER BY collected_at DESC, id DESC
	LIMIT 1
	`, hostname)
}

func (h *HistoryDB) getSnapshot(ctx context.Context, query string, args ...interface{}) (*model.Snapshot, error) {
	var (
		id   int64
		data string
	)
	err := h.db.QueryRowContext(ctx, query, args...).Scan(&id, &data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get snapshot: %w", err)
	}

	var s model.Snapshot
	if err := json.Unmarshal([]byte(data), &s); err != nil {
		return nil, fmt.Errorf("failed to parse snapshot: %w", err)
	}
	s.ID = id
	return &s, nil
}

// timestampFormats contains the timestamp formats SQLite may return.
var timestampFormats = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05.999",
}

// parseTimestamp tries each known format and returns the zero time when
// none matches.
func parseTimestamp(s string) time.Time {
	for _, format := range timestampFormats {
		if t, err := time.Parse(format, s); err == nil {
			return t
		}
	}
	return time.Time{}
}
