package storage

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/mindcart/mindcart/internal/model"

	_ "github.com/mattn/go-sqlite3" // SQLite driver
)

// InMemoryPath opens the ledger in memory; history is lost on exit.
const InMemoryPath = ":memory:"

const sessionsSchema = `
CREATE TABLE IF NOT EXISTS sessions (
	id TEXT PRIMARY KEY,
	created_at DATETIME NOT NULL,
	identity_badge TEXT NOT NULL,
	item_count INTEGER NOT NULL,
	total_value REAL NOT NULL,
	savings REAL NOT NULL
)`

// SQLiteLedger is an append-only session ledger backed by SQLite.
// Records are only inserted; nothing ever updates or deletes them.
type SQLiteLedger struct {
	db     *sql.DB
	dbPath string
}

// NewSQLiteLedger opens (or creates) a ledger at dbPath. Pass
// InMemoryPath for an ephemeral ledger.
func NewSQLiteLedger(dbPath string) (*SQLiteLedger, error) {
	if dbPath == "" {
		dbPath = InMemoryPath
	}

	if dbPath != InMemoryPath {
		dir := filepath.Dir(dbPath)
		if err := os.MkdirAll(dir, 0750); err != nil {
			return nil, fmt.Errorf("failed to create ledger directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("failed to open ledger database: %w", err)
	}

	// SQLite doesn't benefit from multiple connections, and a single
	// connection keeps an in-memory database alive.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping ledger database: %w", err)
	}

	if _, err := db.Exec(sessionsSchema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create sessions table: %w", err)
	}

	return &SQLiteLedger{db: db, dbPath: dbPath}, nil
}

// Close closes the database connection.
func (l *SQLiteLedger) Close() error {
	return l.db.Close()
}

// RecordSession appends one session record and returns it with its
// assigned id and timestamp filled in.
func (l *SQLiteLedger) RecordSession(ctx context.Context, record model.SessionRecord) (model.SessionRecord, error) {
	if err := validateContext(ctx); err != nil {
		return model.SessionRecord{}, err
	}
	if err := validateRecord(record); err != nil {
		return model.SessionRecord{}, err
	}

	if record.ID == "" {
		record.ID = uuid.New().String()
	}
	if record.Timestamp.IsZero() {
		record.Timestamp = time.Now()
	}

	_, err := l.db.ExecContext(ctx,
		`INSERT INTO sessions (id, created_at, identity_badge, item_count, total_value, savings)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		record.ID, record.Timestamp, record.IdentityBadge,
		record.ItemCount, record.TotalValue, record.Savings)
	if err != nil {
		return model.SessionRecord{}, fmt.Errorf("failed to insert session record: %w", err)
	}

	return record, nil
}

// ListSessions returns all recorded sessions, most recent first.
func (l *SQLiteLedger) ListSessions(ctx context.Context) ([]model.SessionRecord, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	rows, err := l.db.QueryContext(ctx,
		`SELECT id, created_at, identity_badge, item_count, total_value, savings
		 FROM sessions ORDER BY created_at DESC, id`)
	if err != nil {
		return nil, fmt.Errorf("failed to query sessions: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var records []model.SessionRecord
	for rows.Next() {
		var record model.SessionRecord
		if err := rows.Scan(&record.ID, &record.Timestamp, &record.IdentityBadge,
			&record.ItemCount, &record.TotalValue, &record.Savings); err != nil {
			return nil, fmt.Errorf("failed to scan session record: %w", err)
		}
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read sessions: %w", err)
	}

	return records, nil
}

// ProgressStats aggregates all recorded sessions into longitudinal
// progress metrics.
func (l *SQLiteLedger) ProgressStats(ctx context.Context) (model.ProgressStats, error) {
	if err := validateContext(ctx); err != nil {
		return model.ProgressStats{}, err
	}

	var stats model.ProgressStats
	err := l.db.QueryRowContext(ctx,
		`SELECT COUNT(*), COALESCE(SUM(savings), 0), COALESCE(AVG(item_count), 0)
		 FROM sessions`).
		Scan(&stats.TotalSessions, &stats.TotalSavings, &stats.AvgItems)
	if err != nil {
		return model.ProgressStats{}, fmt.Errorf("failed to compute progress stats: %w", err)
	}

	return stats, nil
}
