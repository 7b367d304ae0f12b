package storage

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/notifica-ued/notifica/internal/model"

	_ "github.com/mattn/go-sqlite3" // SQLite driver
)

// schemaVersion is bumped whenever the history table changes shape.
const schemaVersion = 1

// SQLiteStorage is the alternate history backend for operators who want
// the store in a database file instead of a workbook. Snapshot semantics
// are identical: Load reads everything, Save replaces everything in one
// transaction.
type SQLiteStorage struct {
	db     *sql.DB
	dbPath string
}

// NewSQLiteStorage creates a new SQLite storage instance.
func NewSQLiteStorage(dbPath string) (*SQLiteStorage, error) {
	if err := validateString(dbPath, "dbPath"); err != nil {
		return nil, err
	}

	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// SQLite doesn't benefit from multiple connections.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	s := &SQLiteStorage{db: db, dbPath: dbPath}
	if err := s.migrate(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}

	return s, nil
}

func (s *SQLiteStorage) migrate(ctx context.Context) error {
	var current int
	if err := s.db.QueryRowContext(ctx, "PRAGMA user_version").Scan(&current); err != nil {
		return fmt.Errorf("failed to get schema version: %w", err)
	}
	if current >= schemaVersion {
		return nil
	}

	_, err := s.db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS history (
			supply_id     TEXT NOT NULL,
			name          TEXT NOT NULL DEFAULT '',
			contact       TEXT NOT NULL DEFAULT '',
			phone         TEXT NOT NULL DEFAULT '',
			distributor   TEXT NOT NULL DEFAULT '',
			department    TEXT NOT NULL DEFAULT '',
			notified_at   TEXT,
			notify_status TEXT NOT NULL DEFAULT '',
			notify_type   TEXT NOT NULL DEFAULT '',
			seen          INTEGER NOT NULL DEFAULT 0,
			responded     INTEGER NOT NULL DEFAULT 0,
			response      TEXT NOT NULL DEFAULT '',
			case_status   TEXT NOT NULL DEFAULT '',
			PRIMARY KEY (supply_id, phone)
		)
	`)
	if err != nil {
		return fmt.Errorf("failed to create history table: %w", err)
	}

	if _, err := s.db.ExecContext(ctx, fmt.Sprintf("PRAGMA user_version = %d", schemaVersion)); err != nil {
		return fmt.Errorf("failed to set schema version: %w", err)
	}

	slog.Info("Migrated history database", "path", s.dbPath, "version", schemaVersion)

	return nil
}

// Load reads every history record. An empty database is an empty store.
func (s *SQLiteStorage) Load(ctx context.Context) ([]model.HistoryRecord, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT supply_id, name, contact, phone, distributor, department,
		       notified_at, notify_status, notify_type,
		       seen, responded, response, case_status
		FROM history
		ORDER BY rowid
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query history: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var records []model.HistoryRecord
	for rows.Next() {
		var rec model.HistoryRecord
		var notifiedAt sql.NullString
		var caseStatus string
		if err := rows.Scan(
			&rec.SupplyID, &rec.Name, &rec.Contact, &rec.Phone,
			&rec.Distributor, &rec.Department,
			&notifiedAt, &rec.NotifyStatus, &rec.NotifyType,
			&rec.Seen, &rec.Responded, &rec.Response, &caseStatus,
		); err != nil {
			return nil, fmt.Errorf("failed to scan history record: %w", err)
		}
		if notifiedAt.Valid {
			rec.NotifiedAt = parseTimestamp(notifiedAt.String)
		}
		rec.CaseStatus = model.CaseStatus(caseStatus)
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read history rows: %w", err)
	}

	return records, nil
}

// Save replaces the persisted snapshot with the given records in a
// single transaction.
func (s *SQLiteStorage) Save(ctx context.Context, records []model.HistoryRecord) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateRecords(records); err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, "DELETE FROM history"); err != nil {
		return fmt.Errorf("failed to clear history: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO history (
			supply_id, name, contact, phone, distributor, department,
			notified_at, notify_status, notify_type,
			seen, responded, response, case_status
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer func() { _ = stmt.Close() }()

	for i := range records {
		rec := &records[i]
		var notifiedAt any
		if ts := formatTimestamp(rec.NotifiedAt); ts != "" {
			notifiedAt = ts
		}
		if _, err := stmt.ExecContext(ctx,
			rec.SupplyID, rec.Name, rec.Contact, rec.Phone,
			rec.Distributor, rec.Department,
			notifiedAt, rec.NotifyStatus, rec.NotifyType,
			rec.Seen, rec.Responded, rec.Response, string(rec.CaseStatus),
		); err != nil {
			return fmt.Errorf("failed to insert record %s: %w", rec.Key(), err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit history snapshot: %w", err)
	}

	slog.Info("Saved history database", "path", s.dbPath, "records", len(records))

	return nil
}

// Close closes the database connection.
func (s *SQLiteStorage) Close() error {
	return s.db.Close()
}
