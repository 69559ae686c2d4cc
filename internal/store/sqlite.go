package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"fjacquet/paycheck-planner/internal/apperror"
	"fjacquet/paycheck-planner/internal/logging"
	"fjacquet/paycheck-planner/internal/models"

	_ "github.com/mattn/go-sqlite3" // SQLite driver
)

// schemaVersion is recorded in PRAGMA user_version.
const schemaVersion = 1

const createPatternsTable = `CREATE TABLE IF NOT EXISTS user_patterns (
	user_id TEXT PRIMARY KEY,
	version INTEGER NOT NULL,
	payload TEXT NOT NULL,
	updated_at DATETIME NOT NULL
)`

// SQLiteStore keeps one row per user, the pattern itself serialized as JSON.
type SQLiteStore struct {
	db     *sql.DB
	dbPath string
	logger logging.Logger
}

// NewSQLiteStore opens (creating if needed) the database at dbPath.
func NewSQLiteStore(dbPath string, logger logging.Logger) (*SQLiteStore, error) {
	if strings.TrimSpace(dbPath) == "" {
		return nil, errors.New("dbPath cannot be empty")
	}

	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0750); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	s := &SQLiteStore{db: db, dbPath: dbPath, logger: logging.OrDefault(logger)}
	if err := s.migrate(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}
	return s, nil
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) migrate(ctx context.Context) error {
	var current int
	if err := s.db.QueryRowContext(ctx, "PRAGMA user_version").Scan(&current); err != nil {
		return fmt.Errorf("failed to read schema version: %w", err)
	}
	if current >= schemaVersion {
		return nil
	}

	if _, err := s.db.ExecContext(ctx, createPatternsTable); err != nil {
		return fmt.Errorf("failed to create user_patterns table: %w", err)
	}
	if _, err := s.db.ExecContext(ctx, fmt.Sprintf("PRAGMA user_version = %d", schemaVersion)); err != nil {
		return fmt.Errorf("failed to set schema version: %w", err)
	}

	s.logger.Debug("Database schema ready",
		logging.Field{Key: logging.FieldFile, Value: s.dbPath},
		logging.Field{Key: logging.FieldVersion, Value: schemaVersion})
	return nil
}

// Load reads the stored pattern for userID.
func (s *SQLiteStore) Load(ctx context.Context, userID string) (models.UserPattern, error) {
	if err := validateRequest(ctx, userID); err != nil {
		return models.UserPattern{}, s.wrap("load", userID, err)
	}

	var payload string
	var version int64
	err := s.db.QueryRowContext(ctx,
		`SELECT version, payload FROM user_patterns WHERE user_id = ?`, userID,
	).Scan(&version, &payload)
	if err == sql.ErrNoRows {
		return models.UserPattern{}, apperror.ErrPatternNotFound
	}
	if err != nil {
		return models.UserPattern{}, s.wrap("load", userID, err)
	}

	var pattern models.UserPattern
	if err := json.Unmarshal([]byte(payload), &pattern); err != nil {
		// The version column is still valid, so callers can save over the row.
		return models.UserPattern{Version: version}, s.wrap("load", userID, fmt.Errorf("%w: %v", apperror.ErrCorruptPattern, err))
	}
	pattern.Version = version
	return pattern, nil
}

// Save inserts or updates the row for userID, guarded by the stored version.
func (s *SQLiteStore) Save(ctx context.Context, userID string, pattern models.UserPattern) error {
	if err := validateRequest(ctx, userID); err != nil {
		return s.wrap("save", userID, err)
	}

	payload, err := json.Marshal(pattern)
	if err != nil {
		return s.wrap("save", userID, fmt.Errorf("error marshaling pattern: %w", err))
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return s.wrap("save", userID, fmt.Errorf("failed to begin transaction: %w", err))
	}
	defer func() {
		_ = tx.Rollback()
	}()

	var stored int64
	err = tx.QueryRowContext(ctx,
		`SELECT version FROM user_patterns WHERE user_id = ?`, userID,
	).Scan(&stored)
	if err != nil && err != sql.ErrNoRows {
		return s.wrap("save", userID, err)
	}
	if err := checkVersion(stored, pattern.Version); err != nil {
		return s.wrap("save", userID, err)
	}

	now := time.Now().UTC()
	if stored == 0 {
		_, err = tx.ExecContext(ctx,
			`INSERT INTO user_patterns (user_id, version, payload, updated_at) VALUES (?, ?, ?, ?)
			 ON CONFLICT(user_id) DO UPDATE SET version = excluded.version, payload = excluded.payload, updated_at = excluded.updated_at`,
			userID, pattern.Version, string(payload), now)
	} else {
		var result sql.Result
		result, err = tx.ExecContext(ctx,
			`UPDATE user_patterns SET version = ?, payload = ?, updated_at = ? WHERE user_id = ? AND version = ?`,
			pattern.Version, string(payload), now, userID, stored)
		if err == nil {
			var rows int64
			if rows, err = result.RowsAffected(); err == nil && rows == 0 {
				err = fmt.Errorf("%w: row changed during save", apperror.ErrVersionConflict)
			}
		}
	}
	if err != nil {
		return s.wrap("save", userID, err)
	}

	if err := tx.Commit(); err != nil {
		return s.wrap("save", userID, fmt.Errorf("failed to commit: %w", err))
	}
	return nil
}

func (s *SQLiteStore) wrap(op, userID string, err error) error {
	return &apperror.PersistenceError{Backend: BackendSQLite, Op: op, UserID: userID, Err: err}
}
