package store

import (
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

const currentVersion = 1

var (
	ErrNotFound   = errors.New("not found")
	ErrEmptyTitle = errors.New("title is empty")
)

type Store struct {
	db  *sql.DB
	log *slog.Logger
}

// New opens (or creates) the SQLite database at dbPath and runs migrations.
func New(dbPath string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	db.SetMaxOpenConns(1)

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA foreign_keys=ON",
		"PRAGMA busy_timeout=5000",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			db.Close()
			return nil, fmt.Errorf("exec pragma %q: %w", p, err)
		}
	}

	s := &Store{db: db, log: slog.Default().With("component", "store")}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return s, nil
}

// NewMemory creates an in-memory store for testing.
func NewMemory() (*Store, error) {
	return New(":memory:")
}

func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	var version int
	err := s.db.QueryRow("PRAGMA user_version").Scan(&version)
	if err != nil {
		return fmt.Errorf("read user_version: %w", err)
	}

	if version >= currentVersion {
		return nil
	}

	if version < 1 {
		s.log.Info("migrating schema", "from", version, "to", 1)
		if err := s.migrateV1(); err != nil {
			return err
		}
	}

	_, err = s.db.Exec(fmt.Sprintf("PRAGMA user_version = %d", currentVersion))
	return err
}

func (s *Store) migrateV1() error {
	const ddl = `
	CREATE TABLE IF NOT EXISTS tasks (
		id          TEXT PRIMARY KEY,
		title       TEXT NOT NULL,
		note        TEXT NOT NULL DEFAULT '',
		mood_hint   TEXT,
		due_date    TEXT,
		done        INTEGER NOT NULL DEFAULT 0,
		color       TEXT NOT NULL DEFAULT '',
		icon        TEXT NOT NULL DEFAULT '',
		created_at  TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_tasks_due ON tasks(due_date);

	CREATE TABLE IF NOT EXISTS day_plans (
		date  TEXT PRIMARY KEY,
		mood  TEXT
	);

	CREATE TABLE IF NOT EXISTS journal_entries (
		id          TEXT PRIMARY KEY,
		date        TEXT NOT NULL,
		mood        TEXT,
		body        TEXT NOT NULL,
		created_at  TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_journal_date ON journal_entries(date);

	CREATE TABLE IF NOT EXISTS focus_sessions (
		id               INTEGER PRIMARY KEY AUTOINCREMENT,
		task_id          TEXT REFERENCES tasks(id) ON DELETE SET NULL,
		planned_seconds  INTEGER NOT NULL DEFAULT 1500,
		elapsed_seconds  INTEGER NOT NULL DEFAULT 0,
		status           TEXT NOT NULL DEFAULT 'running',
		started_at       TEXT NOT NULL,
		completed_at     TEXT
	);

	CREATE TABLE IF NOT EXISTS settings (
		key   TEXT PRIMARY KEY,
		value TEXT NOT NULL
	);

	INSERT OR IGNORE INTO settings (key, value) VALUES
		('auto_carry',      'true'),
		('weekend_days',    'sat,sun'),
		('week_start',      'monday'),
		('focus_minutes',   '25'),
		('break_minutes',   '5'),
		('recommend_limit', '7');
	`
	_, err := s.db.Exec(ddl)
	return err
}

// DefaultDBPath returns ~/.config/moodr/moodr.db
func DefaultDBPath() (string, error) {
	cfg, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(cfg, "moodr", "moodr.db"), nil
}
