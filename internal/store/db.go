package store

import (
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/tartampluch/go-lifecalendar/internal/config"
	"github.com/tartampluch/go-lifecalendar/internal/engine"
	_ "modernc.org/sqlite"
)

// DB is the SQLite implementation of Repository.
type DB struct {
	db    *sql.DB
	path  string
	ids   IDGenerator
	clock engine.Clock
}

var _ Repository = (*DB)(nil)

// Option customizes Open.
type Option func(*DB)

// WithIDGenerator replaces the UUID-based id generator.
func WithIDGenerator(g IDGenerator) Option {
	return func(d *DB) { d.ids = g }
}

// WithClock sets the clock used to stamp new calculations.
func WithClock(c engine.Clock) Option {
	return func(d *DB) { d.clock = c }
}

// Open opens or creates the database at path and applies the schema.
func Open(path string, opts ...Option) (*DB, error) {
	if err := os.MkdirAll(filepath.Dir(path), config.DirPermUserRWX); err != nil {
		return nil, fmt.Errorf("%s: %w", config.ErrDBCreateDir, err)
	}

	db, err := sql.Open(config.SQLiteDriver, path)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", config.ErrDBOpen, err)
	}

	d := &DB{db: db, path: path, ids: UUIDGenerator{}, clock: engine.RealClock{}}
	for _, opt := range opts {
		opt(d)
	}

	if err := d.configurePragmas(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("%s: %w", config.ErrDBPragmas, err)
	}
	if err := d.initSchema(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("%s: %w", config.ErrDBSchema, err)
	}

	// The file only exists once the first statement has run.
	if err := os.Chmod(path, config.FilePermUserRW); err != nil && !os.IsNotExist(err) {
		_ = db.Close()
		return nil, fmt.Errorf("%s: %w", config.ErrDBPerms, err)
	}

	slog.Debug(config.MsgDBOpened,
		config.LogKeyComponent, config.CompStore,
		config.LogKeyFile, path,
	)
	return d, nil
}

// Path returns the database file location.
func (d *DB) Path() string {
	return d.path
}

// Close closes the database connection.
func (d *DB) Close() error {
	if d.db != nil {
		return d.db.Close()
	}
	return nil
}

func (d *DB) configurePragmas() error {
	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		fmt.Sprintf("PRAGMA busy_timeout = %d", config.SQLiteBusyTimeout),
		"PRAGMA synchronous = NORMAL",
	}
	for _, pragma := range pragmas {
		if _, err := d.db.Exec(pragma); err != nil {
			return fmt.Errorf("execute %s: %w", pragma, err)
		}
	}
	return nil
}
