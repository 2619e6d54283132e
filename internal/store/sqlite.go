// internal/store/sqlite.go
//
// SQLite-backed TableStore.
// Responsibilities:
//   - Opening the database with safe defaults (WAL, busy timeout).
//   - Applying embedded migrations from sql/*.sql (idempotent, recorded in _migrations).
//   - Storing lookup tables as little-endian uint16 blobs.

package store

import (
	"context"
	"database/sql"
	"embed"
	"encoding/binary"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/rs/zerolog/log"

	"github.com/Joeltronics/wordlebot/internal/game"
)

//go:embed sql/*.sql
var migrations embed.FS

// SQLiteTables stores lookup tables in a SQLite file.
type SQLiteTables struct {
	db *sql.DB
}

// OpenSQLiteTables opens (creating if missing) the database at dsn and
// applies migrations.
func OpenSQLiteTables(dsn string) (*SQLiteTables, error) {
	db, err := openDB(dsn)
	if err != nil {
		return nil, err
	}
	if err := migrate(db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return &SQLiteTables{db: db}, nil
}

// openDB opens a SQLite database file, creating its parent directory for
// relative paths like ./data/tables.db.
func openDB(dsn string) (*sql.DB, error) {
	dir := filepath.Dir(dsn)
	if dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("mkdir %s: %w", dir, err)
		}
	}

	db, err := sql.Open("sqlite3", dsn+"?_busy_timeout=5000&_journal_mode=WAL")
	if err != nil {
		return nil, err
	}
	if _, err := db.Exec(`PRAGMA journal_mode = WAL;`); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("set pragmas: %w", err)
	}
	return db, nil
}

// migrate applies each embedded *.sql file in lexical order inside its own
// transaction, skipping files already recorded in _migrations.
func migrate(db *sql.DB) error {
	if _, err := db.Exec(`CREATE TABLE IF NOT EXISTS _migrations (name TEXT PRIMARY KEY);`); err != nil {
		return fmt.Errorf("create _migrations: %w", err)
	}

	files, err := fs.Glob(migrations, "sql/*.sql")
	if err != nil {
		return fmt.Errorf("list migrations: %w", err)
	}
	sort.Strings(files)

	for _, f := range files {
		var done int
		err := db.QueryRow(`SELECT 1 FROM _migrations WHERE name=?`, f).Scan(&done)
		if err == nil {
			log.Debug().Str("migration", f).Msg("already applied")
			continue
		}
		if !errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("query _migrations: %w", err)
		}

		sqlBytes, err := migrations.ReadFile(f)
		if err != nil {
			return fmt.Errorf("read %s: %w", f, err)
		}

		tx, err := db.Begin()
		if err != nil {
			return err
		}
		if _, err := tx.Exec(string(sqlBytes)); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("apply %s: %w", f, err)
		}
		if _, err := tx.Exec(`INSERT INTO _migrations(name) VALUES (?)`, f); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("record %s: %w", f, err)
		}
		if err := tx.Commit(); err != nil {
			return fmt.Errorf("commit %s: %w", f, err)
		}
		log.Info().Str("migration", f).Msg("applied")
	}
	return nil
}

// LoadTable returns the table stored under name, or ErrNotFound.
func (s *SQLiteTables) LoadTable(ctx context.Context, name string) (*Table, error) {
	t := &Table{Name: name}
	var blob []byte
	var created string
	err := s.db.QueryRowContext(ctx,
		`SELECT rows, cols, fingerprint, cells, created_at FROM match_tables WHERE name=?`, name,
	).Scan(&t.Rows, &t.Cols, &t.Fingerprint, &blob, &created)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	if len(blob)%2 != 0 {
		return nil, fmt.Errorf("table %s: odd blob length %d", name, len(blob))
	}
	t.Cells = make([]game.Code, len(blob)/2)
	for i := range t.Cells {
		t.Cells[i] = game.Code(binary.LittleEndian.Uint16(blob[2*i:]))
	}
	t.CreatedAt, _ = time.Parse(time.RFC3339, created)
	return t, nil
}

// SaveTable inserts or replaces the table with the same name.
func (s *SQLiteTables) SaveTable(ctx context.Context, t *Table) error {
	blob := make([]byte, 2*len(t.Cells))
	for i, c := range t.Cells {
		binary.LittleEndian.PutUint16(blob[2*i:], uint16(c))
	}
	created := t.CreatedAt
	if created.IsZero() {
		created = time.Now().UTC()
	}
	_, err := s.db.ExecContext(ctx, `
        INSERT OR REPLACE INTO match_tables (name, rows, cols, fingerprint, cells, created_at)
        VALUES (?, ?, ?, ?, ?, ?)`,
		t.Name, t.Rows, t.Cols, t.Fingerprint, blob, created.Format(time.RFC3339),
	)
	return err
}

// Close closes the database.
func (s *SQLiteTables) Close() error { return s.db.Close() }
