package db

import (
	"database/sql"
	"fmt"
	"net/url"
	"os"
	"path/filepath"

	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"

	"github.com/alexanderramin/somnus/internal/config"
)

// Open connects to the store selected by cfg: PostgreSQL when a database
// URL is set, otherwise the SQLite file at cfg.DBPath. Migrations run
// before it returns.
func Open(cfg config.Config) (*sql.DB, Dialect, error) {
	if cfg.UsePostgres() {
		database, err := OpenPostgres(cfg.DatabaseURL)
		return database, Postgres, err
	}
	database, err := OpenDB(cfg.DBPath)
	return database, SQLite, err
}

// sqlitePragmas are applied by the driver to every pooled connection, so
// foreign keys hold no matter which connection a statement lands on.
var sqlitePragmas = []string{
	"foreign_keys(1)",
	"journal_mode(WAL)",
	"busy_timeout(5000)",
}

func sqliteDSN(path string) string {
	q := url.Values{}
	for _, p := range sqlitePragmas {
		q.Add("_pragma", p)
	}
	return path + "?" + q.Encode()
}

// OpenDB opens and migrates the SQLite diary at path, creating its
// directory. ":memory:" gives a private in-memory diary on one connection.
func OpenDB(path string) (*sql.DB, error) {
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("creating db directory: %w", err)
		}
	}

	database, err := sql.Open("sqlite", sqliteDSN(path))
	if err != nil {
		return nil, fmt.Errorf("opening sqlite: %w", err)
	}
	if path == ":memory:" {
		database.SetMaxOpenConns(1)
	}
	return migrated(database, SQLite)
}

// OpenPostgres connects to dsn and migrates the schema.
func OpenPostgres(dsn string) (*sql.DB, error) {
	database, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("opening postgres: %w", err)
	}
	if err := database.Ping(); err != nil {
		_ = database.Close()
		return nil, fmt.Errorf("connecting to postgres: %w", err)
	}
	return migrated(database, Postgres)
}

func migrated(database *sql.DB, d Dialect) (*sql.DB, error) {
	if err := Migrate(database, d); err != nil {
		_ = database.Close()
		return nil, fmt.Errorf("running %s migrations: %w", d, err)
	}
	return database, nil
}
