package database

import (
	"database/sql"
	"embed"
	"fmt"
	"log/slog"
	"sort"
	"strings"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

type migration struct {
	version  int
	filename string
}

// Migrate applies every embedded *.up.sql file that has not been recorded
// in schema_migrations, each inside its own transaction.
func Migrate(database *sql.DB) error {
	if _, err := database.Exec(`
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			applied_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)
	`); err != nil {
		return fmt.Errorf("creating migrations table: %w", err)
	}

	migrations, err := upMigrations()
	if err != nil {
		return err
	}

	for _, pending := range migrations {
		var applied int
		if err := database.QueryRow(
			"SELECT COUNT(*) FROM schema_migrations WHERE version = ?", pending.version,
		).Scan(&applied); err != nil {
			return fmt.Errorf("checking migration %d: %w", pending.version, err)
		}
		if applied > 0 {
			continue
		}

		if err := apply(database, pending); err != nil {
			return err
		}
		slog.Info("applied migration", "version", pending.version, "file", pending.filename)
	}

	return nil
}

func upMigrations() ([]migration, error) {
	entries, err := migrationsFS.ReadDir("migrations")
	if err != nil {
		return nil, fmt.Errorf("reading migrations directory: %w", err)
	}

	var migrations []migration
	for _, entry := range entries {
		if !strings.HasSuffix(entry.Name(), ".up.sql") {
			continue
		}
		migrations = append(migrations, migration{
			version:  extractVersion(entry.Name()),
			filename: entry.Name(),
		})
	}
	sort.Slice(migrations, func(i, j int) bool {
		return migrations[i].version < migrations[j].version
	})
	return migrations, nil
}

func apply(database *sql.DB, pending migration) error {
	content, err := migrationsFS.ReadFile("migrations/" + pending.filename)
	if err != nil {
		return fmt.Errorf("reading migration %s: %w", pending.filename, err)
	}

	transaction, err := database.Begin()
	if err != nil {
		return fmt.Errorf("beginning transaction for migration %d: %w", pending.version, err)
	}
	defer transaction.Rollback()

	if _, err := transaction.Exec(string(content)); err != nil {
		return fmt.Errorf("executing migration %s: %w", pending.filename, err)
	}
	if _, err := transaction.Exec("INSERT INTO schema_migrations (version) VALUES (?)", pending.version); err != nil {
		return fmt.Errorf("recording migration %d: %w", pending.version, err)
	}

	if err := transaction.Commit(); err != nil {
		return fmt.Errorf("committing migration %d: %w", pending.version, err)
	}
	return nil
}

func extractVersion(filename string) int {
	var version int
	fmt.Sscanf(filename, "%d_", &version)
	return version
}
