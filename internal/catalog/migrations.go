package catalog

import (
	"context"
	"fmt"
	"strings"

	"neurondemo/internal/log"
)

// Migration represents a database migration
type Migration struct {
	ID          int
	Description string
	SQL         string
}

// migrations contains all database migrations in order
var migrations = []Migration{
	{
		ID:          1,
		Description: "Initial catalog schema",
		SQL: `
CREATE TABLE IF NOT EXISTS categories (
	name        TEXT PRIMARY KEY,
	title       TEXT NOT NULL,
	position    INTEGER NOT NULL,
	default_sub TEXT NOT NULL DEFAULT ''
);
CREATE TABLE IF NOT EXISTS demos (
	category    TEXT NOT NULL REFERENCES categories(name) ON DELETE CASCADE,
	subcategory TEXT NOT NULL DEFAULT '',
	position    INTEGER NOT NULL,
	label       TEXT NOT NULL,
	description TEXT NOT NULL DEFAULT '',
	badges      TEXT NOT NULL DEFAULT '',
	PRIMARY KEY (category, subcategory)
);
CREATE TABLE IF NOT EXISTS steps (
	category    TEXT NOT NULL,
	subcategory TEXT NOT NULL,
	position    INTEGER NOT NULL,
	command     TEXT NOT NULL,
	interactive INTEGER NOT NULL DEFAULT 0,
	enters      INTEGER NOT NULL DEFAULT 0,
	exits       INTEGER NOT NULL DEFAULT 0,
	PRIMARY KEY (category, subcategory, position),
	FOREIGN KEY (category, subcategory) REFERENCES demos(category, subcategory) ON DELETE CASCADE
);
CREATE TABLE IF NOT EXISTS output_lines (
	category    TEXT NOT NULL,
	subcategory TEXT NOT NULL,
	step        INTEGER NOT NULL,
	position    INTEGER NOT NULL,
	line        TEXT NOT NULL,
	PRIMARY KEY (category, subcategory, step, position),
	FOREIGN KEY (category, subcategory, step) REFERENCES steps(category, subcategory, position) ON DELETE CASCADE
);`,
	},
	{
		ID:          2,
		Description: "Record import provenance",
		SQL: `
CREATE TABLE IF NOT EXISTS imports (
	id          TEXT PRIMARY KEY,
	source      TEXT NOT NULL,
	demos       INTEGER NOT NULL,
	imported_at DATETIME DEFAULT CURRENT_TIMESTAMP
);`,
	},
}

// runMigrations executes all pending migrations
func (s *Store) runMigrations(ctx context.Context) error {
	// Ensure schema_version table exists
	if err := s.ensureSchemaVersionTable(ctx); err != nil {
		return fmt.Errorf("failed to create schema_version table: %w", err)
	}

	// Get current schema version
	currentVersion, err := s.SchemaVersion(ctx)
	if err != nil {
		return fmt.Errorf("failed to get current schema version: %w", err)
	}

	// Apply pending migrations
	for _, migration := range migrations {
		if migration.ID <= currentVersion {
			continue
		}
		log.Info("applying catalog migration", "id", migration.ID, "description", migration.Description)
		if err := s.applyMigration(ctx, migration); err != nil {
			return fmt.Errorf("failed to apply migration %d: %w", migration.ID, err)
		}
	}
	return nil
}

// ensureSchemaVersionTable creates the schema_version table if it doesn't exist
func (s *Store) ensureSchemaVersionTable(ctx context.Context) error {
	query := `
	CREATE TABLE IF NOT EXISTS schema_version (
		version INTEGER PRIMARY KEY,
		applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);`

	_, err := s.db.ExecContext(ctx, query)
	return err
}

// SchemaVersion returns the current schema version
func (s *Store) SchemaVersion(ctx context.Context) (int, error) {
	var version int
	err := s.db.QueryRowContext(ctx, `SELECT COALESCE(MAX(version), 0) FROM schema_version;`).Scan(&version)
	if err != nil {
		return 0, err
	}
	return version, nil
}

// applyMigration applies a single migration
func (s *Store) applyMigration(ctx context.Context, migration Migration) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to start transaction: %w", err)
	}
	defer tx.Rollback()

	// Execute migration SQL (handle multiple statements)
	statements := strings.Split(migration.SQL, ";")
	for _, stmt := range statements {
		stmt = strings.TrimSpace(stmt)
		if stmt == "" || strings.HasPrefix(stmt, "--") {
			continue
		}
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("failed to execute migration statement: %w", err)
		}
	}

	// Record migration as applied
	if _, err := tx.ExecContext(ctx, `INSERT INTO schema_version (version) VALUES (?);`, migration.ID); err != nil {
		return fmt.Errorf("failed to record migration: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit migration: %w", err)
	}
	return nil
}

// latestMigration is the schema version a fully migrated store reports
func latestMigration() int {
	return migrations[len(migrations)-1].ID
}
