package catalog

import (
	"context"
	"database/sql"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"neurondemo/internal/log"
	"neurondemo/internal/playback"
)

// Store persists a catalog in SQLite so demos can be edited without a
// rebuild
type Store struct {
	db   *sql.DB
	path string
}

// OpenStore opens (creating if needed) the SQLite catalog at path and
// brings its schema up to date
func OpenStore(ctx context.Context, path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("catalog store path is required")
	}

	cleanPath := filepath.Clean(path)
	db, err := sql.Open("sqlite", cleanPath+"?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	// one connection keeps the pragmas and transactions on the same handle
	db.SetMaxOpenConns(1)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	s := &Store{db: db, path: cleanPath}
	if err := s.runMigrations(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}
	log.Debug("catalog store opened", "path", cleanPath)
	return s, nil
}

// Close closes the database connection
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	if err := s.db.Close(); err != nil {
		return fmt.Errorf("failed to close database: %w", err)
	}
	return nil
}

// Import replaces the stored catalog with c in one transaction. source is
// recorded for provenance. It returns the import id.
func (s *Store) Import(ctx context.Context, c *Catalog, source string) (string, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return "", fmt.Errorf("failed to start transaction: %w", err)
	}
	defer tx.Rollback()

	for _, table := range []string{"output_lines", "steps", "demos", "categories"} {
		if _, err := tx.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			return "", fmt.Errorf("clear %s: %w", table, err)
		}
	}

	demos := 0
	for _, cat := range c.Categories() {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO categories (name, title, position, default_sub) VALUES (?, ?, ?, ?)`,
			cat.Name, cat.Title, cat.Order, cat.Default); err != nil {
			return "", fmt.Errorf("insert category %s: %w", cat.Name, err)
		}
		for dpos, d := range cat.Demos {
			if err := insertDemo(ctx, tx, d, dpos); err != nil {
				return "", err
			}
			demos++
		}
	}

	id := uuid.NewString()
	if _, err := tx.ExecContext(ctx,
		`INSERT INTO imports (id, source, demos) VALUES (?, ?, ?)`, id, source, demos); err != nil {
		return "", fmt.Errorf("record import: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("failed to commit import: %w", err)
	}

	log.Info("catalog imported", "path", s.path, "import", id, "source", source, "demos", demos)
	return id, nil
}

func insertDemo(ctx context.Context, tx *sql.Tx, d Demo, pos int) error {
	if _, err := tx.ExecContext(ctx,
		`INSERT INTO demos (category, subcategory, position, label, description, badges) VALUES (?, ?, ?, ?, ?, ?)`,
		d.Key.Category, d.Key.Subcategory, pos, d.Label, d.Description, strings.Join(d.Badges, "\n")); err != nil {
		return fmt.Errorf("insert demo %s: %w", d.Key, err)
	}

	for i, step := range d.Script.Steps {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO steps (category, subcategory, position, command, interactive, enters, exits) VALUES (?, ?, ?, ?, ?, ?, ?)`,
			d.Key.Category, d.Key.Subcategory, i, step.Command,
			step.InteractivePrompt, step.EntersInteractive, step.ExitsInteractive); err != nil {
			return fmt.Errorf("insert step %s#%d: %w", d.Key, i, err)
		}
		for j, line := range step.Output {
			if _, err := tx.ExecContext(ctx,
				`INSERT INTO output_lines (category, subcategory, step, position, line) VALUES (?, ?, ?, ?, ?)`,
				d.Key.Category, d.Key.Subcategory, i, j, line); err != nil {
				return fmt.Errorf("insert output %s#%d: %w", d.Key, i, err)
			}
		}
	}
	return nil
}

// Load reads the stored catalog
func (s *Store) Load(ctx context.Context) (*Catalog, error) {
	categories, err := s.loadCategories(ctx)
	if err != nil {
		return nil, err
	}
	if len(categories) == 0 {
		return nil, fmt.Errorf("%w: catalog store %s is empty", ErrInvalid, s.path)
	}

	index := make(map[string]int, len(categories))
	for i, cat := range categories {
		index[cat.Name] = i
	}

	demos, err := s.loadDemos(ctx)
	if err != nil {
		return nil, err
	}
	steps, err := s.loadSteps(ctx)
	if err != nil {
		return nil, err
	}

	for _, d := range demos {
		i, ok := index[d.Key.Category]
		if !ok {
			continue
		}
		cat := &categories[i]
		d.Script = playback.Script{Name: d.Key.String(), Steps: steps[d.Key]}
		if d.Key.Subcategory == "" {
			d.Title = cat.Title
		} else {
			d.Title = cat.Title + ": " + d.Label
		}
		cat.Demos = append(cat.Demos, d)
	}
	return New(categories)
}

func (s *Store) loadCategories(ctx context.Context) ([]Category, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT name, title, position, default_sub FROM categories ORDER BY position, name`)
	if err != nil {
		return nil, fmt.Errorf("query categories: %w", err)
	}
	defer rows.Close()

	var categories []Category
	for rows.Next() {
		var cat Category
		if err := rows.Scan(&cat.Name, &cat.Title, &cat.Order, &cat.Default); err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		categories = append(categories, cat)
	}
	return categories, rows.Err()
}

func (s *Store) loadDemos(ctx context.Context) ([]Demo, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT category, subcategory, label, description, badges FROM demos ORDER BY category, position`)
	if err != nil {
		return nil, fmt.Errorf("query demos: %w", err)
	}
	defer rows.Close()

	var demos []Demo
	for rows.Next() {
		var (
			d      Demo
			badges string
		)
		if err := rows.Scan(&d.Key.Category, &d.Key.Subcategory, &d.Label, &d.Description, &badges); err != nil {
			return nil, fmt.Errorf("scan demo: %w", err)
		}
		if badges != "" {
			d.Badges = strings.Split(badges, "\n")
		}
		demos = append(demos, d)
	}
	return demos, rows.Err()
}

func (s *Store) loadSteps(ctx context.Context) (map[Key][]playback.Step, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT category, subcategory, command, interactive, enters, exits FROM steps ORDER BY category, subcategory, position`)
	if err != nil {
		return nil, fmt.Errorf("query steps: %w", err)
	}
	defer rows.Close()

	steps := make(map[Key][]playback.Step)
	for rows.Next() {
		var (
			key  Key
			step playback.Step
		)
		if err := rows.Scan(&key.Category, &key.Subcategory, &step.Command,
			&step.InteractivePrompt, &step.EntersInteractive, &step.ExitsInteractive); err != nil {
			return nil, fmt.Errorf("scan step: %w", err)
		}
		steps[key] = append(steps[key], step)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	lines, err := s.db.QueryContext(ctx,
		`SELECT category, subcategory, step, line FROM output_lines ORDER BY category, subcategory, step, position`)
	if err != nil {
		return nil, fmt.Errorf("query output: %w", err)
	}
	defer lines.Close()

	for lines.Next() {
		var (
			key  Key
			step int
			line string
		)
		if err := lines.Scan(&key.Category, &key.Subcategory, &step, &line); err != nil {
			return nil, fmt.Errorf("scan output: %w", err)
		}
		if step < len(steps[key]) {
			steps[key][step].Output = append(steps[key][step].Output, line)
		}
	}
	return steps, lines.Err()
}

// LastImport returns the id and source of the most recent import
func (s *Store) LastImport(ctx context.Context) (id, source string, err error) {
	err = s.db.QueryRowContext(ctx,
		`SELECT id, source FROM imports ORDER BY imported_at DESC, rowid DESC LIMIT 1`).Scan(&id, &source)
	if err != nil {
		return "", "", fmt.Errorf("query imports: %w", err)
	}
	return id, source, nil
}
