package sqlite

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/evidex-labs/caseview-cli/internal/adapters/driven/storage/sqlite/migrations"
	"github.com/evidex-labs/caseview-cli/internal/core/domain"
	"github.com/evidex-labs/caseview-cli/internal/core/ports/driven"
)

// Ensure Store implements the interface.
var _ driven.AttachmentStore = (*Store)(nil)

// Store is a SQLite-backed attachment store holding cases and their
// image attachments.
type Store struct {
	db   *sql.DB
	path string
}

// NewStore creates a new SQLite store at the specified data directory.
// If dataDir is empty, defaults to ~/.caseview/data/cases.db.
func NewStore(dataDir string) (*Store, error) {
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		dataDir = filepath.Join(home, ".caseview", "data")
	}

	// Ensure directory exists
	if err := os.MkdirAll(dataDir, 0700); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	dbPath := filepath.Join(dataDir, "cases.db")

	// Open database with WAL mode for better concurrency
	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	// Enable foreign keys
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enabling foreign keys: %w", err)
	}

	s := &Store{
		db:   db,
		path: dbPath,
	}

	// Run migrations
	if err := s.migrate(migrations.FS); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.path
}

// migrate runs pending schema migrations from the embedded filesystem.
func (s *Store) migrate(fsys embed.FS) error {
	// Ensure schema_migrations table exists
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("creating schema_migrations table: %w", err)
	}

	// Get current version
	var currentVersion int
	row := s.db.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_migrations")
	if err := row.Scan(&currentVersion); err != nil {
		return fmt.Errorf("getting current version: %w", err)
	}

	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return fmt.Errorf("reading migrations directory: %w", err)
	}

	var upFiles []string
	for _, entry := range entries {
		name := entry.Name()
		if strings.HasSuffix(name, ".up.sql") {
			upFiles = append(upFiles, name)
		}
	}
	sort.Strings(upFiles)

	for _, name := range upFiles {
		// Extract version number (e.g., "001_initial.up.sql" -> 1)
		var version int
		if _, err := fmt.Sscanf(name, "%d_", &version); err != nil {
			continue // Skip files that don't match pattern
		}

		if version <= currentVersion {
			continue // Already applied
		}

		content, err := fs.ReadFile(fsys, name)
		if err != nil {
			return fmt.Errorf("reading migration %s: %w", name, err)
		}

		if _, err := s.db.Exec(string(content)); err != nil {
			return fmt.Errorf("executing migration %s: %w", name, err)
		}

		if _, err := s.db.Exec(
			"INSERT INTO schema_migrations (version) VALUES (?)", version); err != nil {
			return fmt.Errorf("recording migration %s: %w", name, err)
		}
	}

	return nil
}

// GetCase retrieves a case by ID.
func (s *Store) GetCase(ctx context.Context, id string) (*domain.Case, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, subject, parent_id, created_at
		FROM cases WHERE id = ?
	`, id)

	var c domain.Case
	var parentID sql.NullString
	var createdAt sql.NullTime
	if err := row.Scan(&c.ID, &c.Subject, &parentID, &createdAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("scanning case: %w", err)
	}

	if parentID.Valid && parentID.String != "" {
		c.ParentID = &parentID.String
	}
	if createdAt.Valid {
		c.CreatedAt = createdAt.Time
	}

	return &c, nil
}

// ListCases returns all cases in creation order.
func (s *Store) ListCases(ctx context.Context) ([]domain.Case, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, subject, parent_id, created_at
		FROM cases ORDER BY created_at, id
	`)
	if err != nil {
		return nil, fmt.Errorf("querying cases: %w", err)
	}
	defer rows.Close()

	var cases []domain.Case //nolint:prealloc // size unknown from query
	for rows.Next() {
		var c domain.Case
		var parentID sql.NullString
		var createdAt sql.NullTime
		if err := rows.Scan(&c.ID, &c.Subject, &parentID, &createdAt); err != nil {
			return nil, fmt.Errorf("scanning case: %w", err)
		}
		if parentID.Valid && parentID.String != "" {
			c.ParentID = &parentID.String
		}
		if createdAt.Valid {
			c.CreatedAt = createdAt.Time
		}
		cases = append(cases, c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating cases: %w", err)
	}

	return cases, nil
}

// ListImages returns the image attachments of a case in position order.
func (s *Store) ListImages(ctx context.Context, caseID string) ([]domain.Image, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, title, file_extension, data_url
		FROM attachments WHERE case_id = ?
		ORDER BY position, created_at, id
	`, caseID)
	if err != nil {
		return nil, fmt.Errorf("querying attachments: %w", err)
	}
	defer rows.Close()

	var images []domain.Image //nolint:prealloc // size unknown from query
	for rows.Next() {
		var img domain.Image
		if err := rows.Scan(&img.ID, &img.Title, &img.FileExtension, &img.DataURL); err != nil {
			return nil, fmt.Errorf("scanning attachment: %w", err)
		}
		images = append(images, img)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating attachments: %w", err)
	}

	return images, nil
}

// SaveCase stores or updates a case.
func (s *Store) SaveCase(ctx context.Context, c *domain.Case) error {
	if c.CreatedAt.IsZero() {
		c.CreatedAt = time.Now().UTC()
	}

	var parentID any
	if c.HasParent() {
		parentID = *c.ParentID
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO cases (id, subject, parent_id, created_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			subject = excluded.subject,
			parent_id = excluded.parent_id
	`, c.ID, c.Subject, parentID, c.CreatedAt)
	if err != nil {
		return fmt.Errorf("saving case: %w", err)
	}
	return nil
}

// SaveImage stores an image attachment on a case, appended after the
// case's existing attachments.
func (s *Store) SaveImage(ctx context.Context, caseID string, img domain.Image) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO attachments (id, case_id, title, file_extension, data_url, position, created_at)
		VALUES (?, ?, ?, ?, ?,
			(SELECT COALESCE(MAX(position), -1) + 1 FROM attachments WHERE case_id = ?),
			?)
	`, img.ID, caseID, img.Title, strings.ToLower(img.FileExtension), img.DataURL, caseID, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("saving attachment: %w", err)
	}
	return nil
}
