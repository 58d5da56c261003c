package store

import (
	"context"
	"errors"
	"fmt"
	"regexp"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Typed conditions callers map to their own error space.
var (
	// ErrProjectNotFound means the project schema does not exist.
	ErrProjectNotFound = errors.New("project not found")

	// ErrNoFolder means the query matched no folder.
	ErrNoFolder = errors.New("no folder found")
)

// pgUndefinedTable is the PostgreSQL error code raised when a project's
// schema (and therefore its folders table) does not exist.
const pgUndefinedTable = "42P01"

// validIdentifier matches safe SQL identifiers. Project names are
// interpolated into schema-qualified table names, so they must pass this
// before touching any query.
var validIdentifier = regexp.MustCompile(`^[a-zA-Z_][a-zA-Z0-9_]*$`)

// validateIdentifier checks that a SQL identifier is safe.
func validateIdentifier(name string) error {
	if !validIdentifier.MatchString(name) {
		return fmt.Errorf("invalid SQL identifier: %q", name)
	}
	return nil
}

// FolderStore reads folder data from a project's schema.
type FolderStore interface {
	// RandomFolderID returns the id of a random folder of the given type.
	// Returns ErrProjectNotFound or ErrNoFolder for the expected miss cases.
	RandomFolderID(ctx context.Context, project, folderType string) (string, error)

	// FolderTypes returns the distinct folder types used in the project.
	FolderTypes(ctx context.Context, project string) ([]string, error)
}

// ProjectStore lists projects known to the platform.
type ProjectStore interface {
	ProjectNames(ctx context.Context) ([]string, error)
}

// PGFolderStore implements FolderStore against the per-project schemas.
type PGFolderStore struct {
	pool *pgxpool.Pool
}

// NewPGFolderStore creates a folder store backed by the given pool.
func NewPGFolderStore(pool *pgxpool.Pool) *PGFolderStore {
	return &PGFolderStore{pool: pool}
}

func (s *PGFolderStore) RandomFolderID(ctx context.Context, project, folderType string) (string, error) {
	if err := validateIdentifier(project); err != nil {
		return "", fmt.Errorf("project name: %w", err)
	}

	var id string
	query := fmt.Sprintf(`
		SELECT id FROM project_%s.folders
		WHERE folder_type = $1
		ORDER BY RANDOM() LIMIT 1
	`, project)
	err := s.pool.QueryRow(ctx, query, folderType).Scan(&id)
	if err != nil {
		if isUndefinedTable(err) {
			return "", fmt.Errorf("project %q: %w", project, ErrProjectNotFound)
		}
		if errors.Is(err, pgx.ErrNoRows) {
			return "", fmt.Errorf("folder type %q in project %q: %w", folderType, project, ErrNoFolder)
		}
		return "", fmt.Errorf("random folder in %q: %w", project, err)
	}
	return id, nil
}

func (s *PGFolderStore) FolderTypes(ctx context.Context, project string) ([]string, error) {
	if err := validateIdentifier(project); err != nil {
		return nil, fmt.Errorf("project name: %w", err)
	}

	query := fmt.Sprintf(`
		SELECT DISTINCT folder_type FROM project_%s.folders ORDER BY folder_type
	`, project)
	rows, err := s.pool.Query(ctx, query)
	if err != nil {
		if isUndefinedTable(err) {
			return nil, fmt.Errorf("project %q: %w", project, ErrProjectNotFound)
		}
		return nil, fmt.Errorf("folder types in %q: %w", project, err)
	}
	defer rows.Close()

	var types []string
	for rows.Next() {
		var t string
		if err := rows.Scan(&t); err != nil {
			return nil, fmt.Errorf("scan folder type: %w", err)
		}
		types = append(types, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate folder types: %w", err)
	}
	return types, nil
}

// PGProjectStore implements ProjectStore against the platform's projects
// table.
type PGProjectStore struct {
	pool *pgxpool.Pool
}

// NewPGProjectStore creates a project store backed by the given pool.
func NewPGProjectStore(pool *pgxpool.Pool) *PGProjectStore {
	return &PGProjectStore{pool: pool}
}

func (s *PGProjectStore) ProjectNames(ctx context.Context) ([]string, error) {
	rows, err := s.pool.Query(ctx, `SELECT name FROM projects ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("list projects: %w", err)
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var n string
		if err := rows.Scan(&n); err != nil {
			return nil, fmt.Errorf("scan project name: %w", err)
		}
		names = append(names, n)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate projects: %w", err)
	}
	return names, nil
}

func isUndefinedTable(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgUndefinedTable
}
