// Package store provides the addon's PostgreSQL access. The platform keeps
// each project's entities in a dedicated schema (project_<name>), and the
// addon queries those tables directly for the lightweight lookups its
// endpoint and enum resolvers need. Entity loading with access control stays
// with the host.
package store

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Well-known service names the store modules register under.
const (
	ServiceFolders  = "store.folders"
	ServiceProjects = "store.projects"
)

// PGConfig holds PostgreSQL connection configuration.
type PGConfig struct {
	URL      string `yaml:"url" json:"url"`
	MaxConns int32  `yaml:"max_conns" json:"max_conns"`
	MinConns int32  `yaml:"min_conns" json:"min_conns"`
}

// PGStore wraps a pgxpool.Pool and provides access to the addon's stores.
type PGStore struct {
	pool *pgxpool.Pool

	folders  *PGFolderStore
	projects *PGProjectStore
}

// NewPGStore connects to PostgreSQL and returns a PGStore with all
// sub-stores.
func NewPGStore(ctx context.Context, cfg PGConfig) (*PGStore, error) {
	poolCfg, err := pgxpool.ParseConfig(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("parse pg config: %w", err)
	}

	if cfg.MaxConns > 0 {
		poolCfg.MaxConns = cfg.MaxConns
	}
	if cfg.MinConns > 0 {
		poolCfg.MinConns = cfg.MinConns
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("create pg pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping pg: %w", err)
	}

	s := &PGStore{pool: pool}
	s.folders = &PGFolderStore{pool: pool}
	s.projects = &PGProjectStore{pool: pool}
	return s, nil
}

// Pool returns the underlying pgxpool.Pool.
func (s *PGStore) Pool() *pgxpool.Pool { return s.pool }

// Close closes the connection pool.
func (s *PGStore) Close() { s.pool.Close() }

// Folders returns the FolderStore.
func (s *PGStore) Folders() FolderStore { return s.folders }

// Projects returns the ProjectStore.
func (s *PGStore) Projects() ProjectStore { return s.projects }
