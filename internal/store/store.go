// File path: internal/store/store.go
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
)

// EmbeddingDim is the width of every vector column. It must match the
// dimensionality of the configured embedding model (text-embedding-3-small).
const EmbeddingDim = 1536

// ErrNotFound reports a lookup that matched no row, so callers can answer
// with a not-found status instead of a general store failure.
var ErrNotFound = errors.New("not found")

// Store wraps a pooled sqlx.DB connection to the Postgres glossary database.
type Store struct {
	db *sqlx.DB
}

// Open constructs a Store for the given DSN. An empty DSN defers to the
// environment-driven configuration. The schema is migrated on first use.
func Open(dsn string) (*Store, error) {
	cfg, err := LoadConfig()
	if err != nil {
		return nil, err
	}
	if trimmed := strings.TrimSpace(dsn); trimmed != "" {
		cfg.DSN = trimmed
	}
	return OpenWithConfig(cfg)
}

// OpenWithConfig constructs a Store using the provided configuration.
func OpenWithConfig(cfg Config) (*Store, error) {
	if strings.TrimSpace(cfg.DSN) == "" {
		return nil, errors.New("postgres dsn required")
	}
	db, err := sqlx.Open("pgx", cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	db.SetMaxOpenConns(cfg.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	db.SetConnMaxIdleTime(cfg.ConnMaxIdleTime)

	pingTimeout := cfg.PingTimeout
	if pingTimeout <= 0 {
		pingTimeout = 5 * time.Second
	}
	ctx, cancel := context.WithTimeout(context.Background(), pingTimeout)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}

	store := &Store{db: db}
	if err := store.migrate(context.Background()); err != nil {
		db.Close()
		return nil, err
	}
	return store, nil
}

// Close releases the underlying database resources.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// DB exposes the underlying sqlx.DB for advanced callers.
func (s *Store) DB() *sqlx.DB {
	if s == nil {
		return nil
	}
	return s.db
}

func (s *Store) migrate(ctx context.Context) error {
	if s == nil || s.db == nil {
		return errors.New("store not initialised")
	}
	tx, err := s.db.BeginTxx(ctx, &sql.TxOptions{})
	if err != nil {
		return fmt.Errorf("begin migration: %w", err)
	}
	for i, stmt := range schemaStatements {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			tx.Rollback()
			return fmt.Errorf("execute schema statement %d: %w", i+1, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit migration: %w", err)
	}
	return nil
}

var schemaStatements = []string{
	`CREATE EXTENSION IF NOT EXISTS vector;`,
	fmt.Sprintf(`CREATE TABLE IF NOT EXISTS terms (
                id UUID PRIMARY KEY,
                canonical_name TEXT NOT NULL,
                normalized_name TEXT NOT NULL UNIQUE,
                summary TEXT NOT NULL DEFAULT '',
                category_primary TEXT NOT NULL DEFAULT 'Tooling & DevOps',
                current_version_id UUID,
                embedding vector(%d),
                created_by UUID,
                created_at TIMESTAMPTZ NOT NULL DEFAULT now()
        );`, EmbeddingDim),
	`CREATE TABLE IF NOT EXISTS term_versions (
                id UUID PRIMARY KEY,
                term_id UUID NOT NULL REFERENCES terms(id) ON DELETE CASCADE,
                editor_user_id UUID,
                definition_md TEXT NOT NULL DEFAULT '',
                summary TEXT NOT NULL DEFAULT '',
                category_primary TEXT NOT NULL DEFAULT 'Tooling & DevOps',
                created_at TIMESTAMPTZ NOT NULL DEFAULT now()
        );`,
	`CREATE INDEX IF NOT EXISTS term_versions_term_idx
                ON term_versions (term_id, created_at DESC);`,
	fmt.Sprintf(`CREATE TABLE IF NOT EXISTS companies (
                id UUID PRIMARY KEY,
                name TEXT NOT NULL,
                normalized_name TEXT NOT NULL UNIQUE,
                public BOOLEAN,
                revenue_estimate TEXT NOT NULL DEFAULT '',
                funding_total TEXT NOT NULL DEFAULT '',
                description TEXT NOT NULL DEFAULT '',
                embedding vector(%d),
                created_at TIMESTAMPTZ NOT NULL DEFAULT now()
        );`, EmbeddingDim),
	`CREATE TABLE IF NOT EXISTS term_companies (
                term_id UUID NOT NULL REFERENCES terms(id) ON DELETE CASCADE,
                company_id UUID NOT NULL REFERENCES companies(id) ON DELETE CASCADE,
                created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
                PRIMARY KEY (term_id, company_id)
        );`,
	`CREATE INDEX IF NOT EXISTS terms_embedding_idx
                ON terms USING hnsw (embedding vector_cosine_ops);`,
	`CREATE INDEX IF NOT EXISTS companies_embedding_idx
                ON companies USING hnsw (embedding vector_cosine_ops);`,
}
