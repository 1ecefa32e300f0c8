// File path: internal/store/terms.go
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	pgvector "github.com/pgvector/pgvector-go"
)

const termColumns = `id, canonical_name, normalized_name, summary, category_primary, current_version_id, created_by, created_at`

const versionColumns = `id, term_id, editor_user_id, definition_md, summary, category_primary, created_at`

// TermByNormalizedName returns the term owning the normalized key, or
// (nil, nil) when no such term exists.
func (s *Store) TermByNormalizedName(ctx context.Context, normalized string) (*Term, error) {
	if s == nil || s.db == nil {
		return nil, fmt.Errorf("store not initialised")
	}
	normalized = strings.TrimSpace(normalized)
	if normalized == "" {
		return nil, fmt.Errorf("normalized name required")
	}
	var term Term
	err := s.db.GetContext(ctx, &term,
		`SELECT `+termColumns+` FROM terms WHERE normalized_name = $1`, normalized)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("select term by normalized name: %w", err)
	}
	return &term, nil
}

// TermByID fetches a term row. Absence is reported as ErrNotFound so the API
// layer can answer 404 rather than 500.
func (s *Store) TermByID(ctx context.Context, id uuid.UUID) (*Term, error) {
	if s == nil || s.db == nil {
		return nil, fmt.Errorf("store not initialised")
	}
	var term Term
	err := s.db.GetContext(ctx, &term,
		`SELECT `+termColumns+` FROM terms WHERE id = $1`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("term %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("select term by id: %w", err)
	}
	return &term, nil
}

// InsertTerm creates the permanent identity row for a new term. The unique
// constraint on normalized_name is the only guard against concurrent
// first-time definitions; the losing insert surfaces its error verbatim.
func (s *Store) InsertTerm(ctx context.Context, term Term, embedding []float32) (*Term, error) {
	if s == nil || s.db == nil {
		return nil, fmt.Errorf("store not initialised")
	}
	if term.ID == uuid.Nil {
		term.ID = uuid.New()
	}
	var inserted Term
	err := s.db.GetContext(ctx, &inserted, `
                INSERT INTO terms (id, canonical_name, normalized_name, summary, category_primary, embedding, created_by)
                VALUES ($1, $2, $3, $4, $5, $6, $7)
                RETURNING `+termColumns,
		term.ID, term.CanonicalName, term.NormalizedName, term.Summary,
		term.CategoryPrimary, vectorParam(embedding), term.CreatedBy)
	if err != nil {
		return nil, fmt.Errorf("insert term: %w", err)
	}
	return &inserted, nil
}

// InsertTermVersion appends an immutable version snapshot for a term.
func (s *Store) InsertTermVersion(ctx context.Context, version TermVersion) (*TermVersion, error) {
	if s == nil || s.db == nil {
		return nil, fmt.Errorf("store not initialised")
	}
	if version.ID == uuid.Nil {
		version.ID = uuid.New()
	}
	var inserted TermVersion
	err := s.db.GetContext(ctx, &inserted, `
                INSERT INTO term_versions (id, term_id, editor_user_id, definition_md, summary, category_primary)
                VALUES ($1, $2, $3, $4, $5, $6)
                RETURNING `+versionColumns,
		version.ID, version.TermID, version.EditorUserID,
		version.DefinitionMD, version.Summary, version.CategoryPrimary)
	if err != nil {
		return nil, fmt.Errorf("insert term version: %w", err)
	}
	return &inserted, nil
}

// RefreshTermCache points the term at its newest version and syncs the cached
// summary, category and embedding. History is untouched.
func (s *Store) RefreshTermCache(ctx context.Context, termID, versionID uuid.UUID, summary, category string, embedding []float32) (*Term, error) {
	if s == nil || s.db == nil {
		return nil, fmt.Errorf("store not initialised")
	}
	var updated Term
	err := s.db.GetContext(ctx, &updated, `
                UPDATE terms
                SET current_version_id = $2, summary = $3, category_primary = $4, embedding = $5
                WHERE id = $1
                RETURNING `+termColumns,
		termID, versionID, summary, category, vectorParam(embedding))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("term %s: %w", termID, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("refresh term cache: %w", err)
	}
	return &updated, nil
}

// VersionsForTerm returns the full version history, newest first.
func (s *Store) VersionsForTerm(ctx context.Context, termID uuid.UUID) ([]TermVersion, error) {
	if s == nil || s.db == nil {
		return nil, fmt.Errorf("store not initialised")
	}
	versions := []TermVersion{}
	err := s.db.SelectContext(ctx, &versions,
		`SELECT `+versionColumns+` FROM term_versions WHERE term_id = $1 ORDER BY created_at DESC, id`, termID)
	if err != nil {
		return nil, fmt.Errorf("select term versions: %w", err)
	}
	return versions, nil
}

// vectorParam converts an embedding slice into a nullable vector argument.
func vectorParam(embedding []float32) interface{} {
	if len(embedding) == 0 {
		return nil
	}
	return pgvector.NewVector(embedding)
}
