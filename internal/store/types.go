// File path: internal/store/types.go
package store

import (
	"time"

	"github.com/google/uuid"
)

// Term is a glossary entry's canonical identity row. The embedding column is
// write-only from Go; reads never scan it.
type Term struct {
	ID               uuid.UUID  `db:"id" json:"id"`
	CanonicalName    string     `db:"canonical_name" json:"canonical_name"`
	NormalizedName   string     `db:"normalized_name" json:"normalized_name"`
	Summary          string     `db:"summary" json:"summary"`
	CategoryPrimary  string     `db:"category_primary" json:"category_primary"`
	CurrentVersionID *uuid.UUID `db:"current_version_id" json:"current_version_id,omitempty"`
	CreatedBy        *uuid.UUID `db:"created_by" json:"created_by,omitempty"`
	CreatedAt        time.Time  `db:"created_at" json:"created_at"`
}

// TermVersion is one immutable snapshot of a term's definition content.
// Versions are append-only; nothing in this package updates or deletes them.
type TermVersion struct {
	ID              uuid.UUID  `db:"id" json:"id"`
	TermID          uuid.UUID  `db:"term_id" json:"term_id"`
	EditorUserID    *uuid.UUID `db:"editor_user_id" json:"editor_user_id,omitempty"`
	DefinitionMD    string     `db:"definition_md" json:"definition_md"`
	Summary         string     `db:"summary" json:"summary"`
	CategoryPrimary string     `db:"category_primary" json:"category_primary"`
	CreatedAt       time.Time  `db:"created_at" json:"created_at"`
}

// Company is upserted by normalized name; collisions merge into one row.
// Public stays nil when no source has committed either way.
type Company struct {
	ID              uuid.UUID `db:"id" json:"id"`
	Name            string    `db:"name" json:"name"`
	NormalizedName  string    `db:"normalized_name" json:"normalized_name"`
	Public          *bool     `db:"public" json:"public,omitempty"`
	RevenueEstimate string    `db:"revenue_estimate" json:"revenue_estimate,omitempty"`
	FundingTotal    string    `db:"funding_total" json:"funding_total,omitempty"`
	Description     string    `db:"description" json:"description,omitempty"`
	CreatedAt       time.Time `db:"created_at" json:"created_at"`
}

// TermMatch is a term row annotated with its similarity score from a vector
// search.
type TermMatch struct {
	ID              uuid.UUID `db:"id" json:"id"`
	CanonicalName   string    `db:"canonical_name" json:"canonical_name"`
	Summary         string    `db:"summary" json:"summary"`
	CategoryPrimary string    `db:"category_primary" json:"category_primary"`
	Similarity      float64   `db:"similarity" json:"similarity"`
}

// CompanyMatch is a company row annotated with its similarity score.
type CompanyMatch struct {
	ID          uuid.UUID `db:"id" json:"id"`
	Name        string    `db:"name" json:"name"`
	Description string    `db:"description" json:"description,omitempty"`
	Similarity  float64   `db:"similarity" json:"similarity"`
}

// CompanyStub identifies a company missing an embedding, for backfill.
type CompanyStub struct {
	ID          uuid.UUID `db:"id" json:"id"`
	Name        string    `db:"name" json:"name"`
	Description string    `db:"description" json:"description"`
}
