// File path: internal/store/companies.go
package store

import (
	"context"
	"fmt"

	"github.com/google/uuid"
)

const companyColumns = `id, name, normalized_name, public, revenue_estimate, funding_total, description, created_at`

// UpsertCompany merges a company by normalized name: mutable fields are
// last-write-wins, while an absent embedding never wipes a stored one.
func (s *Store) UpsertCompany(ctx context.Context, company Company, embedding []float32) (*Company, error) {
	if s == nil || s.db == nil {
		return nil, fmt.Errorf("store not initialised")
	}
	if company.ID == uuid.Nil {
		company.ID = uuid.New()
	}
	var upserted Company
	err := s.db.GetContext(ctx, &upserted, `
                INSERT INTO companies (id, name, normalized_name, public, revenue_estimate, funding_total, description, embedding)
                VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
                ON CONFLICT (normalized_name) DO UPDATE SET
                        name = EXCLUDED.name,
                        public = EXCLUDED.public,
                        revenue_estimate = EXCLUDED.revenue_estimate,
                        funding_total = EXCLUDED.funding_total,
                        description = EXCLUDED.description,
                        embedding = COALESCE(EXCLUDED.embedding, companies.embedding)
                RETURNING `+companyColumns,
		company.ID, company.Name, company.NormalizedName, company.Public,
		company.RevenueEstimate, company.FundingTotal, company.Description,
		vectorParam(embedding))
	if err != nil {
		return nil, fmt.Errorf("upsert company: %w", err)
	}
	return &upserted, nil
}

// LinkTermCompany records the association; re-linking the same pair is a
// no-op.
func (s *Store) LinkTermCompany(ctx context.Context, termID, companyID uuid.UUID) error {
	if s == nil || s.db == nil {
		return fmt.Errorf("store not initialised")
	}
	_, err := s.db.ExecContext(ctx, `
                INSERT INTO term_companies (term_id, company_id)
                VALUES ($1, $2)
                ON CONFLICT (term_id, company_id) DO NOTHING`,
		termID, companyID)
	if err != nil {
		return fmt.Errorf("link term company: %w", err)
	}
	return nil
}

// CompaniesForTerm returns every company currently linked to the term.
func (s *Store) CompaniesForTerm(ctx context.Context, termID uuid.UUID) ([]Company, error) {
	if s == nil || s.db == nil {
		return nil, fmt.Errorf("store not initialised")
	}
	companies := []Company{}
	err := s.db.SelectContext(ctx, &companies, `
                SELECT c.id, c.name, c.normalized_name, c.public, c.revenue_estimate, c.funding_total, c.description, c.created_at
                FROM companies c
                JOIN term_companies tc ON tc.company_id = c.id
                WHERE tc.term_id = $1
                ORDER BY c.name`, termID)
	if err != nil {
		return nil, fmt.Errorf("select companies for term: %w", err)
	}
	return companies, nil
}

// CompaniesMissingEmbedding lists companies whose embedding has not been
// computed yet, for the backfill endpoint.
func (s *Store) CompaniesMissingEmbedding(ctx context.Context) ([]CompanyStub, error) {
	if s == nil || s.db == nil {
		return nil, fmt.Errorf("store not initialised")
	}
	stubs := []CompanyStub{}
	err := s.db.SelectContext(ctx, &stubs,
		`SELECT id, name, description FROM companies WHERE embedding IS NULL ORDER BY created_at`)
	if err != nil {
		return nil, fmt.Errorf("select companies missing embedding: %w", err)
	}
	return stubs, nil
}

// SetCompanyEmbedding stores a freshly computed embedding for a company.
func (s *Store) SetCompanyEmbedding(ctx context.Context, id uuid.UUID, embedding []float32) error {
	if s == nil || s.db == nil {
		return fmt.Errorf("store not initialised")
	}
	_, err := s.db.ExecContext(ctx,
		`UPDATE companies SET embedding = $2 WHERE id = $1`, id, vectorParam(embedding))
	if err != nil {
		return fmt.Errorf("set company embedding: %w", err)
	}
	return nil
}
