// File path: internal/store/search.go
package store

import (
	"context"
	"fmt"
	"strings"
)

// SearchTerms ranks terms by cosine similarity against the query embedding,
// keeping rows above the threshold, best match first.
func (s *Store) SearchTerms(ctx context.Context, embedding []float32, threshold float64, limit int) ([]TermMatch, error) {
	if s == nil || s.db == nil {
		return nil, fmt.Errorf("store not initialised")
	}
	if len(embedding) == 0 {
		return nil, fmt.Errorf("query embedding required")
	}
	matches := []TermMatch{}
	err := s.db.SelectContext(ctx, &matches, `
                SELECT id, canonical_name, summary, category_primary,
                       1 - (embedding <=> $1) AS similarity
                FROM terms
                WHERE embedding IS NOT NULL
                  AND 1 - (embedding <=> $1) > $2
                ORDER BY embedding <=> $1
                LIMIT $3`,
		vectorParam(embedding), threshold, limit)
	if err != nil {
		return nil, fmt.Errorf("search terms: %w", err)
	}
	return matches, nil
}

// SearchCompanies ranks companies by cosine similarity against the query
// embedding.
func (s *Store) SearchCompanies(ctx context.Context, embedding []float32, threshold float64, limit int) ([]CompanyMatch, error) {
	if s == nil || s.db == nil {
		return nil, fmt.Errorf("store not initialised")
	}
	if len(embedding) == 0 {
		return nil, fmt.Errorf("query embedding required")
	}
	matches := []CompanyMatch{}
	err := s.db.SelectContext(ctx, &matches, `
                SELECT id, name, description,
                       1 - (embedding <=> $1) AS similarity
                FROM companies
                WHERE embedding IS NOT NULL
                  AND 1 - (embedding <=> $1) > $2
                ORDER BY embedding <=> $1
                LIMIT $3`,
		vectorParam(embedding), threshold, limit)
	if err != nil {
		return nil, fmt.Errorf("search companies: %w", err)
	}
	return matches, nil
}

// LexicalSearchTerms matches the query as a case-insensitive substring of the
// canonical name or summary, newest terms first. No ranking beyond recency.
func (s *Store) LexicalSearchTerms(ctx context.Context, query string, limit int) ([]Term, error) {
	if s == nil || s.db == nil {
		return nil, fmt.Errorf("store not initialised")
	}
	pattern := "%" + escapeLike(strings.TrimSpace(query)) + "%"
	terms := []Term{}
	err := s.db.SelectContext(ctx, &terms, `
                SELECT `+termColumns+`
                FROM terms
                WHERE canonical_name ILIKE $1 OR summary ILIKE $1
                ORDER BY created_at DESC
                LIMIT $2`,
		pattern, limit)
	if err != nil {
		return nil, fmt.Errorf("lexical search terms: %w", err)
	}
	return terms, nil
}

func escapeLike(s string) string {
	replacer := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return replacer.Replace(s)
}
