// File path: internal/workflow/define.go
package workflow

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/opengloss/glossd/internal/common"
	"github.com/opengloss/glossd/internal/glossary"
	"github.com/opengloss/glossd/internal/store"
)

// Store is the persistence surface the definition workflow needs. It is
// implemented by *store.Store and by test doubles.
type Store interface {
	TermByNormalizedName(ctx context.Context, normalized string) (*store.Term, error)
	InsertTerm(ctx context.Context, term store.Term, embedding []float32) (*store.Term, error)
	InsertTermVersion(ctx context.Context, version store.TermVersion) (*store.TermVersion, error)
	RefreshTermCache(ctx context.Context, termID, versionID uuid.UUID, summary, category string, embedding []float32) (*store.Term, error)
	UpsertCompany(ctx context.Context, company store.Company, embedding []float32) (*store.Company, error)
	LinkTermCompany(ctx context.Context, termID, companyID uuid.UUID) error
	CompaniesForTerm(ctx context.Context, termID uuid.UUID) ([]store.Company, error)
}

// Generator produces a structured definition for a raw term.
type Generator interface {
	Generate(ctx context.Context, term string) (*glossary.GeneratedDefinition, error)
}

// Embedder maps text to fixed-length vectors.
type Embedder interface {
	Embed(ctx context.Context, input []string) ([][]float32, error)
}

// Result is the outcome of one definition run.
type Result struct {
	IsNew     bool
	Term      store.Term
	Version   store.TermVersion
	Companies []store.Company
}

// Workflow orchestrates the define-with-versioning sequence: existence check,
// generation, versioned insert, cache refresh, company linking.
type Workflow struct {
	store     Store
	generator Generator
	embedder  Embedder
}

func New(st Store, gen Generator, emb Embedder) (*Workflow, error) {
	if st == nil {
		return nil, fmt.Errorf("store required")
	}
	if gen == nil {
		return nil, fmt.Errorf("generator required")
	}
	if emb == nil {
		return nil, fmt.Errorf("embedder required")
	}
	return &Workflow{store: st, generator: gen, embedder: emb}, nil
}

// Define runs the upsert-with-versioning workflow for a raw term. A term is
// created at most once per normalized key; every run appends a version and
// refreshes the term's cached fields. Store write failures abort the
// remaining steps without compensating earlier writes, except company
// upserts, which are skipped individually on failure.
func (w *Workflow) Define(ctx context.Context, rawTerm string, editorID *uuid.UUID) (*Result, error) {
	logger := common.Logger()
	trimmed := strings.TrimSpace(rawTerm)
	if trimmed == "" {
		return nil, fmt.Errorf("term required")
	}
	normalized := glossary.NormalizeName(trimmed)

	existing, err := w.store.TermByNormalizedName(ctx, normalized)
	if err != nil {
		return nil, err
	}
	isNew := existing == nil
	logger.Info("workflow: defining term", "term", trimmed, "normalized", normalized, "new", isNew)

	def, err := w.generator.Generate(ctx, trimmed)
	if err != nil {
		return nil, err
	}

	// Canonical identity must not drift: an existing term keeps its stored
	// canonical name regardless of what the generator suggests.
	canonical := def.CanonicalName
	if canonical == "" {
		canonical = trimmed
	}
	if existing != nil {
		canonical = existing.CanonicalName
	}
	category := glossary.CoerceCategory(def.CategoryPrimary)

	embedding, err := w.embedText(ctx, canonical+". "+def.DefinitionMD)
	if err != nil {
		return nil, err
	}

	term := existing
	if isNew {
		term, err = w.store.InsertTerm(ctx, store.Term{
			CanonicalName:   canonical,
			NormalizedName:  normalized,
			Summary:         def.Summary,
			CategoryPrimary: category,
			CreatedBy:       editorID,
		}, embedding)
		if err != nil {
			return nil, err
		}
		logger.Info("workflow: term created", "term_id", term.ID, "canonical", canonical)
	}

	version, err := w.store.InsertTermVersion(ctx, store.TermVersion{
		TermID:          term.ID,
		EditorUserID:    editorID,
		DefinitionMD:    def.DefinitionMD,
		Summary:         def.Summary,
		CategoryPrimary: category,
	})
	if err != nil {
		return nil, err
	}

	updated, err := w.store.RefreshTermCache(ctx, term.ID, version.ID, def.Summary, category, embedding)
	if err != nil {
		return nil, err
	}

	w.attachCompanies(ctx, updated.ID, def.Companies)

	companies, err := w.store.CompaniesForTerm(ctx, updated.ID)
	if err != nil {
		return nil, err
	}

	logger.Info("workflow: term defined",
		"term_id", updated.ID, "version_id", version.ID, "companies", len(companies), "new", isNew)
	return &Result{IsNew: isNew, Term: *updated, Version: *version, Companies: companies}, nil
}

// attachCompanies upserts and links each generated company. Failures here are
// isolated: a bad company is logged and skipped, never aborting the run.
func (w *Workflow) attachCompanies(ctx context.Context, termID uuid.UUID, companies []glossary.GeneratedCompany) {
	logger := common.Logger()
	for _, gc := range companies {
		name := strings.TrimSpace(gc.Name)
		if name == "" {
			continue
		}
		funding := gc.FundingTotal.String()
		if funding == "" {
			funding = gc.FundingRaised.String()
		}
		company, err := w.store.UpsertCompany(ctx, store.Company{
			Name:            name,
			NormalizedName:  glossary.NormalizeName(name),
			Public:          gc.Public,
			RevenueEstimate: gc.RevenueEstimate.String(),
			FundingTotal:    funding,
			Description:     strings.TrimSpace(gc.Description),
		}, nil)
		if err != nil {
			logger.Warn("workflow: company upsert skipped", "company", name, "error", err)
			continue
		}
		if err := w.store.LinkTermCompany(ctx, termID, company.ID); err != nil {
			logger.Warn("workflow: company link skipped", "company", name, "error", err)
		}
	}
}

func (w *Workflow) embedText(ctx context.Context, text string) ([]float32, error) {
	vectors, err := w.embedder.Embed(ctx, []string{text})
	if err != nil {
		return nil, err
	}
	if len(vectors) == 0 || len(vectors[0]) == 0 {
		return nil, fmt.Errorf("embedder returned no vector")
	}
	return vectors[0], nil
}
