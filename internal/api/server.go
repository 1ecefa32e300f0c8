// File path: internal/api/server.go
package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	chi "github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/opengloss/glossd/internal/common"
	"github.com/opengloss/glossd/internal/llm"
	"github.com/opengloss/glossd/internal/store"
	"github.com/opengloss/glossd/internal/workflow"
)

// Fixed business rules for search. The thresholds and caps are part of the
// API contract and deliberately not configurable.
const (
	termMatchThreshold    = 0.75
	companyMatchThreshold = 0.0
	matchCount            = 5
	lexicalLimit          = 20
	minQueryLength        = 2
)

// Store is the read/write surface the handlers need. Implemented by
// *store.Store and by test doubles.
type Store interface {
	TermByID(ctx context.Context, id uuid.UUID) (*store.Term, error)
	VersionsForTerm(ctx context.Context, termID uuid.UUID) ([]store.TermVersion, error)
	CompaniesForTerm(ctx context.Context, termID uuid.UUID) ([]store.Company, error)
	SearchTerms(ctx context.Context, embedding []float32, threshold float64, limit int) ([]store.TermMatch, error)
	SearchCompanies(ctx context.Context, embedding []float32, threshold float64, limit int) ([]store.CompanyMatch, error)
	LexicalSearchTerms(ctx context.Context, query string, limit int) ([]store.Term, error)
	UpsertCompany(ctx context.Context, company store.Company, embedding []float32) (*store.Company, error)
	CompaniesMissingEmbedding(ctx context.Context) ([]store.CompanyStub, error)
	SetCompanyEmbedding(ctx context.Context, id uuid.UUID, embedding []float32) error
}

// Definer runs the definition workflow.
type Definer interface {
	Define(ctx context.Context, term string, editorID *uuid.UUID) (*workflow.Result, error)
}

type Server struct {
	router   chi.Router
	store    Store
	definer  Definer
	provider llm.Provider
}

func NewServer(st Store, definer Definer, provider llm.Provider) (*Server, error) {
	logger := common.Logger()
	if st == nil {
		return nil, fmt.Errorf("store required")
	}
	if definer == nil {
		return nil, fmt.Errorf("definer required")
	}
	if provider == nil {
		return nil, fmt.Errorf("provider required")
	}
	logger.Info("api: building server", "provider", provider.Name())
	s := &Server{
		router:   chi.NewRouter(),
		store:    st,
		definer:  definer,
		provider: provider,
	}
	s.routes()
	return s, nil
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) routes() {
	s.router.Get("/health", s.handleHealth)
	s.router.Post("/v1/define", s.handleDefine)
	s.router.Get("/v1/search", s.handleSearch)
	s.router.Get("/v1/search/lexical", s.handleLexicalSearch)
	s.router.Get("/v1/terms/{id}", s.handleTermDetail)
	s.router.Get("/v1/companies/search", s.handleCompanySearch)
	s.router.Post("/v1/companies", s.handleCompanyCreate)
	s.router.Post("/v1/companies/backfill", s.handleCompanyBackfill)
	s.router.Get("/v1/logs", s.handleLogs)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleLogs(w http.ResponseWriter, r *http.Request) {
	entries := common.LogEntries()
	writeJSON(w, http.StatusOK, map[string]interface{}{"entries": entries, "count": len(entries)})
}

// embedQuery computes the query-time embedding for a search request.
func (s *Server) embedQuery(ctx context.Context, query string) ([]float32, error) {
	vectors, err := s.provider.Embed(ctx, []string{query})
	if err != nil {
		return nil, err
	}
	if len(vectors) == 0 || len(vectors[0]) == 0 {
		return nil, fmt.Errorf("embedder returned no vector")
	}
	return vectors[0], nil
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, err error) {
	logger := common.Logger()
	if status >= http.StatusInternalServerError {
		logger.Error("request failed", "status", status, "error", err)
	} else {
		logger.Warn("request failed", "status", status, "error", err)
	}
	writeJSON(w, status, map[string]string{"error": err.Error()})
}
