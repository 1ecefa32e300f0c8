// File path: internal/api/company_handler.go
package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/opengloss/glossd/internal/common"
	"github.com/opengloss/glossd/internal/glossary"
	"github.com/opengloss/glossd/internal/store"
)

type companySearchResult struct {
	store.CompanyMatch
	Confidence string `json:"confidence"`
}

func (s *Server) handleCompanySearch(w http.ResponseWriter, r *http.Request) {
	logger := common.Logger()
	query, err := searchQuery(r)
	if err != nil {
		logger.Warn("api: company search rejected", "error", err)
		writeError(w, http.StatusBadRequest, err)
		return
	}
	logger.Info("api: semantic company search", "query", query)
	embedding, err := s.embedQuery(r.Context(), query)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	matches, err := s.store.SearchCompanies(r.Context(), embedding, companyMatchThreshold, matchCount)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	results := make([]companySearchResult, 0, len(matches))
	for _, m := range matches {
		results = append(results, companySearchResult{
			CompanyMatch: m,
			Confidence:   glossary.ConfidenceLabel(m.Similarity),
		})
	}
	logger.Debug("api: semantic company search served", "results", len(results))
	writeJSON(w, http.StatusOK, map[string]interface{}{"results": results})
}

type companyCreateRequest struct {
	Name            string `json:"name"`
	Public          *bool  `json:"public"`
	RevenueEstimate string `json:"revenue_estimate"`
	FundingTotal    string `json:"funding_total"`
	Description     string `json:"description"`
}

func (s *Server) handleCompanyCreate(w http.ResponseWriter, r *http.Request) {
	logger := common.Logger()
	var req companyCreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.Warn("api: company create decode failed", "error", err)
		writeError(w, http.StatusBadRequest, err)
		return
	}
	name := strings.TrimSpace(req.Name)
	if len(name) < minQueryLength {
		writeError(w, http.StatusBadRequest, fmt.Errorf("name is required"))
		return
	}
	logger.Info("api: company create", "name", name)
	embedding, err := s.embedQuery(r.Context(), name+". "+strings.TrimSpace(req.Description))
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	company, err := s.store.UpsertCompany(r.Context(), store.Company{
		Name:            name,
		NormalizedName:  glossary.NormalizeName(name),
		Public:          req.Public,
		RevenueEstimate: strings.TrimSpace(req.RevenueEstimate),
		FundingTotal:    strings.TrimSpace(req.FundingTotal),
		Description:     strings.TrimSpace(req.Description),
	}, embedding)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"ok": true, "company": company})
}

// handleCompanyBackfill computes embeddings for companies that were stored
// without one. Individual failures are skipped so one bad row cannot stall
// the rest.
func (s *Server) handleCompanyBackfill(w http.ResponseWriter, r *http.Request) {
	logger := common.Logger()
	stubs, err := s.store.CompaniesMissingEmbedding(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	logger.Info("api: company embedding backfill", "pending", len(stubs))
	processed := 0
	failed := 0
	for _, stub := range stubs {
		embedding, err := s.embedQuery(r.Context(), stub.Name+". "+stub.Description)
		if err != nil {
			logger.Warn("api: backfill embedding failed", "company", stub.Name, "error", err)
			failed++
			continue
		}
		if err := s.store.SetCompanyEmbedding(r.Context(), stub.ID, embedding); err != nil {
			logger.Warn("api: backfill update failed", "company", stub.Name, "error", err)
			failed++
			continue
		}
		processed++
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"ok":        true,
		"processed": processed,
		"failed":    failed,
	})
}
