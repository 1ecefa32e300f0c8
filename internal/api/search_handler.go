// File path: internal/api/search_handler.go
package api

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/opengloss/glossd/internal/common"
	"github.com/opengloss/glossd/internal/glossary"
	"github.com/opengloss/glossd/internal/store"
)

type termSearchResult struct {
	store.TermMatch
	Confidence string `json:"confidence"`
}

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	logger := common.Logger()
	query, err := searchQuery(r)
	if err != nil {
		logger.Warn("api: search rejected", "error", err)
		writeError(w, http.StatusBadRequest, err)
		return
	}
	logger.Info("api: semantic term search", "query", query)
	embedding, err := s.embedQuery(r.Context(), query)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	matches, err := s.store.SearchTerms(r.Context(), embedding, termMatchThreshold, matchCount)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	results := make([]termSearchResult, 0, len(matches))
	for _, m := range matches {
		results = append(results, termSearchResult{
			TermMatch:  m,
			Confidence: glossary.ConfidenceLabel(m.Similarity),
		})
	}
	logger.Debug("api: semantic term search served", "results", len(results))
	writeJSON(w, http.StatusOK, map[string]interface{}{"results": results})
}

func (s *Server) handleLexicalSearch(w http.ResponseWriter, r *http.Request) {
	logger := common.Logger()
	query, err := searchQuery(r)
	if err != nil {
		logger.Warn("api: lexical search rejected", "error", err)
		writeError(w, http.StatusBadRequest, err)
		return
	}
	logger.Info("api: lexical term search", "query", query)
	terms, err := s.store.LexicalSearchTerms(r.Context(), query, lexicalLimit)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"ok":      true,
		"count":   len(terms),
		"results": terms,
	})
}

// searchQuery validates the q parameter before any provider or store call.
func searchQuery(r *http.Request) (string, error) {
	query := strings.TrimSpace(r.URL.Query().Get("q"))
	if len(query) < minQueryLength {
		return "", fmt.Errorf("query must be at least %d characters", minQueryLength)
	}
	return query, nil
}
