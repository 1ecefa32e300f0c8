// File path: internal/api/term_handler.go
package api

import (
	"errors"
	"fmt"
	"net/http"

	chi "github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/opengloss/glossd/internal/common"
	"github.com/opengloss/glossd/internal/store"
)

// versionDiff summarizes the size change between the two newest versions.
// It is a length delta, not a textual diff.
type versionDiff struct {
	NewestLength   int `json:"newestLength"`
	PreviousLength int `json:"previousLength"`
	Delta          int `json:"delta"`
}

func (s *Server) handleTermDetail(w http.ResponseWriter, r *http.Request) {
	logger := common.Logger()
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		logger.Warn("api: term detail invalid id", "error", err)
		writeError(w, http.StatusBadRequest, fmt.Errorf("invalid term id: %w", err))
		return
	}
	term, err := s.store.TermByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, err)
			return
		}
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	versions, err := s.store.VersionsForTerm(r.Context(), id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	companies, err := s.store.CompaniesForTerm(r.Context(), id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}

	var latestDiff *versionDiff
	if len(versions) >= 2 {
		newest := len(versions[0].DefinitionMD)
		previous := len(versions[1].DefinitionMD)
		latestDiff = &versionDiff{
			NewestLength:   newest,
			PreviousLength: previous,
			Delta:          newest - previous,
		}
	}

	logger.Debug("api: term detail served", "term_id", id, "versions", len(versions))
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"ok":         true,
		"term":       term,
		"versions":   versions,
		"latestDiff": latestDiff,
		"companies":  companies,
	})
}
