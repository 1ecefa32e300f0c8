// File path: internal/api/define_handler.go
package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/opengloss/glossd/internal/common"
	"github.com/opengloss/glossd/internal/glossary"
)

type defineRequest struct {
	Term   string `json:"term"`
	UserID string `json:"user_id"`
}

func (s *Server) handleDefine(w http.ResponseWriter, r *http.Request) {
	logger := common.Logger()
	var req defineRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.Warn("api: define decode failed", "error", err)
		writeError(w, http.StatusBadRequest, err)
		return
	}
	term := strings.TrimSpace(req.Term)
	if term == "" {
		writeError(w, http.StatusBadRequest, fmt.Errorf("term required"))
		return
	}
	var editorID *uuid.UUID
	if trimmed := strings.TrimSpace(req.UserID); trimmed != "" {
		parsed, err := uuid.Parse(trimmed)
		if err != nil {
			writeError(w, http.StatusBadRequest, fmt.Errorf("invalid user_id: %w", err))
			return
		}
		editorID = &parsed
	}
	logger.Info("api: define request", "term", term)

	result, err := s.definer.Define(r.Context(), term, editorID)
	if err != nil {
		var decodeErr *glossary.DecodeError
		if errors.As(err, &decodeErr) {
			logger.Error("api: define generator output unusable", "term", term, "error", err)
			writeJSON(w, http.StatusInternalServerError, map[string]string{
				"error": "model did not return valid JSON",
				"raw":   decodeErr.Raw,
			})
			return
		}
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"ok":        true,
		"exists":    !result.IsNew,
		"term":      result.Term,
		"version":   result.Version,
		"companies": result.Companies,
	})
}
