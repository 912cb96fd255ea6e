package api

import (
	"net/http"

	"github.com/havenlab/haven/internal/registry"
	"github.com/havenlab/haven/internal/session"
)

type InsightsHandler struct {
	session *session.Session
}

func NewInsightsHandler(s *session.Session) *InsightsHandler {
	return &InsightsHandler{session: s}
}

func (h *InsightsHandler) Insights(w http.ResponseWriter, r *http.Request) {
	insights, err := h.session.Insights()
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, insights)
}

func (h *InsightsHandler) Scores(w http.ResponseWriter, r *http.Request) {
	breakdowns, err := h.session.Breakdowns()
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"properties": breakdowns})
}

func (h *InsightsHandler) Categories(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"groups": registry.Groups()})
}
