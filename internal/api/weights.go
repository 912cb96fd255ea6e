package api

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/havenlab/haven/internal/session"
	"github.com/havenlab/haven/internal/weights"
)

type WeightsHandler struct {
	session *session.Session
}

func NewWeightsHandler(s *session.Session) *WeightsHandler {
	return &WeightsHandler{session: s}
}

// WeightsResponse carries both the persisted raw weights and the normalized
// distribution recomputed from them.
type WeightsResponse struct {
	Raw        weights.Raw          `json:"raw"`
	Normalized weights.Distribution `json:"normalized"`
}

func (h *WeightsHandler) Get(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, WeightsResponse{
		Raw:        h.session.RawWeights(),
		Normalized: h.session.NormalizedWeights(),
	})
}

func (h *WeightsHandler) Put(w http.ResponseWriter, r *http.Request) {
	var raw map[string]float64
	if err := json.NewDecoder(r.Body).Decode(&raw); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}
	if err := h.session.SetRawWeights(raw); err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, WeightsResponse{
		Raw:        h.session.RawWeights(),
		Normalized: h.session.NormalizedWeights(),
	})
}

func (h *WeightsHandler) Presets(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string][]string{"presets": weights.PresetNames()})
}

func (h *WeightsHandler) ApplyPreset(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	applied, err := h.session.ApplyPreset(name)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	if !applied {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "unknown preset"})
		return
	}
	writeJSON(w, http.StatusOK, WeightsResponse{
		Raw:        h.session.RawWeights(),
		Normalized: h.session.NormalizedWeights(),
	})
}
