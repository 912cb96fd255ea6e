package api

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/havenlab/haven/internal/record"
	"github.com/havenlab/haven/internal/session"
)

type PropertiesHandler struct {
	session *session.Session
}

func NewPropertiesHandler(s *session.Session) *PropertiesHandler {
	return &PropertiesHandler{session: s}
}

type CreatePropertyRequest struct {
	Address     string             `json:"address"`
	ListingURL  string             `json:"listingUrl,omitempty"`
	Price       float64            `json:"price"`
	Beds        int                `json:"beds"`
	Baths       float64            `json:"baths"`
	SqFt        float64            `json:"sqFt"`
	Notes       string             `json:"notes,omitempty"`
	ImageBase64 string             `json:"imageBase64,omitempty"`
	Scores      map[string]float64 `json:"scores"`
}

func (h *PropertiesHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreatePropertyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}
	if req.Address == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "address required"})
		return
	}

	p, err := record.NewProperty(req.Address, req.ListingURL, req.Price, req.Beds, req.Baths, req.SqFt, req.Notes, req.ImageBase64, req.Scores)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	if err := h.session.AddProperty(p); err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusCreated, p)
}

func (h *PropertiesHandler) List(w http.ResponseWriter, r *http.Request) {
	properties := h.session.Properties()
	if properties == nil {
		properties = []record.Property{}
	}
	writeJSON(w, http.StatusOK, properties)
}

func (h *PropertiesHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	p := h.session.Property(id)
	if p == nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "property not found"})
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (h *PropertiesHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	removed, err := h.session.DeleteProperty(id)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	if !removed {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "property not found"})
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
