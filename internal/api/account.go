package api

import (
	"encoding/json"
	"net/http"

	"github.com/havenlab/haven/internal/auth"
	"github.com/havenlab/haven/internal/session"
)

type AccountHandler struct {
	session *session.Session
	auth    auth.Client
}

func NewAccountHandler(s *session.Session, a auth.Client) *AccountHandler {
	return &AccountHandler{session: s, auth: a}
}

// SignInRequest accepts either a magic-link token, resolved through the auth
// collaborator, or a direct user id when no auth service is configured.
type SignInRequest struct {
	Token  string `json:"token,omitempty"`
	UserID string `json:"user_id,omitempty"`
}

func (h *AccountHandler) SignIn(w http.ResponseWriter, r *http.Request) {
	var req SignInRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	userID := req.UserID
	if req.Token != "" {
		if h.auth == nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "token sign-in is not configured"})
			return
		}
		identity, err := h.auth.Verify(r.Context(), req.Token)
		if err != nil {
			writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "token verification failed"})
			return
		}
		userID = identity.UserID
	}
	if userID == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "token or user_id required"})
		return
	}

	if err := h.session.SignIn(r.Context(), userID); err != nil {
		writeJSON(w, http.StatusBadGateway, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"user_id": userID, "sync_status": h.session.SyncStatus()})
}

func (h *AccountHandler) SignOut(w http.ResponseWriter, r *http.Request) {
	h.session.SignOut()
	writeJSON(w, http.StatusOK, map[string]string{"sync_status": h.session.SyncStatus()})
}

func (h *AccountHandler) Status(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"user_id":     h.session.UserID(),
		"sync_status": h.session.SyncStatus(),
	})
}
