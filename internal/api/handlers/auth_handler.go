package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/vikramraju/customer-feedback/backend/internal/application/services"
)

// AuthHandler handles admin login.
type AuthHandler struct {
	auth *services.AuthService
}

// NewAuthHandler creates a new auth handler.
func NewAuthHandler(auth *services.AuthService) *AuthHandler {
	return &AuthHandler{auth: auth}
}

type loginRequest struct {
	UserID   string `json:"user_id"`
	Password string `json:"password"`
}

// Login handles POST /api/admin/login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var payload loginRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request payload")
		return
	}

	payload.UserID = strings.TrimSpace(payload.UserID)
	if payload.UserID == "" || payload.Password == "" {
		respondWithError(w, http.StatusBadRequest, "user id and password are required")
		return
	}

	result, err := h.auth.Login(r.Context(), payload.UserID, payload.Password)
	if err != nil {
		respondWithAppError(w, err, "failed to log in")
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"token": result.Token,
		"admin": map[string]string{"user_id": result.Admin.UserID},
	})
}
