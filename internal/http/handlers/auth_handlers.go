package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/condogate/condogate/internal/domain"
	"github.com/condogate/condogate/internal/http/response"
)

// Login handles POST /auth/login and returns a signed access token.
func (h *Handlers) Login(w http.ResponseWriter, r *http.Request) {
	var req domain.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid JSON format")
		return
	}

	result, err := h.authService.Login(r.Context(), &req)
	if err != nil {
		response.WriteDomainError(w, err)
		return
	}

	response.WriteJSON(w, http.StatusOK, result)
}
