package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/condogate/condogate/internal/domain"
	"github.com/condogate/condogate/internal/http/response"
	"github.com/condogate/condogate/pkg/logger"
)

// CreateUser handles POST /users
func (h *Handlers) CreateUser(w http.ResponseWriter, r *http.Request) {
	var req domain.CreateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid JSON format")
		return
	}

	user, err := h.userService.Create(r.Context(), &req)
	if err != nil {
		response.WriteDomainError(w, err)
		return
	}

	response.WriteJSON(w, http.StatusCreated, user)
}

// GetUsers handles GET /users with page/limit query params
func (h *Handlers) GetUsers(w http.ResponseWriter, r *http.Request) {
	page, limit, err := parsePagination(r)
	if err != nil {
		response.BadRequest(w, "page and limit must be integers")
		return
	}

	users, err := h.userService.List(r.Context(), page, limit)
	if err != nil {
		response.WriteDomainError(w, err)
		return
	}

	response.WriteJSON(w, http.StatusOK, users)
}

// GetUser handles GET /users/{id}
func (h *Handlers) GetUser(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	user, err := h.userService.GetByID(r.Context(), id)
	if err != nil {
		response.WriteDomainError(w, err)
		return
	}
	if user == nil {
		response.NotFound(w, "user not found")
		return
	}

	response.WriteJSON(w, http.StatusOK, user)
}

// UpdateUser handles PATCH /users/{id}
func (h *Handlers) UpdateUser(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req domain.UpdateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid JSON format")
		return
	}

	user, err := h.userService.Update(r.Context(), id, &req)
	if err != nil {
		response.WriteDomainError(w, err)
		return
	}

	response.WriteJSON(w, http.StatusOK, user)
}

// DeleteUser handles DELETE /users/{id}; deletion is a soft delete.
func (h *Handlers) DeleteUser(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.userService.Delete(r.Context(), id); err != nil {
		response.WriteDomainError(w, err)
		return
	}

	if claims := getClaims(r); claims != nil {
		logger.InfoContext(r.Context(), "User deleted", "user_id", id, "deleted_by", claims.Sub)
	}

	w.WriteHeader(http.StatusNoContent)
}
