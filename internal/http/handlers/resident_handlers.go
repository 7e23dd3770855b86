package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/condogate/condogate/internal/domain"
	"github.com/condogate/condogate/internal/http/response"
)

// CreateResident handles POST /residents, linking a user to a unit.
func (h *Handlers) CreateResident(w http.ResponseWriter, r *http.Request) {
	var req domain.CreateResidentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid JSON format")
		return
	}

	resident, err := h.residentService.Create(r.Context(), &req)
	if err != nil {
		response.WriteDomainError(w, err)
		return
	}

	response.WriteJSON(w, http.StatusCreated, resident)
}

// GetResident handles GET /residents/{id}
func (h *Handlers) GetResident(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	resident, err := h.residentService.GetByID(r.Context(), id)
	if err != nil {
		response.WriteDomainError(w, err)
		return
	}
	if resident == nil {
		response.NotFound(w, "resident not found")
		return
	}

	response.WriteJSON(w, http.StatusOK, resident)
}
