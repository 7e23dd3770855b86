package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/condogate/condogate/internal/domain"
	"github.com/condogate/condogate/internal/http/response"
)

// CreateVisitor handles POST /visitors, registering a visitor with a
// time-boxed entry pass for a resident.
func (h *Handlers) CreateVisitor(w http.ResponseWriter, r *http.Request) {
	var req domain.CreateVisitorRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid JSON format")
		return
	}

	visitor, err := h.visitorService.Create(r.Context(), &req)
	if err != nil {
		response.WriteDomainError(w, err)
		return
	}

	response.WriteJSON(w, http.StatusCreated, visitor)
}

// GetVisitors handles GET /visitors and lists visitors holding an
// active pass, newest first.
func (h *Handlers) GetVisitors(w http.ResponseWriter, r *http.Request) {
	visitors, err := h.visitorService.GetAll(r.Context())
	if err != nil {
		response.WriteDomainError(w, err)
		return
	}

	response.WriteJSON(w, http.StatusOK, visitors)
}

// GetVisitor handles GET /visitors/{id}
func (h *Handlers) GetVisitor(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	visitor, err := h.visitorService.GetByID(r.Context(), id)
	if err != nil {
		response.WriteDomainError(w, err)
		return
	}
	if visitor == nil {
		response.NotFound(w, "visitor not found")
		return
	}

	response.WriteJSON(w, http.StatusOK, visitor)
}

// UpdateVisitor handles PATCH /visitors/{id}; only the name and the
// vehicle plate can change after registration.
func (h *Handlers) UpdateVisitor(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req domain.UpdateVisitorRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid JSON format")
		return
	}

	visitor, err := h.visitorService.Update(r.Context(), id, &req)
	if err != nil {
		response.WriteDomainError(w, err)
		return
	}

	response.WriteJSON(w, http.StatusOK, visitor)
}
