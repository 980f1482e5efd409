package toolkit

import (
	"encoding/json"
	"net/http"

	"github.com/google/uuid"

	"github.com/TejasDesai007/Rural-Girls-Empowerment-sub000/internal/domain"
	v1 "github.com/TejasDesai007/Rural-Girls-Empowerment-sub000/internal/transport/web/v1"
)

// Update godoc
// @Summary     Partially update toolkit metadata
// @Tags        toolkit
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "toolkit id"
// @Param       request body object true "title / description / category (все опциональны)"
// @Success     200 {object} domain.APIEnvelope{data=domain.Toolkit}
// @Failure     400 {object} domain.APIEnvelope
// @Failure     404 {object} domain.APIEnvelope
// @Router      /v1/toolkit/{id} [put]
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		v1.WriteDomainError(w, r, domain.ErrNotFound)
		return
	}

	var req struct {
		Title       *string  `json:"title"`
		Description *string  `json:"description"`
		Categories  []string `json:"category"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.Log.Printf("update %s: body: %v", id, err)
		v1.WriteBadRequest(w, r, "invalid json body")
		return
	}

	t, err := h.Registry.Update(r.Context(), id, domain.ToolkitUpdate{
		Title:       req.Title,
		Description: req.Description,
		Categories:  req.Categories,
	})
	if err != nil {
		h.Log.Printf("update %s: %v", id, err)
		v1.WriteDomainError(w, r, err)
		return
	}
	v1.WriteOKMsg(w, r, "toolkit updated", t)
}
