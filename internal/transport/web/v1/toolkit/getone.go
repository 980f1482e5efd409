package toolkit

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/TejasDesai007/Rural-Girls-Empowerment-sub000/internal/domain"
	v1 "github.com/TejasDesai007/Rural-Girls-Empowerment-sub000/internal/transport/web/v1"
)

// GetOne godoc
// @Summary     Get toolkit by id
// @Tags        toolkit
// @Produce     json
// @Param       id path string true "toolkit id"
// @Success     200 {object} domain.APIEnvelope{data=domain.Toolkit}
// @Failure     404 {object} domain.APIEnvelope
// @Router      /v1/toolkit/{id} [get]
func (h *Handler) GetOne(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		v1.WriteDomainError(w, r, domain.ErrNotFound)
		return
	}

	t, err := h.Registry.Get(r.Context(), id)
	if err != nil {
		h.Log.Printf("get one %s: %v", id, err)
		v1.WriteDomainError(w, r, err)
		return
	}
	v1.WriteOK(w, r, t)
}
