package toolkit

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/TejasDesai007/Rural-Girls-Empowerment-sub000/internal/domain"
	v1 "github.com/TejasDesai007/Rural-Girls-Empowerment-sub000/internal/transport/web/v1"
)

// Delete godoc
// @Summary     Delete toolkit with its files
// @Tags        toolkit
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "toolkit id"
// @Success     200 {object} domain.APIEnvelope
// @Failure     404 {object} domain.APIEnvelope
// @Router      /v1/toolkit/{id} [delete]
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		v1.WriteDomainError(w, r, domain.ErrNotFound)
		return
	}

	if err := h.Registry.Delete(r.Context(), id); err != nil {
		h.Log.Printf("delete %s: %v", id, err)
		v1.WriteDomainError(w, r, err)
		return
	}
	v1.WriteOKMsg(w, r, "toolkit deleted", nil)
}
