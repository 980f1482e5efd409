package toolkit

import (
	"net/http"

	"github.com/TejasDesai007/Rural-Girls-Empowerment-sub000/internal/domain"
	v1 "github.com/TejasDesai007/Rural-Girls-Empowerment-sub000/internal/transport/web/v1"
)

// List godoc
// @Summary     List toolkits (newest first)
// @Tags        toolkit
// @Produce     json
// @Success     200 {object} domain.APIEnvelope{data=[]domain.Toolkit}
// @Router      /v1/toolkit [get]
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	ts, err := h.Registry.List(r.Context())
	if err != nil {
		h.Log.Printf("list: %v", err)
		v1.WriteDomainError(w, r, err)
		return
	}
	if ts == nil {
		ts = []domain.Toolkit{}
	}
	v1.WriteOK(w, r, ts)
}
