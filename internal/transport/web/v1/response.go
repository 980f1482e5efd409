package v1

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/TejasDesai007/Rural-Girls-Empowerment-sub000/internal/domain"
	"github.com/TejasDesai007/Rural-Girls-Empowerment-sub000/internal/transport/web/mw"
)

// MapDomainError решает HTTP-статус + message для конверта
func MapDomainError(err error) (httpStatus int, env domain.APIEnvelope) {
	switch {
	case errors.Is(err, domain.ErrBadParams):
		return http.StatusBadRequest, domain.Fail("bad params")
	case errors.Is(err, domain.ErrUnauth):
		return http.StatusUnauthorized, domain.Fail("unauthorized")
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound, domain.Fail("not found")
	case errors.Is(err, domain.ErrMethodNotAllowed):
		return http.StatusMethodNotAllowed, domain.Fail("method not allowed")
	default:
		// таймауты/отмены и всё неожиданное — как 500
		return http.StatusInternalServerError, domain.Fail("unexpected error")
	}
}

// WriteEnvelope пишет конверт; для HEAD — без тела
func WriteEnvelope(w http.ResponseWriter, r *http.Request, status int, env domain.APIEnvelope) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("X-Request-ID", mw.RequestIDFromCtx(r.Context()))
	w.WriteHeader(status)
	if r.Method == http.MethodHead {
		return
	}
	_ = json.NewEncoder(w).Encode(env)
}

// Шорткаты успеха
func WriteOK(w http.ResponseWriter, r *http.Request, data any) {
	WriteEnvelope(w, r, http.StatusOK, domain.Ok(data))
}
func WriteOKMsg(w http.ResponseWriter, r *http.Request, msg string, data any) {
	WriteEnvelope(w, r, http.StatusOK, domain.OkMsg(msg, data))
}
func WriteCreated(w http.ResponseWriter, r *http.Request, msg string, data any) {
	WriteEnvelope(w, r, http.StatusCreated, domain.OkMsg(msg, data))
}

// Шорткаты ошибок
func WriteDomainError(w http.ResponseWriter, r *http.Request, err error) {
	status, env := MapDomainError(err)
	WriteEnvelope(w, r, status, env)
}
func WriteBadRequest(w http.ResponseWriter, r *http.Request, msg string) {
	WriteEnvelope(w, r, http.StatusBadRequest, domain.Fail(msg))
}
