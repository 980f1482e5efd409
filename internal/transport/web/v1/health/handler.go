package health

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/TejasDesai007/Rural-Girls-Empowerment-sub000/internal/domain"
	"github.com/TejasDesai007/Rural-Girls-Empowerment-sub000/internal/transport/web/logx"
	"github.com/TejasDesai007/Rural-Girls-Empowerment-sub000/internal/transport/web/mw"
	v1 "github.com/TejasDesai007/Rural-Girls-Empowerment-sub000/internal/transport/web/v1"
)

type Pinger interface {
	Ping(context.Context) error
}

type Handler struct {
	Log     *log.Logger
	DB      Pinger
	Cache   Pinger
	Storage Pinger
}

// Liveness godoc
// @Summary      Liveness probe
// @Description  Проверка, жив ли сервис (не зависит от БД/кэша/хранилища)
// @Tags         health
// @Produce      json
// @Success      200  {object}  domain.APIEnvelope{data=string}
// @Router       /v1/healthz [get]
func (h *Handler) Liveness(w http.ResponseWriter, r *http.Request) {
	const op = "health.liveness"
	reqID := mw.RequestIDFromCtx(r.Context())

	logx.Info(h.Log, reqID, op, "ok")
	v1.WriteOK(w, r, "ok")
}

// Readiness godoc
// @Summary      Readiness probe
// @Description  Проверка готовности: пинг Postgres, Redis и файлового хранилища
// @Tags         health
// @Produce      json
// @Success      200  {object}  domain.APIEnvelope{data=string}
// @Failure      503  {object}  domain.APIEnvelope
// @Router       /v1/readyz [get]
func (h *Handler) Readiness(w http.ResponseWriter, r *http.Request) {
	const op = "health.readiness"
	reqID := mw.RequestIDFromCtx(r.Context())

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	checks := []struct {
		name string
		p    Pinger
	}{
		{"db", h.DB},
		{"cache", h.Cache},
		{"storage", h.Storage},
	}
	for _, c := range checks {
		if err := c.p.Ping(ctx); err != nil {
			logx.Error(h.Log, reqID, op, c.name+" ping failed", err)
			v1.WriteEnvelope(w, r, http.StatusServiceUnavailable, domain.Fail("not ready: "+c.name))
			return
		}
	}

	logx.Info(h.Log, reqID, op, "ready")
	v1.WriteOK(w, r, "ready")
}
