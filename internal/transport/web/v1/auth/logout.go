package auth

import (
	"log"
	"net/http"

	"github.com/TejasDesai007/Rural-Girls-Empowerment-sub000/internal/domain"
	"github.com/TejasDesai007/Rural-Girls-Empowerment-sub000/internal/transport/web/logx"
	"github.com/TejasDesai007/Rural-Girls-Empowerment-sub000/internal/transport/web/mw"
	v1 "github.com/TejasDesai007/Rural-Girls-Empowerment-sub000/internal/transport/web/v1"
)

// HandlerLogout обрабатывает DELETE /v1/logout
type HandlerLogout struct {
	Log  *log.Logger
	Auth mw.AuthDeps
}

// Logout godoc
// @Summary     Logout (revoke current token)
// @Tags        auth
// @Produce     json
// @Security    BearerAuth
// @Success     200 {object} domain.APIEnvelope
// @Failure     401 {object} domain.APIEnvelope
// @Router      /v1/logout [delete]
func (h *HandlerLogout) Logout(w http.ResponseWriter, r *http.Request) {
	const op = "auth.logout"
	reqID := mw.RequestIDFromCtx(r.Context())

	claims, err := mw.ClaimsFromRequest(h.Auth, r)
	if err != nil {
		logx.Error(h.Log, reqID, op, "parse token", err)
		v1.WriteDomainError(w, r, domain.ErrUnauth)
		return
	}

	if err := h.Auth.Blacklist.Revoke(r.Context(), claims.JTI, claims.ExpiresAt); err != nil {
		logx.Error(h.Log, reqID, op, "revoke", err, "jti", claims.JTI)
		v1.WriteDomainError(w, r, domain.ErrUnexpected)
		return
	}

	logx.Info(h.Log, reqID, op, "revoked", "jti", claims.JTI, "login", claims.Login)
	v1.WriteOKMsg(w, r, "logged out", nil)
}
