package auth

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/TejasDesai007/Rural-Girls-Empowerment-sub000/internal/domain"
	"github.com/TejasDesai007/Rural-Girls-Empowerment-sub000/internal/transport/web/logx"
	"github.com/TejasDesai007/Rural-Girls-Empowerment-sub000/internal/transport/web/mw"
	v1 "github.com/TejasDesai007/Rural-Girls-Empowerment-sub000/internal/transport/web/v1"
)

// HandlerLogin обрабатывает POST /v1/login
type HandlerLogin struct {
	Log    *log.Logger
	Users  domain.UsersRepo
	Hasher domain.PasswordHasher
	Tokens domain.TokenManager
}

type loginRequest struct {
	Login string `json:"login"`
	Pswd  string `json:"pswd"`
}

type loginResponse struct {
	Token string `json:"token"`
}

// Login godoc
// @Summary     Login, get JWT
// @Tags        auth
// @Accept      json
// @Produce     json
// @Param       request body loginRequest true "login, pswd"
// @Success     200 {object} domain.APIEnvelope{data=loginResponse}
// @Failure     400 {object} domain.APIEnvelope
// @Failure     401 {object} domain.APIEnvelope
// @Router      /v1/login [post]
func (h *HandlerLogin) Login(w http.ResponseWriter, r *http.Request) {
	const op = "auth.login"
	reqID := mw.RequestIDFromCtx(r.Context())

	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logx.Error(h.Log, reqID, op, "decode body", err)
		v1.WriteDomainError(w, r, domain.ErrBadParams)
		return
	}
	if req.Login == "" || req.Pswd == "" {
		v1.WriteBadRequest(w, r, "login and pswd are required")
		return
	}

	u, err := h.Users.UserByLogin(r.Context(), req.Login)
	if err != nil {
		// не раскрываем, логин неверен или пароль
		if !errors.Is(err, domain.ErrNotFound) {
			logx.Error(h.Log, reqID, op, "db user lookup", err, "login", req.Login)
		}
		v1.WriteDomainError(w, r, domain.ErrUnauth)
		return
	}

	ok, err := h.Hasher.Verify(req.Pswd, u.PassHash)
	if err != nil || !ok {
		logx.Info(h.Log, reqID, op, "verify failed", "login", req.Login)
		v1.WriteDomainError(w, r, domain.ErrUnauth)
		return
	}

	token, claims, err := h.Tokens.Issue(r.Context(), u.ID, u.Login)
	if err != nil {
		logx.Error(h.Log, reqID, op, "issue token", err, "login", req.Login)
		v1.WriteDomainError(w, r, domain.ErrUnexpected)
		return
	}

	logx.Info(h.Log, reqID, op, "ok", "login", u.Login, "jti", claims.JTI)
	v1.WriteOK(w, r, loginResponse{Token: token})
}
