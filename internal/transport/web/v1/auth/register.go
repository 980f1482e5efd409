package auth

import (
	"encoding/json"
	"log"
	"net/http"
	"strings"

	"github.com/TejasDesai007/Rural-Girls-Empowerment-sub000/internal/domain"
	"github.com/TejasDesai007/Rural-Girls-Empowerment-sub000/internal/transport/web/logx"
	"github.com/TejasDesai007/Rural-Girls-Empowerment-sub000/internal/transport/web/mw"
	v1 "github.com/TejasDesai007/Rural-Girls-Empowerment-sub000/internal/transport/web/v1"
)

// HandlerRegister обрабатывает POST /v1/register
type HandlerRegister struct {
	Log        *log.Logger
	Users      domain.UsersRepo
	Hasher     domain.PasswordHasher
	AdminToken string
}

type registerRequest struct {
	Token string `json:"token"` // админ-токен (из конфига)
	Login string `json:"login"`
	Pswd  string `json:"pswd"`
}

type registerResponse struct {
	Login string `json:"login"`
}

// Register godoc
// @Summary     Register new user
// @Description Регистрация нового пользователя (доступно только по admin-token из конфига).
// @Tags        auth
// @Accept      json
// @Produce     json
// @Param       request body registerRequest true "token, login, pswd"
// @Success     201 {object} domain.APIEnvelope{data=registerResponse}
// @Failure     400 {object} domain.APIEnvelope
// @Failure     401 {object} domain.APIEnvelope
// @Failure     500 {object} domain.APIEnvelope
// @Router      /v1/register [post]
func (h *HandlerRegister) Register(w http.ResponseWriter, r *http.Request) {
	const op = "auth.register"
	reqID := mw.RequestIDFromCtx(r.Context())
	logx.Info(h.Log, reqID, op, "start")

	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logx.Error(h.Log, reqID, op, "decode body", err)
		v1.WriteDomainError(w, r, domain.ErrBadParams)
		return
	}

	if h.AdminToken == "" || req.Token != h.AdminToken {
		logx.Error(h.Log, reqID, op, "bad admin token", domain.ErrUnauth)
		v1.WriteDomainError(w, r, domain.ErrUnauth)
		return
	}

	req.Login = strings.TrimSpace(req.Login)
	if req.Login == "" || req.Pswd == "" {
		v1.WriteBadRequest(w, r, "login and pswd are required")
		return
	}

	hash, err := h.Hasher.Hash(req.Pswd)
	if err != nil {
		logx.Error(h.Log, reqID, op, "hash password", err)
		v1.WriteDomainError(w, r, domain.ErrUnexpected)
		return
	}

	u, err := h.Users.CreateUser(r.Context(), req.Login, hash)
	if err != nil {
		logx.Error(h.Log, reqID, op, "db create user", err, "login", req.Login)
		v1.WriteDomainError(w, r, domain.ErrUnexpected)
		return
	}

	logx.Info(h.Log, reqID, op, "registered", "login", u.Login)
	v1.WriteCreated(w, r, "user registered", registerResponse{Login: u.Login})
}
