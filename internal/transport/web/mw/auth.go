package mw

import (
	"context"
	"net/http"
	"strings"

	"github.com/TejasDesai007/Rural-Girls-Empowerment-sub000/internal/domain"
)

const userKey ctxKey = "auth_user"

type AuthDeps struct {
	Tokens    domain.TokenManager
	Blacklist domain.TokenBlacklist
}

func RequireAuth(deps AuthDeps, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw := extractBearer(r.Header.Get("Authorization"))
		if raw == "" {
			unauthorized(w)
			return
		}
		claims, err := deps.Tokens.Parse(r.Context(), raw)
		if err != nil {
			unauthorized(w)
			return
		}
		if revoked, _ := deps.Blacklist.IsRevoked(r.Context(), claims.JTI); revoked {
			unauthorized(w)
			return
		}
		u := domain.User{ID: claims.UserID, Login: claims.Login}
		ctx := context.WithValue(r.Context(), userKey, u)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func UserFromCtx(ctx context.Context) (domain.User, bool) {
	u, ok := ctx.Value(userKey).(domain.User)
	return u, ok
}

// ClaimsFromRequest парсит Bearer без отказа — нужен logout'у,
// которому клеймы нужны даже для уже истекающего токена.
func ClaimsFromRequest(deps AuthDeps, r *http.Request) (domain.TokenClaims, error) {
	raw := extractBearer(r.Header.Get("Authorization"))
	if raw == "" {
		return domain.TokenClaims{}, domain.ErrUnauth
	}
	return deps.Tokens.Parse(r.Context(), raw)
}

func unauthorized(w http.ResponseWriter) {
	http.Error(w, `{"success":false,"message":"unauthorized"}`, http.StatusUnauthorized)
}

func extractBearer(h string) string {
	if len(h) > 7 && strings.EqualFold(h[:7], "Bearer ") {
		return strings.TrimSpace(h[7:])
	}
	return ""
}
