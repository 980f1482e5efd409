package web

import (
	"log"
	"net/http"
	"strings"

	_ "github.com/TejasDesai007/Rural-Girls-Empowerment-sub000/internal/docs"
	"github.com/TejasDesai007/Rural-Girls-Empowerment-sub000/internal/transport/web/mw"
	"github.com/TejasDesai007/Rural-Girls-Empowerment-sub000/internal/transport/web/v1/auth"
	"github.com/TejasDesai007/Rural-Girls-Empowerment-sub000/internal/transport/web/v1/health"
	"github.com/TejasDesai007/Rural-Girls-Empowerment-sub000/internal/transport/web/v1/toolkit"
	httpSwagger "github.com/swaggo/http-swagger"
)

type routerDeps struct {
	health  *health.Handler
	reg     *auth.HandlerRegister
	login   *auth.HandlerLogin
	logout  *auth.HandlerLogout
	toolkit *toolkit.Handler
	auth    mw.AuthDeps
	uploads string
}

func newRouter(d routerDeps, logger *log.Logger) http.Handler {
	mux := http.NewServeMux()

	// health
	mux.HandleFunc("GET /v1/healthz", d.health.Liveness)
	mux.HandleFunc("GET /v1/readyz", d.health.Readiness)

	// auth
	mux.HandleFunc("POST /v1/register", d.reg.Register)
	mux.HandleFunc("POST /v1/login", d.login.Login)
	mux.HandleFunc("DELETE /v1/logout", d.logout.Logout)

	// toolkit: чтение публичное, запись — только с токеном
	mux.Handle("POST /v1/toolkit", mw.RequireAuth(d.auth, limitBody(64<<20, d.toolkit.Create))) // 64MB лимит
	mux.HandleFunc("GET /v1/toolkit", d.toolkit.List)
	mux.HandleFunc("GET /v1/toolkit/{id}", d.toolkit.GetOne)
	mux.Handle("PUT /v1/toolkit/{id}", mw.RequireAuth(d.auth, http.HandlerFunc(d.toolkit.Update)))
	mux.Handle("DELETE /v1/toolkit/{id}", mw.RequireAuth(d.auth, http.HandlerFunc(d.toolkit.Delete)))
	mux.HandleFunc("GET /v1/toolkit/{id}/download", d.toolkit.Download)

	// раздача файлов напрямую — только при локальном хранилище.
	// d.uploads указывает на каталог toolkit/, поэтому манифестный
	// path /uploads/toolkit/<id>/<stored> режется целиком до <id>/<stored>.
	if d.uploads != "" {
		fs := http.StripPrefix("/uploads/toolkit/", http.FileServer(http.Dir(d.uploads)))
		mux.Handle("GET /uploads/toolkit/", hideStaging(fs))
	}

	// swagger
	mux.Handle("GET /swagger/", httpSwagger.WrapHandler)

	// 🔗 middleware
	return mw.WithRequestID(mw.Logging(logger)(mux))
}

func limitBody(n int64, h http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		r.Body = http.MaxBytesReader(w, r.Body, n)
		h(w, r)
	}
}

// staging-зона наружу не публикуется
func hideStaging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rest := strings.TrimPrefix(r.URL.Path, "/uploads/toolkit/")
		if rest == "temp-uploads" || strings.HasPrefix(rest, "temp-uploads/") {
			http.NotFound(w, r)
			return
		}
		next.ServeHTTP(w, r)
	})
}
