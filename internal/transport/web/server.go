package web

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/TejasDesai007/Rural-Girls-Empowerment-sub000/internal/config"
	"github.com/TejasDesai007/Rural-Girls-Empowerment-sub000/internal/transport/web/mw"
	"github.com/TejasDesai007/Rural-Girls-Empowerment-sub000/internal/transport/web/v1/auth"
	"github.com/TejasDesai007/Rural-Girls-Empowerment-sub000/internal/transport/web/v1/health"
	"github.com/TejasDesai007/Rural-Girls-Empowerment-sub000/internal/transport/web/v1/toolkit"
)

type Server struct {
	log    *log.Logger
	server *http.Server
	cfg    *config.Config
}

func New(logger *log.Logger, cfg *config.Config, d Deps) *Server {
	healthLog := log.New(logger.Writer(), logger.Prefix()+"[health] ", logger.Flags())
	authLog := log.New(logger.Writer(), logger.Prefix()+"[auth] ", logger.Flags())
	toolkitLog := log.New(logger.Writer(), logger.Prefix()+"[toolkit] ", logger.Flags())

	healthHandler := &health.Handler{Log: healthLog, DB: d.DB, Cache: d.Cache, Storage: d.Store}
	registerHandler := &auth.HandlerRegister{Log: authLog, Users: d.Users, Hasher: d.Hasher, AdminToken: cfg.AdminToken}
	loginHandler := &auth.HandlerLogin{Log: authLog, Users: d.Users, Hasher: d.Hasher, Tokens: d.Tokens}
	logoutHandler := &auth.HandlerLogout{
		Log:  authLog,
		Auth: mw.AuthDeps{Tokens: d.Tokens, Blacklist: d.Blacklist},
	}
	toolkitHandler := &toolkit.Handler{Log: toolkitLog, Registry: d.Registry, Store: d.Store, Archive: d.Archive}

	srv := &http.Server{
		Addr: cfg.AppPort,
		Handler: newRouter(routerDeps{
			health:  healthHandler,
			reg:     registerHandler,
			login:   loginHandler,
			logout:  logoutHandler,
			toolkit: toolkitHandler,
			auth:    mw.AuthDeps{Tokens: d.Tokens, Blacklist: d.Blacklist},
			uploads: d.UploadsDir,
		}, logger),
		ReadTimeout:       60 * time.Second,
		WriteTimeout:      60 * time.Second,
		MaxHeaderBytes:    1 << 20,
		ReadHeaderTimeout: 2 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	return &Server{server: srv, cfg: cfg, log: logger}
}

func (ws *Server) Run() {
	ws.log.Printf("started on %s", ws.server.Addr)
	if err := ws.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		ws.log.Fatalf("error: %v", err)
	}
}

func (ws *Server) Close(ctx context.Context) {
	if err := ws.server.Shutdown(ctx); err != nil {
		ws.log.Printf("forced to shutdown: %v", err)
	}
	ws.log.Println("exited gracefully")
}
