package web

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/EgorLis/my-notes/internal/config"
	"github.com/EgorLis/my-notes/internal/transport/web/v1/auth"
	"github.com/EgorLis/my-notes/internal/transport/web/v1/doc"
	"github.com/EgorLis/my-notes/internal/transport/web/v1/health"
)

type Server struct {
	log    *log.Logger
	server *http.Server
	cfg    *config.Config
}

func New(logger *log.Logger, cfg *config.Config, deps Deps) *Server {
	authLog := log.New(logger.Writer(), logger.Prefix()+"[auth] ", logger.Flags())
	docLog := log.New(logger.Writer(), logger.Prefix()+"[doc] ", logger.Flags())
	healthLog := log.New(logger.Writer(), logger.Prefix()+"[health] ", logger.Flags())

	rd := routerDeps{
		logger:    logger,
		sessions:  deps.Sessions,
		ttl:       cfg.SessionTTL,
		secure:    cfg.SecureCookie,
		staticDir: cfg.StaticDir,

		register: &auth.HandlerRegister{Log: authLog, Accounts: deps.Accounts},
		login:    &auth.HandlerLogin{Log: authLog, Accounts: deps.Accounts},
		logout:   &auth.HandlerLogout{Log: authLog, Accounts: deps.Accounts},
		delete:   &auth.HandlerDelete{Log: authLog, Accounts: deps.Accounts},
		check:    &auth.HandlerCheck{Log: authLog, Accounts: deps.Accounts},
		docs:     &doc.Handler{Log: docLog, Accounts: deps.Accounts},
		health:   &health.Handler{Log: healthLog, DB: deps.DB, Cache: deps.Cache},
	}

	srv := &http.Server{
		Addr:              cfg.AppPort,
		Handler:           newRouter(rd),
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      10 * time.Second,
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
