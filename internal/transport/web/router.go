package web

import (
	"log"
	"net/http"
	"time"

	_ "github.com/EgorLis/my-notes/internal/docs"
	"github.com/EgorLis/my-notes/internal/domain"
	"github.com/EgorLis/my-notes/internal/transport/web/mw"
	"github.com/EgorLis/my-notes/internal/transport/web/v1/auth"
	"github.com/EgorLis/my-notes/internal/transport/web/v1/doc"
	"github.com/EgorLis/my-notes/internal/transport/web/v1/health"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"
)

type routerDeps struct {
	logger    *log.Logger
	sessions  domain.SessionStore
	ttl       time.Duration
	secure    bool
	staticDir string

	register *auth.HandlerRegister
	login    *auth.HandlerLogin
	logout   *auth.HandlerLogout
	delete   *auth.HandlerDelete
	check    *auth.HandlerCheck
	docs     *doc.Handler
	health   *health.Handler
}

func newRouter(d routerDeps) http.Handler {
	mux := http.NewServeMux()

	// auth
	mux.HandleFunc("POST /register", limitBody(1<<20, d.register.Register))
	mux.HandleFunc("POST /login", limitBody(1<<20, d.login.Login))
	mux.HandleFunc("POST /logout", d.logout.Logout)
	mux.HandleFunc("POST /deleteuser", d.delete.Delete)
	mux.HandleFunc("GET /check", d.check.Check)

	// документ сессии
	mux.HandleFunc("GET /load", d.docs.Load)
	mux.HandleFunc("POST /save", limitBody(4<<20, d.docs.Save)) // 4MB лимит

	// health
	mux.HandleFunc("GET /healthz", d.health.Liveness)
	mux.HandleFunc("GET /readyz", d.health.Readiness)

	// metrics + swagger
	mux.Handle("GET /metrics", promhttp.Handler())
	mux.Handle("GET /swagger/", httpSwagger.WrapHandler)

	// статика (страница блокнота)
	mux.Handle("GET /", http.FileServer(http.Dir(d.staticDir)))

	// 🔗 middleware: request id → логирование → метрики → сессия
	sessionDeps := mw.SessionDeps{
		Log:      d.logger,
		Sessions: d.sessions,
		TTL:      d.ttl,
		Secure:   d.secure,
	}
	return mw.WithRequestID(mw.Logging(d.logger)(mw.Metrics(mw.WithSession(sessionDeps, mux))))
}

func limitBody(n int64, h http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		r.Body = http.MaxBytesReader(w, r.Body, n)
		h(w, r)
	}
}
