// Package health содержит liveness/readiness-пробы сервиса.
package health

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/EgorLis/my-notes/internal/transport/web/logx"
	"github.com/EgorLis/my-notes/internal/transport/web/mw"
)

// Pinger умеет проверять доступность зависимости.
type Pinger interface {
	Ping(ctx context.Context) error
}

type Handler struct {
	Log   *log.Logger
	DB    Pinger
	Cache Pinger
}

// Liveness godoc
// @Summary  Liveness probe
// @Tags     health
// @Produce  plain
// @Success  200 {string} string "ok"
// @Router   /healthz [get]
func (h *Handler) Liveness(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

// Readiness godoc
// @Summary  Readiness probe
// @Tags     health
// @Produce  plain
// @Success  200 {string} string "ready"
// @Failure  503 {string} string
// @Router   /readyz [get]
func (h *Handler) Readiness(w http.ResponseWriter, r *http.Request) {
	const op = "health.ready"
	reqID := mw.RequestIDFromCtx(r.Context())

	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	if err := h.DB.Ping(ctx); err != nil {
		logx.Error(h.Log, reqID, op, "postgres not ready", err)
		http.Error(w, "db not ready", http.StatusServiceUnavailable)
		return
	}
	if err := h.Cache.Ping(ctx); err != nil {
		logx.Error(h.Log, reqID, op, "redis not ready", err)
		http.Error(w, "cache not ready", http.StatusServiceUnavailable)
		return
	}

	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ready"))
}
