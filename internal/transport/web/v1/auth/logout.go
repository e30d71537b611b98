package auth

import (
	"log"
	"net/http"

	"github.com/EgorLis/my-notes/internal/domain"
	"github.com/EgorLis/my-notes/internal/service/account"
	"github.com/EgorLis/my-notes/internal/transport/web/logx"
	"github.com/EgorLis/my-notes/internal/transport/web/mw"
	v1 "github.com/EgorLis/my-notes/internal/transport/web/v1"
)

// HandlerLogout обрабатывает POST /logout
type HandlerLogout struct {
	Log      *log.Logger
	Accounts *account.Service
}

// Logout godoc
// @Summary     Logout
// @Description Уничтожает текущую сессию; идемпотентно.
// @Tags        auth
// @Produce     json
// @Success     200 {object} map[string]string
// @Failure     500 {object} map[string]string
// @Router      /logout [post]
func (h *HandlerLogout) Logout(w http.ResponseWriter, r *http.Request) {
	const op = "auth.logout"
	reqID := mw.RequestIDFromCtx(r.Context())
	logx.Info(h.Log, reqID, op, "start", "method", r.Method, "path", r.URL.Path)

	sess, ok := mw.SessionFromCtx(r.Context())
	if !ok {
		logx.Error(h.Log, reqID, op, "no session in context", domain.ErrUnexpected)
		v1.WriteDomainError(w, r, domain.ErrUnexpected)
		return
	}

	if err := h.Accounts.Logout(r.Context(), sess); err != nil {
		logx.Error(h.Log, reqID, op, "destroy failed", err)
		v1.WriteErrorText(w, r, http.StatusInternalServerError, "Failed to log out.")
		return
	}

	logx.Info(h.Log, reqID, op, "ok")
	v1.WriteMessage(w, r, "User logged out successfully.")
}
