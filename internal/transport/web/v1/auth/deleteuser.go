package auth

import (
	"errors"
	"log"
	"net/http"

	"github.com/EgorLis/my-notes/internal/domain"
	"github.com/EgorLis/my-notes/internal/service/account"
	"github.com/EgorLis/my-notes/internal/transport/web/logx"
	"github.com/EgorLis/my-notes/internal/transport/web/mw"
	v1 "github.com/EgorLis/my-notes/internal/transport/web/v1"
)

// HandlerDelete обрабатывает POST /deleteuser
type HandlerDelete struct {
	Log      *log.Logger
	Accounts *account.Service
}

// Delete godoc
// @Summary     Delete current account
// @Description Удаляет учётную запись привязанной сессии, её документ и саму сессию.
// @Tags        auth
// @Produce     json
// @Success     200 {object} map[string]string
// @Failure     400 {object} map[string]string
// @Failure     500 {object} map[string]string
// @Router      /deleteuser [post]
func (h *HandlerDelete) Delete(w http.ResponseWriter, r *http.Request) {
	const op = "auth.deleteuser"
	reqID := mw.RequestIDFromCtx(r.Context())
	logx.Info(h.Log, reqID, op, "start", "method", r.Method, "path", r.URL.Path)

	sess, ok := mw.SessionFromCtx(r.Context())
	if !ok {
		logx.Error(h.Log, reqID, op, "no session in context", domain.ErrUnexpected)
		v1.WriteDomainError(w, r, domain.ErrUnexpected)
		return
	}

	if err := h.Accounts.DeleteAccount(r.Context(), sess); err != nil {
		if errors.Is(err, domain.ErrNotAuthenticated) {
			logx.Error(h.Log, reqID, op, "not logged in", err)
			v1.WriteDomainError(w, r, err)
			return
		}
		logx.Error(h.Log, reqID, op, "delete failed", err, "username", sess.Username)
		v1.WriteErrorText(w, r, http.StatusInternalServerError, "Error deleting user.")
		return
	}

	logx.Info(h.Log, reqID, op, "ok", "username", sess.Username)
	v1.WriteMessage(w, r, "User deleted successfully.")
}
