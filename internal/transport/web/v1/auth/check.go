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

// HandlerCheck обрабатывает GET /check
type HandlerCheck struct {
	Log      *log.Logger
	Accounts *account.Service
}

type checkResponse struct {
	LoggedIn bool   `json:"loggedin"`
	Username string `json:"username,omitempty"`
}

// Check godoc
// @Summary     Check session
// @Description Привязана ли текущая сессия к учётной записи. Не пишет в хранилища.
// @Tags        auth
// @Produce     json
// @Success     200 {object} checkResponse
// @Router      /check [get]
func (h *HandlerCheck) Check(w http.ResponseWriter, r *http.Request) {
	const op = "auth.check"
	reqID := mw.RequestIDFromCtx(r.Context())

	sess, ok := mw.SessionFromCtx(r.Context())
	if !ok {
		logx.Error(h.Log, reqID, op, "no session in context", domain.ErrUnexpected)
		v1.WriteJSON(w, r, http.StatusOK, checkResponse{LoggedIn: false})
		return
	}

	loggedIn, username := h.Accounts.CheckSession(sess)
	logx.Info(h.Log, reqID, op, "ok", "loggedin", loggedIn)
	v1.WriteJSON(w, r, http.StatusOK, checkResponse{LoggedIn: loggedIn, Username: username})
}
