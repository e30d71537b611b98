package auth

import (
	"encoding/json"
	"log"
	"net/http"
	"strings"

	"github.com/EgorLis/my-notes/internal/domain"
	"github.com/EgorLis/my-notes/internal/service/account"
	"github.com/EgorLis/my-notes/internal/transport/web/logx"
	"github.com/EgorLis/my-notes/internal/transport/web/mw"
	v1 "github.com/EgorLis/my-notes/internal/transport/web/v1"
)

// HandlerLogin обрабатывает POST /login
type HandlerLogin struct {
	Log      *log.Logger
	Accounts *account.Service
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type loginResponse struct {
	Message  string `json:"message"`
	Username string `json:"username"`
}

// Login godoc
// @Summary     Authenticate user
// @Description Привязывает текущую сессию к логину при верном пароле.
// @Tags        auth
// @Accept      json
// @Produce     json
// @Param       request body loginRequest true "username, password"
// @Success     200 {object} loginResponse
// @Failure     400 {object} map[string]string
// @Failure     404 {object} map[string]string
// @Router      /login [post]
func (h *HandlerLogin) Login(w http.ResponseWriter, r *http.Request) {
	const op = "auth.login"
	reqID := mw.RequestIDFromCtx(r.Context())
	logx.Info(h.Log, reqID, op, "start", "method", r.Method, "path", r.URL.Path)

	sess, ok := mw.SessionFromCtx(r.Context())
	if !ok {
		logx.Error(h.Log, reqID, op, "no session in context", domain.ErrUnexpected)
		v1.WriteDomainError(w, r, domain.ErrUnexpected)
		return
	}

	var req loginRequest
	ct := r.Header.Get("Content-Type")
	if strings.HasPrefix(ct, "application/json") {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			logx.Error(h.Log, reqID, op, "bad json", err)
			v1.WriteDomainError(w, r, domain.ErrMissingFields)
			return
		}
	} else {
		_ = r.ParseForm()
		req.Username = r.FormValue("username")
		req.Password = r.FormValue("password")
	}

	if _, err := h.Accounts.Login(r.Context(), sess, req.Username, req.Password); err != nil {
		// не различаем «нет пользователя» и «неверный пароль»
		logx.Error(h.Log, reqID, op, "login failed", err, "username", req.Username)
		v1.WriteDomainError(w, r, err)
		return
	}

	logx.Info(h.Log, reqID, op, "ok", "username", req.Username)
	v1.WriteJSON(w, r, http.StatusOK, loginResponse{
		Message:  "User logged in successfully!",
		Username: req.Username,
	})
}
