package auth

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/EgorLis/my-notes/internal/domain"
	"github.com/EgorLis/my-notes/internal/service/account"
	"github.com/EgorLis/my-notes/internal/transport/web/logx"
	"github.com/EgorLis/my-notes/internal/transport/web/mw"
	v1 "github.com/EgorLis/my-notes/internal/transport/web/v1"
)

// HandlerRegister обрабатывает POST /register
type HandlerRegister struct {
	Log      *log.Logger
	Accounts *account.Service
}

type registerRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Register godoc
// @Summary     Register new user
// @Description Регистрация: email-логин + пароль (мин. 6, буква и цифра).
// @Tags        auth
// @Accept      json
// @Produce     json
// @Param       request body registerRequest true "username, password"
// @Success     200 {object} map[string]string
// @Failure     400 {object} map[string]string
// @Failure     500 {object} map[string]string
// @Router      /register [post]
func (h *HandlerRegister) Register(w http.ResponseWriter, r *http.Request) {
	const op = "auth.register"
	reqID := mw.RequestIDFromCtx(r.Context())
	logx.Info(h.Log, reqID, op, "start", "method", r.Method, "path", r.URL.Path)

	// Принимаем JSON, но поддержим и форму (на случай ручного теста).
	var req registerRequest
	ct := r.Header.Get("Content-Type")
	if strings.HasPrefix(ct, "application/json") {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			logx.Error(h.Log, reqID, op, "bad json", err)
			v1.WriteDomainError(w, r, domain.ErrInvalidFormat)
			return
		}
	} else {
		_ = r.ParseForm()
		req.Username = r.FormValue("username")
		req.Password = r.FormValue("password")
	}

	if err := h.Accounts.Register(r.Context(), req.Username, req.Password); err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidFormat):
			logx.Error(h.Log, reqID, op, "validation failed", err, "username", req.Username)
			v1.WriteDomainError(w, r, err)
		case errors.Is(err, domain.ErrDuplicateUsername):
			logx.Error(h.Log, reqID, op, "duplicate username", err, "username", req.Username)
			v1.WriteDomainError(w, r, err)
		default:
			// заготовка документа (или хэширование) не удалась;
			// учётная запись при этом могла остаться, причина в логе
			logx.Error(h.Log, reqID, op, "register failed", err, "username", req.Username)
			v1.WriteErrorText(w, r, http.StatusInternalServerError, "Error creating file")
		}
		return
	}

	logx.Info(h.Log, reqID, op, "ok", "username", req.Username)
	v1.WriteMessage(w, r, "User registered successfully!")
}
