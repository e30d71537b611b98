package doc

import (
	"errors"
	"net/http"

	"github.com/EgorLis/my-notes/internal/domain"
	"github.com/EgorLis/my-notes/internal/transport/web/logx"
	"github.com/EgorLis/my-notes/internal/transport/web/mw"
	v1 "github.com/EgorLis/my-notes/internal/transport/web/v1"
)

// Load godoc
// @Summary     Load document
// @Description Возвращает документ текущей сессии как text/plain.
// @Tags        doc
// @Produce     plain
// @Success     200 {string} string
// @Failure     500 {string} string
// @Router      /load [get]
func (h *Handler) Load(w http.ResponseWriter, r *http.Request) {
	const op = "doc.load"
	reqID := mw.RequestIDFromCtx(r.Context())

	sess, ok := mw.SessionFromCtx(r.Context())
	if !ok {
		logx.Error(h.Log, reqID, op, "no session in context", domain.ErrUnexpected)
		v1.WriteText(w, r, http.StatusInternalServerError, "Error reading file")
		return
	}

	text, err := h.Accounts.LoadDocument(r.Context(), sess)
	if err != nil {
		// отсутствие документа (анонимный до первого save) — тоже 500,
		// как и любая другая ошибка чтения
		if errors.Is(err, domain.ErrNotFound) {
			logx.Info(h.Log, reqID, op, "no document yet")
		} else {
			logx.Error(h.Log, reqID, op, "read failed", err)
		}
		v1.WriteText(w, r, http.StatusInternalServerError, "Error reading file")
		return
	}

	logx.Info(h.Log, reqID, op, "ok", "bytes", len(text))
	v1.WriteText(w, r, http.StatusOK, text)
}
