package doc

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/EgorLis/my-notes/internal/domain"
	"github.com/EgorLis/my-notes/internal/transport/web/logx"
	"github.com/EgorLis/my-notes/internal/transport/web/mw"
	v1 "github.com/EgorLis/my-notes/internal/transport/web/v1"
)

type saveRequest struct {
	Text string `json:"text"`
}

// Save godoc
// @Summary     Save document
// @Description Полностью заменяет документ текущей сессии переданным текстом.
// @Tags        doc
// @Accept      json
// @Produce     plain
// @Param       request body saveRequest true "text"
// @Success     200 {string} string
// @Failure     500 {string} string
// @Router      /save [post]
func (h *Handler) Save(w http.ResponseWriter, r *http.Request) {
	const op = "doc.save"
	reqID := mw.RequestIDFromCtx(r.Context())

	sess, ok := mw.SessionFromCtx(r.Context())
	if !ok {
		logx.Error(h.Log, reqID, op, "no session in context", domain.ErrUnexpected)
		v1.WriteText(w, r, http.StatusInternalServerError, "Error saving file")
		return
	}

	var req saveRequest
	ct := r.Header.Get("Content-Type")
	if strings.HasPrefix(ct, "application/json") {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			logx.Error(h.Log, reqID, op, "bad json", err)
			v1.WriteText(w, r, http.StatusInternalServerError, "Error saving file")
			return
		}
	} else {
		_ = r.ParseForm()
		req.Text = r.FormValue("text")
	}

	if err := h.Accounts.SaveDocument(r.Context(), sess, req.Text); err != nil {
		logx.Error(h.Log, reqID, op, "write failed", err)
		v1.WriteText(w, r, http.StatusInternalServerError, "Error saving file")
		return
	}

	logx.Info(h.Log, reqID, op, "ok", "bytes", len(req.Text))
	v1.WriteText(w, r, http.StatusOK, "File saved successfully")
}
