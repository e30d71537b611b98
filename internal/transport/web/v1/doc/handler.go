// Package doc содержит обработчики чтения и записи документа сессии.
package doc

import (
	"log"

	"github.com/EgorLis/my-notes/internal/service/account"
)

// Handler обрабатывает GET /load и POST /save
type Handler struct {
	Log      *log.Logger
	Accounts *account.Service
}
