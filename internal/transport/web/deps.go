package web

import (
	"github.com/EgorLis/my-notes/internal/domain"
	"github.com/EgorLis/my-notes/internal/service/account"
	"github.com/EgorLis/my-notes/internal/transport/web/v1/health"
)

// Deps собирает всё, что нужно веб-слою от остального приложения.
type Deps struct {
	Accounts *account.Service
	Sessions domain.SessionStore

	// пробы готовности
	DB    health.Pinger
	Cache health.Pinger
}
