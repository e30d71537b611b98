package mw

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/EgorLis/my-notes/internal/domain"
)

const sessionKey ctxKey = "session"

// SessionCookie — имя куки с токеном сессии
const SessionCookie = "session_token"

type SessionDeps struct {
	Log      *log.Logger
	Sessions domain.SessionStore
	TTL      time.Duration
	Secure   bool
}

// WithSession гарантирует сессию на каждом запросе: по валидному токену из
// куки поднимается существующая, иначе создаётся свежая анонимная, и новый
// токен уезжает клиенту HttpOnly-кукой.
func WithSession(deps SessionDeps, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var token string
		if c, err := r.Cookie(SessionCookie); err == nil {
			token = c.Value
		}

		sess, err := deps.Sessions.Ensure(r.Context(), token)
		if err != nil {
			deps.Log.Printf("session ensure failed: %v", err)
			http.Error(w, `{"error":"Error on the server."}`, http.StatusInternalServerError)
			return
		}

		if sess.Token != token {
			http.SetCookie(w, &http.Cookie{
				Name:     SessionCookie,
				Value:    sess.Token,
				Path:     "/",
				MaxAge:   int(deps.TTL.Seconds()),
				HttpOnly: true,
				Secure:   deps.Secure,
				SameSite: http.SameSiteLaxMode,
			})
		}

		ctx := context.WithValue(r.Context(), sessionKey, sess)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func SessionFromCtx(ctx context.Context) (domain.Session, bool) {
	s, ok := ctx.Value(sessionKey).(domain.Session)
	return s, ok
}
