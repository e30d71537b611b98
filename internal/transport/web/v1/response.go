package v1

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/EgorLis/my-notes/internal/domain"
	"github.com/EgorLis/my-notes/internal/transport/web/mw"
)

// MapDomainError решает HTTP-статус и текст ошибки для ответа.
// Причина остаётся в серверном логе; наружу — только эти сообщения.
func MapDomainError(err error) (int, string) {
	switch {
	case errors.Is(err, domain.ErrInvalidFormat):
		return http.StatusBadRequest, "Invalid email or password format."
	case errors.Is(err, domain.ErrMissingFields):
		return http.StatusBadRequest, "Username and password are required."
	case errors.Is(err, domain.ErrAuthFailed):
		return http.StatusNotFound, "User not found or password incorrect."
	case errors.Is(err, domain.ErrNotAuthenticated):
		return http.StatusBadRequest, "User is not logged in."
	case errors.Is(err, domain.ErrDuplicateUsername):
		return http.StatusInternalServerError, "Error registering new user, perhaps the username is already taken."
	default:
		return http.StatusInternalServerError, "Error on the server."
	}
}

func WriteJSON(w http.ResponseWriter, r *http.Request, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("X-Request-ID", mw.RequestIDFromCtx(r.Context()))
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

// Шорткаты успеха
func WriteMessage(w http.ResponseWriter, r *http.Request, msg string) {
	WriteJSON(w, r, http.StatusOK, map[string]string{"message": msg})
}

// Шорткаты ошибок
func WriteDomainError(w http.ResponseWriter, r *http.Request, err error) {
	status, text := MapDomainError(err)
	WriteJSON(w, r, status, map[string]string{"error": text})
}

func WriteErrorText(w http.ResponseWriter, r *http.Request, status int, text string) {
	WriteJSON(w, r, status, map[string]string{"error": text})
}

// WriteText — для /load и /save: тело как есть, text/plain
func WriteText(w http.ResponseWriter, r *http.Request, status int, body string) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Header().Set("X-Request-ID", mw.RequestIDFromCtx(r.Context()))
	w.WriteHeader(status)
	_, _ = w.Write([]byte(body))
}
