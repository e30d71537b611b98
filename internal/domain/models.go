package domain

import "time"

// Учётная запись: email-логин + хэш пароля
type Account struct {
	Username  string    `json:"username"`
	PassHash  []byte    `json:"-"` // никогда не отдаём наружу
	CreatedAt time.Time `json:"created_at"`
}

// Сессия: непрозрачный токен, опционально привязанный к учётной записи.
// Пустой Username = анонимная сессия.
type Session struct {
	Token     string    `json:"token"`
	Username  string    `json:"username,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Bound: привязана ли сессия к учётной записи
func (s Session) Bound() bool { return s.Username != "" }

func (s Session) Expired(now time.Time) bool { return now.After(s.ExpiresAt) }
