package domain

import "errors"

// Бизнес-ошибки (маппятся на HTTP коды в transport/web/v1)
var (
	ErrInvalidFormat     = errors.New("invalid_format")     // 400: логин/пароль не прошли валидацию
	ErrMissingFields     = errors.New("missing_fields")     // 400
	ErrAuthFailed        = errors.New("auth_failed")        // 404: «нет пользователя» и «неверный пароль» не различаем
	ErrNotAuthenticated  = errors.New("not_authenticated")  // 400: операция требует привязанную сессию
	ErrDuplicateUsername = errors.New("duplicate_username") // 500: конфликт уникальности в хранилище
	ErrNotFound          = errors.New("not_found")
	ErrUnexpected        = errors.New("unexpected") // 500
)
