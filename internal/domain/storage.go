package domain

import "context"

const (
	// Ключ общего документа для анонимных сессий
	DefaultDocKey = "notepad"
	// Содержимое документа нового пользователя
	DefaultDocContent = ""
)

// Хранилище документов: один текстовый блоб на ключ (логин либо DefaultDocKey).
// Реализация — локальный диск или S3/MinIO; ядро не завязано на конкретную.
type DocumentStore interface {
	// Read возвращает ErrNotFound, если документ ещё не записан.
	Read(ctx context.Context, key string) (string, error)
	// Write создаёт или перезаписывает целиком (для читателя — атомарно).
	Write(ctx context.Context, key, content string) error
	// Delete возвращает ErrNotFound при отсутствии; для оркестрации это не ошибка.
	Delete(ctx context.Context, key string) error
}
