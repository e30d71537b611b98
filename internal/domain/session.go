package domain

import "context"

// Менеджер сессий. Сессии лежат в durable-хранилище и переживают рестарт
// процесса; истечение — по TTL записи.
type SessionStore interface {
	// Ensure возвращает сессию по валидному неистёкшему токену либо создаёт
	// и сохраняет новую анонимную. Новый токен нужно отдать клиенту.
	Ensure(ctx context.Context, token string) (Session, error)
	// Bind переводит анонимную сессию в привязанную; откат только через Destroy.
	Bind(ctx context.Context, s Session, username string) (Session, error)
	// Destroy делает токен навсегда невалидным; идемпотентно.
	Destroy(ctx context.Context, token string) error
}
