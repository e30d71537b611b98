package domain

import "context"

// Хранилище учётных записей. Уникальность логина обеспечивает сама БД
// (PRIMARY KEY), а не проверка перед вставкой — иначе гонка между
// конкурентными регистрациями.
type UsersRepo interface {
	Close()
	Ping(context.Context) error
	// CreateUser возвращает ErrDuplicateUsername при конфликте уникальности.
	CreateUser(ctx context.Context, username string, passHash []byte) (Account, error)
	// UserByUsername возвращает ErrNotFound, если записи нет.
	UserByUsername(ctx context.Context, username string) (Account, error)
	// DeleteUser возвращает ErrNotFound, если удалять нечего.
	DeleteUser(ctx context.Context, username string) error
}
