package session

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/EgorLis/my-notes/internal/domain"
)

// KV — минимальный интерфейс, который нам нужен от кеша (Redis).
type KV interface {
	// Get возвращает (nil, nil) при отсутствии ключа
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, val []byte, ttlSeconds int) error
	Del(ctx context.Context, keys ...string) error
}

// Store хранит сессии целиком (JSON) в KV с TTL = остатку жизни сессии,
// поэтому они переживают рестарт процесса и истекают пассивно.
type Store struct {
	log    *log.Logger
	kv     KV
	prefix string
	ttl    time.Duration
	now    func() time.Time
}

func NewStore(kv KV, ttl time.Duration, logger *log.Logger) *Store {
	if ttl <= 0 {
		ttl = 7 * 24 * time.Hour
	}
	return &Store{kv: kv, prefix: "sess:", ttl: ttl, log: logger, now: time.Now}
}

var _ domain.SessionStore = (*Store)(nil)

func (s *Store) key(token string) string { return s.prefix + token }

// Ensure возвращает сессию по валидному токену либо создаёт новую анонимную.
func (s *Store) Ensure(ctx context.Context, token string) (domain.Session, error) {
	if token != "" {
		b, err := s.kv.Get(ctx, s.key(token))
		if err != nil {
			return domain.Session{}, fmt.Errorf("session get: %w", err)
		}
		if len(b) > 0 {
			var sess domain.Session
			if err := json.Unmarshal(b, &sess); err == nil && !sess.Expired(s.now()) {
				return sess, nil
			}
			// битая или истёкшая запись — подчищаем и выдаём новую
			_ = s.kv.Del(ctx, s.key(token))
		}
	}

	now := s.now().UTC()
	sess := domain.Session{
		Token:     uuid.NewString(),
		CreatedAt: now,
		ExpiresAt: now.Add(s.ttl),
	}
	if err := s.persist(ctx, sess); err != nil {
		return domain.Session{}, err
	}
	s.log.Printf("new anonymous session %s", sess.Token)
	return sess, nil
}

// Bind привязывает сессию к логину; токен не меняется.
func (s *Store) Bind(ctx context.Context, sess domain.Session, username string) (domain.Session, error) {
	sess.Username = username
	if err := s.persist(ctx, sess); err != nil {
		return domain.Session{}, err
	}
	s.log.Printf("session %s bound to %s", sess.Token, username)
	return sess, nil
}

// Destroy идемпотентен: уничтожение неизвестной сессии — не ошибка.
func (s *Store) Destroy(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	if err := s.kv.Del(ctx, s.key(token)); err != nil {
		return fmt.Errorf("session del: %w", err)
	}
	s.log.Printf("session %s destroyed", token)
	return nil
}

func (s *Store) persist(ctx context.Context, sess domain.Session) error {
	b, err := json.Marshal(sess)
	if err != nil {
		return fmt.Errorf("session marshal: %w", err)
	}
	ttl := sess.ExpiresAt.Sub(s.now())
	if ttl <= 0 {
		ttl = time.Minute // подстраховка, если ExpiresAt в прошлом
	}
	if err := s.kv.Set(ctx, s.key(sess.Token), b, int(ttl.Seconds())); err != nil {
		return fmt.Errorf("session set: %w", err)
	}
	return nil
}
