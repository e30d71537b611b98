package account

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/EgorLis/my-notes/internal/domain"
)

// Service — оркестрация над хранилищами: регистрация, вход/выход,
// удаление аккаунта, проверка сессии и работа с документом.
type Service struct {
	log      *log.Logger
	users    domain.UsersRepo
	docs     domain.DocumentStore
	sessions domain.SessionStore
	hasher   domain.PasswordHasher
}

func New(logger *log.Logger, users domain.UsersRepo, docs domain.DocumentStore,
	sessions domain.SessionStore, hasher domain.PasswordHasher) *Service {
	return &Service{log: logger, users: users, docs: docs, sessions: sessions, hasher: hasher}
}

// Register: валидация до любого обращения к хранилищу, затем вставка
// (уникальность решает БД) и заготовка документа.
func (s *Service) Register(ctx context.Context, username, password string) error {
	if !domain.ValidUsername(username) || !domain.ValidPassword(password) {
		return domain.ErrInvalidFormat
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	if _, err := s.users.CreateUser(ctx, username, []byte(hash)); err != nil {
		return err
	}

	// При ошибке заготовки учётная запись остаётся без документа —
	// известный зазор согласованности, отката нет.
	if err := s.docs.Write(ctx, username, domain.DefaultDocContent); err != nil {
		s.log.Printf("register: seed document for %s failed: %v", username, err)
		return fmt.Errorf("seed document: %w", err)
	}
	return nil
}

// Login: оба поля обязательны; «нет пользователя» и «неверный пароль»
// наружу не различаются. Успех привязывает текущую сессию к логину.
func (s *Service) Login(ctx context.Context, sess domain.Session, username, password string) (domain.Session, error) {
	if username == "" || password == "" {
		return domain.Session{}, domain.ErrMissingFields
	}

	a, err := s.users.UserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.Session{}, domain.ErrAuthFailed
		}
		return domain.Session{}, err
	}

	ok, err := s.hasher.Verify(password, string(a.PassHash))
	if err != nil || !ok {
		return domain.Session{}, domain.ErrAuthFailed
	}

	bound, err := s.sessions.Bind(ctx, sess, a.Username)
	if err != nil {
		return domain.Session{}, fmt.Errorf("bind session: %w", err)
	}
	return bound, nil
}

// Logout уничтожает сессию безусловно; идемпотентен.
func (s *Service) Logout(ctx context.Context, sess domain.Session) error {
	return s.sessions.Destroy(ctx, sess.Token)
}

// DeleteAccount выполняет все три шага даже при ошибках ранних,
// чтобы не оставлять осиротевшее состояние за полуудалённым аккаунтом.
func (s *Service) DeleteAccount(ctx context.Context, sess domain.Session) error {
	if !sess.Bound() {
		return domain.ErrNotAuthenticated
	}
	username := sess.Username

	var firstErr error
	if err := s.users.DeleteUser(ctx, username); err != nil && !errors.Is(err, domain.ErrNotFound) {
		s.log.Printf("delete account: credentials for %s: %v", username, err)
		firstErr = fmt.Errorf("delete credentials: %w", err)
	}

	// документ — best-effort: его отсутствие или сбой не фатальны
	if err := s.docs.Delete(ctx, username); err != nil && !errors.Is(err, domain.ErrNotFound) {
		s.log.Printf("delete account: document for %s: %v", username, err)
	}

	if err := s.sessions.Destroy(ctx, sess.Token); err != nil {
		s.log.Printf("delete account: session %s: %v", sess.Token, err)
		if firstErr == nil {
			firstErr = fmt.Errorf("destroy session: %w", err)
		}
	}
	return firstErr
}

// CheckSession — чистое чтение, без обращений к хранилищам.
func (s *Service) CheckSession(sess domain.Session) (bool, string) {
	return sess.Bound(), sess.Username
}

func (s *Service) LoadDocument(ctx context.Context, sess domain.Session) (string, error) {
	return s.docs.Read(ctx, docKey(sess))
}

// SaveDocument: перезапись целиком, last-write-wins.
func (s *Service) SaveDocument(ctx context.Context, sess domain.Session, text string) error {
	return s.docs.Write(ctx, docKey(sess), text)
}

func docKey(sess domain.Session) string {
	if sess.Bound() {
		return sess.Username
	}
	return domain.DefaultDocKey
}
