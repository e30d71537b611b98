package fs

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/renameio"

	"github.com/EgorLis/my-notes/internal/domain"
)

// Хранилище документов на локальном диске: один <ключ>.txt на документ.
type Store struct {
	logger *log.Logger
	dir    string
}

func New(dir string, logger *log.Logger) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create docs dir: %w", err)
	}
	return &Store{dir: dir, logger: logger}, nil
}

var _ domain.DocumentStore = (*Store)(nil)

func (s *Store) Read(_ context.Context, key string) (string, error) {
	p := s.path(key)
	b, err := os.ReadFile(p)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			s.logger.Printf("read %q: not found", key)
			return "", domain.ErrNotFound
		}
		s.logger.Printf("read %q failed: %v", key, err)
		return "", err
	}
	s.logger.Printf("read %q ok (%d bytes)", key, len(b))
	return string(b), nil
}

func (s *Store) Write(_ context.Context, key, content string) error {
	p := s.path(key)
	// renameio: запись во временный файл + rename, читатель не видит частичной записи
	if err := renameio.WriteFile(p, []byte(content), 0o644); err != nil {
		s.logger.Printf("write %q failed: %v", key, err)
		return err
	}
	s.logger.Printf("write %q ok (%d bytes)", key, len(content))
	return nil
}

func (s *Store) Delete(_ context.Context, key string) error {
	p := s.path(key)
	if err := os.Remove(p); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			s.logger.Printf("delete %q: not found", key)
			return domain.ErrNotFound
		}
		s.logger.Printf("delete %q failed: %v", key, err)
		return err
	}
	s.logger.Printf("delete %q ok", key)
	return nil
}

func (s *Store) path(key string) string {
	return filepath.Join(s.dir, sanitize(key)+".txt")
}

// логины — email'ы; экранируем всё небезопасное для имени файла
func sanitize(key string) string {
	u := url.PathEscape(key)
	return strings.ReplaceAll(u, "%2F", "_")
}
