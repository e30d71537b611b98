package s3

import (
	"context"
	"io"
	"log"
	"net/url"
	"strings"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/EgorLis/my-notes/internal/domain"
)

type Config struct {
	Endpoint  string
	Region    string
	Bucket    string
	AccessKey string
	SecretKey string
	UseSSL    bool
	PathStyle bool
}

// Хранилище документов в S3/MinIO: один текстовый объект на ключ.
type Storage struct {
	cl     *minio.Client
	bucket string
	logger *log.Logger
}

func New(ctx context.Context, cfg Config, logger *log.Logger) (*Storage, error) {
	opts := &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
		Region: cfg.Region,
	}
	if cfg.PathStyle {
		opts.BucketLookup = minio.BucketLookupPath
	}
	cl, err := minio.New(cfg.Endpoint, opts)
	if err != nil {
		return nil, err
	}
	return &Storage{cl: cl, bucket: cfg.Bucket, logger: logger}, nil
}

var _ domain.DocumentStore = (*Storage)(nil)

func (s *Storage) Read(ctx context.Context, key string) (string, error) {
	obj, err := s.cl.GetObject(ctx, s.bucket, objectKey(key), minio.GetObjectOptions{})
	if err != nil {
		s.logger.Printf("read %q failed: %v", key, err)
		return "", err
	}
	defer obj.Close()

	b, err := io.ReadAll(obj)
	if err != nil {
		// GetObject ленивый: отсутствие ключа всплывает на чтении
		if minio.ToErrorResponse(err).Code == "NoSuchKey" {
			s.logger.Printf("read %q: not found", key)
			return "", domain.ErrNotFound
		}
		s.logger.Printf("read %q failed: %v", key, err)
		return "", err
	}
	s.logger.Printf("read %q ok (%d bytes)", key, len(b))
	return string(b), nil
}

func (s *Storage) Write(ctx context.Context, key, content string) error {
	_, err := s.cl.PutObject(ctx, s.bucket, objectKey(key),
		strings.NewReader(content), int64(len(content)),
		minio.PutObjectOptions{ContentType: "text/plain; charset=utf-8"})
	if err != nil {
		s.logger.Printf("write %q failed: %v", key, err)
		return err
	}
	s.logger.Printf("write %q ok (%d bytes)", key, len(content))
	return nil
}

func (s *Storage) Delete(ctx context.Context, key string) error {
	// StatObject: RemoveObject у S3 «успешен» и для отсутствующего ключа
	if _, err := s.cl.StatObject(ctx, s.bucket, objectKey(key), minio.StatObjectOptions{}); err != nil {
		if minio.ToErrorResponse(err).Code == "NoSuchKey" {
			s.logger.Printf("delete %q: not found", key)
			return domain.ErrNotFound
		}
		s.logger.Printf("delete %q stat failed: %v", key, err)
		return err
	}
	if err := s.cl.RemoveObject(ctx, s.bucket, objectKey(key), minio.RemoveObjectOptions{}); err != nil {
		s.logger.Printf("delete %q failed: %v", key, err)
		return err
	}
	s.logger.Printf("delete %q ok", key)
	return nil
}

func objectKey(key string) string {
	return "docs/" + sanitize(key) + ".txt"
}

func sanitize(key string) string {
	u := url.PathEscape(key)
	return strings.ReplaceAll(u, "%2F", "_")
}
