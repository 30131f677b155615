package storage

import (
	"context"
	"fmt"
	"io"
	"path"
	"strings"
)

// Storage - хранилище загруженных файлов (резюме)
type Storage interface {
	// Save сохраняет файл по ключу
	Save(ctx context.Context, key string, reader io.Reader, contentType string) error

	// Delete удаляет файл; отсутствующий файл не ошибка
	Delete(ctx context.Context, key string) error

	// Exists проверяет наличие файла
	Exists(ctx context.Context, key string) (bool, error)

	// GetURL возвращает публичный URL файла
	GetURL(key string) string
}

// Config holds storage configuration
type Config struct {
	Type      string // local, s3
	BasePath  string // For local storage
	BaseURL   string // Public URL base
	Bucket    string // For S3
	Region    string // For S3
	AccessKey string // For S3
	SecretKey string // For S3
	Endpoint  string // S3-compatible endpoint (R2, MinIO)
}

// NewStorage creates a new storage instance based on configuration
func NewStorage(ctx context.Context, cfg Config) (Storage, error) {
	switch cfg.Type {
	case "", "local":
		return NewLocalStorage(cfg)
	case "s3":
		return NewS3Storage(ctx, cfg)
	default:
		return nil, fmt.Errorf("unsupported storage type: %s", cfg.Type)
	}
}

// KeyFromURL восстанавливает ключ из URL, выданного GetURL
func KeyFromURL(s Storage, url string) string {
	prefix := strings.TrimSuffix(s.GetURL(""), "/") + "/"
	if strings.HasPrefix(url, prefix) {
		return strings.TrimPrefix(url, prefix)
	}
	return path.Base(url)
}
