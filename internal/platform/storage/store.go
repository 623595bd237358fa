package storage

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

const maxVideoBytes = 100 << 20 // 100MB cap on example videos

var (
	ErrUnsupportedMediaType = errors.New("only video uploads are supported")
	ErrFileTooLarge         = errors.New("file exceeds the 100MB upload limit")
)

// Store writes uploaded media under a local root and serves public paths.
// Object keys are opaque UUIDs so original filenames never leak into URLs.
type Store struct {
	root   string
	logger *slog.Logger
}

func New(root string, logger *slog.Logger) (*Store, error) {
	if strings.TrimSpace(root) == "" {
		return nil, errors.New("storage root is required")
	}
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("create storage root: %w", err)
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Store{root: root, logger: logger}, nil
}

// SaveVideo validates MIME and size before committing the object.
func (s *Store) SaveVideo(contentType string, size int64, body io.Reader) (string, error) {
	if !strings.HasPrefix(strings.ToLower(strings.TrimSpace(contentType)), "video/") {
		return "", ErrUnsupportedMediaType
	}
	if size <= 0 || size > maxVideoBytes {
		return "", ErrFileTooLarge
	}

	key := uuid.NewString() + extensionFor(contentType)
	path := filepath.Join(s.root, key)

	file, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create object: %w", err)
	}
	defer file.Close()

	written, err := io.Copy(file, io.LimitReader(body, maxVideoBytes+1))
	if err != nil {
		_ = os.Remove(path)
		return "", fmt.Errorf("write object: %w", err)
	}
	if written > maxVideoBytes {
		_ = os.Remove(path)
		return "", ErrFileTooLarge
	}

	s.logger.Info("media stored",
		"event", "storage_object_written",
		"module", "internal/platform/storage",
		"layer", "platform",
		"key", key,
		"bytes", written,
	)
	return key, nil
}

// PublicURL maps an object key to the path the HTTP layer serves it from.
func (s *Store) PublicURL(key string) string {
	return "/media/" + strings.TrimSpace(key)
}

func (s *Store) Remove(key string) error {
	key = strings.TrimSpace(key)
	if key == "" || strings.Contains(key, "..") || strings.ContainsRune(key, os.PathSeparator) {
		return errors.New("invalid object key")
	}
	return os.Remove(filepath.Join(s.root, key))
}

func extensionFor(contentType string) string {
	switch strings.ToLower(strings.TrimSpace(contentType)) {
	case "video/mp4":
		return ".mp4"
	case "video/quicktime":
		return ".mov"
	case "video/webm":
		return ".webm"
	default:
		return ".bin"
	}
}
