package services

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// LocalImageStore writes card images below a directory. It backs the bot
// when no Spaces bucket is configured.
type LocalImageStore struct {
	dir     string
	baseURL string
}

// NewLocalImageStore serves files from dir. baseURL prefixes returned
// locations; when empty, file:// URLs are returned.
func NewLocalImageStore(dir, baseURL string) (*LocalImageStore, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("invalid image directory %q: %w", dir, err)
	}
	if err := os.MkdirAll(abs, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create image directory: %w", err)
	}
	return &LocalImageStore{dir: abs, baseURL: strings.TrimRight(baseURL, "/")}, nil
}

func (s *LocalImageStore) PutCardImage(_ context.Context, key string, data []byte, _ string) (string, error) {
	clean := filepath.Clean("/" + key)[1:]
	target := filepath.Join(s.dir, filepath.FromSlash(clean))

	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return "", fmt.Errorf("failed to create image directory: %w", err)
	}
	if err := os.WriteFile(target, data, 0o644); err != nil {
		return "", fmt.Errorf("failed to write image: %w", err)
	}

	if s.baseURL == "" {
		return "file://" + filepath.ToSlash(target), nil
	}
	return s.baseURL + "/" + filepath.ToSlash(clean), nil
}
