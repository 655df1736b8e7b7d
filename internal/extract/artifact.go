package extract

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// Store manages the transient filesystem artifacts a single extraction
// request creates: the uploaded document and the directory of rendered page
// images. Paths are uuid-based so concurrent requests never collide.
type Store struct {
	dir string
}

func NewStore(dir string) *Store {
	if dir == "" {
		dir = os.TempDir()
	}
	return &Store{dir: dir}
}

// SaveUpload streams an uploaded document to a unique temporary path,
// preserving the original extension so downstream type detection works.
func (s *Store) SaveUpload(r io.Reader, originalName string) (string, error) {
	ext := strings.ToLower(filepath.Ext(originalName))
	path := filepath.Join(s.dir, "upload-"+uuid.New().String()+ext)

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create upload file: %w", err)
	}
	if _, err := io.Copy(f, r); err != nil {
		f.Close()
		s.Remove(path)
		return "", fmt.Errorf("write upload file: %w", err)
	}
	if err := f.Close(); err != nil {
		s.Remove(path)
		return "", fmt.Errorf("close upload file: %w", err)
	}
	return path, nil
}

// PageDir creates a unique directory for one request's rendered page images.
func (s *Store) PageDir() (string, error) {
	dir, err := os.MkdirTemp(s.dir, "pages-")
	if err != nil {
		return "", fmt.Errorf("create page dir: %w", err)
	}
	return dir, nil
}

// Remove deletes an artifact (file or directory) best-effort. Cleanup failure
// must never mask the extraction outcome, so errors are logged and swallowed.
func (s *Store) Remove(path string) {
	if path == "" {
		return
	}
	if err := os.RemoveAll(path); err != nil {
		slog.Warn("failed to remove temporary artifact", "path", path, "error", err)
	}
}
