package media

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// LocalStore copies user-selected files into a directory it owns.
type LocalStore struct {
	Dir string
}

func NewLocalStore(dir string) *LocalStore {
	return &LocalStore{Dir: dir}
}

// Save copies src into the store and returns the absolute path of the copy.
func (s *LocalStore) Save(src, prefix string) (string, error) {
	in, err := os.Open(src)
	if err != nil {
		return "", fmt.Errorf("failed to open %s: %w", src, err)
	}
	defer in.Close()

	info, err := in.Stat()
	if err != nil {
		return "", fmt.Errorf("failed to stat %s: %w", src, err)
	}
	if info.IsDir() {
		return "", fmt.Errorf("%s is a directory", src)
	}

	if err := os.MkdirAll(s.Dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create media directory %s: %w", s.Dir, err)
	}

	ext := strings.ToLower(filepath.Ext(src))
	if ext == "" {
		ext = ".jpg"
	}
	name := fmt.Sprintf("%s_%s%s", prefix, uuid.NewString()[:8], ext)

	dest, err := filepath.Abs(filepath.Join(s.Dir, name))
	if err != nil {
		return "", err
	}

	out, err := os.OpenFile(dest, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o644)
	if err != nil {
		return "", fmt.Errorf("failed to create %s: %w", dest, err)
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		os.Remove(dest)
		return "", fmt.Errorf("failed to copy %s: %w", src, err)
	}
	if err := out.Close(); err != nil {
		os.Remove(dest)
		return "", err
	}

	return dest, nil
}

// Remove deletes a file previously returned by Save. Paths outside Dir are
// left alone.
func (s *LocalStore) Remove(path string) error {
	if path == "" {
		return nil
	}
	dir, err := filepath.Abs(s.Dir)
	if err != nil {
		return err
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return err
	}
	if rel, err := filepath.Rel(dir, abs); err != nil || strings.HasPrefix(rel, "..") {
		return nil
	}
	if err := os.Remove(abs); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to remove %s: %w", abs, err)
	}
	return nil
}
