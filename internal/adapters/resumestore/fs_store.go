// Package resumestore persists uploaded resume files on the local
// filesystem under a configurable root directory.
package resumestore

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	apperrors "github.com/lifewood/adminhub/internal/errors"
)

// FSStore stores resumes as files named by a generated ID, keeping the
// original extension. Paths returned by Save are relative to the root so the
// root can move between environments.
type FSStore struct {
	root string
}

// NewFSStore creates the root directory if needed and returns a store.
func NewFSStore(root string) (*FSStore, error) {
	if strings.TrimSpace(root) == "" {
		return nil, errors.New("resume store root cannot be empty")
	}
	if err := os.MkdirAll(root, 0o750); err != nil {
		return nil, fmt.Errorf("create resume dir: %w", err)
	}
	return &FSStore{root: root}, nil
}

// Save writes the file and returns its store path.
func (s *FSStore) Save(_ context.Context, filename string, contents io.Reader) (string, error) {
	name := uuid.NewString() + sanitizeExt(filename)

	f, err := os.Create(filepath.Join(s.root, name))
	if err != nil {
		return "", fmt.Errorf("create resume file: %w", err)
	}
	defer f.Close()

	if _, err := io.Copy(f, contents); err != nil {
		_ = os.Remove(f.Name())
		return "", fmt.Errorf("write resume file: %w", err)
	}
	return name, nil
}

// Open returns the stored file for reading.
func (s *FSStore) Open(_ context.Context, path string) (io.ReadCloser, error) {
	full, err := s.resolve(path)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(full)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, apperrors.NotFound("resume not found")
		}
		return nil, fmt.Errorf("open resume file: %w", err)
	}
	return f, nil
}

// Delete removes the stored file. Deleting a missing file is not an error.
func (s *FSStore) Delete(_ context.Context, path string) error {
	full, err := s.resolve(path)
	if err != nil {
		return err
	}
	if err := os.Remove(full); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("delete resume file: %w", err)
	}
	return nil
}

// resolve joins path to the root and rejects traversal outside it.
func (s *FSStore) resolve(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return "", apperrors.Validation("resume path cannot be empty")
	}
	full := filepath.Join(s.root, filepath.Clean("/"+path))
	if !strings.HasPrefix(full, filepath.Clean(s.root)+string(os.PathSeparator)) {
		return "", apperrors.Validation("invalid resume path")
	}
	return full, nil
}

// sanitizeExt keeps a short, safe extension from the uploaded filename.
func sanitizeExt(filename string) string {
	ext := strings.ToLower(filepath.Ext(filename))
	if len(ext) > 10 {
		return ""
	}
	for _, r := range ext {
		if r != '.' && (r < 'a' || r > 'z') && (r < '0' || r > '9') {
			return ""
		}
	}
	return ext
}
