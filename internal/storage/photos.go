package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// PhotoStore keeps photo bytes on the local filesystem, keyed by an
// opaque generated filename. Records in the database only ever hold
// the filename.
type PhotoStore struct {
	dir string
}

func NewPhotoStore(dir string) (*PhotoStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create photo directory: %w", err)
	}
	return &PhotoStore{dir: dir}, nil
}

// Store writes the bytes under a fresh unique filename and returns it.
func (p *PhotoStore) Store(data []byte, ext string) (string, error) {
	ext = strings.ToLower(ext)
	if ext == "" {
		ext = ".jpg"
	}
	filename := uuid.New().String() + ext

	if err := os.WriteFile(filepath.Join(p.dir, filename), data, 0o644); err != nil {
		return "", fmt.Errorf("failed to write photo: %w", err)
	}
	return filename, nil
}

func (p *PhotoStore) Delete(filename string) error {
	err := os.Remove(filepath.Join(p.dir, filename))
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete photo: %w", err)
	}
	return nil
}

func (p *PhotoStore) Exists(filename string) bool {
	_, err := os.Stat(filepath.Join(p.dir, filename))
	return err == nil
}

// Path returns the absolute location of a stored photo, for serving.
func (p *PhotoStore) Path(filename string) string {
	return filepath.Join(p.dir, filename)
}
