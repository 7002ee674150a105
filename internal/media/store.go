package media

import (
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// Store keeps uploaded images on the local filesystem and hands out
// stable "/media/<name>" references for them.
type Store struct {
	Dir string
}

func NewStore(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &Store{Dir: dir}, nil
}

var allowedExt = map[string]bool{
	".jpg": true, ".jpeg": true, ".png": true, ".webp": true, ".gif": true,
}

// Save writes an uploaded file under a fresh uuid name and returns its
// public reference path.
func (s *Store) Save(fh *multipart.FileHeader) (string, error) {
	ext := strings.ToLower(filepath.Ext(fh.Filename))
	if !allowedExt[ext] {
		return "", fmt.Errorf("unsupported image type %q", ext)
	}
	name := uuid.NewString() + ext

	src, err := fh.Open()
	if err != nil {
		return "", err
	}
	defer src.Close()

	dst, err := os.Create(filepath.Join(s.Dir, name))
	if err != nil {
		return "", err
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return "", err
	}
	return "/media/" + name, nil
}

// Delete removes a stored file given its reference. Refs that do not point
// into the store (external URLs, traversal attempts) are ignored.
func (s *Store) Delete(ref string) error {
	name, ok := strings.CutPrefix(ref, "/media/")
	if !ok {
		return nil
	}
	clean := filepath.Clean(name)
	if clean == "." || strings.Contains(clean, "..") || filepath.IsAbs(clean) || strings.ContainsAny(clean, `/\`) {
		return fmt.Errorf("refusing to delete %q", ref)
	}
	err := os.Remove(filepath.Join(s.Dir, clean))
	if os.IsNotExist(err) {
		return nil
	}
	return err
}

// Path resolves a reference to its on-disk location, primarily for tests.
func (s *Store) Path(ref string) string {
	name := strings.TrimPrefix(ref, "/media/")
	return filepath.Join(s.Dir, filepath.Clean(name))
}
