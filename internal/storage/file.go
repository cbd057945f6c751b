package storage

import (
	"os"
	"path/filepath"
	"strings"

	apperrors "playground-client/internal/errors"
)

// File is a KV backend that stores each key as a file under a root
// directory. Slashes in keys become subdirectories, which keeps
// per-user namespaces inspectable on disk.
type File struct {
	root string
}

// NewFile creates a file backend rooted at dir, creating it if needed.
func NewFile(dir string) (*File, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, apperrors.Wrap(apperrors.KindStorage, "creating data dir", err)
	}
	return &File{root: dir}, nil
}

func (f *File) path(key string) string {
	// Keys only ever contain user ids and store names, but keep path
	// traversal out regardless
	cleaned := strings.ReplaceAll(key, "..", "_")
	return filepath.Join(f.root, filepath.FromSlash(cleaned))
}

func (f *File) Get(key string) ([]byte, error) {
	data, err := os.ReadFile(f.path(key))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNotFound
		}
		return nil, apperrors.Wrap(apperrors.KindStorage, "reading "+key, err)
	}
	return data, nil
}

func (f *File) Put(key string, value []byte) error {
	path := f.path(key)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return apperrors.Wrap(apperrors.KindStorage, "creating dir for "+key, err)
	}
	if err := os.WriteFile(path, value, 0o644); err != nil {
		return apperrors.Wrap(apperrors.KindStorage, "writing "+key, err)
	}
	return nil
}

func (f *File) Delete(key string) error {
	if err := os.Remove(f.path(key)); err != nil && !os.IsNotExist(err) {
		return apperrors.Wrap(apperrors.KindStorage, "deleting "+key, err)
	}
	return nil
}

func (f *File) Close() error {
	return nil
}
