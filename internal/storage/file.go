package storage

import (
	"context"
	"encoding/hex"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
)

// FileStore writes one file per key under a data directory. Key names are
// hex-encoded so arbitrary keys cannot escape the directory.
type FileStore struct {
	dir string
}

func NewFileStore(dir string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, errors.Wrap(err, "create storage dir")
	}
	return &FileStore{dir: dir}, nil
}

func (f *FileStore) path(key string) string {
	return filepath.Join(f.dir, hex.EncodeToString([]byte(key)))
}

func (f *FileStore) Get(ctx context.Context, key string) (string, error) {
	data, err := os.ReadFile(f.path(key))
	if err != nil {
		if os.IsNotExist(err) {
			return "", ErrKeyNotFound
		}
		return "", errors.Wrap(err, "read key file")
	}
	return string(data), nil
}

func (f *FileStore) Set(ctx context.Context, key, value string) error {
	// write-then-rename so a crash mid-write never leaves a torn value
	tmp := f.path(key) + ".tmp"
	if err := os.WriteFile(tmp, []byte(value), 0o600); err != nil {
		return errors.Wrap(err, "write key file")
	}
	if err := os.Rename(tmp, f.path(key)); err != nil {
		return errors.Wrap(err, "rename key file")
	}
	return nil
}

func (f *FileStore) Remove(ctx context.Context, key string) error {
	err := os.Remove(f.path(key))
	if err != nil && !os.IsNotExist(err) {
		return errors.Wrap(err, "remove key file")
	}
	return nil
}
