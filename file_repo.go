package feed

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
)

type fileKeyValueStore struct {
	dir string
}

// NewFileKeyValueStore keeps one file per key under dir.
func NewFileKeyValueStore(dir string) (KeyValueStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("error creating data dir: %w", err)
	}
	return &fileKeyValueStore{dir: dir}, nil
}

func (repo *fileKeyValueStore) path(key string) string {
	return filepath.Join(repo.dir, url.PathEscape(key)+".json")
}

func (repo *fileKeyValueStore) Get(_ context.Context, key string) (string, error) {
	b, err := os.ReadFile(repo.path(key))
	if errors.Is(err, os.ErrNotExist) {
		return "", ErrKeyNotFound
	}
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// Set writes a temp file and renames it over the old value.
func (repo *fileKeyValueStore) Set(_ context.Context, key, value string) error {
	f, err := os.CreateTemp(repo.dir, ".tmp-*")
	if err != nil {
		return err
	}
	tmp := f.Name()

	if _, err := f.WriteString(value); err != nil {
		f.Close()
		os.Remove(tmp)
		return err
	}
	if err := f.Close(); err != nil {
		os.Remove(tmp)
		return err
	}
	if err := os.Rename(tmp, repo.path(key)); err != nil {
		os.Remove(tmp)
		return err
	}
	return nil
}

func (repo *fileKeyValueStore) Close() error {
	return nil
}
