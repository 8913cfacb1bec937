package feed

import (
	"context"
	"sync"
)

type memoryKeyValueStore struct {
	mu     sync.Mutex
	values map[string]string
}

func NewMemoryKeyValueStore() KeyValueStore {
	return &memoryKeyValueStore{values: map[string]string{}}
}

func (repo *memoryKeyValueStore) Get(_ context.Context, key string) (string, error) {
	repo.mu.Lock()
	defer repo.mu.Unlock()

	if v, ok := repo.values[key]; ok {
		return v, nil
	}
	return "", ErrKeyNotFound
}

func (repo *memoryKeyValueStore) Set(_ context.Context, key, value string) error {
	repo.mu.Lock()
	defer repo.mu.Unlock()

	repo.values[key] = value
	return nil
}

func (repo *memoryKeyValueStore) Close() error {
	return nil
}
