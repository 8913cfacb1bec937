package feed

import (
	"context"
	"errors"
	"time"

	"github.com/go-redis/redis/v8"
)

type RedisCmdable interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
	Close() error
}

type redisKeyValueStore struct {
	rdb RedisCmdable
}

func NewRedisKeyValueStore(rdb RedisCmdable) KeyValueStore {
	return &redisKeyValueStore{rdb: rdb}
}

func (repo *redisKeyValueStore) Get(ctx context.Context, key string) (string, error) {
	v, err := repo.rdb.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return "", ErrKeyNotFound
	}
	return v, err
}

func (repo *redisKeyValueStore) Set(ctx context.Context, key, value string) error {
	return repo.rdb.Set(ctx, key, value, 0).Err()
}

func (repo *redisKeyValueStore) Close() error {
	return repo.rdb.Close()
}
