package feed

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func testKeyValueStore(t *testing.T, kv KeyValueStore) {
	ctx := context.Background()

	_, err := kv.Get(ctx, "posts")
	assert.Equal(t, ErrKeyNotFound, err)

	require.NoError(t, kv.Set(ctx, "posts", `[1]`))
	v, err := kv.Get(ctx, "posts")
	require.NoError(t, err)
	assert.Equal(t, `[1]`, v)

	require.NoError(t, kv.Set(ctx, "posts", `[2]`))
	v, err = kv.Get(ctx, "posts")
	require.NoError(t, err)
	assert.Equal(t, `[2]`, v)

	_, err = kv.Get(ctx, "other")
	assert.Equal(t, ErrKeyNotFound, err)

	s := NewStore(NewAdapterWithKey(kv, "feed"))
	p, err := s.CreatePost("persisted #post")
	require.NoError(t, err)

	reloaded := NewStore(NewAdapterWithKey(kv, "feed"))
	got, err := reloaded.Post(p.ID)
	require.NoError(t, err)
	assert.Equal(t, "persisted #post", got.Content)
}

func TestMemoryKeyValueStore(t *testing.T) {
	kv := NewMemoryKeyValueStore()
	testKeyValueStore(t, kv)
	assert.NoError(t, kv.Close())
}

func TestFileKeyValueStore(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "data")
	kv, err := NewFileKeyValueStore(dir)
	require.NoError(t, err)

	testKeyValueStore(t, kv)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	for _, e := range entries {
		assert.NotContains(t, e.Name(), ".tmp-")
	}
	assert.NoError(t, kv.Close())
}

func TestSQLiteKeyValueStore(t *testing.T) {
	path := filepath.Join(t.TempDir(), "feed.db")
	kv, err := NewSQLiteKeyValueStore(path)
	require.NoError(t, err)

	testKeyValueStore(t, kv)
	require.NoError(t, kv.Close())

	kv, err = NewSQLiteKeyValueStore(path)
	require.NoError(t, err)
	defer kv.Close()
	v, err := kv.Get(context.Background(), "posts")
	require.NoError(t, err)
	assert.Equal(t, `[2]`, v)
}

func TestRedisKeyValueStore(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	defer mr.Close()

	kv := NewRedisKeyValueStore(redis.NewClient(&redis.Options{Addr: mr.Addr()}))
	testKeyValueStore(t, kv)

	v, err := mr.Get("posts")
	require.NoError(t, err)
	assert.Equal(t, `[2]`, v)
	assert.NoError(t, kv.Close())
}

func TestMongoKeyValueStore(t *testing.T) {
	uri := os.Getenv("FEED_TEST_MONGO_URI")
	if uri == "" {
		t.Skip("FEED_TEST_MONGO_URI not set")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	require.NoError(t, err)

	c := client.Database("feed_test").Collection("storage")
	_ = c.Drop(ctx)
	defer c.Drop(context.Background())

	testKeyValueStore(t, NewMongoKeyValueStore(c))
}

func TestOpenKeyValueStore(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	for _, backend := range []string{BackendMemory, BackendFile, BackendSQLite} {
		cfg := DefaultConfig()
		cfg.Backend = backend
		cfg.DataDir = filepath.Join(dir, backend)

		kv, err := OpenKeyValueStore(ctx, cfg)
		require.NoError(t, err, backend)
		require.NoError(t, kv.Set(ctx, "k", "v"), backend)
		assert.NoError(t, kv.Close(), backend)
	}

	cfg := DefaultConfig()
	cfg.Backend = "tape"
	_, err := OpenKeyValueStore(ctx, cfg)
	assert.Error(t, err)
}

func TestOpenKeyValueStore_Redis(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	defer mr.Close()

	cfg := DefaultConfig()
	cfg.Backend = BackendRedis
	cfg.RedisAddr = mr.Addr()

	kv, err := OpenKeyValueStore(context.Background(), cfg)
	require.NoError(t, err)
	defer kv.Close()

	require.NoError(t, kv.Set(context.Background(), "k", "v"))
	assert.True(t, mr.Exists("k"))
}
