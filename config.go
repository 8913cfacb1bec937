package feed

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-redis/redis/v8"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	BackendMemory = "memory"
	BackendFile   = "file"
	BackendSQLite = "sqlite"
	BackendRedis  = "redis"
	BackendMongo  = "mongo"
)

type Config struct {
	Backend         string `mapstructure:"backend"`
	DataDir         string `mapstructure:"data-dir"`
	SQLitePath      string `mapstructure:"sqlite-path"`
	RedisAddr       string `mapstructure:"redis-addr"`
	RedisPassword   string `mapstructure:"redis-password"`
	RedisDB         int    `mapstructure:"redis-db"`
	MongoURI        string `mapstructure:"mongo-uri"`
	MongoDatabase   string `mapstructure:"mongo-database"`
	MongoCollection string `mapstructure:"mongo-collection"`
	StorageKey      string `mapstructure:"storage-key"`
	Addr            string `mapstructure:"addr"`
	Username        string `mapstructure:"username"`
	Verbose         bool   `mapstructure:"verbose"`
}

func DefaultConfig() Config {
	return Config{
		Backend:         BackendFile,
		DataDir:         ".feed",
		RedisAddr:       "localhost:6379",
		MongoURI:        "mongodb://127.0.0.1:27017",
		MongoDatabase:   "feed",
		MongoCollection: "storage",
		StorageKey:      DefaultStorageKey,
		Addr:            ":8090",
		Username:        DefaultUsername,
	}
}

// OpenKeyValueStore connects the backend named by cfg.Backend.
func OpenKeyValueStore(ctx context.Context, cfg Config) (KeyValueStore, error) {
	switch cfg.Backend {
	case BackendMemory:
		return NewMemoryKeyValueStore(), nil
	case BackendFile, "":
		return NewFileKeyValueStore(cfg.DataDir)
	case BackendSQLite:
		path := cfg.SQLitePath
		if path == "" {
			path = filepath.Join(cfg.DataDir, "feed.db")
		}
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("error creating data dir: %w", err)
		}
		return NewSQLiteKeyValueStore(path)
	case BackendRedis:
		rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr, Password: cfg.RedisPassword, DB: cfg.RedisDB})
		if err := rdb.Ping(ctx).Err(); err != nil {
			rdb.Close()
			return nil, fmt.Errorf("error connecting to redis: %w", err)
		}
		return NewRedisKeyValueStore(rdb), nil
	case BackendMongo:
		client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
		if err != nil {
			return nil, fmt.Errorf("error connecting to mongo: %w", err)
		}
		if err := client.Ping(ctx, nil); err != nil {
			client.Disconnect(ctx)
			return nil, fmt.Errorf("error connecting to mongo: %w", err)
		}
		return NewMongoKeyValueStore(client.Database(cfg.MongoDatabase).Collection(cfg.MongoCollection)), nil
	default:
		return nil, fmt.Errorf("unknown backend %q", cfg.Backend)
	}
}
