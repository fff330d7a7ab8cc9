package cache

import (
	"context"
	"fmt"
)

// Config selects and configures a cache backend.
type Config struct {
	Backend         string // file, redis, mongo or none; empty means file
	Dir             string // FileCache directory
	RedisAddr       string // host:port
	MongoURI        string
	MongoDatabase   string // defaults to DefaultMongoDatabase
	MongoCollection string // defaults to DefaultMongoCollection
}

// Open creates the backend named by cfg.Backend.
func Open(ctx context.Context, cfg Config) (Cache, error) {
	switch cfg.Backend {
	case "", BackendFile:
		if cfg.Dir == "" {
			return nil, fmt.Errorf("file cache: no directory configured")
		}
		return NewFileCache(cfg.Dir)
	case BackendRedis:
		if cfg.RedisAddr == "" {
			return nil, fmt.Errorf("redis cache: no address configured")
		}
		return NewRedisCache(ctx, cfg.RedisAddr)
	case BackendMongo:
		if cfg.MongoURI == "" {
			return nil, fmt.Errorf("mongo cache: no URI configured")
		}
		db, coll := cfg.MongoDatabase, cfg.MongoCollection
		if db == "" {
			db = DefaultMongoDatabase
		}
		if coll == "" {
			coll = DefaultMongoCollection
		}
		return NewMongoCache(ctx, cfg.MongoURI, db, coll)
	case BackendNone:
		return NewNullCache(), nil
	}
	return nil, fmt.Errorf("unknown cache backend %q (want file, redis, mongo or none)", cfg.Backend)
}
