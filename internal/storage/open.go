package storage

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"github.com/spec-kit/userstore/internal/config"
)

// Backends carries the connections the I/O-backed variants are built on.
type Backends struct {
	Postgres *pgxpool.Pool
	Redis    redis.UniversalClient
}

// Open returns the variant named by cfg.Backend.
func Open(cfg config.StorageConfig, backends Backends) (Storage, error) {
	switch cfg.Backend {
	case config.BackendMemory, "":
		return NewMemoryStorage(), nil
	case config.BackendFile:
		return NewFileStorage(cfg.FileBasePath), nil
	case config.BackendPostgres:
		if backends.Postgres == nil {
			return nil, errors.New("postgres backend selected but no pool is connected")
		}
		return NewPostgresStorage(backends.Postgres), nil
	case config.BackendRedis:
		if backends.Redis == nil {
			return nil, errors.New("redis backend selected but no client is configured")
		}
		return NewRedisStorage(backends.Redis, cfg.RedisKeyPrefix), nil
	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.Backend)
	}
}
