package storage

import (
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/userstore/internal/config"
)

func TestOpen(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer client.Close()

	s, err := Open(config.StorageConfig{Backend: config.BackendMemory}, Backends{})
	require.NoError(t, err)
	assert.IsType(t, &MemoryStorage{}, s)

	s, err = Open(config.StorageConfig{Backend: config.BackendFile, FileBasePath: "/tmp/u"}, Backends{})
	require.NoError(t, err)
	require.IsType(t, &FileStorage{}, s)
	assert.Equal(t, "/tmp/u", s.(*FileStorage).BasePath())

	s, err = Open(config.StorageConfig{Backend: config.BackendRedis}, Backends{Redis: client})
	require.NoError(t, err)
	assert.IsType(t, &RedisStorage{}, s)

	_, err = Open(config.StorageConfig{Backend: config.BackendPostgres}, Backends{})
	assert.ErrorContains(t, err, "no pool")

	_, err = Open(config.StorageConfig{Backend: config.BackendRedis}, Backends{})
	assert.ErrorContains(t, err, "no client")

	_, err = Open(config.StorageConfig{Backend: "s3"}, Backends{})
	assert.ErrorContains(t, err, "unknown storage backend")
}
