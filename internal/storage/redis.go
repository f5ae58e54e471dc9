package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/spec-kit/userstore/internal/domain"
)

var _ Storage = (*RedisStorage)(nil)

// RedisStorage stores each user as JSON under <prefix>:user:<email> and tracks emails in the
// set <prefix>:users.
type RedisStorage struct {
	client redis.UniversalClient
	prefix string
}

// NewRedisStorage wraps client; an empty prefix defaults to "userstore".
func NewRedisStorage(client redis.UniversalClient, prefix string) *RedisStorage {
	if prefix == "" {
		prefix = "userstore"
	}
	return &RedisStorage{client: client, prefix: prefix}
}

func (s *RedisStorage) userKey(email string) string {
	return s.prefix + ":user:" + email
}

func (s *RedisStorage) indexKey() string {
	return s.prefix + ":users"
}

func (s *RedisStorage) Save(ctx context.Context, user domain.User) error {
	data, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("encode user: %w", err)
	}

	_, err = s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Set(ctx, s.userKey(user.Email), data, 0)
		pipe.SAdd(ctx, s.indexKey(), user.Email)
		return nil
	})
	if err != nil {
		return fmt.Errorf("save user: %w", err)
	}
	return nil
}

func (s *RedisStorage) Load(ctx context.Context, email string) (domain.User, bool, error) {
	data, err := s.client.Get(ctx, s.userKey(email)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return domain.User{}, false, nil
		}
		return domain.User{}, false, fmt.Errorf("load user: %w", err)
	}

	var user domain.User
	if err := json.Unmarshal(data, &user); err != nil {
		return domain.User{}, false, fmt.Errorf("decode user %s: %w", email, err)
	}
	return user, true, nil
}

func (s *RedisStorage) Remove(ctx context.Context, email string) (bool, error) {
	var del *redis.IntCmd
	_, err := s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		del = pipe.Del(ctx, s.userKey(email))
		pipe.SRem(ctx, s.indexKey(), email)
		return nil
	})
	if err != nil {
		return false, fmt.Errorf("remove user: %w", err)
	}
	return del.Val() > 0, nil
}

// List skips index entries whose value has vanished.
func (s *RedisStorage) List(ctx context.Context) ([]domain.User, error) {
	emails, err := s.client.SMembers(ctx, s.indexKey()).Result()
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	users := make([]domain.User, 0, len(emails))
	if len(emails) == 0 {
		return users, nil
	}

	keys := make([]string, len(emails))
	for i, email := range emails {
		keys[i] = s.userKey(email)
	}
	values, err := s.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}

	for i, v := range values {
		raw, ok := v.(string)
		if !ok {
			continue
		}
		var user domain.User
		if err := json.Unmarshal([]byte(raw), &user); err != nil {
			return nil, fmt.Errorf("decode user %s: %w", emails[i], err)
		}
		users = append(users, user)
	}
	return users, nil
}
