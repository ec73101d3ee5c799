package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/benbeisheim/clickchess-backend/internal/model"
	"github.com/redis/go-redis/v9"
)

const keyPrefix = "session:"

// RedisStore keeps each snapshot as JSON under its own key with a TTL that
// is refreshed on every save.
type RedisStore struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewRedisStore(rdb *redis.Client, ttl time.Duration) *RedisStore {
	return &RedisStore{rdb: rdb, ttl: ttl}
}

// OpenRedisStore parses a redis:// URL and pings the server.
func OpenRedisStore(ctx context.Context, redisURL string, ttl time.Duration) (*RedisStore, error) {
	if strings.TrimSpace(redisURL) == "" {
		return nil, errors.New("redis url is required")
	}
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	rdb := redis.NewClient(opts)
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}
	return NewRedisStore(rdb, ttl), nil
}

func (s *RedisStore) key(id string) string { return keyPrefix + strings.TrimSpace(id) }

func (s *RedisStore) Save(ctx context.Context, state model.SessionState) error {
	raw, err := json.Marshal(state)
	if err != nil {
		return err
	}
	return s.rdb.Set(ctx, s.key(state.ID), raw, s.ttl).Err()
}

func (s *RedisStore) Load(ctx context.Context, id string) (model.SessionState, error) {
	raw, err := s.rdb.Get(ctx, s.key(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return model.SessionState{}, ErrNotFound
	}
	if err != nil {
		return model.SessionState{}, err
	}
	var state model.SessionState
	if err := json.Unmarshal(raw, &state); err != nil {
		return model.SessionState{}, fmt.Errorf("decode session %s: %w", id, err)
	}
	return state, nil
}

func (s *RedisStore) Delete(ctx context.Context, id string) error {
	return s.rdb.Del(ctx, s.key(id)).Err()
}

func (s *RedisStore) Close() error {
	if s == nil || s.rdb == nil {
		return nil
	}
	return s.rdb.Close()
}
