package store

import (
	"context"
	"errors"
	"time"

	goredis "github.com/redis/go-redis/v9"
)

const defaultKeyPrefix = "dncalc:"

// RedisKV is a Redis-backed KV.
type RedisKV struct {
	client goredis.UniversalClient
	prefix string
}

// NewRedis connects to Redis and pings it.
func NewRedis(ctx context.Context, cfg Config) (*RedisKV, error) {
	client := goredis.NewClient(&goredis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, err
	}
	return NewRedisFromClient(client, cfg.KeyPrefix), nil
}

// NewRedisFromClient wraps an existing client. An empty prefix selects
// "dncalc:".
func NewRedisFromClient(client goredis.UniversalClient, prefix string) *RedisKV {
	if prefix == "" {
		prefix = defaultKeyPrefix
	}
	return &RedisKV{client: client, prefix: prefix}
}

func (r *RedisKV) Get(ctx context.Context, key string) (string, error) {
	v, err := r.client.Get(ctx, r.prefix+key).Result()
	if errors.Is(err, goredis.Nil) {
		return "", ErrNotFound
	}
	return v, err
}

func (r *RedisKV) Set(ctx context.Context, key, value string) error {
	return r.client.Set(ctx, r.prefix+key, value, 0).Err()
}

func (r *RedisKV) Del(ctx context.Context, keys ...string) error {
	full := make([]string, len(keys))
	for i, k := range keys {
		full[i] = r.prefix + k
	}
	return r.client.Del(ctx, full...).Err()
}

// Close releases the connection pool.
func (r *RedisKV) Close() error { return r.client.Close() }
