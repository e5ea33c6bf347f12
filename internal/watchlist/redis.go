package watchlist

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisKV stores the slot in a Redis string key.
type RedisKV struct {
	client  *redis.Client
	timeout time.Duration
}

var _ KV = (*RedisKV)(nil)

func NewRedisKV(client *redis.Client) *RedisKV {
	return &RedisKV{client: client, timeout: 5 * time.Second}
}

// DialRedis connects to addr and verifies the server answers.
func DialRedis(ctx context.Context, addr string, db int) (*RedisKV, error) {
	client := redis.NewClient(&redis.Options{Addr: addr, DB: db})
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("connecting to redis %s: %w", addr, err)
	}
	return NewRedisKV(client), nil
}

func (kv *RedisKV) ctx() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), kv.timeout)
}

func (kv *RedisKV) Get(key string) (string, bool, error) {
	ctx, cancel := kv.ctx()
	defer cancel()
	v, err := kv.client.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("redis get %s: %w", key, err)
	}
	return v, true, nil
}

func (kv *RedisKV) Set(key, value string) error {
	ctx, cancel := kv.ctx()
	defer cancel()
	if err := kv.client.Set(ctx, key, value, 0).Err(); err != nil {
		return fmt.Errorf("redis set %s: %w", key, err)
	}
	return nil
}

func (kv *RedisKV) Clear(key string) error {
	ctx, cancel := kv.ctx()
	defer cancel()
	if err := kv.client.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("redis del %s: %w", key, err)
	}
	return nil
}

func (kv *RedisKV) Close() error {
	return kv.client.Close()
}
