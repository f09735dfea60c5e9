package kv

import (
	"context"
	"errors"

	"github.com/redis/go-redis/v9"
)

// Redis keeps each value as a plain string key without expiry.
type Redis struct {
	Cli *redis.Client
}

func NewRedis(addr string, password string, db int) *Redis {
	return &Redis{
		Cli: redis.NewClient(&redis.Options{Addr: addr, Password: password, DB: db}),
	}
}

func (r *Redis) Get(ctx context.Context, key string) (string, bool, error) {
	val, err := r.Cli.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return val, true, nil
}

func (r *Redis) Set(ctx context.Context, key string, value string) error {
	return r.Cli.Set(ctx, key, value, 0).Err()
}

func (r *Redis) Close() error {
	return r.Cli.Close()
}
