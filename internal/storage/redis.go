package storage

import (
	"context"
	"errors"

	"github.com/angelmondragon/rocketshoes-cart/pkg/redis"
)

// Redis persists values under namespaced keys with no expiry.
type Redis struct {
	client *redis.Client
}

func NewRedis(client *redis.Client) (*Redis, error) {
	if client == nil {
		return nil, errors.New("redis client required")
	}
	return &Redis{client: client}, nil
}

func (r *Redis) Get(ctx context.Context, key string) ([]byte, bool, error) {
	value, err := r.client.GetBytes(ctx, r.client.StoreKey(key))
	if errors.Is(err, redis.ErrNil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return value, true, nil
}

func (r *Redis) Set(ctx context.Context, key string, value []byte) error {
	return r.client.Set(ctx, r.client.StoreKey(key), value, 0)
}

func (r *Redis) Ping(ctx context.Context) error {
	return r.client.Ping(ctx)
}
