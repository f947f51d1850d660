package xredis

import (
	"context"
	"encoding/json"
	"time"

	"github.com/fitchallenge/backend/config"
	"github.com/redis/go-redis/v9"
)

// ErrNotFound is returned by GetObj when the key doesn't exist.
var ErrNotFound = redis.Nil

// Client stores json encoded objects with a ttl.
type Client interface {
	GetObj(ctx context.Context, key string, v any) error
	SetObj(ctx context.Context, key string, obj any, ttl time.Duration) error
}

type client struct {
	redisClient *redis.Client
}

// NewClient connects to cfg.Addr and fails fast if redis doesn't answer.
func NewClient(ctx context.Context, cfg config.RedisConfigs) (*client, error) {
	redisClient := redis.NewClient(&redis.Options{
		Addr:         cfg.Addr,
		DialTimeout:  2 * time.Second,
		ReadTimeout:  time.Second,
		WriteTimeout: time.Second,
		PoolSize:     10,
	})

	if err := redisClient.Ping(ctx).Err(); err != nil {
		_ = redisClient.Close()
		return nil, err
	}

	return &client{redisClient: redisClient}, nil
}

func (c *client) GetObj(ctx context.Context, key string, v any) error {
	b, err := c.redisClient.Get(ctx, key).Bytes()
	if err != nil {
		return err
	}

	return json.Unmarshal(b, v)
}

func (c *client) SetObj(ctx context.Context, key string, obj any, ttl time.Duration) error {
	b, err := json.Marshal(obj)
	if err != nil {
		return err
	}

	return c.redisClient.Set(ctx, key, b, ttl).Err()
}
