package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const redisDialCheck = 5 * time.Second

// RedisOption adjusts the go-redis options before the client is built.
type RedisOption func(*redisSettings) error

type redisSettings struct {
	opts   *redis.Options
	prefix string
}

// WithRedisURL replaces connection settings with a redis:// or rediss:// URL.
// Options applied after it still win.
func WithRedisURL(rawURL string) RedisOption {
	return func(s *redisSettings) error {
		if rawURL == "" {
			return nil
		}
		parsed, err := redis.ParseURL(rawURL)
		if err != nil {
			return fmt.Errorf("redis url: %w", err)
		}
		parsed.PoolSize = s.opts.PoolSize
		parsed.MinIdleConns = s.opts.MinIdleConns
		s.opts = parsed
		return nil
	}
}

// WithRedisAddr sets the host:port address.
func WithRedisAddr(addr string) RedisOption {
	return func(s *redisSettings) error {
		if addr != "" {
			s.opts.Addr = addr
		}
		return nil
	}
}

func WithRedisPassword(password string) RedisOption {
	return func(s *redisSettings) error {
		if password != "" {
			s.opts.Password = password
		}
		return nil
	}
}

func WithRedisDB(db int) RedisOption {
	return func(s *redisSettings) error {
		s.opts.DB = db
		return nil
	}
}

// WithRedisPrefix namespaces every key as "<prefix>:<key>".
func WithRedisPrefix(prefix string) RedisOption {
	return func(s *redisSettings) error {
		s.prefix = prefix
		return nil
	}
}

// RedisCache implements Service using Redis.
type RedisCache struct {
	client *redis.Client
	prefix string
}

// NewRedisCache builds the client and pings it once so a bad address fails
// at startup rather than on the first request.
func NewRedisCache(opts ...RedisOption) (*RedisCache, error) {
	s := &redisSettings{
		opts: &redis.Options{
			Addr:         "localhost:6379",
			PoolSize:     10,
			MinIdleConns: 2,
		},
		prefix: "stocklens",
	}
	for _, opt := range opts {
		if err := opt(s); err != nil {
			return nil, err
		}
	}

	c := &RedisCache{client: redis.NewClient(s.opts), prefix: s.prefix}

	ctx, cancel := context.WithTimeout(context.Background(), redisDialCheck)
	defer cancel()
	if err := c.Ping(ctx); err != nil {
		_ = c.client.Close()
		return nil, err
	}
	return c, nil
}

func (c *RedisCache) Ping(ctx context.Context) error {
	if err := c.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis ping %s: %w", c.client.Options().Addr, err)
	}
	return nil
}

func (c *RedisCache) Close() error {
	return c.client.Close()
}

func (c *RedisCache) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error {
	data, err := encode(value)
	if err != nil {
		return err
	}
	if err := c.client.Set(ctx, c.key(key), data, expiration).Err(); err != nil {
		return fmt.Errorf("redis set %s: %w", key, err)
	}
	return nil
}

func (c *RedisCache) Get(ctx context.Context, key string, dest interface{}) error {
	data, err := c.client.Get(ctx, c.key(key)).Bytes()
	switch {
	case errors.Is(err, redis.Nil):
		return ErrCacheMiss
	case err != nil:
		return fmt.Errorf("redis get %s: %w", key, err)
	}
	return decode(data, dest)
}

func (c *RedisCache) Delete(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	full := make([]string, len(keys))
	for i, k := range keys {
		full[i] = c.key(k)
	}
	return c.client.Unlink(ctx, full...).Err()
}

func (c *RedisCache) key(k string) string {
	if c.prefix == "" {
		return k
	}
	return GenerateKey(c.prefix, k)
}
