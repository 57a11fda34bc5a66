package redis

import (
	"context"
	"fmt"
	"strings"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"nutriplan-dashboard/internal/ports/health"
)

const keyPrefix = "nutriplan:health:down:"

type Options struct {
	Addr        string
	Password    string
	DB          int
	DialTimeout time.Duration
}

type HealthCache struct {
	db *goredis.Client
}

var _ health.Cache = (*HealthCache)(nil)

// Open conecta y hace Ping para fallar temprano si redis no está.
func Open(ctx context.Context, opts Options) (*HealthCache, error) {
	const op = "redis.Open"

	db := goredis.NewClient(&goredis.Options{
		Addr:        opts.Addr,
		Password:    opts.Password,
		DB:          opts.DB,
		DialTimeout: opts.DialTimeout,
	})
	if err := db.Ping(ctx).Err(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &HealthCache{db: db}, nil
}

func NewHealthCache(db *goredis.Client) *HealthCache {
	return &HealthCache{db: db}
}

func (c *HealthCache) IsDown(ctx context.Context, service string) (bool, error) {
	n, err := c.db.Exists(ctx, key(service)).Result()
	if err != nil {
		return false, fmt.Errorf("redis.IsDown: %w", err)
	}
	return n > 0, nil
}

func (c *HealthCache) MarkDown(ctx context.Context, service string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	if err := c.db.Set(ctx, key(service), time.Now().UTC().Format(time.RFC3339), ttl).Err(); err != nil {
		return fmt.Errorf("redis.MarkDown: %w", err)
	}
	return nil
}

func (c *HealthCache) MarkUp(ctx context.Context, service string) error {
	if err := c.db.Del(ctx, key(service)).Err(); err != nil {
		return fmt.Errorf("redis.MarkUp: %w", err)
	}
	return nil
}

func (c *HealthCache) Close() error {
	return c.db.Close()
}

func key(service string) string {
	return keyPrefix + strings.ToLower(strings.TrimSpace(service))
}
