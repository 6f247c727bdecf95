// Package cache wraps the Redis connection used by the lifecycle commands.
// The backend owns the keyspace contents; gbctl only ever verifies
// reachability and clears the whole logical database during a reset.
package cache

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/graveboards/gbctl/pkg/config"
)

// Client is a thin wrapper over go-redis scoped to lifecycle operations.
type Client struct {
	rdb *redis.Client
}

// New creates a client for the configured cache. No connection is made
// until the first operation.
func New(cfg config.RedisConfig) *Client {
	return &Client{
		rdb: redis.NewClient(&redis.Options{
			Addr:     cfg.Addr(),
			Username: cfg.Username,
			Password: cfg.Password,
			DB:       cfg.DB,
		}),
	}
}

// Ping verifies the cache accepts commands.
func (c *Client) Ping(ctx context.Context) error {
	if err := c.rdb.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis ping: %w", err)
	}
	return nil
}

// FlushDB clears the configured logical database. Called during reset so
// cached state never outlives the schema it was derived from.
func (c *Client) FlushDB(ctx context.Context) error {
	if err := c.rdb.FlushDB(ctx).Err(); err != nil {
		return fmt.Errorf("redis flushdb: %w", err)
	}
	return nil
}

// Close releases the connection pool.
func (c *Client) Close() error {
	return c.rdb.Close()
}
