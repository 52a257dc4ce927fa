// The redisutils package simplifies and automates recurring operations like
// connecting to, formatting for, and parsing from Redis.
package redisutils

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	DefaultProdAddr string = "localhost:6379"
	DefaultTestAddr string = "localhost:6380"
)

// SetupClient() initializes a new Redis client for the specified address and database.
func SetupClient(addr string, DB int) *redis.Client {
	if addr == "" {
		addr = DefaultProdAddr
	}

	return redis.NewClient(&redis.Options{
		Addr: addr,
		DB:   DB,
	})
}

// SetupTestClient() initializes a new Redis client for tests.
func SetupTestClient() *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr: DefaultTestAddr,
	})
}

// Ping() returns an error if Redis doesn't answer within timeout.
func Ping(ctx context.Context, client *redis.Client, timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	return client.Ping(ctx).Err()
}

// CleanupRedis() cleans up the Redis database between tests to ensure isolation.
func CleanupRedis(client *redis.Client) {
	client.FlushAll(context.Background())
}
