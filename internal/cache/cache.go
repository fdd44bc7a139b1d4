package cache

import (
	"github.com/redis/go-redis/v9"
)

// New creates a Redis client for the configured address. Connectivity is not
// verified here; callers ping on startup if they need a hard failure.
func New(addr string) *redis.Client {
	return redis.NewClient(&redis.Options{Addr: addr})
}
