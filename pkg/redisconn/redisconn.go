package redisconn

import (
	"context"
	"os"
	"strings"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/pkg/errors"
)

// Addr reads the Redis address from the environment, defaulting the port
// when only a hostname is set.
func Addr() string {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		return ""
	}
	if !strings.Contains(addr, ":") {
		addr += ":6379"
	}
	return addr
}

// New connects and pings a Redis client. Accepts either a plain host:port or
// a redis:// URL.
func New(addr string) (*redis.Client, error) {
	opts, err := redis.ParseURL(addr)
	if err != nil {
		opts = &redis.Options{
			Addr:         addr,
			MinIdleConns: 1,
			DialTimeout:  10 * time.Second,
			ReadTimeout:  5 * time.Second,
			WriteTimeout: 5 * time.Second,
		}
	}

	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, errors.Wrap(err, "redis ping")
	}
	return client, nil
}
