package redis

import (
	"context"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"
)

// clientOptions accepts a redis:// URL or a bare host:port address.
func clientOptions(url string) *goredis.Options {
	opts, err := goredis.ParseURL(url)
	if err != nil {
		// not a URL; treat it as host:port
		opts = &goredis.Options{Addr: url}
	}
	opts.PoolSize = 20
	opts.MinIdleConns = 2
	opts.MaxRetries = 3
	return opts
}

// NewClient connects to the Redis server at url (redis:// URL or host:port) and pings it.
func NewClient(ctx context.Context, url string) (*goredis.Client, error) {
	client := goredis.NewClient(clientOptions(url))

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	return client, nil
}
