package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"sportshub/internal/domain"

	goredis "github.com/redis/go-redis/v9"
)

// StaleChannel receives the name of every collection whose cached views were dropped.
const StaleChannel = "sportshub:stale"

const keyPrefix = "sportshub:view"

// ViewCache stores list results in Redis. Each collection has a version counter that is
// part of every entry key; invalidating bumps the counter, so older entries are never read
// again and expire on their own TTL.
type ViewCache struct {
	client *goredis.Client
	ttl    time.Duration
}

// NewViewCache returns a domain.ViewCache backed by client. Entries live for ttl.
func NewViewCache(client *goredis.Client, ttl time.Duration) *ViewCache {
	return &ViewCache{client: client, ttl: ttl}
}

var _ domain.ViewCache = (*ViewCache)(nil)

func versionKey(collection string) string {
	return fmt.Sprintf("%s:%s:version", keyPrefix, collection)
}

func entryKey(collection string, version int64, key string) string {
	return fmt.Sprintf("%s:%s:v%d:%s", keyPrefix, collection, version, key)
}

func (c *ViewCache) version(ctx context.Context, collection string) (int64, error) {
	s, err := c.client.Get(ctx, versionKey(collection)).Result()
	if errors.Is(err, goredis.Nil) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	return strconv.ParseInt(s, 10, 64)
}

// Get reads the entry for key at the collection's current version and returns that version.
func (c *ViewCache) Get(ctx context.Context, collection, key string, dest any) (bool, int64, error) {
	v, err := c.version(ctx, collection)
	if err != nil {
		return false, 0, fmt.Errorf("read %s version: %w", collection, err)
	}
	raw, err := c.client.Get(ctx, entryKey(collection, v, key)).Bytes()
	if errors.Is(err, goredis.Nil) {
		return false, v, nil
	}
	if err != nil {
		return false, v, fmt.Errorf("read %s view: %w", collection, err)
	}
	if err := json.Unmarshal(raw, dest); err != nil {
		return false, v, fmt.Errorf("decode %s view: %w", collection, err)
	}
	return true, v, nil
}

// Set stores value under the version returned by the Get that missed. If the collection was
// invalidated in between, the entry sits under the old version and is never read.
func (c *ViewCache) Set(ctx context.Context, collection, key string, version int64, value any) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encode %s view: %w", collection, err)
	}
	return c.client.Set(ctx, entryKey(collection, version, key), raw, c.ttl).Err()
}

// Invalidate bumps the version of each collection and announces it on StaleChannel.
func (c *ViewCache) Invalidate(ctx context.Context, collections ...string) error {
	var errs []error
	for _, collection := range collections {
		if err := c.client.Incr(ctx, versionKey(collection)).Err(); err != nil {
			errs = append(errs, fmt.Errorf("bump %s version: %w", collection, err))
			continue
		}
		if err := c.client.Publish(ctx, StaleChannel, collection).Err(); err != nil {
			errs = append(errs, fmt.Errorf("publish %s stale: %w", collection, err))
		}
	}
	return errors.Join(errs...)
}

// PingContext reports whether the Redis server is reachable.
func (c *ViewCache) PingContext(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

// WatchStale calls fn with each collection name published on StaleChannel,
// including those published by other instances, until ctx is done.
func (c *ViewCache) WatchStale(ctx context.Context, fn func(collection string)) error {
	sub := c.client.Subscribe(ctx, StaleChannel)
	defer sub.Close()
	if _, err := sub.Receive(ctx); err != nil {
		return fmt.Errorf("subscribe %s: %w", StaleChannel, err)
	}
	ch := sub.Channel()
	for {
		select {
		case <-ctx.Done():
			return nil
		case msg, ok := <-ch:
			if !ok {
				return nil
			}
			fn(msg.Payload)
		}
	}
}
