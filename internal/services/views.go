package services

import (
	"context"
	"log/slog"
	"net/url"

	"sportshub/internal/domain"
	"sportshub/internal/monitoring"
)

// cachedList serves a list view from cache, loading and storing it on a miss.
// The loaded value is stored under the version the miss saw, never a newer one.
// Cache failures are logged and never fail the call.
func cachedList[T any](ctx context.Context, cache domain.ViewCache, logger *slog.Logger, collection, key string, load func(context.Context) (T, error)) (T, error) {
	var cached T
	found, version, err := cache.Get(ctx, collection, key, &cached)
	readFailed := err != nil
	switch {
	case readFailed:
		monitoring.CacheLookup(collection, "error")
		logger.WarnContext(ctx, "view cache read failed", "collection", collection, "err", err)
	case found:
		monitoring.CacheLookup(collection, "hit")
		return cached, nil
	default:
		monitoring.CacheLookup(collection, "miss")
	}

	fresh, err := load(ctx)
	if err != nil {
		return fresh, err
	}
	if readFailed {
		return fresh, nil
	}
	if err := cache.Set(ctx, collection, key, version, fresh); err != nil {
		logger.WarnContext(ctx, "view cache write failed", "collection", collection, "err", err)
	}
	return fresh, nil
}

// invalidate tells cached views of the given collections that they are stale.
func invalidate(ctx context.Context, cache domain.ViewCache, logger *slog.Logger, collections ...string) {
	if err := cache.Invalidate(ctx, collections...); err != nil {
		logger.WarnContext(ctx, "view cache invalidation failed", "collections", collections, "err", err)
	}
}

func venueListKey(f domain.VenueFilter) string {
	q := url.Values{}
	q.Set("search", f.Search)
	q.Set("city", f.City)
	q.Set("owner", f.OwnerID)
	return "list?" + q.Encode()
}

func eventListKey(f domain.EventFilter) string {
	q := url.Values{}
	q.Set("search", f.Search)
	q.Set("sport", f.Sport)
	q.Set("owner", f.OwnerID)
	return "list?" + q.Encode()
}
