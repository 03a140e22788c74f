package domain

import "context"

// Cached view collections. A venue change also stales events, which embed venue snapshots.
const (
	CollectionVenues = "venues"
	CollectionEvents = "events"
)

// ViewCache stores list results per collection and drops them when the collection changes.
// Get reports a miss with found=false and a nil error. version is the collection state the
// lookup saw; a value loaded after a miss is stored with Set under that same version, so a
// load that raced an invalidation lands under a superseded version and is never served.
type ViewCache interface {
	Get(ctx context.Context, collection, key string, dest any) (found bool, version int64, err error)
	Set(ctx context.Context, collection, key string, version int64, value any) error
	Invalidate(ctx context.Context, collections ...string) error
}

// NopViewCache never stores anything. Used when no cache backend is configured.
type NopViewCache struct{}

func (NopViewCache) Get(context.Context, string, string, any) (bool, int64, error) {
	return false, 0, nil
}
func (NopViewCache) Set(context.Context, string, string, int64, any) error { return nil }
func (NopViewCache) Invalidate(context.Context, ...string) error           { return nil }
