package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sort"
	"strings"
	"sync"
	"time"

	"sportshub/internal/domain"

	"github.com/google/uuid"
)

// testLogger discards output so tests don't assert on logs.
var testLogger = slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError}))

// memStore backs the fake repositories so events can join their venues like the real store.
type memStore struct {
	mu     sync.Mutex
	venues map[string]*domain.Venue
	events map[string]*domain.Event
	links  map[string][]domain.EventVenue // eventID -> links in position order
	clock  time.Time
}

func newMemStore() *memStore {
	return &memStore{
		venues: make(map[string]*domain.Venue),
		events: make(map[string]*domain.Event),
		links:  make(map[string][]domain.EventVenue),
		clock:  time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

func (m *memStore) tick() time.Time {
	m.clock = m.clock.Add(time.Minute)
	return m.clock
}

func containsFold(s, sub string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(sub))
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// fakeVenueRepo is an in-memory VenueRepository for tests.
type fakeVenueRepo struct {
	store     *memStore
	createErr error
	listErr   error
	listCalls int
	// afterList runs once the rows are read, before List returns them.
	afterList func()
}

func (f *fakeVenueRepo) Create(ctx context.Context, v *domain.Venue) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.store.mu.Lock()
	defer f.store.mu.Unlock()
	v.ID = uuid.NewString()
	v.CreatedAt = f.store.tick()
	cp := *v
	f.store.venues[v.ID] = &cp
	return nil
}

func (f *fakeVenueRepo) GetByID(ctx context.Context, id string) (*domain.Venue, error) {
	f.store.mu.Lock()
	defer f.store.mu.Unlock()
	v, ok := f.store.venues[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *v
	return &cp, nil
}

func (f *fakeVenueRepo) List(ctx context.Context, filter domain.VenueFilter) ([]*domain.Venue, error) {
	f.listCalls++
	if f.listErr != nil {
		return nil, f.listErr
	}
	out := f.list(filter)
	if f.afterList != nil {
		f.afterList()
	}
	return out, nil
}

func (f *fakeVenueRepo) list(filter domain.VenueFilter) []*domain.Venue {
	f.store.mu.Lock()
	defer f.store.mu.Unlock()
	out := []*domain.Venue{}
	for _, v := range f.store.venues {
		if filter.Search != "" && !containsFold(v.Name, filter.Search) && !containsFold(v.Address, filter.Search) && !containsFold(deref(v.Description), filter.Search) {
			continue
		}
		if filter.City != "" && !containsFold(v.City, filter.City) {
			continue
		}
		if filter.OwnerID != "" && v.CreatedBy != filter.OwnerID {
			continue
		}
		cp := *v
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out
}

func (f *fakeVenueRepo) Update(ctx context.Context, id string, p domain.VenuePatch) (*domain.Venue, error) {
	f.store.mu.Lock()
	defer f.store.mu.Unlock()
	v, ok := f.store.venues[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	if p.Name != nil {
		v.Name = *p.Name
	}
	if p.Address != nil {
		v.Address = *p.Address
	}
	if p.City != nil {
		v.City = *p.City
	}
	if p.State != nil {
		v.State = p.State
	}
	if p.Capacity != nil {
		v.Capacity = p.Capacity
	}
	if p.Description != nil {
		v.Description = p.Description
	}
	cp := *v
	return &cp, nil
}

func (f *fakeVenueRepo) Delete(ctx context.Context, id string) ([]*domain.Venue, error) {
	f.store.mu.Lock()
	defer f.store.mu.Unlock()
	v, ok := f.store.venues[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	delete(f.store.venues, id)
	// cascade like the event_venues foreign key
	for eventID, links := range f.store.links {
		kept := links[:0]
		for _, l := range links {
			if l.VenueID != id {
				kept = append(kept, l)
			}
		}
		f.store.links[eventID] = kept
	}
	return []*domain.Venue{v}, nil
}

// fakeEventRepo is an in-memory EventRepository for tests.
type fakeEventRepo struct {
	store     *memStore
	createErr error
	updateErr error
	listCalls int
}

func (f *fakeEventRepo) view(e *domain.Event) *domain.EventWithVenues {
	var views []domain.EventVenueView
	for _, l := range f.store.links[e.ID] {
		v := f.store.venues[l.VenueID]
		views = append(views, domain.EventVenueView{
			VenueSummary: domain.VenueSummary{ID: v.ID, Name: v.Name, Address: v.Address, City: v.City, State: v.State},
			IsPrimary:    l.IsPrimary,
		})
	}
	return domain.NewEventWithVenues(*e, views)
}

func (f *fakeEventRepo) setLinks(eventID string, links []domain.EventVenue) error {
	for _, l := range links {
		if _, ok := f.store.venues[l.VenueID]; !ok {
			return domain.NewValidationError([]string{"referenced record does not exist: event_venues_venue_id_fkey"})
		}
	}
	stored := make([]domain.EventVenue, len(links))
	for i, l := range links {
		l.EventID = eventID
		stored[i] = l
	}
	f.store.links[eventID] = stored
	return nil
}

func (f *fakeEventRepo) Create(ctx context.Context, e *domain.Event, links []domain.EventVenue) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.store.mu.Lock()
	defer f.store.mu.Unlock()
	id := uuid.NewString()
	if err := f.setLinks(id, links); err != nil {
		return err
	}
	e.ID = id
	e.CreatedAt = f.store.tick()
	cp := *e
	f.store.events[id] = &cp
	return nil
}

func (f *fakeEventRepo) GetByID(ctx context.Context, id string) (*domain.EventWithVenues, error) {
	f.store.mu.Lock()
	defer f.store.mu.Unlock()
	e, ok := f.store.events[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return f.view(e), nil
}

func (f *fakeEventRepo) List(ctx context.Context, filter domain.EventFilter) ([]*domain.EventWithVenues, error) {
	f.listCalls++
	f.store.mu.Lock()
	defer f.store.mu.Unlock()
	out := []*domain.EventWithVenues{}
	for _, e := range f.store.events {
		if filter.Search != "" && !containsFold(e.Name, filter.Search) && !containsFold(deref(e.Description), filter.Search) {
			continue
		}
		if filter.Sport != "" && e.SportType != filter.Sport {
			continue
		}
		if filter.OwnerID != "" && e.CreatedBy != filter.OwnerID {
			continue
		}
		out = append(out, f.view(e))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].StartDate.Before(out[j].StartDate) })
	return out, nil
}

func (f *fakeEventRepo) Update(ctx context.Context, id string, p domain.EventPatch, links []domain.EventVenue, replaceVenues bool) (*domain.Event, error) {
	if f.updateErr != nil {
		return nil, f.updateErr
	}
	f.store.mu.Lock()
	defer f.store.mu.Unlock()
	e, ok := f.store.events[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	if replaceVenues {
		if err := f.setLinks(id, links); err != nil {
			return nil, err
		}
	}
	if p.Name != nil {
		e.Name = *p.Name
	}
	if p.Description != nil {
		e.Description = p.Description
	}
	if p.StartDate != nil {
		e.StartDate = *p.StartDate
	}
	if p.EndDate != nil {
		e.EndDate = p.EndDate
	}
	if p.SportType != nil {
		e.SportType = *p.SportType
	}
	cp := *e
	return &cp, nil
}

func (f *fakeEventRepo) Delete(ctx context.Context, id string) ([]*domain.Event, error) {
	f.store.mu.Lock()
	defer f.store.mu.Unlock()
	e, ok := f.store.events[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	delete(f.store.events, id)
	delete(f.store.links, id)
	return []*domain.Event{e}, nil
}

// fakeCache is a map-backed ViewCache with per-collection versions, like the Redis one.
type fakeCache struct {
	entries     map[string]any
	versions    map[string]int64
	invalidated []string
	getErr      error
}

func newFakeCache() *fakeCache {
	return &fakeCache{entries: make(map[string]any), versions: make(map[string]int64)}
}

func fakeCacheKey(collection string, version int64, key string) string {
	return fmt.Sprintf("%s|v%d|%s", collection, version, key)
}

func (c *fakeCache) Get(ctx context.Context, collection, key string, dest any) (bool, int64, error) {
	if c.getErr != nil {
		return false, 0, c.getErr
	}
	version := c.versions[collection]
	v, ok := c.entries[fakeCacheKey(collection, version, key)]
	if !ok {
		return false, version, nil
	}
	switch d := dest.(type) {
	case *[]*domain.Venue:
		*d = v.([]*domain.Venue)
	case *[]*domain.EventWithVenues:
		*d = v.([]*domain.EventWithVenues)
	default:
		return false, version, errors.New("unexpected cache destination")
	}
	return true, version, nil
}

func (c *fakeCache) Set(ctx context.Context, collection, key string, version int64, value any) error {
	c.entries[fakeCacheKey(collection, version, key)] = value
	return nil
}

func (c *fakeCache) Invalidate(ctx context.Context, collections ...string) error {
	for _, col := range collections {
		c.versions[col]++
	}
	c.invalidated = append(c.invalidated, collections...)
	return nil
}

type fixture struct {
	store  *memStore
	venues *fakeVenueRepo
	events *fakeEventRepo
	cache  *fakeCache
	vs     domain.VenueService
	es     domain.EventService
}

func newFixture() *fixture {
	store := newMemStore()
	f := &fixture{
		store:  store,
		venues: &fakeVenueRepo{store: store},
		events: &fakeEventRepo{store: store},
		cache:  newFakeCache(),
	}
	f.vs = NewVenueService(f.venues, f.cache, testLogger)
	f.es = NewEventService(f.events, f.cache, testLogger)
	return f
}

func strPtr(s string) *string { return &s }

func intPtr(n int) *int { return &n }
