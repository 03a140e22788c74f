package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"sportshub/internal/domain"
	"sportshub/internal/monitoring"
)

type eventService struct {
	eventRepo domain.EventRepository
	cache     domain.ViewCache
	logger    *slog.Logger
}

// NewEventService returns the event query/command layer. Venue links are built by
// domain.BuildEventVenues and written in the same transaction as the event row.
func NewEventService(eventRepo domain.EventRepository, cache domain.ViewCache, logger *slog.Logger) domain.EventService {
	if cache == nil {
		cache = domain.NopViewCache{}
	}
	return &eventService{
		eventRepo: eventRepo,
		cache:     cache,
		logger:    logger,
	}
}

func (s *eventService) CreateEvent(ctx context.Context, ownerID string, in domain.EventInput, venueIDs []string) (*domain.Event, error) {
	if ownerID == "" {
		return nil, domain.NewValidationError([]string{"event owner is required"})
	}
	if err := in.Validate(); err != nil {
		return nil, err
	}
	ctx = context.WithoutCancel(ctx)

	event := &domain.Event{
		Name:        in.Name,
		Description: in.Description,
		StartDate:   in.StartDate,
		EndDate:     in.EndDate,
		SportType:   in.SportType,
		CreatedBy:   ownerID,
	}
	links := domain.BuildEventVenues("", venueIDs)
	err := s.eventRepo.Create(ctx, event, links)
	monitoring.Mutation(domain.CollectionEvents, "create", err)
	if err != nil {
		return nil, fmt.Errorf("create event: %w", err)
	}
	invalidate(ctx, s.cache, s.logger, domain.CollectionEvents)
	return event, nil
}

func (s *eventService) ListEvents(ctx context.Context, filter domain.EventFilter) ([]*domain.EventWithVenues, error) {
	filter = filter.Normalized()
	events, err := cachedList(ctx, s.cache, s.logger, domain.CollectionEvents, eventListKey(filter),
		func(ctx context.Context) ([]*domain.EventWithVenues, error) {
			return s.eventRepo.List(ctx, filter)
		})
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	if events == nil {
		events = []*domain.EventWithVenues{}
	}
	return events, nil
}

func (s *eventService) GetEventByID(ctx context.Context, id string) (*domain.EventWithVenues, error) {
	event, err := s.eventRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get event: %w", err)
	}
	return event, nil
}

func (s *eventService) ownedEvent(ctx context.Context, id, ownerID string) (*domain.EventWithVenues, error) {
	event, err := s.GetEventByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if event.CreatedBy != ownerID {
		return nil, domain.ErrForbidden
	}
	return event, nil
}

func (s *eventService) UpdateEvent(ctx context.Context, id, ownerID string, patch domain.EventPatch, venueIDs *[]string) (*domain.Event, error) {
	ctx = context.WithoutCancel(ctx)

	current, err := s.ownedEvent(ctx, id, ownerID)
	if err != nil {
		return nil, err
	}
	if err := patch.Validate(&current.Event); err != nil {
		return nil, err
	}
	replaceVenues := venueIDs != nil
	var links []domain.EventVenue
	if replaceVenues {
		links = domain.BuildEventVenues(id, *venueIDs)
	}
	updated, err := s.eventRepo.Update(ctx, id, patch, links, replaceVenues)
	monitoring.Mutation(domain.CollectionEvents, "update", err)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("update event: %w", err)
	}
	invalidate(ctx, s.cache, s.logger, domain.CollectionEvents)
	return updated, nil
}

func (s *eventService) DeleteEvent(ctx context.Context, id, ownerID string) ([]*domain.Event, error) {
	ctx = context.WithoutCancel(ctx)

	if _, err := s.ownedEvent(ctx, id, ownerID); err != nil {
		return nil, err
	}
	removed, err := s.eventRepo.Delete(ctx, id)
	monitoring.Mutation(domain.CollectionEvents, "delete", err)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("delete event: %w", err)
	}
	invalidate(ctx, s.cache, s.logger, domain.CollectionEvents)
	return removed, nil
}
