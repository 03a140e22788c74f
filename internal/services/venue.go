package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"sportshub/internal/domain"
	"sportshub/internal/monitoring"
)

type venueService struct {
	venueRepo domain.VenueRepository
	cache     domain.ViewCache
	logger    *slog.Logger
}

// NewVenueService returns the venue query/command layer. Writes stale the venue and event views.
func NewVenueService(venueRepo domain.VenueRepository, cache domain.ViewCache, logger *slog.Logger) domain.VenueService {
	if cache == nil {
		cache = domain.NopViewCache{}
	}
	return &venueService{
		venueRepo: venueRepo,
		cache:     cache,
		logger:    logger,
	}
}

func (s *venueService) CreateVenue(ctx context.Context, ownerID string, in domain.VenueInput) (*domain.Venue, error) {
	if ownerID == "" {
		return nil, domain.NewValidationError([]string{"venue owner is required"})
	}
	if err := in.Validate(); err != nil {
		return nil, err
	}
	ctx = context.WithoutCancel(ctx)

	venue := &domain.Venue{
		Name:        in.Name,
		Address:     in.Address,
		City:        in.City,
		State:       in.State,
		Capacity:    in.Capacity,
		Description: in.Description,
		CreatedBy:   ownerID,
	}
	err := s.venueRepo.Create(ctx, venue)
	monitoring.Mutation(domain.CollectionVenues, "create", err)
	if err != nil {
		return nil, fmt.Errorf("create venue: %w", err)
	}
	invalidate(ctx, s.cache, s.logger, domain.CollectionVenues)
	return venue, nil
}

func (s *venueService) ListVenues(ctx context.Context, filter domain.VenueFilter) ([]*domain.Venue, error) {
	filter = filter.Normalized()
	venues, err := cachedList(ctx, s.cache, s.logger, domain.CollectionVenues, venueListKey(filter),
		func(ctx context.Context) ([]*domain.Venue, error) {
			return s.venueRepo.List(ctx, filter)
		})
	if err != nil {
		return nil, fmt.Errorf("list venues: %w", err)
	}
	if venues == nil {
		venues = []*domain.Venue{}
	}
	return venues, nil
}

func (s *venueService) GetVenueByID(ctx context.Context, id string) (*domain.Venue, error) {
	venue, err := s.venueRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get venue: %w", err)
	}
	return venue, nil
}

// ownedVenue loads the venue and checks that ownerID created it.
func (s *venueService) ownedVenue(ctx context.Context, id, ownerID string) (*domain.Venue, error) {
	venue, err := s.GetVenueByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if venue.CreatedBy != ownerID {
		return nil, domain.ErrForbidden
	}
	return venue, nil
}

func (s *venueService) UpdateVenue(ctx context.Context, id, ownerID string, patch domain.VenuePatch) (*domain.Venue, error) {
	if err := patch.Validate(); err != nil {
		return nil, err
	}
	ctx = context.WithoutCancel(ctx)

	current, err := s.ownedVenue(ctx, id, ownerID)
	if err != nil {
		return nil, err
	}
	if patch.IsEmpty() {
		return current, nil
	}
	updated, err := s.venueRepo.Update(ctx, id, patch)
	monitoring.Mutation(domain.CollectionVenues, "update", err)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("update venue: %w", err)
	}
	invalidate(ctx, s.cache, s.logger, domain.CollectionVenues, domain.CollectionEvents)
	return updated, nil
}

func (s *venueService) DeleteVenue(ctx context.Context, id, ownerID string) ([]*domain.Venue, error) {
	ctx = context.WithoutCancel(ctx)

	if _, err := s.ownedVenue(ctx, id, ownerID); err != nil {
		return nil, err
	}
	removed, err := s.venueRepo.Delete(ctx, id)
	monitoring.Mutation(domain.CollectionVenues, "delete", err)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("delete venue: %w", err)
	}
	invalidate(ctx, s.cache, s.logger, domain.CollectionVenues, domain.CollectionEvents)
	return removed, nil
}
