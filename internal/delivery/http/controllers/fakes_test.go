package controllers

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http/httptest"
	"testing"

	"sportshub/internal/delivery/http/helpers"
	"sportshub/internal/domain"

	"github.com/stretchr/testify/require"
)

// testLogger is a no-op logger for controller tests so we don't assert on log output.
var testLogger = slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError}))

const (
	venueA = "6f1c1c2e-8a55-4d8f-9d7e-0f5b7f1e2a33"
	venueB = "0b7d4e3a-2c1f-4b5e-8a9d-1e2f3a4b5c6d"
	venueC = "9a8b7c6d-5e4f-4a3b-9c2d-1e0f9a8b7c6d"
	eventX = "c3d2e1f0-a9b8-4c7d-8e6f-5a4b3c2d1e0f"
)

// fakeVenueService implements domain.VenueService for handler tests.
type fakeVenueService struct {
	err        error
	venue      *domain.Venue
	venues     []*domain.Venue
	lastOwner  string
	lastID     string
	lastInput  domain.VenueInput
	lastPatch  domain.VenuePatch
	lastFilter domain.VenueFilter
}

func (f *fakeVenueService) CreateVenue(ctx context.Context, ownerID string, in domain.VenueInput) (*domain.Venue, error) {
	f.lastOwner, f.lastInput = ownerID, in
	if f.err != nil {
		return nil, f.err
	}
	return &domain.Venue{ID: venueA, Name: in.Name, Address: in.Address, City: in.City, State: in.State, Capacity: in.Capacity, CreatedBy: ownerID}, nil
}

func (f *fakeVenueService) ListVenues(ctx context.Context, filter domain.VenueFilter) ([]*domain.Venue, error) {
	f.lastFilter = filter
	if f.err != nil {
		return nil, f.err
	}
	return f.venues, nil
}

func (f *fakeVenueService) GetVenueByID(ctx context.Context, id string) (*domain.Venue, error) {
	f.lastID = id
	if f.err != nil {
		return nil, f.err
	}
	return f.venue, nil
}

func (f *fakeVenueService) UpdateVenue(ctx context.Context, id, ownerID string, patch domain.VenuePatch) (*domain.Venue, error) {
	f.lastID, f.lastOwner, f.lastPatch = id, ownerID, patch
	if f.err != nil {
		return nil, f.err
	}
	return f.venue, nil
}

func (f *fakeVenueService) DeleteVenue(ctx context.Context, id, ownerID string) ([]*domain.Venue, error) {
	f.lastID, f.lastOwner = id, ownerID
	if f.err != nil {
		return nil, f.err
	}
	return []*domain.Venue{f.venue}, nil
}

// fakeEventService implements domain.EventService for handler tests.
type fakeEventService struct {
	err          error
	event        *domain.Event
	detail       *domain.EventWithVenues
	events       []*domain.EventWithVenues
	lastOwner    string
	lastID       string
	lastInput    domain.EventInput
	lastPatch    domain.EventPatch
	lastVenueIDs []string
	lastReplace  *[]string
	lastFilter   domain.EventFilter
}

func (f *fakeEventService) CreateEvent(ctx context.Context, ownerID string, in domain.EventInput, venueIDs []string) (*domain.Event, error) {
	f.lastOwner, f.lastInput, f.lastVenueIDs = ownerID, in, venueIDs
	if f.err != nil {
		return nil, f.err
	}
	return &domain.Event{ID: eventX, Name: in.Name, StartDate: in.StartDate, EndDate: in.EndDate, SportType: in.SportType, CreatedBy: ownerID}, nil
}

func (f *fakeEventService) ListEvents(ctx context.Context, filter domain.EventFilter) ([]*domain.EventWithVenues, error) {
	f.lastFilter = filter
	if f.err != nil {
		return nil, f.err
	}
	return f.events, nil
}

func (f *fakeEventService) GetEventByID(ctx context.Context, id string) (*domain.EventWithVenues, error) {
	f.lastID = id
	if f.err != nil {
		return nil, f.err
	}
	return f.detail, nil
}

func (f *fakeEventService) UpdateEvent(ctx context.Context, id, ownerID string, patch domain.EventPatch, venueIDs *[]string) (*domain.Event, error) {
	f.lastID, f.lastOwner, f.lastPatch, f.lastReplace = id, ownerID, patch, venueIDs
	if f.err != nil {
		return nil, f.err
	}
	return f.event, nil
}

func (f *fakeEventService) DeleteEvent(ctx context.Context, id, ownerID string) ([]*domain.Event, error) {
	f.lastID, f.lastOwner = id, ownerID
	if f.err != nil {
		return nil, f.err
	}
	return []*domain.Event{f.event}, nil
}

// decodeEnvelope decodes the response envelope and, when dest is non-nil, its data.
func decodeEnvelope(t *testing.T, rr *httptest.ResponseRecorder, dest any) helpers.APIResponse {
	t.Helper()
	var envelope helpers.APIResponse
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&envelope), "response must be valid JSON envelope")
	if dest != nil {
		require.Nil(t, envelope.Error, "success response must have error nil")
		dataBytes, err := json.Marshal(envelope.Data)
		require.NoError(t, err)
		require.NoError(t, json.Unmarshal(dataBytes, dest))
	}
	return envelope
}

func strPtr(s string) *string { return &s }
