package domain

import (
	"context"
	"strings"
	"time"
)

// Sports offered by the event form. Other values are accepted as free text.
var Sports = []string{
	"Basketball",
	"Football",
	"Soccer",
	"Tennis",
	"Baseball",
	"Volleyball",
	"Hockey",
	"Other",
}

// IsKnownSport reports whether sport is one of Sports (case-sensitive).
func IsKnownSport(sport string) bool {
	for _, s := range Sports {
		if s == sport {
			return true
		}
	}
	return false
}

// Event represents a sports event
// swagger:model Event
type Event struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	Description *string    `json:"description"`
	StartDate   time.Time  `json:"start_date"`
	EndDate     *time.Time `json:"end_date"`
	SportType   string     `json:"sport_type"`
	CreatedBy   string     `json:"created_by"`
	CreatedAt   time.Time  `json:"created_at"`
}

// EventInput holds the caller-supplied fields of a new event.
type EventInput struct {
	Name        string
	Description *string
	StartDate   time.Time
	EndDate     *time.Time
	SportType   string
}

// Validate returns a ValidationError listing every rule the input breaks.
func (in EventInput) Validate() error {
	var errs []string
	if strings.TrimSpace(in.Name) == "" {
		errs = append(errs, "name is required")
	}
	if in.StartDate.IsZero() {
		errs = append(errs, "start_date is required")
	}
	if strings.TrimSpace(in.SportType) == "" {
		errs = append(errs, "sport_type is required")
	}
	if in.EndDate != nil && !in.StartDate.IsZero() && in.EndDate.Before(in.StartDate) {
		errs = append(errs, "end_date must not be before start_date")
	}
	return NewValidationError(errs)
}

// EventPatch is a partial event update. Nil fields are left unchanged.
type EventPatch struct {
	Name        *string
	Description *string
	StartDate   *time.Time
	EndDate     *time.Time
	SportType   *string
}

// Validate checks the patch against the stored event it will be applied to,
// so that the resulting start/end pair stays ordered.
func (p EventPatch) Validate(current *Event) error {
	var errs []string
	if p.Name != nil && strings.TrimSpace(*p.Name) == "" {
		errs = append(errs, "name cannot be empty")
	}
	if p.SportType != nil && strings.TrimSpace(*p.SportType) == "" {
		errs = append(errs, "sport_type cannot be empty")
	}
	if p.StartDate != nil && p.StartDate.IsZero() {
		errs = append(errs, "start_date cannot be empty")
	}
	start := current.StartDate
	if p.StartDate != nil {
		start = *p.StartDate
	}
	end := current.EndDate
	if p.EndDate != nil {
		end = p.EndDate
	}
	if end != nil && end.Before(start) {
		errs = append(errs, "end_date must not be before start_date")
	}
	return NewValidationError(errs)
}

// IsEmpty reports whether the patch changes no scalar field.
func (p EventPatch) IsEmpty() bool {
	return p.Name == nil && p.Description == nil && p.StartDate == nil &&
		p.EndDate == nil && p.SportType == nil
}

// VenueSummary is the venue snapshot embedded in event listings.
// swagger:model VenueSummary
type VenueSummary struct {
	ID      string  `json:"id"`
	Name    string  `json:"name"`
	Address string  `json:"address"`
	City    string  `json:"city"`
	State   *string `json:"state"`
}

// EventVenueView is a venue attached to an event, flagged when it is the primary one.
// swagger:model EventVenueView
type EventVenueView struct {
	VenueSummary
	IsPrimary bool `json:"is_primary"`
}

// EventWithVenues is an event with its venues flattened out of the junction table.
// swagger:model EventWithVenues
type EventWithVenues struct {
	Event
	Venues       []EventVenueView `json:"venues"`
	PrimaryVenue *VenueSummary    `json:"primary_venue"`
}

// NewEventWithVenues builds the flattened view and derives PrimaryVenue from the flagged row.
func NewEventWithVenues(e Event, venues []EventVenueView) *EventWithVenues {
	if venues == nil {
		venues = []EventVenueView{}
	}
	return &EventWithVenues{
		Event:        e,
		Venues:       venues,
		PrimaryVenue: PrimaryVenue(venues),
	}
}

// EventFilter narrows ListEvents. Blank fields do not filter.
// Search is a case-insensitive substring of name or description; Sport is an exact match.
type EventFilter struct {
	Search  string
	Sport   string
	OwnerID string
}

// Normalized returns the filter with surrounding whitespace removed.
func (f EventFilter) Normalized() EventFilter {
	return EventFilter{
		Search:  strings.TrimSpace(f.Search),
		Sport:   strings.TrimSpace(f.Sport),
		OwnerID: strings.TrimSpace(f.OwnerID),
	}
}

// EventRepository defines the interface for event storage.
// Create and Update write the event row and its venue links in one transaction.
// Update replaces the links only when replaceVenues is true; an empty links slice then removes them all.
type EventRepository interface {
	Create(ctx context.Context, event *Event, links []EventVenue) error
	GetByID(ctx context.Context, id string) (*EventWithVenues, error)
	List(ctx context.Context, filter EventFilter) ([]*EventWithVenues, error)
	Update(ctx context.Context, id string, patch EventPatch, links []EventVenue, replaceVenues bool) (*Event, error)
	Delete(ctx context.Context, id string) ([]*Event, error)
}

// EventService defines the business logic for events.
// A nil venueIDs in UpdateEvent keeps the current venues; a non-nil slice replaces them.
type EventService interface {
	CreateEvent(ctx context.Context, ownerID string, in EventInput, venueIDs []string) (*Event, error)
	ListEvents(ctx context.Context, filter EventFilter) ([]*EventWithVenues, error)
	GetEventByID(ctx context.Context, id string) (*EventWithVenues, error)
	UpdateEvent(ctx context.Context, id, ownerID string, patch EventPatch, venueIDs *[]string) (*Event, error)
	DeleteEvent(ctx context.Context, id, ownerID string) ([]*Event, error)
}
