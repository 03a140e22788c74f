package domain

import (
	"context"
	"strings"
	"time"
)

// Venue is a place where sports events are held.
// swagger:model Venue
type Venue struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Address     string    `json:"address"`
	City        string    `json:"city"`
	State       *string   `json:"state"`
	Capacity    *int      `json:"capacity"`
	Description *string   `json:"description"`
	CreatedBy   string    `json:"created_by"`
	CreatedAt   time.Time `json:"created_at"`
}

// VenueInput holds the caller-supplied fields of a new venue.
type VenueInput struct {
	Name        string
	Address     string
	City        string
	State       *string
	Capacity    *int
	Description *string
}

// Validate returns a ValidationError listing every rule the input breaks.
func (in VenueInput) Validate() error {
	var errs []string
	if strings.TrimSpace(in.Name) == "" {
		errs = append(errs, "name is required")
	}
	if strings.TrimSpace(in.Address) == "" {
		errs = append(errs, "address is required")
	}
	if strings.TrimSpace(in.City) == "" {
		errs = append(errs, "city is required")
	}
	if in.Capacity != nil && *in.Capacity < 0 {
		errs = append(errs, "capacity must be non-negative")
	}
	return NewValidationError(errs)
}

// VenuePatch is a partial venue update. Nil fields are left unchanged.
type VenuePatch struct {
	Name        *string
	Address     *string
	City        *string
	State       *string
	Capacity    *int
	Description *string
}

// Validate rejects patches that would blank a required field.
func (p VenuePatch) Validate() error {
	var errs []string
	if p.Name != nil && strings.TrimSpace(*p.Name) == "" {
		errs = append(errs, "name cannot be empty")
	}
	if p.Address != nil && strings.TrimSpace(*p.Address) == "" {
		errs = append(errs, "address cannot be empty")
	}
	if p.City != nil && strings.TrimSpace(*p.City) == "" {
		errs = append(errs, "city cannot be empty")
	}
	if p.Capacity != nil && *p.Capacity < 0 {
		errs = append(errs, "capacity must be non-negative")
	}
	return NewValidationError(errs)
}

// IsEmpty reports whether the patch changes nothing.
func (p VenuePatch) IsEmpty() bool {
	return p.Name == nil && p.Address == nil && p.City == nil &&
		p.State == nil && p.Capacity == nil && p.Description == nil
}

// VenueFilter narrows ListVenues. Blank fields do not filter.
// Search matches name, address or description; City is a substring match.
// Both are case-insensitive. OwnerID restricts to venues created by that user.
type VenueFilter struct {
	Search  string
	City    string
	OwnerID string
}

// Normalized returns the filter with surrounding whitespace removed.
func (f VenueFilter) Normalized() VenueFilter {
	return VenueFilter{
		Search:  strings.TrimSpace(f.Search),
		City:    strings.TrimSpace(f.City),
		OwnerID: strings.TrimSpace(f.OwnerID),
	}
}

// VenueRepository defines the interface for venue storage.
type VenueRepository interface {
	Create(ctx context.Context, venue *Venue) error
	GetByID(ctx context.Context, id string) (*Venue, error)
	List(ctx context.Context, filter VenueFilter) ([]*Venue, error)
	Update(ctx context.Context, id string, patch VenuePatch) (*Venue, error)
	Delete(ctx context.Context, id string) ([]*Venue, error)
}

// VenueService defines the business logic for venues.
type VenueService interface {
	CreateVenue(ctx context.Context, ownerID string, in VenueInput) (*Venue, error)
	ListVenues(ctx context.Context, filter VenueFilter) ([]*Venue, error)
	GetVenueByID(ctx context.Context, id string) (*Venue, error)
	UpdateVenue(ctx context.Context, id, ownerID string, patch VenuePatch) (*Venue, error)
	DeleteVenue(ctx context.Context, id, ownerID string) ([]*Venue, error)
}
