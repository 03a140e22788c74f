package domain

import "strings"

// EventVenue links an event to one of its venues. Position keeps the selection order.
type EventVenue struct {
	EventID   string `json:"event_id"`
	VenueID   string `json:"venue_id"`
	IsPrimary bool   `json:"is_primary"`
	Position  int    `json:"position"`
}

// OrderVenueIDs merges a primary venue selection with the remaining selected venues.
// The primary id comes first, the others follow in their original order; blanks and
// repeats (including the primary listed again among the others) are dropped.
func OrderVenueIDs(primaryID string, otherIDs []string) []string {
	primaryID = strings.TrimSpace(primaryID)
	ids := make([]string, 0, len(otherIDs)+1)
	if primaryID != "" {
		ids = append(ids, primaryID)
	}
	for _, id := range otherIDs {
		if id = strings.TrimSpace(id); id != primaryID {
			ids = append(ids, id)
		}
	}
	return UniqueVenueIDs(ids)
}

// UniqueVenueIDs returns ids without blanks and without repeats, keeping first occurrences.
func UniqueVenueIDs(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		id = strings.TrimSpace(id)
		if id == "" {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

// BuildEventVenues returns the rows to persist for eventID. The first venue is the
// primary one. An empty selection yields an empty, non-nil slice: the event has no venue yet.
func BuildEventVenues(eventID string, venueIDs []string) []EventVenue {
	ids := UniqueVenueIDs(venueIDs)
	links := make([]EventVenue, len(ids))
	for i, id := range ids {
		links[i] = EventVenue{
			EventID:   eventID,
			VenueID:   id,
			IsPrimary: i == 0,
			Position:  i,
		}
	}
	return links
}

// PrimaryVenue returns the venue flagged primary, or nil when none is.
func PrimaryVenue(venues []EventVenueView) *VenueSummary {
	for i := range venues {
		if venues[i].IsPrimary {
			v := venues[i].VenueSummary
			return &v
		}
	}
	return nil
}
