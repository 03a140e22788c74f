package postgres

import (
	"context"
	"errors"

	"sportshub/internal/domain"

	"github.com/lib/pq"
)

// Event venue links are only written together with their event, inside the event's transaction.

func insertEventVenues(ctx context.Context, ex execer, eventID string, links []domain.EventVenue) error {
	query := `
		INSERT INTO event_venues (event_id, venue_id, is_primary, position)
		VALUES ($1, $2, $3, $4)
	`
	for i := range links {
		links[i].EventID = eventID
		if _, err := ex.ExecContext(ctx, query, eventID, links[i].VenueID, links[i].IsPrimary, links[i].Position); err != nil {
			return mapLinkError(err, links[i].VenueID)
		}
	}
	return nil
}

// mapLinkError reports a malformed venue id as a bad venue reference rather than a missing row.
func mapLinkError(err error, venueID string) error {
	var perr *pq.Error
	if errors.As(err, &perr) && perr.Code == pqInvalidTextRepr {
		return domain.NewValidationError([]string{"invalid venue id: " + venueID})
	}
	return mapError(err)
}

func deleteEventVenues(ctx context.Context, ex execer, eventID string) error {
	_, err := ex.ExecContext(ctx, `DELETE FROM event_venues WHERE event_id = $1`, eventID)
	return mapError(err)
}
