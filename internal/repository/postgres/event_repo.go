package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"sportshub/internal/domain"
)

const eventColumns = `id, name, description, start_date, end_date, sport_type, created_by, created_at`

// eventWithVenuesSelect yields one row per (event, venue) pair; events without venues get NULL venue columns.
const eventWithVenuesSelect = `
	SELECT e.id, e.name, e.description, e.start_date, e.end_date, e.sport_type, e.created_by, e.created_at,
	       v.id, v.name, v.address, v.city, v.state, ev.is_primary
	FROM events e
	LEFT JOIN event_venues ev ON ev.event_id = e.id
	LEFT JOIN venues v ON v.id = ev.venue_id
`

type eventRepository struct {
	DB *sql.DB
}

// NewEventRepository returns a domain.EventRepository implemented with Postgres.
func NewEventRepository(db *sql.DB) domain.EventRepository {
	return &eventRepository{
		DB: db,
	}
}

func scanEvent(s rowScanner) (*domain.Event, error) {
	e := &domain.Event{}
	var desc sql.NullString
	var end sql.NullTime
	if err := s.Scan(&e.ID, &e.Name, &desc, &e.StartDate, &end, &e.SportType, &e.CreatedBy, &e.CreatedAt); err != nil {
		return nil, err
	}
	e.Description = nullStringPtr(desc)
	e.EndDate = nullTimePtr(end)
	return e, nil
}

func (r *eventRepository) Create(ctx context.Context, e *domain.Event, links []domain.EventVenue) error {
	query := `
		INSERT INTO events (name, description, start_date, end_date, sport_type, created_by)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at
	`
	return withTx(ctx, r.DB, func(tx *sql.Tx) error {
		err := tx.QueryRowContext(ctx, query, e.Name, e.Description, e.StartDate, e.EndDate, e.SportType, e.CreatedBy).
			Scan(&e.ID, &e.CreatedAt)
		if err != nil {
			return mapError(err)
		}
		if err := insertEventVenues(ctx, tx, e.ID, links); err != nil {
			return fmt.Errorf("add event venues: %w", err)
		}
		return nil
	})
}

func (r *eventRepository) GetByID(ctx context.Context, id string) (*domain.EventWithVenues, error) {
	query := eventWithVenuesSelect + `
		WHERE e.id = $1
		ORDER BY ev.position ASC
	`
	rows, err := r.DB.QueryContext(ctx, query, id)
	if err != nil {
		return nil, mapError(err)
	}
	defer rows.Close()
	events, err := collectEventsWithVenues(rows)
	if err != nil {
		return nil, err
	}
	if len(events) == 0 {
		return nil, domain.ErrNotFound
	}
	return events[0], nil
}

func (r *eventRepository) List(ctx context.Context, filter domain.EventFilter) ([]*domain.EventWithVenues, error) {
	filter = filter.Normalized()
	var where whereBuilder
	if filter.Search != "" {
		where.add(`(e.name ILIKE ? OR e.description ILIKE ?)`, containsPattern(filter.Search))
	}
	if filter.Sport != "" {
		where.add(`e.sport_type = ?`, filter.Sport)
	}
	if filter.OwnerID != "" {
		where.add(`e.created_by = ?`, filter.OwnerID)
	}
	query := eventWithVenuesSelect + where.clause() + `
		ORDER BY e.start_date ASC, e.id, ev.position ASC
	`
	rows, err := r.DB.QueryContext(ctx, query, where.args...)
	if err != nil {
		return nil, mapError(err)
	}
	defer rows.Close()
	return collectEventsWithVenues(rows)
}

// collectEventsWithVenues folds joined rows into events, preserving row order.
func collectEventsWithVenues(rows *sql.Rows) ([]*domain.EventWithVenues, error) {
	type acc struct {
		event  domain.Event
		venues []domain.EventVenueView
	}
	var order []*acc
	byID := make(map[string]*acc)
	for rows.Next() {
		var e domain.Event
		var desc sql.NullString
		var end sql.NullTime
		var vID, vName, vAddress, vCity, vState sql.NullString
		var isPrimary sql.NullBool
		if err := rows.Scan(
			&e.ID, &e.Name, &desc, &e.StartDate, &end, &e.SportType, &e.CreatedBy, &e.CreatedAt,
			&vID, &vName, &vAddress, &vCity, &vState, &isPrimary,
		); err != nil {
			return nil, err
		}
		a, ok := byID[e.ID]
		if !ok {
			e.Description = nullStringPtr(desc)
			e.EndDate = nullTimePtr(end)
			a = &acc{event: e}
			byID[e.ID] = a
			order = append(order, a)
		}
		if vID.Valid {
			a.venues = append(a.venues, domain.EventVenueView{
				VenueSummary: domain.VenueSummary{
					ID:      vID.String,
					Name:    vName.String,
					Address: vAddress.String,
					City:    vCity.String,
					State:   nullStringPtr(vState),
				},
				IsPrimary: isPrimary.Valid && isPrimary.Bool,
			})
		}
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	events := make([]*domain.EventWithVenues, 0, len(order))
	for _, a := range order {
		events = append(events, domain.NewEventWithVenues(a.event, a.venues))
	}
	return events, nil
}

func (r *eventRepository) Update(ctx context.Context, id string, patch domain.EventPatch, links []domain.EventVenue, replaceVenues bool) (*domain.Event, error) {
	setClauses := []string{}
	args := []any{}
	n := 1
	set := func(column string, value any) {
		setClauses = append(setClauses, fmt.Sprintf("%s = $%d", column, n))
		args = append(args, value)
		n++
	}
	if patch.Name != nil {
		set("name", *patch.Name)
	}
	if patch.Description != nil {
		set("description", *patch.Description)
	}
	if patch.StartDate != nil {
		set("start_date", *patch.StartDate)
	}
	if patch.EndDate != nil {
		set("end_date", *patch.EndDate)
	}
	if patch.SportType != nil {
		set("sport_type", *patch.SportType)
	}
	args = append(args, id)
	var query string
	if n == 1 {
		query = `SELECT ` + eventColumns + ` FROM events WHERE id = $1 FOR UPDATE`
	} else {
		query = fmt.Sprintf(`
			UPDATE events SET %s
			WHERE id = $%d
			RETURNING %s
		`, strings.Join(setClauses, ", "), n, eventColumns)
	}

	var updated *domain.Event
	err := withTx(ctx, r.DB, func(tx *sql.Tx) error {
		e, err := scanEvent(tx.QueryRowContext(ctx, query, args...))
		if err != nil {
			return mapError(err)
		}
		if replaceVenues {
			if err := deleteEventVenues(ctx, tx, id); err != nil {
				return fmt.Errorf("clear event venues: %w", err)
			}
			if err := insertEventVenues(ctx, tx, id, links); err != nil {
				return fmt.Errorf("add event venues: %w", err)
			}
		}
		updated = e
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func (r *eventRepository) Delete(ctx context.Context, id string) ([]*domain.Event, error) {
	query := `DELETE FROM events WHERE id = $1 RETURNING ` + eventColumns
	rows, err := r.DB.QueryContext(ctx, query, id)
	if err != nil {
		return nil, mapError(err)
	}
	defer rows.Close()
	removed := make([]*domain.Event, 0, 1)
	for rows.Next() {
		e, err := scanEvent(rows)
		if err != nil {
			return nil, err
		}
		removed = append(removed, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(removed) == 0 {
		return nil, domain.ErrNotFound
	}
	return removed, nil
}
