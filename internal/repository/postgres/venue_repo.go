package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"sportshub/internal/domain"
)

const venueColumns = `id, name, address, city, state, capacity, description, created_by, created_at`

type venueRepository struct {
	DB *sql.DB
}

// NewVenueRepository returns a domain.VenueRepository implemented with Postgres.
func NewVenueRepository(db *sql.DB) domain.VenueRepository {
	return &venueRepository{DB: db}
}

func scanVenue(s rowScanner) (*domain.Venue, error) {
	v := &domain.Venue{}
	var state, desc sql.NullString
	var capacity sql.NullInt64
	if err := s.Scan(&v.ID, &v.Name, &v.Address, &v.City, &state, &capacity, &desc, &v.CreatedBy, &v.CreatedAt); err != nil {
		return nil, err
	}
	v.State = nullStringPtr(state)
	v.Capacity = nullIntPtr(capacity)
	v.Description = nullStringPtr(desc)
	return v, nil
}

func (r *venueRepository) Create(ctx context.Context, v *domain.Venue) error {
	query := `
		INSERT INTO venues (name, address, city, state, capacity, description, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at
	`
	err := r.DB.QueryRowContext(ctx, query, v.Name, v.Address, v.City, v.State, v.Capacity, v.Description, v.CreatedBy).
		Scan(&v.ID, &v.CreatedAt)
	return mapError(err)
}

func (r *venueRepository) GetByID(ctx context.Context, id string) (*domain.Venue, error) {
	query := `SELECT ` + venueColumns + ` FROM venues WHERE id = $1`
	v, err := scanVenue(r.DB.QueryRowContext(ctx, query, id))
	if err != nil {
		return nil, mapError(err)
	}
	return v, nil
}

func (r *venueRepository) List(ctx context.Context, filter domain.VenueFilter) ([]*domain.Venue, error) {
	filter = filter.Normalized()
	var where whereBuilder
	if filter.Search != "" {
		where.add(`(name ILIKE ? OR address ILIKE ? OR description ILIKE ?)`, containsPattern(filter.Search))
	}
	if filter.City != "" {
		where.add(`city ILIKE ?`, containsPattern(filter.City))
	}
	if filter.OwnerID != "" {
		where.add(`created_by = ?`, filter.OwnerID)
	}
	query := fmt.Sprintf(`
		SELECT %s
		FROM venues
		%s
		ORDER BY created_at DESC
	`, venueColumns, where.clause())
	rows, err := r.DB.QueryContext(ctx, query, where.args...)
	if err != nil {
		return nil, mapError(err)
	}
	defer rows.Close()
	venues := make([]*domain.Venue, 0)
	for rows.Next() {
		v, err := scanVenue(rows)
		if err != nil {
			return nil, err
		}
		venues = append(venues, v)
	}
	return venues, rows.Err()
}

func (r *venueRepository) Update(ctx context.Context, id string, patch domain.VenuePatch) (*domain.Venue, error) {
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
	if patch.Address != nil {
		set("address", *patch.Address)
	}
	if patch.City != nil {
		set("city", *patch.City)
	}
	if patch.State != nil {
		set("state", *patch.State)
	}
	if patch.Capacity != nil {
		set("capacity", *patch.Capacity)
	}
	if patch.Description != nil {
		set("description", *patch.Description)
	}
	if n == 1 {
		// No fields to update; just fetch current row
		return r.GetByID(ctx, id)
	}
	args = append(args, id)
	query := fmt.Sprintf(`
		UPDATE venues SET %s
		WHERE id = $%d
		RETURNING %s
	`, strings.Join(setClauses, ", "), n, venueColumns)
	v, err := scanVenue(r.DB.QueryRowContext(ctx, query, args...))
	if err != nil {
		return nil, mapError(err)
	}
	return v, nil
}

func (r *venueRepository) Delete(ctx context.Context, id string) ([]*domain.Venue, error) {
	query := `DELETE FROM venues WHERE id = $1 RETURNING ` + venueColumns
	rows, err := r.DB.QueryContext(ctx, query, id)
	if err != nil {
		return nil, mapError(err)
	}
	defer rows.Close()
	removed := make([]*domain.Venue, 0, 1)
	for rows.Next() {
		v, err := scanVenue(rows)
		if err != nil {
			return nil, err
		}
		removed = append(removed, v)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(removed) == 0 {
		return nil, domain.ErrNotFound
	}
	return removed, nil
}
