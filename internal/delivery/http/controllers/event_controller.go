package controllers

import (
	"log/slog"
	"net/http"
	"strings"

	"sportshub/internal/delivery/http/helpers"
	"sportshub/internal/delivery/http/middleware"
	"sportshub/internal/domain"

	"github.com/google/uuid"
)

const venueSelectionConflict = "use either venue_ids or primary_venue_id/other_venue_ids, not both"

// CreateEventRequest is the request body for POST /events.
// Venues are given either as venue_ids (first is primary) or as primary_venue_id plus other_venue_ids.
type CreateEventRequest struct {
	Name           string     `json:"name" validate:"required,max=200"`
	Description    *string    `json:"description"`
	StartDate      *eventTime `json:"start_date" validate:"required" swaggertype:"string" format:"date-time"`
	EndDate        *eventTime `json:"end_date" swaggertype:"string" format:"date-time"`
	SportType      string     `json:"sport_type" validate:"required,max=100"`
	VenueIDs       []string   `json:"venue_ids" validate:"omitempty,dive,uuid"`
	PrimaryVenueID string     `json:"primary_venue_id" validate:"omitempty,uuid"`
	OtherVenueIDs  []string   `json:"other_venue_ids" validate:"omitempty,dive,uuid"`
}

// Validate implements Validator.
func (c CreateEventRequest) Validate() []string {
	if c.VenueIDs != nil && (c.PrimaryVenueID != "" || c.OtherVenueIDs != nil) {
		return []string{venueSelectionConflict}
	}
	return nil
}

func (c CreateEventRequest) venueIDs() []string {
	if c.VenueIDs != nil {
		return c.VenueIDs
	}
	return domain.OrderVenueIDs(c.PrimaryVenueID, c.OtherVenueIDs)
}

// UpdateEventRequest is the request body for PATCH /events/{eventID}. All fields optional; omitted fields are unchanged.
// Sending any venue field replaces the event's venues; an empty venue_ids removes them all.
type UpdateEventRequest struct {
	Name           *string    `json:"name" validate:"omitempty,max=200"`
	Description    *string    `json:"description"`
	StartDate      *eventTime `json:"start_date" swaggertype:"string" format:"date-time"`
	EndDate        *eventTime `json:"end_date" swaggertype:"string" format:"date-time"`
	SportType      *string    `json:"sport_type" validate:"omitempty,max=100"`
	VenueIDs       *[]string  `json:"venue_ids" validate:"omitempty,dive,uuid"`
	PrimaryVenueID *string    `json:"primary_venue_id"`
	OtherVenueIDs  *[]string  `json:"other_venue_ids" validate:"omitempty,dive,uuid"`
}

// Validate implements Validator.
func (u UpdateEventRequest) Validate() []string {
	var errs []string
	if u.VenueIDs != nil && (u.PrimaryVenueID != nil || u.OtherVenueIDs != nil) {
		errs = append(errs, venueSelectionConflict)
	}
	if u.PrimaryVenueID != nil && *u.PrimaryVenueID != "" && uuid.Validate(*u.PrimaryVenueID) != nil {
		errs = append(errs, "primary_venue_id must be a UUID")
	}
	if u.StartDate != nil && u.StartDate.IsZero() {
		errs = append(errs, "start_date cannot be empty")
	}
	return errs
}

// venueIDs returns nil when the request leaves the venues untouched.
func (u UpdateEventRequest) venueIDs() *[]string {
	if u.VenueIDs != nil {
		return u.VenueIDs
	}
	if u.PrimaryVenueID == nil && u.OtherVenueIDs == nil {
		return nil
	}
	var primary string
	if u.PrimaryVenueID != nil {
		primary = *u.PrimaryVenueID
	}
	var others []string
	if u.OtherVenueIDs != nil {
		others = *u.OtherVenueIDs
	}
	ids := domain.OrderVenueIDs(primary, others)
	return &ids
}

// EventSuccessResponse is the success response envelope for a single event row.
type EventSuccessResponse struct {
	Success bool              `json:"success"`
	Data    *domain.Event     `json:"data"`
	Error   *helpers.APIError `json:"error"`
}

// EventDetailSuccessResponse is the success response envelope for GET /events/{eventID}.
type EventDetailSuccessResponse struct {
	Success bool                    `json:"success"`
	Data    *domain.EventWithVenues `json:"data"`
	Error   *helpers.APIError       `json:"error"`
}

// EventListSuccessResponse is the success response envelope for GET /events.
type EventListSuccessResponse struct {
	Success bool                      `json:"success"`
	Data    []*domain.EventWithVenues `json:"data"`
	Error   *helpers.APIError         `json:"error"`
}

// EventDeleteSuccessResponse is the success response envelope for DELETE /events/{eventID}.
type EventDeleteSuccessResponse struct {
	Success bool              `json:"success"`
	Data    []*domain.Event   `json:"data"`
	Error   *helpers.APIError `json:"error"`
}

type EventController struct {
	Logger  *slog.Logger
	Service domain.EventService
}

func NewEventController(logger *slog.Logger, svc domain.EventService) *EventController {
	return &EventController{
		Logger:  logger,
		Service: svc,
	}
}

// CreateEvent godoc
// @Summary Create an event
// @Description Creates an event owned by the authenticated user and links its venues. The first venue (or primary_venue_id) is the primary venue; repeated ids are stored once.
// @Tags events
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body CreateEventRequest true "Event data"
// @Success 201 {object} controllers.EventSuccessResponse "data contains the created event"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events [post]
func (c *EventController) CreateEvent(w http.ResponseWriter, r *http.Request) {
	var req CreateEventRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	in := domain.EventInput{
		Name:        req.Name,
		Description: req.Description,
		EndDate:     req.EndDate.ptr(),
		SportType:   req.SportType,
	}
	if req.StartDate != nil {
		in.StartDate = req.StartDate.Time
	}
	event, err := c.Service.CreateEvent(r.Context(), userID, in, req.venueIDs())
	if err != nil {
		writeServiceError(w, r, c.Logger, "event", err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, event)
}

// ListEvents godoc
// @Summary List events
// @Description Lists events by start date with their venues and primary venue. search matches name or description (case-insensitive); sport is an exact match; mine=true limits the list to the caller's events.
// @Tags events
// @Produce json
// @Security BearerAuth
// @Param search query string false "Text search"
// @Param sport query string false "Sport type"
// @Param mine query bool false "Only events created by the caller"
// @Success 200 {object} controllers.EventListSuccessResponse "data contains the events"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events [get]
func (c *EventController) ListEvents(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	q := r.URL.Query()
	filter := domain.EventFilter{Search: q.Get("search"), Sport: q.Get("sport")}
	// "all" is what the sport picker sends for no filter.
	if strings.EqualFold(strings.TrimSpace(filter.Sport), "all") {
		filter.Sport = ""
	}
	mine, ok := parseMine(w, r)
	if !ok {
		return
	}
	if mine {
		filter.OwnerID = userID
	}
	events, err := c.Service.ListEvents(r.Context(), filter)
	if err != nil {
		writeServiceError(w, r, c.Logger, "event", err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, events)
}

// GetEventByID godoc
// @Summary Get an event by ID
// @Description Returns the event with its venues (primary first) and primary_venue.
// @Tags events
// @Produce json
// @Security BearerAuth
// @Param eventID path string true "Event ID (UUID)"
// @Success 200 {object} controllers.EventDetailSuccessResponse "data contains the event and its venues"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/{eventID} [get]
func (c *EventController) GetEventByID(w http.ResponseWriter, r *http.Request) {
	eventID, ok := pathID(w, r, "eventID")
	if !ok {
		return
	}
	if _, ok := middleware.UserIDFromContext(r.Context()); !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	event, err := c.Service.GetEventByID(r.Context(), eventID)
	if err != nil {
		writeServiceError(w, r, c.Logger, "event", err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, event)
}

// UpdateEvent godoc
// @Summary Update an event
// @Description Partial update; omitted fields are unchanged. Any venue field replaces the venue set (venue_ids: [] removes all venues). Only the event owner can update.
// @Tags events
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param eventID path string true "Event ID (UUID)"
// @Param body body UpdateEventRequest true "Fields to update (all optional)"
// @Success 200 {object} controllers.EventSuccessResponse "data contains the updated event"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden (not owner)"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/{eventID} [patch]
func (c *EventController) UpdateEvent(w http.ResponseWriter, r *http.Request) {
	eventID, ok := pathID(w, r, "eventID")
	if !ok {
		return
	}
	var req UpdateEventRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	ownerID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	patch := domain.EventPatch{
		Name:        req.Name,
		Description: req.Description,
		StartDate:   req.StartDate.ptr(),
		EndDate:     req.EndDate.ptr(),
		SportType:   req.SportType,
	}
	event, err := c.Service.UpdateEvent(r.Context(), eventID, ownerID, patch, req.venueIDs())
	if err != nil {
		writeServiceError(w, r, c.Logger, "event", err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, event)
}

// DeleteEvent godoc
// @Summary Delete an event
// @Description Deletes the event and its venue links. Only the event owner can delete. data contains the removed rows.
// @Tags events
// @Produce json
// @Security BearerAuth
// @Param eventID path string true "Event ID (UUID)"
// @Success 200 {object} controllers.EventDeleteSuccessResponse "data contains the deleted event"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden (not owner)"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/{eventID} [delete]
func (c *EventController) DeleteEvent(w http.ResponseWriter, r *http.Request) {
	eventID, ok := pathID(w, r, "eventID")
	if !ok {
		return
	}
	ownerID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	removed, err := c.Service.DeleteEvent(r.Context(), eventID, ownerID)
	if err != nil {
		writeServiceError(w, r, c.Logger, "event", err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, removed)
}
