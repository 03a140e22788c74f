package controllers

import (
	"log/slog"
	"net/http"
	"strconv"

	"sportshub/internal/delivery/http/helpers"
	"sportshub/internal/delivery/http/middleware"
	"sportshub/internal/domain"
)

// CreateVenueRequest is the request body for POST /venues.
type CreateVenueRequest struct {
	Name        string  `json:"name" validate:"required,max=200"`
	Address     string  `json:"address" validate:"required,max=500"`
	City        string  `json:"city" validate:"required,max=100"`
	State       *string `json:"state" validate:"omitempty,max=100"`
	Capacity    *int    `json:"capacity" validate:"omitempty,gte=0"`
	Description *string `json:"description"`
}

// UpdateVenueRequest is the request body for PATCH /venues/{venueID}. All fields optional; omitted fields are unchanged.
type UpdateVenueRequest struct {
	Name        *string `json:"name" validate:"omitempty,max=200"`
	Address     *string `json:"address" validate:"omitempty,max=500"`
	City        *string `json:"city" validate:"omitempty,max=100"`
	State       *string `json:"state" validate:"omitempty,max=100"`
	Capacity    *int    `json:"capacity" validate:"omitempty,gte=0"`
	Description *string `json:"description"`
}

// VenueSuccessResponse is the success response envelope for a single venue.
type VenueSuccessResponse struct {
	Success bool              `json:"success"`
	Data    *domain.Venue     `json:"data"`
	Error   *helpers.APIError `json:"error"`
}

// VenueListSuccessResponse is the success response envelope for venue lists.
type VenueListSuccessResponse struct {
	Success bool              `json:"success"`
	Data    []*domain.Venue   `json:"data"`
	Error   *helpers.APIError `json:"error"`
}

type VenueController struct {
	Logger  *slog.Logger
	Service domain.VenueService
}

func NewVenueController(logger *slog.Logger, svc domain.VenueService) *VenueController {
	return &VenueController{
		Logger:  logger,
		Service: svc,
	}
}

// CreateVenue godoc
// @Summary Create a venue
// @Description Creates a venue owned by the authenticated user. id and created_at are server-generated.
// @Tags venues
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body CreateVenueRequest true "Venue data"
// @Success 201 {object} controllers.VenueSuccessResponse "data contains the created venue"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /venues [post]
func (c *VenueController) CreateVenue(w http.ResponseWriter, r *http.Request) {
	var req CreateVenueRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	venue, err := c.Service.CreateVenue(r.Context(), userID, domain.VenueInput{
		Name:        req.Name,
		Address:     req.Address,
		City:        req.City,
		State:       req.State,
		Capacity:    req.Capacity,
		Description: req.Description,
	})
	if err != nil {
		writeServiceError(w, r, c.Logger, "venue", err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, venue)
}

// ListVenues godoc
// @Summary List venues
// @Description Lists venues newest first. search matches name, address or description; city is a substring match; both are case-insensitive. mine=true limits the list to the caller's venues.
// @Tags venues
// @Produce json
// @Security BearerAuth
// @Param search query string false "Text search"
// @Param city query string false "City filter"
// @Param mine query bool false "Only venues created by the caller"
// @Success 200 {object} controllers.VenueListSuccessResponse "data contains the venues"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /venues [get]
func (c *VenueController) ListVenues(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	q := r.URL.Query()
	filter := domain.VenueFilter{Search: q.Get("search"), City: q.Get("city")}
	mine, ok := parseMine(w, r)
	if !ok {
		return
	}
	if mine {
		filter.OwnerID = userID
	}
	venues, err := c.Service.ListVenues(r.Context(), filter)
	if err != nil {
		writeServiceError(w, r, c.Logger, "venue", err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, venues)
}

// GetVenueByID godoc
// @Summary Get a venue by ID
// @Tags venues
// @Produce json
// @Security BearerAuth
// @Param venueID path string true "Venue ID (UUID)"
// @Success 200 {object} controllers.VenueSuccessResponse "data contains the venue"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /venues/{venueID} [get]
func (c *VenueController) GetVenueByID(w http.ResponseWriter, r *http.Request) {
	venueID, ok := pathID(w, r, "venueID")
	if !ok {
		return
	}
	if _, ok := middleware.UserIDFromContext(r.Context()); !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	venue, err := c.Service.GetVenueByID(r.Context(), venueID)
	if err != nil {
		writeServiceError(w, r, c.Logger, "venue", err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, venue)
}

// UpdateVenue godoc
// @Summary Update a venue
// @Description Partial update; omitted fields are unchanged. Only the venue owner can update.
// @Tags venues
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param venueID path string true "Venue ID (UUID)"
// @Param body body UpdateVenueRequest true "Fields to update (all optional)"
// @Success 200 {object} controllers.VenueSuccessResponse "data contains the updated venue"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden (not owner)"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /venues/{venueID} [patch]
func (c *VenueController) UpdateVenue(w http.ResponseWriter, r *http.Request) {
	venueID, ok := pathID(w, r, "venueID")
	if !ok {
		return
	}
	var req UpdateVenueRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	ownerID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	venue, err := c.Service.UpdateVenue(r.Context(), venueID, ownerID, domain.VenuePatch{
		Name:        req.Name,
		Address:     req.Address,
		City:        req.City,
		State:       req.State,
		Capacity:    req.Capacity,
		Description: req.Description,
	})
	if err != nil {
		writeServiceError(w, r, c.Logger, "venue", err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, venue)
}

// DeleteVenue godoc
// @Summary Delete a venue
// @Description Deletes the venue and detaches it from every event. Only the venue owner can delete. data contains the removed rows.
// @Tags venues
// @Produce json
// @Security BearerAuth
// @Param venueID path string true "Venue ID (UUID)"
// @Success 200 {object} controllers.VenueListSuccessResponse "data contains the deleted venue"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden (not owner)"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /venues/{venueID} [delete]
func (c *VenueController) DeleteVenue(w http.ResponseWriter, r *http.Request) {
	venueID, ok := pathID(w, r, "venueID")
	if !ok {
		return
	}
	ownerID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	removed, err := c.Service.DeleteVenue(r.Context(), venueID, ownerID)
	if err != nil {
		writeServiceError(w, r, c.Logger, "venue", err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, removed)
}

// parseMine reads the optional mine query flag. It writes a 400 and returns false when the value is not a boolean.
func parseMine(w http.ResponseWriter, r *http.Request) (bool, bool) {
	raw := r.URL.Query().Get("mine")
	if raw == "" {
		return false, true
	}
	mine, err := strconv.ParseBool(raw)
	if err != nil {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "mine must be true or false")
		return false, false
	}
	return mine, true
}
