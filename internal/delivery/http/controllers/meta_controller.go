package controllers

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"sportshub/internal/delivery/http/helpers"
	"sportshub/internal/domain"
)

// Pinger is satisfied by *sql.DB and the redis view cache.
type Pinger interface {
	PingContext(ctx context.Context) error
}

// HealthResponse is the data of GET /health.
type HealthResponse struct {
	Status   string            `json:"status"`
	Services map[string]string `json:"services"`
}

type MetaController struct {
	Logger  *slog.Logger
	Checks  map[string]Pinger
	Timeout time.Duration
}

// NewMetaController serves health and reference data. checks maps a dependency name to its pinger.
func NewMetaController(logger *slog.Logger, checks map[string]Pinger) *MetaController {
	return &MetaController{
		Logger:  logger,
		Checks:  checks,
		Timeout: 2 * time.Second,
	}
}

// Health godoc
// @Summary Health check
// @Description Pings the database and, when configured, the cache. Returns 503 when any dependency is down.
// @Tags meta
// @Produce json
// @Success 200 {object} helpers.APIResponse "data contains status and per-service state"
// @Failure 503 {object} helpers.APIResponse "error.code: internal_error"
// @Router /health [get]
func (c *MetaController) Health(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), c.Timeout)
	defer cancel()

	resp := HealthResponse{Status: "ok", Services: make(map[string]string, len(c.Checks))}
	for name, p := range c.Checks {
		if err := p.PingContext(ctx); err != nil {
			c.Logger.WarnContext(ctx, "health check failed", "service", name, "err", err)
			resp.Services[name] = "down"
			resp.Status = "degraded"
			continue
		}
		resp.Services[name] = "up"
	}
	if resp.Status != "ok" {
		helpers.WriteJSONError(w, http.StatusServiceUnavailable, helpers.ErrCodeInternalError, "one or more services are down")
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, resp)
}

// ListSports godoc
// @Summary Sport types
// @Description The sport types offered by the event form. Events may also use other free-text values.
// @Tags meta
// @Produce json
// @Success 200 {object} helpers.APIResponse "data contains the sport names"
// @Router /sports [get]
func (c *MetaController) ListSports(w http.ResponseWriter, r *http.Request) {
	helpers.WriteJSONSuccess(w, http.StatusOK, domain.Sports)
}
