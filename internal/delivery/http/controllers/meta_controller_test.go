package controllers

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"sportshub/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakePinger struct{ err error }

func (f fakePinger) PingContext(ctx context.Context) error { return f.err }

func TestMetaController_Health(t *testing.T) {
	t.Run("all up", func(t *testing.T) {
		ctrl := NewMetaController(testLogger, map[string]Pinger{"postgres": fakePinger{}, "redis": fakePinger{}})
		rr := httptest.NewRecorder()
		ctrl.Health(rr, httptest.NewRequest(http.MethodGet, "/health", nil))

		require.Equal(t, http.StatusOK, rr.Code)
		var resp HealthResponse
		decodeEnvelope(t, rr, &resp)
		assert.Equal(t, "ok", resp.Status)
		assert.Equal(t, map[string]string{"postgres": "up", "redis": "up"}, resp.Services)
	})

	t.Run("database down", func(t *testing.T) {
		ctrl := NewMetaController(testLogger, map[string]Pinger{"postgres": fakePinger{err: errors.New("connection refused")}})
		rr := httptest.NewRecorder()
		ctrl.Health(rr, httptest.NewRequest(http.MethodGet, "/health", nil))

		require.Equal(t, http.StatusServiceUnavailable, rr.Code)
		envelope := decodeEnvelope(t, rr, nil)
		assert.False(t, envelope.Success)
	})
}

func TestMetaController_ListSports(t *testing.T) {
	ctrl := NewMetaController(testLogger, nil)
	rr := httptest.NewRecorder()
	ctrl.ListSports(rr, httptest.NewRequest(http.MethodGet, "/sports", nil))

	require.Equal(t, http.StatusOK, rr.Code)
	var sports []string
	decodeEnvelope(t, rr, &sports)
	assert.Equal(t, domain.Sports, sports)
	assert.Contains(t, sports, "Other")
}
