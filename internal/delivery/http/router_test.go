package http

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"sportshub/internal/delivery/http/controllers"
	"sportshub/internal/delivery/http/helpers"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testLogger = slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError}))

type okPinger struct{}

func (okPinger) PingContext(context.Context) error { return nil }

type staticVerifier struct{}

func (staticVerifier) Verify(token string) (string, error) {
	if token != "good" {
		return "", errors.New("invalid token")
	}
	return "user-1", nil
}

func newTestHandler() http.Handler {
	c := Controllers{
		Auth:   controllers.NewAuthController(testLogger, nil),
		Venue:  controllers.NewVenueController(testLogger, nil),
		Event:  controllers.NewEventController(testLogger, nil),
		Meta:   controllers.NewMetaController(testLogger, map[string]controllers.Pinger{"postgres": okPinger{}}),
		Tokens: staticVerifier{},
	}
	return NewHandler(c, testLogger, []string{"http://localhost:3000"})
}

func TestRouter(t *testing.T) {
	handler := newTestHandler()

	tests := []struct {
		name       string
		method     string
		path       string
		token      string
		wantStatus int
		wantCode   string
	}{
		{name: "health is public", method: http.MethodGet, path: "/health", wantStatus: http.StatusOK},
		{name: "sports is public", method: http.MethodGet, path: "/sports", wantStatus: http.StatusOK},
		{name: "metrics is public", method: http.MethodGet, path: "/metrics", wantStatus: http.StatusOK},
		{name: "venues need a token", method: http.MethodGet, path: "/venues", wantStatus: http.StatusUnauthorized, wantCode: helpers.ErrCodeUnauthorized},
		{name: "events need a valid token", method: http.MethodPost, path: "/events", token: "bad", wantStatus: http.StatusUnauthorized, wantCode: helpers.ErrCodeUnauthorized},
		{name: "me needs a token", method: http.MethodGet, path: "/auth/me", wantStatus: http.StatusUnauthorized, wantCode: helpers.ErrCodeUnauthorized},
		{name: "venue id is checked", method: http.MethodGet, path: "/venues/123", token: "good", wantStatus: http.StatusBadRequest, wantCode: helpers.ErrCodeBadRequest},
		{name: "event id is checked", method: http.MethodDelete, path: "/events/abc", token: "good", wantStatus: http.StatusBadRequest, wantCode: helpers.ErrCodeBadRequest},
		{name: "unsupported method", method: http.MethodPut, path: "/venues", wantStatus: http.StatusMethodNotAllowed},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.path, nil)
			if tt.token != "" {
				req.Header.Set("Authorization", "Bearer "+tt.token)
			}
			rr := httptest.NewRecorder()
			handler.ServeHTTP(rr, req)

			require.Equal(t, tt.wantStatus, rr.Code, rr.Body.String())
			if tt.wantCode != "" {
				var envelope helpers.APIResponse
				require.NoError(t, json.NewDecoder(rr.Body).Decode(&envelope))
				require.NotNil(t, envelope.Error)
				assert.Equal(t, tt.wantCode, envelope.Error.Code)
			}
		})
	}
}

func TestRouter_CORSPreflight(t *testing.T) {
	req := httptest.NewRequest(http.MethodOptions, "/venues", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	rr := httptest.NewRecorder()
	newTestHandler().ServeHTTP(rr, req)

	assert.Equal(t, http.StatusNoContent, rr.Code)
	assert.Equal(t, "http://localhost:3000", rr.Header().Get("Access-Control-Allow-Origin"))
}
