package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"sportshub/internal/delivery/http/helpers"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubVerifier accepts exactly one token.
type stubVerifier struct {
	token  string
	userID string
	seen   []string
}

func (s *stubVerifier) Verify(token string) (string, error) {
	s.seen = append(s.seen, token)
	if token != s.token {
		return "", errors.New("signature is invalid")
	}
	return s.userID, nil
}

func TestBearerToken(t *testing.T) {
	tests := []struct {
		header  string
		want    string
		wantErr error
	}{
		{"Bearer abc.def", "abc.def", nil},
		{"bearer   abc.def  ", "abc.def", nil},
		{"BEARER abc", "abc", nil},
		{"", "", errNoAuthHeader},
		{"   ", "", errNoAuthHeader},
		{"Bearer", "", errEmptyBearerToken},
		{"Bearer    ", "", errEmptyBearerToken},
		{"Basic dXNlcjpwdw==", "", errBadAuthScheme},
		{"Token abc", "", errBadAuthScheme},
	}
	for _, tt := range tests {
		t.Run(tt.header, func(t *testing.T) {
			got, err := bearerToken(tt.header)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRequireAuth(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	tests := []struct {
		name        string
		header      string
		wantStatus  int
		wantMessage string
		wantUserID  string
	}{
		{name: "valid token", header: "Bearer season-pass", wantStatus: http.StatusOK, wantUserID: "fan-7"},
		{name: "no header", wantStatus: http.StatusUnauthorized, wantMessage: "missing authorization header"},
		{name: "basic auth", header: "Basic Zm9vOmJhcg==", wantStatus: http.StatusUnauthorized, wantMessage: "authorization must use the Bearer scheme"},
		{name: "empty bearer", header: "Bearer ", wantStatus: http.StatusUnauthorized, wantMessage: "missing token"},
		{name: "rejected token", header: "Bearer forged", wantStatus: http.StatusUnauthorized, wantMessage: "invalid or expired token"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			verifier := &stubVerifier{token: "season-pass", userID: "fan-7"}
			var gotUserID string
			handler := RequireAuth(verifier, logger)(func(w http.ResponseWriter, r *http.Request) {
				gotUserID, _ = UserIDFromContext(r.Context())
				w.WriteHeader(http.StatusOK)
			})

			req := httptest.NewRequest(http.MethodGet, "/auth/me", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rr := httptest.NewRecorder()
			handler(rr, req)

			require.Equal(t, tt.wantStatus, rr.Code)
			assert.Equal(t, tt.wantUserID, gotUserID)
			if tt.wantMessage == "" {
				return
			}
			var envelope helpers.APIResponse
			require.NoError(t, json.NewDecoder(rr.Body).Decode(&envelope))
			assert.False(t, envelope.Success)
			require.NotNil(t, envelope.Error)
			assert.Equal(t, helpers.ErrCodeUnauthorized, envelope.Error.Code)
			assert.Equal(t, tt.wantMessage, envelope.Error.Message)
		})
	}
}

func TestUserIDFromContext(t *testing.T) {
	_, ok := UserIDFromContext(context.Background())
	assert.False(t, ok)

	_, ok = UserIDFromContext(SetUserID(context.Background(), ""))
	assert.False(t, ok, "blank id counts as anonymous")

	id, ok := UserIDFromContext(SetUserID(context.Background(), "fan-7"))
	assert.True(t, ok)
	assert.Equal(t, "fan-7", id)
}
