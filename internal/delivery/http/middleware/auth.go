package middleware

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	h "sportshub/internal/delivery/http/helpers"
	"sportshub/internal/domain"
)

type userIDKey struct{}

var (
	errNoAuthHeader     = errors.New("missing authorization header")
	errBadAuthScheme    = errors.New("authorization must use the Bearer scheme")
	errEmptyBearerToken = errors.New("missing token")
)

// SetUserID returns a context carrying the signed-in user's id.
func SetUserID(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, userIDKey{}, userID)
}

// UserIDFromContext returns the signed-in user's id. ok is false for anonymous requests.
func UserIDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(userIDKey{}).(string)
	return id, ok && id != ""
}

// bearerToken extracts the token from an "Authorization: Bearer <token>" header.
// The scheme is matched case-insensitively.
func bearerToken(header string) (string, error) {
	header = strings.TrimSpace(header)
	if header == "" {
		return "", errNoAuthHeader
	}
	scheme, token, found := strings.Cut(header, " ")
	if !found && strings.EqualFold(scheme, "bearer") {
		return "", errEmptyBearerToken
	}
	if !strings.EqualFold(scheme, "bearer") {
		return "", errBadAuthScheme
	}
	token = strings.TrimSpace(token)
	if token == "" {
		return "", errEmptyBearerToken
	}
	return token, nil
}

// RequireAuth rejects requests without a valid bearer token with 401.
// Accepted requests reach next with the user id in their context.
func RequireAuth(verifier domain.TokenVerifier, logger *slog.Logger) func(http.HandlerFunc) http.HandlerFunc {
	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			token, err := bearerToken(r.Header.Get("Authorization"))
			if err != nil {
				h.WriteJSONError(w, http.StatusUnauthorized, h.ErrCodeUnauthorized, err.Error())
				return
			}
			userID, err := verifier.Verify(token)
			if err != nil {
				logger.DebugContext(r.Context(), "token rejected", "path", r.URL.Path, "err", err)
				h.WriteJSONError(w, http.StatusUnauthorized, h.ErrCodeUnauthorized, "invalid or expired token")
				return
			}
			next(w, r.WithContext(SetUserID(r.Context(), userID)))
		}
	}
}
