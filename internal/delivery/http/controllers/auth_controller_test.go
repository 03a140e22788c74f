package controllers

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"sportshub/internal/delivery/http/helpers"
	"sportshub/internal/delivery/http/middleware"
	"sportshub/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeAuthService implements domain.AuthService for handler tests.
type fakeAuthService struct {
	signUpErr error
	loginErr  error
	getErr    error
	lastEmail string
	lastName  string
}

func (f *fakeAuthService) SignUp(ctx context.Context, email, password, name string) (*domain.User, error) {
	f.lastEmail, f.lastName = email, name
	if f.signUpErr != nil {
		return nil, f.signUpErr
	}
	return &domain.User{ID: "user-1", Email: email, Name: name, PasswordHash: "secret-hash"}, nil
}

func (f *fakeAuthService) Login(ctx context.Context, email, password string) (string, *domain.User, error) {
	f.lastEmail = email
	if f.loginErr != nil {
		return "", nil, f.loginErr
	}
	return "jwt-token", &domain.User{ID: "user-1", Email: email}, nil
}

func (f *fakeAuthService) GetByID(ctx context.Context, id string) (*domain.User, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	return &domain.User{ID: id, Email: "coach@example.com"}, nil
}

func TestAuthController_SignUp(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		fakeErr    error
		wantStatus int
		wantCode   string
	}{
		{name: "success", body: `{"email":"Coach@Example.com","password":"correct-horse","name":"Coach"}`, wantStatus: http.StatusCreated},
		{name: "invalid email", body: `{"email":"coach","password":"correct-horse"}`, wantStatus: http.StatusBadRequest, wantCode: helpers.ErrCodeBadRequest},
		{name: "short password", body: `{"email":"coach@example.com","password":"short"}`, wantStatus: http.StatusBadRequest, wantCode: helpers.ErrCodeBadRequest},
		{name: "duplicate email", body: `{"email":"coach@example.com","password":"correct-horse"}`, fakeErr: domain.ErrDuplicateEmail, wantStatus: http.StatusConflict, wantCode: helpers.ErrCodeConflict},
		{name: "service error", body: `{"email":"coach@example.com","password":"correct-horse"}`, fakeErr: errors.New("db error"), wantStatus: http.StatusInternalServerError, wantCode: helpers.ErrCodeInternalError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fake := &fakeAuthService{signUpErr: tt.fakeErr}
			ctrl := NewAuthController(testLogger, fake)
			req := httptest.NewRequest(http.MethodPost, "/auth/signup", bytes.NewBufferString(tt.body))
			rr := httptest.NewRecorder()

			ctrl.SignUp(rr, req)

			require.Equal(t, tt.wantStatus, rr.Code, rr.Body.String())
			if tt.wantStatus == http.StatusCreated {
				assert.NotContains(t, rr.Body.String(), "secret-hash")
				var user domain.User
				decodeEnvelope(t, rr, &user)
				assert.Equal(t, "coach@example.com", user.Email)
				assert.Equal(t, "coach@example.com", fake.lastEmail)
				return
			}
			envelope := decodeEnvelope(t, rr, nil)
			require.NotNil(t, envelope.Error)
			assert.Equal(t, tt.wantCode, envelope.Error.Code)
		})
	}
}

func TestAuthController_Login(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		fakeErr    error
		wantStatus int
	}{
		{name: "success", body: `{"email":"coach@example.com","password":"correct-horse"}`, wantStatus: http.StatusOK},
		{name: "missing password", body: `{"email":"coach@example.com"}`, wantStatus: http.StatusBadRequest},
		{name: "invalid credentials", body: `{"email":"coach@example.com","password":"wrong"}`, fakeErr: domain.ErrInvalidCredentials, wantStatus: http.StatusUnauthorized},
		{name: "service error", body: `{"email":"coach@example.com","password":"x"}`, fakeErr: errors.New("db error"), wantStatus: http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := NewAuthController(testLogger, &fakeAuthService{loginErr: tt.fakeErr})
			req := httptest.NewRequest(http.MethodPost, "/auth/login", bytes.NewBufferString(tt.body))
			rr := httptest.NewRecorder()

			ctrl.Login(rr, req)

			require.Equal(t, tt.wantStatus, rr.Code)
			if tt.wantStatus == http.StatusOK {
				var resp LoginResponse
				decodeEnvelope(t, rr, &resp)
				assert.Equal(t, "jwt-token", resp.Token)
				assert.Equal(t, "Bearer", resp.TokenType)
				require.NotNil(t, resp.User)
				assert.Equal(t, "user-1", resp.User.ID)
			}
		})
	}
}

func TestAuthController_Me(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		ctrl := NewAuthController(testLogger, &fakeAuthService{})
		req := httptest.NewRequest(http.MethodGet, "/auth/me", nil)
		req = req.WithContext(middleware.SetUserID(req.Context(), "user-123"))
		rr := httptest.NewRecorder()

		ctrl.Me(rr, req)

		require.Equal(t, http.StatusOK, rr.Code)
		var user domain.User
		decodeEnvelope(t, rr, &user)
		assert.Equal(t, "user-123", user.ID)
	})

	t.Run("unauthorized", func(t *testing.T) {
		ctrl := NewAuthController(testLogger, &fakeAuthService{})
		rr := httptest.NewRecorder()
		ctrl.Me(rr, httptest.NewRequest(http.MethodGet, "/auth/me", nil))
		require.Equal(t, http.StatusUnauthorized, rr.Code)
	})

	t.Run("deleted user", func(t *testing.T) {
		ctrl := NewAuthController(testLogger, &fakeAuthService{getErr: domain.ErrNotFound})
		req := httptest.NewRequest(http.MethodGet, "/auth/me", nil)
		req = req.WithContext(middleware.SetUserID(req.Context(), "user-123"))
		rr := httptest.NewRecorder()
		ctrl.Me(rr, req)
		require.Equal(t, http.StatusNotFound, rr.Code)
	})
}
