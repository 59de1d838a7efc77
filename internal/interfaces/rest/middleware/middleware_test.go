package middleware_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/DanielPopoola/shelter-api/internal/application"
	"github.com/DanielPopoola/shelter-api/internal/domain"
	"github.com/DanielPopoola/shelter-api/internal/interfaces/rest"
	"github.com/DanielPopoola/shelter-api/internal/interfaces/rest/middleware"
	"github.com/DanielPopoola/shelter-api/internal/testhelpers"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubAuthenticator map[string]*domain.User

func (s stubAuthenticator) Authenticate(_ context.Context, token string) (*domain.User, error) {
	user, ok := s[token]
	if !ok {
		return nil, application.NewUnauthorizedError("Not authorized, token failed")
	}
	if user.IsDisabled {
		return nil, domain.ErrAccountDisabled
	}
	return user, nil
}

var (
	regular  = &domain.User{ID: "u1", Role: domain.RoleUser}
	admin    = &domain.User{ID: "a1", Role: domain.RoleAdmin}
	disabled = &domain.User{ID: "d1", Role: domain.RoleUser, IsDisabled: true}
)

func newAuth(devBypass bool) *middleware.Auth {
	logger := testhelpers.DiscardLogger()
	authn := stubAuthenticator{"user": regular, "admin": admin, "disabled": disabled}
	return middleware.NewAuth(authn, rest.NewErrorWriter(logger, false), devBypass, logger)
}

func whoAmI() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, ok := middleware.UserFromContext(r.Context())
		if !ok {
			_, _ = w.Write([]byte("anonymous"))
			return
		}
		_, _ = w.Write([]byte(user.ID))
	})
}

func serve(h http.Handler, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestAuthenticate(t *testing.T) {
	h := newAuth(false).Authenticate(whoAmI())

	tests := []struct {
		name       string
		token      string
		wantStatus int
		wantBody   string
	}{
		{name: "no token", wantStatus: http.StatusUnauthorized},
		{name: "bad token", token: "forged", wantStatus: http.StatusUnauthorized},
		{name: "disabled user", token: "disabled", wantStatus: http.StatusForbidden},
		{name: "valid token", token: "user", wantStatus: http.StatusOK, wantBody: "u1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := serve(h, tt.token)
			assert.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantBody != "" {
				assert.Equal(t, tt.wantBody, rec.Body.String())
				return
			}
			var body rest.ErrorResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.False(t, body.Success)
			assert.NotEmpty(t, body.Message)
			assert.Empty(t, body.Detail)
		})
	}
}

func TestRequireAdmin(t *testing.T) {
	auth := newAuth(false)
	h := auth.Authenticate(auth.RequireAdmin(whoAmI()))

	assert.Equal(t, http.StatusForbidden, serve(h, "user").Code)
	rec := serve(h, "admin")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "a1", rec.Body.String())
}

func TestOptional(t *testing.T) {
	h := newAuth(false).Optional(whoAmI())

	assert.Equal(t, "anonymous", serve(h, "").Body.String())
	assert.Equal(t, "anonymous", serve(h, "forged").Body.String())
	assert.Equal(t, "u1", serve(h, "user").Body.String())
}

func TestDevBypass(t *testing.T) {
	auth := newAuth(true)
	h := auth.Authenticate(auth.RequireAdmin(whoAmI()))

	rec := serve(h, "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, middleware.DevAdmin.ID, rec.Body.String())

	// A presented token is still verified.
	assert.Equal(t, http.StatusUnauthorized, serve(h, "forged").Code)
}

func TestRecovery(t *testing.T) {
	logger := testhelpers.DiscardLogger()
	h := middleware.Recovery(logger, rest.NewErrorWriter(logger, true))(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("boom")
	}))

	rec := serve(h, "")

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	var body rest.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, application.ErrCodeInternal, body.Code)
	assert.Contains(t, body.Detail, "panic: boom")
}

func TestTimeout(t *testing.T) {
	h := middleware.Timeout(20 * time.Millisecond)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))

	rec := serve(h, "")

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.JSONEq(t, `{"success":false,"message":"Request timeout","code":"TIMEOUT"}`, rec.Body.String())
}
