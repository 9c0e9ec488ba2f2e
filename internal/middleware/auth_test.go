package middleware

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"equestrian/internal/domain/models"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockTokenManager struct {
	mock.Mock
}

func (m *MockTokenManager) VerifyAccess(accessToken string) (models.TokenClaims, error) {
	args := m.Called(accessToken)
	return args.Get(0).(models.TokenClaims), args.Error(1)
}

func (m *MockTokenManager) RefreshTokens(ctx context.Context, refreshToken string) (*models.TokenPair, error) {
	args := m.Called(ctx, refreshToken)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.TokenPair), args.Error(1)
}

var testCookies = CookieConfig{AccessTTL: 15 * time.Minute, RefreshTTL: time.Hour}

func serve(t *testing.T, tokens TokenManager, req *http.Request, guard echo.MiddlewareFunc) (*httptest.ResponseRecorder, *Identity) {
	t.Helper()

	e := echo.New()
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	var seen *Identity

	handler := func(c echo.Context) error {
		if id, ok := IdentityFrom(c); ok {
			seen = &id
		}
		return c.NoContent(http.StatusOK)
	}
	if guard != nil {
		handler = guard(handler)
	}

	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	require.NoError(t, JWTCookieAuth(log, tokens, testCookies)(handler)(c))
	return rec, seen
}

func cookieByName(rec *httptest.ResponseRecorder, name string) *http.Cookie {
	for _, c := range rec.Result().Cookies() {
		if c.Name == name {
			return c
		}
	}
	return nil
}

func TestJWTCookieAuth(t *testing.T) {
	userID := uuid.New()

	t.Run("valid access cookie", func(t *testing.T) {
		tokens := new(MockTokenManager)
		tokens.On("VerifyAccess", "good").Return(models.TokenClaims{UserID: userID, Role: models.RoleModerator}, nil)

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.AddCookie(&http.Cookie{Name: AccessCookie, Value: "good"})

		rec, id := serve(t, tokens, req, nil)

		require.NotNil(t, id)
		assert.Equal(t, userID, id.UserID)
		assert.Equal(t, models.RoleModerator, id.Role)
		assert.Empty(t, rec.Result().Cookies())
		tokens.AssertNotCalled(t, "RefreshTokens", mock.Anything, mock.Anything)
	})

	t.Run("bearer header", func(t *testing.T) {
		tokens := new(MockTokenManager)
		tokens.On("VerifyAccess", "hdr").Return(models.TokenClaims{UserID: userID, Role: models.RoleViewer}, nil)

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set(echo.HeaderAuthorization, "Bearer hdr")

		_, id := serve(t, tokens, req, nil)
		require.NotNil(t, id)
		assert.Equal(t, models.RoleViewer, id.Role)
	})

	t.Run("rejected header falls back to cookie", func(t *testing.T) {
		tokens := new(MockTokenManager)
		tokens.On("VerifyAccess", "forged").Return(models.TokenClaims{}, errors.New("signature is invalid"))
		tokens.On("VerifyAccess", "good").Return(models.TokenClaims{UserID: userID, Role: models.RoleViewer}, nil)

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set(echo.HeaderAuthorization, "Bearer forged")
		req.AddCookie(&http.Cookie{Name: AccessCookie, Value: "good"})

		rec, id := serve(t, tokens, req, nil)

		require.NotNil(t, id)
		assert.Equal(t, userID, id.UserID)
		assert.Empty(t, rec.Result().Cookies())
	})

	t.Run("header without bearer scheme is ignored", func(t *testing.T) {
		tokens := new(MockTokenManager)

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set(echo.HeaderAuthorization, "Basic dXNlcjpwYXNz")

		rec, id := serve(t, tokens, req, RequireAuth)

		assert.Nil(t, id)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		tokens.AssertNotCalled(t, "VerifyAccess", mock.Anything)
	})

	t.Run("expired access is refreshed", func(t *testing.T) {
		tokens := new(MockTokenManager)
		tokens.On("VerifyAccess", "stale").Return(models.TokenClaims{}, errors.New("expired"))
		tokens.On("RefreshTokens", mock.Anything, "refresh").
			Return(&models.TokenPair{UserID: userID, AccessToken: "fresh", RefreshToken: "refresh2"}, nil)
		tokens.On("VerifyAccess", "fresh").Return(models.TokenClaims{UserID: userID, Role: models.RoleAdmin}, nil)

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.AddCookie(&http.Cookie{Name: AccessCookie, Value: "stale"})
		req.AddCookie(&http.Cookie{Name: RefreshCookie, Value: "refresh"})

		rec, id := serve(t, tokens, req, nil)

		require.NotNil(t, id)
		assert.Equal(t, models.RoleAdmin, id.Role)

		access := cookieByName(rec, AccessCookie)
		require.NotNil(t, access)
		assert.Equal(t, "fresh", access.Value)
		assert.True(t, access.HttpOnly)
		assert.Equal(t, "refresh2", cookieByName(rec, RefreshCookie).Value)
	})

	t.Run("invalid refresh clears cookies", func(t *testing.T) {
		tokens := new(MockTokenManager)
		tokens.On("RefreshTokens", mock.Anything, "revoked").Return(nil, errors.New("not in storage"))

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.AddCookie(&http.Cookie{Name: RefreshCookie, Value: "revoked"})

		rec, id := serve(t, tokens, req, nil)

		assert.Nil(t, id)
		access := cookieByName(rec, AccessCookie)
		require.NotNil(t, access)
		assert.Empty(t, access.Value)
		assert.Less(t, access.MaxAge, 0)
	})

	t.Run("anonymous", func(t *testing.T) {
		tokens := new(MockTokenManager)
		rec, id := serve(t, tokens, httptest.NewRequest(http.MethodGet, "/", nil), nil)

		assert.Nil(t, id)
		assert.Equal(t, http.StatusOK, rec.Code)
		tokens.AssertExpectations(t)
	})
}

func TestRoleGuards(t *testing.T) {
	tests := []struct {
		name  string
		role  *models.Role
		guard echo.MiddlewareFunc
		want  int
	}{
		{name: "anonymous needs auth", guard: RequireAuth, want: http.StatusUnauthorized},
		{name: "viewer authenticated", role: ptr(models.RoleViewer), guard: RequireAuth, want: http.StatusOK},
		{name: "viewer is not moderator", role: ptr(models.RoleViewer), guard: RequireModerator, want: http.StatusForbidden},
		{name: "moderator", role: ptr(models.RoleModerator), guard: RequireModerator, want: http.StatusOK},
		{name: "admin moderates", role: ptr(models.RoleAdmin), guard: RequireModerator, want: http.StatusOK},
		{name: "moderator is not admin", role: ptr(models.RoleModerator), guard: RequireAdmin, want: http.StatusForbidden},
		{name: "admin", role: ptr(models.RoleAdmin), guard: RequireAdmin, want: http.StatusOK},
		{name: "anonymous admin route", guard: RequireAdmin, want: http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tokens := new(MockTokenManager)
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.role != nil {
				tokens.On("VerifyAccess", "token").Return(models.TokenClaims{UserID: uuid.New(), Role: *tt.role}, nil)
				req.AddCookie(&http.Cookie{Name: AccessCookie, Value: "token"})
			}

			rec, _ := serve(t, tokens, req, tt.guard)
			assert.Equal(t, tt.want, rec.Code)
		})
	}
}

func ptr[T any](v T) *T {
	return &v
}
