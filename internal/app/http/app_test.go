package httpapp

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	appmw "equestrian/internal/middleware"
	httprouters "equestrian/internal/transport/http"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// anonymous пропускает запросы без установки пользователя
func anonymous(next echo.HandlerFunc) echo.HandlerFunc {
	return next
}

func newTestServer(t *testing.T, opts Options) http.Handler {
	t.Helper()

	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	routers := httprouters.NewRouter(log, appmw.CookieConfig{}, httprouters.Services{})

	s := New(log, opts, routers, anonymous)
	s.BuildRouters()
	return s.Handler()
}

func TestHealthAndMetrics(t *testing.T) {
	h := newTestServer(t, Options{})

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "http_requests_total")
}

func TestGuardsOnRoutes(t *testing.T) {
	h := newTestServer(t, Options{})

	tests := []struct {
		method string
		path   string
	}{
		{http.MethodPost, "/api/v1/horses"},
		{http.MethodPatch, "/api/v1/horses/0b9c3f64-4b8e-4a52-8a53-8fd2f7b6f0a1"},
		{http.MethodPost, "/api/v1/horses/0b9c3f64-4b8e-4a52-8a53-8fd2f7b6f0a1/pedigree/dam"},
		{http.MethodPost, "/api/v1/users"},
		{http.MethodGet, "/api/v1/auth/me"},
		{http.MethodGet, "/api/v1/contacts/groups"},
		{http.MethodDelete, "/api/v1/photos/categories/0b9c3f64-4b8e-4a52-8a53-8fd2f7b6f0a1"},
	}

	for _, tt := range tests {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, httptest.NewRequest(tt.method, tt.path, nil))
			assert.Equal(t, http.StatusUnauthorized, rec.Code)
		})
	}
}

func TestLoginRateLimit(t *testing.T) {
	h := newTestServer(t, Options{LoginRate: 0.001})

	codes := make([]int, 0, 7)
	for i := 0; i < 7; i++ {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/token", strings.NewReader(`{}`))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
		req.RemoteAddr = "10.0.0.1:5000"

		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		codes = append(codes, rec.Code)
	}

	// запрос без учетных данных отклоняется проверкой, пока не исчерпан лимит
	assert.Equal(t, http.StatusBadRequest, codes[0])
	assert.Equal(t, http.StatusTooManyRequests, codes[len(codes)-1])
}
