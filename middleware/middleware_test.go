package middleware

import (
	"Moodboard/pkg/context"
	"Moodboard/pkg/jwt"
	"Moodboard/pkg/metrics"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestAuth(t *testing.T) {
	secret := []byte("test_secret")
	valid, _, err := jwt.GenerateToken(secret, "alice", jwt.TokenTypeAccess, time.Hour)
	require.NoError(t, err)
	expired, _, err := jwt.GenerateToken(secret, "alice", jwt.TokenTypeAccess, -time.Hour)
	require.NoError(t, err)

	tests := []struct {
		name           string
		authHeader     string
		expectedStatus int
		expectedBody   string
	}{
		{"missing header", "", http.StatusUnauthorized, "authorization header is required"},
		{"not bearer", "Token " + valid, http.StatusUnauthorized, "bearer token not found"},
		{"expired", "Bearer " + expired, http.StatusUnauthorized, "invalid token"},
		{"wrong secret", "Bearer " + valid + "x", http.StatusUnauthorized, "invalid token"},
		{"valid", "Bearer " + valid, http.StatusOK, "alice"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := gin.New()
			r.GET("/", Auth(secret), func(c *gin.Context) {
				name, err := context.GetUsername(c)
				require.NoError(t, err)
				c.String(http.StatusOK, name)
			})

			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.authHeader != "" {
				req.Header.Set("Authorization", tt.authHeader)
			}
			r.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.Contains(t, w.Body.String(), tt.expectedBody)
		})
	}
}

func TestGinZapSetsRequestID(t *testing.T) {
	r := gin.New()
	r.Use(GinZap())
	r.GET("/ping", func(c *gin.Context) {
		c.String(http.StatusOK, c.GetString(context.CtxRequestID))
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))
	id := w.Header().Get(HeaderRequestID)
	assert.NotEmpty(t, id)
	assert.Equal(t, id, w.Body.String())

	w = httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set(HeaderRequestID, "abc-123")
	r.ServeHTTP(w, req)
	assert.Equal(t, "abc-123", w.Header().Get(HeaderRequestID))
}

func TestPrometheusMiddlewareUsesRouteTemplate(t *testing.T) {
	r := gin.New()
	r.Use(PrometheusMiddleware())
	r.GET("/images/:sno", func(c *gin.Context) { c.Status(http.StatusNoContent) })

	before := testutil.ToFloat64(metrics.HTTPRequests.WithLabelValues(http.MethodGet, "/images/:sno", "204"))
	for _, path := range []string{"/images/1", "/images/2"} {
		r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, path, nil))
	}
	after := testutil.ToFloat64(metrics.HTTPRequests.WithLabelValues(http.MethodGet, "/images/:sno", "204"))
	assert.Equal(t, before+2, after)

	unknown := testutil.ToFloat64(metrics.HTTPRequests.WithLabelValues(http.MethodGet, "unknown", "404"))
	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/nowhere", nil))
	assert.Equal(t, unknown+1, testutil.ToFloat64(metrics.HTTPRequests.WithLabelValues(http.MethodGet, "unknown", "404")))
}
