package app

import (
	"encoding/base64"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func metricsRouter(username, password string) *gin.Engine {
	router := gin.New()
	router.GET("/metrics", metricsAuthMiddleware(username, password), func(c *gin.Context) {
		c.String(http.StatusOK, "metrics")
	})
	return router
}

func basic(user, pass string) string {
	return "Basic " + base64.StdEncoding.EncodeToString([]byte(user+":"+pass))
}

func TestMetricsAuthMiddleware_NoPasswordIsOpen(t *testing.T) {
	router := metricsRouter("prometheus", "")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "metrics", w.Body.String())
}

func TestMetricsAuthMiddleware(t *testing.T) {
	router := metricsRouter("prometheus", "secret123")

	tests := []struct {
		name   string
		header string
		want   int
	}{
		{"valid credentials", basic("prometheus", "secret123"), http.StatusOK},
		{"wrong username", basic("grafana", "secret123"), http.StatusUnauthorized},
		{"wrong password", basic("prometheus", "wrong"), http.StatusUnauthorized},
		{"both wrong", basic("grafana", "wrong"), http.StatusUnauthorized},
		{"no header", "", http.StatusUnauthorized},
		{"only scheme", "Basic", http.StatusUnauthorized},
		{"invalid base64", "Basic notbase64!!!", http.StatusUnauthorized},
		{"bearer token", "Bearer sometoken", http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			assert.Equal(t, tt.want, w.Code)
			if tt.want == http.StatusUnauthorized {
				assert.Equal(t, metricsRealm, w.Header().Get("WWW-Authenticate"))
			}
		})
	}
}
