package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/d60-Lab/starlog/pkg/jwt"
)

func newRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(RequestLogger(), Auth("secret"))
	r.GET("/whoami", func(c *gin.Context) {
		c.String(http.StatusOK, CallerID(c))
	})
	return r
}

func TestAuth(t *testing.T) {
	r := newRouter()
	valid, err := jwt.GenerateToken("alice", "secret", "starlog", time.Hour)
	require.NoError(t, err)
	forged, err := jwt.GenerateToken("alice", "other", "starlog", time.Hour)
	require.NoError(t, err)

	cases := []struct {
		name   string
		header string
		status int
		body   string
	}{
		{"anonymous", "", http.StatusOK, ""},
		{"valid", "Bearer " + valid, http.StatusOK, "alice"},
		{"wrong scheme", "Basic abc", http.StatusUnauthorized, ""},
		{"forged", "Bearer " + forged, http.StatusUnauthorized, ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			assert.Equal(t, tc.status, w.Code)
			if tc.status == http.StatusOK {
				assert.Equal(t, tc.body, w.Body.String())
			}
		})
	}
}
