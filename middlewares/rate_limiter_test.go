package middlewares_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/menudeck/menudeck/middlewares"
)

func hitFrom(t *testing.T, r *gin.Engine, addr string) int {
	t.Helper()
	req, err := http.NewRequest("GET", "/", nil)
	require.NoError(t, err)
	req.RemoteAddr = addr
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w.Code
}

func TestStrictRateLimiterIsPerClient(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(middlewares.NewStrictRateLimiter())
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	// One client burns through its burst.
	for i := 0; i < 5; i++ {
		require.Equal(t, http.StatusOK, hitFrom(t, r, "10.0.0.1:1111"), "request %d", i)
	}
	assert.Equal(t, http.StatusTooManyRequests, hitFrom(t, r, "10.0.0.1:1111"))

	// A different client is unaffected.
	assert.Equal(t, http.StatusOK, hitFrom(t, r, "10.0.0.2:2222"))
}
