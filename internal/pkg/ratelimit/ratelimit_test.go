package ratelimit

import (
	"encoding/json"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

func TestLimiter_Window(t *testing.T) {
	l := New(2, time.Minute)

	require.True(t, l.Allow("1.2.3.4"))
	require.True(t, l.Allow("1.2.3.4"))
	require.False(t, l.Allow("1.2.3.4"))
	require.Equal(t, 0, l.Remaining("1.2.3.4"))

	// other keys are independent
	require.True(t, l.Allow("5.6.7.8"))
}

func TestMiddleware_OverLimit(t *testing.T) {
	gin.SetMode(gin.TestMode)
	l := New(0, time.Minute) // always deny

	r := gin.New()
	r.Use(Middleware(l))
	r.GET("/", func(c *gin.Context) { c.JSON(200, gin.H{"ok": true}) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest("GET", "/", nil))

	require.Equal(t, 429, w.Code)
	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.Equal(t, "fail", body["status"])
	require.NotEmpty(t, w.Header().Get("Retry-After"))
}

func TestMiddleware_UnderLimitSetsHeaders(t *testing.T) {
	gin.SetMode(gin.TestMode)
	l := New(5, time.Minute)

	r := gin.New()
	r.Use(Middleware(l))
	r.GET("/", func(c *gin.Context) { c.JSON(200, gin.H{"ok": true}) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest("GET", "/", nil))

	require.Equal(t, 200, w.Code)
	require.Equal(t, "5", w.Header().Get("X-RateLimit-Limit"))
	require.Equal(t, "4", w.Header().Get("X-RateLimit-Remaining"))
}
