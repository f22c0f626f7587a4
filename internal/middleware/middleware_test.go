package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRateLimiterSlidingWindow(t *testing.T) {
	limiter := NewRateLimiter(3, time.Minute)

	for i := 0; i < 3; i++ {
		assert.True(t, limiter.Allow("1.2.3.4"))
	}
	assert.False(t, limiter.Allow("1.2.3.4"))

	// a different IP has its own budget
	assert.True(t, limiter.Allow("5.6.7.8"))
}

func TestRateLimitAuthReturns429(t *testing.T) {
	wrapped := RateLimitAuth()(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	var last int
	for i := 0; i < 21; i++ {
		req := httptest.NewRequest(http.MethodGet, "/api/login", nil)
		req.RemoteAddr = "1.2.3.4:5000"
		rec := httptest.NewRecorder()
		wrapped(rec, req)
		last = rec.Code
	}
	assert.Equal(t, http.StatusTooManyRequests, last)
}

func TestGetClientIP(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "10.0.0.1:9999"
	assert.Equal(t, "10.0.0.1", getClientIP(req))

	req.Header.Set("X-Real-IP", "172.16.0.9")
	assert.Equal(t, "172.16.0.9", getClientIP(req))

	// the first hop in X-Forwarded-For wins
	req.Header.Set("X-Forwarded-For", "203.0.113.7, 70.41.3.18")
	assert.Equal(t, "203.0.113.7", getClientIP(req))
}

func TestRecoverTurnsPanicInto500(t *testing.T) {
	handler := Recover(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	require.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"message":"internal server error"}`, rec.Body.String())
}

func TestChainAppliesInOrder(t *testing.T) {
	var order []string
	tag := func(name string) func(http.Handler) http.Handler {
		return func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				order = append(order, name)
				next.ServeHTTP(w, r)
			})
		}
	}

	handler := Chain(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		order = append(order, "handler")
	}), tag("first"), tag("second"))

	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, []string{"first", "second", "handler"}, order)
}
