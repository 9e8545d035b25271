package middleware

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func fixedStore(rps float64, burst int, now *time.Time) *visitorStore {
	s := newVisitorStore(rps, burst, time.Minute)
	s.nowFunc = func() time.Time { return *now }
	return s
}

func hit(h http.Handler, ip string) int {
	req := httptest.NewRequest(http.MethodPost, "/api/v1/wishlist/items/1/toggle", nil)
	req.RemoteAddr = ip + ":5555"
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr.Code
}

func TestRateLimit_BurstThenLimited(t *testing.T) {
	now := time.Unix(1_700_000_000, 0)
	h := rateLimitWith(fixedStore(1, 3, &now), discardLogger())(okHandler())

	for i := 0; i < 3; i++ {
		assert.Equal(t, http.StatusOK, hit(h, "10.0.0.1"), "request %d", i+1)
	}
	assert.Equal(t, http.StatusTooManyRequests, hit(h, "10.0.0.1"))

	now = now.Add(time.Second)
	assert.Equal(t, http.StatusOK, hit(h, "10.0.0.1"))
}

func TestRateLimit_IndependentPerIP(t *testing.T) {
	now := time.Unix(1_700_000_000, 0)
	h := rateLimitWith(fixedStore(1, 1, &now), discardLogger())(okHandler())

	assert.Equal(t, http.StatusOK, hit(h, "10.0.0.1"))
	assert.Equal(t, http.StatusTooManyRequests, hit(h, "10.0.0.1"))
	assert.Equal(t, http.StatusOK, hit(h, "10.0.0.2"))
}

func TestRateLimit_ResponseEnvelope(t *testing.T) {
	now := time.Unix(1_700_000_000, 0)
	h := rateLimitWith(fixedStore(1, 1, &now), discardLogger())(okHandler())
	hit(h, "10.0.0.9")

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "10.0.0.9:1"
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusTooManyRequests, rr.Code)
	assert.Equal(t, "1", rr.Header().Get("Retry-After"))
	assert.JSONEq(t, `{"error":{"code":"RATE_LIMITED","message":"too many requests"}}`, rr.Body.String())
}

func TestVisitorStore_CleanupEvictsIdle(t *testing.T) {
	now := time.Unix(1_700_000_000, 0)
	s := fixedStore(5, 5, &now)
	s.allow("10.0.0.1")
	now = now.Add(30 * time.Second)
	s.allow("10.0.0.2")

	now = now.Add(45 * time.Second)
	s.cleanup()

	assert.Equal(t, 1, s.len())
}

func TestClientIP(t *testing.T) {
	tests := []struct {
		name   string
		xff    string
		xri    string
		remote string
		want   string
	}{
		{name: "forwarded chain", xff: "garbage, 203.0.113.7, 10.0.0.1", remote: "10.0.0.1:80", want: "203.0.113.7"},
		{name: "real ip", xri: " 198.51.100.2 ", remote: "10.0.0.1:80", want: "198.51.100.2"},
		{name: "remote addr", remote: "192.0.2.1:4242", want: "192.0.2.1"},
		{name: "remote without port", remote: "192.0.2.1", want: "192.0.2.1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.RemoteAddr = tt.remote
			if tt.xff != "" {
				req.Header.Set("X-Forwarded-For", tt.xff)
			}
			if tt.xri != "" {
				req.Header.Set("X-Real-IP", tt.xri)
			}
			assert.Equal(t, tt.want, clientIP(req))
		})
	}
}
