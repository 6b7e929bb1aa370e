package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIPRateLimiterDisabledWhenEmpty(t *testing.T) {
	mw, err := NewIPRateLimiter("", nil)
	require.NoError(t, err)
	handler := mw(okHandler())

	for i := 0; i < 50; i++ {
		req := httptest.NewRequest(http.MethodPost, "/admin/login", nil)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusOK, rec.Code)
	}
}

func TestIPRateLimiterRejectsBadFormat(t *testing.T) {
	_, err := NewIPRateLimiter("lots", nil)
	assert.Error(t, err)
}

func TestIPRateLimiterLimitsPerIP(t *testing.T) {
	mw, err := NewIPRateLimiter("2-M", nil)
	require.NoError(t, err)
	handler := mw(okHandler())

	// httptest gives every request the same RemoteAddr, so all three count
	// against one client.
	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		req := httptest.NewRequest(http.MethodPost, "/admin/login", nil)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		codes = append(codes, rec.Code)
	}

	assert.Equal(t, []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests}, codes)
}

func TestIPRateLimiterKeysByClientIP(t *testing.T) {
	mw, err := NewIPRateLimiter("1-M", nil)
	require.NoError(t, err)
	handler := mw(okHandler())

	first := httptest.NewRequest(http.MethodPost, "/admin/login", nil)
	first.RemoteAddr = "10.0.0.1:4000"
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, first)
	require.Equal(t, http.StatusOK, rec.Code)

	// A second client is not affected by the first client's quota.
	second := httptest.NewRequest(http.MethodPost, "/admin/login", nil)
	second.RemoteAddr = "10.0.0.2:4000"
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, second)
	assert.Equal(t, http.StatusOK, rec.Code)

	again := httptest.NewRequest(http.MethodPost, "/admin/login", nil)
	again.RemoteAddr = "10.0.0.1:4000"
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, again)
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
}
