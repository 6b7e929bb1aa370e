package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

type stubIssuer struct {
	email string
	org   string
	err   error
}

func (s *stubIssuer) IssueAccessToken(string, string, int64) (string, error) { return "", nil }

func (s *stubIssuer) ValidateAccessToken(string) (string, string, error) {
	return s.email, s.org, s.err
}

func TestAuthValidatorSetsIdentity(t *testing.T) {
	validator := NewAuthValidator(&stubIssuer{email: "a@x.com", org: "acme"})
	var got *AdminIdentity
	handler := validator.Handler(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = IdentityFromContext(r.Context())
	}))

	req := httptest.NewRequest(http.MethodDelete, "/org/delete", nil)
	req.Header.Set("Authorization", "Bearer some-token")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.NotNil(t, got)
	assert.Equal(t, "a@x.com", got.Email)
	assert.Equal(t, "acme", got.Organization)
}

func TestAuthValidatorRejectsMissingHeader(t *testing.T) {
	validator := NewAuthValidator(&stubIssuer{email: "a@x.com", org: "acme"})
	handler := validator.Handler(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler should not run")
	}))

	for _, header := range []string{"", "Basic abc", "Bearer"} {
		req := httptest.NewRequest(http.MethodDelete, "/org/delete", nil)
		if header != "" {
			req.Header.Set("Authorization", header)
		}
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusUnauthorized, rec.Code, header)
	}
}

func TestAuthValidatorRejectsInvalidToken(t *testing.T) {
	validator := NewAuthValidator(&stubIssuer{err: errors.New("expired")})
	handler := validator.Handler(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler should not run")
	}))

	req := httptest.NewRequest(http.MethodDelete, "/org/delete", nil)
	req.Header.Set("Authorization", "Bearer expired-token")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
