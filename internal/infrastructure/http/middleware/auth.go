package middleware

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/orgstack/orgd/internal/application/ports"
)

// AuthValidator validates the bearer JWT and sets the admin identity in the
// context (see IdentityFromContext).
type AuthValidator struct {
	issuer ports.TokenIssuer
}

func NewAuthValidator(issuer ports.TokenIssuer) *AuthValidator {
	return &AuthValidator{issuer: issuer}
}

func (m *AuthValidator) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		auth := r.Header.Get("Authorization")
		if auth == "" || !strings.HasPrefix(auth, "Bearer ") {
			writeAuthErr(w, "missing or invalid authorization")
			return
		}
		tokenString := strings.TrimPrefix(auth, "Bearer ")
		email, organization, err := m.issuer.ValidateAccessToken(tokenString)
		if err != nil {
			writeAuthErr(w, "invalid token")
			return
		}
		ctx := WithIdentity(r.Context(), &AdminIdentity{Email: email, Organization: organization})
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func writeAuthErr(w http.ResponseWriter, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": message, "code": "unauthorized"})
}
