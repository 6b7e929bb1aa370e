package ports

// PasswordHasher hashes and verifies passwords. Implementations never see
// the plaintext again after Hash returns.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Verify(password, hash string) bool
}

// TokenIssuer signs and validates bearer tokens carrying the admin email
// and organization scope.
type TokenIssuer interface {
	IssueAccessToken(email, organization string, expiresInSeconds int64) (string, error)
	// ValidateAccessToken verifies signature and expiry and returns the
	// identity claims.
	ValidateAccessToken(tokenString string) (email, organization string, err error)
}
