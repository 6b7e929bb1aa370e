package errors

import "errors"

// Sentinel errors for handlers to map to HTTP status.
var (
	ErrOrgExists          = errors.New("organization already exists")
	ErrOrgNotFound        = errors.New("organization not found")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrInvalidToken       = errors.New("invalid or expired token")
	ErrInvalidOrgName     = errors.New("invalid organization name")
)
