package domain

import (
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
)

// CollectionPrefix is prepended to the normalized organization name to form
// the tenant collection name. The derivation lives here and nowhere else.
const CollectionPrefix = "org_"

var nameRegex = regexp.MustCompile(`^[a-z0-9][a-z0-9_-]{0,62}$`)

// AdminID is a value object for admin identity.
type AdminID struct{ uuid.UUID }

// NewAdminID creates a new AdminID from uuid.
func NewAdminID(id uuid.UUID) AdminID { return AdminID{UUID: id} }

// String returns the canonical string form.
func (a AdminID) String() string { return a.UUID.String() }

// Organization is a tenant. The normalized name is its identity; the
// collection name is always CollectionName(Name).
type Organization struct {
	Name           string
	CollectionName string
	AdminID        AdminID
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// Admin is the single credentialed principal of one organization. The
// Organization field is the authoritative scope for everything it may do.
type Admin struct {
	ID           AdminID
	Email        string
	PasswordHash string
	Organization string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Document is one opaque tenant document. The lifecycle manager never
// inspects Body; it only moves collections around as a unit.
type Document struct {
	ID             uuid.UUID
	CollectionName string
	Body           []byte
	CreatedAt      time.Time
}

// NormalizeName lower-cases and trims an organization name so that "Acme"
// and "acme" are the same tenant.
func NormalizeName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// ValidName reports whether a normalized name is usable as an organization
// identifier (and therefore as a collection name suffix).
func ValidName(name string) bool {
	return nameRegex.MatchString(name)
}

// CollectionName derives the tenant collection name for a normalized
// organization name.
func CollectionName(name string) string {
	return CollectionPrefix + name
}
