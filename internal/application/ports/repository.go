package ports

import (
	"context"

	"github.com/orgstack/orgd/internal/domain"
)

// RenameParams carries everything a rename mutates in one unit: the
// organization record, its admin credentials, and the tenant collection.
type RenameParams struct {
	CurrentName     string
	NewName         string
	NewEmail        string
	NewPasswordHash string
}

// OrganizationStore defines persistence for organizations, their admins,
// and the per-tenant document collections. CreateOrganization,
// RenameOrganization and DeleteOrganization are transactional: either every
// record they touch is mutated, or none is. RenameOrganization and
// DeleteOrganization also serialize against each other per organization.
type OrganizationStore interface {
	// GetOrganization returns the organization for a normalized name, or
	// nil if absent. Errors are database failures only.
	GetOrganization(ctx context.Context, name string) (*domain.Organization, error)

	// CreateOrganization inserts the admin and organization records
	// together. Returns errors.ErrOrgExists if the name is already taken,
	// including when a concurrent create wins the race.
	CreateOrganization(ctx context.Context, org *domain.Organization, admin *domain.Admin) error

	// RenameOrganization moves an organization to a new name: tenant
	// documents are copied into the new collection (content preserved, ids
	// regenerated), the old collection is removed, and the organization and
	// admin records are updated. Returns the updated organization,
	// errors.ErrOrgNotFound if the current name vanished, or
	// errors.ErrOrgExists if the new name is taken.
	RenameOrganization(ctx context.Context, params RenameParams) (*domain.Organization, error)

	// DeleteOrganization removes the organization record, every admin
	// scoped to it, and its tenant collection. Returns
	// errors.ErrOrgNotFound if the organization is absent.
	DeleteOrganization(ctx context.Context, name string) error
}

// AdminRepository defines admin lookup for authentication.
type AdminRepository interface {
	// GetAdminByEmail returns the admin for an email, or nil if absent.
	GetAdminByEmail(ctx context.Context, email string) (*domain.Admin, error)
}

// DocumentStore defines access to tenant document collections. The
// lifecycle manager treats collections as opaque units; an absent
// collection reads as empty.
type DocumentStore interface {
	InsertDocument(ctx context.Context, collection string, body []byte) error
	ListDocuments(ctx context.Context, collection string) ([]*domain.Document, error)
	CollectionExists(ctx context.Context, collection string) (bool, error)
}
