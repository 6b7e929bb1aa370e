package lifecycle

import (
	"context"

	"github.com/orgstack/orgd/internal/application/ports"
	"github.com/orgstack/orgd/internal/domain"
	domerrors "github.com/orgstack/orgd/internal/domain/errors"
)

type RenameOrganizationInput struct {
	// CurrentName comes from the caller's token, never from the request
	// body, so an admin can only rename their own organization.
	CurrentName string
	NewName     string
	NewEmail    string
	NewPassword string
}

type RenameOrganizationResult struct {
	OldName      string
	Organization *domain.Organization
}

// RenameOrganization moves an organization to a new name. Fresh credentials
// are mandatory on every rename, including a rename to the same name.
type RenameOrganization struct {
	store  ports.OrganizationStore
	hasher ports.PasswordHasher
}

func NewRenameOrganization(store ports.OrganizationStore, hasher ports.PasswordHasher) *RenameOrganization {
	return &RenameOrganization{store: store, hasher: hasher}
}

func (uc *RenameOrganization) Execute(ctx context.Context, input RenameOrganizationInput) (*RenameOrganizationResult, error) {
	current := domain.NormalizeName(input.CurrentName)
	newName := domain.NormalizeName(input.NewName)
	if !domain.ValidName(newName) {
		return nil, domerrors.ErrInvalidOrgName
	}
	if newName != current {
		existing, err := uc.store.GetOrganization(ctx, newName)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			return nil, domerrors.ErrOrgExists
		}
	}
	hash, err := uc.hasher.Hash(input.NewPassword)
	if err != nil {
		return nil, err
	}
	// The store performs the collection copy, collection drop, and both
	// metadata updates inside one transaction, so an interrupted rename
	// rolls back instead of leaving a half-renamed organization.
	org, err := uc.store.RenameOrganization(ctx, ports.RenameParams{
		CurrentName:     current,
		NewName:         newName,
		NewEmail:        input.NewEmail,
		NewPasswordHash: hash,
	})
	if err != nil {
		return nil, err
	}
	return &RenameOrganizationResult{OldName: current, Organization: org}, nil
}
