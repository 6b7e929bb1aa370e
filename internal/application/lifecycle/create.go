package lifecycle

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/orgstack/orgd/internal/application/ports"
	"github.com/orgstack/orgd/internal/domain"
	domerrors "github.com/orgstack/orgd/internal/domain/errors"
)

type CreateOrganizationInput struct {
	Name     string
	Email    string
	Password string
}

type CreateOrganizationResult struct {
	Organization *domain.Organization
}

// CreateOrganization provisions a new organization and its single admin as
// one unit. The tenant collection is not created here; it materializes on
// first write and reads as empty until then.
type CreateOrganization struct {
	store  ports.OrganizationStore
	hasher ports.PasswordHasher
}

func NewCreateOrganization(store ports.OrganizationStore, hasher ports.PasswordHasher) *CreateOrganization {
	return &CreateOrganization{store: store, hasher: hasher}
}

func (uc *CreateOrganization) Execute(ctx context.Context, input CreateOrganizationInput) (*CreateOrganizationResult, error) {
	name := domain.NormalizeName(input.Name)
	if !domain.ValidName(name) {
		return nil, domerrors.ErrInvalidOrgName
	}
	// Early read keeps the common duplicate case side-effect free; the
	// store's unique constraint settles the race between concurrent creates.
	existing, err := uc.store.GetOrganization(ctx, name)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domerrors.ErrOrgExists
	}
	hash, err := uc.hasher.Hash(input.Password)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	admin := &domain.Admin{
		ID:           domain.NewAdminID(uuid.New()),
		Email:        input.Email,
		PasswordHash: hash,
		Organization: name,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	org := &domain.Organization{
		Name:           name,
		CollectionName: domain.CollectionName(name),
		AdminID:        admin.ID,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := uc.store.CreateOrganization(ctx, org, admin); err != nil {
		return nil, err
	}
	return &CreateOrganizationResult{Organization: org}, nil
}
