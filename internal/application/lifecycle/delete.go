package lifecycle

import (
	"context"

	"github.com/orgstack/orgd/internal/application/ports"
	"github.com/orgstack/orgd/internal/domain"
)

type DeleteOrganizationInput struct {
	// Name comes from the caller's token; cross-tenant deletion is not
	// expressible.
	Name string
}

// DeleteOrganization removes an organization, its admins, and its tenant
// collection as one unit.
type DeleteOrganization struct {
	store ports.OrganizationStore
}

func NewDeleteOrganization(store ports.OrganizationStore) *DeleteOrganization {
	return &DeleteOrganization{store: store}
}

func (uc *DeleteOrganization) Execute(ctx context.Context, input DeleteOrganizationInput) error {
	return uc.store.DeleteOrganization(ctx, domain.NormalizeName(input.Name))
}
