package identity

import (
	"context"

	"github.com/orgstack/orgd/internal/application/ports"
	domerrors "github.com/orgstack/orgd/internal/domain/errors"
)

// DefaultAccessTokenExpiry is 15 minutes.
const DefaultAccessTokenExpiry = 900

type LoginInput struct {
	Email    string
	Password string
}

type LoginResult struct {
	AccessToken  string
	TokenType    string
	ExpiresIn    int64
	Organization string
}

// Login authenticates an admin by email and password and issues an access
// token scoped to the admin's organization.
type Login struct {
	admins    ports.AdminRepository
	hasher    ports.PasswordHasher
	issuer    ports.TokenIssuer
	accessExp int64
}

func NewLogin(admins ports.AdminRepository, hasher ports.PasswordHasher, issuer ports.TokenIssuer, accessExp int64) *Login {
	if accessExp <= 0 {
		accessExp = DefaultAccessTokenExpiry
	}
	return &Login{admins: admins, hasher: hasher, issuer: issuer, accessExp: accessExp}
}

func (uc *Login) Execute(ctx context.Context, input LoginInput) (*LoginResult, error) {
	admin, err := uc.admins.GetAdminByEmail(ctx, input.Email)
	if err != nil {
		return nil, err
	}
	// Unknown email and wrong password collapse into the same error so the
	// response does not reveal which check failed.
	if admin == nil || !uc.hasher.Verify(input.Password, admin.PasswordHash) {
		return nil, domerrors.ErrInvalidCredentials
	}
	token, err := uc.issuer.IssueAccessToken(admin.Email, admin.Organization, uc.accessExp)
	if err != nil {
		return nil, err
	}
	return &LoginResult{
		AccessToken:  token,
		TokenType:    "bearer",
		ExpiresIn:    uc.accessExp,
		Organization: admin.Organization,
	}, nil
}
