package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIssueAndValidateAccessToken(t *testing.T) {
	key, err := GenerateEphemeralKey()
	require.NoError(t, err)
	issuer := NewTokenIssuer(key, "orgd", "orgd")

	token, err := issuer.IssueAccessToken("a@x.com", "acme", 900)
	require.NoError(t, err)

	email, organization, err := issuer.ValidateAccessToken(token)
	require.NoError(t, err)
	assert.Equal(t, "a@x.com", email)
	assert.Equal(t, "acme", organization)
}

func TestValidateExpiredToken(t *testing.T) {
	key, err := GenerateEphemeralKey()
	require.NoError(t, err)
	issuer := NewTokenIssuer(key, "orgd", "orgd")

	token, err := issuer.IssueAccessToken("a@x.com", "acme", -60)
	require.NoError(t, err)

	_, _, err = issuer.ValidateAccessToken(token)
	assert.Error(t, err)
}

func TestValidateTokenFromDifferentKey(t *testing.T) {
	key1, err := GenerateEphemeralKey()
	require.NoError(t, err)
	key2, err := GenerateEphemeralKey()
	require.NoError(t, err)

	token, err := NewTokenIssuer(key1, "orgd", "orgd").IssueAccessToken("a@x.com", "acme", 900)
	require.NoError(t, err)

	_, _, err = NewTokenIssuer(key2, "orgd", "orgd").ValidateAccessToken(token)
	assert.Error(t, err)
}

func TestValidateMalformedToken(t *testing.T) {
	key, err := GenerateEphemeralKey()
	require.NoError(t, err)
	issuer := NewTokenIssuer(key, "orgd", "orgd")

	for _, tok := range []string{"", "garbage", "a.b.c"} {
		_, _, err := issuer.ValidateAccessToken(tok)
		assert.Error(t, err, tok)
	}
}
