package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeName(t *testing.T) {
	assert.Equal(t, "acme", NormalizeName("Acme"))
	assert.Equal(t, "acme", NormalizeName("  ACME  "))
	assert.Equal(t, "acme-corp", NormalizeName("Acme-Corp"))
}

func TestValidName(t *testing.T) {
	valid := []string{"acme", "acme2", "a", "acme-corp", "acme_corp", "1acme"}
	for _, name := range valid {
		assert.True(t, ValidName(name), name)
	}
	invalid := []string{"", "Acme", "-acme", "_acme", "ac me", "acme!", "café"}
	for _, name := range invalid {
		assert.False(t, ValidName(name), name)
	}
}

func TestCollectionName(t *testing.T) {
	assert.Equal(t, "org_acme", CollectionName("acme"))
}
