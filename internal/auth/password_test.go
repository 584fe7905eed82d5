package auth_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meridianfs/meridian-backend/internal/auth"
)

func TestHasher_RoundTrip(t *testing.T) {
	hasher := auth.NewHasher()

	tests := []struct {
		name     string
		password string
	}{
		{name: "simple password", password: "Secret123!"},
		{name: "empty password", password: ""},
		{name: "unicode password", password: "pässwörd-官話-🔑"},
		{name: "long password", password: "abcdefghijklmnopqrstuvwxyz0123456789!@#$%^&*()_+-="},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hash, err := hasher.Hash(tt.password)
			require.NoError(t, err)
			assert.NotEqual(t, tt.password, hash)

			assert.True(t, hasher.Verify(tt.password, hash))
			assert.False(t, hasher.Verify(tt.password+"x", hash))
		})
	}
}

func TestHasher_DifferentPasswordsDoNotVerify(t *testing.T) {
	hasher := auth.NewHasher()

	hash, err := hasher.Hash("NewSecret456!")
	require.NoError(t, err)

	assert.False(t, hasher.Verify("Secret123!", hash))
}

func TestHasher_MalformedHash(t *testing.T) {
	hasher := auth.NewHasher()

	assert.False(t, hasher.Verify("anything", "not-a-bcrypt-hash"))
	assert.False(t, hasher.Verify("anything", ""))
}
