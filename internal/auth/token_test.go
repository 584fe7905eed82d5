package auth_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meridianfs/meridian-backend/internal/auth"
	"github.com/meridianfs/meridian-backend/internal/domain"
)

func testAccount() *domain.Account {
	return &domain.Account{
		ID:    uuid.New(),
		Name:  "Alice Example",
		Email: "alice@example.com",
	}
}

func TestTokenIssuer_AccessTokenRoundTrip(t *testing.T) {
	issuer := auth.NewTokenIssuer("test-secret", time.Hour)
	account := testAccount()

	token, err := issuer.IssueAccessToken(account)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := issuer.ParseAccessToken(token)
	require.NoError(t, err)

	assert.Equal(t, account.ID.String(), (*claims)["sub"])
	assert.Equal(t, account.Name, (*claims)["name"])
	assert.Equal(t, account.Email, (*claims)["email"])
}

func TestTokenIssuer_RejectsWrongSecret(t *testing.T) {
	issuer := auth.NewTokenIssuer("test-secret", time.Hour)
	other := auth.NewTokenIssuer("other-secret", time.Hour)

	token, err := issuer.IssueAccessToken(testAccount())
	require.NoError(t, err)

	_, err = other.ParseAccessToken(token)
	assert.Error(t, err)
}

func TestTokenIssuer_RejectsExpiredToken(t *testing.T) {
	issuer := auth.NewTokenIssuer("test-secret", -time.Minute)

	token, err := issuer.IssueAccessToken(testAccount())
	require.NoError(t, err)

	_, err = issuer.ParseAccessToken(token)
	assert.Error(t, err)
}

func TestNewRefreshToken(t *testing.T) {
	first, err := auth.NewRefreshToken()
	require.NoError(t, err)
	second, err := auth.NewRefreshToken()
	require.NoError(t, err)

	assert.Len(t, first, 64)
	assert.NotEqual(t, first, second)
}

func TestHashRefreshToken_Deterministic(t *testing.T) {
	token, err := auth.NewRefreshToken()
	require.NoError(t, err)

	assert.Equal(t, auth.HashRefreshToken(token), auth.HashRefreshToken(token))
	assert.NotEqual(t, token, auth.HashRefreshToken(token))
}
