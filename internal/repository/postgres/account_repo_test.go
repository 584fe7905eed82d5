package postgres_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/meridianfs/meridian-backend/internal/domain"
	"github.com/meridianfs/meridian-backend/internal/repository/postgres"
	"github.com/meridianfs/meridian-backend/internal/testutil"
)

func TestAccountRepository(t *testing.T) {
	testDB := testutil.NewTestDB(t)
	repo := postgres.NewAccountRepository(testDB.DB)
	ctx := context.Background()

	t.Run("create and get", func(t *testing.T) {
		testDB.Truncate(t)

		account := &domain.Account{
			ID:           uuid.New(),
			Name:         "Asha Rao",
			Email:        "asha@example.com",
			PasswordHash: "$2a$10$fakehashfakehashfakehash",
			Active:       true,
		}
		require.NoError(t, repo.Create(ctx, account))

		byID, err := repo.GetByID(ctx, account.ID)
		require.NoError(t, err)
		assert.Equal(t, account.Email, byID.Email)

		byEmail, err := repo.GetByEmail(ctx, "asha@example.com")
		require.NoError(t, err)
		assert.Equal(t, account.ID, byEmail.ID)
	})

	t.Run("duplicate email rejected", func(t *testing.T) {
		testDB.Truncate(t)

		first := &domain.Account{ID: uuid.New(), Name: "One", Email: "dup@example.com", PasswordHash: "x"}
		require.NoError(t, repo.Create(ctx, first))

		second := &domain.Account{ID: uuid.New(), Name: "Two", Email: "dup@example.com", PasswordHash: "x"}
		assert.Error(t, repo.Create(ctx, second))
	})

	t.Run("get missing returns record not found", func(t *testing.T) {
		testDB.Truncate(t)

		_, err := repo.GetByID(ctx, uuid.New())
		assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

		_, err = repo.GetByEmail(ctx, "missing@example.com")
		assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
	})

	t.Run("set and complete reset code", func(t *testing.T) {
		testDB.Truncate(t)

		account, _ := testutil.NewAccountBuilder().Build(t, repo)

		expiresAt := time.Now().Add(10 * time.Minute).UTC()
		require.NoError(t, repo.SetResetCode(ctx, account.ID, "482019", expiresAt))

		stored, err := repo.GetByID(ctx, account.ID)
		require.NoError(t, err)
		assert.Equal(t, "482019", stored.ResetCode)
		assert.WithinDuration(t, expiresAt, stored.ResetCodeExpiresAt, time.Second)

		require.NoError(t, repo.CompleteReset(ctx, account.ID, "new-hash"))

		stored, err = repo.GetByID(ctx, account.ID)
		require.NoError(t, err)
		assert.Empty(t, stored.ResetCode)
		assert.Equal(t, "new-hash", stored.PasswordHash)
		assert.False(t, stored.HasResetCode())
	})

	t.Run("set reset code on missing account", func(t *testing.T) {
		testDB.Truncate(t)

		err := repo.SetResetCode(ctx, uuid.New(), "123456", time.Now().Add(time.Minute))
		assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
	})

	t.Run("delete is permanent", func(t *testing.T) {
		testDB.Truncate(t)

		account, _ := testutil.NewAccountBuilder().Build(t, repo)

		require.NoError(t, repo.Delete(ctx, account.ID))

		_, err := repo.GetByID(ctx, account.ID)
		assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

		assert.ErrorIs(t, repo.Delete(ctx, account.ID), gorm.ErrRecordNotFound)
	})
}
