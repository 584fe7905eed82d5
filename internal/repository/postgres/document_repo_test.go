package postgres_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/meridianfs/meridian-backend/internal/domain"
	"github.com/meridianfs/meridian-backend/internal/repository"
	"github.com/meridianfs/meridian-backend/internal/repository/postgres"
	"github.com/meridianfs/meridian-backend/internal/testutil"
)

func TestDocumentRepository(t *testing.T) {
	testDB := testutil.NewTestDB(t)
	categories := postgres.NewCategoryRepository(testDB.DB)
	repo := postgres.NewDocumentRepository(testDB.DB)
	ctx := context.Background()

	t.Run("get preloads category", func(t *testing.T) {
		testDB.Truncate(t)

		category := testutil.NewCategoryBuilder().Build(t, categories)
		document := testutil.NewDocumentBuilder(category.ID).Build(t, repo)

		stored, err := repo.GetByID(ctx, document.ID)
		require.NoError(t, err)
		require.NotNil(t, stored.Category)
		assert.Equal(t, category.Name, stored.Category.Name)
	})

	t.Run("list filters", func(t *testing.T) {
		testDB.Truncate(t)

		circulars := testutil.NewCategoryBuilder().Build(t, categories)
		forms := testutil.NewCategoryBuilder().Build(t, categories)

		published := testutil.NewDocumentBuilder(circulars.ID).
			WithKind(domain.KindCircular).
			WithPublished(true).
			Build(t, repo)
		testutil.NewDocumentBuilder(circulars.ID).
			WithKind(domain.KindCircular).
			WithPublished(false).
			Build(t, repo)
		kyc := testutil.NewDocumentBuilder(forms.ID).
			WithKind(domain.KindKYCForm).
			WithPublished(true).
			Build(t, repo)

		all, err := repo.List(ctx, repository.DocumentFilter{})
		require.NoError(t, err)
		assert.Len(t, all, 3)

		publishedOnly, err := repo.List(ctx, repository.DocumentFilter{PublishedOnly: true})
		require.NoError(t, err)
		assert.Len(t, publishedOnly, 2)

		kind := domain.KindKYCForm
		byKind, err := repo.List(ctx, repository.DocumentFilter{Kind: &kind})
		require.NoError(t, err)
		require.Len(t, byKind, 1)
		assert.Equal(t, kyc.ID, byKind[0].ID)

		byCategory, err := repo.List(ctx, repository.DocumentFilter{
			CategoryID:    &circulars.ID,
			PublishedOnly: true,
		})
		require.NoError(t, err)
		require.Len(t, byCategory, 1)
		assert.Equal(t, published.ID, byCategory[0].ID)
	})

	t.Run("soft delete and restore", func(t *testing.T) {
		testDB.Truncate(t)

		category := testutil.NewCategoryBuilder().Build(t, categories)
		document := testutil.NewDocumentBuilder(category.ID).Build(t, repo)

		require.NoError(t, repo.Delete(ctx, document.ID))

		_, err := repo.GetByID(ctx, document.ID)
		assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

		listed, err := repo.List(ctx, repository.DocumentFilter{})
		require.NoError(t, err)
		assert.Empty(t, listed)

		// The row survives the delete and comes back on restore.
		require.NoError(t, repo.Restore(ctx, document.ID))

		restored, err := repo.GetByID(ctx, document.ID)
		require.NoError(t, err)
		assert.Equal(t, document.ID, restored.ID)

		assert.ErrorIs(t, repo.Restore(ctx, document.ID), gorm.ErrRecordNotFound)
	})

	t.Run("increment download count", func(t *testing.T) {
		testDB.Truncate(t)

		category := testutil.NewCategoryBuilder().Build(t, categories)
		document := testutil.NewDocumentBuilder(category.ID).Build(t, repo)

		for i := 0; i < 3; i++ {
			require.NoError(t, repo.IncrementDownloadCount(ctx, document.ID))
		}

		stored, err := repo.GetByID(ctx, document.ID)
		require.NoError(t, err)
		assert.Equal(t, int64(3), stored.DownloadCount)

		assert.ErrorIs(t, repo.IncrementDownloadCount(ctx, uuid.New()), gorm.ErrRecordNotFound)
	})

	t.Run("category in use count", func(t *testing.T) {
		testDB.Truncate(t)

		category := testutil.NewCategoryBuilder().Build(t, categories)
		document := testutil.NewDocumentBuilder(category.ID).Build(t, repo)

		count, err := categories.CountDocuments(ctx, category.ID)
		require.NoError(t, err)
		assert.Equal(t, int64(1), count)

		// Soft-deleted documents no longer hold the category.
		require.NoError(t, repo.Delete(ctx, document.ID))

		count, err = categories.CountDocuments(ctx, category.ID)
		require.NoError(t, err)
		assert.Equal(t, int64(0), count)
	})
}
