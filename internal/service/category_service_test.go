package service_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meridianfs/meridian-backend/internal/domain"
	"github.com/meridianfs/meridian-backend/internal/repository/memory"
	"github.com/meridianfs/meridian-backend/internal/service"
	"github.com/meridianfs/meridian-backend/internal/testutil"
)

func TestSlugify(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "simple", in: "Circulars", want: "circulars"},
		{name: "spaces", in: "KYC Forms", want: "kyc-forms"},
		{name: "punctuation", in: "Policies & Charters!", want: "policies-charters"},
		{name: "leading trailing", in: "  Other Files  ", want: "other-files"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, service.Slugify(tt.in))
		})
	}
}

func TestCategoryService_Create(t *testing.T) {
	repos := memory.NewRepositories()
	svc := service.NewCategoryService(repos.Category)
	ctx := context.Background()

	category, err := svc.Create(ctx, service.CreateCategoryInput{
		Name:        "KYC Forms",
		Description: "Know-your-customer forms",
		SortOrder:   2,
	})
	require.NoError(t, err)
	assert.Equal(t, "kyc-forms", category.Slug)

	// A second category with the same derived slug conflicts.
	_, err = svc.Create(ctx, service.CreateCategoryInput{Name: "KYC  Forms"})
	assert.ErrorIs(t, err, domain.ErrDuplicateSlug)
}

func TestCategoryService_Delete(t *testing.T) {
	repos := memory.NewRepositories()
	svc := service.NewCategoryService(repos.Category)
	ctx := context.Background()

	empty := testutil.NewCategoryBuilder().Build(t, repos.Category)
	inUse := testutil.NewCategoryBuilder().Build(t, repos.Category)
	document := testutil.NewDocumentBuilder(inUse.ID).Build(t, repos.Document)

	assert.ErrorIs(t, svc.Delete(ctx, inUse.ID), domain.ErrCategoryInUse)

	// Soft-deleting the document frees the category.
	require.NoError(t, repos.Document.Delete(ctx, document.ID))
	require.NoError(t, svc.Delete(ctx, inUse.ID))

	require.NoError(t, svc.Delete(ctx, empty.ID))
	assert.ErrorIs(t, svc.Delete(ctx, empty.ID), domain.ErrNotFound)
	assert.ErrorIs(t, svc.Delete(ctx, uuid.New()), domain.ErrNotFound)
}

func TestCategoryService_ListOrdering(t *testing.T) {
	repos := memory.NewRepositories()
	svc := service.NewCategoryService(repos.Category)
	ctx := context.Background()

	testutil.NewCategoryBuilder().WithName("Zeta").WithSlug("zeta").WithSortOrder(1).Build(t, repos.Category)
	testutil.NewCategoryBuilder().WithName("Alpha").WithSlug("alpha").WithSortOrder(1).Build(t, repos.Category)
	testutil.NewCategoryBuilder().WithName("First").WithSlug("first").WithSortOrder(0).Build(t, repos.Category)

	categories, err := svc.List(ctx)
	require.NoError(t, err)

	require.Len(t, categories, 3)
	assert.Equal(t, "First", categories[0].Name)
	assert.Equal(t, "Alpha", categories[1].Name)
	assert.Equal(t, "Zeta", categories[2].Name)
}

func TestCategoryService_Update(t *testing.T) {
	repos := memory.NewRepositories()
	svc := service.NewCategoryService(repos.Category)
	ctx := context.Background()

	category := testutil.NewCategoryBuilder().Build(t, repos.Category)

	newName := "Renamed"
	newOrder := 5
	updated, err := svc.Update(ctx, category.ID, service.UpdateCategoryInput{
		Name:      &newName,
		SortOrder: &newOrder,
	})
	require.NoError(t, err)

	assert.Equal(t, "Renamed", updated.Name)
	assert.Equal(t, 5, updated.SortOrder)
	// Slug is stable across renames.
	assert.Equal(t, category.Slug, updated.Slug)

	_, err = svc.Update(ctx, uuid.New(), service.UpdateCategoryInput{Name: &newName})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
