package service_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meridianfs/meridian-backend/internal/domain"
	"github.com/meridianfs/meridian-backend/internal/repository"
	"github.com/meridianfs/meridian-backend/internal/repository/memory"
	"github.com/meridianfs/meridian-backend/internal/service"
	"github.com/meridianfs/meridian-backend/internal/testutil"
)

func newDocumentFixture(t *testing.T) (*repository.Repositories, *service.DocumentService) {
	t.Helper()

	repos := memory.NewRepositories()
	return repos, service.NewDocumentService(repos.Document, repos.Category)
}

func TestDocumentService_Create(t *testing.T) {
	repos, svc := newDocumentFixture(t)
	ctx := context.Background()

	category := testutil.NewCategoryBuilder().Build(t, repos.Category)

	tests := []struct {
		name    string
		input   service.CreateDocumentInput
		wantErr error
	}{
		{
			name: "successful creation",
			input: service.CreateDocumentInput{
				Title:      "Investor Charter",
				CategoryID: category.ID,
				Kind:       domain.KindOther,
				FileName:   "investor-charter.pdf",
				FilePath:   "/uploads/investor-charter.pdf",
				Published:  true,
			},
		},
		{
			name: "invalid kind",
			input: service.CreateDocumentInput{
				Title:      "Bad Kind",
				CategoryID: category.ID,
				Kind:       domain.DocumentKind("brochure"),
			},
			wantErr: domain.ErrInvalidKind,
		},
		{
			name: "unknown category",
			input: service.CreateDocumentInput{
				Title:      "Orphan",
				CategoryID: uuid.New(),
				Kind:       domain.KindCircular,
			},
			wantErr: domain.ErrNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			document, err := svc.Create(ctx, tt.input)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.input.Title, document.Title)
			assert.Equal(t, int64(0), document.DownloadCount)
			assert.JSONEq(t, "[]", string(document.Tags))
		})
	}
}

func TestDocumentService_ListPublished(t *testing.T) {
	repos, svc := newDocumentFixture(t)
	ctx := context.Background()

	category := testutil.NewCategoryBuilder().Build(t, repos.Category)
	published := testutil.NewDocumentBuilder(category.ID).WithPublished(true).Build(t, repos.Document)
	testutil.NewDocumentBuilder(category.ID).WithPublished(false).Build(t, repos.Document)

	documents, err := svc.ListPublished(ctx, nil, nil)
	require.NoError(t, err)

	require.Len(t, documents, 1)
	assert.Equal(t, published.ID, documents[0].ID)
}

func TestDocumentService_ListFiltersByKind(t *testing.T) {
	repos, svc := newDocumentFixture(t)
	ctx := context.Background()

	category := testutil.NewCategoryBuilder().Build(t, repos.Category)
	testutil.NewDocumentBuilder(category.ID).WithKind(domain.KindCircular).Build(t, repos.Document)
	kyc := testutil.NewDocumentBuilder(category.ID).WithKind(domain.KindKYCForm).Build(t, repos.Document)

	kind := domain.KindKYCForm
	documents, err := svc.ListPublished(ctx, nil, &kind)
	require.NoError(t, err)

	require.Len(t, documents, 1)
	assert.Equal(t, kyc.ID, documents[0].ID)
}

func TestDocumentService_Download(t *testing.T) {
	repos, svc := newDocumentFixture(t)
	ctx := context.Background()

	category := testutil.NewCategoryBuilder().Build(t, repos.Category)
	document := testutil.NewDocumentBuilder(category.ID).WithPublished(true).Build(t, repos.Document)
	unpublished := testutil.NewDocumentBuilder(category.ID).WithPublished(false).Build(t, repos.Document)

	downloaded, err := svc.Download(ctx, document.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), downloaded.DownloadCount)

	downloaded, err = svc.Download(ctx, document.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), downloaded.DownloadCount)

	// Unpublished documents are indistinguishable from missing ones.
	_, err = svc.Download(ctx, unpublished.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = svc.Download(ctx, uuid.New())
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestDocumentService_DeleteAndRestore(t *testing.T) {
	repos, svc := newDocumentFixture(t)
	ctx := context.Background()

	category := testutil.NewCategoryBuilder().Build(t, repos.Category)
	document := testutil.NewDocumentBuilder(category.ID).Build(t, repos.Document)

	require.NoError(t, svc.Delete(ctx, document.ID))

	_, err := svc.Get(ctx, document.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = svc.Download(ctx, document.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	require.NoError(t, svc.Restore(ctx, document.ID))

	restored, err := svc.Get(ctx, document.ID)
	require.NoError(t, err)
	assert.Equal(t, document.ID, restored.ID)

	// Restoring a live document is a no-op failure.
	assert.ErrorIs(t, svc.Restore(ctx, document.ID), domain.ErrNotFound)
}

func TestDocumentService_Update(t *testing.T) {
	repos, svc := newDocumentFixture(t)
	ctx := context.Background()

	category := testutil.NewCategoryBuilder().Build(t, repos.Category)
	other := testutil.NewCategoryBuilder().Build(t, repos.Category)
	document := testutil.NewDocumentBuilder(category.ID).Build(t, repos.Document)

	newTitle := "Updated Circular"
	published := false
	updated, err := svc.Update(ctx, document.ID, service.UpdateDocumentInput{
		Title:      &newTitle,
		CategoryID: &other.ID,
		Published:  &published,
	})
	require.NoError(t, err)

	assert.Equal(t, newTitle, updated.Title)
	assert.Equal(t, other.ID, updated.CategoryID)
	assert.False(t, updated.Published)

	badKind := domain.DocumentKind("flyer")
	_, err = svc.Update(ctx, document.ID, service.UpdateDocumentInput{Kind: &badKind})
	assert.ErrorIs(t, err, domain.ErrInvalidKind)

	_, err = svc.Update(ctx, uuid.New(), service.UpdateDocumentInput{Title: &newTitle})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
