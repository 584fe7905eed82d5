package testutil

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/meridianfs/meridian-backend/internal/domain"
	"github.com/meridianfs/meridian-backend/internal/repository"
)

// AccountBuilder creates test accounts with a builder pattern
type AccountBuilder struct {
	name     string
	email    string
	password string
}

// NewAccountBuilder creates a new AccountBuilder with default values
func NewAccountBuilder() *AccountBuilder {
	return &AccountBuilder{
		name:     "Test Account",
		email:    fmt.Sprintf("test_%s@example.com", uuid.New().String()[:8]),
		password: "testpassword123",
	}
}

func (b *AccountBuilder) WithName(name string) *AccountBuilder {
	b.name = name
	return b
}

func (b *AccountBuilder) WithEmail(email string) *AccountBuilder {
	b.email = email
	return b
}

func (b *AccountBuilder) WithPassword(password string) *AccountBuilder {
	b.password = password
	return b
}

// Build creates the account in the store and returns it with the raw password
func (b *AccountBuilder) Build(t *testing.T, repo repository.AccountRepository) (*domain.Account, string) {
	t.Helper()

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(b.password), bcrypt.DefaultCost)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}

	account := &domain.Account{
		ID:           uuid.New(),
		Name:         b.name,
		Email:        b.email,
		PasswordHash: string(hashedPassword),
		Active:       true,
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}

	if err := repo.Create(context.Background(), account); err != nil {
		t.Fatalf("failed to create account: %v", err)
	}

	return account, b.password
}

// CategoryBuilder creates test categories
type CategoryBuilder struct {
	name      string
	slug      string
	sortOrder int
}

func NewCategoryBuilder() *CategoryBuilder {
	suffix := uuid.New().String()[:8]
	return &CategoryBuilder{
		name: "Category " + suffix,
		slug: "category-" + suffix,
	}
}

func (b *CategoryBuilder) WithName(name string) *CategoryBuilder {
	b.name = name
	return b
}

func (b *CategoryBuilder) WithSlug(slug string) *CategoryBuilder {
	b.slug = slug
	return b
}

func (b *CategoryBuilder) WithSortOrder(order int) *CategoryBuilder {
	b.sortOrder = order
	return b
}

func (b *CategoryBuilder) Build(t *testing.T, repo repository.CategoryRepository) *domain.Category {
	t.Helper()

	category := &domain.Category{
		ID:        uuid.New(),
		Name:      b.name,
		Slug:      b.slug,
		SortOrder: b.sortOrder,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}

	if err := repo.Create(context.Background(), category); err != nil {
		t.Fatalf("failed to create category: %v", err)
	}

	return category
}

// DocumentBuilder creates test documents
type DocumentBuilder struct {
	title      string
	categoryID uuid.UUID
	kind       domain.DocumentKind
	published  bool
	filePath   string
}

func NewDocumentBuilder(categoryID uuid.UUID) *DocumentBuilder {
	return &DocumentBuilder{
		title:      "Document " + uuid.New().String()[:8],
		categoryID: categoryID,
		kind:       domain.KindCircular,
		published:  true,
		filePath:   "/tmp/test-document.pdf",
	}
}

func (b *DocumentBuilder) WithTitle(title string) *DocumentBuilder {
	b.title = title
	return b
}

func (b *DocumentBuilder) WithKind(kind domain.DocumentKind) *DocumentBuilder {
	b.kind = kind
	return b
}

func (b *DocumentBuilder) WithPublished(published bool) *DocumentBuilder {
	b.published = published
	return b
}

func (b *DocumentBuilder) WithFilePath(path string) *DocumentBuilder {
	b.filePath = path
	return b
}

func (b *DocumentBuilder) Build(t *testing.T, repo repository.DocumentRepository) *domain.Document {
	t.Helper()

	document := &domain.Document{
		ID:          uuid.New(),
		Title:       b.title,
		CategoryID:  b.categoryID,
		Kind:        b.kind,
		FileName:    "test-document.pdf",
		FilePath:    b.filePath,
		FileSize:    1024,
		ContentType: "application/pdf",
		Tags:        []byte(`["test"]`),
		Published:   b.published,
		CreatedAt:   time.Now(),
		UpdatedAt:   time.Now(),
	}

	if err := repo.Create(context.Background(), document); err != nil {
		t.Fatalf("failed to create document: %v", err)
	}

	return document
}
