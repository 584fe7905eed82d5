package repository

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/meridianfs/meridian-backend/internal/domain"
)

type AccountRepository interface {
	Create(ctx context.Context, account *domain.Account) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Account, error)
	GetByEmail(ctx context.Context, email string) (*domain.Account, error)
	Update(ctx context.Context, account *domain.Account) error
	// SetResetCode writes the code and its expiry in a single statement.
	SetResetCode(ctx context.Context, id uuid.UUID, code string, expiresAt time.Time) error
	// CompleteReset swaps in the new password hash and clears the reset code
	// in a single statement.
	CompleteReset(ctx context.Context, id uuid.UUID, passwordHash string) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type RefreshTokenRepository interface {
	Create(ctx context.Context, token *domain.RefreshToken) error
	// GetActiveByHash returns the token record only if it is unrevoked and
	// unexpired; everything else is a not-found.
	GetActiveByHash(ctx context.Context, hash string) (*domain.RefreshToken, error)
	Revoke(ctx context.Context, id uuid.UUID) error
	RevokeAllForAccount(ctx context.Context, accountID uuid.UUID) error
}

type CategoryRepository interface {
	Create(ctx context.Context, category *domain.Category) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Category, error)
	GetBySlug(ctx context.Context, slug string) (*domain.Category, error)
	GetAll(ctx context.Context) ([]*domain.Category, error)
	Update(ctx context.Context, category *domain.Category) error
	Delete(ctx context.Context, id uuid.UUID) error
	CountDocuments(ctx context.Context, categoryID uuid.UUID) (int64, error)
}

// DocumentFilter narrows List results. Nil/empty fields are ignored.
type DocumentFilter struct {
	CategoryID    *uuid.UUID
	Kind          *domain.DocumentKind
	PublishedOnly bool
}

type DocumentRepository interface {
	Create(ctx context.Context, document *domain.Document) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Document, error)
	List(ctx context.Context, filter DocumentFilter) ([]*domain.Document, error)
	Update(ctx context.Context, document *domain.Document) error
	Delete(ctx context.Context, id uuid.UUID) error
	Restore(ctx context.Context, id uuid.UUID) error
	// IncrementDownloadCount bumps the counter atomically in the store.
	IncrementDownloadCount(ctx context.Context, id uuid.UUID) error
}

type ContactRepository interface {
	Create(ctx context.Context, message *domain.ContactMessage) error
	GetAll(ctx context.Context) ([]*domain.ContactMessage, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type Repositories struct {
	Account      AccountRepository
	RefreshToken RefreshTokenRepository
	Category     CategoryRepository
	Document     DocumentRepository
	Contact      ContactRepository
}
