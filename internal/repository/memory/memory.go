// Package memory provides a mutex-guarded in-memory implementation of the
// repository interfaces. It is selected explicitly via configuration (STORAGE)
// for tests and local development; it is never a runtime fallback for a
// failing database.
package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/meridianfs/meridian-backend/internal/domain"
	"github.com/meridianfs/meridian-backend/internal/repository"
)

// Store holds all in-memory tables behind a single mutex so that every
// operation is an atomic per-record update, matching what the SQL store
// guarantees.
type Store struct {
	mu sync.Mutex

	accounts   map[uuid.UUID]domain.Account
	tokens     map[uuid.UUID]domain.RefreshToken
	categories map[uuid.UUID]categoryRecord
	documents  map[uuid.UUID]documentRecord
	contacts   map[uuid.UUID]domain.ContactMessage
}

type categoryRecord struct {
	category  domain.Category
	deletedAt *time.Time
}

type documentRecord struct {
	document  domain.Document
	deletedAt *time.Time
}

func NewStore() *Store {
	return &Store{
		accounts:   make(map[uuid.UUID]domain.Account),
		tokens:     make(map[uuid.UUID]domain.RefreshToken),
		categories: make(map[uuid.UUID]categoryRecord),
		documents:  make(map[uuid.UUID]documentRecord),
		contacts:   make(map[uuid.UUID]domain.ContactMessage),
	}
}

func NewRepositories() *repository.Repositories {
	store := NewStore()
	return &repository.Repositories{
		Account:      &accountRepository{store: store},
		RefreshToken: &refreshTokenRepository{store: store},
		Category:     &categoryRepository{store: store},
		Document:     &documentRepository{store: store},
		Contact:      &contactRepository{store: store},
	}
}

// --- accounts ---

type accountRepository struct {
	store *Store
}

func (r *accountRepository) Create(ctx context.Context, account *domain.Account) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	for _, existing := range r.store.accounts {
		if strings.EqualFold(existing.Email, account.Email) {
			return gorm.ErrDuplicatedKey
		}
	}

	if account.ID == uuid.Nil {
		account.ID = uuid.New()
	}
	now := time.Now()
	if account.CreatedAt.IsZero() {
		account.CreatedAt = now
	}
	account.UpdatedAt = now

	r.store.accounts[account.ID] = *account
	return nil
}

func (r *accountRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Account, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	account, ok := r.store.accounts[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &account, nil
}

func (r *accountRepository) GetByEmail(ctx context.Context, email string) (*domain.Account, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	for _, account := range r.store.accounts {
		if account.Email == email {
			found := account
			return &found, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *accountRepository) Update(ctx context.Context, account *domain.Account) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if _, ok := r.store.accounts[account.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	account.UpdatedAt = time.Now()
	r.store.accounts[account.ID] = *account
	return nil
}

func (r *accountRepository) SetResetCode(ctx context.Context, id uuid.UUID, code string, expiresAt time.Time) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	account, ok := r.store.accounts[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	account.ResetCode = code
	account.ResetCodeExpiresAt = expiresAt
	account.UpdatedAt = time.Now()
	r.store.accounts[id] = account
	return nil
}

func (r *accountRepository) CompleteReset(ctx context.Context, id uuid.UUID, passwordHash string) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	account, ok := r.store.accounts[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	account.PasswordHash = passwordHash
	account.ResetCode = ""
	account.ResetCodeExpiresAt = time.Unix(0, 0)
	account.UpdatedAt = time.Now()
	r.store.accounts[id] = account
	return nil
}

func (r *accountRepository) Delete(ctx context.Context, id uuid.UUID) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if _, ok := r.store.accounts[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(r.store.accounts, id)
	return nil
}

// --- refresh tokens ---

type refreshTokenRepository struct {
	store *Store
}

func (r *refreshTokenRepository) Create(ctx context.Context, token *domain.RefreshToken) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if token.ID == uuid.Nil {
		token.ID = uuid.New()
	}
	if token.CreatedAt.IsZero() {
		token.CreatedAt = time.Now()
	}
	r.store.tokens[token.ID] = *token
	return nil
}

func (r *refreshTokenRepository) GetActiveByHash(ctx context.Context, hash string) (*domain.RefreshToken, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	for _, token := range r.store.tokens {
		if token.TokenHash == hash && !token.Revoked && token.ExpiresAt.After(time.Now()) {
			found := token
			return &found, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *refreshTokenRepository) Revoke(ctx context.Context, id uuid.UUID) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	token, ok := r.store.tokens[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	token.Revoked = true
	r.store.tokens[id] = token
	return nil
}

func (r *refreshTokenRepository) RevokeAllForAccount(ctx context.Context, accountID uuid.UUID) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	for id, token := range r.store.tokens {
		if token.AccountID == accountID && !token.Revoked {
			token.Revoked = true
			r.store.tokens[id] = token
		}
	}
	return nil
}

// --- categories ---

type categoryRepository struct {
	store *Store
}

func (r *categoryRepository) Create(ctx context.Context, category *domain.Category) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	for _, record := range r.store.categories {
		if record.deletedAt == nil && record.category.Slug == category.Slug {
			return gorm.ErrDuplicatedKey
		}
	}

	if category.ID == uuid.Nil {
		category.ID = uuid.New()
	}
	now := time.Now()
	if category.CreatedAt.IsZero() {
		category.CreatedAt = now
	}
	category.UpdatedAt = now

	r.store.categories[category.ID] = categoryRecord{category: *category}
	return nil
}

func (r *categoryRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Category, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	record, ok := r.store.categories[id]
	if !ok || record.deletedAt != nil {
		return nil, gorm.ErrRecordNotFound
	}
	category := record.category
	return &category, nil
}

func (r *categoryRepository) GetBySlug(ctx context.Context, slug string) (*domain.Category, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	for _, record := range r.store.categories {
		if record.deletedAt == nil && record.category.Slug == slug {
			category := record.category
			return &category, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *categoryRepository) GetAll(ctx context.Context) ([]*domain.Category, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	var categories []*domain.Category
	for _, record := range r.store.categories {
		if record.deletedAt != nil {
			continue
		}
		category := record.category
		categories = append(categories, &category)
	}
	sort.Slice(categories, func(i, j int) bool {
		if categories[i].SortOrder != categories[j].SortOrder {
			return categories[i].SortOrder < categories[j].SortOrder
		}
		return categories[i].Name < categories[j].Name
	})
	return categories, nil
}

func (r *categoryRepository) Update(ctx context.Context, category *domain.Category) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	record, ok := r.store.categories[category.ID]
	if !ok || record.deletedAt != nil {
		return gorm.ErrRecordNotFound
	}
	category.UpdatedAt = time.Now()
	record.category = *category
	r.store.categories[category.ID] = record
	return nil
}

func (r *categoryRepository) Delete(ctx context.Context, id uuid.UUID) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	record, ok := r.store.categories[id]
	if !ok || record.deletedAt != nil {
		return gorm.ErrRecordNotFound
	}
	now := time.Now()
	record.deletedAt = &now
	r.store.categories[id] = record
	return nil
}

func (r *categoryRepository) CountDocuments(ctx context.Context, categoryID uuid.UUID) (int64, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	var count int64
	for _, record := range r.store.documents {
		if record.deletedAt == nil && record.document.CategoryID == categoryID {
			count++
		}
	}
	return count, nil
}

// --- documents ---

type documentRepository struct {
	store *Store
}

func (r *documentRepository) Create(ctx context.Context, document *domain.Document) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if document.ID == uuid.Nil {
		document.ID = uuid.New()
	}
	now := time.Now()
	if document.CreatedAt.IsZero() {
		document.CreatedAt = now
	}
	document.UpdatedAt = now

	r.store.documents[document.ID] = documentRecord{document: *document}
	return nil
}

func (r *documentRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Document, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	record, ok := r.store.documents[id]
	if !ok || record.deletedAt != nil {
		return nil, gorm.ErrRecordNotFound
	}
	document := record.document
	if catRecord, ok := r.store.categories[document.CategoryID]; ok && catRecord.deletedAt == nil {
		category := catRecord.category
		document.Category = &category
	}
	return &document, nil
}

func (r *documentRepository) List(ctx context.Context, filter repository.DocumentFilter) ([]*domain.Document, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	var documents []*domain.Document
	for _, record := range r.store.documents {
		if record.deletedAt != nil {
			continue
		}
		document := record.document
		if filter.CategoryID != nil && document.CategoryID != *filter.CategoryID {
			continue
		}
		if filter.Kind != nil && document.Kind != *filter.Kind {
			continue
		}
		if filter.PublishedOnly && !document.Published {
			continue
		}
		if catRecord, ok := r.store.categories[document.CategoryID]; ok && catRecord.deletedAt == nil {
			category := catRecord.category
			document.Category = &category
		}
		documents = append(documents, &document)
	}
	sort.Slice(documents, func(i, j int) bool {
		return documents[i].CreatedAt.After(documents[j].CreatedAt)
	})
	return documents, nil
}

func (r *documentRepository) Update(ctx context.Context, document *domain.Document) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	record, ok := r.store.documents[document.ID]
	if !ok || record.deletedAt != nil {
		return gorm.ErrRecordNotFound
	}
	document.UpdatedAt = time.Now()
	record.document = *document
	record.document.Category = nil
	r.store.documents[document.ID] = record
	return nil
}

func (r *documentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	record, ok := r.store.documents[id]
	if !ok || record.deletedAt != nil {
		return gorm.ErrRecordNotFound
	}
	now := time.Now()
	record.deletedAt = &now
	r.store.documents[id] = record
	return nil
}

func (r *documentRepository) Restore(ctx context.Context, id uuid.UUID) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	record, ok := r.store.documents[id]
	if !ok || record.deletedAt == nil {
		return gorm.ErrRecordNotFound
	}
	record.deletedAt = nil
	r.store.documents[id] = record
	return nil
}

func (r *documentRepository) IncrementDownloadCount(ctx context.Context, id uuid.UUID) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	record, ok := r.store.documents[id]
	if !ok || record.deletedAt != nil {
		return gorm.ErrRecordNotFound
	}
	record.document.DownloadCount++
	r.store.documents[id] = record
	return nil
}

// --- contact messages ---

type contactRepository struct {
	store *Store
}

func (r *contactRepository) Create(ctx context.Context, message *domain.ContactMessage) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if message.ID == uuid.Nil {
		message.ID = uuid.New()
	}
	if message.CreatedAt.IsZero() {
		message.CreatedAt = time.Now()
	}
	r.store.contacts[message.ID] = *message
	return nil
}

func (r *contactRepository) GetAll(ctx context.Context) ([]*domain.ContactMessage, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	var messages []*domain.ContactMessage
	for _, message := range r.store.contacts {
		found := message
		messages = append(messages, &found)
	}
	sort.Slice(messages, func(i, j int) bool {
		return messages[i].CreatedAt.After(messages[j].CreatedAt)
	})
	return messages, nil
}

func (r *contactRepository) Delete(ctx context.Context, id uuid.UUID) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if _, ok := r.store.contacts[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(r.store.contacts, id)
	return nil
}
