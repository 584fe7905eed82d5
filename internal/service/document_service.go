package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/meridianfs/meridian-backend/internal/domain"
	"github.com/meridianfs/meridian-backend/internal/repository"
)

type DocumentService struct {
	documentRepo repository.DocumentRepository
	categoryRepo repository.CategoryRepository
}

func NewDocumentService(documentRepo repository.DocumentRepository, categoryRepo repository.CategoryRepository) *DocumentService {
	return &DocumentService{
		documentRepo: documentRepo,
		categoryRepo: categoryRepo,
	}
}

type CreateDocumentInput struct {
	Title       string
	CategoryID  uuid.UUID
	Kind        domain.DocumentKind
	FileName    string
	FilePath    string
	FileSize    int64
	ContentType string
	Tags        datatypes.JSON
	Published   bool
}

type UpdateDocumentInput struct {
	Title      *string
	CategoryID *uuid.UUID
	Kind       *domain.DocumentKind
	Tags       datatypes.JSON
	Published  *bool
}

func (s *DocumentService) Create(ctx context.Context, input CreateDocumentInput) (*domain.Document, error) {
	if !domain.ValidKind(input.Kind) {
		return nil, domain.ErrInvalidKind
	}

	if _, err := s.categoryRepo.GetByID(ctx, input.CategoryID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}

	document := &domain.Document{
		ID:          uuid.New(),
		Title:       input.Title,
		CategoryID:  input.CategoryID,
		Kind:        input.Kind,
		FileName:    input.FileName,
		FilePath:    input.FilePath,
		FileSize:    input.FileSize,
		ContentType: input.ContentType,
		Tags:        input.Tags,
		Published:   input.Published,
		CreatedAt:   time.Now(),
		UpdatedAt:   time.Now(),
	}
	if document.Tags == nil {
		document.Tags = datatypes.JSON([]byte("[]"))
	}

	if err := s.documentRepo.Create(ctx, document); err != nil {
		return nil, err
	}
	return document, nil
}

func (s *DocumentService) Get(ctx context.Context, id uuid.UUID) (*domain.Document, error) {
	document, err := s.documentRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return document, nil
}

func (s *DocumentService) List(ctx context.Context, filter repository.DocumentFilter) ([]*domain.Document, error) {
	return s.documentRepo.List(ctx, filter)
}

// ListPublished returns the documents the marketing site surfaces.
func (s *DocumentService) ListPublished(ctx context.Context, categoryID *uuid.UUID, kind *domain.DocumentKind) ([]*domain.Document, error) {
	return s.documentRepo.List(ctx, repository.DocumentFilter{
		CategoryID:    categoryID,
		Kind:          kind,
		PublishedOnly: true,
	})
}

func (s *DocumentService) Update(ctx context.Context, id uuid.UUID, input UpdateDocumentInput) (*domain.Document, error) {
	document, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Title != nil {
		document.Title = *input.Title
	}
	if input.CategoryID != nil {
		if _, err := s.categoryRepo.GetByID(ctx, *input.CategoryID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, domain.ErrNotFound
			}
			return nil, err
		}
		document.CategoryID = *input.CategoryID
	}
	if input.Kind != nil {
		if !domain.ValidKind(*input.Kind) {
			return nil, domain.ErrInvalidKind
		}
		document.Kind = *input.Kind
	}
	if input.Tags != nil {
		document.Tags = input.Tags
	}
	if input.Published != nil {
		document.Published = *input.Published
	}
	document.UpdatedAt = time.Now()
	document.Category = nil

	if err := s.documentRepo.Update(ctx, document); err != nil {
		return nil, err
	}
	return document, nil
}

func (s *DocumentService) Delete(ctx context.Context, id uuid.UUID) error {
	err := s.documentRepo.Delete(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.ErrNotFound
	}
	return err
}

func (s *DocumentService) Restore(ctx context.Context, id uuid.UUID) error {
	err := s.documentRepo.Restore(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.ErrNotFound
	}
	return err
}

// Download returns a published document and records the download. Unpublished
// or deleted documents are indistinguishable from missing ones.
func (s *DocumentService) Download(ctx context.Context, id uuid.UUID) (*domain.Document, error) {
	document, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if !document.Published {
		return nil, domain.ErrNotFound
	}

	if err := s.documentRepo.IncrementDownloadCount(ctx, id); err != nil {
		return nil, err
	}
	document.DownloadCount++
	return document, nil
}
