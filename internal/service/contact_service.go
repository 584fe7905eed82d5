package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/meridianfs/meridian-backend/internal/domain"
	"github.com/meridianfs/meridian-backend/internal/repository"
)

type ContactService struct {
	contactRepo repository.ContactRepository
}

func NewContactService(contactRepo repository.ContactRepository) *ContactService {
	return &ContactService{contactRepo: contactRepo}
}

type SubmitContactInput struct {
	Name    string
	Email   string
	Phone   string
	Subject string
	Message string
}

func (s *ContactService) Submit(ctx context.Context, input SubmitContactInput) (*domain.ContactMessage, error) {
	message := &domain.ContactMessage{
		ID:        uuid.New(),
		Name:      input.Name,
		Email:     NormalizeEmail(input.Email),
		Phone:     input.Phone,
		Subject:   input.Subject,
		Message:   input.Message,
		CreatedAt: time.Now(),
	}

	if err := s.contactRepo.Create(ctx, message); err != nil {
		return nil, err
	}
	return message, nil
}

func (s *ContactService) List(ctx context.Context) ([]*domain.ContactMessage, error) {
	return s.contactRepo.GetAll(ctx)
}

func (s *ContactService) Delete(ctx context.Context, id uuid.UUID) error {
	err := s.contactRepo.Delete(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.ErrNotFound
	}
	return err
}
