package service

import (
	"github.com/meridianfs/meridian-backend/internal/config"
	"github.com/meridianfs/meridian-backend/internal/identity"
	"github.com/meridianfs/meridian-backend/internal/notify"
	"github.com/meridianfs/meridian-backend/internal/repository"
)

type Services struct {
	Account  *AccountService
	Document *DocumentService
	Category *CategoryService
	Contact  *ContactService
}

func NewServices(
	repos *repository.Repositories,
	notifier notify.Notifier,
	provider identity.Provider,
	cfg *config.Config,
) *Services {
	return &Services{
		Account:  NewAccountService(repos, notifier, provider, cfg),
		Document: NewDocumentService(repos.Document, repos.Category),
		Category: NewCategoryService(repos.Category),
		Contact:  NewContactService(repos.Contact),
	}
}
