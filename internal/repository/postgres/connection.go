package postgres

import (
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/meridianfs/meridian-backend/internal/domain"
	"github.com/meridianfs/meridian-backend/internal/repository"
)

func NewConnection(databaseURL string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(databaseURL), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, err
	}

	// Auto-migrate tables
	err = db.AutoMigrate(
		&domain.Account{},
		&domain.RefreshToken{},
		&domain.Category{},
		&domain.Document{},
		&domain.ContactMessage{},
	)
	if err != nil {
		return nil, err
	}

	return db, nil
}

func NewRepositories(db *gorm.DB) *repository.Repositories {
	return &repository.Repositories{
		Account:      NewAccountRepository(db),
		RefreshToken: NewRefreshTokenRepository(db),
		Category:     NewCategoryRepository(db),
		Document:     NewDocumentRepository(db),
		Contact:      NewContactRepository(db),
	}
}
