package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type DocumentKind string

const (
	KindCircular DocumentKind = "circular"
	KindKYCForm  DocumentKind = "kyc-form"
	KindPolicy   DocumentKind = "policy"
	KindOther    DocumentKind = "other"
)

// ValidKind reports whether k is one of the supported document kinds.
func ValidKind(k DocumentKind) bool {
	switch k {
	case KindCircular, KindKYCForm, KindPolicy, KindOther:
		return true
	}
	return false
}

type Category struct {
	ID          uuid.UUID      `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	Name        string         `json:"name" gorm:"not null"`
	Slug        string         `json:"slug" gorm:"uniqueIndex;not null"`
	Description string         `json:"description"`
	SortOrder   int            `json:"sortOrder" gorm:"not null;default:0"`
	CreatedAt   time.Time      `json:"createdAt"`
	UpdatedAt   time.Time      `json:"updatedAt"`
	DeletedAt   gorm.DeletedAt `json:"-" gorm:"index"`
}

type Document struct {
	ID            uuid.UUID      `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	Title         string         `json:"title" gorm:"not null"`
	CategoryID    uuid.UUID      `json:"categoryId" gorm:"type:uuid;index;not null"`
	Kind          DocumentKind   `json:"kind" gorm:"not null"`
	FileName      string         `json:"fileName" gorm:"not null"`
	FilePath      string         `json:"-" gorm:"not null"`
	FileSize      int64          `json:"fileSize"`
	ContentType   string         `json:"contentType"`
	Tags          datatypes.JSON `json:"tags" gorm:"type:jsonb;default:'[]'"`
	DownloadCount int64          `json:"downloadCount" gorm:"not null;default:0"`
	Published     bool           `json:"published" gorm:"not null;default:false"`
	CreatedAt     time.Time      `json:"createdAt"`
	UpdatedAt     time.Time      `json:"updatedAt"`
	DeletedAt     gorm.DeletedAt `json:"-" gorm:"index"`

	// Relations
	Category *Category `json:"category,omitempty" gorm:"foreignKey:CategoryID"`
}
