package domain

import (
	"time"

	"github.com/google/uuid"
)

// Account is an authenticated principal. Reset code and its expiry are always
// written together; an empty code means no reset is in progress.
type Account struct {
	ID                 uuid.UUID `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	Name               string    `json:"name" gorm:"not null"`
	Email              string    `json:"email" gorm:"uniqueIndex;not null"`
	PasswordHash       string    `json:"-" gorm:"not null"`
	Active             bool      `json:"active" gorm:"not null;default:true"`
	ResetCode          string    `json:"-" gorm:"not null;default:''"`
	ResetCodeExpiresAt time.Time `json:"-"`
	CreatedAt          time.Time `json:"createdAt"`
	UpdatedAt          time.Time `json:"updatedAt"`
}

// HasResetCode reports whether a password reset code is currently set.
func (a *Account) HasResetCode() bool {
	return a.ResetCode != ""
}

// RefreshToken is the server-side record of an issued refresh token. Only the
// SHA-256 hash of the opaque token is stored. Rotated tokens are revoked, not
// deleted, so replay of a stale token always fails.
type RefreshToken struct {
	ID        uuid.UUID `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	AccountID uuid.UUID `json:"accountId" gorm:"type:uuid;index;not null"`
	TokenHash string    `json:"-" gorm:"uniqueIndex;not null"`
	ExpiresAt time.Time `json:"expiresAt" gorm:"not null"`
	Revoked   bool      `json:"revoked" gorm:"not null;default:false"`
	CreatedAt time.Time `json:"createdAt"`
}
