package domain

import "errors"

// Account and credential errors
var (
	ErrNotFound            = errors.New("not found")
	ErrDuplicateEmail      = errors.New("email already registered")
	ErrInvalidCredentials  = errors.New("invalid credentials")
	ErrInvalidCode         = errors.New("invalid reset code")
	ErrCodeExpired         = errors.New("reset code expired")
	ErrDeliveryFailed      = errors.New("failed to deliver reset code")
	ErrInvalidRefreshToken = errors.New("invalid or expired refresh token")
)

// Document and category errors
var (
	ErrCategoryInUse   = errors.New("category has documents assigned")
	ErrInvalidKind     = errors.New("invalid document kind")
	ErrDuplicateSlug   = errors.New("slug already exists")
	ErrNotDownloadable = errors.New("document is not available for download")
)
