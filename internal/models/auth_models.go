package models

import "gym_backoffice/internal/access"

// Layouts used for every date and time stored as text.
const (
	DateLayout     = "2006-01-02"
	TimeLayout     = "15:04:05"
	DateTimeLayout = "2006-01-02 15:04:05"
)

// AdminAccount is an owner-level login. Admins bypass capability checks.
type AdminAccount struct {
	Username     string `json:"username" db:"username"`
	PasswordHash string `json:"-" db:"password_hash"` // '-' means don't send in JSON response
	Name         string `json:"name" db:"name"`
	CreatedAt    string `json:"created_at" db:"created_at"`
}

// Credentials for login request
type Credentials struct {
	Username string `json:"username" binding:"required,notblank"`
	Password string `json:"password" binding:"required"`
}

// LoginResponse is returned by a successful login.
type LoginResponse struct {
	AccessToken string           `json:"access_token"`
	TokenType   string           `json:"token_type"`
	ExpiresAt   int64            `json:"expires_at"`
	Principal   access.Principal `json:"principal"`
}
