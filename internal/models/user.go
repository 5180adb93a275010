package models

import (
	"time"

	"github.com/google/uuid"
)

// User represents an authenticated user. Identity is owned by the OIDC
// provider; rows are created lazily on first authenticated request.
type User struct {
	ID            uuid.UUID `json:"id"`
	Email         string    `json:"email"`
	ProviderID    *string   `json:"provider_id,omitempty"`
	Name          *string   `json:"name,omitempty"`
	EmailVerified bool      `json:"email_verified"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}
