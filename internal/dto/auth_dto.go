package dto

import (
	"time"

	"github.com/google/uuid"
)

// Credentials arrive in the HTTP Basic header, never in the body.
type Credentials struct {
	Username string `validate:"required,max=64,excludesall=:/\\"`
	Password string `validate:"required,max=72"`
}

type RegisterResponse struct {
	Message string    `json:"message"`
	UserId  uuid.UUID `json:"user_id"`
}

type LoginResponse struct {
	Message     string    `json:"message"`
	AccessToken string    `json:"access_token"`
	ExpiresAt   time.Time `json:"expires_at"`
}
