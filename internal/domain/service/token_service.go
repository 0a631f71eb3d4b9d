package service

import (
	"time"

	"schoolapp/internal/domain/entity"
)

// SessionToken is a signed, time-bounded bearer credential.
type SessionToken struct {
	Token     string
	ExpiresAt time.Time
}

// TokenService defines the interface for issuing and validating session tokens.
type TokenService interface {
	// Issue signs the claim set with the configured secret, issuer, audience and validity window.
	Issue(claims entity.ClaimSet) (*SessionToken, error)

	// Validate checks signature, issuer, audience and expiry and returns the embedded claims.
	Validate(token string) (*entity.ClaimSet, error)
}
