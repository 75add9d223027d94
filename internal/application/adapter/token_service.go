// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"
	"time"
)

// TokenClaims represents the claims contained in an API access token.
type TokenClaims struct {
	Subject   string
	Issuer    string
	ExpiresAt time.Time
}

// TokenService defines the interface for API access token operations.
type TokenService interface {
	// GenerateAccessToken issues a signed token for the given subject.
	GenerateAccessToken(ctx context.Context, subject string, duration time.Duration) (string, error)

	// ValidateAccessToken validates an access token and returns its claims.
	ValidateAccessToken(ctx context.Context, token string) (*TokenClaims, error)
}
