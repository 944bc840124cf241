// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"

	"github.com/google/uuid"
)

// TokenClaims represents the validated claims of an access token.
type TokenClaims struct {
	UserID uuid.UUID
	Email  string
}

// TokenService validates access tokens issued by the external auth service.
type TokenService interface {
	// ValidateAccessToken parses and validates a bearer token and returns its claims.
	ValidateAccessToken(ctx context.Context, token string) (*TokenClaims, error)
}
