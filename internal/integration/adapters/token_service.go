// Package adapters implements adapter interfaces from the application layer.
package adapters

import (
	"context"
	"fmt"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/budgetwise/backend/internal/application/adapter"
	domainerror "github.com/budgetwise/backend/internal/domain/error"
)

// CustomClaims represents the custom claims for JWT tokens issued by the
// auth service.
type CustomClaims struct {
	UserID string `json:"user_id"`
	Email  string `json:"email"`
	jwt.RegisteredClaims
}

// tokenService implements the adapter.TokenService interface.
type tokenService struct {
	secret []byte
}

// NewTokenService creates a new token service instance.
func NewTokenService(secret string) adapter.TokenService {
	return &tokenService{
		secret: []byte(secret),
	}
}

// ValidateAccessToken validates an access token and returns its claims.
func (s *tokenService) ValidateAccessToken(_ context.Context, tokenString string) (*adapter.TokenClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &CustomClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil {
		return nil, domainerror.NewAuthError(
			domainerror.ErrCodeInvalidToken,
			"failed to parse token",
			err,
		)
	}

	claims, ok := token.Claims.(*CustomClaims)
	if !ok || !token.Valid {
		return nil, domainerror.NewAuthError(
			domainerror.ErrCodeInvalidToken,
			"invalid token claims",
			domainerror.ErrInvalidToken,
		)
	}

	userID, err := uuid.Parse(claims.UserID)
	if err != nil {
		return nil, domainerror.NewAuthError(
			domainerror.ErrCodeInvalidToken,
			"invalid user ID in token",
			err,
		)
	}

	return &adapter.TokenClaims{
		UserID: userID,
		Email:  claims.Email,
	}, nil
}
