// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"

	"github.com/google/uuid"

	"github.com/budgetwise/backend/internal/domain/entity"
)

// SuggestionCache caches suggestion lists per user and description.
//
// The cache is best-effort: implementations return errors so callers can log
// them, but suggest flows must degrade to recomputation rather than failing
// the request.
type SuggestionCache interface {
	// Get returns the cached suggestions for the description, or nil on a miss.
	Get(ctx context.Context, userID uuid.UUID, description string) ([]entity.Suggestion, error)

	// Set stores the suggestions for the description.
	Set(ctx context.Context, userID uuid.UUID, description string, suggestions []entity.Suggestion) error

	// InvalidateUser drops all cached suggestions for the user. Called after
	// rule writes and manual categorizations, which change future results.
	InvalidateUser(ctx context.Context, userID uuid.UUID) error
}
