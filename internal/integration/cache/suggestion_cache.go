// Package cache implements the suggestion cache on Redis.
package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/budgetwise/backend/internal/application/adapter"
	"github.com/budgetwise/backend/internal/domain/entity"
)

// DefaultSuggestionTTL bounds staleness when an invalidation is missed.
const DefaultSuggestionTTL = 15 * time.Minute

// suggestionCache implements adapter.SuggestionCache on Redis. Keys are
// namespaced per user so InvalidateUser can drop them with one scan.
type suggestionCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewSuggestionCache creates a new Redis-backed suggestion cache.
func NewSuggestionCache(client *redis.Client, ttl time.Duration) adapter.SuggestionCache {
	if ttl <= 0 {
		ttl = DefaultSuggestionTTL
	}
	return &suggestionCache{
		client: client,
		ttl:    ttl,
	}
}

// Get returns the cached suggestions for the description, or nil on a miss.
func (c *suggestionCache) Get(ctx context.Context, userID uuid.UUID, description string) ([]entity.Suggestion, error) {
	data, err := c.client.Get(ctx, suggestionKey(userID, description)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read suggestion cache: %w", err)
	}

	var suggestions []entity.Suggestion
	if err := json.Unmarshal(data, &suggestions); err != nil {
		// A corrupt entry is treated as a miss.
		return nil, nil
	}
	return suggestions, nil
}

// Set stores the suggestions for the description.
func (c *suggestionCache) Set(ctx context.Context, userID uuid.UUID, description string, suggestions []entity.Suggestion) error {
	data, err := json.Marshal(suggestions)
	if err != nil {
		return fmt.Errorf("failed to encode suggestions: %w", err)
	}

	if err := c.client.Set(ctx, suggestionKey(userID, description), data, c.ttl).Err(); err != nil {
		return fmt.Errorf("failed to write suggestion cache: %w", err)
	}
	return nil
}

// InvalidateUser drops all cached suggestions for the user.
func (c *suggestionCache) InvalidateUser(ctx context.Context, userID uuid.UUID) error {
	pattern := userKeyPrefix(userID) + "*"

	var cursor uint64
	for {
		keys, next, err := c.client.Scan(ctx, cursor, pattern, 100).Result()
		if err != nil {
			return fmt.Errorf("failed to scan suggestion cache: %w", err)
		}
		if len(keys) > 0 {
			if err := c.client.Del(ctx, keys...).Err(); err != nil {
				return fmt.Errorf("failed to delete suggestion cache keys: %w", err)
			}
		}
		cursor = next
		if cursor == 0 {
			return nil
		}
	}
}

func userKeyPrefix(userID uuid.UUID) string {
	return "suggestions:" + userID.String() + ":"
}

func suggestionKey(userID uuid.UUID, description string) string {
	digest := sha256.Sum256([]byte(description))
	return userKeyPrefix(userID) + hex.EncodeToString(digest[:16])
}
