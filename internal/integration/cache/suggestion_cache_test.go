package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/budgetwise/backend/internal/domain/entity"
)

func setupCache(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return mr, client
}

func TestSuggestionCache(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()

	suggestions := []entity.Suggestion{
		{CategoryID: uuid.New(), Confidence: 0.9, Reason: entity.SuggestionReasonRuleMatch},
		{CategoryID: uuid.New(), Confidence: 0.5, Reason: entity.SuggestionReasonSimilar},
	}

	t.Run("round trips suggestions", func(t *testing.T) {
		_, client := setupCache(t)
		c := NewSuggestionCache(client, time.Minute)

		if err := c.Set(ctx, userID, "STARBUCKS COFFEE", suggestions); err != nil {
			t.Fatalf("set failed: %v", err)
		}

		got, err := c.Get(ctx, userID, "STARBUCKS COFFEE")
		if err != nil {
			t.Fatalf("get failed: %v", err)
		}
		if len(got) != 2 {
			t.Fatalf("expected 2 suggestions, got %d", len(got))
		}
		if got[0].CategoryID != suggestions[0].CategoryID {
			t.Fatal("unexpected category in first suggestion")
		}
		if got[0].Reason != entity.SuggestionReasonRuleMatch {
			t.Fatalf("unexpected reason %q", got[0].Reason)
		}
	})

	t.Run("miss returns nil without error", func(t *testing.T) {
		_, client := setupCache(t)
		c := NewSuggestionCache(client, time.Minute)

		got, err := c.Get(ctx, userID, "NEVER SEEN")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got != nil {
			t.Fatal("expected nil on miss")
		}
	})

	t.Run("entries expire", func(t *testing.T) {
		mr, client := setupCache(t)
		c := NewSuggestionCache(client, time.Minute)

		if err := c.Set(ctx, userID, "STARBUCKS COFFEE", suggestions); err != nil {
			t.Fatalf("set failed: %v", err)
		}

		mr.FastForward(2 * time.Minute)

		got, err := c.Get(ctx, userID, "STARBUCKS COFFEE")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got != nil {
			t.Fatal("expected expired entry to miss")
		}
	})

	t.Run("invalidate drops only the user's entries", func(t *testing.T) {
		_, client := setupCache(t)
		c := NewSuggestionCache(client, time.Minute)
		otherUser := uuid.New()

		if err := c.Set(ctx, userID, "STARBUCKS COFFEE", suggestions); err != nil {
			t.Fatalf("set failed: %v", err)
		}
		if err := c.Set(ctx, userID, "SHELL GAS", suggestions); err != nil {
			t.Fatalf("set failed: %v", err)
		}
		if err := c.Set(ctx, otherUser, "STARBUCKS COFFEE", suggestions); err != nil {
			t.Fatalf("set failed: %v", err)
		}

		if err := c.InvalidateUser(ctx, userID); err != nil {
			t.Fatalf("invalidate failed: %v", err)
		}

		got, err := c.Get(ctx, userID, "STARBUCKS COFFEE")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got != nil {
			t.Fatal("expected invalidated entry to miss")
		}

		kept, err := c.Get(ctx, otherUser, "STARBUCKS COFFEE")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(kept) != 2 {
			t.Fatal("expected other user's entries to survive")
		}
	})
}
