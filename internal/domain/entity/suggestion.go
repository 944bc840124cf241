// Package entity defines the core business entities for the domain layer.
package entity

import "github.com/google/uuid"

// Suggestion reasons. The reason is a free-text provenance tag surfaced to
// the user alongside the suggested category.
const (
	SuggestionReasonRuleMatch = "rule match"
	SuggestionReasonSimilar   = "similar transactions"
)

// Suggestion is an ephemeral category proposal for a transaction. It is
// never persisted; it exists only in the response of a suggest call.
type Suggestion struct {
	CategoryID uuid.UUID
	Confidence float64 // 0.0 to 1.0
	Reason     string
}
