// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"

	"github.com/google/uuid"
)

// SummaryCacheKey identifies one cached tax year summary. The ruleset
// version is part of the key so finalizing a placeholder year naturally
// misses stale entries computed under the old version.
type SummaryCacheKey struct {
	UserID         uuid.UUID
	TaxYear        string
	RulesetVersion string
}

// SummaryCache defines the interface for caching computed tax year
// summaries. A cache miss or an unavailable cache must never fail the
// request; implementations return ok=false and the caller recomputes.
type SummaryCache interface {
	// Get retrieves the cached summary payload for the key.
	Get(ctx context.Context, key SummaryCacheKey) (payload []byte, ok bool, err error)

	// Set stores the summary payload for the key.
	Set(ctx context.Context, key SummaryCacheKey, payload []byte) error

	// InvalidateUser drops every cached summary for the user. Called when
	// an income or expense record changes.
	InvalidateUser(ctx context.Context, userID uuid.UUID) error
}
