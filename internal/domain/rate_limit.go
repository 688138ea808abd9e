package domain

import (
	"context"
	"time"
)

// VoteLimiter enforces a minimum interval between two accepted votes of the same voter.
type VoteLimiter interface {
	// TryVote records now as the voter's last vote and returns nil when allowed.
	// Returns a *RateLimitedError when the voter is still cooling down; state is untouched then.
	TryVote(ctx context.Context, voterKey string, now time.Time) error
}
