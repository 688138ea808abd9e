package app

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/pscheid92/namepulse/internal/domain"
)

// DefaultVoteCooldown is the minimum gap between two accepted votes of one voter.
const DefaultVoteCooldown = 1 * time.Second

// GlobalVoterKey is the single key used when rate limiting is not per voter.
const GlobalVoterKey = "global"

// MemoryVoteLimiter keeps the last accepted vote time per voter in process memory.
type MemoryVoteLimiter struct {
	cooldown time.Duration

	mu       sync.Mutex
	lastVote map[string]time.Time
}

var _ domain.VoteLimiter = (*MemoryVoteLimiter)(nil)

func NewMemoryVoteLimiter(cooldown time.Duration) *MemoryVoteLimiter {
	return &MemoryVoteLimiter{
		cooldown: cooldown,
		lastVote: make(map[string]time.Time),
	}
}

func (l *MemoryVoteLimiter) TryVote(_ context.Context, voterKey string, now time.Time) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if last, ok := l.lastVote[voterKey]; ok {
		if elapsed := now.Sub(last); elapsed < l.cooldown {
			// RetryAfter never exceeds one cooldown, even when the clock stepped back.
			return &domain.RateLimitedError{RetryAfter: min(l.cooldown, l.cooldown-elapsed)}
		}
	}
	l.lastVote[voterKey] = now
	return nil
}

// Prune drops voters whose cooldown has fully elapsed at now.
func (l *MemoryVoteLimiter) Prune(now time.Time) int {
	l.mu.Lock()
	defer l.mu.Unlock()

	pruned := 0
	for key, last := range l.lastVote {
		if now.Sub(last) >= l.cooldown {
			delete(l.lastVote, key)
			pruned++
		}
	}
	return pruned
}

// StartPruner evicts expired voter entries on every interval tick.
// Returns a stop function that should be deferred.
func (l *MemoryVoteLimiter) StartPruner(clock clockwork.Clock, interval time.Duration) func() {
	ticker := clock.NewTicker(interval)
	done := make(chan struct{})

	go func() {
		for {
			select {
			case <-ticker.Chan():
				if pruned := l.Prune(clock.Now()); pruned > 0 {
					slog.Debug("Pruned vote limiter entries", "count", pruned)
				}
			case <-done:
				ticker.Stop()
				return
			}
		}
	}()

	return func() {
		close(done)
	}
}

// VoterKeyFunc maps a caller identity to the key the limiter tracks.
type VoterKeyFunc func(voterID string) string

// PerVoterKey rate limits every voter independently.
func PerVoterKey(voterID string) string {
	return voterID
}

// SharedVoterKey collapses all voters onto one cooldown gate.
func SharedVoterKey(string) string {
	return GlobalVoterKey
}
