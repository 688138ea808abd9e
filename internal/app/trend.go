package app

import (
	"sync"

	"github.com/google/uuid"
	"github.com/pscheid92/namepulse/internal/domain"
)

// hotThreshold is the per-cycle gain above which a name counts as hot.
const hotThreshold = 2

// Classify labels a single name from its previous and current count.
// Rules are checked in priority order: new, hot, rising, falling, stale.
func Classify(previous int, hasPrevious bool, current int) domain.Trend {
	if !hasPrevious {
		return domain.TrendNew
	}

	delta := current - previous
	switch {
	case delta > hotThreshold:
		return domain.TrendHot
	case delta > 0:
		return domain.TrendRising
	case delta < 0:
		return domain.TrendFalling
	default:
		return domain.TrendStale
	}
}

// TrendClassifier diffs each evaluation against the one before it.
// Only the previous id -> votes snapshot is retained.
type TrendClassifier struct {
	mu            sync.Mutex
	previousVotes map[uuid.UUID]int
}

func NewTrendClassifier() *TrendClassifier {
	return &TrendClassifier{previousVotes: make(map[uuid.UUID]int)}
}

// Evaluate classifies every name, then replaces the stored snapshot with the
// current counts. Calling it twice without votes in between yields stale.
func (c *TrendClassifier) Evaluate(names []domain.Name) map[uuid.UUID]domain.Trend {
	next := make(map[uuid.UUID]int, len(names))
	trends := make(map[uuid.UUID]domain.Trend, len(names))

	c.mu.Lock()
	defer c.mu.Unlock()

	for _, name := range names {
		previous, ok := c.previousVotes[name.ID]
		trends[name.ID] = Classify(previous, ok, name.Votes)
		next[name.ID] = name.Votes
	}
	c.previousVotes = next

	return trends
}
