package app

import (
	"cmp"
	"slices"

	"github.com/google/uuid"
	"github.com/pscheid92/namepulse/internal/domain"
)

// LeaderboardSize is how many names the leaderboard shows.
const LeaderboardSize = 10

// Project orders names by votes descending, keeping insertion order among ties,
// and keeps the top LeaderboardSize. The input slice is not modified.
func Project(names []domain.Name) []domain.Name {
	ranked := slices.Clone(names)
	slices.SortStableFunc(ranked, func(a, b domain.Name) int {
		return cmp.Compare(b.Votes, a.Votes)
	})
	if len(ranked) > LeaderboardSize {
		ranked = ranked[:LeaderboardSize]
	}
	return ranked
}

// Leaderboard projects names and attaches 1-based ranks and trends.
func Leaderboard(names []domain.Name, trends map[uuid.UUID]domain.Trend) []domain.LeaderboardEntry {
	ranked := Project(names)
	entries := make([]domain.LeaderboardEntry, len(ranked))
	for i, name := range ranked {
		entries[i] = domain.LeaderboardEntry{
			Rank:  i + 1,
			Name:  name,
			Trend: trendOf(trends, name.ID),
		}
	}
	return entries
}

// trendOf falls back to new for names the classifier has not seen yet.
func trendOf(trends map[uuid.UUID]domain.Trend, id uuid.UUID) domain.Trend {
	if t, ok := trends[id]; ok {
		return t
	}
	return domain.TrendNew
}
