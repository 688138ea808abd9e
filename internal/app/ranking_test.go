package app

import (
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/pscheid92/namepulse/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func namesWithVotes(votes ...int) []domain.Name {
	names := make([]domain.Name, len(votes))
	for i, v := range votes {
		names[i] = domain.Name{ID: uuid.New(), Text: fmt.Sprintf("name-%d", i), Votes: v}
	}
	return names
}

func TestProject_SortsByVotesDescending(t *testing.T) {
	names := namesWithVotes(3, 9, 1, 5)

	ranked := Project(names)

	require.Len(t, ranked, 4)
	assert.Equal(t, []int{9, 5, 3, 1}, []int{ranked[0].Votes, ranked[1].Votes, ranked[2].Votes, ranked[3].Votes})
}

func TestProject_TiesKeepInsertionOrder(t *testing.T) {
	names := namesWithVotes(4, 7, 4, 7, 4)

	ranked := Project(names)

	texts := make([]string, len(ranked))
	for i, n := range ranked {
		texts[i] = n.Text
	}
	assert.Equal(t, []string{"name-1", "name-3", "name-0", "name-2", "name-4"}, texts)
}

func TestProject_TruncatesToTopTen(t *testing.T) {
	names := namesWithVotes(1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12)

	ranked := Project(names)

	require.Len(t, ranked, LeaderboardSize)
	assert.Equal(t, 12, ranked[0].Votes)
	assert.Equal(t, 3, ranked[LeaderboardSize-1].Votes)
}

func TestProject_DoesNotModifyInput(t *testing.T) {
	names := namesWithVotes(1, 3, 2)
	original := append([]domain.Name(nil), names...)

	_ = Project(names)

	assert.Equal(t, original, names)
}

func TestProject_Idempotent(t *testing.T) {
	names := namesWithVotes(5, 5, 8, 1, 5)

	once := Project(names)
	assert.Equal(t, once, Project(once))
}

func TestProject_Empty(t *testing.T) {
	assert.Empty(t, Project(nil))
}

func TestLeaderboard_RanksAndTrends(t *testing.T) {
	names := namesWithVotes(2, 8)
	trends := map[uuid.UUID]domain.Trend{names[1].ID: domain.TrendRising}

	entries := Leaderboard(names, trends)

	require.Len(t, entries, 2)
	assert.Equal(t, 1, entries[0].Rank)
	assert.Equal(t, names[1].ID, entries[0].Name.ID)
	assert.Equal(t, domain.TrendRising, entries[0].Trend)
	assert.Equal(t, 2, entries[1].Rank)
	assert.Equal(t, domain.TrendNew, entries[1].Trend)
}
