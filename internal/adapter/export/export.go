// Package export renders the leaderboard as a downloadable JSON document.
package export

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/pscheid92/namepulse/internal/domain"
)

const filenamePrefix = "ai-bot-names-leaderboard-"

// Entry is one row of the exported document.
type Entry struct {
	Rank         int    `json:"rank"`
	Name         string `json:"name"`
	Votes        int    `json:"votes"`
	Trend        string `json:"trend"`
	LastVoteTime string `json:"lastVoteTime"`
}

// Entries converts ranked leaderboard rows, keeping their order.
func Entries(leaderboard []domain.LeaderboardEntry) []Entry {
	out := make([]Entry, len(leaderboard))
	for i, e := range leaderboard {
		out[i] = Entry{
			Rank:         e.Rank,
			Name:         e.Name.Text,
			Votes:        e.Name.Votes,
			Trend:        e.Trend.String(),
			LastVoteTime: e.Name.LastVoteAt.UTC().Format(time.RFC3339),
		}
	}
	return out
}

// Filename returns the attachment name for an export taken at now, in UTC.
func Filename(now time.Time) string {
	return filenamePrefix + now.UTC().Format(time.DateOnly) + ".json"
}

// Write encodes the leaderboard as an indented JSON array.
func Write(w io.Writer, leaderboard []domain.LeaderboardEntry) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(Entries(leaderboard)); err != nil {
		return fmt.Errorf("encode leaderboard export: %w", err)
	}
	return nil
}
