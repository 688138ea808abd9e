package discord

import (
	"fmt"
	"strings"

	"github.com/pscheid92/namepulse/internal/domain"
)

type webhookPayload struct {
	Username string  `json:"username"`
	Embeds   []embed `json:"embeds"`
}

type embed struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Color       int    `json:"color"`
}

var trendMarkers = map[domain.Trend]string{
	domain.TrendNew:     "🆕",
	domain.TrendHot:     "🔥",
	domain.TrendRising:  "📈",
	domain.TrendFalling: "📉",
	domain.TrendStale:   "➖",
}

func buildPayload(entries []domain.LeaderboardEntry) webhookPayload {
	var b strings.Builder
	if len(entries) == 0 {
		b.WriteString("No names yet. Be the first to suggest one!")
	}
	for _, e := range entries {
		fmt.Fprintf(&b, "**%d.** %s - %d %s %s\n", e.Rank, e.Name.Text, e.Name.Votes, votesWord(e.Name.Votes), trendMarkers[e.Trend])
	}

	return webhookPayload{
		Username: "namepulse",
		Embeds: []embed{{
			Title:       "AI assistant name leaderboard",
			Description: strings.TrimSpace(b.String()),
			Color:       embedColor,
		}},
	}
}

func votesWord(n int) string {
	if n == 1 {
		return "vote"
	}
	return "votes"
}
