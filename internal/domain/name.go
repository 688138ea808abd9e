package domain

import (
	"time"

	"github.com/google/uuid"
)

// MaxNameLength is the longest suggestion (in runes) accepted from callers.
// Truncation happens at the edge, before admission.
const MaxNameLength = 30

// Name is one candidate name on the board.
type Name struct {
	ID         uuid.UUID `json:"id"`
	Text       string    `json:"text"`
	Votes      int       `json:"votes"`
	CreatedAt  time.Time `json:"createdAt"`
	LastVoteAt time.Time `json:"lastVoteAt"`
}

// RenderWeight is the visual encoding of a vote count in the name cloud.
type RenderWeight struct {
	Size float64 `json:"size"`
	Hue  int     `json:"hue"`
}

// CloudTag is everything the cloud renderer needs for one name.
type CloudTag struct {
	ID    uuid.UUID `json:"id"`
	Text  string    `json:"text"`
	Votes int       `json:"votes"`
	Size  float64   `json:"size"`
	Hue   int       `json:"hue"`
	Trend Trend     `json:"trend"`
}

// LeaderboardEntry is a ranked name with its current trend.
type LeaderboardEntry struct {
	Rank  int
	Name  Name
	Trend Trend
}

// Board is the read model pushed to clients after every evaluation cycle.
type Board struct {
	Leaderboard []LeaderboardEntry
	Cloud       []CloudTag
	EvaluatedAt time.Time
}
