package domain

import "context"

// ProfanityChecker decides whether a proposed name is inappropriate.
type ProfanityChecker interface {
	IsProfane(text string) bool
}

// LeaderboardNotifier shares the ranked leaderboard with an external channel.
type LeaderboardNotifier interface {
	NotifyLeaderboard(ctx context.Context, entries []LeaderboardEntry) error
}
