package domain

import (
	"errors"
	"fmt"
	"time"
)

var (
	ErrEmptyName        = errors.New("name is empty")
	ErrProfaneContent   = errors.New("name contains inappropriate content")
	ErrDuplicateName    = errors.New("name has already been suggested")
	ErrNameNotFound     = errors.New("name not found")
	ErrRateLimited      = errors.New("vote rate limited")
	ErrShareUnavailable = errors.New("leaderboard sharing is not configured")
)

// RateLimitedError is returned by a VoteLimiter when the voter is still inside
// the cooldown window. It matches ErrRateLimited via errors.Is.
type RateLimitedError struct {
	RetryAfter time.Duration
}

func (e *RateLimitedError) Error() string {
	return fmt.Sprintf("%s: retry after %dms", ErrRateLimited.Error(), e.RetryAfterMs())
}

func (e *RateLimitedError) Is(target error) bool {
	return target == ErrRateLimited
}

// RetryAfterMs returns the remaining wait in whole milliseconds.
func (e *RateLimitedError) RetryAfterMs() int64 {
	return e.RetryAfter.Milliseconds()
}
