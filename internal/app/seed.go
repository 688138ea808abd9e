package app

import (
	"fmt"
	"strconv"
	"strings"
)

// SeedEntry is one pre-voted name loaded at startup.
type SeedEntry struct {
	Text  string
	Votes int
}

// ParseSeed parses "Name:votes,Name:votes". A missing count means one vote.
func ParseSeed(raw string) ([]SeedEntry, error) {
	var entries []SeedEntry
	for part := range strings.SplitSeq(raw, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}

		text, countStr, hasCount := strings.Cut(part, ":")
		text = strings.TrimSpace(text)
		if text == "" {
			return nil, fmt.Errorf("seed entry %q has no name", part)
		}

		votes := 1
		if hasCount {
			n, err := strconv.Atoi(strings.TrimSpace(countStr))
			if err != nil {
				return nil, fmt.Errorf("seed entry %q: invalid vote count: %w", part, err)
			}
			if n < 0 {
				return nil, fmt.Errorf("seed entry %q: vote count must not be negative", part)
			}
			votes = n
		}

		entries = append(entries, SeedEntry{Text: text, Votes: votes})
	}
	return entries, nil
}

// LoadSeed registers entries in order.
func LoadSeed(r *Registry, entries []SeedEntry) error {
	for _, e := range entries {
		if _, err := r.Seed(e.Text, e.Votes); err != nil {
			return fmt.Errorf("seed %q: %w", e.Text, err)
		}
	}
	return nil
}
