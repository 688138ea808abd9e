// Package profanity implements the word blocklist used to reject inappropriate name suggestions.
package profanity

import (
	"bufio"
	"fmt"
	"os"
	"strings"
	"unicode"

	"github.com/pscheid92/namepulse/internal/domain"
)

// DefaultWords is used when no word list is configured.
var DefaultWords = []string{
	"asshole", "bastard", "bitch", "crap", "cunt", "damn", "dick", "fuck", "piss", "shit", "slut", "whore",
}

// Blocklist matches case-insensitively against the whole text and against the
// text reduced to letters and digits, so "S.h-i t" still hits "shit".
type Blocklist struct {
	words []string
	exact map[string]struct{}
}

var _ domain.ProfanityChecker = (*Blocklist)(nil)

// NewBlocklist normalizes words and drops blanks and duplicates.
func NewBlocklist(words []string) *Blocklist {
	b := &Blocklist{exact: make(map[string]struct{}, len(words))}
	for _, w := range words {
		w = strings.ToLower(strings.TrimSpace(w))
		if w == "" {
			continue
		}
		if _, dup := b.exact[w]; dup {
			continue
		}
		b.exact[w] = struct{}{}
		if n := normalize(w); n != "" {
			b.words = append(b.words, n)
		}
	}
	return b
}

// Len returns the number of distinct entries.
func (b *Blocklist) Len() int {
	return len(b.exact)
}

func (b *Blocklist) IsProfane(text string) bool {
	lower := strings.ToLower(strings.TrimSpace(text))
	if _, ok := b.exact[lower]; ok {
		return true
	}

	normalized := normalize(lower)
	if normalized == "" {
		return false
	}
	for _, w := range b.words {
		if strings.Contains(normalized, w) {
			return true
		}
	}
	return false
}

func normalize(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			return unicode.ToLower(r)
		}
		return -1
	}, s)
}

// ParseWords splits a comma-separated list.
func ParseWords(raw string) []string {
	var words []string
	for w := range strings.SplitSeq(raw, ",") {
		if w = strings.TrimSpace(w); w != "" {
			words = append(words, w)
		}
	}
	return words
}

// LoadFile reads one word per line. Blank lines and lines starting with '#' are skipped.
func LoadFile(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open profanity list: %w", err)
	}
	defer f.Close()

	var words []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		words = append(words, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read profanity list: %w", err)
	}
	return words, nil
}

// Load builds a blocklist from an inline comma list and an optional file.
// DefaultWords is used when both are empty.
func Load(inline, path string) (*Blocklist, error) {
	words := ParseWords(inline)
	if path != "" {
		fromFile, err := LoadFile(path)
		if err != nil {
			return nil, err
		}
		words = append(words, fromFile...)
	}
	if len(words) == 0 {
		words = DefaultWords
	}
	return NewBlocklist(words), nil
}
