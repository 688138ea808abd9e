package app

import (
	"strings"

	"github.com/pscheid92/namepulse/internal/domain"
)

// nameLookup is the registry subset the admission policy needs.
type nameLookup interface {
	Contains(text string) bool
}

// AdmissionPolicy gates new suggestions before they reach the registry.
// Checks run in order and the first failure wins: empty, profanity, duplicate.
// Length is capped by the caller (domain.MaxNameLength) and not re-checked here.
type AdmissionPolicy struct {
	profanity domain.ProfanityChecker
	names     nameLookup
}

func NewAdmissionPolicy(profanity domain.ProfanityChecker, names nameLookup) *AdmissionPolicy {
	return &AdmissionPolicy{profanity: profanity, names: names}
}

// Evaluate returns the trimmed text to register, or the reason it was rejected.
func (p *AdmissionPolicy) Evaluate(rawText string) (string, error) {
	text := strings.TrimSpace(rawText)
	if text == "" {
		return "", domain.ErrEmptyName
	}

	if p.profanity != nil && p.profanity.IsProfane(text) {
		return "", domain.ErrProfaneContent
	}

	if p.names.Contains(text) {
		return "", domain.ErrDuplicateName
	}

	return text, nil
}
