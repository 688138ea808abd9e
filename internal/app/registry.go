package app

import (
	"fmt"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/pscheid92/namepulse/internal/domain"
)

// Registry owns every Name on the board and is the only writer of vote counts.
// Iteration order is insertion order.
type Registry struct {
	clock clockwork.Clock

	mu     sync.RWMutex
	names  []*domain.Name
	byID   map[uuid.UUID]*domain.Name
	byText map[string]*domain.Name
}

func NewRegistry(clock clockwork.Clock) *Registry {
	return &Registry{
		clock:  clock,
		byID:   make(map[uuid.UUID]*domain.Name),
		byText: make(map[string]*domain.Name),
	}
}

// Add creates a name with one vote. Text is stored as given; uniqueness is case-insensitive.
func (r *Registry) Add(text string) (domain.Name, error) {
	return r.insert(text, 1)
}

// Seed bootstraps a name with an arbitrary starting count.
func (r *Registry) Seed(text string, votes int) (domain.Name, error) {
	if votes < 0 {
		return domain.Name{}, fmt.Errorf("seed %q: votes must not be negative, got %d", text, votes)
	}
	return r.insert(text, votes)
}

func (r *Registry) insert(text string, votes int) (domain.Name, error) {
	key := foldKey(text)

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byText[key]; exists {
		return domain.Name{}, domain.ErrDuplicateName
	}

	now := r.clock.Now()
	name := &domain.Name{
		ID:         uuid.New(),
		Text:       text,
		Votes:      votes,
		CreatedAt:  now,
		LastVoteAt: now,
	}
	r.names = append(r.names, name)
	r.byID[name.ID] = name
	r.byText[key] = name
	return *name, nil
}

// Vote increments the count of id by exactly one.
func (r *Registry) Vote(id uuid.UUID) (domain.Name, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	name, ok := r.byID[id]
	if !ok {
		return domain.Name{}, domain.ErrNameNotFound
	}
	name.Votes++
	name.LastVoteAt = r.clock.Now()
	return *name, nil
}

// Get returns a copy of the name with the given id.
func (r *Registry) Get(id uuid.UUID) (domain.Name, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	name, ok := r.byID[id]
	if !ok {
		return domain.Name{}, false
	}
	return *name, true
}

// Contains reports whether a case-insensitive match of text is registered.
func (r *Registry) Contains(text string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.byText[foldKey(text)]
	return ok
}

// All returns copies of every name in insertion order.
func (r *Registry) All() []domain.Name {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]domain.Name, len(r.names))
	for i, name := range r.names {
		out[i] = *name
	}
	return out
}

// Len returns the number of registered names.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.names)
}

func foldKey(text string) string {
	return strings.ToLower(text)
}
