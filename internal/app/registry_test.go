package app

import (
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/pscheid92/namepulse/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testEpoch = time.Date(2025, 3, 14, 12, 0, 0, 0, time.UTC)

func newTestRegistry(t *testing.T) (*Registry, *clockwork.FakeClock) {
	t.Helper()
	clock := clockwork.NewFakeClockAt(testEpoch)
	return NewRegistry(clock), clock
}

func TestRegistry_AddStartsWithOneVote(t *testing.T) {
	r, _ := newTestRegistry(t)

	name, err := r.Add("Nova")
	require.NoError(t, err)

	assert.NotEqual(t, uuid.Nil, name.ID)
	assert.Equal(t, "Nova", name.Text)
	assert.Equal(t, 1, name.Votes)
	assert.Equal(t, testEpoch, name.CreatedAt)
	assert.Equal(t, testEpoch, name.LastVoteAt)
}

func TestRegistry_AddRejectsCaseInsensitiveDuplicate(t *testing.T) {
	r, _ := newTestRegistry(t)
	_, err := r.Add("Nova")
	require.NoError(t, err)

	for _, text := range []string{"Nova", "nova", "NOVA", "nOvA"} {
		_, err := r.Add(text)
		assert.ErrorIs(t, err, domain.ErrDuplicateName, text)
	}

	assert.Equal(t, 1, r.Len(), "registry must be unchanged after duplicate attempts")
	assert.Equal(t, "Nova", r.All()[0].Text)
}

func TestRegistry_AddKeepsOriginalCasing(t *testing.T) {
	r, _ := newTestRegistry(t)

	name, err := r.Add("HAL 9000")
	require.NoError(t, err)
	assert.Equal(t, "HAL 9000", name.Text)
	assert.True(t, r.Contains("hal 9000"))
}

func TestRegistry_VoteIncrementsByOne(t *testing.T) {
	r, clock := newTestRegistry(t)
	name, err := r.Add("Bolt")
	require.NoError(t, err)

	clock.Advance(5 * time.Second)
	updated, err := r.Vote(name.ID)
	require.NoError(t, err)

	assert.Equal(t, 2, updated.Votes)
	assert.Equal(t, testEpoch.Add(5*time.Second), updated.LastVoteAt)
	assert.Equal(t, testEpoch, updated.CreatedAt)

	got, ok := r.Get(name.ID)
	require.True(t, ok)
	assert.Equal(t, 2, got.Votes)
}

func TestRegistry_VoteUnknownID(t *testing.T) {
	r, _ := newTestRegistry(t)
	_, err := r.Add("Bolt")
	require.NoError(t, err)

	_, err = r.Vote(uuid.New())
	require.ErrorIs(t, err, domain.ErrNameNotFound)
	assert.Equal(t, 1, r.All()[0].Votes)
}

func TestRegistry_VotesAreMonotonic(t *testing.T) {
	r, _ := newTestRegistry(t)
	name, err := r.Add("Echo")
	require.NoError(t, err)

	prev := name.Votes
	for range 50 {
		updated, err := r.Vote(name.ID)
		require.NoError(t, err)
		assert.Equal(t, prev+1, updated.Votes)
		prev = updated.Votes
	}
}

func TestRegistry_AllKeepsInsertionOrder(t *testing.T) {
	r, _ := newTestRegistry(t)
	for _, text := range []string{"Zeta", "Alpha", "Mimi"} {
		_, err := r.Add(text)
		require.NoError(t, err)
	}

	all := r.All()
	require.Len(t, all, 3)
	assert.Equal(t, "Zeta", all[0].Text)
	assert.Equal(t, "Alpha", all[1].Text)
	assert.Equal(t, "Mimi", all[2].Text)
}

func TestRegistry_AllReturnsCopies(t *testing.T) {
	r, _ := newTestRegistry(t)
	name, err := r.Add("Astra")
	require.NoError(t, err)

	all := r.All()
	all[0].Votes = 999

	got, _ := r.Get(name.ID)
	assert.Equal(t, 1, got.Votes)
}

func TestRegistry_Seed(t *testing.T) {
	r, _ := newTestRegistry(t)

	name, err := r.Seed("Estella", 12)
	require.NoError(t, err)
	assert.Equal(t, 12, name.Votes)

	_, err = r.Seed("Zero", 0)
	require.NoError(t, err)

	_, err = r.Seed("Broken", -1)
	require.Error(t, err)
	assert.False(t, r.Contains("Broken"))

	_, err = r.Seed("estella", 3)
	assert.ErrorIs(t, err, domain.ErrDuplicateName)
}

func TestRegistry_ConcurrentVotesAreNotLost(t *testing.T) {
	r, _ := newTestRegistry(t)
	name, err := r.Add("Nexus")
	require.NoError(t, err)

	var wg sync.WaitGroup
	for range 100 {
		wg.Go(func() {
			_, _ = r.Vote(name.ID)
		})
	}
	wg.Wait()

	got, _ := r.Get(name.ID)
	assert.Equal(t, 101, got.Votes)
}

func TestRegistry_ConcurrentAddsKeepUniqueness(t *testing.T) {
	r, _ := newTestRegistry(t)

	var wg sync.WaitGroup
	for i := range 50 {
		wg.Go(func() {
			text := "Sen"
			if i%2 == 0 {
				text = "SEN"
			}
			_, _ = r.Add(text)
		})
	}
	wg.Wait()

	assert.Equal(t, 1, r.Len())
}
