package httpserver

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/pscheid92/namepulse/internal/adapter/metrics"
	"github.com/pscheid92/namepulse/internal/domain"
	apperrors "github.com/pscheid92/namepulse/internal/platform/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// --- handleListNames tests ---

func TestHandleListNames_Empty(t *testing.T) {
	srv := newTestServer(t, &mockAppService{})

	rec := doRequest(t, srv, http.MethodGet, "/api/names", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String())
}

func TestHandleListNames_InsertionOrder(t *testing.T) {
	app := &mockAppService{
		namesFn: func() []domain.Name {
			return []domain.Name{
				{ID: uuid.New(), Text: "Bolt", Votes: 15},
				{ID: uuid.New(), Text: "Nova", Votes: 12},
			}
		},
	}
	srv := newTestServer(t, app)

	rec := doRequest(t, srv, http.MethodGet, "/api/names", "")

	require.Equal(t, http.StatusOK, rec.Code)
	var names []domain.Name
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &names))
	require.Len(t, names, 2)
	assert.Equal(t, "Bolt", names[0].Text)
	assert.Equal(t, "Nova", names[1].Text)
}

// --- handleSubmitName tests ---

func TestHandleSubmitName_Created(t *testing.T) {
	var got string
	app := &mockAppService{
		submitFn: func(_ context.Context, raw string) (domain.Name, error) {
			got = raw
			return domain.Name{ID: uuid.New(), Text: "Orbit", Votes: 1}, nil
		},
	}
	srv := newTestServer(t, app)

	rec := doRequest(t, srv, http.MethodPost, "/api/names", `{"name":"Orbit"}`)

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "Orbit", got)
	assert.Contains(t, rec.Body.String(), `"votes":1`)
}

func TestHandleSubmitName_TruncatesLongInput(t *testing.T) {
	var got string
	app := &mockAppService{
		submitFn: func(_ context.Context, raw string) (domain.Name, error) {
			got = raw
			return domain.Name{ID: uuid.New(), Text: raw, Votes: 1}, nil
		},
	}
	srv := newTestServer(t, app)

	long := strings.Repeat("ä", 40)
	rec := doRequest(t, srv, http.MethodPost, "/api/names", `{"name":"`+long+`"}`)

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, strings.Repeat("ä", 30), got)
}

func TestHandleSubmitName_Rejections(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantType   apperrors.ErrorType
	}{
		{"empty", domain.ErrEmptyName, http.StatusBadRequest, apperrors.TypeValidation},
		{"profane", domain.ErrProfaneContent, http.StatusBadRequest, apperrors.TypeValidation},
		{"duplicate", domain.ErrDuplicateName, http.StatusConflict, apperrors.TypeConflict},
		{"unexpected", errors.New("boom"), http.StatusInternalServerError, apperrors.TypeInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := &mockAppService{
				submitFn: func(context.Context, string) (domain.Name, error) {
					return domain.Name{}, tt.err
				},
			}
			srv := newTestServer(t, app)

			rec := doRequest(t, srv, http.MethodPost, "/api/names", `{"name":"x"}`)

			assert.Equal(t, tt.wantStatus, rec.Code)
			var resp apperrors.ErrorResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
			assert.Equal(t, tt.wantType, resp.Type)
		})
	}
}

func TestHandleSubmitName_BadBody(t *testing.T) {
	srv := newTestServer(t, &mockAppService{})

	rec := doRequest(t, srv, http.MethodPost, "/api/names", `{"name":`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "invalid request body")
}

func TestHandleSubmitName_RecordsMetrics(t *testing.T) {
	votes := metrics.NewVoteMetrics(prometheus.NewRegistry())
	calls := 0
	app := &mockAppService{
		submitFn: func(_ context.Context, raw string) (domain.Name, error) {
			calls++
			if calls == 2 {
				return domain.Name{}, domain.ErrDuplicateName
			}
			return domain.Name{ID: uuid.New(), Text: raw, Votes: 1}, nil
		},
	}
	srv := newTestServer(t, app, withObservability(Observability{Votes: votes}))

	doRequest(t, srv, http.MethodPost, "/api/names", `{"name":"Orbit"}`)
	doRequest(t, srv, http.MethodPost, "/api/names", `{"name":"orbit"}`)

	assert.InDelta(t, 1, testutil.ToFloat64(votes.NamesSubmitted.WithLabelValues(metrics.ResultAccepted)), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(votes.NamesSubmitted.WithLabelValues(metrics.ResultDuplicate)), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(votes.NamesRegistered), 0)
}

// --- handleVote tests ---

func TestHandleVote_BadID(t *testing.T) {
	srv := newTestServer(t, &mockAppService{})

	rec := doRequest(t, srv, http.MethodPost, "/api/names/not-a-uuid/vote", "")

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandleVote_NotFound(t *testing.T) {
	srv := newTestServer(t, &mockAppService{})

	rec := doRequest(t, srv, http.MethodPost, "/api/names/"+uuid.NewString()+"/vote", "")

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHandleVote_Applied(t *testing.T) {
	id := uuid.New()
	app := &mockAppService{
		voteFn: func(_ context.Context, voterID string, got uuid.UUID) (domain.Name, error) {
			assert.NotEmpty(t, voterID)
			assert.Equal(t, id, got)
			return domain.Name{ID: id, Text: "Bolt", Votes: 16}, nil
		},
	}
	srv := newTestServer(t, app)

	rec := doRequest(t, srv, http.MethodPost, "/api/names/"+id.String()+"/vote", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"votes":16`)
	assert.NotEmpty(t, rec.Result().Cookies(), "first vote issues a voter session")
}

func TestHandleVote_SessionKeepsVoterIdentity(t *testing.T) {
	var voters []string
	app := &mockAppService{
		voteFn: func(_ context.Context, voterID string, id uuid.UUID) (domain.Name, error) {
			voters = append(voters, voterID)
			return domain.Name{ID: id, Votes: len(voters)}, nil
		},
	}
	srv := newTestServer(t, app)
	target := "/api/names/" + uuid.NewString() + "/vote"

	first := doRequest(t, srv, http.MethodPost, target, "")
	cookies := first.Result().Cookies()
	require.NotEmpty(t, cookies)

	doRequest(t, srv, http.MethodPost, target, "", cookies...)
	doRequest(t, srv, http.MethodPost, target, "")

	require.Len(t, voters, 3)
	assert.Equal(t, voters[0], voters[1])
	assert.NotEqual(t, voters[0], voters[2])
}

func TestHandleVote_RateLimited(t *testing.T) {
	app := &mockAppService{
		voteFn: func(context.Context, string, uuid.UUID) (domain.Name, error) {
			return domain.Name{}, &domain.RateLimitedError{RetryAfter: 500 * time.Millisecond}
		},
	}
	srv := newTestServer(t, app)

	rec := doRequest(t, srv, http.MethodPost, "/api/names/"+uuid.NewString()+"/vote", "")

	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Equal(t, "1", rec.Header().Get("Retry-After"))

	var resp apperrors.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, apperrors.TypeRateLimited, resp.Type)
	assert.InDelta(t, 500, resp.Context["retryAfterMs"], 0)
}

func TestHandleVote_RecordsMetrics(t *testing.T) {
	votes := metrics.NewVoteMetrics(prometheus.NewRegistry())
	results := []error{nil, &domain.RateLimitedError{RetryAfter: time.Second}, domain.ErrNameNotFound}
	app := &mockAppService{
		voteFn: func(_ context.Context, _ string, id uuid.UUID) (domain.Name, error) {
			err := results[0]
			results = results[1:]
			return domain.Name{ID: id}, err
		},
	}
	srv := newTestServer(t, app, withObservability(Observability{Votes: votes}))
	target := "/api/names/" + uuid.NewString() + "/vote"

	for range 3 {
		doRequest(t, srv, http.MethodPost, target, "")
	}

	assert.InDelta(t, 1, testutil.ToFloat64(votes.VotesProcessed.WithLabelValues(metrics.ResultApplied)), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(votes.VotesProcessed.WithLabelValues(metrics.ResultRateLimited)), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(votes.VotesProcessed.WithLabelValues(metrics.ResultNotFound)), 0)
}

func TestHandleVote_DirectCall(t *testing.T) {
	srv := newTestServer(t, &mockAppService{})

	req := httptest.NewRequest(http.MethodPost, "/api/names/x/vote", nil)
	rec := httptest.NewRecorder()
	c := srv.echo.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("x")

	_ = callHandler(srv.handleVote, c)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), `"id":"x"`)
}

func TestTruncateRunes(t *testing.T) {
	assert.Equal(t, "abc", truncateRunes("abc", 30))
	assert.Equal(t, "ab", truncateRunes("abc", 2))
	assert.Equal(t, "日本", truncateRunes("日本語", 2))
	assert.Empty(t, truncateRunes("abc", 0))
}
