// Package discord shares the leaderboard to a Discord channel through an incoming webhook.
package discord

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/failsafe-go/failsafe-go/circuitbreaker"
	"github.com/pscheid92/namepulse/internal/adapter/metrics"
	"github.com/pscheid92/namepulse/internal/domain"
	"github.com/pscheid92/namepulse/internal/platform/retry"
	"github.com/pscheid92/namepulse/internal/platform/version"
)

const (
	requestTimeout        = 5 * time.Second
	retryInitialBackoff   = 500 * time.Millisecond
	retryRateLimitBackoff = 5 * time.Second
	breakerDelay          = time.Minute
	embedColor            = 0x6366F1
	maxErrorBody          = 512
)

// StatusError is returned for non-2xx webhook responses.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("discord webhook returned %d: %s", e.StatusCode, e.Body)
}

// Notifier posts leaderboard snapshots to a webhook. Deliveries are retried on
// 429/5xx and network errors; repeated failed deliveries open a circuit breaker
// that rejects shares until the delay has passed.
type Notifier struct {
	webhookURL string
	client     *http.Client
	policy     retry.Policy
	cb         circuitbreaker.CircuitBreaker[any]
	metrics    *metrics.WebhookMetrics
}

var _ domain.LeaderboardNotifier = (*Notifier)(nil)

// NewNotifier creates a notifier. client, wm and bm may be nil.
func NewNotifier(webhookURL string, client *http.Client, wm *metrics.WebhookMetrics, bm *metrics.CircuitBreakerMetrics) *Notifier {
	if client == nil {
		client = &http.Client{Timeout: requestTimeout}
	}

	cb := circuitbreaker.NewBuilder[any]().
		WithFailureThreshold(3).
		WithDelay(breakerDelay).
		WithSuccessThreshold(1).
		OnStateChanged(func(e circuitbreaker.StateChangedEvent) {
			slog.Warn("Circuit breaker state changed",
				"component", "discord",
				"from", e.OldState.String(),
				"to", e.NewState.String(),
			)
			bm.Observe("discord", e.NewState)
		}).
		Build()

	return &Notifier{
		webhookURL: webhookURL,
		client:     client,
		policy: retry.Policy{
			MaxAttempts:      3,
			InitialBackoff:   retryInitialBackoff,
			RateLimitBackoff: retryRateLimitBackoff,
		},
		cb:      cb,
		metrics: wm,
	}
}

func (n *Notifier) NotifyLeaderboard(ctx context.Context, entries []domain.LeaderboardEntry) error {
	if !n.cb.TryAcquirePermit() {
		n.observe("rejected", 0)
		return fmt.Errorf("discord share rejected: %w", circuitbreaker.ErrOpen)
	}

	body, err := json.Marshal(buildPayload(entries))
	if err != nil {
		n.cb.RecordSuccess()
		return fmt.Errorf("encode discord payload: %w", err)
	}

	p := n.policy
	p.OnRetry = func(attempt int, err error, backoff time.Duration) {
		slog.WarnContext(ctx, "Discord webhook failed, retrying", "attempt", attempt, "backoff_seconds", backoff.Seconds(), "error", err)
	}

	start := time.Now()
	err = retry.DoVoid(ctx, p, classifyWebhookError, func(ctx context.Context) error {
		return n.post(ctx, body)
	})
	if err != nil {
		n.cb.RecordError(err)
		n.observe("failed", time.Since(start))
		return fmt.Errorf("discord share failed: %w", err)
	}

	n.cb.RecordSuccess()
	n.observe("sent", time.Since(start))
	return nil
}

func (n *Notifier) post(ctx context.Context, body []byte) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.webhookURL, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build webhook request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", version.UserAgent())

	resp, err := n.client.Do(req)
	if err != nil {
		return fmt.Errorf("send webhook request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}

	msg, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	return &StatusError{StatusCode: resp.StatusCode, Body: strings.TrimSpace(string(msg))}
}

func (n *Notifier) observe(result string, d time.Duration) {
	if n.metrics == nil {
		return
	}
	n.metrics.SharesTotal.WithLabelValues(result).Inc()
	if d > 0 {
		n.metrics.SendDuration.Observe(d.Seconds())
	}
}

func classifyWebhookError(err error) retry.Action {
	var statusErr *StatusError
	if !errors.As(err, &statusErr) {
		return retry.Retry
	}

	switch {
	case statusErr.StatusCode == http.StatusTooManyRequests:
		return retry.After
	case statusErr.StatusCode >= 500:
		return retry.Retry
	default:
		return retry.Stop
	}
}
