package app

import (
	"context"
	"log/slog"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/pscheid92/namepulse/internal/domain"
	"github.com/pscheid92/namepulse/internal/platform/correlation"
)

// DefaultTrendInterval is how often trends are re-evaluated without new votes.
const DefaultTrendInterval = 30 * time.Second

type boardRefresher interface {
	Refresh(ctx context.Context) domain.Board
}

// TrendTicker periodically runs an evaluation cycle so names that stopped
// receiving votes settle to stale even when nobody is voting.
type TrendTicker struct {
	refresher boardRefresher
	clock     clockwork.Clock
	interval  time.Duration
}

func NewTrendTicker(refresher boardRefresher, clock clockwork.Clock, interval time.Duration) *TrendTicker {
	return &TrendTicker{
		refresher: refresher,
		clock:     clock,
		interval:  interval,
	}
}

// Run starts the periodic refresh loop. It blocks until ctx is cancelled.
func (t *TrendTicker) Run(ctx context.Context) {
	ticker := t.clock.NewTicker(t.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.Chan():
			t.refresh(ctx)
		}
	}
}

func (t *TrendTicker) refresh(ctx context.Context) {
	tickCtx := correlation.WithID(ctx, correlation.NewID())
	board := t.refresher.Refresh(tickCtx)
	slog.DebugContext(tickCtx, "Ticker: refreshed trends", "names", len(board.Cloud))
}
