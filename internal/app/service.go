package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/pscheid92/namepulse/internal/domain"
)

const (
	publishTimeout = 2 * time.Second
	shareTimeout   = 10 * time.Second
)

// ServiceConfig holds the tunables of the vote engine.
type ServiceConfig struct {
	VoterKey VoterKeyFunc
	Weights  CloudWeightMapper
}

// Service is the application layer and the only component that references multiple
// domain components. It orchestrates all use cases.
type Service struct {
	registry  *Registry
	admission *AdmissionPolicy
	limiter   domain.VoteLimiter
	trends    *TrendClassifier
	publisher domain.BoardPublisher
	notifier  domain.LeaderboardNotifier
	clock     clockwork.Clock
	voterKey  VoterKeyFunc
	weights   CloudWeightMapper

	mu    sync.RWMutex
	board domain.Board

	// publishMu keeps publish order equal to evaluation order.
	publishMu sync.Mutex

	shareWg sync.WaitGroup
}

// NewService wires the vote engine around registry and runs the first trend
// evaluation, so every name present at startup is reported as new.
// publisher and notifier may be nil.
func NewService(registry *Registry, profanity domain.ProfanityChecker, limiter domain.VoteLimiter, publisher domain.BoardPublisher, notifier domain.LeaderboardNotifier, clock clockwork.Clock, cfg ServiceConfig) *Service {
	if cfg.VoterKey == nil {
		cfg.VoterKey = PerVoterKey
	}
	if cfg.Weights == (CloudWeightMapper{}) {
		cfg.Weights = NewCloudWeightMapper(DefaultCloudMinSize, DefaultCloudMaxSize)
	}

	s := &Service{
		registry:  registry,
		admission: NewAdmissionPolicy(profanity, registry),
		limiter:   limiter,
		trends:    NewTrendClassifier(),
		publisher: publisher,
		notifier:  notifier,
		clock:     clock,
		voterKey:  cfg.VoterKey,
		weights:   cfg.Weights,
	}
	s.evaluate()
	return s
}

// Submit admits a new suggestion and registers it with one vote.
func (s *Service) Submit(ctx context.Context, rawText string) (domain.Name, error) {
	text, err := s.admission.Evaluate(rawText)
	if err != nil {
		return domain.Name{}, err
	}

	name, err := s.registry.Add(text)
	if err != nil {
		return domain.Name{}, err
	}

	slog.InfoContext(ctx, "Name submitted", "name_id", name.ID.String(), "text", name.Text)
	s.evaluateAndPublish(ctx)
	return name, nil
}

// Vote adds one vote from voterID to the name with the given id.
// Unknown ids are rejected before the limiter so they never consume a cooldown.
func (s *Service) Vote(ctx context.Context, voterID string, id uuid.UUID) (domain.Name, error) {
	if _, ok := s.registry.Get(id); !ok {
		return domain.Name{}, domain.ErrNameNotFound
	}

	if err := s.limiter.TryVote(ctx, s.voterKey(voterID), s.clock.Now()); err != nil {
		if errors.Is(err, domain.ErrRateLimited) {
			return domain.Name{}, err
		}
		// Fail-open: let votes through on limiter errors rather than silently dropping them
		slog.WarnContext(ctx, "Vote limiter check failed, allowing vote", "voter", voterID, "error", err)
	}

	name, err := s.registry.Vote(id)
	if err != nil {
		return domain.Name{}, fmt.Errorf("apply vote: %w", err)
	}

	slog.DebugContext(ctx, "Vote applied", "name_id", name.ID.String(), "votes", name.Votes)
	s.evaluateAndPublish(ctx)
	return name, nil
}

// Names returns every name in insertion order.
func (s *Service) Names() []domain.Name {
	return s.registry.All()
}

// Board returns the result of the most recent evaluation cycle.
// Reading never advances the trend classifier.
func (s *Service) Board() domain.Board {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.board
}

// Refresh runs an evaluation cycle without a mutation and publishes the result.
func (s *Service) Refresh(ctx context.Context) domain.Board {
	return s.evaluateAndPublish(ctx)
}

// Share sends the current leaderboard to the notifier in the background.
// Delivery failures are logged and never affect vote state.
func (s *Service) Share(ctx context.Context) error {
	if s.notifier == nil {
		return domain.ErrShareUnavailable
	}

	entries := s.Board().Leaderboard
	logger := slog.Default().With("entries", len(entries))
	s.shareWg.Go(func() {
		shareCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shareTimeout)
		defer cancel()

		if err := s.notifier.NotifyLeaderboard(shareCtx, entries); err != nil {
			logger.ErrorContext(shareCtx, "Failed to share leaderboard", "error", err)
			return
		}
		logger.InfoContext(shareCtx, "Leaderboard shared")
	})
	return nil
}

// Stop waits for in-flight background shares to finish.
func (s *Service) Stop() {
	s.shareWg.Wait()
}

func (s *Service) evaluate() domain.Board {
	s.mu.Lock()
	defer s.mu.Unlock()

	names := s.registry.All()
	trends := s.trends.Evaluate(names)
	s.board = domain.Board{
		Leaderboard: Leaderboard(names, trends),
		Cloud:       s.weights.Tags(names, trends),
		EvaluatedAt: s.clock.Now(),
	}
	return s.board
}

// evaluateAndPublish holds publishMu across both steps, so subscribers never
// receive an older board after a newer one. publishTimeout bounds the hold.
func (s *Service) evaluateAndPublish(ctx context.Context) domain.Board {
	s.publishMu.Lock()
	defer s.publishMu.Unlock()

	board := s.evaluate()
	s.publish(ctx, board)
	return board
}

func (s *Service) publish(ctx context.Context, board domain.Board) {
	if s.publisher == nil {
		return
	}

	pubCtx, cancel := context.WithTimeout(ctx, publishTimeout)
	defer cancel()

	if err := s.publisher.PublishBoard(pubCtx, board); err != nil {
		slog.WarnContext(pubCtx, "Failed to publish board", "error", err)
	}
}
