package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/centrifugal/centrifuge"
	"github.com/jonboulle/clockwork"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/pscheid92/namepulse/internal/adapter/discord"
	"github.com/pscheid92/namepulse/internal/adapter/httpserver"
	"github.com/pscheid92/namepulse/internal/adapter/metrics"
	"github.com/pscheid92/namepulse/internal/adapter/profanity"
	"github.com/pscheid92/namepulse/internal/adapter/redis"
	"github.com/pscheid92/namepulse/internal/adapter/websocket"
	"github.com/pscheid92/namepulse/internal/app"
	"github.com/pscheid92/namepulse/internal/domain"
	"github.com/pscheid92/namepulse/internal/platform/config"
	"github.com/pscheid92/namepulse/internal/platform/logging"
	"github.com/pscheid92/namepulse/internal/platform/version"
)

const limiterPruneInterval = time.Minute

type limiterResult struct {
	limiter      domain.VoteLimiter
	healthChecks []httpserver.HealthCheck
	cleanup      func()
}

func setupConfig() *config.Config {
	cfg, err := config.Load()
	if err != nil {
		// Use log before slog is initialized
		log.Fatalf("Failed to load config: %v", err)
	}
	return cfg
}

func setupRegistry(cfg *config.Config, clock clockwork.Clock) *app.Registry {
	entries, err := app.ParseSeed(cfg.SeedNames)
	if err != nil {
		slog.Error("Invalid SEED_NAMES", "error", err)
		os.Exit(1)
	}

	registry := app.NewRegistry(clock)
	if err := app.LoadSeed(registry, entries); err != nil {
		slog.Error("Failed to seed names", "error", err)
		os.Exit(1)
	}
	slog.Info("Registry seeded", "names", registry.Len())
	return registry
}

func setupProfanity(cfg *config.Config) *profanity.Blocklist {
	blocklist, err := profanity.Load(cfg.ProfanityWords, cfg.ProfanityFile)
	if err != nil {
		slog.Error("Failed to load profanity list", "error", err)
		os.Exit(1)
	}
	slog.Info("Profanity list loaded", "words", blocklist.Len())
	return blocklist
}

func setupLimiter(cfg *config.Config, clock clockwork.Clock, reg prometheus.Registerer, breakerMetrics *metrics.CircuitBreakerMetrics) limiterResult {
	if cfg.VoteLimiter != config.LimiterRedis {
		limiter := app.NewMemoryVoteLimiter(cfg.VoteCooldown)
		stop := limiter.StartPruner(clock, limiterPruneInterval)
		return limiterResult{limiter: limiter, cleanup: stop}
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	redisMetrics := metrics.NewRedisMetrics(reg)
	client, err := redis.NewClient(ctx, cfg.RedisURL,
		redis.NewMetricsHook(redisMetrics),
		redis.NewCircuitBreakerHook(breakerMetrics),
	)
	if err != nil {
		slog.Error("Failed to connect to Redis", "error", err)
		os.Exit(1)
	}

	return limiterResult{
		limiter: redis.NewVoteLimiter(client, cfg.VoteCooldown),
		healthChecks: []httpserver.HealthCheck{{
			Name:  "redis",
			Check: func(ctx context.Context) error { return client.Ping(ctx).Err() },
		}},
		cleanup: func() { _ = client.Close() },
	}
}

func setupNotifier(cfg *config.Config, reg prometheus.Registerer, breakerMetrics *metrics.CircuitBreakerMetrics) domain.LeaderboardNotifier {
	if cfg.DiscordWebhookURL == "" {
		// nil interface, not a typed nil, so Share reports the feature as unavailable
		return nil
	}
	return discord.NewNotifier(cfg.DiscordWebhookURL, nil, metrics.NewWebhookMetrics(reg), breakerMetrics)
}

func voterKeyFunc(scope string) app.VoterKeyFunc {
	if scope == config.ScopeGlobal {
		return app.SharedVoterKey
	}
	return app.PerVoterKey
}

func runGracefulShutdown(srv *httpserver.Server, appSvc *app.Service, node *centrifuge.Node, stopTicker context.CancelFunc) <-chan struct{} {
	done := make(chan struct{})
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-sigChan
		slog.Info("Shutdown signal received, cleaning up...")

		stopTicker()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			slog.Error("Server shutdown error", "error", err)
		}
		if err := node.Shutdown(shutdownCtx); err != nil {
			slog.Error("Centrifuge shutdown error", "error", err)
		}

		appSvc.Stop()

		close(done)
	}()

	return done
}

func main() {
	clock := clockwork.NewRealClock()

	cfg := setupConfig()

	// Initialize structured logging
	logging.InitLogger(cfg.LogLevel, cfg.LogFormat)
	slog.Info("Application starting", "env", cfg.AppEnv, "port", cfg.Port, "version", version.Version)

	reg := metrics.NewRegistry()
	httpMetrics := metrics.NewHTTPMetrics(reg)
	voteMetrics := metrics.NewVoteMetrics(reg)
	wsMetrics := metrics.NewWebSocketMetrics(reg)
	breakerMetrics := metrics.NewCircuitBreakerMetrics(reg)

	registry := setupRegistry(cfg, clock)
	voteMetrics.NamesRegistered.Set(float64(registry.Len()))
	blocklist := setupProfanity(cfg)

	lim := setupLimiter(cfg, clock, reg, breakerMetrics)
	defer lim.cleanup()

	node, err := websocket.NewNode(cfg.LogLevel)
	if err != nil {
		slog.Error("Failed to create centrifuge node", "error", err)
		os.Exit(1)
	}

	appSvc := app.NewService(registry, blocklist, lim.limiter, websocket.NewPublisher(node, wsMetrics), setupNotifier(cfg, reg, breakerMetrics), clock, app.ServiceConfig{
		VoterKey: voterKeyFunc(cfg.VoteLimitScope),
		Weights:  app.NewCloudWeightMapper(cfg.CloudMinSize, cfg.CloudMaxSize),
	})

	websocket.RegisterHandlers(node, appSvc, wsMetrics)
	if err := node.Run(); err != nil {
		slog.Error("Failed to start centrifuge node", "error", err)
		os.Exit(1)
	}
	wsHandler := centrifuge.NewWebsocketHandler(node, centrifuge.WebsocketConfig{
		CheckOrigin: websocket.NewCheckOrigin(cfg.AppURL, !cfg.IsProduction()),
	})

	tickerCtx, stopTicker := context.WithCancel(context.Background())
	if cfg.TrendInterval > 0 {
		go app.NewTrendTicker(appSvc, clock, cfg.TrendInterval).Run(tickerCtx)
	}

	srv := httpserver.NewServer(cfg, appSvc, clock, wsHandler, httpserver.Observability{
		MetricsHandler: metrics.Handler(reg),
		HTTP:           httpMetrics,
		Votes:          voteMetrics,
		WebSocket:      wsMetrics,
	}, lim.healthChecks)

	done := runGracefulShutdown(srv, appSvc, node, stopTicker)

	if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		slog.Error("Server error", "error", err)
		os.Exit(1)
	}

	<-done
}
