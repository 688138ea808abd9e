package httpserver

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/sessions"
	"github.com/jonboulle/clockwork"
	"github.com/labstack/echo/v4"
	"github.com/pscheid92/namepulse/internal/adapter/metrics"
	"github.com/pscheid92/namepulse/internal/domain"
	"github.com/pscheid92/namepulse/internal/platform/config"
)

type appService interface {
	Submit(ctx context.Context, rawText string) (domain.Name, error)
	Vote(ctx context.Context, voterID string, id uuid.UUID) (domain.Name, error)
	Names() []domain.Name
	Board() domain.Board
	Share(ctx context.Context) error
}

// Observability bundles the optional metrics collaborators of the server.
type Observability struct {
	MetricsHandler http.Handler
	HTTP           *metrics.HTTPMetrics
	Votes          *metrics.VoteMetrics
	WebSocket      *metrics.WebSocketMetrics
}

type Server struct {
	echo   *echo.Echo
	config *config.Config
	clock  clockwork.Clock

	app appService

	websocketHandler http.Handler
	connLimits       *ConnectionLimits
	obs              Observability

	sessionStore *sessions.CookieStore
	healthChecks []HealthCheck
	startTime    time.Time
}

func NewServer(cfg *config.Config, app appService, clock clockwork.Clock, websocketHandler http.Handler, obs Observability, healthChecks []HealthCheck) *Server {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	srv := &Server{
		echo:             e,
		config:           cfg,
		clock:            clock,
		app:              app,
		websocketHandler: websocketHandler,
		connLimits:       NewConnectionLimits(clock, cfg.WSMaxConnections, cfg.WSMaxPerIP, cfg.WSConnectRate, cfg.WSConnectBurst),
		obs:              obs,
		sessionStore:     setupSessionStore(cfg),
		healthChecks:     healthChecks,
		startTime:        clock.Now(),
	}

	srv.registerRoutes()

	return srv
}

func (s *Server) Start() error {
	slog.Info("Starting server", "port", s.config.Port)
	if err := s.echo.Start(":" + s.config.Port); err != nil {
		return fmt.Errorf("failed to start server: %w", err)
	}
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	if err := s.echo.Shutdown(ctx); err != nil {
		return fmt.Errorf("failed to shutdown server: %w", err)
	}
	return nil
}

func setupSessionStore(cfg *config.Config) *sessions.CookieStore {
	sessionStore := sessions.NewCookieStore([]byte(cfg.SessionSecret))
	sessionStore.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   int(cfg.SessionMaxAge.Seconds()),
		HttpOnly: true,
		Secure:   cfg.IsProduction(),
		SameSite: http.SameSiteLaxMode,
	}
	return sessionStore
}
