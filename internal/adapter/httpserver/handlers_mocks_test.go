package httpserver

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/sessions"
	"github.com/jonboulle/clockwork"
	"github.com/labstack/echo/v4"
	"github.com/pscheid92/namepulse/internal/domain"
	"github.com/pscheid92/namepulse/internal/platform/config"
)

var testNow = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

// --- Mock implementations ---

type mockAppService struct {
	submitFn func(ctx context.Context, rawText string) (domain.Name, error)
	voteFn   func(ctx context.Context, voterID string, id uuid.UUID) (domain.Name, error)
	namesFn  func() []domain.Name
	boardFn  func() domain.Board
	shareFn  func(ctx context.Context) error
}

func (m *mockAppService) Submit(ctx context.Context, rawText string) (domain.Name, error) {
	if m.submitFn != nil {
		return m.submitFn(ctx, rawText)
	}
	return domain.Name{ID: uuid.New(), Text: rawText, Votes: 1}, nil
}

func (m *mockAppService) Vote(ctx context.Context, voterID string, id uuid.UUID) (domain.Name, error) {
	if m.voteFn != nil {
		return m.voteFn(ctx, voterID, id)
	}
	return domain.Name{}, domain.ErrNameNotFound
}

func (m *mockAppService) Names() []domain.Name {
	if m.namesFn != nil {
		return m.namesFn()
	}
	return nil
}

func (m *mockAppService) Board() domain.Board {
	if m.boardFn != nil {
		return m.boardFn()
	}
	return domain.Board{}
}

func (m *mockAppService) Share(ctx context.Context) error {
	if m.shareFn != nil {
		return m.shareFn(ctx)
	}
	return domain.ErrShareUnavailable
}

// --- Test helpers ---

func newTestServer(t *testing.T, app appService, opts ...func(*Server)) *Server {
	t.Helper()

	store := sessions.NewCookieStore([]byte("test-secret-key-32-bytes-long!!!"))
	store.Options = &sessions.Options{
		Path:   "/",
		MaxAge: 3600,
	}

	srv := &Server{
		echo:         echo.New(),
		config:       &config.Config{Port: "0", APIRateLimit: 1000, APIRateBurst: 1000},
		clock:        clockwork.NewFakeClockAt(testNow),
		app:          app,
		sessionStore: store,
	}

	for _, opt := range opts {
		opt(srv)
	}
	srv.startTime = srv.clock.Now()

	// Register routes so endpoints are available for testing
	srv.registerRoutes()

	return srv
}

func withClock(clock clockwork.Clock) func(*Server) {
	return func(s *Server) {
		s.clock = clock
	}
}

func withConfig(mutate func(*config.Config)) func(*Server) {
	return func(s *Server) {
		mutate(s.config)
	}
}

func withHealthChecks(checks ...HealthCheck) func(*Server) {
	return func(s *Server) {
		s.healthChecks = checks
	}
}

func withMetricsHandler(h http.Handler) func(*Server) {
	return func(s *Server) {
		s.obs.MetricsHandler = h
	}
}

func withObservability(obs Observability) func(*Server) {
	return func(s *Server) {
		s.obs = obs
	}
}

func withConnectionLimits(l *ConnectionLimits) func(*Server) {
	return func(s *Server) {
		s.connLimits = l
	}
}

func withWebsocketHandler(h http.Handler) func(*Server) {
	return func(s *Server) {
		s.websocketHandler = h
	}
}

// callHandler wraps a handler with error middleware, matching production behavior
func callHandler(handler echo.HandlerFunc, c echo.Context) error {
	return ErrorHandlingMiddleware()(handler)(c)
}

// doRequest runs a request through the full middleware and routing stack.
func doRequest(t *testing.T, srv *Server, method, target, body string, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	for _, c := range cookies {
		req.AddCookie(c)
	}

	rec := httptest.NewRecorder()
	srv.echo.ServeHTTP(rec, req)
	return rec
}
