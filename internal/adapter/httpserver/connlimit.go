package httpserver

import (
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/labstack/echo/v4"
	"golang.org/x/time/rate"
)

const (
	connRateIdleTTL     = 10 * time.Minute
	connRateSweepPeriod = 5 * time.Minute
)

// LimitReason describes why a websocket connection was rejected.
type LimitReason string

const (
	LimitReasonGlobal LimitReason = "global_limit"
	LimitReasonPerIP  LimitReason = "per_ip_limit"
	LimitReasonRate   LimitReason = "rate_limit"
)

// ConnectionLimits caps concurrent board subscribers per instance and per IP,
// and throttles how fast one IP may open new connections.
type ConnectionLimits struct {
	clock     clockwork.Clock
	globalMax int
	perIPMax  int
	rate      rate.Limit
	burst     int

	mu        sync.Mutex
	total     int
	perIP     map[string]int
	buckets   map[string]*connBucket
	nextSweep time.Time
}

type connBucket struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

func NewConnectionLimits(clock clockwork.Clock, globalMax, perIPMax int, connectionsPerSecond float64, burst int) *ConnectionLimits {
	return &ConnectionLimits{
		clock:     clock,
		globalMax: globalMax,
		perIPMax:  perIPMax,
		rate:      rate.Limit(connectionsPerSecond),
		burst:     burst,
		perIP:     make(map[string]int),
		buckets:   make(map[string]*connBucket),
		nextSweep: clock.Now().Add(connRateSweepPeriod),
	}
}

// Acquire reserves a connection slot for ip. The rate check runs first, so a
// rejected attempt still spends a token.
func (l *ConnectionLimits) Acquire(ip string) (bool, LimitReason) {
	now := l.clock.Now()

	l.mu.Lock()
	defer l.mu.Unlock()

	if now.After(l.nextSweep) {
		l.sweep(now)
		l.nextSweep = now.Add(connRateSweepPeriod)
	}

	b, ok := l.buckets[ip]
	if !ok {
		b = &connBucket{limiter: rate.NewLimiter(l.rate, l.burst)}
		l.buckets[ip] = b
	}
	b.lastSeen = now
	if !b.limiter.AllowN(now, 1) {
		return false, LimitReasonRate
	}

	if l.total >= l.globalMax {
		return false, LimitReasonGlobal
	}
	if l.perIP[ip] >= l.perIPMax {
		return false, LimitReasonPerIP
	}

	l.total++
	l.perIP[ip]++
	return true, ""
}

func (l *ConnectionLimits) Release(ip string) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.perIP[ip] == 0 {
		return
	}
	l.total--
	if l.perIP[ip]--; l.perIP[ip] == 0 {
		delete(l.perIP, ip)
	}
}

// Active returns the number of held slots and distinct IPs holding them.
func (l *ConnectionLimits) Active() (connections, ips int) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.total, len(l.perIP)
}

// sweep drops idle rate buckets. Must be called with mu held.
func (l *ConnectionLimits) sweep(now time.Time) {
	cutoff := now.Add(-connRateIdleTTL)
	for ip, b := range l.buckets {
		if b.lastSeen.Before(cutoff) {
			delete(l.buckets, ip)
		}
	}
}

// connectionLimitMiddleware holds a slot for the lifetime of the wrapped
// handler, which for a websocket upgrade is the whole connection.
func (s *Server) connectionLimitMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if s.connLimits == nil {
			return next(c)
		}

		ip := c.RealIP()
		ok, reason := s.connLimits.Acquire(ip)
		if !ok {
			slog.WarnContext(c.Request().Context(), "WebSocket connection rejected", "ip", ip, "reason", reason)
			if s.obs.WebSocket != nil {
				s.obs.WebSocket.ConnectionsRejected.WithLabelValues(string(reason)).Inc()
			}
			c.Response().Header().Set("Retry-After", "1")
			return c.JSON(http.StatusTooManyRequests, map[string]string{
				"error":  "too many connections",
				"reason": string(reason),
			})
		}
		defer s.connLimits.Release(ip)

		return next(c)
	}
}
