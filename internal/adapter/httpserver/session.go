package httpserver

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/centrifugal/centrifuge"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// Session keys
const (
	sessionName       = "namepulse-session"
	sessionKeyVoterID = "voter_id"
)

// voterID returns the anonymous voter identity stored in the session cookie,
// issuing a fresh one on first use.
func (s *Server) voterID(c echo.Context) (string, error) {
	session, err := s.sessionStore.Get(c.Request(), sessionName)
	if err != nil {
		// gorilla hands back a fresh session when the cookie cannot be decoded
		slog.DebugContext(c.Request().Context(), "Discarding unreadable voter session", "error", err)
	}

	if id, ok := session.Values[sessionKeyVoterID].(string); ok && id != "" {
		c.Set("voterID", id)
		return id, nil
	}

	id := uuid.NewString()
	session.Values[sessionKeyVoterID] = id
	if err := session.Save(c.Request(), c.Response()); err != nil {
		return "", fmt.Errorf("save voter session: %w", err)
	}
	c.Set("voterID", id)
	return id, nil
}

// centrifugeAuthMiddleware attaches the voter identity, if any, as Centrifuge credentials.
// Connections without a session stay anonymous.
func (s *Server) centrifugeAuthMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		session, err := s.sessionStore.Get(r, sessionName)
		if err == nil {
			if id, ok := session.Values[sessionKeyVoterID].(string); ok && id != "" {
				cred := &centrifuge.Credentials{UserID: id}
				r = r.WithContext(centrifuge.SetCredentials(r.Context(), cred))
			}
		}
		next.ServeHTTP(w, r)
	})
}
