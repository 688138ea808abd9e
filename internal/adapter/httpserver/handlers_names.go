package httpserver

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pscheid92/namepulse/internal/adapter/metrics"
	"github.com/pscheid92/namepulse/internal/domain"
	apperrors "github.com/pscheid92/namepulse/internal/platform/errors"
)

type submitNameRequest struct {
	Name string `json:"name"`
}

func (s *Server) registerNameRoutes(api *echo.Group) {
	api.GET("/names", s.handleListNames)
	api.POST("/names", s.handleSubmitName)
	api.POST("/names/:id/vote", s.handleVote)
}

func (s *Server) handleListNames(c echo.Context) error {
	names := s.app.Names()
	if names == nil {
		names = []domain.Name{}
	}
	if err := c.JSON(http.StatusOK, names); err != nil {
		return fmt.Errorf("failed to write names response: %w", err)
	}
	return nil
}

func (s *Server) handleSubmitName(c echo.Context) error {
	var req submitNameRequest
	if err := c.Bind(&req); err != nil {
		return apperrors.ValidationError("invalid request body")
	}

	name, err := s.app.Submit(c.Request().Context(), truncateRunes(req.Name, domain.MaxNameLength))
	s.recordSubmission(err)
	if err != nil {
		return err
	}

	if err := c.JSON(http.StatusCreated, name); err != nil {
		return fmt.Errorf("failed to write name response: %w", err)
	}
	return nil
}

func (s *Server) handleVote(c echo.Context) error {
	rawID := c.Param("id")
	id, err := uuid.Parse(rawID)
	if err != nil {
		return apperrors.ValidationError("invalid name id").WithContext("id", rawID)
	}

	voterID, err := s.voterID(c)
	if err != nil {
		return apperrors.InternalError("failed to establish voter session", err)
	}

	start := time.Now()
	name, err := s.app.Vote(c.Request().Context(), voterID, id)
	s.recordVote(err, time.Since(start))
	if err != nil {
		return err
	}

	if err := c.JSON(http.StatusOK, name); err != nil {
		return fmt.Errorf("failed to write vote response: %w", err)
	}
	return nil
}

func (s *Server) recordSubmission(err error) {
	m := s.obs.Votes
	if m == nil {
		return
	}

	var result string
	switch {
	case err == nil:
		result = metrics.ResultAccepted
		m.NamesRegistered.Inc()
	case errors.Is(err, domain.ErrEmptyName):
		result = metrics.ResultEmpty
	case errors.Is(err, domain.ErrProfaneContent):
		result = metrics.ResultProfane
	case errors.Is(err, domain.ErrDuplicateName):
		result = metrics.ResultDuplicate
	default:
		return
	}
	m.NamesSubmitted.WithLabelValues(result).Inc()
}

func (s *Server) recordVote(err error, d time.Duration) {
	m := s.obs.Votes
	if m == nil {
		return
	}

	var result string
	switch {
	case err == nil:
		result = metrics.ResultApplied
	case errors.Is(err, domain.ErrRateLimited):
		result = metrics.ResultRateLimited
	case errors.Is(err, domain.ErrNameNotFound):
		result = metrics.ResultNotFound
	default:
		return
	}
	m.VotesProcessed.WithLabelValues(result).Inc()
	m.ProcessingDuration.Observe(d.Seconds())
}

// truncateRunes cuts s to at most n runes.
func truncateRunes(s string, n int) string {
	count := 0
	for i := range s {
		if count == n {
			return s[:i]
		}
		count++
	}
	return s
}
