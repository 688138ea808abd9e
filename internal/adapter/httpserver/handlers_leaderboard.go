package httpserver

import (
	"bytes"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pscheid92/namepulse/internal/adapter/export"
	"github.com/pscheid92/namepulse/internal/app"
	"github.com/pscheid92/namepulse/internal/domain"
)

type leaderboardEntryResponse struct {
	Rank       int          `json:"rank"`
	ID         uuid.UUID    `json:"id"`
	Text       string       `json:"text"`
	Votes      int          `json:"votes"`
	Trend      domain.Trend `json:"trend"`
	LastVoteAt time.Time    `json:"lastVoteAt"`
}

type countdownResponse struct {
	Deadline *time.Time `json:"deadline"`
	Expired  bool       `json:"expired"`
	Days     int        `json:"days"`
	Hours    int        `json:"hours"`
	Minutes  int        `json:"minutes"`
	Seconds  int        `json:"seconds"`
}

func (s *Server) registerLeaderboardRoutes(api *echo.Group) {
	api.GET("/leaderboard", s.handleLeaderboard)
	api.GET("/leaderboard/export", s.handleExport)
	api.POST("/leaderboard/share", s.handleShare)
	api.GET("/cloud", s.handleCloud)
	api.GET("/countdown", s.handleCountdown)
}

func (s *Server) handleLeaderboard(c echo.Context) error {
	board := s.app.Board()

	entries := make([]leaderboardEntryResponse, len(board.Leaderboard))
	for i, e := range board.Leaderboard {
		entries[i] = leaderboardEntryResponse{
			Rank:       e.Rank,
			ID:         e.Name.ID,
			Text:       e.Name.Text,
			Votes:      e.Name.Votes,
			Trend:      e.Trend,
			LastVoteAt: e.Name.LastVoteAt,
		}
	}

	if err := c.JSON(http.StatusOK, entries); err != nil {
		return fmt.Errorf("failed to write leaderboard response: %w", err)
	}
	return nil
}

func (s *Server) handleCloud(c echo.Context) error {
	tags := s.app.Board().Cloud
	if tags == nil {
		tags = []domain.CloudTag{}
	}
	if err := c.JSON(http.StatusOK, tags); err != nil {
		return fmt.Errorf("failed to write cloud response: %w", err)
	}
	return nil
}

func (s *Server) handleExport(c echo.Context) error {
	board := s.app.Board()

	// Headers are committed only after encoding succeeds.
	var buf bytes.Buffer
	if err := export.Write(&buf, board.Leaderboard); err != nil {
		return fmt.Errorf("failed to encode export: %w", err)
	}

	res := c.Response()
	res.Header().Set(echo.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", export.Filename(s.clock.Now())))
	res.Header().Set(echo.HeaderContentLength, strconv.Itoa(buf.Len()))
	if err := c.Blob(http.StatusOK, echo.MIMEApplicationJSON, buf.Bytes()); err != nil {
		return fmt.Errorf("failed to write export: %w", err)
	}
	return nil
}

func (s *Server) handleShare(c echo.Context) error {
	if err := s.app.Share(c.Request().Context()); err != nil {
		return err
	}

	if err := c.JSON(http.StatusAccepted, map[string]string{"status": "accepted"}); err != nil {
		return fmt.Errorf("failed to write share response: %w", err)
	}
	return nil
}

func (s *Server) handleCountdown(c echo.Context) error {
	deadline := s.config.Deadline()
	cd := app.CountdownTo(deadline, s.clock.Now())

	resp := countdownResponse{
		Expired: cd.Expired,
		Days:    cd.Days,
		Hours:   cd.Hours,
		Minutes: cd.Minutes,
		Seconds: cd.Seconds,
	}
	if !deadline.IsZero() {
		d := deadline.UTC()
		resp.Deadline = &d
	}

	if err := c.JSON(http.StatusOK, resp); err != nil {
		return fmt.Errorf("failed to write countdown response: %w", err)
	}
	return nil
}
