package httpserver

import (
	"errors"
	"fmt"
	"log/slog"
	"math"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/pscheid92/namepulse/internal/domain"
	"github.com/pscheid92/namepulse/internal/platform/correlation"
	apperrors "github.com/pscheid92/namepulse/internal/platform/errors"
)

// correlationMiddleware reuses a well-formed inbound X-Correlation-ID or generates one,
// and echoes it on the response.
func correlationMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		id := correlation.FromHeader(c.Request().Header.Get(correlation.Header))
		ctx := correlation.WithID(c.Request().Context(), id)
		c.SetRequest(c.Request().WithContext(ctx))
		c.Response().Header().Set(correlation.Header, id)
		return next(c)
	}
}

func ErrorHandlingMiddleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			err := next(c)
			if err == nil {
				return nil
			}

			var httpErr *echo.HTTPError
			if errors.As(err, &httpErr) {
				return err
			}

			return HandleError(c, err)
		}
	}
}

// toStructuredError maps domain sentinels onto structured API errors.
// Errors that already carry a structured type pass through unchanged.
func toStructuredError(err error) *apperrors.Error {
	var structuredErr *apperrors.Error
	if errors.As(err, &structuredErr) {
		return structuredErr
	}

	var rateLimited *domain.RateLimitedError
	switch {
	case errors.As(err, &rateLimited):
		return apperrors.RateLimitedError("vote rate limited", rateLimited.RetryAfter)
	case errors.Is(err, domain.ErrRateLimited):
		return apperrors.RateLimitedError("vote rate limited", 0)
	case errors.Is(err, domain.ErrEmptyName):
		return apperrors.ValidationError("name is empty")
	case errors.Is(err, domain.ErrProfaneContent):
		return apperrors.ValidationError("name contains inappropriate content")
	case errors.Is(err, domain.ErrDuplicateName):
		return apperrors.ConflictError("name has already been suggested")
	case errors.Is(err, domain.ErrNameNotFound):
		return apperrors.NotFoundError("name not found")
	case errors.Is(err, domain.ErrShareUnavailable):
		return apperrors.UnavailableError("leaderboard sharing is not configured")
	}

	return apperrors.AsStructuredError(err)
}

func logError(c echo.Context, err *apperrors.Error) {
	ctx := c.Request().Context()
	attrs := []any{
		"error_type", err.Type,
		"message", err.Message,
		"path", c.Request().URL.Path,
		"method", c.Request().Method,
		"status", err.HTTPStatus(),
	}

	for k, v := range err.Context {
		attrs = append(attrs, k, v)
	}

	if voterID := c.Get("voterID"); voterID != nil {
		attrs = append(attrs, "voter_id", voterID)
	}

	switch err.Type {
	case apperrors.TypeValidation, apperrors.TypeRateLimited:
		slog.InfoContext(ctx, "Request rejected", attrs...)
	case apperrors.TypeNotFound:
		// Clients only vote on ids they were shown, so this points at a stale or broken client.
		slog.WarnContext(ctx, "Not found", attrs...)
	case apperrors.TypeConflict:
		slog.InfoContext(ctx, "Conflict", attrs...)
	case apperrors.TypeUnavailable:
		slog.WarnContext(ctx, "Feature unavailable", attrs...)
	case apperrors.TypeInternal:
		if err.Cause != nil {
			attrs = append(attrs, "cause", err.Cause)
		}
		slog.ErrorContext(ctx, "Internal error", attrs...)
	case apperrors.TypeExternal:
		if err.Cause != nil {
			attrs = append(attrs, "cause", err.Cause)
		}
		slog.ErrorContext(ctx, "External service error", attrs...)
	default:
		slog.ErrorContext(ctx, "Unknown error type", attrs...)
	}
}

func HandleError(c echo.Context, err error) error {
	if err == nil {
		return nil
	}

	structuredErr := toStructuredError(err)
	logError(c, structuredErr)

	if retryAfter, ok := structuredErr.RetryAfter(); ok {
		seconds := max(1, int(math.Ceil(retryAfter.Seconds())))
		c.Response().Header().Set("Retry-After", strconv.Itoa(seconds))
	}

	if err := c.JSON(structuredErr.HTTPStatus(), structuredErr.ToResponse()); err != nil {
		return fmt.Errorf("failed to write error response: %w", err)
	}
	return nil
}
