// Package middleware holds the API-specific echo middleware: the error boundary and bearer authentication.
package middleware

import (
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	"schoolapp/internal/delivery/api/response"
	deliverycontext "schoolapp/internal/delivery/context"
	domainerrors "schoolapp/internal/domain/errors"
	"schoolapp/internal/errors"
	logs "schoolapp/internal/infra/log"
)

// ErrorMiddleware is the single place where failures are classified, logged and rendered.
type ErrorMiddleware struct {
	logger *slog.Logger
}

// NewErrorMiddleware creates a new error handling middleware
func NewErrorMiddleware(logger *slog.Logger) *ErrorMiddleware {
	return &ErrorMiddleware{
		logger: logger,
	}
}

type classified struct {
	kind    string
	status  int
	message string
	fields  []domainerrors.FieldError
}

// classify maps err to a response. echo's own HTTP errors (unknown route, bad
// bind, body too large) keep their status; everything else goes through the
// domain taxonomy, where anything unrecognised becomes a generic 500.
func classify(err error) classified {
	var httpErr *echo.HTTPError
	if errors.As(err, &httpErr) {
		message := http.StatusText(httpErr.Code)
		if msg, ok := httpErr.Message.(string); ok && httpErr.Code < http.StatusInternalServerError {
			message = msg
		}

		return classified{kind: "HTTP", status: httpErr.Code, message: message}
	}

	appErr := domainerrors.Classify(err)
	out := classified{
		kind:    appErr.Kind().String(),
		status:  appErr.HTTPCode(),
		message: appErr.Message(),
	}
	if appErr.Kind() == domainerrors.KindInvalidRegistration {
		out.fields = appErr.Fields()
	}

	return out
}

// HandleHTTPError handles errors as Echo's HTTPErrorHandler
func (m *ErrorMiddleware) HandleHTTPError(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	result := classify(err)

	level := slog.LevelWarn
	if result.status >= http.StatusInternalServerError {
		level = slog.LevelError
	}

	req := c.Request()
	attrs := []slog.Attr{
		slog.String("kind", result.kind),
		slog.Int("status", result.status),
		slog.String("endpoint", req.URL.Path),
		slog.String("method", req.Method),
		slog.String("user", deliverycontext.Identity(c).Name()),
		slog.String("trace_id", deliverycontext.GetRequestID(c)),
		slog.Any("error", err),
	}
	if level == slog.LevelError {
		if stack := errors.Stack(err); stack != "" {
			attrs = append(attrs, slog.String("stack", stack))
		}
	}
	logs.FromContext(req.Context(), m.logger).LogAttrs(req.Context(), level, "Request failed", attrs...)

	if writeErr := response.Error(c, result.status, result.message, result.fields); writeErr != nil {
		m.logger.Error("Failed to write error response", slog.Any("error", writeErr))
	}
}
