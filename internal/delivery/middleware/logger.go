package middleware

import (
	"log/slog"
	"time"

	"github.com/labstack/echo/v4"

	"schoolapp/config"
	deliverycontext "schoolapp/internal/delivery/context"
	logs "schoolapp/internal/infra/log"
)

// LoggerMiddleware writes one access log line per request when debug is enabled.
type LoggerMiddleware struct {
	logger *slog.Logger
	debug  bool
}

// NewLoggerMiddleware creates a new logger middleware
func NewLoggerMiddleware(logger *slog.Logger, config *config.Config) *LoggerMiddleware {
	return &LoggerMiddleware{
		logger: logger,
		debug:  config.Env.Debug,
	}
}

// Handle processes request logging
func (m *LoggerMiddleware) Handle(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if !m.debug {
			return next(c)
		}

		start := time.Now()
		if err := next(c); err != nil {
			c.Error(err)
		}
		m.logRequest(c, start)

		return nil
	}
}

// logRequest records the outcome once the response is written.
// Error details are logged by the error handler, not here.
func (m *LoggerMiddleware) logRequest(c echo.Context, start time.Time) {
	req := c.Request()
	res := c.Response()

	fields := []slog.Attr{
		slog.String("method", req.Method),
		slog.String("uri", req.URL.Path),
		slog.Int("status", res.Status),
		slog.Duration("latency", time.Since(start)),
		slog.String("remote_ip", c.RealIP()),
		slog.String("user", deliverycontext.Identity(c).Name()),
	}
	if len(req.URL.RawQuery) > 0 {
		fields = append(fields, slog.String("query", req.URL.RawQuery))
	}

	level := slog.LevelDebug
	if res.Status >= 500 {
		level = slog.LevelWarn
	}

	logs.FromContext(req.Context(), m.logger).LogAttrs(req.Context(), level, "HTTP Request", fields...)
}
