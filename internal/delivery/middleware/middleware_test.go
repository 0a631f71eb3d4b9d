package middleware

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"schoolapp/config"
	deliverycontext "schoolapp/internal/delivery/context"
	logs "schoolapp/internal/infra/log"
)

func TestRequestIDMiddleware(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))

	e := echo.New()
	e.Use(NewRequestIDMiddleware(logger).Process)

	var seenEcho, seenCtx string
	e.GET("/", func(c echo.Context) error {
		seenEcho = deliverycontext.GetRequestID(c)
		seenCtx = deliverycontext.GetRequestIDFromContext(c.Request().Context())
		logs.FromContext(c.Request().Context(), nil).Info("inside")

		return c.NoContent(http.StatusNoContent)
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(deliverycontext.HeaderXRequestID, "client-id-1")
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, "client-id-1", rec.Header().Get(deliverycontext.HeaderXRequestID))
	assert.Equal(t, "client-id-1", seenEcho)
	assert.Equal(t, "client-id-1", seenCtx)

	var record map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &record))
	assert.Equal(t, "client-id-1", record["request_id"])

	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	minted := rec.Header().Get(deliverycontext.HeaderXRequestID)
	assert.NotEmpty(t, minted)
	assert.Equal(t, minted, seenEcho)
}

func TestLoggerMiddleware(t *testing.T) {
	newEcho := func(debug bool, buf *bytes.Buffer) *echo.Echo {
		cfg := &config.Config{}
		cfg.Env.Debug = debug
		logger := slog.New(slog.NewJSONHandler(buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

		e := echo.New()
		e.Use(NewLoggerMiddleware(logger, cfg).Handle)
		e.GET("/ok", func(c echo.Context) error { return c.NoContent(http.StatusOK) })
		e.GET("/missing", func(echo.Context) error { return echo.ErrNotFound })

		return e
	}

	t.Run("disabled", func(t *testing.T) {
		var buf bytes.Buffer
		newEcho(false, &buf).ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/ok", nil))
		assert.Zero(t, buf.Len())
	})

	t.Run("records final status", func(t *testing.T) {
		var buf bytes.Buffer
		rec := httptest.NewRecorder()
		newEcho(true, &buf).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/missing?x=1", nil))

		assert.Equal(t, http.StatusNotFound, rec.Code)

		var record map[string]any
		require.NoError(t, json.Unmarshal(buf.Bytes(), &record))
		assert.Equal(t, "HTTP Request", record["msg"])
		assert.InDelta(t, http.StatusNotFound, record["status"], 0)
		assert.Equal(t, "/missing", record["uri"])
		assert.Equal(t, "x=1", record["query"])
		assert.Equal(t, deliverycontext.AnonymousName, record["user"])
	})
}
