// Package context carries request-scoped values between the echo middleware chain,
// the handlers and the services: the correlation id and the caller identity.
package context

import (
	"context"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// HeaderXRequestID is the HTTP header carrying the correlation id in both directions.
const HeaderXRequestID = "X-Request-Id"

const maxRequestIDLength = 128

type requestIDKey struct{}

// echo.Context key; echo stores values by string.
const keyRequestID = "request_id"

// NormalizeRequestID returns the client supplied id when it is short printable ASCII,
// and a fresh UUID otherwise. Ids end up in every log record, so nothing else is trusted.
func NormalizeRequestID(header string) string {
	if header == "" || len(header) > maxRequestIDLength {
		return uuid.NewString()
	}
	for i := 0; i < len(header); i++ {
		if header[i] < 0x21 || header[i] > 0x7e {
			return uuid.NewString()
		}
	}

	return header
}

// GetRequestID returns the correlation id stored on the echo context, or "".
func GetRequestID(c echo.Context) string {
	id, _ := c.Get(keyRequestID).(string)

	return id
}

// SetRequestID stores the correlation id on the echo context.
func SetRequestID(c echo.Context, requestID string) {
	c.Set(keyRequestID, requestID)
}

// GetRequestIDFromContext returns the correlation id carried by ctx, or "".
func GetRequestIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey{}).(string)

	return id
}

// WithRequestID returns a copy of ctx carrying the correlation id.
func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, requestID)
}
