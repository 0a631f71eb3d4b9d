package context

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"schoolapp/internal/domain/entity"
)

func TestRequestIdentity_ResolvesOnce(t *testing.T) {
	var calls atomic.Int32
	claims := &entity.ClaimSet{SubjectID: 1, Username: "jdoe", Role: entity.RoleStudent}
	id := NewRequestIdentity(func() *entity.ClaimSet {
		calls.Add(1)

		return claims
	})

	assert.Equal(t, IdentityUnresolved, id.State())

	var wg sync.WaitGroup
	for range 10 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.Same(t, claims, id.Claims())
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), calls.Load())
	assert.Equal(t, IdentityAuthenticated, id.State())
	assert.Equal(t, "jdoe", id.Name())
}

func TestRequestIdentity_Anonymous(t *testing.T) {
	var calls atomic.Int32
	id := NewRequestIdentity(func() *entity.ClaimSet {
		calls.Add(1)

		return nil
	})

	assert.Equal(t, AnonymousName, id.Name())
	assert.Nil(t, id.Claims())
	assert.Equal(t, IdentityAnonymous, id.State())
	assert.Equal(t, int32(1), calls.Load())
}

func TestIdentity_MemoisedPerEchoContext(t *testing.T) {
	e := echo.New()
	newCtx := func() echo.Context {
		return e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder())
	}

	c := newCtx()
	id := Identity(c)
	require.Same(t, id, Identity(c))

	SetClaims(c, &entity.ClaimSet{Username: "mrsmith", Role: entity.RoleTeacher})
	assert.Equal(t, "mrsmith", id.Name())

	other := newCtx()
	assert.NotSame(t, id, Identity(other))
	assert.Equal(t, AnonymousName, Identity(other).Name())
}

func TestRequestID(t *testing.T) {
	e := echo.New()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder())

	assert.Empty(t, GetRequestID(c))

	SetRequestID(c, "req-1")
	assert.Equal(t, "req-1", GetRequestID(c))

	ctx := WithRequestID(c.Request().Context(), "req-1")
	assert.Equal(t, "req-1", GetRequestIDFromContext(ctx))
	assert.Empty(t, GetRequestIDFromContext(c.Request().Context()))
}

func TestNormalizeRequestID(t *testing.T) {
	tests := []struct {
		name   string
		header string
		keep   bool
	}{
		{name: "client id", header: "abc-123_DEF.4", keep: true},
		{name: "max length", header: strings.Repeat("a", maxRequestIDLength), keep: true},
		{name: "empty", header: ""},
		{name: "too long", header: strings.Repeat("a", maxRequestIDLength+1)},
		{name: "newline", header: "abc\nlevel=ERROR"},
		{name: "space", header: "abc def"},
		{name: "non ascii", header: "réq"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NormalizeRequestID(tt.header)
			if tt.keep {
				assert.Equal(t, tt.header, got)

				return
			}
			assert.NotEqual(t, tt.header, got)
			_, err := uuid.Parse(got)
			assert.NoError(t, err)
		})
	}
}
