package context

import (
	"sync"

	"github.com/labstack/echo/v4"

	"schoolapp/internal/domain/entity"
)

const (
	keyClaims   = "auth_claims"
	keyIdentity = "request_identity"

	// AnonymousName is reported for callers without a valid session.
	AnonymousName = "Anonymous"
)

// IdentityState tells apart "not looked at yet" from "looked at, nobody there".
type IdentityState int

const (
	IdentityUnresolved IdentityState = iota
	IdentityAnonymous
	IdentityAuthenticated
)

// RequestIdentity resolves the caller of one request at most once and memoises
// the outcome for the rest of that request. It is never shared across requests.
type RequestIdentity struct {
	mu      sync.Mutex
	resolve func() *entity.ClaimSet
	state   IdentityState
	claims  *entity.ClaimSet
}

// NewRequestIdentity wraps resolve, which is called on first use only.
func NewRequestIdentity(resolve func() *entity.ClaimSet) *RequestIdentity {
	return &RequestIdentity{resolve: resolve}
}

// Claims returns the caller's claims, or nil for an anonymous request.
func (id *RequestIdentity) Claims() *entity.ClaimSet {
	id.mu.Lock()
	defer id.mu.Unlock()

	if id.state == IdentityUnresolved {
		if id.resolve != nil {
			id.claims = id.resolve()
		}
		id.state = IdentityAnonymous
		if id.claims != nil {
			id.state = IdentityAuthenticated
		}
	}

	return id.claims
}

// State reports whether the identity has been resolved and to what. It does not resolve.
func (id *RequestIdentity) State() IdentityState {
	id.mu.Lock()
	defer id.mu.Unlock()

	return id.state
}

// Name is the authenticated username or AnonymousName.
func (id *RequestIdentity) Name() string {
	if claims := id.Claims(); claims != nil {
		return claims.Username
	}

	return AnonymousName
}

// SetClaims stores the validated token claims for the request.
func SetClaims(c echo.Context, claims *entity.ClaimSet) {
	c.Set(keyClaims, claims)
}

// GetClaims returns the validated token claims, or nil for an anonymous request.
func GetClaims(c echo.Context) *entity.ClaimSet {
	claims, _ := c.Get(keyClaims).(*entity.ClaimSet)

	return claims
}

// Identity returns the request's identity memo, creating it on first use.
// The memo reads the claims lazily, so it reflects authentication that ran after it was created.
func Identity(c echo.Context) *RequestIdentity {
	if id, ok := c.Get(keyIdentity).(*RequestIdentity); ok {
		return id
	}

	id := NewRequestIdentity(func() *entity.ClaimSet { return GetClaims(c) })
	c.Set(keyIdentity, id)

	return id
}
