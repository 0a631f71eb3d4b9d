package middleware

import (
	"strings"

	"github.com/labstack/echo/v4"

	deliverycontext "schoolapp/internal/delivery/context"
	"schoolapp/internal/domain/entity"
	domainerrors "schoolapp/internal/domain/errors"
	"schoolapp/internal/domain/service"
	"schoolapp/internal/errors"
)

const bearerPrefix = "Bearer "

// AuthMiddleware provides middleware for JWT authentication and authorization.
// Failures are returned as domain errors and rendered by the error handler.
type AuthMiddleware struct {
	tokenSvc service.TokenService
}

// NewAuthMiddleware is the constructor for AuthMiddleware.
func NewAuthMiddleware(tokenSvc service.TokenService) *AuthMiddleware {
	return &AuthMiddleware{tokenSvc: tokenSvc}
}

// Authenticate validates the bearer token and exposes its claims on the request.
func (m *AuthMiddleware) Authenticate(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		authHeader := c.Request().Header.Get(echo.HeaderAuthorization)
		if authHeader == "" {
			return domainerrors.ErrTokenInvalid.WithMessage("Authorization header is missing")
		}

		if len(authHeader) <= len(bearerPrefix) || !strings.EqualFold(authHeader[:len(bearerPrefix)], bearerPrefix) {
			return domainerrors.ErrTokenInvalid.WithMessage("Invalid token format, must be Bearer token")
		}

		claims, err := m.tokenSvc.Validate(strings.TrimSpace(authHeader[len(bearerPrefix):]))
		if err != nil {
			return errors.Wrap(domainerrors.ErrTokenInvalid, err.Error())
		}

		deliverycontext.SetClaims(c, claims)

		return next(c)
	}
}

// RequireRole admits callers holding any of roles. It must be used AFTER Authenticate.
func (m *AuthMiddleware) RequireRole(roles ...entity.Role) echo.MiddlewareFunc {
	allowed := entity.Roles(roles)

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			claims := deliverycontext.Identity(c).Claims()
			if claims == nil {
				return domainerrors.ErrTokenInvalid
			}

			if !allowed.Contains(claims.Role) {
				return domainerrors.ErrForbidden
			}

			return next(c)
		}
	}
}
