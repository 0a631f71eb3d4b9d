// Package router contains routing and server setup for the HTTP delivery.
package router

import (
	"github.com/labstack/echo/v4"
	"go.uber.org/fx"

	"schoolapp/internal/delivery/api/middleware"
	"schoolapp/internal/delivery/api/router/handler"
	"schoolapp/internal/domain/entity"
)

type RouterParams struct {
	fx.In

	UserHandler    *handler.UserHandler
	AuthMiddleware *middleware.AuthMiddleware
}

// Router holds all the handlers that need to be registered.
type Router struct {
	userHandler    *handler.UserHandler
	authMiddleware *middleware.AuthMiddleware
}

// NewRouter is the constructor for the Router.
// Fx will inject the required handlers here.
func NewRouter(params RouterParams) *Router {
	return &Router{
		userHandler:    params.UserHandler,
		authMiddleware: params.AuthMiddleware,
	}
}

// RegisterRoutes sets up all the API routes for the application.
func (r *Router) RegisterRoutes(e *echo.Echo) {
	e.GET("/health", handler.HealthCheck)

	api := e.Group("/api")

	// Anonymous account routes
	api.POST("/users/signup", r.userHandler.SignUp)
	api.POST("/users/login", r.userHandler.Login)

	// Everything else requires a valid bearer token. Middleware is attached per
	// route so unknown paths under /api still 404 instead of 401.
	authed := r.authMiddleware.Authenticate
	api.GET("/users/me", r.userHandler.Me, authed)
	api.GET("/users/by-username/:username", r.userHandler.GetByUsername, authed)
	api.GET("/users/teachers/:username", r.userHandler.GetTeacherByUsername, authed)
	api.GET("/users/:id", r.userHandler.GetByID, authed)
	api.GET("/students", r.userHandler.ListStudents, authed)

	// Listing every account is reserved to staff
	api.GET("/users", r.userHandler.ListUsers, authed, r.authMiddleware.RequireRole(entity.RoleAdmin, entity.RoleTeacher))
}
