package handler

import (
	"github.com/labstack/echo/v4"

	"schoolapp/internal/delivery/api/response"
)

// HealthCheck is the liveness endpoint.
func HealthCheck(c echo.Context) error {
	return response.OK(c, map[string]string{"status": "ok"})
}
