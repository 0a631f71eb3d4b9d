// Package response writes the HTTP bodies of the API: plain DTO JSON on success
// and a fixed error envelope on failure.
package response

import (
	"net/http"

	"github.com/labstack/echo/v4"

	domainerrors "schoolapp/internal/domain/errors"
)

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Code    int                       `json:"code"`
	Message string                    `json:"message"`
	Errors  []domainerrors.FieldError `json:"errors,omitempty"`
}

// OK writes data with status 200.
func OK(c echo.Context, data any) error {
	return c.JSON(http.StatusOK, data)
}

// Created writes data with status 201.
func Created(c echo.Context, data any) error {
	return c.JSON(http.StatusCreated, data)
}

// Error writes the error envelope. Field details are dropped for 5xx responses.
func Error(c echo.Context, statusCode int, message string, fields []domainerrors.FieldError) error {
	if statusCode >= http.StatusInternalServerError {
		fields = nil
	}

	if c.Request().Method == http.MethodHead {
		return c.NoContent(statusCode)
	}

	return c.JSON(statusCode, ErrorResponse{
		Code:    statusCode,
		Message: message,
		Errors:  fields,
	})
}
