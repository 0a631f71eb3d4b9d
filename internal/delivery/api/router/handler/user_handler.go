// Package handler contains the HTTP handlers for the application.
package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"schoolapp/internal/delivery/api/response"
	deliverycontext "schoolapp/internal/delivery/context"
	domainerrors "schoolapp/internal/domain/errors"
	"schoolapp/internal/domain/query"
	"schoolapp/internal/errors"
	"schoolapp/internal/usecase"
)

// UserHandler holds dependencies for user-related handlers.
type UserHandler struct {
	auth  usecase.AuthUsecase
	users usecase.UserQueryUsecase
}

// NewUserHandler is the constructor for UserHandler, injected by Fx.
func NewUserHandler(auth usecase.AuthUsecase, users usecase.UserQueryUsecase) *UserHandler {
	return &UserHandler{
		auth:  auth,
		users: users,
	}
}

// CurrentUserResponse is the identity carried by the caller's session token.
type CurrentUserResponse struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Role     string `json:"userRole"`
}

func errInvalidInput(err error) error {
	return errors.Wrap(echo.NewHTTPError(http.StatusBadRequest, "Invalid request input"), err.Error())
}

// SignUp registers a teacher account.
func (h *UserHandler) SignUp(c echo.Context) error {
	var input usecase.SignUpTeacherInput
	if err := c.Bind(&input); err != nil {
		return errInvalidInput(err)
	}

	output, err := h.auth.SignUpTeacher(c.Request().Context(), &input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Created(c, output)
}

// Login exchanges credentials for a session token.
func (h *UserHandler) Login(c echo.Context) error {
	var input usecase.LoginInput
	if err := c.Bind(&input); err != nil {
		return errInvalidInput(err)
	}
	if err := c.Validate(&input); err != nil {
		// Missing fields fail like wrong ones.
		return errors.Wrap(domainerrors.ErrBadCredentials, err.Error())
	}

	output, err := h.auth.Login(c.Request().Context(), &input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.OK(c, output)
}

// Me returns the caller's identity as resolved for this request.
func (h *UserHandler) Me(c echo.Context) error {
	claims := deliverycontext.Identity(c).Claims()
	if claims == nil {
		return domainerrors.ErrTokenInvalid
	}

	return response.OK(c, CurrentUserResponse{
		ID:       claims.SubjectID,
		Username: claims.Username,
		Email:    claims.Email,
		Role:     claims.Role.String(),
	})
}

// GetByID returns a user by numeric id. A malformed id cannot name a user.
func (h *UserHandler) GetByID(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id < 1 {
		return domainerrors.ErrUserNotFound
	}

	output, err := h.users.GetByID(c.Request().Context(), id)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.OK(c, output)
}

// GetByUsername returns a user by exact username.
func (h *UserHandler) GetByUsername(c echo.Context) error {
	output, err := h.users.GetByUsername(c.Request().Context(), c.Param("username"))
	if err != nil {
		return errors.WithStack(err)
	}

	return response.OK(c, output)
}

// GetTeacherByUsername returns a teacher with its profile.
func (h *UserHandler) GetTeacherByUsername(c echo.Context) error {
	output, err := h.users.GetTeacherByUsername(c.Request().Context(), c.Param("username"))
	if err != nil {
		return errors.WithStack(err)
	}

	return response.OK(c, output)
}

// ListUsers pages over users with optional exact-match filters.
// Absent page parameters default to the first page of DefaultPageSize.
func (h *UserHandler) ListUsers(c echo.Context) error {
	input := usecase.ListUsersInput{
		PageNumber: query.DefaultPageNumber,
		PageSize:   query.DefaultPageSize,
	}
	if err := c.Bind(&input); err != nil {
		return errInvalidInput(err)
	}

	output, err := h.users.ListUsers(c.Request().Context(), &input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.OK(c, output)
}

// ListStudents pages over student accounts.
func (h *UserHandler) ListStudents(c echo.Context) error {
	input := usecase.ListStudentsInput{
		PageNumber: query.DefaultPageNumber,
		PageSize:   query.DefaultPageSize,
	}
	if err := c.Bind(&input); err != nil {
		return errInvalidInput(err)
	}

	output, err := h.users.ListStudents(c.Request().Context(), &input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.OK(c, output)
}
