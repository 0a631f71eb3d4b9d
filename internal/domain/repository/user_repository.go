// Package repository defines the interfaces for the persistence layer.
// These interfaces act as a contract between the domain/application layers and the infrastructure layer.
package repository

import (
	"context"
	"errors"

	"schoolapp/internal/domain/entity"
	"schoolapp/internal/domain/query"
)

// ErrUserNotFound is a domain-specific error returned when a user is not found.
var ErrUserNotFound = errors.New("user not found")

// UserRepository defines the standard operations for user persistence.
// Create reports a uniqueness violation on username or email as domainerrors.ErrUserAlreadyExists.
type UserRepository interface {
	// FindByID retrieves a single user by primary key.
	FindByID(ctx context.Context, id int64) (*entity.User, error)

	// FindByUsername retrieves a single user by exact username.
	FindByUsername(ctx context.Context, username string) (*entity.User, error)

	// FindByIdentifier retrieves the user whose username OR email equals identifier.
	FindByIdentifier(ctx context.Context, identifier string) (*entity.User, error)

	// FindTeacherByUsername retrieves a user together with its teacher profile.
	// A user without a teacher profile is reported as ErrUserNotFound.
	FindTeacherByUsername(ctx context.Context, username string) (*entity.User, error)

	// List returns one page of users matching filter in ascending ID order,
	// and the number of users matching filter regardless of the page.
	List(ctx context.Context, filter query.FilterSpec, page query.PageRequest) ([]*entity.User, int64, error)

	// Create persists a new user and sets its generated ID and timestamps.
	Create(ctx context.Context, user *entity.User) error
}

// TeacherRepository persists teacher profiles.
type TeacherRepository interface {
	// Create persists a new teacher profile for an existing user.
	Create(ctx context.Context, profile *entity.TeacherProfile) error
}
