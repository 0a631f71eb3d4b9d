package usecase

import (
	"context"

	"schoolapp/internal/domain/query"
)

// ListUsersInput is the raw listing request; zero page values are rejected, not defaulted.
type ListUsersInput struct {
	PageNumber int `query:"pageNumber" json:"pageNumber"`
	PageSize   int `query:"pageSize" json:"pageSize"`
	query.UserFilters
}

// ListStudentsInput pages over student accounts only.
type ListStudentsInput struct {
	PageNumber int `query:"pageNumber" json:"pageNumber"`
	PageSize   int `query:"pageSize" json:"pageSize"`
}

// UserQueryUsecase defines the read side over user accounts.
type UserQueryUsecase interface {
	GetByID(ctx context.Context, id int64) (*UserOutput, error)
	GetByUsername(ctx context.Context, username string) (*UserOutput, error)
	GetTeacherByUsername(ctx context.Context, username string) (*UserTeacherOutput, error)

	// ListUsers returns the requested page of users matching the filters, in ascending ID order.
	ListUsers(ctx context.Context, input *ListUsersInput) (*query.PaginatedResult[UserOutput], error)

	// ListStudents is ListUsers with the role constraint fixed to Student.
	ListStudents(ctx context.Context, input *ListStudentsInput) (*query.PaginatedResult[UserOutput], error)
}
