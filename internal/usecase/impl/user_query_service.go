package impl

import (
	"context"

	"go.uber.org/fx"

	"schoolapp/internal/domain/entity"
	domainerrors "schoolapp/internal/domain/errors"
	"schoolapp/internal/domain/query"
	"schoolapp/internal/domain/repository"
	"schoolapp/internal/errors"
	"schoolapp/internal/usecase"
)

// userQueryService implements the UserQueryUsecase interface.
type userQueryService struct {
	userRepo repository.UserRepository
}

// UserQueryServiceParams holds dependencies for UserQueryService, injected by Fx.
type UserQueryServiceParams struct {
	fx.In

	UserRepo repository.UserRepository
}

// NewUserQueryService is the constructor for userQueryService.
func NewUserQueryService(params UserQueryServiceParams) usecase.UserQueryUsecase {
	return &userQueryService{userRepo: params.UserRepo}
}

func (srv *userQueryService) GetByID(ctx context.Context, id int64) (*usecase.UserOutput, error) {
	user, err := srv.userRepo.FindByID(ctx, id)
	if err != nil {
		return nil, notFound(err, "find user by id")
	}

	out := usecase.NewUserOutput(user)

	return &out, nil
}

func (srv *userQueryService) GetByUsername(ctx context.Context, username string) (*usecase.UserOutput, error) {
	user, err := srv.userRepo.FindByUsername(ctx, username)
	if err != nil {
		return nil, notFound(err, "find user by username")
	}

	out := usecase.NewUserOutput(user)

	return &out, nil
}

func (srv *userQueryService) GetTeacherByUsername(ctx context.Context, username string) (*usecase.UserTeacherOutput, error) {
	user, err := srv.userRepo.FindTeacherByUsername(ctx, username)
	if err != nil {
		return nil, notFound(err, "find teacher by username")
	}

	out := usecase.NewUserTeacherOutput(user)

	return &out, nil
}

func (srv *userQueryService) ListUsers(ctx context.Context, input *usecase.ListUsersInput) (*query.PaginatedResult[usecase.UserOutput], error) {
	return srv.list(ctx, query.BuildUserFilter(input.UserFilters), input.PageNumber, input.PageSize)
}

func (srv *userQueryService) ListStudents(ctx context.Context, input *usecase.ListStudentsInput) (*query.PaginatedResult[usecase.UserOutput], error) {
	filter := query.FilterSpec{}.Eq(query.FieldRole, entity.RoleStudent.String())

	return srv.list(ctx, filter, input.PageNumber, input.PageSize)
}

func (srv *userQueryService) list(ctx context.Context, filter query.FilterSpec, pageNumber, pageSize int) (*query.PaginatedResult[usecase.UserOutput], error) {
	page, err := query.NewPageRequest(pageNumber, pageSize)
	if err != nil {
		return nil, err
	}

	users, total, err := srv.userRepo.List(ctx, filter, page)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list users")
	}

	result := query.MapResult(query.NewPaginatedResult(users, total, page), func(u *entity.User) usecase.UserOutput {
		return usecase.NewUserOutput(u)
	})

	return &result, nil
}

// notFound maps the repository's missing-record sentinel onto the NotFound kind.
func notFound(err error, op string) error {
	if errors.Is(err, repository.ErrUserNotFound) {
		return domainerrors.ErrUserNotFound
	}

	return errors.Wrap(err, "failed to "+op)
}
