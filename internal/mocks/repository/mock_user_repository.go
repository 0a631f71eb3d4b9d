package repository

import (
	"context"

	"github.com/stretchr/testify/mock"

	"schoolapp/internal/domain/entity"
	"schoolapp/internal/domain/query"
)

// MockUserRepository is a mock type for the UserRepository type.
type MockUserRepository struct {
	mock.Mock
}

// NewMockUserRepository creates a new instance of MockUserRepository. It also registers a testing
// interface on the mock and a cleanup function to assert the mocks expectations.
func NewMockUserRepository(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockUserRepository {
	m := &MockUserRepository{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

type MockUserRepository_Expecter struct {
	mock *mock.Mock
}

func (_m *MockUserRepository) EXPECT() *MockUserRepository_Expecter {
	return &MockUserRepository_Expecter{mock: &_m.Mock}
}

func (_m *MockUserRepository) userResult(method string, ret mock.Arguments) (*entity.User, error) {
	if len(ret) == 0 {
		panic("no return value specified for " + method)
	}

	var user *entity.User
	if v, ok := ret.Get(0).(*entity.User); ok {
		user = v
	}

	return user, ret.Error(1)
}

// MockUserRepository_Find_Call is a *mock.Call that shadows Return for the single-user lookups.
type MockUserRepository_Find_Call struct {
	*mock.Call
}

func (_c *MockUserRepository_Find_Call) Return(user *entity.User, err error) *MockUserRepository_Find_Call {
	_c.Call.Return(user, err)

	return _c
}

// FindByID provides a mock function for the type MockUserRepository
func (_m *MockUserRepository) FindByID(ctx context.Context, id int64) (*entity.User, error) {
	return _m.userResult("FindByID", _m.Called(ctx, id))
}

// FindByID is a helper method to define mock.On call
func (_e *MockUserRepository_Expecter) FindByID(ctx any, id any) *MockUserRepository_Find_Call {
	return &MockUserRepository_Find_Call{Call: _e.mock.On("FindByID", ctx, id)}
}

// FindByUsername provides a mock function for the type MockUserRepository
func (_m *MockUserRepository) FindByUsername(ctx context.Context, username string) (*entity.User, error) {
	return _m.userResult("FindByUsername", _m.Called(ctx, username))
}

// FindByUsername is a helper method to define mock.On call
func (_e *MockUserRepository_Expecter) FindByUsername(ctx any, username any) *MockUserRepository_Find_Call {
	return &MockUserRepository_Find_Call{Call: _e.mock.On("FindByUsername", ctx, username)}
}

// FindByIdentifier provides a mock function for the type MockUserRepository
func (_m *MockUserRepository) FindByIdentifier(ctx context.Context, identifier string) (*entity.User, error) {
	return _m.userResult("FindByIdentifier", _m.Called(ctx, identifier))
}

// FindByIdentifier is a helper method to define mock.On call
func (_e *MockUserRepository_Expecter) FindByIdentifier(ctx any, identifier any) *MockUserRepository_Find_Call {
	return &MockUserRepository_Find_Call{Call: _e.mock.On("FindByIdentifier", ctx, identifier)}
}

// FindTeacherByUsername provides a mock function for the type MockUserRepository
func (_m *MockUserRepository) FindTeacherByUsername(ctx context.Context, username string) (*entity.User, error) {
	return _m.userResult("FindTeacherByUsername", _m.Called(ctx, username))
}

// FindTeacherByUsername is a helper method to define mock.On call
func (_e *MockUserRepository_Expecter) FindTeacherByUsername(ctx any, username any) *MockUserRepository_Find_Call {
	return &MockUserRepository_Find_Call{Call: _e.mock.On("FindTeacherByUsername", ctx, username)}
}

// List provides a mock function for the type MockUserRepository
func (_m *MockUserRepository) List(ctx context.Context, filter query.FilterSpec, page query.PageRequest) ([]*entity.User, int64, error) {
	ret := _m.Called(ctx, filter, page)

	if len(ret) == 0 {
		panic("no return value specified for List")
	}

	var users []*entity.User
	if v, ok := ret.Get(0).([]*entity.User); ok {
		users = v
	}

	return users, ret.Get(1).(int64), ret.Error(2)
}

// MockUserRepository_List_Call is a *mock.Call that shadows Run/Return methods with type explicit version for method 'List'
type MockUserRepository_List_Call struct {
	*mock.Call
}

// List is a helper method to define mock.On call
func (_e *MockUserRepository_Expecter) List(ctx any, filter any, page any) *MockUserRepository_List_Call {
	return &MockUserRepository_List_Call{Call: _e.mock.On("List", ctx, filter, page)}
}

func (_c *MockUserRepository_List_Call) Return(users []*entity.User, total int64, err error) *MockUserRepository_List_Call {
	_c.Call.Return(users, total, err)

	return _c
}

// Create provides a mock function for the type MockUserRepository
func (_m *MockUserRepository) Create(ctx context.Context, user *entity.User) error {
	ret := _m.Called(ctx, user)

	if len(ret) == 0 {
		panic("no return value specified for Create")
	}

	return ret.Error(0)
}

// MockUserRepository_Create_Call is a *mock.Call that shadows Run/Return methods with type explicit version for method 'Create'
type MockUserRepository_Create_Call struct {
	*mock.Call
}

// Create is a helper method to define mock.On call
func (_e *MockUserRepository_Expecter) Create(ctx any, user any) *MockUserRepository_Create_Call {
	return &MockUserRepository_Create_Call{Call: _e.mock.On("Create", ctx, user)}
}

func (_c *MockUserRepository_Create_Call) Run(run func(ctx context.Context, user *entity.User)) *MockUserRepository_Create_Call {
	_c.Call.Run(func(args mock.Arguments) {
		run(args[0].(context.Context), args[1].(*entity.User))
	})

	return _c
}

func (_c *MockUserRepository_Create_Call) Return(err error) *MockUserRepository_Create_Call {
	_c.Call.Return(err)

	return _c
}
