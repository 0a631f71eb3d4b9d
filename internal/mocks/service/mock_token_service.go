package service

import (
	"github.com/stretchr/testify/mock"

	"schoolapp/internal/domain/entity"
	"schoolapp/internal/domain/service"
)

// MockTokenService is a mock type for the TokenService type.
type MockTokenService struct {
	mock.Mock
}

// NewMockTokenService creates a new instance of MockTokenService. It also registers a testing
// interface on the mock and a cleanup function to assert the mocks expectations.
func NewMockTokenService(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockTokenService {
	m := &MockTokenService{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

type MockTokenService_Expecter struct {
	mock *mock.Mock
}

func (_m *MockTokenService) EXPECT() *MockTokenService_Expecter {
	return &MockTokenService_Expecter{mock: &_m.Mock}
}

// Issue provides a mock function for the type MockTokenService
func (_m *MockTokenService) Issue(claims entity.ClaimSet) (*service.SessionToken, error) {
	ret := _m.Called(claims)

	if len(ret) == 0 {
		panic("no return value specified for Issue")
	}

	if rf, ok := ret.Get(0).(func(entity.ClaimSet) (*service.SessionToken, error)); ok {
		return rf(claims)
	}

	var token *service.SessionToken
	if v, ok := ret.Get(0).(*service.SessionToken); ok {
		token = v
	}

	return token, ret.Error(1)
}

// MockTokenService_Issue_Call is a *mock.Call that shadows Run/Return methods with type explicit version for method 'Issue'
type MockTokenService_Issue_Call struct {
	*mock.Call
}

// Issue is a helper method to define mock.On call
func (_e *MockTokenService_Expecter) Issue(claims any) *MockTokenService_Issue_Call {
	return &MockTokenService_Issue_Call{Call: _e.mock.On("Issue", claims)}
}

func (_c *MockTokenService_Issue_Call) Run(run func(claims entity.ClaimSet)) *MockTokenService_Issue_Call {
	_c.Call.Run(func(args mock.Arguments) {
		run(args[0].(entity.ClaimSet))
	})

	return _c
}

func (_c *MockTokenService_Issue_Call) Return(token *service.SessionToken, err error) *MockTokenService_Issue_Call {
	_c.Call.Return(token, err)

	return _c
}

func (_c *MockTokenService_Issue_Call) RunAndReturn(run func(entity.ClaimSet) (*service.SessionToken, error)) *MockTokenService_Issue_Call {
	_c.Call.Return(run)

	return _c
}

// Validate provides a mock function for the type MockTokenService
func (_m *MockTokenService) Validate(token string) (*entity.ClaimSet, error) {
	ret := _m.Called(token)

	if len(ret) == 0 {
		panic("no return value specified for Validate")
	}

	if rf, ok := ret.Get(0).(func(string) (*entity.ClaimSet, error)); ok {
		return rf(token)
	}

	var claims *entity.ClaimSet
	if v, ok := ret.Get(0).(*entity.ClaimSet); ok {
		claims = v
	}

	return claims, ret.Error(1)
}

// MockTokenService_Validate_Call is a *mock.Call that shadows Run/Return methods with type explicit version for method 'Validate'
type MockTokenService_Validate_Call struct {
	*mock.Call
}

// Validate is a helper method to define mock.On call
func (_e *MockTokenService_Expecter) Validate(token any) *MockTokenService_Validate_Call {
	return &MockTokenService_Validate_Call{Call: _e.mock.On("Validate", token)}
}

func (_c *MockTokenService_Validate_Call) Return(claims *entity.ClaimSet, err error) *MockTokenService_Validate_Call {
	_c.Call.Return(claims, err)

	return _c
}
