package service

import (
	"context"

	"github.com/stretchr/testify/mock"
)

// MockPasswordHasher is a mock type for the PasswordHasher type.
type MockPasswordHasher struct {
	mock.Mock
}

// NewMockPasswordHasher creates a new instance of MockPasswordHasher. It also registers a testing
// interface on the mock and a cleanup function to assert the mocks expectations.
func NewMockPasswordHasher(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockPasswordHasher {
	m := &MockPasswordHasher{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

type MockPasswordHasher_Expecter struct {
	mock *mock.Mock
}

func (_m *MockPasswordHasher) EXPECT() *MockPasswordHasher_Expecter {
	return &MockPasswordHasher_Expecter{mock: &_m.Mock}
}

// Hash provides a mock function for the type MockPasswordHasher
func (_m *MockPasswordHasher) Hash(ctx context.Context, password string) (string, error) {
	ret := _m.Called(ctx, password)

	if len(ret) == 0 {
		panic("no return value specified for Hash")
	}

	if rf, ok := ret.Get(0).(func(context.Context, string) (string, error)); ok {
		return rf(ctx, password)
	}

	return ret.String(0), ret.Error(1)
}

// MockPasswordHasher_Hash_Call is a *mock.Call that shadows Run/Return methods with type explicit version for method 'Hash'
type MockPasswordHasher_Hash_Call struct {
	*mock.Call
}

// Hash is a helper method to define mock.On call
func (_e *MockPasswordHasher_Expecter) Hash(ctx any, password any) *MockPasswordHasher_Hash_Call {
	return &MockPasswordHasher_Hash_Call{Call: _e.mock.On("Hash", ctx, password)}
}

func (_c *MockPasswordHasher_Hash_Call) Run(run func(ctx context.Context, password string)) *MockPasswordHasher_Hash_Call {
	_c.Call.Run(func(args mock.Arguments) {
		run(args[0].(context.Context), args[1].(string))
	})

	return _c
}

func (_c *MockPasswordHasher_Hash_Call) Return(hash string, err error) *MockPasswordHasher_Hash_Call {
	_c.Call.Return(hash, err)

	return _c
}

func (_c *MockPasswordHasher_Hash_Call) RunAndReturn(run func(context.Context, string) (string, error)) *MockPasswordHasher_Hash_Call {
	_c.Call.Return(run)

	return _c
}

// Check provides a mock function for the type MockPasswordHasher
func (_m *MockPasswordHasher) Check(ctx context.Context, password string, hash string) (bool, error) {
	ret := _m.Called(ctx, password, hash)

	if len(ret) == 0 {
		panic("no return value specified for Check")
	}

	if rf, ok := ret.Get(0).(func(context.Context, string, string) (bool, error)); ok {
		return rf(ctx, password, hash)
	}

	return ret.Bool(0), ret.Error(1)
}

// MockPasswordHasher_Check_Call is a *mock.Call that shadows Run/Return methods with type explicit version for method 'Check'
type MockPasswordHasher_Check_Call struct {
	*mock.Call
}

// Check is a helper method to define mock.On call
func (_e *MockPasswordHasher_Expecter) Check(ctx any, password any, hash any) *MockPasswordHasher_Check_Call {
	return &MockPasswordHasher_Check_Call{Call: _e.mock.On("Check", ctx, password, hash)}
}

func (_c *MockPasswordHasher_Check_Call) Run(run func(ctx context.Context, password string, hash string)) *MockPasswordHasher_Check_Call {
	_c.Call.Run(func(args mock.Arguments) {
		run(args[0].(context.Context), args[1].(string), args[2].(string))
	})

	return _c
}

func (_c *MockPasswordHasher_Check_Call) Return(ok bool, err error) *MockPasswordHasher_Check_Call {
	_c.Call.Return(ok, err)

	return _c
}

func (_c *MockPasswordHasher_Check_Call) RunAndReturn(run func(context.Context, string, string) (bool, error)) *MockPasswordHasher_Check_Call {
	_c.Call.Return(run)

	return _c
}
