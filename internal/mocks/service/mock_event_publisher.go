package service

import (
	"context"

	"github.com/stretchr/testify/mock"

	"schoolapp/internal/domain/service"
)

// MockEventPublisher is a mock type for the EventPublisher type.
type MockEventPublisher struct {
	mock.Mock
}

// NewMockEventPublisher creates a new instance of MockEventPublisher. It also registers a testing
// interface on the mock and a cleanup function to assert the mocks expectations.
func NewMockEventPublisher(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockEventPublisher {
	m := &MockEventPublisher{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

type MockEventPublisher_Expecter struct {
	mock *mock.Mock
}

func (_m *MockEventPublisher) EXPECT() *MockEventPublisher_Expecter {
	return &MockEventPublisher_Expecter{mock: &_m.Mock}
}

// PublishUserRegistered provides a mock function for the type MockEventPublisher
func (_m *MockEventPublisher) PublishUserRegistered(ctx context.Context, event *service.UserRegisteredEvent) error {
	ret := _m.Called(ctx, event)

	if len(ret) == 0 {
		panic("no return value specified for PublishUserRegistered")
	}

	if rf, ok := ret.Get(0).(func(context.Context, *service.UserRegisteredEvent) error); ok {
		return rf(ctx, event)
	}

	return ret.Error(0)
}

// MockEventPublisher_PublishUserRegistered_Call is a *mock.Call that shadows Run/Return methods with type explicit version for method 'PublishUserRegistered'
type MockEventPublisher_PublishUserRegistered_Call struct {
	*mock.Call
}

// PublishUserRegistered is a helper method to define mock.On call
func (_e *MockEventPublisher_Expecter) PublishUserRegistered(ctx any, event any) *MockEventPublisher_PublishUserRegistered_Call {
	return &MockEventPublisher_PublishUserRegistered_Call{Call: _e.mock.On("PublishUserRegistered", ctx, event)}
}

func (_c *MockEventPublisher_PublishUserRegistered_Call) Run(run func(ctx context.Context, event *service.UserRegisteredEvent)) *MockEventPublisher_PublishUserRegistered_Call {
	_c.Call.Run(func(args mock.Arguments) {
		run(args[0].(context.Context), args[1].(*service.UserRegisteredEvent))
	})

	return _c
}

func (_c *MockEventPublisher_PublishUserRegistered_Call) Return(err error) *MockEventPublisher_PublishUserRegistered_Call {
	_c.Call.Return(err)

	return _c
}

// Close provides a mock function for the type MockEventPublisher
func (_m *MockEventPublisher) Close() error {
	ret := _m.Called()

	if len(ret) == 0 {
		panic("no return value specified for Close")
	}

	return ret.Error(0)
}

// MockEventPublisher_Close_Call is a *mock.Call that shadows Run/Return methods with type explicit version for method 'Close'
type MockEventPublisher_Close_Call struct {
	*mock.Call
}

// Close is a helper method to define mock.On call
func (_e *MockEventPublisher_Expecter) Close() *MockEventPublisher_Close_Call {
	return &MockEventPublisher_Close_Call{Call: _e.mock.On("Close")}
}

func (_c *MockEventPublisher_Close_Call) Return(err error) *MockEventPublisher_Close_Call {
	_c.Call.Return(err)

	return _c
}
