package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
)

// MockProcessRunnerAdapter is a mock of adapter.ProcessRunnerAdapter.
type MockProcessRunnerAdapter struct {
	mock.Mock
}

// NewMockProcessRunnerAdapter creates a mock and registers expectation checks on cleanup.
func NewMockProcessRunnerAdapter(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockProcessRunnerAdapter {
	mk := &MockProcessRunnerAdapter{}
	mk.Test(t)

	t.Cleanup(func() { mk.AssertExpectations(t) })

	return mk
}

// Run mocks the method of the same name. Arguments are recorded as
// (ctx, name, args).
func (mk *MockProcessRunnerAdapter) Run(ctx context.Context, name string, args ...string) (int, string, error) {
	ret := mk.Called(ctx, name, args)
	return ret.Int(0), ret.String(1), ret.Error(2)
}
