// Package mocks provides testify mocks of the domain interfaces.
package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	m "mklinkdef.dev/pkg/mklinkdef/internal/model"
)

// MockWorkflow is a mock of domain.Workflow.
type MockWorkflow struct {
	mock.Mock
}

// NewMockWorkflow creates a mock and registers expectation checks on cleanup.
func NewMockWorkflow(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockWorkflow {
	mk := &MockWorkflow{}
	mk.Test(t)

	t.Cleanup(func() { mk.AssertExpectations(t) })

	return mk
}

// Generate mocks the method of the same name.
func (mk *MockWorkflow) Generate(ctx context.Context, cfg m.Config) error {
	return mk.Called(ctx, cfg).Error(0)
}

// List mocks the method of the same name.
func (mk *MockWorkflow) List(ctx context.Context, cfg m.Config) error {
	return mk.Called(ctx, cfg).Error(0)
}

// Diff mocks the method of the same name.
func (mk *MockWorkflow) Diff(ctx context.Context, cfg m.Config) (bool, error) {
	ret := mk.Called(ctx, cfg)
	return ret.Bool(0), ret.Error(1)
}
