package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	m "mklinkdef.dev/pkg/mklinkdef/internal/model"
)

// MockOrchestrator is a mock of domain.Orchestrator.
type MockOrchestrator struct {
	mock.Mock
}

// NewMockOrchestrator creates a mock and registers expectation checks on cleanup.
func NewMockOrchestrator(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockOrchestrator {
	mk := &MockOrchestrator{}
	mk.Test(t)

	t.Cleanup(func() { mk.AssertExpectations(t) })

	return mk
}

// Rebuild mocks the method of the same name.
func (mk *MockOrchestrator) Rebuild(ctx context.Context, cfg m.Config, res m.Resolution) (m.ExternalArtifact, error) {
	ret := mk.Called(ctx, cfg, res)
	return ret.Get(0).(m.ExternalArtifact), ret.Error(1)
}
