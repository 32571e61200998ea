// Package mocks provides testify mocks of the adapter interfaces.
package mocks

import (
	"os"

	"github.com/stretchr/testify/mock"

	m "mklinkdef.dev/pkg/mklinkdef/internal/model"
)

// MockSourceFSAdapter is a mock of adapter.SourceFSAdapter.
type MockSourceFSAdapter struct {
	mock.Mock
}

// NewMockSourceFSAdapter creates a mock and registers expectation checks on cleanup.
func NewMockSourceFSAdapter(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockSourceFSAdapter {
	mk := &MockSourceFSAdapter{}
	mk.Test(t)

	t.Cleanup(func() { mk.AssertExpectations(t) })

	return mk
}

// ListFiles mocks the method of the same name.
func (mk *MockSourceFSAdapter) ListFiles(dir m.Path) ([]string, error) {
	ret := mk.Called(dir)

	var names []string
	if v := ret.Get(0); v != nil {
		names = v.([]string)
	}

	return names, ret.Error(1)
}

// ReadFile mocks the method of the same name.
func (mk *MockSourceFSAdapter) ReadFile(path m.Path) ([]byte, error) {
	ret := mk.Called(path)

	var content []byte
	if v := ret.Get(0); v != nil {
		content = v.([]byte)
	}

	return content, ret.Error(1)
}

// WriteFile mocks the method of the same name.
func (mk *MockSourceFSAdapter) WriteFile(path m.Path, content []byte, perm os.FileMode) error {
	return mk.Called(path, content, perm).Error(0)
}

// RemoveIfExists mocks the method of the same name.
func (mk *MockSourceFSAdapter) RemoveIfExists(path m.Path) error {
	return mk.Called(path).Error(0)
}

// CopyFile mocks the method of the same name.
func (mk *MockSourceFSAdapter) CopyFile(src, dst m.Path) error {
	return mk.Called(src, dst).Error(0)
}

// RealPath mocks the method of the same name.
func (mk *MockSourceFSAdapter) RealPath(path m.Path) (m.Path, error) {
	ret := mk.Called(path)
	return ret.Get(0).(m.Path), ret.Error(1)
}
