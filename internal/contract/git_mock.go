package contract

import (
	"context"

	"github.com/stretchr/testify/mock"
)

// MockGitClient is a testify mock for the GitClient type.
type MockGitClient struct {
	mock.Mock
}

var _ GitClient = &MockGitClient{} // Compile-time check

// Version implements the GitClient interface.
func (m *MockGitClient) Version(ctx context.Context) (string, error) {
	ret := m.Called(ctx)
	v, _ := ret.Get(0).(string)
	return v, ret.Error(1)
}

// Run implements the GitClient interface.
func (m *MockGitClient) Run(ctx context.Context, repoPath string, args ...string) ([]byte, error) {
	mockArgs := []interface{}{ctx, repoPath}
	for _, arg := range args {
		mockArgs = append(mockArgs, arg)
	}
	ret := m.Called(mockArgs...)
	out, _ := ret.Get(0).([]byte)
	return out, ret.Error(1)
}

// ActivityLog implements the GitClient interface.
func (m *MockGitClient) ActivityLog(ctx context.Context, repoPath string, q LogQuery) ([]byte, error) {
	ret := m.Called(ctx, repoPath, q)
	out, _ := ret.Get(0).([]byte)
	return out, ret.Error(1)
}

// ConfiguredIdentity implements the GitClient interface.
func (m *MockGitClient) ConfiguredIdentity(ctx context.Context) (Identity, error) {
	ret := m.Called(ctx)
	id, _ := ret.Get(0).(Identity)
	return id, ret.Error(1)
}

// AuthorIdentities implements the GitClient interface.
func (m *MockGitClient) AuthorIdentities(ctx context.Context, repoPath string) ([]byte, error) {
	ret := m.Called(ctx, repoPath)
	out, _ := ret.Get(0).([]byte)
	return out, ret.Error(1)
}
