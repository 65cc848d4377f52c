package iocache

import (
	"github.com/liushen/calheat/internal/contract"
	"github.com/liushen/calheat/schema"
	"github.com/stretchr/testify/mock"
)

// MockCacheManager is a mock implementation of CacheManager for testing.
type MockCacheManager struct {
	mock.Mock
}

var _ contract.CacheManager = &MockCacheManager{} // Compile-time check

// GetCacheStore implements the CacheManager interface.
func (m *MockCacheManager) GetCacheStore() contract.CacheStore {
	ret := m.Called()
	store, _ := ret.Get(0).(contract.CacheStore)
	return store
}

// GetSettingsStore implements the CacheManager interface.
func (m *MockCacheManager) GetSettingsStore() contract.SettingsStore {
	ret := m.Called()
	store, _ := ret.Get(0).(contract.SettingsStore)
	return store
}

// MockCacheStore is a mock implementation of CacheStore for testing.
type MockCacheStore struct {
	mock.Mock
}

var _ contract.CacheStore = &MockCacheStore{} // Compile-time check

// Get implements the CacheStore interface.
func (m *MockCacheStore) Get(key string) ([]byte, int, int64, error) {
	args := m.Called(key)
	value, _ := args.Get(0).([]byte)
	return value, args.Int(1), args.Get(2).(int64), args.Error(3)
}

// Set implements the CacheStore interface.
func (m *MockCacheStore) Set(key string, data []byte, version int, ts int64) error {
	args := m.Called(key, data, version, ts)
	return args.Error(0)
}

// Clear implements the CacheStore interface.
func (m *MockCacheStore) Clear() error {
	args := m.Called()
	return args.Error(0)
}

// GetStatus implements the CacheStore interface.
func (m *MockCacheStore) GetStatus() (schema.CacheStatus, error) {
	args := m.Called()
	return args.Get(0).(schema.CacheStatus), args.Error(1)
}

// Close implements the CacheStore interface.
func (m *MockCacheStore) Close() error {
	args := m.Called()
	return args.Error(0)
}

// MockSettingsStore is a mock implementation of SettingsStore for testing.
type MockSettingsStore struct {
	mock.Mock
}

var _ contract.SettingsStore = &MockSettingsStore{} // Compile-time check

// Get implements the SettingsStore interface.
func (m *MockSettingsStore) Get(key string) ([]byte, error) {
	args := m.Called(key)
	value, _ := args.Get(0).([]byte)
	return value, args.Error(1)
}

// Update implements the SettingsStore interface.
func (m *MockSettingsStore) Update(key string, value []byte) error {
	args := m.Called(key, value)
	return args.Error(0)
}

// ListKeys implements the SettingsStore interface.
func (m *MockSettingsStore) ListKeys() ([]string, error) {
	args := m.Called()
	keys, _ := args.Get(0).([]string)
	return keys, args.Error(1)
}

// GetStatus implements the SettingsStore interface.
func (m *MockSettingsStore) GetStatus() (schema.SettingsStatus, error) {
	args := m.Called()
	return args.Get(0).(schema.SettingsStatus), args.Error(1)
}

// Close implements the SettingsStore interface.
func (m *MockSettingsStore) Close() error {
	args := m.Called()
	return args.Error(0)
}
