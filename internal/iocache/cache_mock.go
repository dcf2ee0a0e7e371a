package iocache

import (
	"github.com/huangsam/thermolog/internal/contract"
	"github.com/huangsam/thermolog/schema"
	"github.com/stretchr/testify/mock"
)

// MockCacheManager is a mock implementation of CacheManager for testing.
type MockCacheManager struct {
	mock.Mock
}

var _ contract.CacheManager = &MockCacheManager{} // Compile-time check

// GetSnapshotStore implements the CacheManager interface.
func (m *MockCacheManager) GetSnapshotStore() contract.CacheStore {
	ret := m.Called()
	store, _ := ret.Get(0).(contract.CacheStore)
	return store
}

// GetLedgerStore implements the CacheManager interface.
func (m *MockCacheManager) GetLedgerStore() contract.LedgerStore {
	ret := m.Called()
	store, _ := ret.Get(0).(contract.LedgerStore)
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
	data, _ := args.Get(0).([]byte)
	return data, args.Int(1), args.Get(2).(int64), args.Error(3)
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

// Close implements the CacheStore interface.
func (m *MockCacheStore) Close() error {
	args := m.Called()
	return args.Error(0)
}

// GetStatus implements the CacheStore interface.
func (m *MockCacheStore) GetStatus() (schema.CacheStatus, error) {
	args := m.Called()
	return args.Get(0).(schema.CacheStatus), args.Error(1)
}

// MockLedgerStore is a mock implementation of LedgerStore for testing.
type MockLedgerStore struct {
	mock.Mock
}

var _ contract.LedgerStore = &MockLedgerStore{} // Compile-time check

// Save implements the LedgerStore interface.
func (m *MockLedgerStore) Save(sub schema.Submission) error {
	args := m.Called(sub)
	return args.Error(0)
}

// Get implements the LedgerStore interface.
func (m *MockLedgerStore) Get(id string) (schema.Submission, error) {
	args := m.Called(id)
	return args.Get(0).(schema.Submission), args.Error(1)
}

// List implements the LedgerStore interface.
func (m *MockLedgerStore) List(status schema.SubmissionStatus, limit int) ([]schema.Submission, error) {
	args := m.Called(status, limit)
	subs, _ := args.Get(0).([]schema.Submission)
	return subs, args.Error(1)
}

// GetStatus implements the LedgerStore interface.
func (m *MockLedgerStore) GetStatus() (schema.LedgerStatus, error) {
	args := m.Called()
	return args.Get(0).(schema.LedgerStatus), args.Error(1)
}

// Clear implements the LedgerStore interface.
func (m *MockLedgerStore) Clear() error {
	args := m.Called()
	return args.Error(0)
}

// Close implements the LedgerStore interface.
func (m *MockLedgerStore) Close() error {
	args := m.Called()
	return args.Error(0)
}
