package remote

import (
	"context"

	"github.com/huangsam/thermolog/internal/contract"
	"github.com/huangsam/thermolog/schema"
	"github.com/stretchr/testify/mock"
)

// MockRecordStore is a mock implementation of contract.RecordStore.
type MockRecordStore struct {
	mock.Mock
}

var _ contract.RecordStore = &MockRecordStore{}

// Fetch mocks the Fetch method.
func (m *MockRecordStore) Fetch(ctx context.Context) ([]schema.RawRecord, error) {
	args := m.Called(ctx)
	rows, _ := args.Get(0).([]schema.RawRecord)
	return rows, args.Error(1)
}

// Append mocks the Append method.
func (m *MockRecordStore) Append(ctx context.Context, rec schema.Record) error {
	args := m.Called(ctx, rec)
	return args.Error(0)
}
